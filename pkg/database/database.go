package database

import (
	"fmt"
	"log"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaultVoices(db)

	return db, nil
}

// Migrate creates or updates every table the app uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.VocabularyLesson{},
		&model.VocabularyWord{},
		&model.VocabularyExample{},
		&model.VocabularyLessonProgress{},
		&model.VocabularyWordProgress{},
		&model.VocabularyFavorite{},
		&model.KanjiUnit{},
		&model.KanjiLesson{},
		&model.Kanji{},
		&model.KanjiVocabulary{},
		&model.KanjiProgress{},
		&model.KanjiFavorite{},
		&model.GrammarLesson{},
		&model.GrammarQuestion{},
		&model.GrammarChoice{},
		&model.GrammarProgress{},
		&model.ReadingLesson{},
		&model.ReadingText{},
		&model.ReadingQuestion{},
		&model.ReadingChoice{},
		&model.ReadingProgress{},
		&model.ListeningLesson{},
		&model.ListeningVocabulary{},
		&model.ListeningQuestion{},
		&model.ListeningChoice{},
		&model.ListeningProgress{},
		&model.ListeningAttempt{},
		&model.ListeningAttemptAnswer{},
		&model.JlptTest{},
		&model.JlptSection{},
		&model.JlptSubSection{},
		&model.JlptQuestion{},
		&model.JlptChoice{},
		&model.JlptAttempt{},
		&model.JlptAnswer{},
		&model.DictionaryEntry{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Voice{},
		&model.ShadowingSession{},
	)
}

// seedDefaultVoices inserts the built-in Japanese voices once.
func seedDefaultVoices(db *gorm.DB) {
	var count int64
	db.Model(&model.Voice{}).Count(&count)
	if count > 0 {
		return
	}

	defaultVoices := []model.Voice{
		{Name: "sakura", DisplayName: "Sakura", Gender: "female", Language: "ja", Description: "Giọng nữ tiêu chuẩn, tốc độ vừa phải", IsActive: true},
		{Name: "haruka", DisplayName: "Haruka", Gender: "female", Language: "ja", Description: "Giọng nữ trẻ, phát âm rõ ràng", IsActive: true},
		{Name: "takeshi", DisplayName: "Takeshi", Gender: "male", Language: "ja", Description: "Giọng nam trầm, tự nhiên", IsActive: true},
		{Name: "kenji", DisplayName: "Kenji", Gender: "male", Language: "ja", Description: "Giọng nam tiêu chuẩn kiểu phát thanh viên", IsActive: true},
	}
	for _, v := range defaultVoices {
		db.Create(&v)
	}
}
