package model

import "time"

// swagger:model VocabularyLesson
type VocabularyLesson struct {
	BaseModel

	JlptLevel   JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_vocab_level_order" json:"jlptLevel"`
	Order       int       `gorm:"uniqueIndex:uniq_vocab_level_order" json:"order"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	Words []VocabularyWord `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"words,omitempty"`
}

func (VocabularyLesson) TableName() string {
	return "vocabulary_lessons"
}

// swagger:model VocabularyWord
type VocabularyWord struct {
	BaseModel

	LessonID   uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Kanji      string `gorm:"size:50" json:"kanji"`
	Hiragana   string `gorm:"size:100;not null" json:"hiragana"`
	Vietnamese string `gorm:"size:100" json:"vietnamese"`
	Meaning    string `gorm:"type:text" json:"meaning"`
	AudioFile  string `gorm:"size:255" json:"-"`
	Order      int    `json:"order"`

	Examples []VocabularyExample `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"examples,omitempty"`
}

func (VocabularyWord) TableName() string {
	return "vocabulary_words"
}

type VocabularyExample struct {
	BaseModel

	WordID     uint   `gorm:"index;type:bigint unsigned" json:"wordId"`
	SentenceJP string `gorm:"type:text" json:"sentenceJp"`
	SentenceVI string `gorm:"type:text" json:"sentenceVi"`
}

func (VocabularyExample) TableName() string {
	return "vocabulary_examples"
}

// VocabularyLessonProgress is upserted per (user, lesson); completed_words is
// client-reported and is_completed flips once it reaches the lesson word count.
type VocabularyLessonProgress struct {
	BaseModel

	UserID         uint      `gorm:"index;uniqueIndex:uniq_vocab_lesson_prog;type:bigint unsigned" json:"userId"`
	LessonID       uint      `gorm:"uniqueIndex:uniq_vocab_lesson_prog;type:bigint unsigned" json:"lessonId"`
	CompletedWords int       `gorm:"default:0" json:"completedWords"`
	IsCompleted    bool      `gorm:"default:false" json:"isCompleted"`
	LastStudiedAt  time.Time `json:"lastStudiedAt"`
}

func (VocabularyLessonProgress) TableName() string {
	return "vocabulary_lesson_progress"
}

type VocabularyWordProgress struct {
	BaseModel

	UserID         uint      `gorm:"index;uniqueIndex:uniq_vocab_word_prog;type:bigint unsigned" json:"userId"`
	WordID         uint      `gorm:"uniqueIndex:uniq_vocab_word_prog;type:bigint unsigned" json:"wordId"`
	IsLearned      bool      `gorm:"default:false" json:"isLearned"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}

func (VocabularyWordProgress) TableName() string {
	return "vocabulary_word_progress"
}

type VocabularyFavorite struct {
	BaseModel

	UserID uint `gorm:"index;uniqueIndex:uniq_vocab_fav;type:bigint unsigned" json:"userId"`
	WordID uint `gorm:"uniqueIndex:uniq_vocab_fav;type:bigint unsigned" json:"wordId"`
}

func (VocabularyFavorite) TableName() string {
	return "vocabulary_favorites"
}
