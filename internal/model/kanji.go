package model

import "time"

// swagger:model KanjiUnit
type KanjiUnit struct {
	BaseModel

	Level       JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_kanji_unit" json:"level"`
	UnitNumber  int       `gorm:"uniqueIndex:uniq_kanji_unit" json:"unitNumber"`
	UnitName    string    `gorm:"size:100;not null" json:"unitName"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"default:0" json:"order"`

	Lessons []KanjiLesson `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (KanjiUnit) TableName() string {
	return "kanji_units"
}

type KanjiLesson struct {
	BaseModel

	UnitID       uint   `gorm:"index;uniqueIndex:uniq_kanji_lesson;type:bigint unsigned" json:"unitId"`
	LessonNumber int    `gorm:"uniqueIndex:uniq_kanji_lesson" json:"lessonNumber"`
	LessonName   string `gorm:"size:100" json:"lessonName"`
	Order        int    `gorm:"default:0" json:"order"`

	Kanjis []Kanji `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"kanjis,omitempty"`
}

func (KanjiLesson) TableName() string {
	return "kanji_lessons"
}

// swagger:model Kanji
type Kanji struct {
	BaseModel

	LessonID    uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Kanji       string `gorm:"size:4;index;not null" json:"kanji"`
	Hiragana    string `gorm:"size:50" json:"hiragana"`
	Vietnamese  string `gorm:"size:50" json:"vietnamese"`
	StrokeCount int    `json:"strokeCount"`
	Kunyomi     string `gorm:"size:100" json:"kunyomi"`
	Onyomi      string `gorm:"size:100" json:"onyomi"`
	Meaning     string `gorm:"type:text" json:"meaning"`
	Order       int    `gorm:"default:0" json:"order"`

	Vocabularies []KanjiVocabulary `gorm:"foreignKey:KanjiID;constraint:OnDelete:CASCADE" json:"vocabularies,omitempty"`
}

func (Kanji) TableName() string {
	return "kanjis"
}

type KanjiVocabulary struct {
	BaseModel

	KanjiID         uint   `gorm:"index;type:bigint unsigned" json:"kanjiId"`
	KanjiWord       string `gorm:"size:50;not null" json:"kanjiWord"`
	Hiragana        string `gorm:"size:50" json:"hiragana"`
	Reading         string `gorm:"size:50" json:"reading"`
	Meaning         string `gorm:"size:200" json:"meaning"`
	ExampleSentence string `gorm:"type:text" json:"exampleSentence"`
	Order           int    `gorm:"default:0" json:"order"`
}

func (KanjiVocabulary) TableName() string {
	return "kanji_vocabularies"
}

type KanjiProgress struct {
	BaseModel

	UserID         uint      `gorm:"index;uniqueIndex:uniq_kanji_prog;type:bigint unsigned" json:"userId"`
	KanjiID        uint      `gorm:"uniqueIndex:uniq_kanji_prog;type:bigint unsigned" json:"kanjiId"`
	IsLearned      bool      `gorm:"default:false" json:"isLearned"`
	IsMastered     bool      `gorm:"default:false" json:"isMastered"`
	ReviewCount    int       `gorm:"default:0" json:"reviewCount"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`

	Kanji *Kanji `gorm:"foreignKey:KanjiID" json:"kanji,omitempty"`
}

func (KanjiProgress) TableName() string {
	return "kanji_progress"
}

type KanjiFavorite struct {
	BaseModel

	UserID  uint `gorm:"index;uniqueIndex:uniq_kanji_fav;type:bigint unsigned" json:"userId"`
	KanjiID uint `gorm:"uniqueIndex:uniq_kanji_fav;type:bigint unsigned" json:"kanjiId"`

	Kanji *Kanji `gorm:"foreignKey:KanjiID" json:"kanji,omitempty"`
}

func (KanjiFavorite) TableName() string {
	return "kanji_favorites"
}
