package model

import "time"

// swagger:model ReadingLesson
type ReadingLesson struct {
	BaseModel

	Level   JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_reading_level_order" json:"level"`
	Order   int       `gorm:"uniqueIndex:uniq_reading_level_order" json:"order"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Preview string    `gorm:"type:text" json:"preview"`

	Texts     []ReadingText     `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"texts,omitempty"`
	Questions []ReadingQuestion `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (ReadingLesson) TableName() string {
	return "reading_lessons"
}

type ReadingText struct {
	BaseModel

	LessonID          uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	ContentJapanese   string `gorm:"type:longtext" json:"contentJapanese"`
	ContentVietnamese string `gorm:"type:longtext" json:"contentVietnamese"`
	Order             int    `gorm:"default:0" json:"order"`
}

func (ReadingText) TableName() string {
	return "reading_texts"
}

type ReadingQuestion struct {
	BaseModel

	LessonID uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Order    int    `gorm:"default:0" json:"order"`

	Choices []ReadingChoice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (ReadingQuestion) TableName() string {
	return "reading_questions"
}

type ReadingChoice struct {
	BaseModel

	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (ReadingChoice) TableName() string {
	return "reading_choices"
}

type ReadingProgress struct {
	BaseModel

	UserID         uint      `gorm:"index;uniqueIndex:uniq_reading_prog;type:bigint unsigned" json:"userId"`
	LessonID       uint      `gorm:"uniqueIndex:uniq_reading_prog;type:bigint unsigned" json:"lessonId"`
	CorrectCount   int       `gorm:"default:0" json:"correctCount"`
	TotalQuestions int       `gorm:"default:0" json:"totalQuestions"`
	Progress       int       `gorm:"default:0" json:"progress"`
	Status         string    `gorm:"size:20;default:in-progress" json:"status"`
	LastAttemptAt  time.Time `json:"lastAttemptAt"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
