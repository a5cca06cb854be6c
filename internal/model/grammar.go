package model

import "time"

// swagger:model GrammarLesson
type GrammarLesson struct {
	BaseModel

	Level             JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_grammar_level_order" json:"level"`
	Order             int       `gorm:"uniqueIndex:uniq_grammar_level_order" json:"order"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	GrammarPointCount int       `gorm:"default:0" json:"grammarPointCount"`
	Content           string    `gorm:"type:longtext" json:"content"`

	Questions []GrammarQuestion `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (GrammarLesson) TableName() string {
	return "grammar_lessons"
}

type GrammarQuestion struct {
	BaseModel

	LessonID  uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Prompt    string `gorm:"type:text;not null" json:"prompt"`
	AudioFile string `gorm:"size:255" json:"audioFile"`
	Order     int    `gorm:"default:0" json:"order"`

	Choices []GrammarChoice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (GrammarQuestion) TableName() string {
	return "grammar_questions"
}

type GrammarChoice struct {
	BaseModel

	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (GrammarChoice) TableName() string {
	return "grammar_choices"
}

// GrammarProgress keeps the user's best correct count for a lesson.
type GrammarProgress struct {
	BaseModel

	UserID       uint      `gorm:"index;uniqueIndex:uniq_grammar_prog;type:bigint unsigned" json:"userId"`
	LessonID     uint      `gorm:"uniqueIndex:uniq_grammar_prog;type:bigint unsigned" json:"lessonId"`
	CorrectCount int       `gorm:"default:0" json:"correctCount"`
	LastStudied  time.Time `json:"lastStudied"`
}

func (GrammarProgress) TableName() string {
	return "grammar_progress"
}
