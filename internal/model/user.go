package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	FullName string `gorm:"size:255;not null" json:"fullName"`
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Avatar   string `gorm:"size:255" json:"avatar"`

	// Per-skill JLPT level shown on the profile screen.
	VocabLevel     JlptLevel `gorm:"size:2;default:'N5'" json:"vocabLevel"`
	KanjiLevel     JlptLevel `gorm:"size:2;default:'N5'" json:"kanjiLevel"`
	GrammarLevel   JlptLevel `gorm:"size:2;default:'N5'" json:"grammarLevel"`
	ReadingLevel   JlptLevel `gorm:"size:2;default:'N5'" json:"readingLevel"`
	ListeningLevel JlptLevel `gorm:"size:2;default:'N5'" json:"listeningLevel"`
	ExamLevel      JlptLevel `gorm:"size:2;default:'N5'" json:"examLevel"`

	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
