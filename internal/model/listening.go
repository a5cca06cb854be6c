package model

import "time"

// swagger:model ListeningLesson
type ListeningLesson struct {
	BaseModel

	Level           JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_listening_level_order" json:"level"`
	Order           int       `gorm:"uniqueIndex:uniq_listening_level_order" json:"order"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	AudioFile       string    `gorm:"size:255" json:"audioFile"`
	DurationSeconds int       `gorm:"default:0" json:"durationSeconds"`
	ScriptJP        string    `gorm:"type:longtext" json:"scriptJp"`
	ScriptVN        string    `gorm:"type:longtext" json:"scriptVn"`
	IsPublished     bool      `gorm:"index" json:"isPublished"`

	Vocabularies []ListeningVocabulary `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"vocabularies,omitempty"`
	Questions    []ListeningQuestion   `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (ListeningLesson) TableName() string {
	return "listening_lessons"
}

type ListeningVocabulary struct {
	BaseModel

	LessonID uint   `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Word     string `gorm:"size:100;not null" json:"word"`
	Reading  string `gorm:"size:100" json:"reading"`
	Meaning  string `gorm:"size:255" json:"meaning"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (ListeningVocabulary) TableName() string {
	return "listening_vocabularies"
}

type ListeningQuestion struct {
	BaseModel

	LessonID       uint   `gorm:"index;uniqueIndex:uniq_listening_q;type:bigint unsigned" json:"lessonId"`
	QuestionNumber int    `gorm:"uniqueIndex:uniq_listening_q" json:"questionNumber"`
	Sentence       string `gorm:"type:text" json:"sentence"`
	UnderlinedWord string `gorm:"size:100" json:"underlinedWord"`
	Explanation    string `gorm:"type:text" json:"explanation"`
	Image          string `gorm:"size:255" json:"image"`

	Choices []ListeningChoice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (ListeningQuestion) TableName() string {
	return "listening_questions"
}

type ListeningChoice struct {
	BaseModel

	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (ListeningChoice) TableName() string {
	return "listening_choices"
}

// ListeningProgress reflects the most recent attempt on a lesson.
type ListeningProgress struct {
	BaseModel

	UserID          uint      `gorm:"index;uniqueIndex:uniq_listening_prog;type:bigint unsigned" json:"userId"`
	LessonID        uint      `gorm:"uniqueIndex:uniq_listening_prog;type:bigint unsigned" json:"lessonId"`
	Status          string    `gorm:"size:20;default:in-progress" json:"status"`
	CorrectCount    int       `gorm:"default:0" json:"correctCount"`
	TotalQuestions  int       `gorm:"default:0" json:"totalQuestions"`
	ProgressPercent int       `gorm:"default:0" json:"progressPercent"`
	LastAttemptAt   time.Time `json:"lastAttemptAt"`
}

func (ListeningProgress) TableName() string {
	return "listening_progress"
}

type ListeningAttempt struct {
	BaseModel

	UserID   uint `gorm:"index;type:bigint unsigned" json:"userId"`
	LessonID uint `gorm:"index;type:bigint unsigned" json:"lessonId"`
	Score    int  `gorm:"default:0" json:"score"`
	Total    int  `gorm:"default:0" json:"total"`

	Answers []ListeningAttemptAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (ListeningAttempt) TableName() string {
	return "listening_attempts"
}

type ListeningAttemptAnswer struct {
	BaseModel

	AttemptID        uint  `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID       uint  `gorm:"type:bigint unsigned" json:"questionId"`
	SelectedChoiceID *uint `gorm:"type:bigint unsigned" json:"selectedChoiceId"`
	IsCorrect        bool  `gorm:"default:false" json:"isCorrect"`
}

func (ListeningAttemptAnswer) TableName() string {
	return "listening_attempt_answers"
}
