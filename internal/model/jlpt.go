package model

import "time"

// Question section types of a mock test.
const (
	SectionVocab     = "vocab"
	SectionGrammar   = "grammar"
	SectionReading   = "reading"
	SectionListening = "listening"
)

// Attempt lifecycle.
const (
	AttemptInProgress = "in_progress"
	AttemptSubmitted  = "submitted"
)

// swagger:model JlptTest
type JlptTest struct {
	BaseModel

	Level           JlptLevel `gorm:"size:2;index;uniqueIndex:uniq_jlpt_level_order" json:"level"`
	Order           int       `gorm:"uniqueIndex:uniq_jlpt_level_order" json:"order"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DurationMinutes int       `gorm:"default:140" json:"durationMinutes"`
	TotalScore      int       `gorm:"default:180" json:"totalScore"`
	IsPublished     bool      `gorm:"index" json:"isPublished"`

	Sections []JlptSection `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (JlptTest) TableName() string {
	return "jlpt_tests"
}

type JlptSection struct {
	BaseModel

	TestID      uint   `gorm:"index;type:bigint unsigned" json:"testId"`
	SectionType string `gorm:"size:20;not null" json:"sectionType"`
	TitleJP     string `gorm:"size:255" json:"titleJp"`
	TitleVN     string `gorm:"size:255" json:"titleVn"`
	Order       int    `gorm:"default:0" json:"order"`
	MaxScore    int    `gorm:"default:60" json:"maxScore"`

	SubSections []JlptSubSection `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"subSections,omitempty"`
	Questions   []JlptQuestion   `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (JlptSection) TableName() string {
	return "jlpt_sections"
}

type JlptSubSection struct {
	BaseModel

	SectionID uint   `gorm:"index;type:bigint unsigned" json:"sectionId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Order     int    `gorm:"default:0" json:"order"`
}

func (JlptSubSection) TableName() string {
	return "jlpt_sub_sections"
}

type JlptQuestion struct {
	BaseModel

	SectionID       uint   `gorm:"index;uniqueIndex:uniq_jlpt_q;type:bigint unsigned" json:"sectionId"`
	SubSectionID    *uint  `gorm:"index;type:bigint unsigned" json:"subSectionId"`
	QuestionNumber  int    `gorm:"uniqueIndex:uniq_jlpt_q" json:"questionNumber"`
	Instruction     string `gorm:"type:text" json:"instruction"`
	Sentence        string `gorm:"type:text" json:"sentence"`
	UnderlinedWord  string `gorm:"size:100" json:"underlinedWord"`
	Image           string `gorm:"size:255" json:"image"`
	AudioFile       string `gorm:"size:255" json:"audioFile"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"`
	Explanation     string `gorm:"type:text" json:"explanation"`

	Choices []JlptChoice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (JlptQuestion) TableName() string {
	return "jlpt_questions"
}

type JlptChoice struct {
	BaseModel

	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (JlptChoice) TableName() string {
	return "jlpt_choices"
}

type JlptAttempt struct {
	BaseModel

	UserID      uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	TestID      uint       `gorm:"index;type:bigint unsigned" json:"testId"`
	Status      string     `gorm:"size:20;default:in_progress;index" json:"status"`
	Score       int        `gorm:"default:0" json:"score"`
	TotalScore  int        `gorm:"default:180" json:"totalScore"`
	StartedAt   time.Time  `json:"startedAt"`
	SubmittedAt *time.Time `json:"submittedAt"`

	Test    *JlptTest    `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Answers []JlptAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (JlptAttempt) TableName() string {
	return "jlpt_attempts"
}

// JlptAnswer freezes correctness at submission time so later content
// edits do not rewrite history.
type JlptAnswer struct {
	BaseModel

	AttemptID        uint  `gorm:"index;uniqueIndex:uniq_jlpt_answer;type:bigint unsigned" json:"attemptId"`
	QuestionID       uint  `gorm:"uniqueIndex:uniq_jlpt_answer;type:bigint unsigned" json:"questionId"`
	SelectedChoiceID *uint `gorm:"type:bigint unsigned" json:"selectedChoiceId"`
	IsCorrect        bool  `gorm:"default:false" json:"isCorrect"`
}

func (JlptAnswer) TableName() string {
	return "jlpt_answers"
}
