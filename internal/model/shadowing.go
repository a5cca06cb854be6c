package model

// Shadowing session input kinds.
const (
	InputText  = "text"
	InputImage = "image"
)

// swagger:model Voice
type Voice struct {
	BaseModel

	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"size:100" json:"displayName"`
	Gender      string `gorm:"size:10" json:"gender"`
	Language    string `gorm:"size:10;default:ja" json:"language"`
	Description string `gorm:"size:255" json:"description"`
	IsActive    bool   `gorm:"index" json:"isActive"`
}

func (Voice) TableName() string {
	return "shadowing_voices"
}

type ShadowingSession struct {
	BaseModel

	UserID        uint    `gorm:"index;type:bigint unsigned" json:"userId"`
	InputType     string  `gorm:"size:10;default:text" json:"inputType"`
	TextInput     string  `gorm:"type:text" json:"textInput"`
	Image         string  `gorm:"size:255" json:"image"`
	VoiceID       uint    `gorm:"index;type:bigint unsigned" json:"voiceId"`
	Speed         float64 `gorm:"default:1.0" json:"speed"`
	Pitch         int     `gorm:"default:0" json:"pitch"`
	AudioFile     string  `gorm:"size:255" json:"audioFile"`
	AudioDuration string  `gorm:"size:10" json:"audioDuration"`

	Voice *Voice `gorm:"foreignKey:VoiceID" json:"voice,omitempty"`
}

func (ShadowingSession) TableName() string {
	return "shadowing_sessions"
}
