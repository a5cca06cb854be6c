package model

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatSession struct {
	BaseModel

	UserID uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title  string `gorm:"size:255" json:"title"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type ChatMessage struct {
	BaseModel

	SessionID uint   `gorm:"index;type:bigint unsigned" json:"sessionId"`
	Role      string `gorm:"size:20;not null" json:"role"`
	Content   string `gorm:"type:longtext;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
