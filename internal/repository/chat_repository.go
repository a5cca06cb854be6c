package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateSession(session *model.ChatSession) error {
	return r.DB.Create(session).Error
}

func (r *ChatRepository) FindSessionByID(userID, sessionID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.Where("user_id = ?", userID).First(&session, sessionID).Error
	return &session, err
}

func (r *ChatRepository) ListSessions(userID uint) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *ChatRepository) AppendMessage(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ChatRepository) ListMessages(sessionID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) TouchSession(sessionID uint) error {
	return r.DB.Model(&model.ChatSession{}).
		Where("id = ?", sessionID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
