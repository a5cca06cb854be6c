package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type ShadowingRepository struct {
	DB *gorm.DB
}

func NewShadowingRepository(db *gorm.DB) *ShadowingRepository {
	return &ShadowingRepository{DB: db}
}

func (r *ShadowingRepository) ListVoices() ([]model.Voice, error) {
	var voices []model.Voice
	err := r.DB.Where("is_active = ?", true).
		Order("name asc").
		Find(&voices).Error
	return voices, err
}

func (r *ShadowingRepository) FindVoiceByID(id uint) (*model.Voice, error) {
	var voice model.Voice
	err := r.DB.First(&voice, id).Error
	return &voice, err
}

func (r *ShadowingRepository) FindVoiceByName(name string) (*model.Voice, error) {
	var voice model.Voice
	err := r.DB.Where("name = ?", name).First(&voice).Error
	return &voice, err
}

func (r *ShadowingRepository) CreateSession(session *model.ShadowingSession) error {
	return r.DB.Create(session).Error
}

func (r *ShadowingRepository) SaveSession(session *model.ShadowingSession) error {
	return r.DB.Save(session).Error
}

func (r *ShadowingRepository) ListSessions(userID uint) ([]model.ShadowingSession, error) {
	var sessions []model.ShadowingSession
	err := r.DB.Preload("Voice").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *ShadowingRepository) FindSessionByID(userID, sessionID uint) (*model.ShadowingSession, error) {
	var session model.ShadowingSession
	err := r.DB.Preload("Voice").
		Where("user_id = ?", userID).
		First(&session, sessionID).Error
	return &session, err
}
