package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
	"jlpt_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rough speech rate used when no synthesized audio is available yet.
const secondsPerChar = 0.15

type ShadowingService struct {
	ShadowingRepo *repository.ShadowingRepository
	Storage       *StorageService
	TTSConfig     config.TTSConfig
	client        *http.Client
}

func NewShadowingService(repo *repository.ShadowingRepository, storage *StorageService, ttsCfg config.TTSConfig) *ShadowingService {
	return &ShadowingService{
		ShadowingRepo: repo,
		Storage:       storage,
		TTSConfig:     ttsCfg,
		client:        &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *ShadowingService) ListVoices() ([]model.Voice, error) {
	return s.ShadowingRepo.ListVoices()
}

type ShadowingCreateRequest struct {
	InputType string  `json:"input_type"`
	Text      string  `json:"text"`
	Image     string  `json:"image"`
	VoiceID   uint    `json:"voice_id" binding:"required"`
	Speed     float64 `json:"speed"`
	Pitch     int     `json:"pitch"`
}

// CreateSession synthesizes practice audio for the given text. When no
// TTS backend is configured the session still gets an estimated
// duration so the client can render a timeline.
func (s *ShadowingService) CreateSession(ctx context.Context, userID uint, req *ShadowingCreateRequest) (*model.ShadowingSession, error) {
	inputType := req.InputType
	if inputType == "" {
		inputType = model.InputText
	}
	if inputType == model.InputText && req.Text == "" {
		return nil, util.ErrEmptyShadowingInput
	}

	voice, err := s.ShadowingRepo.FindVoiceByID(req.VoiceID)
	if err != nil {
		return nil, util.ErrVoiceNotFound
	}
	if !voice.IsActive {
		return nil, util.ErrVoiceUnavailable
	}

	speed := req.Speed
	if speed == 0 {
		speed = 1.0
	}

	session := &model.ShadowingSession{
		UserID:    userID,
		InputType: inputType,
		TextInput: req.Text,
		Image:     req.Image,
		VoiceID:   voice.ID,
		Speed:     speed,
		Pitch:     req.Pitch,
	}

	estimated := float64(len([]rune(req.Text))) * secondsPerChar / speed
	session.AudioDuration = util.FormatDuration(estimated)

	if s.TTSConfig.BaseURL != "" {
		filename, duration, err := s.synthesize(ctx, req.Text, voice.Name, speed, req.Pitch)
		if err != nil {
			logger.Log.Warn("TTS synthesis failed, keeping estimate", zap.Error(err))
		} else {
			session.AudioFile = filename
			if duration > 0 {
				session.AudioDuration = util.FormatDuration(duration)
			}
		}
	}

	if err := s.ShadowingRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return s.ShadowingRepo.FindSessionByID(userID, session.ID)
}

// synthesize calls the TTS backend, stores the clip and probes its
// real duration.
func (s *ShadowingService) synthesize(ctx context.Context, text, voiceName string, speed float64, pitch int) (string, float64, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"text":  text,
		"voice": voiceName,
		"speed": speed,
		"pitch": pitch,
	})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TTSConfig.BaseURL+"/synthesize", bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.TTSConfig.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.TTSConfig.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", 0, fmt.Errorf("TTS backend returned %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if mimeType := http.DetectContentType(audio); !util.IsAudio(mimeType) {
		return "", 0, fmt.Errorf("TTS backend returned %s instead of audio", mimeType)
	}

	filename := fmt.Sprintf("shadowing/%s.mp3", uuid.New().String())
	if _, err := s.Storage.Upload(ctx, filename, bytes.NewReader(audio), int64(len(audio)), util.MimeMPEG); err != nil {
		return "", 0, err
	}

	var duration float64
	if local, ok := s.Storage.Provider.(*LocalStorageProvider); ok {
		if info, err := util.GetAudioInfo(local.LocalPath(filename)); err == nil {
			duration = info.Duration
		}
	}
	return filename, duration, nil
}

// UploadImage stores a picture the client wants read aloud. The stored
// path goes back into CreateSession as the image input.
func (s *ShadowingService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{"image/"})
	if err != nil || !util.IsImage(mimeType) {
		return "", util.ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("shadowing/images/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if _, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *ShadowingService) ListSessions(userID uint) ([]model.ShadowingSession, error) {
	return s.ShadowingRepo.ListSessions(userID)
}

func (s *ShadowingService) GetSession(userID, sessionID uint) (*model.ShadowingSession, error) {
	session, err := s.ShadowingRepo.FindSessionByID(userID, sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// OpenAudio streams the synthesized clip for download.
func (s *ShadowingService) OpenAudio(ctx context.Context, userID, sessionID uint) (io.ReadCloser, string, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, "", err
	}
	if session.AudioFile == "" {
		return nil, "", util.ErrAudioFileUnavailable
	}

	reader, err := s.Storage.Open(ctx, session.AudioFile)
	if err != nil {
		return nil, "", util.ErrAudioFileUnavailable
	}
	filename := fmt.Sprintf("shadowing_%d.mp3", session.ID)
	return reader, filename, nil
}
