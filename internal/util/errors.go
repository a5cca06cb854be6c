package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidLevel         = errors.New("invalid JLPT level")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrChoiceNotFound       = errors.New("choice not found")
	ErrTestNotFound         = errors.New("test not found")
	ErrTestNotPublished     = errors.New("test not published or not accessible")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrVoiceNotFound        = errors.New("voice not found")
	ErrVoiceUnavailable     = errors.New("voice is not active")
	ErrEmptyShadowingInput  = errors.New("text input is required")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrCategoryNotFound     = errors.New("notebook category not found")
	ErrChatServiceDisabled  = errors.New("chat service is not configured")
	ErrAudioFileUnavailable = errors.New("audio file not available")
)
