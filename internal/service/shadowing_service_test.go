package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newShadowingService(t *testing.T, db *gorm.DB) *ShadowingService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewShadowingService(
		repository.NewShadowingRepository(db),
		NewStorageService(cfg),
		config.TTSConfig{},
	)
}

func seedVoice(t *testing.T, db *gorm.DB, active bool) *model.Voice {
	t.Helper()
	voice := &model.Voice{
		Name:        "sakura",
		DisplayName: "Sakura",
		Gender:      "female",
		Language:    "ja",
		IsActive:    active,
	}
	require.NoError(t, db.Create(voice).Error)
	return voice
}

func TestShadowingCreateSessionEstimatesDuration(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, true)

	// 100 chars at 0.15 s/char is 15 seconds.
	text := strings.Repeat("あ", 100)

	session, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{
		Text:    text,
		VoiceID: voice.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.InputText, session.InputType)
	assert.Equal(t, 1.0, session.Speed)
	assert.Equal(t, "0:15", session.AudioDuration)
	assert.Empty(t, session.AudioFile)
	require.NotNil(t, session.Voice)
	assert.Equal(t, "sakura", session.Voice.Name)
}

func TestShadowingCreateSessionSpeedShortensEstimate(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, true)

	session, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{
		Text:    strings.Repeat("あ", 100),
		VoiceID: voice.ID,
		Speed:   1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "0:10", session.AudioDuration)
}

func TestShadowingCreateSessionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, true)

	_, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{VoiceID: voice.ID})
	assert.ErrorIs(t, err, util.ErrEmptyShadowingInput)

	_, err = svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{Text: "こんにちは", VoiceID: 999})
	assert.ErrorIs(t, err, util.ErrVoiceNotFound)
}

func TestShadowingInactiveVoiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, false)

	_, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{Text: "こんにちは", VoiceID: voice.ID})
	assert.ErrorIs(t, err, util.ErrVoiceUnavailable)

	voices, err := svc.ListVoices()
	require.NoError(t, err)
	assert.Empty(t, voices, "inactive voices are hidden from the list")
}

func TestShadowingSessionsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, true)

	created, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{Text: "こんにちは", VoiceID: voice.ID})
	require.NoError(t, err)

	mine, err := svc.ListSessions(8)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := svc.ListSessions(9)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.GetSession(9, created.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestShadowingUploadImage(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	filename, err := svc.UploadImage(context.Background(), makeFileHeader(t, "scan.png", png))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "shadowing/images/"))
	assert.True(t, strings.HasSuffix(filename, ".png"))

	_, err = svc.UploadImage(context.Background(), makeFileHeader(t, "notes.txt", []byte("plain text")))
	assert.ErrorIs(t, err, util.ErrUnsupportedFileType)
}

func TestShadowingOpenAudioWithoutFile(t *testing.T) {
	db := newTestDB(t)
	svc := newShadowingService(t, db)
	voice := seedVoice(t, db, true)

	created, err := svc.CreateSession(context.Background(), 8, &ShadowingCreateRequest{Text: "こんにちは", VoiceID: voice.ID})
	require.NoError(t, err)

	_, _, err = svc.OpenAudio(context.Background(), 8, created.ID)
	assert.ErrorIs(t, err, util.ErrAudioFileUnavailable)
}
