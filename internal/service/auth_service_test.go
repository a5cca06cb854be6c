package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewAuthService(repository.NewUserRepository(db), NewStorageService(cfg), cfg)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.Register(&RegisterRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
	assert.False(t, user.LastLogin.IsZero(), "registration stamps the login time")

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	loggedIn, token2, err := svc.Login("a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(&RegisterRequest{FullName: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Register(&RegisterRequest{FullName: "B", Email: "a@example.com", Password: "password456"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(&RegisterRequest{FullName: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Login("a@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthUpdateProfileLevels(t *testing.T) {
	svc := newAuthService(t)

	user, _, err := svc.Register(&RegisterRequest{FullName: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	name := "Nguyen Van B"
	level := "N3"
	updated, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{
		FullName:   &name,
		VocabLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van B", updated.FullName)
	assert.Equal(t, model.LevelN3, updated.VocabLevel)

	bogus := "N9"
	_, err = svc.UpdateProfile(user.ID, &UpdateProfileRequest{KanjiLevel: &bogus})
	assert.ErrorIs(t, err, util.ErrInvalidLevel)
}

func TestAuthUploadAvatar(t *testing.T) {
	svc := newAuthService(t)

	user, _, err := svc.Register(&RegisterRequest{FullName: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	updated, err := svc.UploadAvatar(context.Background(), user.ID, makeFileHeader(t, "me.png", png))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.Avatar, "/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(updated.Avatar, ".png"))

	_, err = svc.UploadAvatar(context.Background(), user.ID, makeFileHeader(t, "notes.txt", []byte("plain text")))
	assert.ErrorIs(t, err, util.ErrUnsupportedFileType)
}
