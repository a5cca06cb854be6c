package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, storage *StorageService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Storage:  storage,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name"`
	Avatar         *string `json:"avatar"`
	VocabLevel     *string `json:"vocab_level"`
	KanjiLevel     *string `json:"kanji_level"`
	GrammarLevel   *string `json:"grammar_level"`
	ReadingLevel   *string `json:"reading_level"`
	ListeningLevel *string `json:"listening_level"`
	ExamLevel      *string `json:"exam_level"`
}

func (s *AuthService) Register(req *RegisterRequest) (*model.User, string, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		LastLogin: time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastSeen(user.ID); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

// UpdateProfile patches only the provided fields. Skill level fields
// must hold a valid JLPT level.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	levelFields := []struct {
		in  *string
		out *model.JlptLevel
	}{
		{req.VocabLevel, &user.VocabLevel},
		{req.KanjiLevel, &user.KanjiLevel},
		{req.GrammarLevel, &user.GrammarLevel},
		{req.ReadingLevel, &user.ReadingLevel},
		{req.ListeningLevel, &user.ListeningLevel},
		{req.ExamLevel, &user.ExamLevel},
	}
	for _, f := range levelFields {
		if f.in == nil {
			continue
		}
		level := model.JlptLevel(*f.in)
		if !level.Valid() {
			return nil, util.ErrInvalidLevel
		}
		*f.out = level
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the picture and points the profile at its URL.
func (s *AuthService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{"image/"})
	if err != nil || !util.IsImage(mimeType) {
		return nil, util.ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if _, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType); err != nil {
		return nil, err
	}

	user.Avatar = s.Storage.GetURL(filename)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
