package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	dictionarySearchLimit = 20
	dictionaryCacheTTL    = 10 * time.Minute
)

type DictionaryService struct {
	DictRepo *repository.DictionaryRepository
	Redis    *redis.Client
}

func NewDictionaryService(dictRepo *repository.DictionaryRepository, rdb *redis.Client) *DictionaryService {
	return &DictionaryService{DictRepo: dictRepo, Redis: rdb}
}

// Search hits the cache first. A cold query goes to the database and
// the result is cached for a short window.
func (s *DictionaryService) Search(ctx context.Context, query, entryType string) ([]model.DictionaryEntry, error) {
	if query == "" {
		return []model.DictionaryEntry{}, nil
	}

	cacheKey := fmt.Sprintf("dict:search:%s:%s", entryType, query)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []model.DictionaryEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.DictRepo.Search(query, entryType, dictionarySearchLimit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, dictionaryCacheTTL).Err(); err != nil {
				logger.Log.Warn("dictionary cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}
