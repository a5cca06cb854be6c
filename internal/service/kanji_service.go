package service

import (
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"gorm.io/gorm"
)

const kanjiSearchLimit = 20

type KanjiService struct {
	KanjiRepo *repository.KanjiRepository
}

func NewKanjiService(kanjiRepo *repository.KanjiRepository) *KanjiService {
	return &KanjiService{KanjiRepo: kanjiRepo}
}

type KanjiDetail struct {
	ID           uint                    `json:"id"`
	Kanji        string                  `json:"kanji"`
	Hiragana     string                  `json:"hiragana"`
	Vietnamese   string                  `json:"vietnamese"`
	StrokeCount  int                     `json:"stroke_count"`
	Kunyomi      string                  `json:"kunyomi"`
	Onyomi       string                  `json:"onyomi"`
	Meaning      string                  `json:"meaning"`
	IsLearned    bool                    `json:"is_learned"`
	IsMastered   bool                    `json:"is_mastered"`
	Vocabularies []model.KanjiVocabulary `json:"vocabularies"`
}

func (s *KanjiService) ListUnits(level model.JlptLevel) ([]model.KanjiUnit, error) {
	return s.KanjiRepo.ListUnits(level)
}

func (s *KanjiService) GetUnit(unitID uint) (*model.KanjiUnit, error) {
	unit, err := s.KanjiRepo.FindUnitByID(unitID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	return unit, nil
}

type KanjiLessonDetail struct {
	ID           uint          `json:"id"`
	LessonNumber int           `json:"lesson_number"`
	LessonName   string        `json:"lesson_name"`
	Kanjis       []KanjiDetail `json:"kanjis"`
}

func (s *KanjiService) GetLesson(userID, lessonID uint) (*KanjiLessonDetail, error) {
	lesson, err := s.KanjiRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	kanjiIDs := make([]uint, len(lesson.Kanjis))
	for i, k := range lesson.Kanjis {
		kanjiIDs[i] = k.ID
	}
	progressMap, err := s.KanjiRepo.ProgressMap(userID, kanjiIDs)
	if err != nil {
		return nil, err
	}

	detail := &KanjiLessonDetail{
		ID:           lesson.ID,
		LessonNumber: lesson.LessonNumber,
		LessonName:   lesson.LessonName,
		Kanjis:       make([]KanjiDetail, 0, len(lesson.Kanjis)),
	}
	for _, k := range lesson.Kanjis {
		p := progressMap[k.ID]
		detail.Kanjis = append(detail.Kanjis, KanjiDetail{
			ID:           k.ID,
			Kanji:        k.Kanji,
			Hiragana:     k.Hiragana,
			Vietnamese:   k.Vietnamese,
			StrokeCount:  k.StrokeCount,
			Kunyomi:      k.Kunyomi,
			Onyomi:       k.Onyomi,
			Meaning:      k.Meaning,
			IsLearned:    p.IsLearned,
			IsMastered:   p.IsMastered,
			Vocabularies: k.Vocabularies,
		})
	}
	return detail, nil
}

func (s *KanjiService) GetKanji(kanjiID uint) (*model.Kanji, error) {
	k, err := s.KanjiRepo.FindKanjiByID(kanjiID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	return k, nil
}

func (s *KanjiService) Search(query string, level model.JlptLevel) ([]model.Kanji, error) {
	if query == "" {
		return []model.Kanji{}, nil
	}
	return s.KanjiRepo.Search(query, level, kanjiSearchLimit)
}

type KanjiProgressRequest struct {
	KanjiID    uint  `json:"kanji_id" binding:"required"`
	IsLearned  *bool `json:"is_learned"`
	IsMastered *bool `json:"is_mastered"`
}

func (s *KanjiService) ListProgress(userID uint) ([]model.KanjiProgress, error) {
	return s.KanjiRepo.ListProgress(userID)
}

// UpsertProgress creates or updates a per-kanji record and bumps the
// review counter on every call.
func (s *KanjiService) UpsertProgress(userID uint, req *KanjiProgressRequest) (*model.KanjiProgress, error) {
	if _, err := s.KanjiRepo.FindKanjiByID(req.KanjiID); err != nil {
		return nil, util.ErrQuestionNotFound
	}

	progress, err := s.KanjiRepo.FindProgress(userID, req.KanjiID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.KanjiProgress{UserID: userID, KanjiID: req.KanjiID}
	} else if err != nil {
		return nil, err
	}

	if req.IsLearned != nil {
		progress.IsLearned = *req.IsLearned
	}
	if req.IsMastered != nil {
		progress.IsMastered = *req.IsMastered
		if *req.IsMastered {
			progress.IsLearned = true
		}
	}
	progress.ReviewCount++

	if err := s.KanjiRepo.SaveProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *KanjiService) DeleteProgress(userID, progressID uint) error {
	return s.KanjiRepo.DeleteProgress(userID, progressID)
}

func (s *KanjiService) ListFavorites(userID uint) ([]model.KanjiFavorite, error) {
	return s.KanjiRepo.ListFavorites(userID)
}

func (s *KanjiService) AddFavorite(userID, kanjiID uint) (*model.KanjiFavorite, error) {
	if _, err := s.KanjiRepo.FindKanjiByID(kanjiID); err != nil {
		return nil, util.ErrQuestionNotFound
	}

	if fav, err := s.KanjiRepo.FindFavorite(userID, kanjiID); err == nil {
		return fav, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fav := &model.KanjiFavorite{UserID: userID, KanjiID: kanjiID}
	if err := s.KanjiRepo.CreateFavorite(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *KanjiService) RemoveFavorite(userID, favoriteID uint) error {
	return s.KanjiRepo.DeleteFavorite(userID, favoriteID)
}
