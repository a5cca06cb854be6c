package service

import (
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"gorm.io/gorm"
)

type VocabService struct {
	VocabRepo *repository.VocabRepository
}

func NewVocabService(vocabRepo *repository.VocabRepository) *VocabService {
	return &VocabService{VocabRepo: vocabRepo}
}

type VocabLessonSummary struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	JlptLevel   model.JlptLevel `json:"jlpt_level"`
	Order       int             `json:"order"`
	WordCount   int             `json:"word_count"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
}

type VocabWordDetail struct {
	ID         uint                      `json:"id"`
	Kanji      string                    `json:"kanji"`
	Hiragana   string                    `json:"hiragana"`
	Vietnamese string                    `json:"vietnamese"`
	Meaning    string                    `json:"meaning"`
	Order      int                       `json:"order"`
	IsLearned  bool                      `json:"is_learned"`
	IsFavorite bool                      `json:"is_favorite"`
	Examples   []model.VocabularyExample `json:"examples"`
}

type VocabLessonDetail struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	JlptLevel   model.JlptLevel   `json:"jlpt_level"`
	Words       []VocabWordDetail `json:"words"`
}

func (s *VocabService) ListLessons(userID uint, level model.JlptLevel) ([]VocabLessonSummary, error) {
	lessons, err := s.VocabRepo.ListLessons(level)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	counts, err := s.VocabRepo.WordCounts(lessonIDs)
	if err != nil {
		return nil, err
	}
	progressMap, err := s.VocabRepo.LessonProgressMap(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]VocabLessonSummary, 0, len(lessons))
	for _, l := range lessons {
		total := counts[l.ID]
		summary := VocabLessonSummary{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			JlptLevel:   l.JlptLevel,
			Order:       l.Order,
			WordCount:   total,
			Status:      model.StatusNotStarted,
		}
		if p, ok := progressMap[l.ID]; ok {
			summary.Progress = percent(p.CompletedWords, total)
			if p.IsCompleted {
				summary.Status = model.StatusCompleted
			} else {
				summary.Status = model.StatusInProgress
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *VocabService) GetLesson(userID, lessonID uint) (*VocabLessonDetail, error) {
	lesson, err := s.VocabRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	wordIDs := make([]uint, len(lesson.Words))
	for i, w := range lesson.Words {
		wordIDs[i] = w.ID
	}

	learned, err := s.VocabRepo.LearnedWordMap(userID, wordIDs)
	if err != nil {
		return nil, err
	}
	favorites, err := s.VocabRepo.FavoriteWordMap(userID, wordIDs)
	if err != nil {
		return nil, err
	}

	detail := &VocabLessonDetail{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		JlptLevel:   lesson.JlptLevel,
		Words:       make([]VocabWordDetail, 0, len(lesson.Words)),
	}
	for _, w := range lesson.Words {
		detail.Words = append(detail.Words, VocabWordDetail{
			ID:         w.ID,
			Kanji:      w.Kanji,
			Hiragana:   w.Hiragana,
			Vietnamese: w.Vietnamese,
			Meaning:    w.Meaning,
			Order:      w.Order,
			IsLearned:  learned[w.ID],
			IsFavorite: favorites[w.ID],
			Examples:   w.Examples,
		})
	}
	return detail, nil
}

type VocabProgressResult struct {
	CompletedWords int    `json:"completed_words"`
	TotalWords     int    `json:"total_words"`
	IsCompleted    bool   `json:"is_completed"`
	Status         string `json:"status"`
}

// UpdateLessonProgress records how many words of the lesson the user
// has gone through. Completion never regresses.
func (s *VocabService) UpdateLessonProgress(userID, lessonID uint, completedWords int) (*VocabProgressResult, error) {
	if _, err := s.VocabRepo.FindLessonByID(lessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}

	total, err := s.VocabRepo.CountWords(lessonID)
	if err != nil {
		return nil, err
	}

	progress, err := s.VocabRepo.FindLessonProgress(userID, lessonID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.VocabularyLessonProgress{UserID: userID, LessonID: lessonID}
	} else if err != nil {
		return nil, err
	}

	if completedWords > progress.CompletedWords {
		progress.CompletedWords = completedWords
	}
	if int64(progress.CompletedWords) >= total && total > 0 {
		progress.IsCompleted = true
	}
	if err := s.VocabRepo.SaveLessonProgress(progress); err != nil {
		return nil, err
	}

	status := model.StatusInProgress
	if progress.IsCompleted {
		status = model.StatusCompleted
	}
	return &VocabProgressResult{
		CompletedWords: progress.CompletedWords,
		TotalWords:     int(total),
		IsCompleted:    progress.IsCompleted,
		Status:         status,
	}, nil
}

// MarkWord flips the learned flag for a single word.
func (s *VocabService) MarkWord(userID, wordID uint, learned bool) (*model.VocabularyWordProgress, error) {
	if _, err := s.VocabRepo.FindWordByID(wordID); err != nil {
		return nil, util.ErrQuestionNotFound
	}

	progress, err := s.VocabRepo.FindWordProgress(userID, wordID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.VocabularyWordProgress{UserID: userID, WordID: wordID}
	} else if err != nil {
		return nil, err
	}

	progress.IsLearned = learned
	if err := s.VocabRepo.SaveWordProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// ToggleFavorite sets the favorite state and reports the final state.
func (s *VocabService) ToggleFavorite(userID, wordID uint, favorite bool) (bool, error) {
	if _, err := s.VocabRepo.FindWordByID(wordID); err != nil {
		return false, util.ErrQuestionNotFound
	}

	_, err := s.VocabRepo.FindFavorite(userID, wordID)
	exists := err == nil
	if err != nil && err != gorm.ErrRecordNotFound {
		return false, err
	}

	if favorite && !exists {
		if err := s.VocabRepo.CreateFavorite(&model.VocabularyFavorite{UserID: userID, WordID: wordID}); err != nil {
			return false, err
		}
	}
	if !favorite && exists {
		if err := s.VocabRepo.DeleteFavorite(userID, wordID); err != nil {
			return false, err
		}
	}
	return favorite, nil
}
