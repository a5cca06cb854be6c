package service

import (
	"time"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
	"jlpt_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ListeningService struct {
	ListeningRepo *repository.ListeningRepository
}

func NewListeningService(listeningRepo *repository.ListeningRepository) *ListeningService {
	return &ListeningService{ListeningRepo: listeningRepo}
}

type ListeningLessonSummary struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Level           model.JlptLevel `json:"level"`
	Order           int             `json:"order"`
	Duration        int             `json:"duration"`
	Status          string          `json:"status"`
	ProgressPercent int             `json:"progress_percent"`
}

func (s *ListeningService) ListLessons(userID uint, level model.JlptLevel) ([]ListeningLessonSummary, error) {
	lessons, err := s.ListeningRepo.ListLessons(level)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}
	progressMap, err := s.ListeningRepo.ProgressMap(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ListeningLessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summary := ListeningLessonSummary{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Level:       l.Level,
			Order:       l.Order,
			Duration:    l.DurationSeconds,
			Status:      model.StatusNotStarted,
		}
		if p, ok := progressMap[l.ID]; ok {
			summary.Status = p.Status
			summary.ProgressPercent = p.ProgressPercent
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ListeningService) GetLesson(lessonID uint) (*model.ListeningLesson, error) {
	lesson, err := s.ListeningRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

type ListeningSubmitAnswer struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	ChoiceID   *uint `json:"choice_id"`
}

type ListeningSubmitRequest struct {
	Answers []ListeningSubmitAnswer `json:"answers" binding:"required"`
}

func (r *ListeningSubmitRequest) selected() map[uint]uint {
	m := make(map[uint]uint, len(r.Answers))
	for _, a := range r.Answers {
		if a.ChoiceID != nil {
			m[a.QuestionID] = *a.ChoiceID
		}
	}
	return m
}

type ListeningAnswerDetail struct {
	QuestionID       uint   `json:"question_id"`
	IsCorrect        bool   `json:"is_correct"`
	CorrectChoiceID  uint   `json:"correct_choice_id"`
	SelectedChoiceID *uint  `json:"selected_choice_id"`
	Explanation      string `json:"explanation"`
}

type ListeningSubmitResult struct {
	Score           int                     `json:"score"`
	Total           int                     `json:"total"`
	Status          string                  `json:"status"`
	ProgressPercent int                     `json:"progress_percent"`
	Detail          []ListeningAnswerDetail `json:"detail"`
}

// SubmitLesson grades every question of the lesson, records an attempt
// and overwrites progress with this attempt's result.
func (s *ListeningService) SubmitLesson(userID, lessonID uint, req *ListeningSubmitRequest) (*ListeningSubmitResult, error) {
	if _, err := s.ListeningRepo.FindLessonByID(lessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}

	questions, err := s.ListeningRepo.QuestionsWithChoices(lessonID)
	if err != nil {
		return nil, err
	}

	selected := req.selected()
	total := len(questions)
	score := 0
	details := make([]ListeningAnswerDetail, 0, total)
	answers := make([]model.ListeningAttemptAnswer, 0, total)

	for _, q := range questions {
		var correctChoiceID uint
		for _, c := range q.Choices {
			if c.IsCorrect {
				correctChoiceID = c.ID
				break
			}
		}

		detail := ListeningAnswerDetail{
			QuestionID:      q.ID,
			CorrectChoiceID: correctChoiceID,
			Explanation:     q.Explanation,
		}

		if choiceID, answered := selected[q.ID]; answered {
			for _, c := range q.Choices {
				if c.ID == choiceID {
					selected := c.ID
					detail.SelectedChoiceID = &selected
					detail.IsCorrect = c.IsCorrect
					break
				}
			}
		}
		if detail.IsCorrect {
			score++
		}

		details = append(details, detail)
		answers = append(answers, model.ListeningAttemptAnswer{
			QuestionID:       q.ID,
			SelectedChoiceID: detail.SelectedChoiceID,
			IsCorrect:        detail.IsCorrect,
		})
	}

	pct := percent(score, total)
	status := progressStatus(pct)
	if total == 0 {
		pct = 0
		status = model.StatusInProgress
	}

	err = s.ListeningRepo.DB.Transaction(func(tx *gorm.DB) error {
		attempt := &model.ListeningAttempt{
			UserID:   userID,
			LessonID: lessonID,
			Score:    score,
			Total:    total,
			Answers:  answers,
		}
		if err := s.ListeningRepo.CreateAttempt(tx, attempt); err != nil {
			return err
		}

		progress, err := s.ListeningRepo.FindProgress(tx, userID, lessonID)
		if err == gorm.ErrRecordNotFound {
			progress = &model.ListeningProgress{UserID: userID, LessonID: lessonID}
		} else if err != nil {
			return err
		}

		progress.CorrectCount = KeepLast.merge(progress.CorrectCount, score)
		progress.TotalQuestions = total
		progress.ProgressPercent = pct
		progress.Status = status
		progress.LastAttemptAt = time.Now()
		return s.ListeningRepo.SaveProgress(tx, progress)
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("listening").Inc()
	return &ListeningSubmitResult{
		Score:           score,
		Total:           total,
		Status:          status,
		ProgressPercent: pct,
		Detail:          details,
	}, nil
}
