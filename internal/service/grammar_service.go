package service

import (
	"time"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
	"jlpt_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type GrammarService struct {
	GrammarRepo *repository.GrammarRepository
}

func NewGrammarService(grammarRepo *repository.GrammarRepository) *GrammarService {
	return &GrammarService{GrammarRepo: grammarRepo}
}

type GrammarProgressBlob struct {
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`
	Percent        int `json:"percent"`
}

type GrammarLessonSummary struct {
	ID                uint                 `json:"id"`
	Title             string               `json:"title"`
	Level             model.JlptLevel      `json:"level"`
	Order             int                  `json:"order"`
	GrammarPointCount int                  `json:"grammar_point_count"`
	Progress          *GrammarProgressBlob `json:"progress"`
}

func (s *GrammarService) ListLessons(userID uint, level model.JlptLevel) ([]GrammarLessonSummary, error) {
	lessons, err := s.GrammarRepo.ListLessons(level)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}
	progressMap, err := s.GrammarRepo.ProgressMap(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]GrammarLessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summary := GrammarLessonSummary{
			ID:                l.ID,
			Title:             l.Title,
			Level:             l.Level,
			Order:             l.Order,
			GrammarPointCount: l.GrammarPointCount,
		}
		if p, ok := progressMap[l.ID]; ok {
			total, err := s.GrammarRepo.CountQuestions(l.ID)
			if err != nil {
				return nil, err
			}
			summary.Progress = &GrammarProgressBlob{
				CorrectCount:   p.CorrectCount,
				TotalQuestions: int(total),
				Percent:        percent(p.CorrectCount, int(total)),
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

type GrammarLessonDetail struct {
	Lesson   *model.GrammarLesson `json:"lesson"`
	Progress *GrammarProgressBlob `json:"progress"`
}

func (s *GrammarService) GetLesson(userID, lessonID uint) (*GrammarLessonDetail, error) {
	lesson, err := s.GrammarRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	detail := &GrammarLessonDetail{Lesson: lesson}
	if p, err := s.GrammarRepo.FindProgress(userID, lessonID); err == nil {
		total := len(lesson.Questions)
		detail.Progress = &GrammarProgressBlob{
			CorrectCount:   p.CorrectCount,
			TotalQuestions: total,
			Percent:        percent(p.CorrectCount, total),
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return detail, nil
}

type GrammarSubmitRequest struct {
	LessonID uint          `json:"lesson_id" binding:"required"`
	Answers  map[uint]uint `json:"answers" binding:"required"`
}

type GrammarSubmitResult struct {
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`
	Percent        int `json:"percent"`
}

// SubmitAnswers grades one pass over a lesson. Stored progress keeps
// the best correct count across attempts.
func (s *GrammarService) SubmitAnswers(userID uint, req *GrammarSubmitRequest) (*GrammarSubmitResult, error) {
	questionIDs, err := s.GrammarRepo.QuestionIDs(req.LessonID)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		if _, err := s.GrammarRepo.FindLessonByID(req.LessonID); err != nil {
			return nil, util.ErrLessonNotFound
		}
	}

	correct := 0
	for _, qid := range questionIDs {
		choiceID, answered := req.Answers[qid]
		if !answered {
			continue
		}
		ok, err := s.GrammarRepo.IsCorrectChoice(qid, choiceID)
		if err != nil {
			return nil, err
		}
		if ok {
			correct++
		}
	}

	if err := s.applyProgress(userID, req.LessonID, correct); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("grammar").Inc()

	total := len(questionIDs)
	return &GrammarSubmitResult{
		CorrectCount:   correct,
		TotalQuestions: total,
		Percent:        percent(correct, total),
	}, nil
}

type GrammarProgressRequest struct {
	LessonID     uint `json:"lesson_id" binding:"required"`
	CorrectCount int  `json:"correct_count"`
}

// UpdateProgress lets a client push a correct count directly, with
// the same never-regress rule as submission.
func (s *GrammarService) UpdateProgress(userID uint, req *GrammarProgressRequest) (*GrammarProgressBlob, error) {
	if _, err := s.GrammarRepo.FindLessonByID(req.LessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}

	if err := s.applyProgress(userID, req.LessonID, req.CorrectCount); err != nil {
		return nil, err
	}

	p, err := s.GrammarRepo.FindProgress(userID, req.LessonID)
	if err != nil {
		return nil, err
	}
	total, err := s.GrammarRepo.CountQuestions(req.LessonID)
	if err != nil {
		return nil, err
	}
	return &GrammarProgressBlob{
		CorrectCount:   p.CorrectCount,
		TotalQuestions: int(total),
		Percent:        percent(p.CorrectCount, int(total)),
	}, nil
}

func (s *GrammarService) applyProgress(userID, lessonID uint, correct int) error {
	progress, err := s.GrammarRepo.FindProgress(userID, lessonID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.GrammarProgress{UserID: userID, LessonID: lessonID}
	} else if err != nil {
		return err
	}

	progress.CorrectCount = KeepBest.merge(progress.CorrectCount, correct)
	progress.LastStudied = time.Now()
	return s.GrammarRepo.SaveProgress(progress)
}
