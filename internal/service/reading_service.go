package service

import (
	"time"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
	"jlpt_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ReadingService struct {
	ReadingRepo *repository.ReadingRepository
}

func NewReadingService(readingRepo *repository.ReadingRepository) *ReadingService {
	return &ReadingService{ReadingRepo: readingRepo}
}

type ReadingLessonSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Preview       string `json:"preview"`
	ReadingCount  int    `json:"reading_count"`
	ExerciseCount int    `json:"exercise_count"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
}

type ReadingOverview struct {
	TotalProgress int                    `json:"total_progress"`
	Lessons       []ReadingLessonSummary `json:"lessons"`
}

func (s *ReadingService) ListLessons(userID uint, level model.JlptLevel) (*ReadingOverview, error) {
	lessons, err := s.ReadingRepo.ListLessons(level)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	textCounts, err := s.ReadingRepo.TextCounts(lessonIDs)
	if err != nil {
		return nil, err
	}
	questionCounts, err := s.ReadingRepo.QuestionCounts(lessonIDs)
	if err != nil {
		return nil, err
	}
	progressMap, err := s.ReadingRepo.ProgressMap(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	overview := &ReadingOverview{Lessons: make([]ReadingLessonSummary, 0, len(lessons))}
	completed := 0
	for _, l := range lessons {
		summary := ReadingLessonSummary{
			ID:            l.ID,
			Title:         l.Title,
			Preview:       l.Preview,
			ReadingCount:  textCounts[l.ID],
			ExerciseCount: questionCounts[l.ID],
			Status:        model.StatusNotStarted,
		}
		if p, ok := progressMap[l.ID]; ok {
			summary.Status = p.Status
			summary.Progress = p.Progress
			if p.Status == model.StatusCompleted {
				completed++
			}
		}
		overview.Lessons = append(overview.Lessons, summary)
	}
	overview.TotalProgress = truncPercent(completed, len(lessons))
	return overview, nil
}

func (s *ReadingService) GetLesson(lessonID uint) (*model.ReadingLesson, error) {
	lesson, err := s.ReadingRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

type ReadingAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	ChoiceID   uint `json:"choice_id" binding:"required"`
}

type ReadingAnswerResult struct {
	IsCorrect       bool `json:"is_correct"`
	CorrectChoiceID uint `json:"correct_choice_id"`
	LessonProgress  int  `json:"lesson_progress"`
	LessonStatus    string `json:"lesson_status"`
}

// SubmitAnswer grades a single question and folds the outcome into
// the lesson progress inside one transaction.
func (s *ReadingService) SubmitAnswer(userID uint, req *ReadingAnswerRequest) (*ReadingAnswerResult, error) {
	question, err := s.ReadingRepo.FindQuestionByID(req.QuestionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	var correctChoiceID uint
	var selectedValid, isCorrect bool
	for _, c := range question.Choices {
		if c.IsCorrect && correctChoiceID == 0 {
			correctChoiceID = c.ID
		}
		if c.ID == req.ChoiceID {
			selectedValid = true
			isCorrect = c.IsCorrect
		}
	}
	if !selectedValid {
		return nil, util.ErrChoiceNotFound
	}

	total, err := s.ReadingRepo.CountQuestions(question.LessonID)
	if err != nil {
		return nil, err
	}

	result := &ReadingAnswerResult{
		IsCorrect:       isCorrect,
		CorrectChoiceID: correctChoiceID,
	}

	err = s.ReadingRepo.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.ReadingRepo.FindProgress(userID, question.LessonID)
		if err == gorm.ErrRecordNotFound {
			progress = &model.ReadingProgress{
				UserID:         userID,
				LessonID:       question.LessonID,
				TotalQuestions: int(total),
				Status:         model.StatusInProgress,
			}
		} else if err != nil {
			return err
		}

		if isCorrect {
			progress.CorrectCount++
		}
		progress.TotalQuestions = int(total)
		progress.Progress = truncPercent(progress.CorrectCount, progress.TotalQuestions)
		progress.Status = progressStatus(progress.Progress)
		progress.LastAttemptAt = time.Now()
		if err := s.ReadingRepo.SaveProgress(tx, progress); err != nil {
			return err
		}

		result.LessonProgress = progress.Progress
		result.LessonStatus = progress.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("reading").Inc()
	return result, nil
}

type ReadingSubmitAnswer struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	ChoiceID   *uint `json:"choice_id"`
}

type ReadingSubmitRequest struct {
	Answers []ReadingSubmitAnswer `json:"answers" binding:"required"`
}

func (r *ReadingSubmitRequest) selected() map[uint]uint {
	m := make(map[uint]uint, len(r.Answers))
	for _, a := range r.Answers {
		if a.ChoiceID != nil {
			m[a.QuestionID] = *a.ChoiceID
		}
	}
	return m
}

type ReadingSubmitResult struct {
	CorrectCount   int    `json:"correct_count"`
	TotalQuestions int    `json:"total_questions"`
	Progress       int    `json:"progress"`
	Status         string `json:"status"`
}

// SubmitLesson grades a whole lesson in one call. Progress mirrors the
// latest submission rather than accumulating.
func (s *ReadingService) SubmitLesson(userID, lessonID uint, req *ReadingSubmitRequest) (*ReadingSubmitResult, error) {
	lesson, err := s.ReadingRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	selected := req.selected()
	correct := 0
	for _, q := range lesson.Questions {
		choiceID, answered := selected[q.ID]
		if !answered {
			continue
		}
		for _, c := range q.Choices {
			if c.ID == choiceID && c.IsCorrect {
				correct++
				break
			}
		}
	}

	total := len(lesson.Questions)
	pct := truncPercent(correct, total)
	status := model.StatusInProgress
	if total > 0 {
		status = progressStatus(pct)
	}

	err = s.ReadingRepo.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.ReadingRepo.FindProgress(userID, lessonID)
		if err == gorm.ErrRecordNotFound {
			progress = &model.ReadingProgress{UserID: userID, LessonID: lessonID}
		} else if err != nil {
			return err
		}

		progress.CorrectCount = KeepLast.merge(progress.CorrectCount, correct)
		progress.TotalQuestions = total
		progress.Progress = pct
		progress.Status = status
		progress.LastAttemptAt = time.Now()
		return s.ReadingRepo.SaveProgress(tx, progress)
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("reading").Inc()
	return &ReadingSubmitResult{
		CorrectCount:   correct,
		TotalQuestions: total,
		Progress:       pct,
		Status:         status,
	}, nil
}
