package service

import (
	"testing"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedReadingLesson(t *testing.T, db *gorm.DB, questionCount int) *model.ReadingLesson {
	t.Helper()

	lesson := &model.ReadingLesson{
		Level:   model.LevelN3,
		Order:   1,
		Title:   "天気予報",
		Preview: "あしたの てんき について...",
		Texts: []model.ReadingText{
			{ContentJapanese: "あしたは あめ です。", ContentVietnamese: "Ngày mai trời mưa.", Order: 0},
		},
	}
	for i := 0; i < questionCount; i++ {
		lesson.Questions = append(lesson.Questions, model.ReadingQuestion{
			Text:  "あしたの てんきは？",
			Order: i,
			Choices: []model.ReadingChoice{
				{Text: "あめ", Order: 0, IsCorrect: true},
				{Text: "はれ", Order: 1},
			},
		})
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

// readingAnswers builds the batch submit body from a question -> choice lookup.
func readingAnswers(selected map[uint]uint) *ReadingSubmitRequest {
	req := &ReadingSubmitRequest{Answers: []ReadingSubmitAnswer{}}
	for questionID, choiceID := range selected {
		choiceID := choiceID
		req.Answers = append(req.Answers, ReadingSubmitAnswer{QuestionID: questionID, ChoiceID: &choiceID})
	}
	return req
}

func readingChoice(q model.ReadingQuestion, correct bool) uint {
	for _, c := range q.Choices {
		if c.IsCorrect == correct {
			return c.ID
		}
	}
	return 0
}

func TestReadingSubmitAnswerAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(repository.NewReadingRepository(db))
	lesson := seedReadingLesson(t, db, 2)

	first, err := svc.SubmitAnswer(9, &ReadingAnswerRequest{
		QuestionID: lesson.Questions[0].ID,
		ChoiceID:   readingChoice(lesson.Questions[0], true),
	})
	require.NoError(t, err)
	assert.True(t, first.IsCorrect)
	assert.Equal(t, readingChoice(lesson.Questions[0], true), first.CorrectChoiceID)
	assert.Equal(t, 50, first.LessonProgress)
	assert.Equal(t, model.StatusInProgress, first.LessonStatus)

	// Wrong answers reveal the correct choice without advancing progress.
	second, err := svc.SubmitAnswer(9, &ReadingAnswerRequest{
		QuestionID: lesson.Questions[1].ID,
		ChoiceID:   readingChoice(lesson.Questions[1], false),
	})
	require.NoError(t, err)
	assert.False(t, second.IsCorrect)
	assert.Equal(t, 50, second.LessonProgress)

	third, err := svc.SubmitAnswer(9, &ReadingAnswerRequest{
		QuestionID: lesson.Questions[1].ID,
		ChoiceID:   readingChoice(lesson.Questions[1], true),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, third.LessonProgress)
	assert.Equal(t, model.StatusCompleted, third.LessonStatus)
}

func TestReadingSubmitAnswerRejectsForeignChoice(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(repository.NewReadingRepository(db))
	lesson := seedReadingLesson(t, db, 1)

	_, err := svc.SubmitAnswer(9, &ReadingAnswerRequest{
		QuestionID: lesson.Questions[0].ID,
		ChoiceID:   987654,
	})
	assert.ErrorIs(t, err, util.ErrChoiceNotFound)

	_, err = svc.SubmitAnswer(9, &ReadingAnswerRequest{QuestionID: 987654, ChoiceID: 1})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestReadingSubmitLessonKeepsLast(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(repository.NewReadingRepository(db))
	lesson := seedReadingLesson(t, db, 2)

	full, err := svc.SubmitLesson(9, lesson.ID, readingAnswers(map[uint]uint{
		lesson.Questions[0].ID: readingChoice(lesson.Questions[0], true),
		lesson.Questions[1].ID: readingChoice(lesson.Questions[1], true),
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, full.CorrectCount)
	assert.Equal(t, 100, full.Progress)
	assert.Equal(t, model.StatusCompleted, full.Status)

	retake, err := svc.SubmitLesson(9, lesson.ID, readingAnswers(map[uint]uint{
		lesson.Questions[0].ID: readingChoice(lesson.Questions[0], false),
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, retake.CorrectCount)
	assert.Equal(t, 0, retake.Progress)
	assert.Equal(t, model.StatusInProgress, retake.Status)

	var progress model.ReadingProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 9, lesson.ID).First(&progress).Error)
	assert.Equal(t, 0, progress.CorrectCount)
}

func TestReadingSubmitLessonWithoutQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(repository.NewReadingRepository(db))
	lesson := seedReadingLesson(t, db, 0)

	result, err := svc.SubmitLesson(9, lesson.ID, readingAnswers(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Progress)
	assert.Equal(t, model.StatusInProgress, result.Status)
}

func TestReadingOverviewTotalProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(repository.NewReadingRepository(db))
	done := seedReadingLesson(t, db, 1)
	other := &model.ReadingLesson{Level: model.LevelN3, Order: 2, Title: "手紙"}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.SubmitLesson(9, done.ID, readingAnswers(map[uint]uint{
		done.Questions[0].ID: readingChoice(done.Questions[0], true),
	}))
	require.NoError(t, err)

	overview, err := svc.ListLessons(9, model.LevelN3)
	require.NoError(t, err)
	require.Len(t, overview.Lessons, 2)
	assert.Equal(t, 50, overview.TotalProgress)
	assert.Equal(t, model.StatusCompleted, overview.Lessons[0].Status)
	assert.Equal(t, model.StatusNotStarted, overview.Lessons[1].Status)
}
