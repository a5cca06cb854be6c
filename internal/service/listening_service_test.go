package service

import (
	"encoding/json"
	"testing"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListeningLesson(t *testing.T, db *gorm.DB, questionCount int) *model.ListeningLesson {
	t.Helper()

	lesson := &model.ListeningLesson{
		Level:           model.LevelN4,
		Order:           1,
		Title:           "Kaiwa 1",
		AudioFile:       "listening/n4-1.mp3",
		DurationSeconds: 95,
		IsPublished:     true,
	}
	for i := 0; i < questionCount; i++ {
		lesson.Questions = append(lesson.Questions, model.ListeningQuestion{
			QuestionNumber: i + 1,
			Sentence:       "もんだい",
			Choices: []model.ListeningChoice{
				{Text: "a", Order: 0, IsCorrect: true},
				{Text: "b", Order: 1},
				{Text: "c", Order: 2},
			},
		})
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

// listeningAnswers builds the submit body from a question -> choice lookup.
func listeningAnswers(selected map[uint]uint) *ListeningSubmitRequest {
	req := &ListeningSubmitRequest{Answers: []ListeningSubmitAnswer{}}
	for questionID, choiceID := range selected {
		choiceID := choiceID
		req.Answers = append(req.Answers, ListeningSubmitAnswer{QuestionID: questionID, ChoiceID: &choiceID})
	}
	return req
}

func correctListeningChoice(q model.ListeningQuestion) uint {
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c.ID
		}
	}
	return 0
}

func wrongListeningChoice(q model.ListeningQuestion) uint {
	for _, c := range q.Choices {
		if !c.IsCorrect {
			return c.ID
		}
	}
	return 0
}

func TestListeningSubmitRequestDecodesAnswerList(t *testing.T) {
	var req ListeningSubmitRequest
	payload := `{"answers":[{"question_id":4,"choice_id":9},{"question_id":5,"choice_id":null}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.Len(t, req.Answers, 2)
	require.NotNil(t, req.Answers[0].ChoiceID)
	assert.Equal(t, uint(9), *req.Answers[0].ChoiceID)
	assert.Nil(t, req.Answers[1].ChoiceID)
	assert.Equal(t, map[uint]uint{4: 9}, req.selected())
}

func TestListeningSubmitLessonGradesAndStoresAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewListeningService(repository.NewListeningRepository(db))
	lesson := seedListeningLesson(t, db, 4)

	answers := map[uint]uint{
		lesson.Questions[0].ID: correctListeningChoice(lesson.Questions[0]),
		lesson.Questions[1].ID: correctListeningChoice(lesson.Questions[1]),
		lesson.Questions[2].ID: correctListeningChoice(lesson.Questions[2]),
		lesson.Questions[3].ID: wrongListeningChoice(lesson.Questions[3]),
	}

	result, err := svc.SubmitLesson(3, lesson.ID, listeningAnswers(answers))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 75, result.ProgressPercent)
	assert.Equal(t, model.StatusInProgress, result.Status)
	require.Len(t, result.Detail, 4)

	wrongDetail := result.Detail[3]
	assert.False(t, wrongDetail.IsCorrect)
	assert.Equal(t, correctListeningChoice(lesson.Questions[3]), wrongDetail.CorrectChoiceID)
	require.NotNil(t, wrongDetail.SelectedChoiceID)

	var attempts []model.ListeningAttempt
	require.NoError(t, db.Preload("Answers").Where("user_id = ?", 3).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.Len(t, attempts[0].Answers, 4)
}

func TestListeningSubmitLessonKeepsLastResult(t *testing.T) {
	db := newTestDB(t)
	svc := NewListeningService(repository.NewListeningRepository(db))
	lesson := seedListeningLesson(t, db, 2)

	allCorrect := map[uint]uint{
		lesson.Questions[0].ID: correctListeningChoice(lesson.Questions[0]),
		lesson.Questions[1].ID: correctListeningChoice(lesson.Questions[1]),
	}
	first, err := svc.SubmitLesson(3, lesson.ID, listeningAnswers(allCorrect))
	require.NoError(t, err)
	assert.Equal(t, 100, first.ProgressPercent)
	assert.Equal(t, model.StatusCompleted, first.Status)

	// A worse retake overwrites the stored progress.
	second, err := svc.SubmitLesson(3, lesson.ID, listeningAnswers(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, second.ProgressPercent)
	assert.Equal(t, model.StatusInProgress, second.Status)

	var progress model.ListeningProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 3, lesson.ID).First(&progress).Error)
	assert.Equal(t, 0, progress.CorrectCount)
	assert.Equal(t, model.StatusInProgress, progress.Status)

	// Both attempts stay on record.
	var count int64
	require.NoError(t, db.Model(&model.ListeningAttempt{}).Where("user_id = ?", 3).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListeningSubmitLessonMissingLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewListeningService(repository.NewListeningRepository(db))

	_, err := svc.SubmitLesson(3, 999, listeningAnswers(nil))
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestListeningListLessonsReflectsProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewListeningService(repository.NewListeningRepository(db))
	lesson := seedListeningLesson(t, db, 1)

	before, err := svc.ListLessons(3, model.LevelN4)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, model.StatusNotStarted, before[0].Status)

	_, err = svc.SubmitLesson(3, lesson.ID, listeningAnswers(map[uint]uint{
		lesson.Questions[0].ID: correctListeningChoice(lesson.Questions[0]),
	}))
	require.NoError(t, err)

	after, err := svc.ListLessons(3, model.LevelN4)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, model.StatusCompleted, after[0].Status)
	assert.Equal(t, 100, after[0].ProgressPercent)
}
