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

func seedGrammarLesson(t *testing.T, db *gorm.DB, questionCount int) *model.GrammarLesson {
	t.Helper()

	lesson := &model.GrammarLesson{
		Level:             model.LevelN5,
		Order:             1,
		Title:             "は・が",
		GrammarPointCount: 2,
	}
	for i := 0; i < questionCount; i++ {
		lesson.Questions = append(lesson.Questions, model.GrammarQuestion{
			Prompt: "___ を えらんで ください",
			Order:  i,
			Choices: []model.GrammarChoice{
				{Text: "は", Order: 0, IsCorrect: true},
				{Text: "が", Order: 1},
				{Text: "を", Order: 2},
			},
		})
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func grammarChoice(q model.GrammarQuestion, correct bool) uint {
	for _, c := range q.Choices {
		if c.IsCorrect == correct {
			return c.ID
		}
	}
	return 0
}

func TestGrammarSubmitAnswersGrades(t *testing.T) {
	db := newTestDB(t)
	svc := NewGrammarService(repository.NewGrammarRepository(db))
	lesson := seedGrammarLesson(t, db, 3)

	result, err := svc.SubmitAnswers(5, &GrammarSubmitRequest{
		LessonID: lesson.ID,
		Answers: map[uint]uint{
			lesson.Questions[0].ID: grammarChoice(lesson.Questions[0], true),
			lesson.Questions[1].ID: grammarChoice(lesson.Questions[1], false),
			// question 2 left unanswered
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 33, result.Percent)
}

func TestGrammarProgressKeepsBest(t *testing.T) {
	db := newTestDB(t)
	svc := NewGrammarService(repository.NewGrammarRepository(db))
	lesson := seedGrammarLesson(t, db, 3)

	allCorrect := map[uint]uint{
		lesson.Questions[0].ID: grammarChoice(lesson.Questions[0], true),
		lesson.Questions[1].ID: grammarChoice(lesson.Questions[1], true),
		lesson.Questions[2].ID: grammarChoice(lesson.Questions[2], true),
	}
	_, err := svc.SubmitAnswers(5, &GrammarSubmitRequest{LessonID: lesson.ID, Answers: allCorrect})
	require.NoError(t, err)

	// A worse retake must not regress the stored best.
	_, err = svc.SubmitAnswers(5, &GrammarSubmitRequest{LessonID: lesson.ID, Answers: map[uint]uint{}})
	require.NoError(t, err)

	var progress model.GrammarProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 5, lesson.ID).First(&progress).Error)
	assert.Equal(t, 3, progress.CorrectCount)
	assert.False(t, progress.LastStudied.IsZero())
}

func TestGrammarUpdateProgressDirect(t *testing.T) {
	db := newTestDB(t)
	svc := NewGrammarService(repository.NewGrammarRepository(db))
	lesson := seedGrammarLesson(t, db, 4)

	blob, err := svc.UpdateProgress(5, &GrammarProgressRequest{LessonID: lesson.ID, CorrectCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, blob.CorrectCount)
	assert.Equal(t, 4, blob.TotalQuestions)
	assert.Equal(t, 75, blob.Percent)

	// Lower client-pushed values follow the same never-regress rule.
	blob, err = svc.UpdateProgress(5, &GrammarProgressRequest{LessonID: lesson.ID, CorrectCount: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, blob.CorrectCount)
}

func TestGrammarSubmitMissingLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewGrammarService(repository.NewGrammarRepository(db))

	_, err := svc.SubmitAnswers(5, &GrammarSubmitRequest{LessonID: 404, Answers: map[uint]uint{}})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
