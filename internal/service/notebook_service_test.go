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

func newNotebookService(db *gorm.DB) *NotebookService {
	return NewNotebookService(
		repository.NewVocabRepository(db),
		repository.NewKanjiRepository(db),
		repository.NewGrammarRepository(db),
		repository.NewReadingRepository(db),
		repository.NewListeningRepository(db),
		repository.NewJlptRepository(db),
	)
}

func TestNotebookSummaryCoversAllCategories(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)

	summaries, err := svc.Summary(1)
	require.NoError(t, err)
	require.Len(t, summaries, 6)

	categories := make([]string, 0, len(summaries))
	for _, s := range summaries {
		categories = append(categories, s.Category)
		assert.Equal(t, 5, s.TotalLevels)
		assert.Zero(t, s.CompletedLevels)
		assert.Zero(t, s.InProgressLevels)
	}
	assert.Equal(t, []string{"vocabulary", "kanji", "grammar", "reading", "listening", "jlpt"}, categories)
}

func TestNotebookSummaryCountsLevels(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)
	vocabSvc := NewVocabService(repository.NewVocabRepository(db))

	lesson := seedVocabLesson(t, db, 2)
	for _, w := range lesson.Words {
		_, err := vocabSvc.MarkWord(1, w.ID, true)
		require.NoError(t, err)
	}
	_, err := vocabSvc.UpdateLessonProgress(1, lesson.ID, 2)
	require.NoError(t, err)

	summaries, err := svc.Summary(1)
	require.NoError(t, err)

	var vocab NotebookCategorySummary
	for _, s := range summaries {
		if s.Category == CategoryVocabulary {
			vocab = s
		}
	}
	assert.Equal(t, 1, vocab.CompletedLevels)
	assert.Zero(t, vocab.InProgressLevels)
	assert.Equal(t, 5, vocab.TotalLevels)
}

func TestNotebookCategoryDetailLocksEmptyLevels(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)
	seedVocabLesson(t, db, 3)

	detail, err := svc.CategoryDetail(1, CategoryVocabulary)
	require.NoError(t, err)
	assert.Equal(t, "Từ vựng", detail.Title)
	require.Len(t, detail.Levels, len(model.JlptLevels))

	n5 := detail.Levels[0]
	assert.Equal(t, model.LevelN5, n5.Level)
	assert.False(t, n5.Locked)
	assert.Equal(t, model.StatusNotStarted, n5.Status)
	assert.Equal(t, 3, n5.TotalItems)

	// No N1 content exists, so the level is locked.
	n1 := detail.Levels[len(detail.Levels)-1]
	assert.Equal(t, model.LevelN1, n1.Level)
	assert.True(t, n1.Locked)
	assert.Equal(t, "locked", n1.Status)
}

func TestNotebookVocabularyProgressRollsUp(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)
	vocabSvc := NewVocabService(repository.NewVocabRepository(db))
	lesson := seedVocabLesson(t, db, 2)

	for _, w := range lesson.Words {
		_, err := vocabSvc.MarkWord(1, w.ID, true)
		require.NoError(t, err)
	}
	_, err := vocabSvc.UpdateLessonProgress(1, lesson.ID, 2)
	require.NoError(t, err)

	detail, err := svc.CategoryDetail(1, CategoryVocabulary)
	require.NoError(t, err)

	n5 := detail.Levels[0]
	assert.Equal(t, model.StatusCompleted, n5.Status)
	assert.Equal(t, 2, n5.MasteredItems)
	assert.Equal(t, 1, n5.LessonsCompleted)
	assert.Equal(t, 100, n5.CompletionPercent)
}

func TestNotebookGrammarMasteryThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)
	grammarSvc := NewGrammarService(repository.NewGrammarRepository(db))
	lesson := seedGrammarLesson(t, db, 5)

	// 4/5 = 80% reaches the mastery bar.
	answers := map[uint]uint{}
	for i := 0; i < 4; i++ {
		answers[lesson.Questions[i].ID] = grammarChoice(lesson.Questions[i], true)
	}
	_, err := grammarSvc.SubmitAnswers(1, &GrammarSubmitRequest{LessonID: lesson.ID, Answers: answers})
	require.NoError(t, err)

	detail, err := svc.CategoryDetail(1, CategoryGrammar)
	require.NoError(t, err)
	n5 := detail.Levels[0]
	assert.Equal(t, 1, n5.MasteredItems)
	assert.Equal(t, model.StatusCompleted, n5.Status)
}

func TestNotebookJlptPassThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)
	jlptSvc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	q1 := test.Sections[0].Questions[0]
	q2 := test.Sections[0].Questions[1]

	// 2/3 correct is 120/180, above the 60% pass bar.
	_, err := jlptSvc.SubmitTest(1, test.ID, jlptAnswers(map[uint]uint{
		q1.ID: choiceByOrder(t, q1, 0),
		q2.ID: choiceByOrder(t, q2, 1),
	}))
	require.NoError(t, err)

	detail, err := svc.CategoryDetail(1, CategoryJlpt)
	require.NoError(t, err)
	n5 := detail.Levels[0]
	assert.Equal(t, 1, n5.MasteredItems)
	assert.Equal(t, 1, n5.LessonsCompleted)

	// A failing attempt by another user only counts as started.
	_, err = jlptSvc.SubmitTest(2, test.ID, jlptAnswers(map[uint]uint{
		q1.ID: choiceByOrder(t, q1, 0),
	}))
	require.NoError(t, err)

	other, err := svc.CategoryDetail(2, CategoryJlpt)
	require.NoError(t, err)
	assert.Equal(t, 0, other.Levels[0].MasteredItems)
	assert.Equal(t, 1, other.Levels[0].ReviewedItems)
	assert.Equal(t, model.StatusInProgress, other.Levels[0].Status)
}

func TestNotebookUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newNotebookService(db)

	_, err := svc.CategoryDetail(1, "calligraphy")
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)
}
