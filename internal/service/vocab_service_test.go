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

func seedVocabLesson(t *testing.T, db *gorm.DB, wordCount int) *model.VocabularyLesson {
	t.Helper()

	lesson := &model.VocabularyLesson{
		JlptLevel: model.LevelN5,
		Order:     1,
		Title:     "Gia đình",
	}
	for i := 0; i < wordCount; i++ {
		lesson.Words = append(lesson.Words, model.VocabularyWord{
			Hiragana:   "かぞく",
			Kanji:      "家族",
			Vietnamese: "gia đình",
			Order:      i,
			Examples: []model.VocabularyExample{
				{SentenceJP: "かぞくは よにん です。", SentenceVI: "Gia đình tôi có bốn người."},
			},
		})
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func TestVocabLessonProgressNeverRegresses(t *testing.T) {
	db := newTestDB(t)
	svc := NewVocabService(repository.NewVocabRepository(db))
	lesson := seedVocabLesson(t, db, 5)

	first, err := svc.UpdateLessonProgress(2, lesson.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.CompletedWords)
	assert.Equal(t, 5, first.TotalWords)
	assert.False(t, first.IsCompleted)
	assert.Equal(t, model.StatusInProgress, first.Status)

	// A smaller count must not roll progress back.
	second, err := svc.UpdateLessonProgress(2, lesson.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, second.CompletedWords)

	done, err := svc.UpdateLessonProgress(2, lesson.ID, 5)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	assert.Equal(t, model.StatusCompleted, done.Status)

	// Completion sticks even after a lower report.
	after, err := svc.UpdateLessonProgress(2, lesson.ID, 0)
	require.NoError(t, err)
	assert.True(t, after.IsCompleted)
}

func TestVocabUpdateProgressMissingLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewVocabService(repository.NewVocabRepository(db))

	_, err := svc.UpdateLessonProgress(2, 404, 1)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestVocabMarkWordAndFavorite(t *testing.T) {
	db := newTestDB(t)
	svc := NewVocabService(repository.NewVocabRepository(db))
	lesson := seedVocabLesson(t, db, 2)
	word := lesson.Words[0]

	progress, err := svc.MarkWord(2, word.ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsLearned)

	progress, err = svc.MarkWord(2, word.ID, false)
	require.NoError(t, err)
	assert.False(t, progress.IsLearned)

	fav, err := svc.ToggleFavorite(2, word.ID, true)
	require.NoError(t, err)
	assert.True(t, fav)

	// Favoriting twice stays idempotent.
	_, err = svc.ToggleFavorite(2, word.ID, true)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.VocabularyFavorite{}).Where("user_id = ?", 2).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	fav, err = svc.ToggleFavorite(2, word.ID, false)
	require.NoError(t, err)
	assert.False(t, fav)
	require.NoError(t, db.Model(&model.VocabularyFavorite{}).Where("user_id = ?", 2).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestVocabGetLessonMarksLearnedAndFavorites(t *testing.T) {
	db := newTestDB(t)
	svc := NewVocabService(repository.NewVocabRepository(db))
	lesson := seedVocabLesson(t, db, 2)

	_, err := svc.MarkWord(2, lesson.Words[0].ID, true)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(2, lesson.Words[1].ID, true)
	require.NoError(t, err)

	detail, err := svc.GetLesson(2, lesson.ID)
	require.NoError(t, err)
	require.Len(t, detail.Words, 2)
	assert.True(t, detail.Words[0].IsLearned)
	assert.False(t, detail.Words[0].IsFavorite)
	assert.False(t, detail.Words[1].IsLearned)
	assert.True(t, detail.Words[1].IsFavorite)
}
