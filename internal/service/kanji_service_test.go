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

func seedKanjiUnit(t *testing.T, db *gorm.DB) *model.KanjiUnit {
	t.Helper()

	unit := &model.KanjiUnit{
		Level:      model.LevelN5,
		UnitNumber: 1,
		UnitName:   "Unit 1",
		Lessons: []model.KanjiLesson{
			{
				LessonNumber: 1,
				LessonName:   "Bài 1",
				Kanjis: []model.Kanji{
					{Kanji: "水", Hiragana: "みず", Vietnamese: "nước", StrokeCount: 4, Kunyomi: "みず", Onyomi: "スイ"},
					{Kanji: "火", Hiragana: "ひ", Vietnamese: "lửa", StrokeCount: 4, Kunyomi: "ひ", Onyomi: "カ"},
				},
			},
		},
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func TestKanjiUpsertProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewKanjiService(repository.NewKanjiRepository(db))
	unit := seedKanjiUnit(t, db)
	kanji := unit.Lessons[0].Kanjis[0]

	learned := true
	progress, err := svc.UpsertProgress(4, &KanjiProgressRequest{KanjiID: kanji.ID, IsLearned: &learned})
	require.NoError(t, err)
	assert.True(t, progress.IsLearned)
	assert.False(t, progress.IsMastered)
	assert.Equal(t, 1, progress.ReviewCount)

	// Mastering implies learned and bumps the review counter.
	mastered := true
	progress, err = svc.UpsertProgress(4, &KanjiProgressRequest{KanjiID: kanji.ID, IsMastered: &mastered})
	require.NoError(t, err)
	assert.True(t, progress.IsMastered)
	assert.True(t, progress.IsLearned)
	assert.Equal(t, 2, progress.ReviewCount)

	var count int64
	require.NoError(t, db.Model(&model.KanjiProgress{}).Where("user_id = ?", 4).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestKanjiUpsertProgressUnknownKanji(t *testing.T) {
	db := newTestDB(t)
	svc := NewKanjiService(repository.NewKanjiRepository(db))

	learned := true
	_, err := svc.UpsertProgress(4, &KanjiProgressRequest{KanjiID: 999, IsLearned: &learned})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestKanjiLessonDetailCarriesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewKanjiService(repository.NewKanjiRepository(db))
	unit := seedKanjiUnit(t, db)
	lesson := unit.Lessons[0]

	learned := true
	_, err := svc.UpsertProgress(4, &KanjiProgressRequest{KanjiID: lesson.Kanjis[0].ID, IsLearned: &learned})
	require.NoError(t, err)

	detail, err := svc.GetLesson(4, lesson.ID)
	require.NoError(t, err)
	require.Len(t, detail.Kanjis, 2)
	assert.True(t, detail.Kanjis[0].IsLearned)
	assert.False(t, detail.Kanjis[1].IsLearned)
}

func TestKanjiFavoritesIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewKanjiService(repository.NewKanjiRepository(db))
	unit := seedKanjiUnit(t, db)
	kanji := unit.Lessons[0].Kanjis[0]

	first, err := svc.AddFavorite(4, kanji.ID)
	require.NoError(t, err)
	second, err := svc.AddFavorite(4, kanji.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	favorites, err := svc.ListFavorites(4)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	require.NoError(t, svc.RemoveFavorite(4, first.ID))
	favorites, err = svc.ListFavorites(4)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestKanjiSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewKanjiService(repository.NewKanjiRepository(db))
	seedKanjiUnit(t, db)

	results, err := svc.Search("nước", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "水", results[0].Kanji)

	// Empty queries return nothing instead of the whole table.
	results, err = svc.Search("", "")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search("nước", model.LevelN1)
	require.NoError(t, err)
	assert.Empty(t, results)
}
