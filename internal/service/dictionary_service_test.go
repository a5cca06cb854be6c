package service

import (
	"context"
	"testing"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDictionary(t *testing.T, db *gorm.DB) {
	t.Helper()
	entries := []model.DictionaryEntry{
		{EntryType: model.EntryVocab, Keyword: "食べる", Reading: "たべる", Meaning: "ăn", JlptLevel: model.LevelN5},
		{EntryType: model.EntryVocab, Keyword: "飲む", Reading: "のむ", Meaning: "uống", JlptLevel: model.LevelN5},
		{EntryType: model.EntryKanji, Keyword: "食", Reading: "ショク", Meaning: "thực, ăn", JlptLevel: model.LevelN5},
		{EntryType: model.EntryGrammar, Keyword: "〜ながら", Meaning: "vừa ... vừa ...", JlptLevel: model.LevelN4},
	}
	require.NoError(t, db.Create(&entries).Error)
}

func TestDictionarySearchWithoutCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewDictionaryService(repository.NewDictionaryRepository(db), nil)
	seedDictionary(t, db)

	results, err := svc.Search(context.Background(), "食", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Filtering by entry type narrows the match.
	results, err = svc.Search(context.Background(), "食", model.EntryKanji)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "食", results[0].Keyword)

	// Meaning text is searchable too.
	results, err = svc.Search(context.Background(), "uống", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "飲む", results[0].Keyword)
}

func TestDictionarySearchEmptyQuery(t *testing.T) {
	db := newTestDB(t)
	svc := NewDictionaryService(repository.NewDictionaryRepository(db), nil)
	seedDictionary(t, db)

	results, err := svc.Search(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
