package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"jlpt_backend/internal/model"
	"jlpt_backend/pkg/database"
	"jlpt_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:fixturetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBuildsCorrectChoices(t *testing.T) {
	db := newTestDB(t)

	path := writeFixture(t, `{
		"grammar_lessons": [{
			"level": "N5",
			"order": 1,
			"title": "Bài 1",
			"grammarPointCount": 1,
			"questions": [
				{"prompt": "これ___ペンです", "choices": ["は", "が", "を"], "correct": 0},
				{"prompt": "本___読みます", "choices": ["は", "を"], "correct": 1}
			]
		}],
		"jlpt_tests": [{
			"level": "N5",
			"order": 1,
			"title": "Đề số 1",
			"sections": [
				{"sectionType": "vocabulary", "order": 1, "questions": [
					{"sentence": "水", "choices": ["みず", "すい"], "correct": 0}
				]},
				{"sectionType": "listening", "order": 2, "questions": [
					{"sentence": "聞く", "choices": ["きく", "かく"], "correct": 0}
				]}
			]
		}],
		"dictionary_entries": [
			{"type": "word", "keyword": "食べる", "reading": "たべる", "meaning": "ăn", "level": "N5"}
		],
		"voices": [
			{"name": "yui", "displayName": "Yui", "gender": "female", "isActive": true}
		]
	}`)

	require.NoError(t, Load(db, path))

	var lesson model.GrammarLesson
	require.NoError(t, db.Preload("Questions.Choices").First(&lesson).Error)
	require.Len(t, lesson.Questions, 2)
	for _, choice := range lesson.Questions[0].Choices {
		assert.Equal(t, choice.Text == "は", choice.IsCorrect)
	}
	for _, choice := range lesson.Questions[1].Choices {
		assert.Equal(t, choice.Text == "を", choice.IsCorrect)
	}

	var test model.JlptTest
	require.NoError(t, db.Preload("Sections.Questions").First(&test).Error)
	assert.Equal(t, 140, test.DurationMinutes)
	assert.Equal(t, 180, test.TotalScore)
	assert.True(t, test.IsPublished)
	require.Len(t, test.Sections, 2)
	assert.Equal(t, 60, test.Sections[0].MaxScore)
	assert.Equal(t, 1, test.Sections[0].Questions[0].QuestionNumber)
	assert.Equal(t, 2, test.Sections[1].Questions[0].QuestionNumber)

	var entries int64
	db.Model(&model.DictionaryEntry{}).Count(&entries)
	assert.EqualValues(t, 1, entries)
}

func TestLoadRejectsOutOfRangeCorrectIndex(t *testing.T) {
	db := newTestDB(t)

	path := writeFixture(t, `{
		"grammar_lessons": [{
			"level": "N5",
			"order": 1,
			"title": "Bài hỏng",
			"questions": [
				{"prompt": "これ___ペンです", "choices": ["は", "が"], "correct": 5}
			]
		}]
	}`)

	err := Load(db, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	var lessons int64
	db.Model(&model.GrammarLesson{}).Count(&lessons)
	assert.Zero(t, lessons, "a bad file must not leave partial rows behind")
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	db := newTestDB(t)

	path := writeFixture(t, `{
		"reading_lessons": [{"level": "N7", "order": 1, "title": "x", "questions": []}]
	}`)

	err := Load(db, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")
}
