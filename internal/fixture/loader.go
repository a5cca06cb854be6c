// Package fixture loads seed content from a JSON file into the database.
// It is used by the -fixtures flag to populate lessons, tests and
// dictionary entries for local development and demos.
//
// The file carries its own schema rather than the API models because the
// models hide choice correctness from JSON. Each question marks its
// correct choice by zero-based index.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"jlpt_backend/internal/model"
	"jlpt_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type File struct {
	VocabularyLessons []model.VocabularyLesson `json:"vocabulary_lessons"`
	KanjiUnits        []model.KanjiUnit        `json:"kanji_units"`
	GrammarLessons    []GrammarLesson          `json:"grammar_lessons"`
	ReadingLessons    []ReadingLesson          `json:"reading_lessons"`
	ListeningLessons  []ListeningLesson        `json:"listening_lessons"`
	JlptTests         []JlptTest               `json:"jlpt_tests"`
	DictionaryEntries []model.DictionaryEntry  `json:"dictionary_entries"`
	Voices            []model.Voice            `json:"voices"`
}

type Question struct {
	Instruction    string   `json:"instruction"`
	Prompt         string   `json:"prompt"`
	Sentence       string   `json:"sentence"`
	UnderlinedWord string   `json:"underlinedWord"`
	AudioFile      string   `json:"audioFile"`
	Image          string   `json:"image"`
	Explanation    string   `json:"explanation"`
	Choices        []string `json:"choices"`
	Correct        int      `json:"correct"`
}

type GrammarLesson struct {
	Level             model.JlptLevel `json:"level"`
	Order             int             `json:"order"`
	Title             string          `json:"title"`
	GrammarPointCount int             `json:"grammarPointCount"`
	Content           string          `json:"content"`
	Questions         []Question      `json:"questions"`
}

type ReadingLesson struct {
	Level     model.JlptLevel     `json:"level"`
	Order     int                 `json:"order"`
	Title     string              `json:"title"`
	Preview   string              `json:"preview"`
	Texts     []model.ReadingText `json:"texts"`
	Questions []Question          `json:"questions"`
}

type ListeningLesson struct {
	Level           model.JlptLevel             `json:"level"`
	Order           int                         `json:"order"`
	Title           string                      `json:"title"`
	Description     string                      `json:"description"`
	AudioFile       string                      `json:"audioFile"`
	DurationSeconds int                         `json:"durationSeconds"`
	ScriptJP        string                      `json:"scriptJp"`
	ScriptVN        string                      `json:"scriptVn"`
	Vocabularies    []model.ListeningVocabulary `json:"vocabularies"`
	Questions       []Question                  `json:"questions"`
}

type JlptTest struct {
	Level           model.JlptLevel `json:"level"`
	Order           int             `json:"order"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes"`
	TotalScore      int             `json:"totalScore"`
	Sections        []JlptSection   `json:"sections"`
}

type JlptSection struct {
	SectionType string     `json:"sectionType"`
	TitleJP     string     `json:"titleJp"`
	TitleVN     string     `json:"titleVn"`
	Order       int        `json:"order"`
	MaxScore    int        `json:"maxScore"`
	SubSections []string   `json:"subSections"`
	Questions   []Question `json:"questions"`
}

// Load reads the fixture file at path and inserts its content in a single
// transaction. Lessons nest their questions and choices, so gorm persists
// whole trees per record.
func Load(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse fixtures: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range f.VocabularyLessons {
			lesson := &f.VocabularyLessons[i]
			if !lesson.JlptLevel.Valid() {
				return fmt.Errorf("vocabulary lesson %q: invalid level %q", lesson.Title, lesson.JlptLevel)
			}
			if err := tx.Create(lesson).Error; err != nil {
				return fmt.Errorf("vocabulary lesson %q: %w", lesson.Title, err)
			}
		}
		for i := range f.KanjiUnits {
			unit := &f.KanjiUnits[i]
			if !unit.Level.Valid() {
				return fmt.Errorf("kanji unit %q: invalid level %q", unit.UnitName, unit.Level)
			}
			if err := tx.Create(unit).Error; err != nil {
				return fmt.Errorf("kanji unit %q: %w", unit.UnitName, err)
			}
		}
		for _, in := range f.GrammarLessons {
			lesson, err := buildGrammarLesson(in)
			if err != nil {
				return err
			}
			if err := tx.Create(lesson).Error; err != nil {
				return fmt.Errorf("grammar lesson %q: %w", in.Title, err)
			}
		}
		for _, in := range f.ReadingLessons {
			lesson, err := buildReadingLesson(in)
			if err != nil {
				return err
			}
			if err := tx.Create(lesson).Error; err != nil {
				return fmt.Errorf("reading lesson %q: %w", in.Title, err)
			}
		}
		for _, in := range f.ListeningLessons {
			lesson, err := buildListeningLesson(in)
			if err != nil {
				return err
			}
			if err := tx.Create(lesson).Error; err != nil {
				return fmt.Errorf("listening lesson %q: %w", in.Title, err)
			}
		}
		for _, in := range f.JlptTests {
			test, err := buildJlptTest(in)
			if err != nil {
				return err
			}
			if err := tx.Create(test).Error; err != nil {
				return fmt.Errorf("jlpt test %q: %w", in.Title, err)
			}
		}
		if len(f.DictionaryEntries) > 0 {
			if err := tx.CreateInBatches(f.DictionaryEntries, 200).Error; err != nil {
				return fmt.Errorf("dictionary entries: %w", err)
			}
		}
		for i := range f.Voices {
			if err := tx.Create(&f.Voices[i]).Error; err != nil {
				return fmt.Errorf("voice %q: %w", f.Voices[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log.Info("Fixtures loaded",
		zap.String("path", path),
		zap.Int("vocabulary_lessons", len(f.VocabularyLessons)),
		zap.Int("kanji_units", len(f.KanjiUnits)),
		zap.Int("grammar_lessons", len(f.GrammarLessons)),
		zap.Int("reading_lessons", len(f.ReadingLessons)),
		zap.Int("listening_lessons", len(f.ListeningLessons)),
		zap.Int("jlpt_tests", len(f.JlptTests)),
		zap.Int("dictionary_entries", len(f.DictionaryEntries)),
	)
	return nil
}

func (q Question) check(where string) error {
	if len(q.Choices) == 0 {
		return fmt.Errorf("%s: question has no choices", where)
	}
	if q.Correct < 0 || q.Correct >= len(q.Choices) {
		return fmt.Errorf("%s: correct index %d out of range", where, q.Correct)
	}
	return nil
}

func buildGrammarLesson(in GrammarLesson) (*model.GrammarLesson, error) {
	if !in.Level.Valid() {
		return nil, fmt.Errorf("grammar lesson %q: invalid level %q", in.Title, in.Level)
	}
	lesson := &model.GrammarLesson{
		Level:             in.Level,
		Order:             in.Order,
		Title:             in.Title,
		GrammarPointCount: in.GrammarPointCount,
		Content:           in.Content,
	}
	for n, q := range in.Questions {
		if err := q.check(fmt.Sprintf("grammar lesson %q", in.Title)); err != nil {
			return nil, err
		}
		question := model.GrammarQuestion{
			Prompt:    q.Prompt,
			AudioFile: q.AudioFile,
			Order:     n,
		}
		for i, text := range q.Choices {
			question.Choices = append(question.Choices, model.GrammarChoice{
				Text:      text,
				Order:     i,
				IsCorrect: i == q.Correct,
			})
		}
		lesson.Questions = append(lesson.Questions, question)
	}
	return lesson, nil
}

func buildReadingLesson(in ReadingLesson) (*model.ReadingLesson, error) {
	if !in.Level.Valid() {
		return nil, fmt.Errorf("reading lesson %q: invalid level %q", in.Title, in.Level)
	}
	lesson := &model.ReadingLesson{
		Level:   in.Level,
		Order:   in.Order,
		Title:   in.Title,
		Preview: in.Preview,
		Texts:   in.Texts,
	}
	for n, q := range in.Questions {
		if err := q.check(fmt.Sprintf("reading lesson %q", in.Title)); err != nil {
			return nil, err
		}
		question := model.ReadingQuestion{
			Text:  q.Prompt,
			Order: n,
		}
		for i, text := range q.Choices {
			question.Choices = append(question.Choices, model.ReadingChoice{
				Text:      text,
				Order:     i,
				IsCorrect: i == q.Correct,
			})
		}
		lesson.Questions = append(lesson.Questions, question)
	}
	return lesson, nil
}

func buildListeningLesson(in ListeningLesson) (*model.ListeningLesson, error) {
	if !in.Level.Valid() {
		return nil, fmt.Errorf("listening lesson %q: invalid level %q", in.Title, in.Level)
	}
	lesson := &model.ListeningLesson{
		Level:           in.Level,
		Order:           in.Order,
		Title:           in.Title,
		Description:     in.Description,
		AudioFile:       in.AudioFile,
		DurationSeconds: in.DurationSeconds,
		ScriptJP:        in.ScriptJP,
		ScriptVN:        in.ScriptVN,
		IsPublished:     true,
		Vocabularies:    in.Vocabularies,
	}
	for n, q := range in.Questions {
		if err := q.check(fmt.Sprintf("listening lesson %q", in.Title)); err != nil {
			return nil, err
		}
		question := model.ListeningQuestion{
			QuestionNumber: n + 1,
			Sentence:       q.Sentence,
			UnderlinedWord: q.UnderlinedWord,
			Explanation:    q.Explanation,
			Image:          q.Image,
		}
		for i, text := range q.Choices {
			question.Choices = append(question.Choices, model.ListeningChoice{
				Text:      text,
				Order:     i,
				IsCorrect: i == q.Correct,
			})
		}
		lesson.Questions = append(lesson.Questions, question)
	}
	return lesson, nil
}

func buildJlptTest(in JlptTest) (*model.JlptTest, error) {
	if !in.Level.Valid() {
		return nil, fmt.Errorf("jlpt test %q: invalid level %q", in.Title, in.Level)
	}
	test := &model.JlptTest{
		Level:           in.Level,
		Order:           in.Order,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		TotalScore:      in.TotalScore,
		IsPublished:     true,
	}
	if test.DurationMinutes == 0 {
		test.DurationMinutes = 140
	}
	if test.TotalScore == 0 {
		test.TotalScore = 180
	}
	number := 0
	for _, s := range in.Sections {
		section := model.JlptSection{
			SectionType: s.SectionType,
			TitleJP:     s.TitleJP,
			TitleVN:     s.TitleVN,
			Order:       s.Order,
			MaxScore:    s.MaxScore,
		}
		if section.MaxScore == 0 {
			section.MaxScore = 60
		}
		for i, name := range s.SubSections {
			section.SubSections = append(section.SubSections, model.JlptSubSection{
				Name:  name,
				Order: i,
			})
		}
		for _, q := range s.Questions {
			if err := q.check(fmt.Sprintf("jlpt test %q section %q", in.Title, s.SectionType)); err != nil {
				return nil, err
			}
			number++
			question := model.JlptQuestion{
				QuestionNumber: number,
				Instruction:    q.Instruction,
				Sentence:       q.Sentence,
				UnderlinedWord: q.UnderlinedWord,
				Image:          q.Image,
				AudioFile:      q.AudioFile,
				Explanation:    q.Explanation,
			}
			for i, text := range q.Choices {
				question.Choices = append(question.Choices, model.JlptChoice{
					Text:      text,
					Order:     i,
					IsCorrect: i == q.Correct,
				})
			}
			section.Questions = append(section.Questions, question)
		}
		test.Sections = append(test.Sections, section)
	}
	return test, nil
}
