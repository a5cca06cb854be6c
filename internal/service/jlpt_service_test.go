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

func seedJlptTest(t *testing.T, db *gorm.DB) *model.JlptTest {
	t.Helper()

	test := &model.JlptTest{
		Level:           model.LevelN5,
		Order:           1,
		Title:           "N5 Practice Test 1",
		DurationMinutes: 140,
		TotalScore:      180,
		IsPublished:     true,
		Sections: []model.JlptSection{
			{
				SectionType: model.SectionVocab,
				TitleVN:     "Từ vựng",
				Order:       0,
				MaxScore:    60,
				Questions: []model.JlptQuestion{
					{
						QuestionNumber: 1,
						Sentence:       "わたしは がくせい です。",
						Choices: []model.JlptChoice{
							{Text: "a", Order: 0, IsCorrect: true},
							{Text: "b", Order: 1},
							{Text: "c", Order: 2},
							{Text: "d", Order: 3},
						},
					},
					{
						QuestionNumber: 2,
						Sentence:       "これは ほん です。",
						Choices: []model.JlptChoice{
							{Text: "a", Order: 0},
							{Text: "b", Order: 1, IsCorrect: true},
						},
					},
				},
			},
			{
				SectionType: model.SectionListening,
				TitleVN:     "Nghe hiểu",
				Order:       1,
				MaxScore:    60,
				Questions: []model.JlptQuestion{
					{
						QuestionNumber: 1,
						AudioFile:      "n5/q3.mp3",
						Choices: []model.JlptChoice{
							{Text: "a", Order: 0},
							{Text: "b", Order: 1, IsCorrect: true},
						},
					},
				},
			},
		},
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

// jlptAnswers builds the submit body from a question -> choice lookup.
func jlptAnswers(selected map[uint]uint) *JlptSubmitRequest {
	req := &JlptSubmitRequest{Answers: []JlptSubmitAnswer{}}
	for questionID, choiceID := range selected {
		choiceID := choiceID
		req.Answers = append(req.Answers, JlptSubmitAnswer{QuestionID: questionID, ChoiceID: &choiceID})
	}
	return req
}

func choiceByOrder(t *testing.T, q model.JlptQuestion, order int) uint {
	t.Helper()
	for _, c := range q.Choices {
		if c.Order == order {
			return c.ID
		}
	}
	t.Fatalf("question %d has no choice with order %d", q.ID, order)
	return 0
}

func TestJlptSubmitTestScoresAndBreakdown(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	vocabQ1 := test.Sections[0].Questions[0]
	vocabQ2 := test.Sections[0].Questions[1]
	listenQ := test.Sections[1].Questions[0]

	// Two of three correct, one vocab answer wrong.
	result, err := svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{
		vocabQ1.ID: choiceByOrder(t, vocabQ1, 0),
		vocabQ2.ID: choiceByOrder(t, vocabQ2, 0),
		listenQ.ID: choiceByOrder(t, listenQ, 1),
	}))
	require.NoError(t, err)

	// round(2/3*180) = 120, trunc(2/3*100) = 66
	assert.Equal(t, 120, result.Score)
	assert.Equal(t, 180, result.TotalScore)
	assert.Equal(t, 66, result.Percentage)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, model.SectionVocab, result.Sections[0].SectionType)
	assert.Equal(t, 1, result.Sections[0].Correct)
	assert.Equal(t, 2, result.Sections[0].Total)
	assert.Equal(t, 50, result.Sections[0].Percentage)
	assert.Equal(t, 1, result.Sections[1].Correct)
	assert.Equal(t, 1, result.Sections[1].Total)
	assert.Equal(t, 100, result.Sections[1].Percentage)

	var attempt model.JlptAttempt
	require.NoError(t, db.Preload("Answers").First(&attempt, result.AttemptID).Error)
	assert.Equal(t, model.AttemptSubmitted, attempt.Status)
	assert.Equal(t, 120, attempt.Score)
	assert.Len(t, attempt.Answers, 3)
	require.NotNil(t, attempt.SubmittedAt)
}

func TestJlptSubmitRequestDecodesAnswerList(t *testing.T) {
	var req JlptSubmitRequest
	payload := `{"answers":[{"question_id":1,"choice_id":3},{"question_id":2,"choice_id":null}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.Len(t, req.Answers, 2)
	assert.Equal(t, uint(1), req.Answers[0].QuestionID)
	require.NotNil(t, req.Answers[0].ChoiceID)
	assert.Equal(t, uint(3), *req.Answers[0].ChoiceID)
	assert.Nil(t, req.Answers[1].ChoiceID)

	// A blank choice never reaches the grading lookup.
	selected := req.selected()
	assert.Equal(t, map[uint]uint{1: 3}, selected)
}

func TestJlptSubmitTestNoCorrectChoiceGradesWrong(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))

	test := &model.JlptTest{
		Level:           model.LevelN5,
		Order:           1,
		Title:           "N5 Broken Key",
		DurationMinutes: 30,
		TotalScore:      60,
		IsPublished:     true,
		Sections: []model.JlptSection{
			{
				SectionType: model.SectionVocab,
				Order:       0,
				MaxScore:    60,
				Questions: []model.JlptQuestion{
					{
						QuestionNumber: 1,
						Sentence:       "これは ぺん です。",
						Choices: []model.JlptChoice{
							{Text: "a", Order: 0},
							{Text: "b", Order: 1},
						},
					},
				},
			},
		},
	}
	require.NoError(t, db.Create(test).Error)

	q := test.Sections[0].Questions[0]
	for _, c := range q.Choices {
		result, err := svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{q.ID: c.ID}))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Score)

		var answers []model.JlptAnswer
		require.NoError(t, db.Where("attempt_id = ?", result.AttemptID).Find(&answers).Error)
		require.Len(t, answers, 1)
		assert.False(t, answers[0].IsCorrect)
	}
}

func TestJlptSubmitTestUnansweredCountsAsWrong(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	result, err := svc.SubmitTest(7, test.ID, jlptAnswers(nil))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.Percentage)

	// Every question still gets a stored answer row with no selection.
	var answers []model.JlptAnswer
	require.NoError(t, db.Where("attempt_id = ?", result.AttemptID).Find(&answers).Error)
	assert.Len(t, answers, 3)
	for _, a := range answers {
		assert.Nil(t, a.SelectedChoiceID)
		assert.False(t, a.IsCorrect)
	}
}

func TestJlptSubmitTestUnknownChoiceIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	q := test.Sections[0].Questions[0]
	result, err := svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{
		q.ID: 999999,
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestJlptSubmitTestMissingTest(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))

	_, err := svc.SubmitTest(7, 12345, jlptAnswers(nil))
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestJlptListTestsTracksBestScore(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	q1 := test.Sections[0].Questions[0]
	q2 := test.Sections[0].Questions[1]
	q3 := test.Sections[1].Questions[0]

	before, err := svc.ListTests(7, model.LevelN5)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.False(t, before[0].HasAttempted)
	assert.Nil(t, before[0].UserBestScore)

	_, err = svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{
		q1.ID: choiceByOrder(t, q1, 0),
	}))
	require.NoError(t, err)

	second, err := svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{
		q1.ID: choiceByOrder(t, q1, 0),
		q2.ID: choiceByOrder(t, q2, 1),
		q3.ID: choiceByOrder(t, q3, 1),
	}))
	require.NoError(t, err)
	assert.Equal(t, 180, second.Score)

	after, err := svc.ListTests(7, model.LevelN5)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.True(t, after[0].HasAttempted)
	require.NotNil(t, after[0].UserBestScore)
	assert.Equal(t, 180, *after[0].UserBestScore)
	require.NotNil(t, after[0].LastAttemptID)
	assert.Equal(t, second.AttemptID, *after[0].LastAttemptID)
}

func TestJlptUnpublishedTestHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))

	draft := &model.JlptTest{Level: model.LevelN5, Order: 9, Title: "Draft", TotalScore: 180}
	require.NoError(t, db.Create(draft).Error)

	_, err := svc.GetTest(draft.ID)
	assert.ErrorIs(t, err, util.ErrTestNotPublished)

	_, err = svc.SubmitTest(7, draft.ID, jlptAnswers(nil))
	assert.ErrorIs(t, err, util.ErrTestNotPublished)

	tests, err := svc.ListTests(7, model.LevelN5)
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestJlptListTestsOrdersByLevelThenOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	seedJlptTest(t, db)

	require.NoError(t, db.Create(&model.JlptTest{
		Level: model.LevelN1, Order: 2, Title: "N1 Practice Test 2", TotalScore: 180, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&model.JlptTest{
		Level: model.LevelN1, Order: 1, Title: "N1 Practice Test 1", TotalScore: 180, IsPublished: true,
	}).Error)

	all, err := svc.ListTests(7, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, model.LevelN1, all[0].Level)
	assert.Equal(t, 1, all[0].Order)
	assert.Equal(t, model.LevelN1, all[1].Level)
	assert.Equal(t, 2, all[1].Order)
	assert.Equal(t, model.LevelN5, all[2].Level)
}

func TestJlptGetAttemptRevealsAnswersToOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewJlptService(repository.NewJlptRepository(db))
	test := seedJlptTest(t, db)

	q1 := test.Sections[0].Questions[0]
	result, err := svc.SubmitTest(7, test.ID, jlptAnswers(map[uint]uint{
		q1.ID: choiceByOrder(t, q1, 0),
	}))
	require.NoError(t, err)

	detail, err := svc.GetAttempt(7, result.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, test.ID, detail.TestID)
	require.Len(t, detail.Sections, 2)

	review := detail.Sections[0].Questions[0]
	assert.True(t, review.IsCorrect)
	require.NotNil(t, review.SelectedChoiceID)

	sawCorrect := false
	for _, c := range review.Choices {
		if c.IsCorrect {
			sawCorrect = true
		}
	}
	assert.True(t, sawCorrect, "review must expose the correct choice")

	_, err = svc.GetAttempt(8, result.AttemptID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
