package service

import (
	"time"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
	"jlpt_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type JlptService struct {
	JlptRepo *repository.JlptRepository
}

func NewJlptService(jlptRepo *repository.JlptRepository) *JlptService {
	return &JlptService{JlptRepo: jlptRepo}
}

type JlptTestSummary struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Level           model.JlptLevel `json:"level"`
	Order           int             `json:"order"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalScore      int             `json:"total_score"`
	UserBestScore   *int            `json:"user_best_score"`
	HasAttempted    bool            `json:"has_attempted"`
	LastAttemptID   *uint           `json:"last_attempt_id"`
}

func (s *JlptService) ListTests(userID uint, level model.JlptLevel) ([]JlptTestSummary, error) {
	tests, err := s.JlptRepo.ListTests(level)
	if err != nil {
		return nil, err
	}

	testIDs := make([]uint, len(tests))
	for i, t := range tests {
		testIDs[i] = t.ID
	}
	bestScores, err := s.JlptRepo.BestScores(userID, testIDs)
	if err != nil {
		return nil, err
	}
	lastAttempts, err := s.JlptRepo.LastAttempts(userID, testIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]JlptTestSummary, 0, len(tests))
	for _, t := range tests {
		summary := JlptTestSummary{
			ID:              t.ID,
			Title:           t.Title,
			Description:     t.Description,
			Level:           t.Level,
			Order:           t.Order,
			DurationMinutes: t.DurationMinutes,
			TotalScore:      t.TotalScore,
		}
		if best, ok := bestScores[t.ID]; ok {
			score := best
			summary.UserBestScore = &score
			summary.HasAttempted = true
		}
		if last, ok := lastAttempts[t.ID]; ok {
			attemptID := last
			summary.LastAttemptID = &attemptID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetTest returns the test paper with correct answers stripped.
func (s *JlptService) GetTest(testID uint) (*model.JlptTest, error) {
	test, err := s.JlptRepo.FindTestByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}
	return test, nil
}

type JlptSubmitAnswer struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	ChoiceID   *uint `json:"choice_id"`
}

type JlptSubmitRequest struct {
	Answers []JlptSubmitAnswer `json:"answers" binding:"required"`
}

// selected flattens the answer list into a question -> choice lookup.
// A null choice_id means the question was left blank.
func (r *JlptSubmitRequest) selected() map[uint]uint {
	m := make(map[uint]uint, len(r.Answers))
	for _, a := range r.Answers {
		if a.ChoiceID != nil {
			m[a.QuestionID] = *a.ChoiceID
		}
	}
	return m
}

type JlptSubSectionResult struct {
	Name    string `json:"name"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

type JlptSectionResult struct {
	SectionType string                 `json:"section_type"`
	TitleVN     string                 `json:"title_vn"`
	Correct     int                    `json:"correct"`
	Total       int                    `json:"total"`
	Percentage  int                    `json:"percentage"`
	SubSections []JlptSubSectionResult `json:"subsections"`
}

type JlptSubmitResult struct {
	AttemptID  uint                `json:"attempt_id"`
	Score      int                 `json:"score"`
	TotalScore int                 `json:"total_score"`
	Percentage int                 `json:"percentage"`
	Sections   []JlptSectionResult `json:"sections"`
}

// SubmitTest grades every question of the test, stores a submitted
// attempt with frozen per-question correctness and returns the section
// breakdown. Unanswered questions count as wrong.
func (s *JlptService) SubmitTest(userID, testID uint, req *JlptSubmitRequest) (*JlptSubmitResult, error) {
	test, err := s.JlptRepo.FindTestByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	selected := req.selected()
	totalQuestions := 0
	totalCorrect := 0
	answers := make([]model.JlptAnswer, 0)
	sections := make([]JlptSectionResult, 0, len(test.Sections))

	for _, section := range test.Sections {
		subNames := make(map[uint]string, len(section.SubSections))
		subOrder := make([]uint, 0, len(section.SubSections))
		subResults := make(map[uint]*JlptSubSectionResult)
		for _, sub := range section.SubSections {
			subNames[sub.ID] = sub.Name
			subOrder = append(subOrder, sub.ID)
			subResults[sub.ID] = &JlptSubSectionResult{Name: sub.Name}
		}

		sectionResult := JlptSectionResult{
			SectionType: section.SectionType,
			TitleVN:     section.TitleVN,
		}

		for _, q := range section.Questions {
			totalQuestions++
			sectionResult.Total++
			if q.SubSectionID != nil {
				if sr, ok := subResults[*q.SubSectionID]; ok {
					sr.Total++
				}
			}

			answer := model.JlptAnswer{QuestionID: q.ID}
			if choiceID, answered := selected[q.ID]; answered {
				for _, c := range q.Choices {
					if c.ID == choiceID {
						selected := c.ID
						answer.SelectedChoiceID = &selected
						answer.IsCorrect = c.IsCorrect
						break
					}
				}
			}
			if answer.IsCorrect {
				totalCorrect++
				sectionResult.Correct++
				if q.SubSectionID != nil {
					if sr, ok := subResults[*q.SubSectionID]; ok {
						sr.Correct++
					}
				}
			}
			answers = append(answers, answer)
		}

		sectionResult.Percentage = truncPercent(sectionResult.Correct, sectionResult.Total)
		for _, subID := range subOrder {
			sectionResult.SubSections = append(sectionResult.SubSections, *subResults[subID])
		}
		sections = append(sections, sectionResult)
	}

	score := scaleScore(totalCorrect, totalQuestions, test.TotalScore)

	now := time.Now()
	attempt := &model.JlptAttempt{
		UserID:      userID,
		TestID:      test.ID,
		Status:      model.AttemptSubmitted,
		Score:       score,
		TotalScore:  test.TotalScore,
		StartedAt:   now,
		SubmittedAt: &now,
	}

	err = s.JlptRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.JlptRepo.CreateAttempt(tx, attempt); err != nil {
			return err
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		return s.JlptRepo.CreateAnswers(tx, answers)
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("jlpt").Inc()
	return &JlptSubmitResult{
		AttemptID:  attempt.ID,
		Score:      score,
		TotalScore: test.TotalScore,
		Percentage: truncPercent(totalCorrect, totalQuestions),
		Sections:   sections,
	}, nil
}

type JlptChoiceReview struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsCorrect bool   `json:"is_correct"`
}

type JlptQuestionReview struct {
	ID               uint               `json:"id"`
	QuestionNumber   int                `json:"question_number"`
	Instruction      string             `json:"instruction"`
	Sentence         string             `json:"sentence"`
	UnderlinedWord   string             `json:"underlined_word"`
	Image            string             `json:"image"`
	AudioFile        string             `json:"audio_file"`
	Explanation      string             `json:"explanation"`
	SelectedChoiceID *uint              `json:"selected_choice_id"`
	IsCorrect        bool               `json:"is_correct"`
	Choices          []JlptChoiceReview `json:"choices"`
}

type JlptSectionReview struct {
	SectionType string               `json:"section_type"`
	TitleJP     string               `json:"title_jp"`
	TitleVN     string               `json:"title_vn"`
	Questions   []JlptQuestionReview `json:"questions"`
}

type JlptAttemptDetail struct {
	AttemptID   uint                `json:"attempt_id"`
	TestID      uint                `json:"test_id"`
	TestTitle   string              `json:"test_title"`
	Score       int                 `json:"score"`
	TotalScore  int                 `json:"total_score"`
	SubmittedAt *time.Time          `json:"submitted_at"`
	Sections    []JlptSectionReview `json:"sections"`
}

// GetAttempt reveals correct answers and explanations for a submitted
// attempt. Only the owner may read it.
func (s *JlptService) GetAttempt(userID, attemptID uint) (*JlptAttemptDetail, error) {
	attempt, err := s.JlptRepo.FindAttemptByID(userID, attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Status != model.AttemptSubmitted {
		return nil, util.ErrAttemptNotFound
	}

	test, err := s.JlptRepo.FindTestByID(attempt.TestID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	answerMap := make(map[uint]model.JlptAnswer, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answerMap[a.QuestionID] = a
	}

	detail := &JlptAttemptDetail{
		AttemptID:   attempt.ID,
		TestID:      test.ID,
		TestTitle:   test.Title,
		Score:       attempt.Score,
		TotalScore:  attempt.TotalScore,
		SubmittedAt: attempt.SubmittedAt,
		Sections:    make([]JlptSectionReview, 0, len(test.Sections)),
	}

	for _, section := range test.Sections {
		review := JlptSectionReview{
			SectionType: section.SectionType,
			TitleJP:     section.TitleJP,
			TitleVN:     section.TitleVN,
			Questions:   make([]JlptQuestionReview, 0, len(section.Questions)),
		}
		for _, q := range section.Questions {
			qr := JlptQuestionReview{
				ID:             q.ID,
				QuestionNumber: q.QuestionNumber,
				Instruction:    q.Instruction,
				Sentence:       q.Sentence,
				UnderlinedWord: q.UnderlinedWord,
				Image:          q.Image,
				AudioFile:      q.AudioFile,
				Explanation:    q.Explanation,
				Choices:        make([]JlptChoiceReview, 0, len(q.Choices)),
			}
			if a, ok := answerMap[q.ID]; ok {
				qr.SelectedChoiceID = a.SelectedChoiceID
				qr.IsCorrect = a.IsCorrect
			}
			for _, c := range q.Choices {
				qr.Choices = append(qr.Choices, JlptChoiceReview{
					ID:        c.ID,
					Text:      c.Text,
					Order:     c.Order,
					IsCorrect: c.IsCorrect,
				})
			}
			review.Questions = append(review.Questions, qr)
		}
		detail.Sections = append(detail.Sections, review)
	}
	return detail, nil
}
