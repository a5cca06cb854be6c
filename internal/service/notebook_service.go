package service

import (
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
)

// Notebook category slugs.
const (
	CategoryVocabulary = "vocabulary"
	CategoryKanji      = "kanji"
	CategoryGrammar    = "grammar"
	CategoryReading    = "reading"
	CategoryListening  = "listening"
	CategoryJlpt       = "jlpt"
)

// A grammar lesson counts as mastered once the best attempt reaches
// this share of its questions.
const grammarMasteryThreshold = 80

// A mock test is passed at 60% of its total score.
const jlptPassThreshold = 60

var notebookCategories = []struct {
	Slug  string
	Title string
}{
	{CategoryVocabulary, "Từ vựng"},
	{CategoryKanji, "Kanji"},
	{CategoryGrammar, "Ngữ pháp"},
	{CategoryReading, "Đọc hiểu"},
	{CategoryListening, "Nghe hiểu"},
	{CategoryJlpt, "Thi JLPT"},
}

type NotebookService struct {
	VocabRepo     *repository.VocabRepository
	KanjiRepo     *repository.KanjiRepository
	GrammarRepo   *repository.GrammarRepository
	ReadingRepo   *repository.ReadingRepository
	ListeningRepo *repository.ListeningRepository
	JlptRepo      *repository.JlptRepository
}

func NewNotebookService(
	vocabRepo *repository.VocabRepository,
	kanjiRepo *repository.KanjiRepository,
	grammarRepo *repository.GrammarRepository,
	readingRepo *repository.ReadingRepository,
	listeningRepo *repository.ListeningRepository,
	jlptRepo *repository.JlptRepository,
) *NotebookService {
	return &NotebookService{
		VocabRepo:     vocabRepo,
		KanjiRepo:     kanjiRepo,
		GrammarRepo:   grammarRepo,
		ReadingRepo:   readingRepo,
		ListeningRepo: listeningRepo,
		JlptRepo:      jlptRepo,
	}
}

type NotebookCategorySummary struct {
	Category         string `json:"category"`
	Title            string `json:"title"`
	CompletedLevels  int    `json:"completed_levels"`
	InProgressLevels int    `json:"in_progress_levels"`
	TotalLevels      int    `json:"total_levels"`
}

// levelStats is the per-level accounting every category reduces to.
type levelStats struct {
	totalItems    int64
	masteredItems int64
	reviewedItems int64
	reviewTotal   int64
	totalLessons  int64
	doneLessons   int64
	started       int64
}

func (st levelStats) masteryRate() int {
	return truncPercent(int(st.masteredItems), int(st.totalItems))
}

func (st levelStats) status() string {
	if st.totalItems > 0 && st.masteredItems >= st.totalItems {
		return model.StatusCompleted
	}
	if st.masteredItems > 0 || st.started > 0 {
		return model.StatusInProgress
	}
	return model.StatusNotStarted
}

// Summary rolls every category up to level counts: how many of the
// five JLPT levels are completed or under way.
func (s *NotebookService) Summary(userID uint) ([]NotebookCategorySummary, error) {
	summaries := make([]NotebookCategorySummary, 0, len(notebookCategories))
	for _, cat := range notebookCategories {
		summary := NotebookCategorySummary{
			Category:    cat.Slug,
			Title:       cat.Title,
			TotalLevels: len(model.JlptLevels),
		}
		for _, level := range model.JlptLevels {
			stats, err := s.levelStats(userID, cat.Slug, level)
			if err != nil {
				return nil, err
			}
			switch stats.status() {
			case model.StatusCompleted:
				summary.CompletedLevels++
			case model.StatusInProgress:
				summary.InProgressLevels++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

type NotebookLevelDetail struct {
	Level             model.JlptLevel `json:"level"`
	Status            string          `json:"status"`
	Locked            bool            `json:"locked"`
	LessonsCompleted  int             `json:"lessons_completed"`
	TotalLessons      int             `json:"total_lessons"`
	MasteredItems     int             `json:"mastered_items"`
	TotalItems        int             `json:"total_items"`
	CompletionPercent int             `json:"completion_percent"`
	ReviewedItems     int             `json:"reviewed_items"`
	ReviewTotal       int             `json:"review_total"`
}

type NotebookCategoryDetail struct {
	Slug   string                `json:"slug"`
	Title  string                `json:"title"`
	Levels []NotebookLevelDetail `json:"levels"`
}

// CategoryDetail breaks one category down by level. Levels with no
// content are reported locked.
func (s *NotebookService) CategoryDetail(userID uint, slug string) (*NotebookCategoryDetail, error) {
	var title string
	for _, cat := range notebookCategories {
		if cat.Slug == slug {
			title = cat.Title
		}
	}
	if title == "" {
		return nil, util.ErrCategoryNotFound
	}

	detail := &NotebookCategoryDetail{
		Slug:   slug,
		Title:  title,
		Levels: make([]NotebookLevelDetail, 0, len(model.JlptLevels)),
	}

	for _, level := range model.JlptLevels {
		stats, err := s.levelStats(userID, slug, level)
		if err != nil {
			return nil, err
		}

		ld := NotebookLevelDetail{Level: level}
		if stats.totalLessons == 0 && stats.totalItems == 0 {
			ld.Status = "locked"
			ld.Locked = true
			detail.Levels = append(detail.Levels, ld)
			continue
		}

		ld.Status = stats.status()
		ld.LessonsCompleted = int(stats.doneLessons)
		ld.TotalLessons = int(stats.totalLessons)
		ld.MasteredItems = int(stats.masteredItems)
		ld.TotalItems = int(stats.totalItems)
		ld.CompletionPercent = stats.masteryRate()
		ld.ReviewedItems = int(stats.reviewedItems)
		ld.ReviewTotal = int(stats.reviewTotal)
		detail.Levels = append(detail.Levels, ld)
	}
	return detail, nil
}

func (s *NotebookService) levelStats(userID uint, slug string, level model.JlptLevel) (levelStats, error) {
	switch slug {
	case CategoryVocabulary:
		return s.vocabStats(userID, level)
	case CategoryKanji:
		return s.kanjiStats(userID, level)
	case CategoryGrammar:
		return s.grammarStats(userID, level)
	case CategoryReading:
		return s.readingStats(userID, level)
	case CategoryListening:
		return s.listeningStats(userID, level)
	case CategoryJlpt:
		return s.jlptStats(userID, level)
	}
	return levelStats{}, util.ErrCategoryNotFound
}

func (s *NotebookService) vocabStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	var err error
	if st.totalItems, err = s.VocabRepo.CountWordsByLevel(level); err != nil {
		return st, err
	}
	if st.masteredItems, err = s.VocabRepo.CountLearnedWordsByLevel(userID, level); err != nil {
		return st, err
	}
	if st.reviewedItems, err = s.VocabRepo.CountReviewedWordsByLevel(userID, level); err != nil {
		return st, err
	}
	st.reviewTotal = st.totalItems
	if st.totalLessons, err = s.VocabRepo.CountLessonsByLevel(level); err != nil {
		return st, err
	}
	if st.doneLessons, err = s.VocabRepo.CountCompletedLessonsByLevel(userID, level); err != nil {
		return st, err
	}
	if st.started, err = s.VocabRepo.CountStartedLessonsByLevel(userID, level); err != nil {
		return st, err
	}
	return st, nil
}

func (s *NotebookService) kanjiStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	var err error
	if st.totalItems, err = s.KanjiRepo.CountKanjiByLevel(level); err != nil {
		return st, err
	}
	if st.masteredItems, err = s.KanjiRepo.CountMasteredByLevel(userID, level); err != nil {
		return st, err
	}
	if st.reviewedItems, err = s.KanjiRepo.CountReviewedByLevel(userID, level); err != nil {
		return st, err
	}
	st.reviewTotal = st.totalItems
	if st.totalLessons, err = s.KanjiRepo.CountLessonsByLevel(level); err != nil {
		return st, err
	}
	if st.doneLessons, err = s.KanjiRepo.CompletedKanjiLessonCount(userID, level); err != nil {
		return st, err
	}
	st.started = st.reviewedItems
	return st, nil
}

func (s *NotebookService) grammarStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	rows, err := s.GrammarRepo.LessonMasteryByLevel(userID, level)
	if err != nil {
		return st, err
	}

	st.totalLessons = int64(len(rows))
	st.totalItems = int64(len(rows))
	st.reviewTotal = int64(len(rows))
	for _, row := range rows {
		if row.Total > 0 && percent(row.CorrectCount, row.Total) >= grammarMasteryThreshold {
			st.masteredItems++
			st.doneLessons++
		}
	}
	if st.started, err = s.GrammarRepo.CountStartedLessonsByLevel(userID, level); err != nil {
		return st, err
	}
	st.reviewedItems = st.started
	return st, nil
}

func (s *NotebookService) readingStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	var err error
	if st.totalLessons, err = s.ReadingRepo.CountLessonsByLevel(level); err != nil {
		return st, err
	}
	st.totalItems = st.totalLessons
	if st.doneLessons, err = s.ReadingRepo.CountCompletedByLevel(userID, level); err != nil {
		return st, err
	}
	st.masteredItems = st.doneLessons
	if st.started, err = s.ReadingRepo.CountStartedByLevel(userID, level); err != nil {
		return st, err
	}
	st.reviewedItems = st.started
	_, total, err := s.ReadingRepo.SumCorrectByLevel(userID, level)
	if err != nil {
		return st, err
	}
	st.reviewTotal = total
	if st.reviewTotal == 0 {
		st.reviewTotal = st.totalLessons
	}
	return st, nil
}

func (s *NotebookService) listeningStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	var err error
	if st.totalLessons, err = s.ListeningRepo.CountLessonsByLevel(level); err != nil {
		return st, err
	}
	st.totalItems = st.totalLessons
	if st.doneLessons, err = s.ListeningRepo.CountCompletedByLevel(userID, level); err != nil {
		return st, err
	}
	st.masteredItems = st.doneLessons
	if st.started, err = s.ListeningRepo.CountStartedByLevel(userID, level); err != nil {
		return st, err
	}
	st.reviewedItems = st.started
	_, total, err := s.ListeningRepo.SumCorrectByLevel(userID, level)
	if err != nil {
		return st, err
	}
	st.reviewTotal = total
	if st.reviewTotal == 0 {
		st.reviewTotal = st.totalLessons
	}
	return st, nil
}

func (s *NotebookService) jlptStats(userID uint, level model.JlptLevel) (levelStats, error) {
	var st levelStats
	var err error
	if st.totalLessons, err = s.JlptRepo.CountTestsByLevel(level); err != nil {
		return st, err
	}
	st.totalItems = st.totalLessons
	st.reviewTotal = st.totalLessons

	attempts, err := s.JlptRepo.SubmittedAttemptsByLevel(userID, level)
	if err != nil {
		return st, err
	}

	passed := make(map[uint]bool)
	attempted := make(map[uint]bool)
	for _, a := range attempts {
		attempted[a.TestID] = true
		if a.TotalScore > 0 && truncPercent(a.Score, a.TotalScore) >= jlptPassThreshold {
			passed[a.TestID] = true
		}
	}

	st.masteredItems = int64(len(passed))
	st.doneLessons = int64(len(passed))
	st.started = int64(len(attempted))
	st.reviewedItems = int64(len(attempted))
	return st, nil
}
