package repository

import (
	"time"

	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type VocabRepository struct {
	DB *gorm.DB
}

func NewVocabRepository(db *gorm.DB) *VocabRepository {
	return &VocabRepository{DB: db}
}

func (r *VocabRepository) ListLessons(level model.JlptLevel) ([]model.VocabularyLesson, error) {
	var lessons []model.VocabularyLesson
	q := r.DB.Order("level asc, `order` asc")
	if level != "" {
		q = q.Where("jlpt_level = ?", level)
	}
	err := q.Find(&lessons).Error
	return lessons, err
}

func (r *VocabRepository) FindLessonByID(id uint) (*model.VocabularyLesson, error) {
	var lesson model.VocabularyLesson
	err := r.DB.
		Preload("Words", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Words.Examples").
		First(&lesson, id).Error
	return &lesson, err
}

func (r *VocabRepository) FindWordByID(id uint) (*model.VocabularyWord, error) {
	var word model.VocabularyWord
	err := r.DB.First(&word, id).Error
	return &word, err
}

func (r *VocabRepository) CountWords(lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyWord{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}

// WordCounts returns lesson_id -> word count in one query.
func (r *VocabRepository) WordCounts(lessonIDs []uint) (map[uint]int, error) {
	type row struct {
		LessonID uint
		Cnt      int
	}
	var rows []row
	err := r.DB.Model(&model.VocabularyWord{}).
		Select("lesson_id, count(*) as cnt").
		Where("lesson_id IN ?", lessonIDs).
		Group("lesson_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, rr := range rows {
		counts[rr.LessonID] = rr.Cnt
	}
	return counts, nil
}

func (r *VocabRepository) LessonProgressMap(userID uint, lessonIDs []uint) (map[uint]model.VocabularyLessonProgress, error) {
	var records []model.VocabularyLessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.VocabularyLessonProgress, len(records))
	for _, p := range records {
		m[p.LessonID] = p
	}
	return m, nil
}

func (r *VocabRepository) FindLessonProgress(userID, lessonID uint) (*model.VocabularyLessonProgress, error) {
	var p model.VocabularyLessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	return &p, err
}

func (r *VocabRepository) SaveLessonProgress(p *model.VocabularyLessonProgress) error {
	p.LastStudiedAt = time.Now()
	return r.DB.Save(p).Error
}

func (r *VocabRepository) FindWordProgress(userID, wordID uint) (*model.VocabularyWordProgress, error) {
	var p model.VocabularyWordProgress
	err := r.DB.Where("user_id = ? AND word_id = ?", userID, wordID).First(&p).Error
	return &p, err
}

func (r *VocabRepository) SaveWordProgress(p *model.VocabularyWordProgress) error {
	p.LastReviewedAt = time.Now()
	return r.DB.Save(p).Error
}

// LearnedWordMap returns word_id -> learned for a set of words.
func (r *VocabRepository) LearnedWordMap(userID uint, wordIDs []uint) (map[uint]bool, error) {
	var records []model.VocabularyWordProgress
	err := r.DB.Where("user_id = ? AND word_id IN ?", userID, wordIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]bool, len(records))
	for _, p := range records {
		m[p.WordID] = p.IsLearned
	}
	return m, nil
}

func (r *VocabRepository) FindFavorite(userID, wordID uint) (*model.VocabularyFavorite, error) {
	var fav model.VocabularyFavorite
	err := r.DB.Where("user_id = ? AND word_id = ?", userID, wordID).First(&fav).Error
	return &fav, err
}

func (r *VocabRepository) CreateFavorite(fav *model.VocabularyFavorite) error {
	return r.DB.Create(fav).Error
}

func (r *VocabRepository) DeleteFavorite(userID, wordID uint) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Delete(&model.VocabularyFavorite{}).Error
}

func (r *VocabRepository) FavoriteWordMap(userID uint, wordIDs []uint) (map[uint]bool, error) {
	var records []model.VocabularyFavorite
	err := r.DB.Where("user_id = ? AND word_id IN ?", userID, wordIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]bool, len(records))
	for _, f := range records {
		m[f.WordID] = true
	}
	return m, nil
}

// Notebook aggregation helpers.

func (r *VocabRepository) CountWordsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyWord{}).
		Joins("JOIN vocabulary_lessons ON vocabulary_lessons.id = vocabulary_words.lesson_id").
		Where("vocabulary_lessons.jlpt_level = ?", level).
		Count(&count).Error
	return count, err
}

func (r *VocabRepository) CountLearnedWordsByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyWordProgress{}).
		Joins("JOIN vocabulary_words ON vocabulary_words.id = vocabulary_word_progress.word_id").
		Joins("JOIN vocabulary_lessons ON vocabulary_lessons.id = vocabulary_words.lesson_id").
		Where("vocabulary_word_progress.user_id = ? AND vocabulary_word_progress.is_learned = ? AND vocabulary_lessons.jlpt_level = ?",
			userID, true, level).
		Count(&count).Error
	return count, err
}

func (r *VocabRepository) CountReviewedWordsByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyWordProgress{}).
		Joins("JOIN vocabulary_words ON vocabulary_words.id = vocabulary_word_progress.word_id").
		Joins("JOIN vocabulary_lessons ON vocabulary_lessons.id = vocabulary_words.lesson_id").
		Where("vocabulary_word_progress.user_id = ? AND vocabulary_lessons.jlpt_level = ?", userID, level).
		Count(&count).Error
	return count, err
}

func (r *VocabRepository) CountLessonsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyLesson{}).
		Where("jlpt_level = ?", level).
		Count(&count).Error
	return count, err
}

func (r *VocabRepository) CountCompletedLessonsByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyLessonProgress{}).
		Joins("JOIN vocabulary_lessons ON vocabulary_lessons.id = vocabulary_lesson_progress.lesson_id").
		Where("vocabulary_lesson_progress.user_id = ? AND vocabulary_lesson_progress.is_completed = ? AND vocabulary_lessons.jlpt_level = ?",
			userID, true, level).
		Count(&count).Error
	return count, err
}

func (r *VocabRepository) CountStartedLessonsByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyLessonProgress{}).
		Joins("JOIN vocabulary_lessons ON vocabulary_lessons.id = vocabulary_lesson_progress.lesson_id").
		Where("vocabulary_lesson_progress.user_id = ? AND vocabulary_lessons.jlpt_level = ?", userID, level).
		Count(&count).Error
	return count, err
}
