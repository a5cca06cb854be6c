package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type ReadingRepository struct {
	DB *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{DB: db}
}

func (r *ReadingRepository) ListLessons(level model.JlptLevel) ([]model.ReadingLesson, error) {
	var lessons []model.ReadingLesson
	q := r.DB.Order("level asc, `order` asc")
	if level != "" {
		q = q.Where("level = ?", level)
	}
	err := q.Find(&lessons).Error
	return lessons, err
}

func (r *ReadingRepository) FindLessonByID(id uint) (*model.ReadingLesson, error) {
	var lesson model.ReadingLesson
	err := r.DB.
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		First(&lesson, id).Error
	return &lesson, err
}

func (r *ReadingRepository) FindQuestionByID(id uint) (*model.ReadingQuestion, error) {
	var q model.ReadingQuestion
	err := r.DB.Preload("Choices").First(&q, id).Error
	return &q, err
}

func (r *ReadingRepository) CountQuestions(lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReadingQuestion{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}

// TextCounts returns lesson_id -> reading text count.
func (r *ReadingRepository) TextCounts(lessonIDs []uint) (map[uint]int, error) {
	type row struct {
		LessonID uint
		Cnt      int
	}
	var rows []row
	err := r.DB.Model(&model.ReadingText{}).
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

func (r *ReadingRepository) QuestionCounts(lessonIDs []uint) (map[uint]int, error) {
	type row struct {
		LessonID uint
		Cnt      int
	}
	var rows []row
	err := r.DB.Model(&model.ReadingQuestion{}).
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

func (r *ReadingRepository) FindProgress(userID, lessonID uint) (*model.ReadingProgress, error) {
	var p model.ReadingProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	return &p, err
}

func (r *ReadingRepository) SaveProgress(tx *gorm.DB, p *model.ReadingProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(p).Error
}

func (r *ReadingRepository) ProgressMap(userID uint, lessonIDs []uint) (map[uint]model.ReadingProgress, error) {
	var records []model.ReadingProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.ReadingProgress, len(records))
	for _, p := range records {
		m[p.LessonID] = p
	}
	return m, nil
}

// Notebook aggregation helpers.

func (r *ReadingRepository) CountLessonsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReadingLesson{}).
		Where("level = ?", level).
		Count(&count).Error
	return count, err
}

func (r *ReadingRepository) CountCompletedByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReadingProgress{}).
		Joins("JOIN reading_lessons ON reading_lessons.id = reading_progress.lesson_id").
		Where("reading_progress.user_id = ? AND reading_progress.status = ? AND reading_lessons.level = ?",
			userID, model.StatusCompleted, level).
		Count(&count).Error
	return count, err
}

func (r *ReadingRepository) CountStartedByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReadingProgress{}).
		Joins("JOIN reading_lessons ON reading_lessons.id = reading_progress.lesson_id").
		Where("reading_progress.user_id = ? AND reading_lessons.level = ?", userID, level).
		Count(&count).Error
	return count, err
}

func (r *ReadingRepository) SumCorrectByLevel(userID uint, level model.JlptLevel) (int64, int64, error) {
	type row struct {
		Correct int64
		Total   int64
	}
	var rr row
	err := r.DB.Model(&model.ReadingProgress{}).
		Select("coalesce(sum(reading_progress.correct_count), 0) as correct, coalesce(sum(reading_progress.total_questions), 0) as total").
		Joins("JOIN reading_lessons ON reading_lessons.id = reading_progress.lesson_id").
		Where("reading_progress.user_id = ? AND reading_lessons.level = ?", userID, level).
		Scan(&rr).Error
	return rr.Correct, rr.Total, err
}
