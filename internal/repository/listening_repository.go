package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type ListeningRepository struct {
	DB *gorm.DB
}

func NewListeningRepository(db *gorm.DB) *ListeningRepository {
	return &ListeningRepository{DB: db}
}

func (r *ListeningRepository) ListLessons(level model.JlptLevel) ([]model.ListeningLesson, error) {
	var lessons []model.ListeningLesson
	q := r.DB.Where("is_published = ?", true).Order("level asc, `order` asc")
	if level != "" {
		q = q.Where("level = ?", level)
	}
	err := q.Find(&lessons).Error
	return lessons, err
}

func (r *ListeningRepository) FindLessonByID(id uint) (*model.ListeningLesson, error) {
	var lesson model.ListeningLesson
	err := r.DB.
		Preload("Vocabularies", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("question_number asc") }).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Where("is_published = ?", true).
		First(&lesson, id).Error
	return &lesson, err
}

func (r *ListeningRepository) QuestionsWithChoices(lessonID uint) ([]model.ListeningQuestion, error) {
	var questions []model.ListeningQuestion
	err := r.DB.
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Where("lesson_id = ?", lessonID).
		Order("question_number asc").
		Find(&questions).Error
	return questions, err
}

func (r *ListeningRepository) CreateAttempt(tx *gorm.DB, attempt *model.ListeningAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(attempt).Error
}

func (r *ListeningRepository) FindProgress(tx *gorm.DB, userID, lessonID uint) (*model.ListeningProgress, error) {
	if tx == nil {
		tx = r.DB
	}
	var p model.ListeningProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	return &p, err
}

func (r *ListeningRepository) SaveProgress(tx *gorm.DB, p *model.ListeningProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(p).Error
}

func (r *ListeningRepository) ProgressMap(userID uint, lessonIDs []uint) (map[uint]model.ListeningProgress, error) {
	var records []model.ListeningProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.ListeningProgress, len(records))
	for _, p := range records {
		m[p.LessonID] = p
	}
	return m, nil
}

// Notebook aggregation helpers.

func (r *ListeningRepository) CountLessonsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ListeningLesson{}).
		Where("level = ? AND is_published = ?", level, true).
		Count(&count).Error
	return count, err
}

func (r *ListeningRepository) CountCompletedByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ListeningProgress{}).
		Joins("JOIN listening_lessons ON listening_lessons.id = listening_progress.lesson_id").
		Where("listening_progress.user_id = ? AND listening_progress.status = ? AND listening_lessons.level = ?",
			userID, model.StatusCompleted, level).
		Count(&count).Error
	return count, err
}

func (r *ListeningRepository) CountStartedByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ListeningProgress{}).
		Joins("JOIN listening_lessons ON listening_lessons.id = listening_progress.lesson_id").
		Where("listening_progress.user_id = ? AND listening_lessons.level = ?", userID, level).
		Count(&count).Error
	return count, err
}

func (r *ListeningRepository) SumCorrectByLevel(userID uint, level model.JlptLevel) (int64, int64, error) {
	type row struct {
		Correct int64
		Total   int64
	}
	var rr row
	err := r.DB.Model(&model.ListeningProgress{}).
		Select("coalesce(sum(listening_progress.correct_count), 0) as correct, coalesce(sum(listening_progress.total_questions), 0) as total").
		Joins("JOIN listening_lessons ON listening_lessons.id = listening_progress.lesson_id").
		Where("listening_progress.user_id = ? AND listening_lessons.level = ?", userID, level).
		Scan(&rr).Error
	return rr.Correct, rr.Total, err
}
