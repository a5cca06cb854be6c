package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type GrammarRepository struct {
	DB *gorm.DB
}

func NewGrammarRepository(db *gorm.DB) *GrammarRepository {
	return &GrammarRepository{DB: db}
}

func (r *GrammarRepository) ListLessons(level model.JlptLevel) ([]model.GrammarLesson, error) {
	var lessons []model.GrammarLesson
	q := r.DB.Order("level asc, `order` asc")
	if level != "" {
		q = q.Where("level = ?", level)
	}
	err := q.Find(&lessons).Error
	return lessons, err
}

func (r *GrammarRepository) FindLessonByID(id uint) (*model.GrammarLesson, error) {
	var lesson model.GrammarLesson
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		First(&lesson, id).Error
	return &lesson, err
}

func (r *GrammarRepository) CountQuestions(lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GrammarQuestion{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}

// IsCorrectChoice reports whether the choice belongs to the question
// and is marked correct.
func (r *GrammarRepository) IsCorrectChoice(questionID, choiceID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GrammarChoice{}).
		Where("id = ? AND question_id = ? AND is_correct = ?", choiceID, questionID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *GrammarRepository) QuestionIDs(lessonID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.GrammarQuestion{}).
		Where("lesson_id = ?", lessonID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GrammarRepository) FindProgress(userID, lessonID uint) (*model.GrammarProgress, error) {
	var p model.GrammarProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	return &p, err
}

func (r *GrammarRepository) SaveProgress(p *model.GrammarProgress) error {
	return r.DB.Save(p).Error
}

func (r *GrammarRepository) ProgressMap(userID uint, lessonIDs []uint) (map[uint]model.GrammarProgress, error) {
	var records []model.GrammarProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.GrammarProgress, len(records))
	for _, p := range records {
		m[p.LessonID] = p
	}
	return m, nil
}

// Notebook aggregation helpers.

func (r *GrammarRepository) CountLessonsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GrammarLesson{}).
		Where("level = ?", level).
		Count(&count).Error
	return count, err
}

// LessonMasteryRows returns per-lesson question totals and the user's
// best correct count, for mastery rate computation.
type LessonMasteryRow struct {
	LessonID     uint
	Total        int
	CorrectCount int
}

func (r *GrammarRepository) LessonMasteryByLevel(userID uint, level model.JlptLevel) ([]LessonMasteryRow, error) {
	var rows []LessonMasteryRow
	err := r.DB.Model(&model.GrammarLesson{}).
		Select("grammar_lessons.id as lesson_id, count(gq.id) as total, coalesce(max(gp.correct_count), 0) as correct_count").
		Joins("LEFT JOIN grammar_questions gq ON gq.lesson_id = grammar_lessons.id").
		Joins("LEFT JOIN grammar_progress gp ON gp.lesson_id = grammar_lessons.id AND gp.user_id = ?", userID).
		Where("grammar_lessons.level = ?", level).
		Group("grammar_lessons.id").
		Scan(&rows).Error
	return rows, err
}

func (r *GrammarRepository) CountStartedLessonsByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GrammarProgress{}).
		Joins("JOIN grammar_lessons ON grammar_lessons.id = grammar_progress.lesson_id").
		Where("grammar_progress.user_id = ? AND grammar_lessons.level = ?", userID, level).
		Count(&count).Error
	return count, err
}
