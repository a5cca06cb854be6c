package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type JlptRepository struct {
	DB *gorm.DB
}

func NewJlptRepository(db *gorm.DB) *JlptRepository {
	return &JlptRepository{DB: db}
}

func (r *JlptRepository) ListTests(level model.JlptLevel) ([]model.JlptTest, error) {
	var tests []model.JlptTest
	q := r.DB.Where("is_published = ?", true).Order("level asc, `order` asc")
	if level != "" {
		q = q.Where("level = ?", level)
	}
	err := q.Find(&tests).Error
	return tests, err
}

// FindTestByID loads the full question tree of a test, published or not.
func (r *JlptRepository) FindTestByID(id uint) (*model.JlptTest, error) {
	var test model.JlptTest
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Sections.SubSections", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("question_number asc") }).
		Preload("Sections.Questions.Choices", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		First(&test, id).Error
	return &test, err
}

func (r *JlptRepository) CreateAttempt(tx *gorm.DB, attempt *model.JlptAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(attempt).Error
}

func (r *JlptRepository) SaveAttempt(tx *gorm.DB, attempt *model.JlptAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(attempt).Error
}

func (r *JlptRepository) CreateAnswers(tx *gorm.DB, answers []model.JlptAnswer) error {
	if tx == nil {
		tx = r.DB
	}
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

// FindAttemptByID scopes the lookup to the owner.
func (r *JlptRepository) FindAttemptByID(userID, attemptID uint) (*model.JlptAttempt, error) {
	var attempt model.JlptAttempt
	err := r.DB.
		Preload("Answers").
		Where("user_id = ?", userID).
		First(&attempt, attemptID).Error
	return &attempt, err
}

// BestScores returns test_id -> best submitted score for the user.
func (r *JlptRepository) BestScores(userID uint, testIDs []uint) (map[uint]int, error) {
	type row struct {
		TestID uint
		Best   int
	}
	var rows []row
	err := r.DB.Model(&model.JlptAttempt{}).
		Select("test_id, max(score) as best").
		Where("user_id = ? AND status = ? AND test_id IN ?", userID, model.AttemptSubmitted, testIDs).
		Group("test_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]int, len(rows))
	for _, rr := range rows {
		m[rr.TestID] = rr.Best
	}
	return m, nil
}

// LastAttempts returns test_id -> id of the most recently submitted attempt.
func (r *JlptRepository) LastAttempts(userID uint, testIDs []uint) (map[uint]uint, error) {
	var attempts []model.JlptAttempt
	err := r.DB.
		Where("user_id = ? AND status = ? AND test_id IN ?", userID, model.AttemptSubmitted, testIDs).
		Order("submitted_at asc").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]uint, len(attempts))
	for _, a := range attempts {
		m[a.TestID] = a.ID
	}
	return m, nil
}

// Notebook aggregation helpers.

func (r *JlptRepository) CountTestsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.JlptTest{}).
		Where("level = ? AND is_published = ?", level, true).
		Count(&count).Error
	return count, err
}

// SubmittedAttemptsByLevel lists the user's submitted attempts for a level.
func (r *JlptRepository) SubmittedAttemptsByLevel(userID uint, level model.JlptLevel) ([]model.JlptAttempt, error) {
	var attempts []model.JlptAttempt
	err := r.DB.
		Joins("JOIN jlpt_tests ON jlpt_tests.id = jlpt_attempts.test_id").
		Where("jlpt_attempts.user_id = ? AND jlpt_attempts.status = ? AND jlpt_tests.level = ?",
			userID, model.AttemptSubmitted, level).
		Find(&attempts).Error
	return attempts, err
}
