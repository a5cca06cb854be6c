package repository

import (
	"time"

	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type KanjiRepository struct {
	DB *gorm.DB
}

func NewKanjiRepository(db *gorm.DB) *KanjiRepository {
	return &KanjiRepository{DB: db}
}

func (r *KanjiRepository) ListUnits(level model.JlptLevel) ([]model.KanjiUnit, error) {
	var units []model.KanjiUnit
	q := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc, lesson_number asc") }).
		Order("level asc, `order` asc, unit_number asc")
	if level != "" {
		q = q.Where("level = ?", level)
	}
	err := q.Find(&units).Error
	return units, err
}

func (r *KanjiRepository) FindUnitByID(id uint) (*model.KanjiUnit, error) {
	var unit model.KanjiUnit
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc, lesson_number asc") }).
		First(&unit, id).Error
	return &unit, err
}

func (r *KanjiRepository) FindLessonByID(id uint) (*model.KanjiLesson, error) {
	var lesson model.KanjiLesson
	err := r.DB.
		Preload("Kanjis", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Kanjis.Vocabularies", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		First(&lesson, id).Error
	return &lesson, err
}

func (r *KanjiRepository) FindKanjiByID(id uint) (*model.Kanji, error) {
	var k model.Kanji
	err := r.DB.
		Preload("Vocabularies", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		First(&k, id).Error
	return &k, err
}

// Search matches the character itself or its Vietnamese/meaning gloss.
func (r *KanjiRepository) Search(query string, level model.JlptLevel, limit int) ([]model.Kanji, error) {
	var kanjis []model.Kanji
	like := "%" + query + "%"
	q := r.DB.
		Where("kanji LIKE ? OR vietnamese LIKE ? OR meaning LIKE ?", like, like, like)
	if level != "" {
		q = q.Joins("JOIN kanji_lessons ON kanji_lessons.id = kanjis.lesson_id").
			Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
			Where("kanji_units.level = ?", level)
	}
	err := q.Limit(limit).Find(&kanjis).Error
	return kanjis, err
}

func (r *KanjiRepository) FindProgress(userID, kanjiID uint) (*model.KanjiProgress, error) {
	var p model.KanjiProgress
	err := r.DB.Where("user_id = ? AND kanji_id = ?", userID, kanjiID).First(&p).Error
	return &p, err
}

func (r *KanjiRepository) ListProgress(userID uint) ([]model.KanjiProgress, error) {
	var records []model.KanjiProgress
	err := r.DB.Preload("Kanji").
		Where("user_id = ?", userID).
		Order("last_reviewed_at desc").
		Find(&records).Error
	return records, err
}

func (r *KanjiRepository) SaveProgress(p *model.KanjiProgress) error {
	p.LastReviewedAt = time.Now()
	return r.DB.Save(p).Error
}

func (r *KanjiRepository) DeleteProgress(userID, progressID uint) error {
	return r.DB.Unscoped().
		Where("id = ? AND user_id = ?", progressID, userID).
		Delete(&model.KanjiProgress{}).Error
}

func (r *KanjiRepository) ProgressMap(userID uint, kanjiIDs []uint) (map[uint]model.KanjiProgress, error) {
	var records []model.KanjiProgress
	err := r.DB.Where("user_id = ? AND kanji_id IN ?", userID, kanjiIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.KanjiProgress, len(records))
	for _, p := range records {
		m[p.KanjiID] = p
	}
	return m, nil
}

func (r *KanjiRepository) ListFavorites(userID uint) ([]model.KanjiFavorite, error) {
	var favs []model.KanjiFavorite
	err := r.DB.Preload("Kanji").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&favs).Error
	return favs, err
}

func (r *KanjiRepository) FindFavorite(userID, kanjiID uint) (*model.KanjiFavorite, error) {
	var fav model.KanjiFavorite
	err := r.DB.Where("user_id = ? AND kanji_id = ?", userID, kanjiID).First(&fav).Error
	return &fav, err
}

func (r *KanjiRepository) CreateFavorite(fav *model.KanjiFavorite) error {
	return r.DB.Create(fav).Error
}

func (r *KanjiRepository) DeleteFavorite(userID, favoriteID uint) error {
	return r.DB.Unscoped().
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&model.KanjiFavorite{}).Error
}

// Notebook aggregation helpers.

func (r *KanjiRepository) CountKanjiByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Kanji{}).
		Joins("JOIN kanji_lessons ON kanji_lessons.id = kanjis.lesson_id").
		Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
		Where("kanji_units.level = ?", level).
		Count(&count).Error
	return count, err
}

func (r *KanjiRepository) CountMasteredByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.KanjiProgress{}).
		Joins("JOIN kanjis ON kanjis.id = kanji_progress.kanji_id").
		Joins("JOIN kanji_lessons ON kanji_lessons.id = kanjis.lesson_id").
		Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
		Where("kanji_progress.user_id = ? AND kanji_progress.is_mastered = ? AND kanji_units.level = ?",
			userID, true, level).
		Count(&count).Error
	return count, err
}

func (r *KanjiRepository) CountReviewedByLevel(userID uint, level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.KanjiProgress{}).
		Joins("JOIN kanjis ON kanjis.id = kanji_progress.kanji_id").
		Joins("JOIN kanji_lessons ON kanji_lessons.id = kanjis.lesson_id").
		Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
		Where("kanji_progress.user_id = ? AND kanji_progress.review_count > 0 AND kanji_units.level = ?",
			userID, level).
		Count(&count).Error
	return count, err
}

func (r *KanjiRepository) CountLessonsByLevel(level model.JlptLevel) (int64, error) {
	var count int64
	err := r.DB.Model(&model.KanjiLesson{}).
		Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
		Where("kanji_units.level = ?", level).
		Count(&count).Error
	return count, err
}

// CompletedKanjiLessonCount counts lessons where every kanji is mastered.
func (r *KanjiRepository) CompletedKanjiLessonCount(userID uint, level model.JlptLevel) (int64, error) {
	type row struct {
		LessonID uint
		Total    int
		Mastered int
	}
	var rows []row
	err := r.DB.Model(&model.Kanji{}).
		Select("kanjis.lesson_id as lesson_id, count(*) as total, sum(case when kp.is_mastered then 1 else 0 end) as mastered").
		Joins("JOIN kanji_lessons ON kanji_lessons.id = kanjis.lesson_id").
		Joins("JOIN kanji_units ON kanji_units.id = kanji_lessons.unit_id").
		Joins("LEFT JOIN kanji_progress kp ON kp.kanji_id = kanjis.id AND kp.user_id = ?", userID).
		Where("kanji_units.level = ?", level).
		Group("kanjis.lesson_id").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	var completed int64
	for _, rr := range rows {
		if rr.Total > 0 && rr.Mastered >= rr.Total {
			completed++
		}
	}
	return completed, nil
}
