package repository

import (
	"jlpt_backend/internal/model"

	"gorm.io/gorm"
)

type DictionaryRepository struct {
	DB *gorm.DB
}

func NewDictionaryRepository(db *gorm.DB) *DictionaryRepository {
	return &DictionaryRepository{DB: db}
}

// Search matches the keyword, reading or meaning, ordered by keyword.
func (r *DictionaryRepository) Search(query, entryType string, limit int) ([]model.DictionaryEntry, error) {
	var entries []model.DictionaryEntry
	like := "%" + query + "%"
	q := r.DB.
		Where("keyword LIKE ? OR reading LIKE ? OR meaning LIKE ?", like, like, like)
	if entryType != "" {
		q = q.Where("entry_type = ?", entryType)
	}
	err := q.Order("keyword asc").Limit(limit).Find(&entries).Error
	return entries, err
}
