package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type JlptLevel string

const (
	LevelN5 JlptLevel = "N5"
	LevelN4 JlptLevel = "N4"
	LevelN3 JlptLevel = "N3"
	LevelN2 JlptLevel = "N2"
	LevelN1 JlptLevel = "N1"
)

// JlptLevels is ordered easiest first, matching how the app presents them.
var JlptLevels = []JlptLevel{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

func (l JlptLevel) Valid() bool {
	switch l {
	case LevelN5, LevelN4, LevelN3, LevelN2, LevelN1:
		return true
	}
	return false
}

// Progress status vocabulary shared by the lesson list screens.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)
