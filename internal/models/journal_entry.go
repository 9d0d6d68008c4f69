package models

import (
	"time"

	"gorm.io/gorm"
)

type JournalEntry struct {
	ID      uint64  `gorm:"primarykey" json:"id"`
	OwnerID uint64  `gorm:"not null;index" json:"owner_id"`
	HabitID *uint64 `gorm:"index" json:"habit_id,omitempty"`
	Text    string  `gorm:"type:text;not null" json:"text"`
	Mood    string  `gorm:"type:varchar(50)" json:"mood"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Habit *Habit `gorm:"foreignKey:HabitID" json:"habit,omitempty"`
}
