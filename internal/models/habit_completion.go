package models

import "time"

// HabitCompletion records that a habit was completed on one calendar day.
// Date is a YYYY-MM-DD string in UTC; the composite unique index makes a
// second insert for the same (habit, day) a conflict rather than a duplicate.
// Ledger rows are removed physically, never soft-deleted.
type HabitCompletion struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	HabitID uint64 `gorm:"not null;uniqueIndex:idx_completions_habit_date" json:"habit_id"`
	OwnerID uint64 `gorm:"not null;index" json:"owner_id"`
	Date    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_completions_habit_date" json:"date"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Habit Habit `gorm:"foreignKey:HabitID" json:"habit,omitempty"`
}
