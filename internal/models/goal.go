package models

import (
	"time"

	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "In Progress"
	GoalStatusCompleted  GoalStatus = "Completed"
)

type Goal struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	OwnerID      uint64     `gorm:"not null;index" json:"owner_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	TargetValue  int        `gorm:"not null;default:0" json:"target_value"`
	CurrentValue int        `gorm:"not null;default:0" json:"current_value"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Status       GoalStatus `gorm:"type:varchar(20);not null;default:'In Progress'" json:"status"`
	HabitID      *uint64    `gorm:"index" json:"habit_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
