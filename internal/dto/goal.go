package dto

import (
	"time"

	"github.com/habithive/habithive-api/internal/models"
)

// GoalDTO represents a goal in API responses
type GoalDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	TargetValue  int               `json:"target_value"`
	CurrentValue int               `json:"current_value"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	Status       models.GoalStatus `json:"status"`
	HabitID      *uint64           `json:"habit_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ToGoalDTO converts a Goal model to GoalDTO
func ToGoalDTO(goal models.Goal) GoalDTO {
	return GoalDTO{
		ID:           goal.ID,
		Title:        goal.Title,
		Description:  goal.Description,
		TargetValue:  goal.TargetValue,
		CurrentValue: goal.CurrentValue,
		StartDate:    goal.StartDate,
		EndDate:      goal.EndDate,
		Status:       goal.Status,
		HabitID:      goal.HabitID,
		CreatedAt:    goal.CreatedAt,
	}
}

// ToGoalDTOs converts a slice of goals
func ToGoalDTOs(goals []models.Goal) []GoalDTO {
	items := make([]GoalDTO, len(goals))
	for i, goal := range goals {
		items[i] = ToGoalDTO(goal)
	}
	return items
}
