package dto

import (
	"time"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/utils"
)

// HabitDTO represents a habit in API responses
type HabitDTO struct {
	ID                  uint64               `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Category            string               `json:"category"`
	Frequency           models.FrequencyKind `json:"frequency"`
	CustomValue         *int                 `json:"custom_value,omitempty"`
	CustomUnit          *models.CustomUnit   `json:"custom_unit,omitempty"`
	Privacy             models.Privacy       `json:"privacy"`
	ReminderEnabled     bool                 `json:"reminder_enabled"`
	ReminderTime        string               `json:"reminder_time,omitempty"`
	ReminderDays        string               `json:"reminder_days,omitempty"`
	IsActive            bool                 `json:"is_active"`
	CompletionThreshold int                  `json:"completion_threshold"`
	CurrentStreak       int                  `json:"current_streak"`
	LongestStreak       int                  `json:"longest_streak"`
	Status              models.HabitStatus   `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// HabitListDTO represents a habit in list responses (minimal data)
type HabitListDTO struct {
	ID            uint64               `json:"id"`
	Name          string               `json:"name"`
	Category      string               `json:"category"`
	Frequency     models.FrequencyKind `json:"frequency"`
	CurrentStreak int                  `json:"current_streak"`
	Status        models.HabitStatus   `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// HabitListResponse represents a paginated list of habits
type HabitListResponse struct {
	Habits     []HabitListDTO           `json:"habits"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ProgressDTO is the weekly progress payload
type ProgressDTO struct {
	WeeklyCount    int                `json:"weekly_count"`
	StreakCurrent  int                `json:"streak_current"`
	StreakLongest  int                `json:"streak_longest"`
	CompletedToday bool               `json:"completed_today"`
	Status         models.HabitStatus `json:"status"`
}

// DashboardItemDTO pairs a habit with its progress snapshot
type DashboardItemDTO struct {
	Habit    HabitListDTO `json:"habit"`
	Progress ProgressDTO  `json:"progress"`
}

// ToHabitDTO converts a Habit model to HabitDTO
func ToHabitDTO(habit models.Habit) HabitDTO {
	return HabitDTO{
		ID:                  habit.ID,
		Name:                habit.Name,
		Description:         habit.Description,
		Category:            habit.Category,
		Frequency:           habit.Frequency,
		CustomValue:         habit.CustomValue,
		CustomUnit:          habit.CustomUnit,
		Privacy:             habit.Privacy,
		ReminderEnabled:     habit.ReminderEnabled,
		ReminderTime:        habit.ReminderTime,
		ReminderDays:        habit.ReminderDays,
		IsActive:            habit.IsActive,
		CompletionThreshold: habit.CompletionThreshold,
		CurrentStreak:       habit.CurrentStreak,
		LongestStreak:       habit.LongestStreak,
		Status:              habit.Status,
		CreatedAt:           habit.CreatedAt,
		UpdatedAt:           habit.UpdatedAt,
	}
}

// ToHabitListDTO converts a Habit model to HabitListDTO
func ToHabitListDTO(habit models.Habit) HabitListDTO {
	return HabitListDTO{
		ID:            habit.ID,
		Name:          habit.Name,
		Category:      habit.Category,
		Frequency:     habit.Frequency,
		CurrentStreak: habit.CurrentStreak,
		Status:        habit.Status,
		CreatedAt:     habit.CreatedAt,
	}
}

// ToHabitListResponse converts habits plus pagination metadata
func ToHabitListResponse(habits []models.Habit, params utils.PaginationParams, total int64) HabitListResponse {
	items := make([]HabitListDTO, len(habits))
	for i, habit := range habits {
		items[i] = ToHabitListDTO(habit)
	}
	return HabitListResponse{
		Habits: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
