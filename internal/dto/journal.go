package dto

import (
	"time"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/utils"
)

// JournalEntryDTO represents a journal entry in API responses
type JournalEntryDTO struct {
	ID        uint64    `json:"id"`
	HabitID   *uint64   `json:"habit_id,omitempty"`
	HabitName string    `json:"habit_name,omitempty"`
	Text      string    `json:"text"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalListResponse represents a paginated list of journal entries
type JournalListResponse struct {
	Entries    []JournalEntryDTO        `json:"entries"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToJournalEntryDTO converts a JournalEntry model to JournalEntryDTO
func ToJournalEntryDTO(entry models.JournalEntry) JournalEntryDTO {
	dto := JournalEntryDTO{
		ID:        entry.ID,
		HabitID:   entry.HabitID,
		Text:      entry.Text,
		Mood:      entry.Mood,
		CreatedAt: entry.CreatedAt,
	}
	if entry.Habit != nil {
		dto.HabitName = entry.Habit.Name
	}
	return dto
}

// ToJournalListResponse converts entries plus pagination metadata
func ToJournalListResponse(entries []models.JournalEntry, params utils.PaginationParams, total int64) JournalListResponse {
	items := make([]JournalEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToJournalEntryDTO(entry)
	}
	return JournalListResponse{
		Entries: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
