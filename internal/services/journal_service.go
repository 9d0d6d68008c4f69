package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"gorm.io/gorm"
)

var ErrJournalTextRequired = errors.New("journal text is required")

// JournalService handles journal entry business logic
type JournalService struct {
	journalRepo repository.JournalRepository
	habitRepo   repository.HabitRepository
}

// NewJournalService creates a new JournalService
func NewJournalService(journalRepo repository.JournalRepository, habitRepo repository.HabitRepository) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		habitRepo:   habitRepo,
	}
}

// CreateEntryInput represents input for creating a journal entry
type CreateEntryInput struct {
	OwnerID uint64
	HabitID *uint64
	Text    string
	Mood    string
}

// CreateEntry creates a journal entry, optionally linked to one of the
// owner's habits.
func (s *JournalService) CreateEntry(input CreateEntryInput) (*models.JournalEntry, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrJournalTextRequired
	}

	if input.HabitID != nil {
		habit, err := s.habitRepo.FindByID(*input.HabitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHabitNotFound
			}
			return nil, fmt.Errorf("failed to find habit: %w", err)
		}
		if habit.OwnerID != input.OwnerID {
			return nil, ErrHabitForbidden
		}
	}

	entry := &models.JournalEntry{
		OwnerID: input.OwnerID,
		HabitID: input.HabitID,
		Text:    text,
		Mood:    strings.TrimSpace(input.Mood),
	}

	if err := s.journalRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	return entry, nil
}

// ListEntries returns the owner's entries, newest first
func (s *JournalService) ListEntries(ownerID uint64, page, pageSize int) ([]models.JournalEntry, int64, error) {
	entries, total, err := s.journalRepo.ListByOwner(ownerID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, total, nil
}
