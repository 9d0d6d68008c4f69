package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habithive/habithive-api/internal/constants"
	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"github.com/habithive/habithive-api/internal/streak"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitForbidden     = errors.New("habit does not belong to this user")
	ErrHabitNameRequired  = errors.New("habit name is required")
	ErrHabitNameTaken     = errors.New("a habit with this name already exists")
	ErrInvalidFrequency   = errors.New("frequency must be daily, weekly or custom")
	ErrInvalidCustomValue = errors.New("custom frequency requires a positive value and a unit of hours or days")
	ErrInvalidPrivacy     = errors.New("privacy must be public, friends or private")
	ErrInvalidThreshold   = errors.New("completion threshold must be positive")
)

// HabitService orchestrates the completion ledger and the streak calculator
// to keep a habit's cached streak fields consistent with its history.
type HabitService struct {
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
}

// NewHabitService creates a new HabitService
func NewHabitService(habitRepo repository.HabitRepository, completionRepo repository.CompletionRepository) *HabitService {
	return &HabitService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

// CreateHabitInput represents input for creating a habit
type CreateHabitInput struct {
	OwnerID             uint64
	Name                string
	Description         string
	Category            string
	Frequency           models.FrequencyKind
	CustomValue         *int
	CustomUnit          *models.CustomUnit
	Privacy             models.Privacy
	ReminderEnabled     bool
	ReminderTime        string
	ReminderDays        string
	CompletionThreshold int
}

// UpdateHabitInput represents input for a partial habit update
type UpdateHabitInput struct {
	Name                *string
	Description         *string
	Category            *string
	Frequency           *models.FrequencyKind
	CustomValue         *int
	CustomUnit          *models.CustomUnit
	Privacy             *models.Privacy
	ReminderEnabled     *bool
	ReminderTime        *string
	ReminderDays        *string
	CompletionThreshold *int
}

// MarkCompleteResult is what a successful completion reports back
type MarkCompleteResult struct {
	NewStreak int
	Status    models.HabitStatus
}

// Progress is the read-only weekly progress snapshot for a habit
type Progress struct {
	WeeklyCount    int
	CurrentStreak  int
	LongestStreak  int
	CompletedToday bool
	Status         models.HabitStatus
}

// CreateHabit validates and creates a habit for the owner
func (s *HabitService) CreateHabit(input CreateHabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	taken, err := s.habitRepo.ExistsByName(input.OwnerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check habit name: %w", err)
	}
	if taken {
		return nil, ErrHabitNameTaken
	}

	if input.Frequency == "" {
		input.Frequency = models.FrequencyDaily
	}
	if err := validateFrequency(input.Frequency, input.CustomValue, input.CustomUnit); err != nil {
		return nil, err
	}

	if input.Privacy == "" {
		input.Privacy = models.PrivacyPublic
	}
	if err := validatePrivacy(input.Privacy); err != nil {
		return nil, err
	}

	if input.Category == "" {
		input.Category = constants.DefaultCategory
	}

	if input.CompletionThreshold == 0 {
		input.CompletionThreshold = constants.DefaultCompletionThreshold
	}
	if input.CompletionThreshold < 0 {
		return nil, ErrInvalidThreshold
	}

	habit := &models.Habit{
		OwnerID:             input.OwnerID,
		Name:                name,
		Description:         strings.TrimSpace(input.Description),
		Category:            input.Category,
		Frequency:           input.Frequency,
		Privacy:             input.Privacy,
		ReminderEnabled:     input.ReminderEnabled,
		ReminderTime:        input.ReminderTime,
		ReminderDays:        input.ReminderDays,
		IsActive:            true,
		CompletionThreshold: input.CompletionThreshold,
		Status:              models.HabitStatusInProgress,
	}
	if input.Frequency == models.FrequencyCustom {
		habit.CustomValue = input.CustomValue
		habit.CustomUnit = input.CustomUnit
	}

	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

// GetHabit returns a habit after verifying ownership
func (s *HabitService) GetHabit(habitID, ownerID uint64) (*models.Habit, error) {
	return s.loadOwned(habitID, ownerID)
}

// ListHabits returns the owner's active habits
func (s *HabitService) ListHabits(ownerID uint64, category string, page, pageSize int) ([]models.Habit, int64, error) {
	habits, total, err := s.habitRepo.List(repository.HabitFilter{
		OwnerID:  ownerID,
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, total, nil
}

// UpdateHabit applies a partial update after verifying ownership
func (s *HabitService) UpdateHabit(habitID, ownerID uint64, input UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.loadOwned(habitID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrHabitNameRequired
		}
		if !strings.EqualFold(name, habit.Name) {
			taken, err := s.habitRepo.ExistsByName(ownerID, name)
			if err != nil {
				return nil, fmt.Errorf("failed to check habit name: %w", err)
			}
			if taken {
				return nil, ErrHabitNameTaken
			}
		}
		habit.Name = name
	}
	if input.Description != nil {
		habit.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil && *input.Category != "" {
		habit.Category = *input.Category
	}
	if input.Frequency != nil {
		if err := validateFrequency(*input.Frequency, input.CustomValue, input.CustomUnit); err != nil {
			return nil, err
		}
		habit.Frequency = *input.Frequency
		if *input.Frequency == models.FrequencyCustom {
			habit.CustomValue = input.CustomValue
			habit.CustomUnit = input.CustomUnit
		} else {
			habit.CustomValue = nil
			habit.CustomUnit = nil
		}
	}
	if input.Privacy != nil {
		if err := validatePrivacy(*input.Privacy); err != nil {
			return nil, err
		}
		habit.Privacy = *input.Privacy
	}
	if input.ReminderEnabled != nil {
		habit.ReminderEnabled = *input.ReminderEnabled
	}
	if input.ReminderTime != nil {
		habit.ReminderTime = *input.ReminderTime
	}
	if input.ReminderDays != nil {
		habit.ReminderDays = *input.ReminderDays
	}
	if input.CompletionThreshold != nil {
		if *input.CompletionThreshold <= 0 {
			return nil, ErrInvalidThreshold
		}
		habit.CompletionThreshold = *input.CompletionThreshold
	}

	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return habit, nil
}

// ArchiveHabit soft-deletes a habit; its ledger stays intact
func (s *HabitService) ArchiveHabit(habitID, ownerID uint64) error {
	if _, err := s.loadOwned(habitID, ownerID); err != nil {
		return err
	}

	if err := s.habitRepo.Archive(habitID); err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	return nil
}

// PurgeHabit hard-deletes a habit together with its completion facts
func (s *HabitService) PurgeHabit(habitID, ownerID uint64) error {
	if _, err := s.loadOwned(habitID, ownerID); err != nil {
		return err
	}

	if err := s.habitRepo.Purge(habitID); err != nil {
		return fmt.Errorf("failed to purge habit: %w", err)
	}
	return nil
}

// MarkComplete records today's completion and refreshes the cached streak
// fields from the ledger. Marking an already-Completed habit, or marking the
// same day twice, both succeed without another ledger write.
func (s *HabitService) MarkComplete(habitID, ownerID uint64, today time.Time) (*MarkCompleteResult, error) {
	habit, err := s.loadOwned(habitID, ownerID)
	if err != nil {
		return nil, err
	}

	if habit.Status == models.HabitStatusCompleted {
		return &MarkCompleteResult{NewStreak: habit.CurrentStreak, Status: habit.Status}, nil
	}

	day := streak.Today(today)
	err = s.completionRepo.Record(habitID, ownerID, streak.FormatDate(day))
	if err != nil && !errors.Is(err, repository.ErrDuplicateCompletion) {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	habit, err = s.recalculate(habitID, day)
	if err != nil {
		return nil, err
	}

	return &MarkCompleteResult{NewStreak: habit.CurrentStreak, Status: habit.Status}, nil
}

// Reopen discards the habit's whole completion history and returns it to
// its initial state. Deliberately "start over", not "undo today".
func (s *HabitService) Reopen(habitID, ownerID uint64) (*MarkCompleteResult, error) {
	habit, err := s.loadOwned(habitID, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.completionRepo.ClearByHabit(habit.ID); err != nil {
		return nil, fmt.Errorf("failed to clear completions: %w", err)
	}

	habit, err = s.habitRepo.RecalculateDerived(habit.ID, func(h *models.Habit, dates []string) {
		// The ledger was just cleared; any dates here raced in after the
		// clear and are counted, which keeps the cache honest either way.
		days := streak.ParseDates(dates)
		h.CurrentStreak = streak.CurrentStreak(days, streak.Today(time.Now()))
		h.LongestStreak = streak.LongestRun(days)
		h.Status = models.HabitStatusInProgress
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset habit: %w", err)
	}

	return &MarkCompleteResult{NewStreak: habit.CurrentStreak, Status: habit.Status}, nil
}

// ResetAllForOwner applies reopen semantics to every habit the user owns
// and returns how many habits were reset.
func (s *HabitService) ResetAllForOwner(ownerID uint64) (int, error) {
	habits, _, err := s.habitRepo.List(repository.HabitFilter{
		OwnerID:         ownerID,
		IncludeArchived: true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list habits: %w", err)
	}

	count := 0
	for _, habit := range habits {
		if _, err := s.Reopen(habit.ID, ownerID); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WeeklyProgress composes the calculator outputs with the cached status.
// Read-only: the cached fields are not rewritten here.
func (s *HabitService) WeeklyProgress(habitID, ownerID uint64, today time.Time) (*Progress, error) {
	habit, err := s.loadOwned(habitID, ownerID)
	if err != nil {
		return nil, err
	}

	raw, err := s.completionRepo.ListDates(habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	day := streak.Today(today)
	dates := streak.ParseDates(raw)
	current := streak.CurrentStreak(dates, day)

	longest := habit.LongestStreak
	if current > longest {
		longest = current
	}

	completedToday := habit.Status == models.HabitStatusCompleted
	if !completedToday {
		todayStr := streak.FormatDate(day)
		for _, d := range raw {
			if d == todayStr {
				completedToday = true
				break
			}
		}
	}

	return &Progress{
		WeeklyCount:    streak.WeeklyCount(dates, day),
		CurrentStreak:  current,
		LongestStreak:  longest,
		CompletedToday: completedToday,
		Status:         habit.Status,
	}, nil
}

// recalculate refreshes the cached fields from the ledger under the
// per-habit row lock. LongestStreak is a monotonic cache: it only moves up.
func (s *HabitService) recalculate(habitID uint64, today time.Time) (*models.Habit, error) {
	habit, err := s.habitRepo.RecalculateDerived(habitID, func(h *models.Habit, dates []string) {
		h.CurrentStreak = streak.CurrentStreak(streak.ParseDates(dates), today)
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
		if h.CurrentStreak >= h.CompletionThreshold {
			h.Status = models.HabitStatusCompleted
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}
	return habit, nil
}

// loadOwned loads a habit and enforces ownership
func (s *HabitService) loadOwned(habitID, ownerID uint64) (*models.Habit, error) {
	habit, err := s.habitRepo.FindByID(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	if habit.OwnerID != ownerID {
		return nil, ErrHabitForbidden
	}
	return habit, nil
}

func validateFrequency(kind models.FrequencyKind, value *int, unit *models.CustomUnit) error {
	switch kind {
	case models.FrequencyDaily, models.FrequencyWeekly:
		return nil
	case models.FrequencyCustom:
		if value == nil || *value <= 0 || unit == nil {
			return ErrInvalidCustomValue
		}
		if *unit != models.CustomUnitHours && *unit != models.CustomUnitDays {
			return ErrInvalidCustomValue
		}
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func validatePrivacy(p models.Privacy) error {
	switch p {
	case models.PrivacyPublic, models.PrivacyFriends, models.PrivacyPrivate:
		return nil
	default:
		return ErrInvalidPrivacy
	}
}
