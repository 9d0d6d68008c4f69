package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"github.com/habithive/habithive-api/internal/streak"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrGoalForbidden      = errors.New("goal does not belong to this user")
	ErrGoalTitleRequired  = errors.New("goal title is required")
	ErrGoalTargetRequired = errors.New("goal target date is required")
	ErrInvalidTargetDate  = errors.New("target date must be YYYY-MM-DD")
)

// GoalService handles goal business logic
type GoalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// CreateGoalInput represents input for creating a goal
type CreateGoalInput struct {
	OwnerID      uint64
	Title        string
	Description  string
	TargetDate   string
	TargetValue  int
	CurrentValue int
	HabitID      *uint64
}

// CreateGoal validates and creates a goal
func (s *GoalService) CreateGoal(input CreateGoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrGoalTitleRequired
	}
	if input.TargetDate == "" {
		return nil, ErrGoalTargetRequired
	}

	endDate, err := streak.ParseDate(input.TargetDate)
	if err != nil {
		return nil, ErrInvalidTargetDate
	}

	goal := &models.Goal{
		OwnerID:      input.OwnerID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		StartDate:    time.Now().UTC(),
		EndDate:      endDate,
		Status:       models.GoalStatusInProgress,
		HabitID:      input.HabitID,
	}

	if err := s.goalRepo.Create(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// ListGoals returns the owner's goals
func (s *GoalService) ListGoals(ownerID uint64) ([]models.Goal, error) {
	goals, err := s.goalRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// UpdateProgress sets a goal's current value and flips it to Completed when
// the target is reached.
func (s *GoalService) UpdateProgress(goalID, ownerID uint64, currentValue int) (*models.Goal, error) {
	goal, err := s.loadOwned(goalID, ownerID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = currentValue
	if goal.TargetValue > 0 && goal.CurrentValue >= goal.TargetValue {
		goal.Status = models.GoalStatusCompleted
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

// DeleteGoal removes a goal after verifying ownership
func (s *GoalService) DeleteGoal(goalID, ownerID uint64) error {
	if _, err := s.loadOwned(goalID, ownerID); err != nil {
		return err
	}

	if err := s.goalRepo.Delete(goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) loadOwned(goalID, ownerID uint64) (*models.Goal, error) {
	goal, err := s.goalRepo.FindByID(goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.OwnerID != ownerID {
		return nil, ErrGoalForbidden
	}
	return goal, nil
}
