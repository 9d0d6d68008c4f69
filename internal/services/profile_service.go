package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"gorm.io/gorm"
)

// ProfileService builds the profile view: user details plus activity stats.
type ProfileService struct {
	userRepo    repository.UserRepository
	habitRepo   repository.HabitRepository
	journalRepo repository.JournalRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository, habitRepo repository.HabitRepository, journalRepo repository.JournalRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		habitRepo:   habitRepo,
		journalRepo: journalRepo,
	}
}

// ProfileView is the assembled profile payload
type ProfileView struct {
	User           *models.User
	ActiveHabits   int64
	JournalEntries int64
	RecentHabits   []models.Habit
}

// GetProfile assembles the profile for a user
func (s *ProfileService) GetProfile(userID uint64) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	activeHabits, err := s.habitRepo.CountActiveByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count habits: %w", err)
	}

	journalEntries, err := s.journalRepo.CountByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}

	recent, err := s.habitRepo.ListRecentByOwner(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent habits: %w", err)
	}

	return &ProfileView{
		User:           user,
		ActiveHabits:   activeHabits,
		JournalEntries: journalEntries,
		RecentHabits:   recent,
	}, nil
}

// UpdateProfileInput represents a partial profile update
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	DisplayName *string
}

// UpdateProfile applies a partial update to the user's profile fields
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
