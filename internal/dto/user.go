package dto

import (
	"time"

	"github.com/habithive/habithive-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FriendCode  string `json:"friend_code,omitempty"`
}

// ProfileDTO represents the assembled profile view
type ProfileDTO struct {
	ID             uint64         `json:"id"`
	Email          string         `json:"email"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	DisplayName    string         `json:"display_name"`
	FriendCode     string         `json:"friend_code"`
	MemberSince    time.Time      `json:"member_since"`
	ActiveHabits   int64          `json:"active_habits"`
	JournalEntries int64          `json:"journal_entries"`
	RecentHabits   []HabitListDTO `json:"recent_habits"`
}

// ToUserDTO converts a User model to UserDTO. The friend code is only
// included for the user's own views.
func ToUserDTO(user models.User, includeFriendCode bool) UserDTO {
	dto := UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if includeFriendCode {
		dto.FriendCode = user.FriendCode
	}
	return dto
}

// ToProfileDTO assembles the profile view payload
func ToProfileDTO(user models.User, activeHabits, journalEntries int64, recent []models.Habit) ProfileDTO {
	recentDTOs := make([]HabitListDTO, len(recent))
	for i, habit := range recent {
		recentDTOs[i] = ToHabitListDTO(habit)
	}
	return ProfileDTO{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		DisplayName:    user.DisplayName,
		FriendCode:     user.FriendCode,
		MemberSince:    user.CreatedAt,
		ActiveHabits:   activeHabits,
		JournalEntries: journalEntries,
		RecentHabits:   recentDTOs,
	}
}
