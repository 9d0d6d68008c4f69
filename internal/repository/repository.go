package repository

import (
	"github.com/habithive/habithive-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByFriendCode finds a user by their friend code
	FindByFriendCode(code string) (*models.User, error)

	// Update updates a user's profile fields
	Update(user *models.User) error
}

// HabitFilter holds filtering options for listing habits
type HabitFilter struct {
	OwnerID         uint64
	Category        string
	IncludeArchived bool
	Page            int
	PageSize        int
}

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	// Create creates a new habit
	Create(habit *models.Habit) error

	// FindByID finds a habit by ID
	FindByID(id uint64) (*models.Habit, error)

	// List retrieves habits with filtering and pagination
	List(filter HabitFilter) ([]models.Habit, int64, error)

	// ExistsByName reports whether the owner already has a habit with the
	// given name (case-insensitive)
	ExistsByName(ownerID uint64, name string) (bool, error)

	// Update updates a habit
	Update(habit *models.Habit) error

	// RecalculateDerived reloads the habit inside a row-locked transaction,
	// hands its completion dates to recompute, and persists the result.
	// Serializes concurrent derived-field updates for a single habit.
	RecalculateDerived(id uint64, recompute func(habit *models.Habit, dates []string)) (*models.Habit, error)

	// Archive soft-deletes a habit by clearing its active flag
	Archive(id uint64) error

	// Purge hard-deletes a habit and all its completion facts
	Purge(id uint64) error

	// CountActiveByOwner counts the owner's active habits
	CountActiveByOwner(ownerID uint64) (int64, error)

	// ListRecentByOwner returns the owner's most recently created active habits
	ListRecentByOwner(ownerID uint64, limit int) ([]models.Habit, error)
}

// CompletionRepository is the append-only ledger of completion facts
type CompletionRepository interface {
	// Record inserts one completion fact. The insert is conditional at the
	// database level; a fact already present for (habitID, date) yields
	// ErrDuplicateCompletion without writing a second row.
	Record(habitID, ownerID uint64, date string) error

	// ListDates returns every recorded date for a habit
	ListDates(habitID uint64) ([]string, error)

	// HasDate reports whether a fact exists for the given day
	HasDate(habitID uint64, date string) (bool, error)

	// Remove deletes the fact for one day; removing a missing fact is not an error
	Remove(habitID uint64, date string) error

	// ClearByHabit deletes every fact for a habit and returns how many were removed
	ClearByHabit(habitID uint64) (int64, error)
}

// JournalRepository defines the interface for journal entry data access
type JournalRepository interface {
	// Create creates a new journal entry
	Create(entry *models.JournalEntry) error

	// ListByOwner lists the owner's entries, newest first
	ListByOwner(ownerID uint64, page, pageSize int) ([]models.JournalEntry, int64, error)

	// CountByOwner counts the owner's entries
	CountByOwner(ownerID uint64) (int64, error)
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	// Create creates a new goal
	Create(goal *models.Goal) error

	// FindByID finds a goal by ID
	FindByID(id uint64) (*models.Goal, error)

	// ListByOwner lists the owner's goals, newest first
	ListByOwner(ownerID uint64) ([]models.Goal, error)

	// Update updates a goal
	Update(goal *models.Goal) error

	// Delete soft deletes a goal
	Delete(id uint64) error
}

// FriendshipRepository defines the interface for friendship data access
type FriendshipRepository interface {
	// Create creates a new friend request
	Create(friendship *models.Friendship) error

	// FindByID finds a friendship by ID
	FindByID(id uint64) (*models.Friendship, error)

	// FindBetween finds any friendship row between two users, in either direction
	FindBetween(userA, userB uint64) (*models.Friendship, error)

	// ListPendingForAddressee lists incoming pending requests
	ListPendingForAddressee(userID uint64) ([]models.Friendship, error)

	// ListAcceptedForUser lists accepted friendships involving the user
	ListAcceptedForUser(userID uint64) ([]models.Friendship, error)

	// Update updates a friendship
	Update(friendship *models.Friendship) error

	// Delete removes a friendship row
	Delete(id uint64) error
}
