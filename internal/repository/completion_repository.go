package repository

import (
	"errors"

	"github.com/habithive/habithive-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateCompletion is returned when a completion fact already exists
// for the (habit, date) pair.
var ErrDuplicateCompletion = errors.New("completion already recorded for this date")

// GormCompletionRepository is a GORM implementation of CompletionRepository
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Record inserts one completion fact with ON CONFLICT DO NOTHING, so the
// uniqueness of (habit_id, date) is enforced by the database rather than a
// check-then-write in application code. Zero rows affected means the fact
// was already there.
func (r *GormCompletionRepository) Record(habitID, ownerID uint64, date string) error {
	fact := models.HabitCompletion{
		HabitID: habitID,
		OwnerID: ownerID,
		Date:    date,
	}

	result := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&fact)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateCompletion
	}
	return nil
}

// ListDates returns every recorded date for a habit
func (r *GormCompletionRepository) ListDates(habitID uint64) ([]string, error) {
	var dates []string
	err := r.db.Model(&models.HabitCompletion{}).
		Where("habit_id = ?", habitID).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// HasDate reports whether a fact exists for the given day
func (r *GormCompletionRepository) HasDate(habitID uint64, date string) (bool, error) {
	var count int64
	err := r.db.Model(&models.HabitCompletion{}).
		Where("habit_id = ? AND date = ?", habitID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove deletes the fact for one day. Idempotent: deleting a missing fact
// is not an error.
func (r *GormCompletionRepository) Remove(habitID uint64, date string) error {
	return r.db.Where("habit_id = ? AND date = ?", habitID, date).
		Delete(&models.HabitCompletion{}).Error
}

// ClearByHabit deletes every fact for a habit and returns how many were removed
func (r *GormCompletionRepository) ClearByHabit(habitID uint64) (int64, error) {
	result := r.db.Where("habit_id = ?", habitID).Delete(&models.HabitCompletion{})
	return result.RowsAffected, result.Error
}
