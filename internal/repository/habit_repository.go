package repository

import (
	"github.com/habithive/habithive-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// Create creates a new habit
func (r *GormHabitRepository) Create(habit *models.Habit) error {
	return r.db.Create(habit).Error
}

// FindByID finds a habit by ID
func (r *GormHabitRepository) FindByID(id uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.First(&habit, id).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// List retrieves habits with filtering and pagination
func (r *GormHabitRepository) List(filter HabitFilter) ([]models.Habit, int64, error) {
	var habits []models.Habit

	query := r.db.Model(&models.Habit{}).Where("owner_id = ?", filter.OwnerID)

	if !filter.IncludeArchived {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&habits).Error; err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

// ExistsByName reports whether the owner already has a habit with the given
// name, compared case-insensitively
func (r *GormHabitRepository) ExistsByName(ownerID uint64, name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Habit{}).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates a habit
func (r *GormHabitRepository) Update(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

// RecalculateDerived reloads the habit and its completion dates inside one
// transaction, applies recompute, and saves. The row is locked FOR UPDATE so
// concurrent MarkComplete/Reopen calls on the same habit serialize; SQLite
// has no FOR UPDATE and serializes writers on its own, so the clause is
// skipped there.
func (r *GormHabitRepository) RecalculateDerived(id uint64, recompute func(habit *models.Habit, dates []string)) (*models.Habit, error) {
	var habit models.Habit
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() != "sqlite" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&habit, id).Error; err != nil {
			return err
		}

		var dates []string
		if err := tx.Model(&models.HabitCompletion{}).
			Where("habit_id = ?", id).
			Pluck("date", &dates).Error; err != nil {
			return err
		}

		recompute(&habit, dates)

		return tx.Save(&habit).Error
	})
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// Archive soft-deletes a habit by clearing its active flag
func (r *GormHabitRepository) Archive(id uint64) error {
	return r.db.Model(&models.Habit{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// Purge hard-deletes a habit and all its completion facts in a transaction
func (r *GormHabitRepository) Purge(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Habit{}, id).Error
	})
}

// CountActiveByOwner counts the owner's active habits
func (r *GormHabitRepository) CountActiveByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Habit{}).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Count(&count).Error
	return count, err
}

// ListRecentByOwner returns the owner's most recently created active habits
func (r *GormHabitRepository) ListRecentByOwner(ownerID uint64, limit int) ([]models.Habit, error) {
	var habits []models.Habit
	err := r.db.Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}
