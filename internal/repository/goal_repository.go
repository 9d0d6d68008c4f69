package repository

import (
	"github.com/habithive/habithive-api/internal/models"
	"gorm.io/gorm"
)

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// Create creates a new goal
func (r *GormGoalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

// FindByID finds a goal by ID
func (r *GormGoalRepository) FindByID(id uint64) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByOwner lists the owner's goals, newest first
func (r *GormGoalRepository) ListByOwner(ownerID uint64) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Update updates a goal
func (r *GormGoalRepository) Update(goal *models.Goal) error {
	return r.db.Save(goal).Error
}

// Delete soft deletes a goal
func (r *GormGoalRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Goal{}, id).Error
}
