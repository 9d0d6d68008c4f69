package repository

import (
	"github.com/habithive/habithive-api/internal/database"
	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/utils"
	"gorm.io/gorm"
)

// GormJournalRepository is a GORM implementation of JournalRepository
type GormJournalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &GormJournalRepository{db: db}
}

// Create creates a new journal entry
func (r *GormJournalRepository) Create(entry *models.JournalEntry) error {
	return r.db.Create(entry).Error
}

// ListByOwner lists the owner's entries, newest first
func (r *GormJournalRepository) ListByOwner(ownerID uint64, page, pageSize int) ([]models.JournalEntry, int64, error) {
	var entries []models.JournalEntry

	query := r.db.Model(&models.JournalEntry{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	if err := listQuery.Preload("Habit").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// CountByOwner counts the owner's entries
func (r *GormJournalRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.JournalEntry{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
