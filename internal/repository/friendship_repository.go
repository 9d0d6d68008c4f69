package repository

import (
	"github.com/habithive/habithive-api/internal/models"
	"gorm.io/gorm"
)

// GormFriendshipRepository is a GORM implementation of FriendshipRepository
type GormFriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &GormFriendshipRepository{db: db}
}

// Create creates a new friend request
func (r *GormFriendshipRepository) Create(friendship *models.Friendship) error {
	return r.db.Create(friendship).Error
}

// FindByID finds a friendship by ID
func (r *GormFriendshipRepository) FindByID(id uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.First(&friendship, id).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

// FindBetween finds any friendship row between two users, in either direction
func (r *GormFriendshipRepository) FindBetween(userA, userB uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userA, userB, userB, userA,
	).First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// ListPendingForAddressee lists incoming pending requests
func (r *GormFriendshipRepository) ListPendingForAddressee(userID uint64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipPending).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

// ListAcceptedForUser lists accepted friendships involving the user
func (r *GormFriendshipRepository) ListAcceptedForUser(userID uint64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Preload("Requester").Preload("Addressee").
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID, userID, models.FriendshipAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

// Update updates a friendship
func (r *GormFriendshipRepository) Update(friendship *models.Friendship) error {
	return r.db.Save(friendship).Error
}

// Delete removes a friendship row
func (r *GormFriendshipRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Friendship{}, id).Error
}
