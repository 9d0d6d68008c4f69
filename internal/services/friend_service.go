package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFriendCodeNotFound   = errors.New("no user with this friend code")
	ErrCannotFriendSelf     = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists     = errors.New("a friendship or pending request already exists")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrNotRequestAddressee  = errors.New("only the addressee can respond to this request")
	ErrRequestNotPending    = errors.New("friend request is no longer pending")
	ErrFriendshipNotFound   = errors.New("friendship not found")
	ErrNotFriendshipMember  = errors.New("user is not part of this friendship")
	ErrFriendshipNotActive  = errors.New("friendship is not accepted")
)

// FriendService handles the friends graph
type FriendService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

// NewFriendService creates a new FriendService
func NewFriendService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
	}
}

// SendRequest creates a pending friendship towards the user holding friendCode
func (s *FriendService) SendRequest(requesterID uint64, friendCode string) (*models.Friendship, error) {
	code := strings.TrimSpace(friendCode)

	target, err := s.userRepo.FindByFriendCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendCodeNotFound
		}
		return nil, fmt.Errorf("failed to look up friend code: %w", err)
	}

	if target.ID == requesterID {
		return nil, ErrCannotFriendSelf
	}

	existing, err := s.friendshipRepo.FindBetween(requesterID, target.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if existing != nil && existing.Status != models.FriendshipDeclined {
		return nil, ErrFriendshipExists
	}

	// A declined request can be retried; reuse the row.
	if existing != nil {
		existing.RequesterID = requesterID
		existing.AddresseeID = target.ID
		existing.Status = models.FriendshipPending
		if err := s.friendshipRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to renew friend request: %w", err)
		}
		return existing, nil
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: target.ID,
		Status:      models.FriendshipPending,
	}
	if err := s.friendshipRepo.Create(friendship); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return friendship, nil
}

// ListPendingRequests lists incoming pending requests for a user
func (s *FriendService) ListPendingRequests(userID uint64) ([]models.Friendship, error) {
	requests, err := s.friendshipRepo.ListPendingForAddressee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

// Accept marks a pending request accepted. Only the addressee may accept.
func (s *FriendService) Accept(requestID, userID uint64) (*models.Friendship, error) {
	return s.respond(requestID, userID, models.FriendshipAccepted)
}

// Decline marks a pending request declined. Only the addressee may decline.
func (s *FriendService) Decline(requestID, userID uint64) (*models.Friendship, error) {
	return s.respond(requestID, userID, models.FriendshipDeclined)
}

func (s *FriendService) respond(requestID, userID uint64, status models.FriendshipStatus) (*models.Friendship, error) {
	friendship, err := s.friendshipRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}

	if friendship.AddresseeID != userID {
		return nil, ErrNotRequestAddressee
	}
	if friendship.Status != models.FriendshipPending {
		return nil, ErrRequestNotPending
	}

	friendship.Status = status
	if err := s.friendshipRepo.Update(friendship); err != nil {
		return nil, fmt.Errorf("failed to update friend request: %w", err)
	}

	return friendship, nil
}

// ListFriends returns the accepted friendships involving the user, with
// both sides preloaded so callers can pick out the other party.
func (s *FriendService) ListFriends(userID uint64) ([]models.Friendship, error) {
	friendships, err := s.friendshipRepo.ListAcceptedForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friendships, nil
}

// Unfriend removes an accepted friendship. Either party may unfriend.
func (s *FriendService) Unfriend(friendshipID, userID uint64) error {
	friendship, err := s.friendshipRepo.FindByID(friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendshipNotFound
		}
		return fmt.Errorf("failed to find friendship: %w", err)
	}

	if friendship.RequesterID != userID && friendship.AddresseeID != userID {
		return ErrNotFriendshipMember
	}
	if friendship.Status != models.FriendshipAccepted {
		return ErrFriendshipNotActive
	}

	if err := s.friendshipRepo.Delete(friendshipID); err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}
