package dto

import (
	"time"

	"github.com/habithive/habithive-api/internal/models"
)

// FriendRequestDTO represents an incoming friend request
type FriendRequestDTO struct {
	ID        uint64    `json:"id"`
	Requester UserDTO   `json:"requester"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendDTO represents an accepted friend
type FriendDTO struct {
	FriendshipID uint64  `json:"friendship_id"`
	User         UserDTO `json:"user"`
}

// ToFriendRequestDTO converts a pending Friendship to FriendRequestDTO
func ToFriendRequestDTO(f models.Friendship) FriendRequestDTO {
	return FriendRequestDTO{
		ID:        f.ID,
		Requester: ToUserDTO(f.Requester, false),
		CreatedAt: f.CreatedAt,
	}
}

// ToFriendDTOs converts accepted friendships to the current user's friends
func ToFriendDTOs(friendships []models.Friendship, userID uint64) []FriendDTO {
	items := make([]FriendDTO, 0, len(friendships))
	for _, f := range friendships {
		other := f.Requester
		if f.RequesterID == userID {
			other = f.Addressee
		}
		items = append(items, FriendDTO{
			FriendshipID: f.ID,
			User:         ToUserDTO(other, false),
		})
	}
	return items
}
