package models

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
)

// Friendship links two users. A row exists in one direction only: the
// requester sends, the addressee accepts or declines.
type Friendship struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	RequesterID uint64           `gorm:"not null;index;uniqueIndex:idx_friendships_pair" json:"requester_id"`
	AddresseeID uint64           `gorm:"not null;index;uniqueIndex:idx_friendships_pair" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}
