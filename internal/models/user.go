package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100)" json:"last_name"`
	DisplayName  string         `gorm:"type:varchar(100)" json:"display_name"`
	FriendCode   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"friend_code"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Habits         []Habit        `gorm:"foreignKey:OwnerID" json:"-"`
	JournalEntries []JournalEntry `gorm:"foreignKey:OwnerID" json:"-"`
	Goals          []Goal         `gorm:"foreignKey:OwnerID" json:"-"`
}
