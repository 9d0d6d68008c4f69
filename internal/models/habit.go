package models

import (
	"time"
)

type FrequencyKind string

const (
	FrequencyDaily  FrequencyKind = "daily"
	FrequencyWeekly FrequencyKind = "weekly"
	FrequencyCustom FrequencyKind = "custom"
)

type CustomUnit string

const (
	CustomUnitHours CustomUnit = "hours"
	CustomUnitDays  CustomUnit = "days"
)

type HabitStatus string

const (
	HabitStatusInProgress HabitStatus = "InProgress"
	HabitStatusCompleted  HabitStatus = "Completed"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

// Habit is the aggregate a user tracks. CurrentStreak, LongestStreak and
// Status are cached views over the completion ledger: every mutation path
// recomputes them from the recorded completion dates, never sets them from
// anything else.
type Habit struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	OwnerID     uint64        `gorm:"not null;index" json:"owner_id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Category    string        `gorm:"type:varchar(100);not null;default:'general'" json:"category"`
	Frequency   FrequencyKind `gorm:"type:varchar(20);not null;default:'daily'" json:"frequency"`
	CustomValue *int          `json:"custom_value,omitempty"`
	CustomUnit  *CustomUnit   `gorm:"type:varchar(10)" json:"custom_unit,omitempty"`
	Privacy     Privacy       `gorm:"type:varchar(20);not null;default:'public'" json:"privacy"`

	// Reminder settings are stored but never fired by this service.
	ReminderEnabled bool   `gorm:"not null;default:false" json:"reminder_enabled"`
	ReminderTime    string `gorm:"type:varchar(10)" json:"reminder_time"`
	ReminderDays    string `gorm:"type:varchar(100)" json:"reminder_days"`

	IsActive            bool        `gorm:"not null;default:true" json:"is_active"`
	CompletionThreshold int         `gorm:"not null;default:7" json:"completion_threshold"`
	CurrentStreak       int         `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak       int         `gorm:"not null;default:0" json:"longest_streak"`
	Status              HabitStatus `gorm:"type:varchar(20);not null;default:'InProgress'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner       User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Completions []HabitCompletion `gorm:"foreignKey:HabitID" json:"completions,omitempty"`
}
