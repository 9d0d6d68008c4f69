package constants

// Session / context keys
const (
	SessionCookieName = "habithive_session"
	ContextKeyUserID  = "user_id"
	ContextKeyHabit   = "habit"
)

// Auth
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Habit defaults
const (
	// DefaultCompletionThreshold is the streak length that flips a habit to
	// Completed when no per-habit threshold is given.
	DefaultCompletionThreshold = 7

	// WeeklyWindowDays is the size of the trailing window used for the
	// weekly completion count (today inclusive).
	WeeklyWindowDays = 7

	DefaultCategory = "general"
)
