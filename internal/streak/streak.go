// Package streak derives streak metrics from a habit's completion dates.
// All functions are pure: they take a snapshot of dates plus a reference
// "today" and return the same output for the same input. Calendar days are
// interpreted in UTC throughout.
package streak

import (
	"sort"
	"time"
)

// DateFormat is the wire format for completion dates.
const DateFormat = "2006-01-02"

// Normalize truncates t to its UTC calendar day.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today(now time.Time) time.Time {
	return Normalize(now)
}

// FormatDate renders a day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Normalize(t).Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseDates parses ledger date strings, skipping anything malformed. The
// ledger only ever stores FormatDate output, so skips are not expected.
func ParseDates(raw []string) []time.Time {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := ParseDate(s)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	return dates
}

// CurrentStreak counts consecutive completed days ending at today or
// yesterday. A habit completed yesterday but not yet today still has a live
// streak: the one-day grace period is deliberate and must not be removed.
func CurrentStreak(dates []time.Time, today time.Time) int {
	days := dedupeDescending(dates)
	if len(days) == 0 {
		return 0
	}

	day := Normalize(today)
	head := days[0]
	if !head.Equal(day) && !head.Equal(day.AddDate(0, 0, -1)) {
		return 0
	}

	count := 1
	prev := head
	for _, d := range days[1:] {
		if !d.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		count++
		prev = d
	}
	return count
}

// WeeklyCount returns how many distinct days in the inclusive trailing
// 7-day window [today-6, today] have a completion.
func WeeklyCount(dates []time.Time, today time.Time) int {
	day := Normalize(today)
	start := day.AddDate(0, 0, -6)

	count := 0
	for _, d := range dedupeDescending(dates) {
		if !d.Before(start) && !d.After(day) {
			count++
		}
	}
	return count
}

// LongestRun returns the length of the longest run of consecutive calendar
// days in the set, independent of today. Callers maintaining a cached
// longest streak should prefer max(cached, CurrentStreak) and use this only
// when rebuilding from full history.
func LongestRun(dates []time.Time) int {
	days := dedupeDescending(dates)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// dedupeDescending normalizes, deduplicates and sorts days newest first.
func dedupeDescending(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		n := Normalize(d)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
