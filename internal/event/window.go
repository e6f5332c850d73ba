package event

import (
	"math"
	"time"
)

const (
	// ThisWeekDays is the day-diff boundary between "this week" and "next week"
	ThisWeekDays = 7
	// WindowDays is the day-diff boundary of the posting window
	WindowDays = 14
)

// DaysUntil returns the number of whole days from now until t, rounded down.
// An event three hours from now is 0 days away; an event two hours ago is -1.
func DaysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

// InWindow reports whether t falls within the posting window: today through
// fourteen days out. Events with a zero start time are never in the window.
func InWindow(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	days := DaysUntil(t, now)
	return days >= 0 && days <= WindowDays
}

// IsThisWeek reports whether t falls in the first half of the posting window
// (within seven days of now). Callers should check InWindow first.
func IsThisWeek(t, now time.Time) bool {
	return DaysUntil(t, now) <= ThisWeekDays
}
