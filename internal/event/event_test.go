package event

import (
	"testing"
	"time"
)

func TestEventID(t *testing.T) {
	evt1 := &Event{URL: "https://www.meetup.com/group/events/1/"}
	evt2 := &Event{URL: "https://www.meetup.com/group/events/1/", Title: "Different title"}
	evt3 := &Event{URL: "https://www.meetup.com/group/events/2/"}

	if evt1.ID() == "" {
		t.Fatal("ID should not be empty")
	}
	if evt1.ID() != evt2.ID() {
		t.Errorf("events with the same URL should have the same ID: %s != %s", evt1.ID(), evt2.ID())
	}
	if evt1.ID() == evt3.ID() {
		t.Error("events with different URLs should have different IDs")
	}
}

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()

	if s.Seen("https://example.com/e1") {
		t.Error("empty set should not contain any URL")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %d entries", s.Len())
	}

	s.Add("https://example.com/e1")

	if !s.Seen("https://example.com/e1") {
		t.Error("added URL should be seen")
	}
	if s.Seen("https://example.com/e2") {
		t.Error("unrelated URL should not be seen")
	}

	// Adding twice is idempotent
	s.Add("https://example.com/e1")
	if s.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate add, got %d", s.Len())
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"three hours from now", now.Add(3 * time.Hour), 0},
		{"two hours ago", now.Add(-2 * time.Hour), -1},
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"this friday", time.Date(2026, time.March, 6, 18, 0, 0, 0, time.UTC), 4},
		{"ten days out", now.AddDate(0, 0, 10), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.t, now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInWindow(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"zero time", time.Time{}, false},
		{"later today", now.Add(6 * time.Hour), true},
		{"yesterday", now.AddDate(0, 0, -1), false},
		{"seven days out", now.AddDate(0, 0, 7), true},
		{"fourteen days out", now.AddDate(0, 0, 14), true},
		{"fifteen days out", now.AddDate(0, 0, 15), false},
		{"ten days out", now.AddDate(0, 0, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindow(tt.t, now); got != tt.want {
				t.Errorf("InWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsThisWeek(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	if !IsThisWeek(now.AddDate(0, 0, 3), now) {
		t.Error("three days out should be this week")
	}
	if !IsThisWeek(now.AddDate(0, 0, 7), now) {
		t.Error("seven days out should still be this week")
	}
	if IsThisWeek(now.AddDate(0, 0, 9), now) {
		t.Error("nine days out should be next week")
	}
}
