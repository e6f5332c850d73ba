package event

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Event represents a single scraped Meetup event
type Event struct {
	Title       string    `json:"title"`
	Group       string    `json:"group"`
	StartTime   time.Time `json:"start_time"`
	StartRaw    string    `json:"start_raw,omitempty"` // original startDate text, kept for fallback display
	URL         string    `json:"url"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	SearchTerm  string    `json:"search_term"`
	Online      bool      `json:"online"`
}

// ID returns a deterministic identifier derived from the event's canonical URL.
// The URL itself is the identity used for deduplication; the hash form is used
// where a compact opaque token is needed (calendar UIDs, log fields).
func (e *Event) ID() string {
	h := sha1.New()
	h.Write([]byte(e.URL))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SeenSet tracks event URLs that have already been accepted for posting.
// It is scoped to a single process run and is only touched by the single
// execution goroutine, so it needs no locking.
type SeenSet struct {
	urls map[string]struct{}
}

// NewSeenSet creates an empty SeenSet
func NewSeenSet() *SeenSet {
	return &SeenSet{urls: make(map[string]struct{})}
}

// Seen reports whether the URL has already been accepted
func (s *SeenSet) Seen(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Add marks the URL as accepted
func (s *SeenSet) Add(url string) {
	s.urls[url] = struct{}{}
}

// Len returns the number of URLs in the set
func (s *SeenSet) Len() int {
	return len(s.urls)
}
