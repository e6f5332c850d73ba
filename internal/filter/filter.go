// Package filter narrows scraped candidates down to events worth posting:
// events starting within the this-week/next-week window whose URLs have not
// been posted before. It also owns the posting order, sorting accepted
// events by start time and grouping them by originating search term.
package filter

import (
	"sort"
	"time"

	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/logger"
)

// Filter applies the posting window and seen-URL deduplication
type Filter struct {
	seen *event.SeenSet
}

// New creates a Filter backed by the given seen set
func New(seen *event.SeenSet) *Filter {
	return &Filter{seen: seen}
}

// Apply yields the candidates that start within the posting window relative
// to now and have not been seen before, sorted by start time. Accepted URLs
// are added to the seen set, so an event is accepted at most once per
// process lifetime.
func (f *Filter) Apply(now time.Time, candidates []*event.Event) []*event.Event {
	accepted := make([]*event.Event, 0, len(candidates))

	for _, evt := range candidates {
		if evt.URL == "" {
			continue
		}
		if !event.InWindow(evt.StartTime, now) {
			logger.Debug("event outside posting window", logger.Fields{
				"url":   evt.URL,
				"start": evt.StartTime,
			})
			continue
		}
		if f.seen.Seen(evt.URL) {
			logger.Debug("event already seen", logger.Fields{"url": evt.URL})
			continue
		}
		f.seen.Add(evt.URL)
		accepted = append(accepted, evt)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].StartTime.Before(accepted[j].StartTime)
	})

	return accepted
}

// TermGroup holds the events that matched one search term
type TermGroup struct {
	Term   string
	Events []*event.Event
}

// GroupByTerm splits events by originating search term, preserving the
// order of first appearance and the event order within each group.
func GroupByTerm(events []*event.Event) []TermGroup {
	index := make(map[string]int)
	groups := make([]TermGroup, 0)

	for _, evt := range events {
		i, ok := index[evt.SearchTerm]
		if !ok {
			i = len(groups)
			index[evt.SearchTerm] = i
			groups = append(groups, TermGroup{Term: evt.SearchTerm})
		}
		groups[i].Events = append(groups[i].Events, evt)
	}

	return groups
}
