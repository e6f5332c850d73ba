package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/logger"
)

const onlineAttendanceMode = "https://schema.org/OnlineEventAttendanceMode"

// ldEvent mirrors the schema.org Event shape Meetup embeds as JSON-LD
type ldEvent struct {
	Name                string `json:"name"`
	URL                 string `json:"url"`
	StartDate           string `json:"startDate"`
	Description         string `json:"description"`
	EventAttendanceMode string `json:"eventAttendanceMode"`
	Organizer           struct {
		Name string `json:"name"`
	} `json:"organizer"`
	Location json.RawMessage `json:"location"`
}

// ldLocation is the structured form of an event's location block
type ldLocation struct {
	Name    string `json:"name"`
	Address struct {
		StreetAddress   string `json:"streetAddress"`
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
	} `json:"address"`
}

// ParseSearchPage extracts candidate events from one Meetup search results
// page. Events are read from the JSON-LD script tags embedded in the page.
// Individual malformed items are logged and skipped; an error is returned
// only when the page HTML itself cannot be parsed.
func ParseSearchPage(r io.Reader, term string) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var raw []json.RawMessage
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		items, err := splitLD(text)
		if err != nil {
			logger.Warn("skipping malformed JSON-LD block", logger.Fields{
				"term":  term,
				"block": i,
			})
			return
		}
		raw = append(raw, items...)
	})

	events := make([]*event.Event, 0, len(raw))
	for _, item := range raw {
		evt, ok := parseLDEvent(item, term)
		if !ok {
			continue
		}
		events = append(events, evt)
	}

	return events, nil
}

// splitLD normalizes a JSON-LD block, which may hold a single object or an
// array of objects, into a flat list.
func splitLD(text string) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}
	var single json.RawMessage
	if err := json.Unmarshal([]byte(text), &single); err != nil {
		return nil, err
	}
	return []json.RawMessage{single}, nil
}

// parseLDEvent converts one JSON-LD item into an Event. Items that are not
// events, or that lack a name, URL, or parseable start date, are dropped.
func parseLDEvent(raw json.RawMessage, term string) (*event.Event, bool) {
	var ld ldEvent
	if err := json.Unmarshal(raw, &ld); err != nil {
		logger.Debug("skipping malformed JSON-LD item", logger.Fields{"term": term})
		return nil, false
	}

	if ld.Name == "" || ld.URL == "" || ld.StartDate == "" {
		return nil, false
	}

	start, err := time.Parse(time.RFC3339, ld.StartDate)
	if err != nil {
		logger.Debug("skipping event with unparseable start date", logger.Fields{
			"term":  term,
			"url":   ld.URL,
			"start": ld.StartDate,
		})
		return nil, false
	}

	group := ld.Organizer.Name
	if group == "" {
		group = "Unknown Group"
	}

	return &event.Event{
		Title:       ld.Name,
		Group:       group,
		StartTime:   start,
		StartRaw:    ld.StartDate,
		URL:         ld.URL,
		Location:    parseLDLocation(ld.Location),
		Description: ld.Description,
		SearchTerm:  term,
		Online:      ld.EventAttendanceMode == onlineAttendanceMode,
	}, true
}

// parseLDLocation extracts a display string from the location block, which
// may be an object with a name, an object with only an address, or a bare
// string.
func parseLDLocation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var loc ldLocation
	if err := json.Unmarshal(raw, &loc); err == nil {
		if loc.Name != "" {
			return loc.Name
		}
		parts := make([]string, 0, 3)
		for _, p := range []string{loc.Address.StreetAddress, loc.Address.AddressLocality, loc.Address.AddressRegion} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
