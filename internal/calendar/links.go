// Package calendar builds the calendar affordances attached to posted
// events: a Google Calendar add-event link, a Google Maps search link, and
// an iCalendar document suitable for a message attachment.
package calendar

import (
	"net/url"
	"strings"
	"time"

	"github.com/sugamax/meetup-alarm/internal/event"
)

const (
	googleCalendarBase = "https://calendar.google.com/calendar/render"
	googleMapsBase     = "https://www.google.com/maps/search/"

	// Meetup listings carry no end time; assume one hour.
	defaultDuration = time.Hour

	gcalTimeLayout = "20060102T150405"
)

// GoogleCalendarURL builds an add-to-calendar link for the event
func GoogleCalendarURL(evt *event.Event) string {
	start := evt.StartTime
	end := start.Add(defaultDuration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", "[Meetup] "+evt.Title)
	q.Set("dates", start.Format(gcalTimeLayout)+"/"+end.Format(gcalTimeLayout))
	if strings.TrimSpace(evt.Location) != "" {
		q.Set("location", evt.Location)
	}
	return googleCalendarBase + "?" + q.Encode()
}

// GoogleMapsURL builds a map search link for the event's location, or
// returns "" when the event has no usable location string.
func GoogleMapsURL(evt *event.Event) string {
	loc := strings.TrimSpace(evt.Location)
	if loc == "" {
		return ""
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", loc)
	return googleMapsBase + "?" + q.Encode()
}
