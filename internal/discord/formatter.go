package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/sugamax/meetup-alarm/internal/calendar"
	"github.com/sugamax/meetup-alarm/internal/event"
)

// Formatter renders events into Discord messages. Rendering is a pure
// function of the event and the reference time, so the same inputs always
// produce the same message.
type Formatter struct {
	tz *time.Location
}

// NewFormatter creates a Formatter that displays times in tz
func NewFormatter(tz *time.Location) *Formatter {
	if tz == nil {
		tz = time.UTC
	}
	return &Formatter{tz: tz}
}

// FormatEvent renders one event as a channel message with an attached
// iCalendar file. The reference time decides the "This <Day>" versus
// "Next Week <Day>" wording.
func (f *Formatter) FormatEvent(evt *event.Event, now time.Time) Message {
	title := CleanTitle(evt.Title)

	display := title
	if evt.SearchTerm != "" {
		display = fmt.Sprintf("[%s] %s", capitalize(evt.SearchTerm), title)
	}

	group := evt.Group
	if group == "" {
		group = "Unknown Group"
	}

	online := ""
	if evt.Online {
		online = " | ☎️ Online"
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("# [%s](%s)\n", display, evt.URL))
	msg.WriteString(fmt.Sprintf("**%s** | **%s**%s\n", group, f.formatDate(evt, now), online))

	links := fmt.Sprintf("[🗓️ Add to Google Calendar](%s)", calendar.GoogleCalendarURL(evt))
	if mapsURL := calendar.GoogleMapsURL(evt); mapsURL != "" {
		links += fmt.Sprintf(" · [📍 Check Location](%s)", mapsURL)
	}
	msg.WriteString(links)
	msg.WriteString("\n")

	return Message{
		Content:  msg.String(),
		FileName: "event.ics",
		FileBody: []byte(calendar.GenerateICS(evt)),
	}
}

// FormatHeader renders the message posted before a batch of events
func (f *Formatter) FormatHeader(icon string) Message {
	if icon == "" {
		icon = "🎉"
	}
	return Message{
		Content: fmt.Sprintf("# %s Upcoming Meetup Events %s\n\n**This Week's Events:**", icon, icon),
	}
}

// formatDate renders the event start as a human-readable relative date.
// Events with a zero start time fall back to the raw scraped string.
func (f *Formatter) formatDate(evt *event.Event, now time.Time) string {
	if evt.StartTime.IsZero() {
		if evt.StartRaw != "" {
			return evt.StartRaw
		}
		return "Date TBD"
	}

	local := evt.StartTime.In(f.tz)
	day := local.Format("Monday")
	date := local.Format("02 January")
	clock := local.Format("15:04")

	if event.IsThisWeek(evt.StartTime, now) {
		return fmt.Sprintf("This %s, %s - %s", day, date, clock)
	}
	return fmt.Sprintf("Next Week %s, %s - %s", day, date, clock)
}
