package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sugamax/meetup-alarm/internal/event"
)

// GenerateICS renders the event as an iCalendar document for attachment to
// the posted message.
func GenerateICS(evt *event.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//meetup-alarm//EN")

	e := cal.AddEvent(evt.ID() + "@meetup-alarm")
	e.SetDtStampTime(time.Now().UTC())
	e.SetStartAt(evt.StartTime)
	e.SetEndAt(evt.StartTime.Add(defaultDuration))
	e.SetSummary("[Meetup] " + evt.Title)

	description := evt.URL
	if d := strings.TrimSpace(evt.Description); d != "" {
		description = d + "\n\n" + evt.URL
	}
	e.SetDescription(description)

	if loc := strings.TrimSpace(evt.Location); loc != "" {
		e.SetLocation(loc)
	}
	if evt.URL != "" {
		e.SetURL(evt.URL)
	}

	return cal.Serialize()
}
