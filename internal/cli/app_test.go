package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sugamax/meetup-alarm/internal/config"
	"github.com/sugamax/meetup-alarm/internal/discord"
	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/filter"
)

type stubSource struct {
	events []*event.Event
	calls  int
}

func (s *stubSource) FetchEvents(ctx context.Context, loc config.Location) []*event.Event {
	s.calls++
	return s.events
}

type stubPoster struct {
	batches [][]discord.Message
}

func (p *stubPoster) PostAll(ctx context.Context, msgs []discord.Message) (int, int) {
	p.batches = append(p.batches, msgs)
	return len(msgs), 0
}

type stubWaiter struct {
	triggers int
	fired    int
}

func (w *stubWaiter) Wait(ctx context.Context) (time.Time, error) {
	if w.fired >= w.triggers {
		return time.Time{}, context.Canceled
	}
	w.fired++
	return time.Now(), nil
}

func (w *stubWaiter) Location() *time.Location { return time.UTC }

func testApp(source *stubSource, posted *stubPoster, waiter *stubWaiter) *App {
	return &App{
		Locations: []config.Location{{
			Name:        "Denver",
			Icon:        "🏔️",
			Location:    "Denver, CO",
			Radius:      25,
			SearchTerms: []string{"tech"},
		}},
		Scraper:   source,
		Filter:    filter.New(event.NewSeenSet()),
		Formatter: discord.NewFormatter(time.UTC),
		Poster:    posted,
		Scheduler: waiter,
	}
}

func upcoming(url string) *event.Event {
	return &event.Event{
		Title:      "Tech Meetup",
		Group:      "Denver Tech",
		StartTime:  time.Now().Add(48 * time.Hour),
		URL:        url,
		SearchTerm: "tech",
	}
}

func TestRunOncePostsHeaderAndEvents(t *testing.T) {
	source := &stubSource{events: []*event.Event{
		upcoming("https://example.com/e1"),
		upcoming("https://example.com/e2"),
	}}
	posted := &stubPoster{}
	app := testApp(source, posted, &stubWaiter{})

	app.RunOnce(context.Background())

	if len(posted.batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(posted.batches))
	}
	batch := posted.batches[0]
	if len(batch) != 3 {
		t.Fatalf("expected header + 2 events, got %d messages", len(batch))
	}
	if !strings.Contains(batch[0].Content, "Upcoming Meetup Events") {
		t.Errorf("first message should be the header:\n%s", batch[0].Content)
	}
	if !strings.Contains(batch[0].Content, "🏔️") {
		t.Errorf("header should use the location icon:\n%s", batch[0].Content)
	}
}

func TestRunOnceDeduplicates(t *testing.T) {
	// Scenario from the scrape: two records with identical URLs survive as one.
	source := &stubSource{events: []*event.Event{
		upcoming("https://example.com/e1"),
		upcoming("https://example.com/e1"),
	}}
	posted := &stubPoster{}
	app := testApp(source, posted, &stubWaiter{})

	app.RunOnce(context.Background())

	if len(posted.batches) != 1 || len(posted.batches[0]) != 2 {
		t.Fatalf("expected header + 1 event, got %v", posted.batches)
	}
}

func TestRunOnceSkipsEmptyBatch(t *testing.T) {
	// An event 20 days out is beyond the window; nothing is posted, not
	// even the header.
	far := upcoming("https://example.com/far")
	far.StartTime = time.Now().AddDate(0, 0, 20)

	source := &stubSource{events: []*event.Event{far}}
	posted := &stubPoster{}
	app := testApp(source, posted, &stubWaiter{})

	app.RunOnce(context.Background())

	if len(posted.batches) != 0 {
		t.Errorf("expected no batches for empty run, got %d", len(posted.batches))
	}
}

func TestLoopRunsOncePerTrigger(t *testing.T) {
	source := &stubSource{events: []*event.Event{upcoming("https://example.com/e1")}}
	posted := &stubPoster{}
	waiter := &stubWaiter{triggers: 2}
	app := testApp(source, posted, waiter)

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("Loop returned error: %v", err)
	}

	if source.calls != 2 {
		t.Errorf("expected 2 scrape runs, got %d", source.calls)
	}
	// Second trigger finds the same URL already seen: header-only batches
	// are suppressed, so only the first trigger posts.
	if len(posted.batches) != 1 {
		t.Errorf("expected 1 posted batch across triggers, got %d", len(posted.batches))
	}
}
