package cli

import (
	"context"
	"time"

	"github.com/sugamax/meetup-alarm/internal/config"
	"github.com/sugamax/meetup-alarm/internal/discord"
	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/filter"
	"github.com/sugamax/meetup-alarm/internal/logger"
)

// EventSource produces candidate events for one location
type EventSource interface {
	FetchEvents(ctx context.Context, loc config.Location) []*event.Event
}

// MessagePoster delivers a batch of rendered messages
type MessagePoster interface {
	PostAll(ctx context.Context, msgs []discord.Message) (posted, failed int)
}

// TriggerWaiter blocks until the next scheduled trigger
type TriggerWaiter interface {
	Wait(ctx context.Context) (time.Time, error)
	Location() *time.Location
}

// App ties the scrape, filter, format, and post stages together
type App struct {
	Locations []config.Location
	Scraper   EventSource
	Filter    *filter.Filter
	Formatter *discord.Formatter
	Poster    MessagePoster
	Scheduler TriggerWaiter
}

// Loop runs the weekly schedule until the context is canceled
func (a *App) Loop(ctx context.Context) error {
	for {
		next, err := a.Scheduler.Wait(ctx)
		if err != nil {
			logger.Info("shutting down", nil)
			return nil
		}
		logger.Info("scheduled trigger fired", logger.Fields{"trigger": next.Format(time.RFC3339)})
		a.RunOnce(ctx)
	}
}

// RunOnce executes one scrape-filter-format-post sequence. Recoverable
// errors inside the stages are logged and narrow the batch; RunOnce itself
// never fails.
func (a *App) RunOnce(ctx context.Context) {
	logger.ResetCounters()
	logger.Info("starting event collection run", logger.Fields{"locations": len(a.Locations)})

	var candidates []*event.Event
	for _, loc := range a.Locations {
		if ctx.Err() != nil {
			return
		}
		logger.Info("processing location", logger.Fields{
			"name":     loc.Name,
			"location": loc.Location,
			"terms":    len(loc.SearchTerms),
		})
		candidates = append(candidates, a.Scraper.FetchEvents(ctx, loc)...)
	}

	now := time.Now().In(a.Scheduler.Location())
	fresh := a.Filter.Apply(now, candidates)
	logger.Info("filtered candidates", logger.Fields{
		"candidates": len(candidates),
		"accepted":   len(fresh),
	})

	if len(fresh) == 0 {
		logger.Info("no new events found", nil)
		return
	}

	msgs := []discord.Message{a.Formatter.FormatHeader(a.headerIcon())}
	for _, group := range filter.GroupByTerm(fresh) {
		for _, evt := range group.Events {
			msgs = append(msgs, a.Formatter.FormatEvent(evt, now))
		}
	}

	posted, failed := a.Poster.PostAll(ctx, msgs)
	logger.Info("run complete", logger.Fields{
		"posted":   posted,
		"failed":   failed,
		"counters": logger.CounterSnapshot(),
	})
}

// headerIcon picks the icon for the batch header from the first location
func (a *App) headerIcon() string {
	if len(a.Locations) > 0 {
		return a.Locations[0].Icon
	}
	return ""
}
