// Package scheduler computes the weekly posting trigger.
//
// The configured (day, time, timezone) triple is compiled to a cron
// schedule, whose next occurrence is always strictly in the future: runs
// missed while the process was down are never replayed.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sugamax/meetup-alarm/internal/config"
)

// cronDays maps time.Weekday onto cron day-of-week tokens
var cronDays = map[time.Weekday]string{
	time.Sunday:    "SUN",
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
}

// Scheduler computes weekly post triggers in a configured timezone
type Scheduler struct {
	schedule cron.Schedule
	loc      *time.Location
}

// New compiles the schedule config into a weekly cron trigger
func New(sc config.Schedule) (*Scheduler, error) {
	day, err := config.ParseWeekday(sc.PostDay)
	if err != nil {
		return nil, err
	}

	at, err := time.Parse("15:04", sc.PostTime)
	if err != nil {
		return nil, fmt.Errorf("schedule.post_time %q: expected HH:MM", sc.PostTime)
	}

	loc, err := time.LoadLocation(sc.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule.timezone %q: %w", sc.Timezone, err)
	}

	spec := fmt.Sprintf("CRON_TZ=%s %d %d * * %s", sc.Timezone, at.Minute(), at.Hour(), cronDays[day])
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("compiling schedule %q: %w", spec, err)
	}

	return &Scheduler{schedule: schedule, loc: loc}, nil
}

// Location returns the timezone the schedule is evaluated in
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Next returns the next trigger strictly after t
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Wait blocks until the next trigger, returning the trigger instant. It
// returns the context error if canceled first.
func (s *Scheduler) Wait(ctx context.Context) (time.Time, error) {
	now := time.Now()
	next := s.Next(now)

	t := time.NewTimer(next.Sub(now))
	defer t.Stop()

	select {
	case <-t.C:
		return next, nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}
