// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"log/slog"
	"time"

	"github.com/growtogether/leetcode-daily/engine"
)

// ContestWindow is how long the weekly contest stays open.
const ContestWindow = 90 * time.Minute

// ReminderLead is how long before midnight the last-call reminder fires.
const ReminderLead = time.Hour

// contestHour and contestMinute place the weekly contest at Sunday 02:30 UTC.
const (
	contestHour   = 2
	contestMinute = 30
)

// UntilMidnightUTC returns the wait until the next daily rollover. The
// target is 00:01 rather than 00:00 so the catalog has published the new
// question of the day by the time the rollover fetches it.
func UntilMidnightUTC(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, time.UTC).AddDate(0, 0, 1)
	return next.Sub(now)
}

// UntilWeeklyContest returns the wait until the next Sunday 02:30 UTC start.
// On a Sunday before 02:30 the contest fires the same day; at or past 02:30
// it waits a full week.
func UntilWeeklyContest(now time.Time) time.Duration {
	now = now.UTC()
	sameDay := time.Date(now.Year(), now.Month(), now.Day(), contestHour, contestMinute, 0, 0, time.UTC)
	untilSameDay := sameDay.Sub(now)
	days := (7 - int(now.Weekday())) % 7
	if days == 0 {
		if untilSameDay > 0 {
			return untilSameDay
		}
		return 7*24*time.Hour + untilSameDay
	}
	return time.Duration(days)*24*time.Hour + untilSameDay
}

// Scheduler drives the engine's timed transitions. Loops run until process
// exit; there is no cancellation path.
type Scheduler struct {
	engine *engine.Engine
}

// New returns a scheduler over eng.
func New(eng *engine.Engine) *Scheduler {
	return &Scheduler{engine: eng}
}

// RunDaily sleeps to one hour before UTC midnight, fires the last-call
// reminders, sleeps the rest of the way and rolls every guild over. A
// failure in one tick is already handled per guild inside the engine and
// never aborts the loop.
func (s *Scheduler) RunDaily() {
	for {
		wait := UntilMidnightUTC(time.Now())
		slog.Info("next daily rollover scheduled", "wait", wait)
		if wait > ReminderLead {
			time.Sleep(wait - ReminderLead)
			s.engine.RemindAll()
			wait = UntilMidnightUTC(time.Now())
		}
		time.Sleep(wait)
		s.engine.RolloverAll(time.Now().UTC())
	}
}

// RunWeekly sleeps to Sunday 02:30 UTC, opens the contest for active guilds,
// keeps the window open for 90 minutes and closes it for every guild so the
// weekly counters always reset.
func (s *Scheduler) RunWeekly() {
	for {
		wait := UntilWeeklyContest(time.Now())
		slog.Info("next weekly contest scheduled", "wait", wait)
		time.Sleep(wait)
		s.engine.OpenWeeklyAll(time.Now().UTC())
		time.Sleep(ContestWindow)
		s.engine.CloseWeeklyAll()
	}
}
