// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/scoring"
)

// OpenWeeklyContest starts the contest window for one guild: announce in the
// default channel, start the Week N thread and zero the weekly counters.
// Counters are zeroed even when the weekly axis is inactive so a later
// toggle never inherits stale progress.
func (e *Engine) OpenWeeklyContest(id models.GuildID, now time.Time) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		err = e.openWeeklyLocked(id, g, now)
	}
	e.finish()
	return err
}

func (e *Engine) openWeeklyLocked(id models.GuildID, g *models.GuildState, now time.Time) error {
	for _, status := range g.Users {
		status.WeeklySubmissions = 0
	}
	if !g.ActiveWeekly {
		return nil
	}
	if g.ChannelID == nil {
		return ErrChannelMissing
	}

	ref, err := e.platform.Say(*g.ChannelID, messages.WeeklyOpen())
	if err != nil {
		return fmt.Errorf("failed to announce weekly contest: %w", err)
	}
	_, week := now.UTC().ISOWeek()
	thread, ok := e.platform.CreateThreadFromMessage(*g.ChannelID, ref, fmt.Sprintf("Week %d", week-1))
	if !ok {
		g.WeeklyID = nil
		return ErrThreadCreationFailed
	}
	g.WeeklyID = &thread
	e.queue(thread, messages.ThreadIntro("", e.rankLocked(id, g)))
	return nil
}

// CloseWeeklyContest ends the contest window for one guild: post the results
// to the contest thread, zero the weekly counters and drop the thread ref.
// Runs for every guild, active or not, so counters always reset.
func (e *Engine) CloseWeeklyContest(id models.GuildID) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		e.closeWeeklyLocked(id, g)
	}
	e.finish()
	return err
}

func (e *Engine) closeWeeklyLocked(id models.GuildID, g *models.GuildState) {
	var rows []messages.WeeklyRow
	for user, status := range g.Users {
		if status.WeeklySubmissions > 0 {
			rows = append(rows, messages.WeeklyRow{User: user, Submissions: status.WeeklySubmissions})
		}
		status.WeeklySubmissions = 0
	}

	if g.WeeklyID != nil {
		var b strings.Builder
		b.WriteString(messages.WeeklyResults(rows, e.resolveLocked(id)))
		b.WriteString("\n")
		b.WriteString(messages.Leaderboard(e.rankLocked(id, g)))
		e.queue(*g.WeeklyID, b.String())
	}
	g.WeeklyID = nil
}

// weeklySubmissionLocked records one contest question. Reaching all 4
// questions earns the placement reward; anything past that is rejected.
func (e *Engine) weeklySubmissionLocked(id models.GuildID, g *models.GuildState, user models.UserID) error {
	finishers := 0
	for _, status := range g.Users {
		if status.WeeklySubmissions == scoring.WeeklyTarget {
			finishers++
		}
	}

	status := g.User(user)
	if status.WeeklySubmissions >= scoring.WeeklyTarget {
		e.queue(*g.WeeklyID, messages.ContestCompleted)
		return ErrContestCompleted
	}

	status.WeeklySubmissions++
	var reward int
	var deed string
	if status.WeeklySubmissions == scoring.WeeklyTarget {
		var place string
		reward, place = scoring.WeeklyPlacement(finishers)
		deed = fmt.Sprintf("coming **%s** in the contest!", place)
	} else {
		reward = 1
		deed = fmt.Sprintf("finishing question **%d**/%d in the contest!", status.WeeklySubmissions, scoring.WeeklyTarget)
	}
	status.Score += reward

	e.queue(*g.WeeklyID, messages.Congrats(user, deed, reward)+messages.ScoreSummary(status.Score, status.MonthlyRecord))
	return nil
}

// OpenWeeklyAll starts the contest window across all guilds; per-guild
// failures are logged and skipped.
func (e *Engine) OpenWeeklyAll(now time.Time) {
	for _, id := range e.GuildIDs() {
		if err := e.OpenWeeklyContest(id, now); err != nil {
			slog.Error("weekly contest open failed", "guild_id", id, "error", err)
		}
	}
}

// CloseWeeklyAll ends the contest window across all guilds.
func (e *Engine) CloseWeeklyAll() {
	for _, id := range e.GuildIDs() {
		if err := e.CloseWeeklyContest(id); err != nil {
			slog.Error("weekly contest close failed", "guild_id", id, "error", err)
		}
	}
}
