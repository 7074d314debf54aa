// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/scoring"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// hoursUntilMidnight returns whole hours remaining until the next UTC
// midnight, the input to the daily reward buckets.
func hoursUntilMidnight(now time.Time) int64 {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return int64(next.Sub(now).Hours())
}

// openDailyLocked starts a new daily cycle: fetch the question of the day,
// announce it in the default channel, start the day's thread from that
// message and post intro plus the current leaderboard there. Submission
// resets happen at rollover, not here; only the poll ref is cleared.
func (e *Engine) openDailyLocked(id models.GuildID, g *models.GuildState, now time.Time, intro string) error {
	if g.ChannelID == nil {
		return ErrChannelMissing
	}
	q, err := e.catalog.FetchDailyQuestion()
	if err != nil {
		return fmt.Errorf("failed to fetch daily question: %w", err)
	}

	g.PollID = nil
	ref, err := e.platform.SendQuestion(*g.ChannelID, messages.DailyAnnouncement(), q)
	if err != nil {
		return fmt.Errorf("failed to announce daily question: %w", err)
	}

	thread, ok := e.platform.CreateThreadFromMessage(*g.ChannelID, ref, now.UTC().Format("02/01/2006"))
	if !ok {
		g.ThreadID = nil
		return ErrThreadCreationFailed
	}
	g.ThreadID = &thread
	e.queue(thread, messages.ThreadIntro(intro, e.rankLocked(id, g)))
	return nil
}

// OpenDailyChallenge starts the daily cycle for one guild. Requires the
// daily axis to be active.
func (e *Engine) OpenDailyChallenge(id models.GuildID, now time.Time) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		if g.ActiveDaily {
			err = e.openDailyLocked(id, g, now, "")
		}
	}
	e.finish()
	return err
}

// Submission routes a code submission to the daily or weekly cycle based on
// the channel it arrived in. Code sent to the default channel gets a
// guidance reply instead.
func (e *Engine) Submission(id models.GuildID, user models.UserID, channel models.ChannelRef, link string, now time.Time) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err != nil {
		e.finish()
		return err
	}

	switch {
	case g.ActiveDaily && g.ThreadID != nil && channel == *g.ThreadID:
		err = e.dailySubmissionLocked(id, g, user, link, now)
	case g.ActiveWeekly && g.WeeklyID != nil && channel == *g.WeeklyID:
		err = e.weeklySubmissionLocked(id, g, user)
	case g.ChannelID != nil && channel == *g.ChannelID && (g.ThreadID != nil || g.WeeklyID != nil):
		e.queue(channel, messages.WrongChannelSubmission(g.ActiveDaily, g.ThreadID, g.WeeklyID))
	}
	e.finish()
	return err
}

func (e *Engine) dailySubmissionLocked(id models.GuildID, g *models.GuildState, user models.UserID, link string, now time.Time) error {
	status := g.User(user)
	if status.Submitted != nil {
		return ErrAlreadySubmitted
	}

	reward := scoring.DailyReward(hoursUntilMidnight(now)) + scoring.StreakBonus(status.DaysMissed)
	status.Submitted = &link
	status.Score += reward
	status.MonthlyRecord++
	status.DaysMissed = 0

	var b strings.Builder
	b.WriteString(messages.Congrats(user, "completing today's challenge!", reward))
	b.WriteString(messages.ScoreSummary(status.Score, status.MonthlyRecord))
	if int(status.MonthlyRecord) == scoring.DaysInMonth(now) {
		b.WriteString(messages.BadgeLine("\nGreat job", now.Month()))
	}

	if g.PollID != nil && g.ThreadID != nil {
		if err := e.platform.EditMessage(*g.ThreadID, *g.PollID, messages.SubmissionList(g.Users)); err != nil {
			slog.Warn("failed to refresh poll message", "guild_id", id, "error", err)
		}
	}

	if everyoneSubmitted(g) {
		b.WriteString("\n" + messages.EveryoneFinished)
	}

	if err := e.ensurePollLocked(id, g, false); err != nil {
		slog.Warn("failed to open poll after submission", "guild_id", id, "error", err)
	}
	e.queue(*g.ThreadID, b.String())
	return nil
}

func everyoneSubmitted(g *models.GuildState) bool {
	for _, status := range g.Users {
		if status.Submitted == nil {
			return false
		}
	}
	return true
}

// Vote records voter's ballot for target on today's poll. Idempotent per
// day: a second vote overwrites the first.
func (e *Engine) Vote(id models.GuildID, voter, target models.UserID, poll models.MessageRef) (string, error) {
	e.mu.Lock()
	name, err := e.voteLocked(id, voter, target, poll)
	e.finish()
	return name, err
}

func (e *Engine) voteLocked(id models.GuildID, voter, target models.UserID, poll models.MessageRef) (string, error) {
	g, err := e.guildLocked(id)
	if err != nil {
		return "", err
	}
	if !g.ActiveDaily || g.PollID == nil || *g.PollID != poll {
		return "", ErrPollMismatch
	}
	if voter == target {
		return "", ErrSelfVote
	}
	targetStatus, ok := g.Users[target]
	if !ok {
		return "", ErrNotParticipating
	}
	if targetStatus.Submitted == nil {
		return "", ErrInvalidTarget
	}
	g.User(voter).VotedFor = &target
	return e.resolveLocked(id)(target), nil
}

// RolloverDaily executes the midnight transition for one guild: tally votes,
// penalize missed days, hand out month-rollover bonuses, reset the daily
// state and reopen the next cycle.
func (e *Engine) RolloverDaily(id models.GuildID, now time.Time) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		err = e.rolloverLocked(id, g, now)
	}
	e.finish()
	return err
}

func (e *Engine) rolloverLocked(id models.GuildID, g *models.GuildState, now time.Time) error {
	g.PollID = nil
	g.ThreadID = nil
	if !g.ActiveDaily {
		return nil
	}

	var b strings.Builder
	newMonth := now.UTC().Day() == 1
	if newMonth {
		e.applyMonthlyBonusLocked(g, now, &b)
	}

	tally := scoring.TallyVotes(g.Users)
	penalties := 0
	for _, status := range g.Users {
		if newMonth {
			status.MonthlyRecord = 0
		}
		if status.Submitted == nil {
			penalties++
			status.Score = scoring.Penalty(status.Score)
			status.DaysMissed++
		} else {
			status.Submitted = nil
		}
		status.VotedFor = nil
	}

	votes := scoring.SortedVotes(tally)
	for _, vote := range votes {
		if status, ok := g.Users[vote.User]; ok {
			status.Score += vote.Votes
		}
	}
	b.WriteString(messages.RolloverSummary(penalties, votes, e.resolveLocked(id)))

	return e.openDailyLocked(id, g, now, b.String())
}

// applyMonthlyBonusLocked rewards everyone tied at the highest monthly
// record, with the perfect-month badge when the record covers the entire
// prior month. Records themselves are reset by the caller.
func (e *Engine) applyMonthlyBonusLocked(g *models.GuildState, now time.Time, b *strings.Builder) {
	var highest uint32
	for _, status := range g.Users {
		if status.MonthlyRecord > highest {
			highest = status.MonthlyRecord
		}
	}
	if highest == 0 {
		return
	}

	prevDays := scoring.DaysInPrevMonth(now)
	perfect := int(highest) == prevDays
	var winners []models.UserID
	for user, status := range g.Users {
		if status.MonthlyRecord == highest {
			winners = append(winners, user)
			status.Score += scoring.MonthlyLeaderBonus(true, perfect)
		}
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })

	prevMonth := now.UTC().AddDate(0, 0, -1).Month()
	b.WriteString(messages.MonthlyWinners(winners, highest, perfect, prevMonth))
}

// RolloverAll runs the midnight transition for every guild. One guild's
// failure is logged and skipped so the rest still roll over.
func (e *Engine) RolloverAll(now time.Time) {
	for _, id := range e.GuildIDs() {
		if err := e.RolloverDaily(id, now); err != nil {
			slog.Error("daily rollover failed", "guild_id", id, "error", err)
		}
	}
}

// RemindAll posts the one-hour warning and refreshes the poll for every
// guild with an active daily.
func (e *Engine) RemindAll() {
	for _, id := range e.GuildIDs() {
		if err := e.remind(id); err != nil {
			slog.Error("daily reminder failed", "guild_id", id, "error", err)
		}
	}
}

func (e *Engine) remind(id models.GuildID) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil && g.ActiveDaily {
		err = e.ensurePollLocked(id, g, false)
		if err == nil {
			e.queue(*g.ThreadID, messages.OneHourReminder+"\n"+messages.Leaderboard(e.rankLocked(id, g)))
		}
	}
	e.finish()
	return err
}
