// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/growtogether/leetcode-daily/models"
)

// PlacementAfterTop3 tags every contest finisher beyond the podium.
const PlacementAfterTop3 = "after top 3"

// WeeklyTarget is the number of questions in one weekly contest.
const WeeklyTarget = 4

// DailyReward returns the reward for completing the daily challenge with
// hoursRemaining hours left until UTC midnight. Earlier same-day submissions
// score higher.
func DailyReward(hoursRemaining int64) int {
	switch {
	case hoursRemaining >= 23:
		return 5
	case hoursRemaining >= 21:
		return 4
	case hoursRemaining >= 16:
		return 3
	case hoursRemaining >= 8:
		return 2
	default:
		return 1
	}
}

// StreakBonus returns the welcome-back bonus for a member resuming after a
// long absence. The caller resets daysMissed on any successful submission.
func StreakBonus(daysMissed uint32) int {
	if daysMissed > 7 {
		return 5
	}
	return 0
}

// MonthlyLeaderBonus returns the month-rollover bonus for one member.
// Every member tied for the highest monthly record earns 5 points; matching
// the full length of the prior month earns the perfect-month badge worth 10
// more.
func MonthlyLeaderBonus(isHighestRecord, matchesFullMonthLength bool) int {
	if !isHighestRecord {
		return 0
	}
	bonus := 5
	if matchesFullMonthLength {
		bonus += 10
	}
	return bonus
}

// WeeklyPlacement returns the reward and placement tag for a member reaching
// the weekly target, given how many members finished before them.
func WeeklyPlacement(finishersAtTarget int) (int, string) {
	switch finishersAtTarget {
	case 0:
		return 4, humanize.Ordinal(1)
	case 1:
		return 3, humanize.Ordinal(2)
	case 2:
		return 2, humanize.Ordinal(3)
	default:
		return 1, PlacementAfterTop3
	}
}

// Penalty returns the score after one missed-day penalty, floored at zero.
func Penalty(score int) int {
	if score <= 0 {
		return 0
	}
	return score - 1
}

// TallyVotes counts one ballot per member's voted_for entry.
func TallyVotes(users map[models.UserID]*models.UserStatus) map[models.UserID]int {
	votes := make(map[models.UserID]int)
	for _, status := range users {
		if status.VotedFor != nil {
			votes[*status.VotedFor]++
		}
	}
	return votes
}

// VoteCount is one tally entry for display.
type VoteCount struct {
	User  models.UserID
	Votes int
}

// SortedVotes orders a tally by votes descending; equal counts fall back to
// user id ascending so the ordering is deterministic.
func SortedVotes(tally map[models.UserID]int) []VoteCount {
	counts := make([]VoteCount, 0, len(tally))
	for user, votes := range tally {
		counts = append(counts, VoteCount{User: user, Votes: votes})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Votes != counts[j].Votes {
			return counts[i].Votes > counts[j].Votes
		}
		return counts[i].User < counts[j].User
	})
	return counts
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return int(first.AddDate(0, 1, 0).Sub(first).Hours() / 24)
}

// DaysInPrevMonth returns the number of days in the month before t's.
func DaysInPrevMonth(t time.Time) int {
	return DaysInMonth(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}
