// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package messages

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/scoring"
)

// Fixed texts
const (
	NoScores         = "No one has any points yet"
	PollError        = "Poll message is not in this channel"
	VoteViaPoll      = "You can vote via this poll"
	ContestCompleted = "You have already completed the contest"
	DMReply          = "Please don't slide into my dm 😜"
	InvalidChannel   = "Invalid channel ID"
	NoVotes          = "No one voted 😞"
	NoParticipants   = "No one participated in the contest 😩"
	EveryoneFinished = "Everyone has finished today's challenge, let's Grow Together!"
	SelfVote         = "Cannot vote for yourself"
	VoteNoSubmission = "Cannot vote for someone who hasn't completed the challenge"
	VoteNotInGuild   = "Cannot vote for someone who is not participating in the challenge"
	OneHourReminder  = "An hour left to make your submission for today's question if you haven't already\n"
	ActiveUsage      = "Usage:```/active [weekly|daily] [toggle]```"
	ChannelUsage     = "Usage:```/channel channel_id```"
	PollSelectPrompt = "Choose your favourite submission"
	PollPlaceholder  = "No submission selected"
	problemsetURL    = "https://leetcode.com/problemset"
	contestURL       = "https://leetcode.com/contest/"
)

// UserMention renders a user mention.
func UserMention(id models.UserID) string {
	return "<@" + string(id) + ">"
}

// ChannelMention renders a channel or thread mention.
func ChannelMention(id models.ChannelRef) string {
	return "<#" + string(id) + ">"
}

// NamedLink renders a markdown link.
func NamedLink(text, url string) string {
	return "[" + text + "](" + url + ")"
}

// bold wraps s in markdown bold markers.
func bold(s string) string {
	return "**" + s + "**"
}

// DailyAnnouncement is the default-channel notice for a new daily question.
func DailyAnnouncement() string {
	return "Today's " + NamedLink("LeetCode", problemsetURL) + " Daily question is out @everyone"
}

// RandomAnnouncement is the notice attached to a random question card.
func RandomAnnouncement() string {
	return "Here's a random " + NamedLink("LeetCode", problemsetURL) + " question"
}

// WeeklyOpen is the default-channel notice for a starting contest.
func WeeklyOpen() string {
	return NamedLink("Weekly Contest", contestURL) +
		" starting now! The first 3 people to finish all 4 questions will get bonus points @everyone"
}

// FormatTemplate is the spoiler-wrapped code fence members copy to share
// solutions without revealing them.
func FormatTemplate() string {
	return "``||```language\ncode\n```||``"
}

// Leaderboard renders the ranked listing, or the fixed no-scores notice when
// no member has a positive score.
func Leaderboard(entries []scoring.Entry) string {
	var b strings.Builder
	b.WriteString("The current leaderboard:\n")
	if len(entries) == 0 {
		b.WriteString(NoScores)
		return b.String()
	}
	for place, entry := range entries {
		fmt.Fprintf(&b, "%d. %s\n", place+1, entry.Name)
		fmt.Fprintf(&b, "\t%s %s", bold(fmt.Sprint(entry.Score)), english.PluralWord(entry.Score, "point", ""))
		fmt.Fprintf(&b, "\t%s %s completed this month\n",
			bold(fmt.Sprint(entry.MonthlyRecord)), english.PluralWord(int(entry.MonthlyRecord), "question", ""))
	}
	return b.String()
}

// ThreadIntro opens a fresh daily or weekly thread: intro line, the format
// template, then the current leaderboard.
func ThreadIntro(intro string, entries []scoring.Entry) string {
	var b strings.Builder
	if intro != "" {
		b.WriteString(intro)
		b.WriteString("\n")
	}
	b.WriteString("Share your solution in the format below to earn points\n")
	b.WriteString(FormatTemplate())
	b.WriteString("\n\n")
	b.WriteString(Leaderboard(entries))
	return b.String()
}

// Congrats renders the reward notice for a completed submission.
func Congrats(user models.UserID, deed string, reward int) string {
	return "Congrats to " + UserMention(user) + " for " + deed +
		" You have been rewarded " + bold(fmt.Sprint(reward)) + " " + english.PluralWord(reward, "point", "")
}

// ScoreSummary renders the member's running totals after a reward.
func ScoreSummary(score int, monthlyRecord uint32) string {
	return "\nYour current score is " + bold(fmt.Sprint(score)) +
		". This month you have completed " + bold(fmt.Sprint(monthlyRecord)) +
		" " + english.PluralWord(int(monthlyRecord), "question", "")
}

// BadgeLine renders the perfect-month badge notice for month's challenge.
func BadgeLine(prefix string, month time.Month) string {
	return fmt.Sprintf("%s for earning the %s Daily Challenge badge!", prefix, month)
}

// MonthlyWinners renders the month-rollover bonus announcement for every
// member tied at the highest record.
func MonthlyWinners(winners []models.UserID, record uint32, perfect bool, prevMonth time.Month) string {
	var b strings.Builder
	b.WriteString("Welcome to a new month! Last month ")
	for _, winner := range winners {
		b.WriteString(UserMention(winner))
	}
	fmt.Fprintf(&b, " completed %s questions which is the highest in this server!", bold(fmt.Sprint(record)))
	b.WriteString(" You have been rewarded " + bold("5") + " points")
	if perfect {
		b.WriteString(BadgeLine(", and another 10 points", prevMonth))
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// RolloverSummary renders the yesterday-in-review section of the daily
// rollover: penalties, then received votes in tally order.
func RolloverSummary(penalties int, votes []scoring.VoteCount, resolve func(models.UserID) string) string {
	var b strings.Builder
	b.WriteString("Yesterday ")
	if penalties > 0 {
		fmt.Fprintf(&b, "%d %s did not complete the challenge 😭 each lost 1 point as a penalty\n",
			penalties, english.PluralWord(penalties, "person", "people"))
	} else {
		b.WriteString("everyone completed the challenge! Awesome job to start a new day!\n")
	}
	b.WriteString("\nThe number of votes received:\n")
	if len(votes) == 0 {
		b.WriteString(NoVotes + "\n")
		return b.String()
	}
	for place, vote := range votes {
		fmt.Fprintf(&b, "%d. %s: %s\n", place+1, resolve(vote.User), bold(fmt.Sprint(vote.Votes)))
	}
	return b.String()
}

// SubmissionList renders the poll body: every member who has submitted today,
// with a link to their solution, in a deterministic order.
func SubmissionList(users map[models.UserID]*models.UserStatus) string {
	ids := make([]models.UserID, 0, len(users))
	for id, status := range users {
		if status.Submitted != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString(PollSelectPrompt + "\n")
	for _, id := range ids {
		b.WriteString(UserMention(id))
		b.WriteString(*users[id].Submitted)
		b.WriteString("\n")
	}
	return b.String()
}

// WeeklyRow is one finisher in the contest results.
type WeeklyRow struct {
	User        models.UserID
	Submissions int
}

// WeeklyResults renders the contest-close announcement, participants ranked
// by questions finished.
func WeeklyResults(rows []WeeklyRow, resolve func(models.UserID) string) string {
	var b strings.Builder
	b.WriteString("Weekly contest just ended, the results are:\n")
	if len(rows) == 0 {
		b.WriteString(NoParticipants + "\n")
		return b.String()
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Submissions > rows[j].Submissions })
	for place, row := range rows {
		fmt.Fprintf(&b, "%d. %s completed %s %s\n", place+1, resolve(row.User),
			bold(fmt.Sprint(row.Submissions)), english.PluralWord(row.Submissions, "question", ""))
	}
	return b.String()
}

// VoteAck renders the ephemeral acknowledgement for a recorded vote.
func VoteAck(voteeName string) string {
	return "Successfully voted for " + voteeName
}

// ChannelInfo describes the bot's default channel and today's thread.
func ChannelInfo(bot models.UserID, channel models.ChannelRef, thread *models.ChannelRef) string {
	var b strings.Builder
	b.WriteString("The default channel for " + UserMention(bot) + " is " + ChannelMention(channel))
	b.WriteString("\nYou can change it by using the following command```/channel channel_id```")
	if thread != nil {
		b.WriteString("Today's thread is " + ChannelMention(*thread))
	} else {
		b.WriteString("Daily is not active")
	}
	return b.String()
}

// ChannelSet confirms a new default channel.
func ChannelSet(channel models.ChannelRef) string {
	return "Successfully set channel to be " + ChannelMention(channel)
}

// ActiveStatus reports which axes are currently active.
func ActiveStatus(bot models.UserID, daily, weekly bool) string {
	var state string
	switch {
	case daily && weekly:
		state = " is active for both weekly and daily"
	case weekly:
		state = " is only active for weekly"
	case daily:
		state = " is only active for daily"
	default:
		state = " is not active"
	}
	return UserMention(bot) + state
}

// ActiveAxis reports one axis, optionally after a toggle.
func ActiveAxis(bot models.UserID, axis string, active, toggled bool) string {
	now := ""
	if toggled {
		now = "now "
	}
	state := "paused"
	if active {
		state = "active"
	}
	return fmt.Sprintf("%s is %s%s for %s", UserMention(bot), now, state, axis)
}

// Help renders the full help message.
func Help(bot models.UserID, channel models.ChannelRef, thread *models.ChannelRef) string {
	var b strings.Builder
	b.WriteString("Hi I'm LeetCode Daily, here to motivate you to do ")
	b.WriteString(NamedLink("LeetCode", problemsetURL))
	b.WriteString(" questions every single day 🤓\n\n")
	b.WriteString("I operate on a default channel and I create a thread in that channel when a new daily question comes out\n")
	b.WriteString(ChannelInfo(bot, channel, thread))
	b.WriteString("\n\nSome other commands you can run are\n")
	b.WriteString("* `/help`: Shows this help message\n")
	b.WriteString("* `/random [free | paid | easy | medium | hard] ...`: Send a random question with optional fields to filter by difficulty or whether it is subscription only, if not run in a thread it will create a thread for it\n")
	b.WriteString("* `/scores`: Shows the current leaderboard\n")
	b.WriteString("* `/poll`: Start a poll for today's submissions or reply to an existing one if it has already started, has to be run in the current daily thread\n")
	b.WriteString("* `/active [weekly|daily] [toggle]`: Check whether some features of the bot are currently active or toggle them on and off\n")
	b.WriteString("\nTo share your code you have to put it in a spoiler tag and wrap it with ```code``` so others can't immediately see your solution. ")
	b.WriteString("You can start from the template below and replace the language and code with your own. If you didn't follow the format strictly simply send it again\n")
	b.WriteString(FormatTemplate())
	return b.String()
}

// WrongChannelSubmission redirects code sent to the default channel.
func WrongChannelSubmission(daily bool, thread, weekly *models.ChannelRef) string {
	var b strings.Builder
	b.WriteString("Please send your ")
	if daily && thread != nil {
		b.WriteString("code in today's daily thread " + ChannelMention(*thread))
		if weekly != nil {
			b.WriteString("or this week's weekly thread " + ChannelMention(*weekly))
		}
	} else if weekly != nil {
		b.WriteString("code in this week's weekly thread " + ChannelMention(*weekly))
	}
	return b.String()
}

// WrongChannelPoll redirects /poll sent to the default channel.
func WrongChannelPoll(thread models.ChannelRef) string {
	return "Please send your command in today's " + ChannelMention(thread)
}
