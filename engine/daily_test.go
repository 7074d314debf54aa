// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/testutil"
)

// Fixed instants inside an ordinary month (no rollover edge)
var (
	earlyMorning = time.Date(2026, time.August, 20, 0, 30, 0, 0, time.UTC)
	midday       = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	lateEvening  = time.Date(2026, time.August, 20, 22, 30, 0, 0, time.UTC)
	nextMidnight = time.Date(2026, time.August, 21, 0, 1, 0, 0, time.UTC)
)

const link = "https://discord.com/channels/1/2/3"

func TestDailySubmission(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob")
	thread := testutil.DailyThread(t, f.Client)
	alice := testutil.UserFor("alice")

	err := f.Engine.Submission(testutil.TestGuild, alice, thread, link, earlyMorning)
	if err != nil {
		t.Fatalf("Submission() error = %v", err)
	}

	status := f.User(t, "alice")
	if status.Score != 5 {
		t.Errorf("Submission() score = %d, want 5 for an early submission", status.Score)
	}
	if status.MonthlyRecord != 1 {
		t.Errorf("Submission() monthly record = %d, want 1", status.MonthlyRecord)
	}
	if status.Submitted == nil || *status.Submitted != link {
		t.Errorf("Submission() submitted = %v, want %s", status.Submitted, link)
	}
	if f.Guild(t).PollID == nil {
		t.Error("Submission() should open the poll")
	}
	f.Client.AssertSent(t, thread, "Congrats to <@id-alice>")
	f.Client.AssertSent(t, thread, "**5** points")
}

func TestDailySubmissionRewards(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"early morning", earlyMorning, 5},
		{"midday", midday, 2},
		{"late evening", lateEvening, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.SeedEngine(t, "alice")
			thread := testutil.DailyThread(t, f.Client)

			err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("alice"), thread, link, tt.now)
			if err != nil {
				t.Fatalf("Submission() error = %v", err)
			}
			if got := f.User(t, "alice").Score; got != tt.want {
				t.Errorf("Submission() score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailySubmissionTwice(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	thread := testutil.DailyThread(t, f.Client)
	alice := testutil.UserFor("alice")

	if err := f.Engine.Submission(testutil.TestGuild, alice, thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	err := f.Engine.Submission(testutil.TestGuild, alice, thread, "other", midday)
	if !errors.Is(err, engine.ErrAlreadySubmitted) {
		t.Errorf("Submission() error = %v, want %v", err, engine.ErrAlreadySubmitted)
	}

	status := f.User(t, "alice")
	if status.Score != 2 || status.MonthlyRecord != 1 {
		t.Errorf("Second submission changed state: score %d, record %d", status.Score, status.MonthlyRecord)
	}
	if *status.Submitted != link {
		t.Errorf("Second submission replaced the link: %s", *status.Submitted)
	}
}

func TestDailySubmissionStreakBonus(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	f.User(t, "alice").DaysMissed = 9
	thread := testutil.DailyThread(t, f.Client)

	err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("alice"), thread, link, midday)
	if err != nil {
		t.Fatalf("Submission() error = %v", err)
	}

	status := f.User(t, "alice")
	if status.Score != 7 {
		t.Errorf("Submission() score = %d, want 2 + 5 welcome-back bonus", status.Score)
	}
	if status.DaysMissed != 0 {
		t.Errorf("Submission() days missed = %d, want 0", status.DaysMissed)
	}
}

func TestDailySubmissionEveryoneFinished(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob")
	thread := testutil.DailyThread(t, f.Client)

	if err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("alice"), thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	f.Client.AssertNotSent(t, thread, "Everyone has finished")

	if err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("bob"), thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	f.Client.AssertSent(t, thread, "Everyone has finished today's challenge")
}

func TestSubmissionInDefaultChannel(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")

	err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("alice"), testutil.TestChannel, link, midday)
	if err != nil {
		t.Fatalf("Submission() error = %v", err)
	}

	if f.User(t, "alice").Score != 0 {
		t.Error("Submission() in the default channel should not score")
	}
	f.Client.AssertSent(t, testutil.TestChannel, "Please send your")
}

func TestVote(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob", "carol")
	thread := testutil.DailyThread(t, f.Client)
	alice, bob, carol := testutil.UserFor("alice"), testutil.UserFor("bob"), testutil.UserFor("carol")

	if err := f.Engine.Submission(testutil.TestGuild, alice, thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	poll := *f.Guild(t).PollID

	name, err := f.Engine.Vote(testutil.TestGuild, bob, alice, poll)
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if name != "alice" {
		t.Errorf("Vote() name = %q, want alice", name)
	}
	status := f.User(t, "bob")
	if status.VotedFor == nil || *status.VotedFor != alice {
		t.Errorf("Vote() voted_for = %v, want %s", status.VotedFor, alice)
	}

	tests := []struct {
		name    string
		voter   models.UserID
		target  models.UserID
		poll    models.MessageRef
		wantErr error
	}{
		{"self vote", alice, alice, poll, engine.ErrSelfVote},
		{"target not in guild", bob, "id-mallory", poll, engine.ErrNotParticipating},
		{"target has not submitted", bob, carol, poll, engine.ErrInvalidTarget},
		{"stale poll ref", bob, alice, "old-poll", engine.ErrPollMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Engine.Vote(testutil.TestGuild, tt.voter, tt.target, tt.poll); !errors.Is(err, tt.wantErr) {
				t.Errorf("Vote() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVoteOverwrites(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob", "carol")
	thread := testutil.DailyThread(t, f.Client)
	alice, bob, carol := testutil.UserFor("alice"), testutil.UserFor("bob"), testutil.UserFor("carol")

	if err := f.Engine.Submission(testutil.TestGuild, alice, thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	if err := f.Engine.Submission(testutil.TestGuild, bob, thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	poll := *f.Guild(t).PollID

	if _, err := f.Engine.Vote(testutil.TestGuild, carol, alice, poll); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if _, err := f.Engine.Vote(testutil.TestGuild, carol, bob, poll); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}

	if got := *f.User(t, "carol").VotedFor; got != bob {
		t.Errorf("Vote() voted_for = %s, want the second ballot %s", got, bob)
	}
}

func TestRolloverDaily(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob", "carol")
	thread := testutil.DailyThread(t, f.Client)
	alice, bob, carol := testutil.UserFor("alice"), testutil.UserFor("bob"), testutil.UserFor("carol")

	if err := f.Engine.Submission(testutil.TestGuild, alice, thread, link, earlyMorning); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	if err := f.Engine.Submission(testutil.TestGuild, bob, thread, link, midday); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	poll := *f.Guild(t).PollID
	if _, err := f.Engine.Vote(testutil.TestGuild, bob, alice, poll); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if _, err := f.Engine.Vote(testutil.TestGuild, carol, alice, poll); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}

	if err := f.Engine.RolloverDaily(testutil.TestGuild, nextMidnight); err != nil {
		t.Fatalf("RolloverDaily() error = %v", err)
	}

	// alice: 5 for the submission plus 2 received votes
	if got := f.User(t, "alice").Score; got != 7 {
		t.Errorf("RolloverDaily() alice score = %d, want 7", got)
	}
	// carol: missed the day, no points to lose
	carolStatus := f.User(t, "carol")
	if carolStatus.Score != 0 {
		t.Errorf("RolloverDaily() carol score = %d, want 0", carolStatus.Score)
	}
	if carolStatus.DaysMissed != 1 {
		t.Errorf("RolloverDaily() carol days missed = %d, want 1", carolStatus.DaysMissed)
	}
	// bob: midday reward kept, ballot cleared
	bobStatus := f.User(t, "bob")
	if bobStatus.Score != 2 {
		t.Errorf("RolloverDaily() bob score = %d, want 2", bobStatus.Score)
	}
	if bobStatus.VotedFor != nil || bobStatus.Submitted != nil {
		t.Error("RolloverDaily() should clear ballots and submissions")
	}

	g := f.Guild(t)
	if g.PollID != nil {
		t.Error("RolloverDaily() should drop the poll ref")
	}
	if g.ThreadID == nil || *g.ThreadID == thread {
		t.Error("RolloverDaily() should open a fresh daily thread")
	}

	// The new thread opens with yesterday's review
	next := testutil.DailyThread(t, f.Client)
	f.Client.AssertSent(t, next, "1 person did not complete the challenge")
	f.Client.AssertSent(t, next, "1. alice: **2**")
}

func TestRolloverPenaltyFloor(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob")
	f.User(t, "alice").Score = 3

	if err := f.Engine.RolloverDaily(testutil.TestGuild, nextMidnight); err != nil {
		t.Fatalf("RolloverDaily() error = %v", err)
	}

	if got := f.User(t, "alice").Score; got != 2 {
		t.Errorf("RolloverDaily() alice score = %d, want 2 after penalty", got)
	}
	if got := f.User(t, "bob").Score; got != 0 {
		t.Errorf("RolloverDaily() bob score = %d, want floor at 0", got)
	}
}

func TestRolloverInactiveDaily(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	g := f.Guild(t)
	if err := f.Engine.SetActive(testutil.TestGuild, models.AxisDaily, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	before := len(f.Client.ThreadOrder)

	if err := f.Engine.RolloverDaily(testutil.TestGuild, nextMidnight); err != nil {
		t.Fatalf("RolloverDaily() error = %v", err)
	}

	if g.ThreadID != nil || g.PollID != nil {
		t.Error("RolloverDaily() should drop stale refs even when daily is paused")
	}
	if f.User(t, "alice").DaysMissed != 0 {
		t.Error("RolloverDaily() should not penalize while daily is paused")
	}
	if len(f.Client.ThreadOrder) != before {
		t.Error("RolloverDaily() should not open a thread while daily is paused")
	}
}

func TestRolloverMonthlyBonus(t *testing.T) {
	newMonth := time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC)

	f := testutil.SeedEngine(t, "alice", "bob")
	submitted := link
	alice := f.User(t, "alice")
	alice.MonthlyRecord = 20
	alice.Score = 10
	alice.Submitted = &submitted
	bob := f.User(t, "bob")
	bob.MonthlyRecord = 10
	bob.Score = 10
	bob.Submitted = &submitted

	if err := f.Engine.RolloverDaily(testutil.TestGuild, newMonth); err != nil {
		t.Fatalf("RolloverDaily() error = %v", err)
	}

	if alice.Score != 15 {
		t.Errorf("RolloverDaily() alice score = %d, want 10 + 5 leader bonus", alice.Score)
	}
	if bob.Score != 10 {
		t.Errorf("RolloverDaily() bob score = %d, want unchanged 10", bob.Score)
	}
	if alice.MonthlyRecord != 0 || bob.MonthlyRecord != 0 {
		t.Error("RolloverDaily() should reset monthly records on a new month")
	}

	next := testutil.DailyThread(t, f.Client)
	f.Client.AssertSent(t, next, "Welcome to a new month")
	f.Client.AssertSent(t, next, "<@id-alice>")
}

func TestRolloverPerfectMonth(t *testing.T) {
	newMonth := time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC)

	f := testutil.SeedEngine(t, "alice")
	submitted := link
	alice := f.User(t, "alice")
	alice.MonthlyRecord = 31 // August has 31 days
	alice.Score = 10
	alice.Submitted = &submitted

	if err := f.Engine.RolloverDaily(testutil.TestGuild, newMonth); err != nil {
		t.Fatalf("RolloverDaily() error = %v", err)
	}

	if alice.Score != 25 {
		t.Errorf("RolloverDaily() alice score = %d, want 10 + 15 perfect-month bonus", alice.Score)
	}
	next := testutil.DailyThread(t, f.Client)
	f.Client.AssertSent(t, next, "August Daily Challenge badge")
}

func TestOpenDailyThreadCreationFails(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	f.Client.FailThreads = true

	err := f.Engine.OpenDailyChallenge(testutil.TestGuild, midday)
	if !errors.Is(err, engine.ErrThreadCreationFailed) {
		t.Errorf("OpenDailyChallenge() error = %v, want %v", err, engine.ErrThreadCreationFailed)
	}
	if f.Guild(t).ThreadID != nil {
		t.Error("OpenDailyChallenge() should record no thread on failure")
	}
}

func TestRemindAll(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")

	f.Engine.RemindAll()

	thread := testutil.DailyThread(t, f.Client)
	f.Client.AssertSent(t, thread, "An hour left to make your submission")
	if f.Guild(t).PollID == nil {
		t.Error("RemindAll() should make sure the poll exists")
	}
}

func TestPerfectMonthBadgeAtSubmission(t *testing.T) {
	// Submitting on the last day of the month with a full record earns the
	// badge notice immediately
	lastDay := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	f := testutil.SeedEngine(t, "alice")
	f.User(t, "alice").MonthlyRecord = 30
	thread := testutil.DailyThread(t, f.Client)

	if err := f.Engine.Submission(testutil.TestGuild, testutil.UserFor("alice"), thread, link, lastDay); err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	f.Client.AssertSent(t, thread, "August Daily Challenge badge")
}
