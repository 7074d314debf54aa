// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine_test

import (
	"errors"
	"testing"

	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/testutil"
)

func TestInitGuild(t *testing.T) {
	f := testutil.SeedEngine(t, "alice", "bob")

	g := f.Guild(t)
	if g.ChannelID == nil || *g.ChannelID != testutil.TestChannel {
		t.Errorf("InitGuild() channel = %v, want %s", g.ChannelID, testutil.TestChannel)
	}
	if !g.ActiveDaily || !g.ActiveWeekly {
		t.Error("InitGuild() should activate both axes")
	}
	if len(g.Users) != 2 {
		t.Errorf("InitGuild() users = %d, want 2", len(g.Users))
	}
	if g.ThreadID == nil {
		t.Error("InitGuild() should open the first daily thread")
	}

	// Help message lands in the default channel
	f.Client.AssertSent(t, testutil.TestChannel, "/help")
	// The daily thread opens with the format instructions
	f.Client.AssertSent(t, testutil.DailyThread(t, f.Client), "Share your solution")
}

func TestInitGuildIdempotent(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	before := len(f.Client.ThreadOrder)

	channel := testutil.TestChannel
	err := f.Engine.InitGuild(testutil.TestGuild, nil, &channel)
	if err != nil {
		t.Fatalf("InitGuild() error = %v", err)
	}
	if len(f.Client.ThreadOrder) != before {
		t.Error("InitGuild() on a known guild should not open new threads")
	}
	if len(f.Guild(t).Users) != 1 {
		t.Error("InitGuild() on a known guild should not touch members")
	}
}

func TestInitGuildNoChannel(t *testing.T) {
	f := testutil.NewEngine(t, make(models.Database))

	err := f.Engine.InitGuild(testutil.TestGuild, nil, nil)
	if !errors.Is(err, engine.ErrChannelMissing) {
		t.Errorf("InitGuild() error = %v, want %v", err, engine.ErrChannelMissing)
	}
	if f.Engine.HasGuild(testutil.TestGuild) {
		t.Error("InitGuild() without a channel should not create state")
	}
}

func TestUnknownGuild(t *testing.T) {
	f := testutil.NewEngine(t, make(models.Database))

	if err := f.Engine.Help("nope", "channel"); !errors.Is(err, engine.ErrUnknownGuild) {
		t.Errorf("Help() error = %v, want %v", err, engine.ErrUnknownGuild)
	}
	if err := f.Engine.SetChannel("nope", "channel", "channel"); !errors.Is(err, engine.ErrUnknownGuild) {
		t.Errorf("SetChannel() error = %v, want %v", err, engine.ErrUnknownGuild)
	}
}

func TestSetChannel(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")

	reply := models.ChannelRef("somewhere")
	next := models.ChannelRef("channel-2")
	if err := f.Engine.SetChannel(testutil.TestGuild, reply, next); err != nil {
		t.Fatalf("SetChannel() error = %v", err)
	}

	g := f.Guild(t)
	if g.ChannelID == nil || *g.ChannelID != next {
		t.Errorf("SetChannel() channel = %v, want %s", g.ChannelID, next)
	}
	f.Client.AssertSent(t, reply, "<#channel-2>")
}

func TestSyncMembers(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")

	f.Engine.SyncMembers(testutil.TestGuild, []models.Member{
		{ID: testutil.UserFor("alice"), Name: "Alice"},
		{ID: testutil.UserFor("carol"), Name: "Carol"},
	})

	g := f.Guild(t)
	if _, ok := g.Users[testutil.UserFor("carol")]; !ok {
		t.Error("SyncMembers() should create entries for new members")
	}
	if len(g.Users) != 2 {
		t.Errorf("SyncMembers() users = %d, want 2", len(g.Users))
	}
}

func TestScoresOnlyInKnownChannels(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	f.User(t, "alice").Score = 5

	if err := f.Engine.Scores(testutil.TestGuild, testutil.TestChannel); err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	f.Client.AssertSent(t, testutil.TestChannel, "The current leaderboard")

	elsewhere := models.ChannelRef("unrelated")
	if err := f.Engine.Scores(testutil.TestGuild, elsewhere); err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	f.Client.AssertNotSent(t, elsewhere, "The current leaderboard")
}

func TestActiveCommand(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	reply := models.ChannelRef("reply")

	if err := f.Engine.ActiveCommand(testutil.TestGuild, reply, nil); err != nil {
		t.Fatalf("ActiveCommand() error = %v", err)
	}
	f.Client.AssertSent(t, reply, "is active for both weekly and daily")

	if err := f.Engine.ActiveCommand(testutil.TestGuild, reply, []string{"weekly", "toggle"}); err != nil {
		t.Fatalf("ActiveCommand() error = %v", err)
	}
	if f.Guild(t).ActiveWeekly {
		t.Error("ActiveCommand() toggle should deactivate weekly")
	}
	f.Client.AssertSent(t, reply, "is now paused for weekly")

	if err := f.Engine.ActiveCommand(testutil.TestGuild, reply, []string{"bogus"}); err != nil {
		t.Fatalf("ActiveCommand() error = %v", err)
	}
	f.Client.AssertSent(t, reply, "Usage:")
}

func TestSetActiveDailyReopens(t *testing.T) {
	f := testutil.SeedEngine(t, "alice")
	g := f.Guild(t)

	if err := f.Engine.SetActive(testutil.TestGuild, models.AxisDaily, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	g.ThreadID = nil

	if err := f.Engine.SetActive(testutil.TestGuild, models.AxisDaily, true); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if !g.ActiveDaily {
		t.Error("SetActive() should activate daily")
	}
	if g.ThreadID == nil {
		t.Error("SetActive() daily with no thread should open the challenge")
	}
}

func TestGuildIDsSorted(t *testing.T) {
	db := models.Database{
		"charlie": models.NewGuildState(),
		"alpha":   models.NewGuildState(),
		"bravo":   models.NewGuildState(),
	}
	f := testutil.NewEngine(t, db)

	got := f.Engine.GuildIDs()
	want := []models.GuildID{"alpha", "bravo", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("GuildIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GuildIDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
