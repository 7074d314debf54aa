// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/store"
)

// TestGuild is the guild id used by the standard fixtures
const TestGuild = models.GuildID("guild-1")

// TestChannel is the default channel used by the standard fixtures
const TestChannel = models.ChannelRef("channel-1")

// FakeClient is an in-memory platform client. It records every outbound call
// so tests can assert on what was sent where.
type FakeClient struct {
	mu sync.Mutex

	// Sent holds every message content sent to each channel, in order.
	// Replies and edits are recorded here too.
	Sent map[models.ChannelRef][]string

	// Polls holds the refs of poll messages sent to each channel.
	Polls map[models.ChannelRef][]models.MessageRef

	// Pinned holds every pinned message ref.
	Pinned []models.MessageRef

	// Threads maps a parent message ref to the thread started from it.
	Threads map[models.MessageRef]models.ChannelRef

	// ThreadTitles maps a created thread to its title.
	ThreadTitles map[models.ChannelRef]string

	// ThreadOrder holds created threads in creation order.
	ThreadOrder []models.ChannelRef

	// Members holds the member list returned per guild.
	Members map[models.GuildID][]models.Member

	// Stale marks message refs that FetchMessage should report as gone.
	Stale map[models.MessageRef]bool

	// FailThreads makes CreateThreadFromMessage report failure.
	FailThreads bool
}

// NewFakeClient returns an empty fake client.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Sent:         make(map[models.ChannelRef][]string),
		Polls:        make(map[models.ChannelRef][]models.MessageRef),
		Threads:      make(map[models.MessageRef]models.ChannelRef),
		ThreadTitles: make(map[models.ChannelRef]string),
		Members:      make(map[models.GuildID][]models.Member),
		Stale:        make(map[models.MessageRef]bool),
	}
}

// NewRef returns a fresh unique message ref.
func NewRef() models.MessageRef {
	return models.MessageRef(uuid.NewString())
}

// Say records content against channel and returns a fresh ref.
func (f *FakeClient) Say(channel models.ChannelRef, content string) (models.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channel] = append(f.Sent[channel], content)
	return NewRef(), nil
}

// SendQuestion records content against channel and returns a fresh ref.
func (f *FakeClient) SendQuestion(channel models.ChannelRef, content string, q models.Question) (models.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channel] = append(f.Sent[channel], content)
	return NewRef(), nil
}

// SendPoll records content and the poll ref against channel.
func (f *FakeClient) SendPoll(channel models.ChannelRef, content string) (models.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channel] = append(f.Sent[channel], content)
	ref := NewRef()
	f.Polls[channel] = append(f.Polls[channel], ref)
	return ref, nil
}

// Reply records content against channel.
func (f *FakeClient) Reply(channel models.ChannelRef, ref models.MessageRef, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channel] = append(f.Sent[channel], content)
	return nil
}

// EditMessage records the replacement content against channel.
func (f *FakeClient) EditMessage(channel models.ChannelRef, ref models.MessageRef, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channel] = append(f.Sent[channel], content)
	return nil
}

// FetchMessage reports an error for refs marked stale.
func (f *FakeClient) FetchMessage(channel models.ChannelRef, ref models.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Stale[ref] {
		return errors.New("message not found")
	}
	return nil
}

// PinMessage records ref as pinned.
func (f *FakeClient) PinMessage(channel models.ChannelRef, ref models.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Pinned = append(f.Pinned, ref)
	return nil
}

// CreateThreadFromMessage returns a fresh thread ref, or ok == false when
// FailThreads is set.
func (f *FakeClient) CreateThreadFromMessage(channel models.ChannelRef, ref models.MessageRef, title string) (models.ChannelRef, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailThreads {
		return "", false
	}
	thread := models.ChannelRef("thread-" + uuid.NewString())
	f.Threads[ref] = thread
	f.ThreadTitles[thread] = title
	f.ThreadOrder = append(f.ThreadOrder, thread)
	return thread, true
}

// ListMembers returns the configured member list for guild.
func (f *FakeClient) ListMembers(guild models.GuildID) ([]models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Members[guild], nil
}

// MarkStale makes FetchMessage report ref as gone.
func (f *FakeClient) MarkStale(ref models.MessageRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Stale[ref] = true
}

// SentTo returns a copy of everything sent to channel so far.
func (f *FakeClient) SentTo(channel models.ChannelRef) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Sent[channel]...)
}

// AssertSent checks that some message sent to channel contains substr.
func (f *FakeClient) AssertSent(t *testing.T, channel models.ChannelRef, substr string) {
	t.Helper()
	for _, msg := range f.SentTo(channel) {
		if strings.Contains(msg, substr) {
			return
		}
	}
	t.Errorf("Expected a message to %s containing %q, got %v", channel, substr, f.SentTo(channel))
}

// AssertNotSent checks that no message sent to channel contains substr.
func (f *FakeClient) AssertNotSent(t *testing.T, channel models.ChannelRef, substr string) {
	t.Helper()
	for _, msg := range f.SentTo(channel) {
		if strings.Contains(msg, substr) {
			t.Errorf("Expected no message to %s containing %q, got %q", channel, substr, msg)
		}
	}
}

// FakeCatalog is an in-memory question catalog returning fixed questions.
type FakeCatalog struct {
	Daily  models.Question
	Random models.Question
	Err    error
}

// NewFakeCatalog returns a catalog serving the standard test question.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{Daily: TestQuestion(), Random: TestQuestion()}
}

// FetchDailyQuestion returns the configured daily question.
func (f *FakeCatalog) FetchDailyQuestion() (models.Question, error) {
	return f.Daily, f.Err
}

// FetchRandomQuestion returns the configured random question.
func (f *FakeCatalog) FetchRandomQuestion(filters []string) (models.Question, error) {
	return f.Random, f.Err
}

// TestQuestion returns a fixed question fixture.
func TestQuestion() models.Question {
	return models.Question{
		FrontendID:     "1",
		Title:          "Two Sum",
		TitleSlug:      "two-sum",
		Difficulty:     models.DifficultyEasy,
		AcceptanceRate: 52.3,
		URL:            "https://leetcode.com/problems/two-sum",
	}
}

// NewStore returns a store backed by a file in a per-test temp directory.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "database.json"))
}

// Fixture bundles an engine with its fakes. The engine shares DB, so tests
// can inspect guild state directly after an operation returns.
type Fixture struct {
	Engine  *engine.Engine
	Client  *FakeClient
	Catalog *FakeCatalog
	DB      models.Database
}

// NewEngine returns a fixture over db with fresh fakes and a temp store.
func NewEngine(t *testing.T, db models.Database) *Fixture {
	t.Helper()
	f := &Fixture{
		Client:  NewFakeClient(),
		Catalog: NewFakeCatalog(),
		DB:      db,
	}
	f.Engine = engine.New(db, NewStore(t), f.Client, f.Catalog)
	return f
}

// UserFor returns the user id SeedEngine assigns to name.
func UserFor(name string) models.UserID {
	return models.UserID("id-" + name)
}

// SeedEngine returns a fixture with TestGuild initialised for the named
// members. InitGuild posts the help message and opens the first daily
// challenge against the fakes.
func SeedEngine(t *testing.T, names ...string) *Fixture {
	t.Helper()
	f := NewEngine(t, make(models.Database))
	members := make([]models.Member, 0, len(names))
	for _, name := range names {
		members = append(members, models.Member{ID: UserFor(name), Name: name})
	}
	channel := TestChannel
	if err := f.Engine.InitGuild(TestGuild, members, &channel); err != nil {
		t.Fatalf("Failed to initialise test guild: %v", err)
	}
	return f
}

// Guild returns the standard fixture guild's state.
func (f *Fixture) Guild(t *testing.T) *models.GuildState {
	t.Helper()
	g, ok := f.DB[TestGuild]
	if !ok {
		t.Fatalf("Expected guild %s to exist", TestGuild)
	}
	return g
}

// User returns name's status in the standard fixture guild.
func (f *Fixture) User(t *testing.T, name string) *models.UserStatus {
	t.Helper()
	status, ok := f.Guild(t).Users[UserFor(name)]
	if !ok {
		t.Fatalf("Expected user %s to exist", name)
	}
	return status
}

// dailyTitle matches the DD/MM/YYYY titles daily threads carry.
var dailyTitle = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// DailyThread returns the most recently created daily thread.
func DailyThread(t *testing.T, client *FakeClient) models.ChannelRef {
	t.Helper()
	thread := findThread(client, func(title string) bool { return dailyTitle.MatchString(title) })
	if thread == "" {
		t.Fatalf("Expected a daily thread to exist")
	}
	return thread
}

// WeeklyThread returns the most recently created weekly contest thread.
func WeeklyThread(t *testing.T, client *FakeClient) models.ChannelRef {
	t.Helper()
	thread := findThread(client, func(title string) bool { return strings.HasPrefix(title, "Week ") })
	if thread == "" {
		t.Fatalf("Expected a weekly thread to exist")
	}
	return thread
}

func findThread(client *FakeClient, match func(string) bool) models.ChannelRef {
	client.mu.Lock()
	defer client.mu.Unlock()
	for i := len(client.ThreadOrder) - 1; i >= 0; i-- {
		thread := client.ThreadOrder[i]
		if match(client.ThreadTitles[thread]) {
			return thread
		}
	}
	return ""
}
