// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/platform"
	"github.com/growtogether/leetcode-daily/scoring"
	"github.com/growtogether/leetcode-daily/store"
)

// Engine owns all guild state. Every exported operation serializes through
// one mutex, applies its mutations, writes the full snapshot through to the
// store, and only then flushes queued best-effort messages outside the
// critical section. Platform calls whose ids must be recorded (threads,
// polls) run while the lock is held; their failure never rolls back
// already-applied mutations.
type Engine struct {
	mu      sync.Mutex
	guilds  models.Database
	members map[models.GuildID]map[models.UserID]string
	pending []outbound

	bot      models.UserID
	store    *store.Store
	platform platform.Client
	catalog  platform.Catalog
}

type outbound struct {
	channel models.ChannelRef
	content string
}

// New returns an engine over a previously loaded database.
func New(db models.Database, st *store.Store, client platform.Client, catalog platform.Catalog) *Engine {
	return &Engine{
		guilds:   db,
		members:  make(map[models.GuildID]map[models.UserID]string),
		store:    st,
		platform: client,
		catalog:  catalog,
	}
}

// SetBot records the bot's own user id, used in help and status messages.
func (e *Engine) SetBot(id models.UserID) {
	e.mu.Lock()
	e.bot = id
	e.mu.Unlock()
}

// finish completes an operation started with e.mu held: write-through save,
// release the lock, then flush queued sends. A failed save is logged and the
// in-memory state stays authoritative until the next successful write.
func (e *Engine) finish() {
	if err := e.store.Save(e.guilds); err != nil {
		slog.Error("failed to save database", "error", err)
	}
	out := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, msg := range out {
		if _, err := e.platform.Say(msg.channel, msg.content); err != nil {
			slog.Error("failed to send message", "channel", msg.channel, "error", err)
		}
	}
}

// queue defers a best-effort send until after the lock is released.
func (e *Engine) queue(channel models.ChannelRef, content string) {
	e.pending = append(e.pending, outbound{channel: channel, content: content})
}

func (e *Engine) guildLocked(id models.GuildID) (*models.GuildState, error) {
	g, ok := e.guilds[id]
	if !ok {
		return nil, ErrUnknownGuild
	}
	return g, nil
}

// resolveLocked returns a display-name resolver backed by the member cache.
// Unknown ids fall back to the raw id.
func (e *Engine) resolveLocked(guild models.GuildID) func(models.UserID) string {
	names := e.members[guild]
	return func(id models.UserID) string {
		if name, ok := names[id]; ok {
			return name
		}
		return string(id)
	}
}

// rankLocked builds the guild leaderboard.
func (e *Engine) rankLocked(guild models.GuildID, g *models.GuildState) []scoring.Entry {
	return scoring.Rank(g.Users, e.resolveLocked(guild))
}

// HasGuild reports whether the guild has been initialised.
func (e *Engine) HasGuild(id models.GuildID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.guilds[id]
	return ok
}

// GuildIDs returns every known guild id in a deterministic order.
func (e *Engine) GuildIDs() []models.GuildID {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]models.GuildID, 0, len(e.guilds))
	for id := range e.guilds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// InitGuild creates state for a guild on first sight, seeded with the
// current non-bot members at score zero and both axes active, then posts the
// help message and opens the first daily challenge. Seeing a known guild is
// a no-op.
func (e *Engine) InitGuild(id models.GuildID, members []models.Member, channel *models.ChannelRef) error {
	e.mu.Lock()
	if _, ok := e.guilds[id]; ok {
		e.mu.Unlock()
		return nil
	}
	if channel == nil {
		e.mu.Unlock()
		return ErrChannelMissing
	}

	g := models.NewGuildState()
	g.ChannelID = channel
	names := make(map[models.UserID]string, len(members))
	for _, member := range members {
		g.Users[member.ID] = &models.UserStatus{}
		names[member.ID] = member.Name
	}
	e.guilds[id] = g
	e.members[id] = names
	slog.Info("guild initialised", "guild_id", id, "members", len(members))

	e.queue(*channel, messages.Help(e.bot, *channel, g.ThreadID))
	err := e.openDailyLocked(id, g, nowUTC(), "")
	e.finish()
	if err != nil {
		return err
	}
	return e.Random(*channel, nil)
}

// SyncMembers refreshes the display-name cache and lazily creates status
// entries for members not seen before. Bots are excluded by the platform
// client before this point.
func (e *Engine) SyncMembers(id models.GuildID, members []models.Member) {
	e.mu.Lock()
	names := make(map[models.UserID]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}
	e.members[id] = names
	if g, ok := e.guilds[id]; ok {
		for _, member := range members {
			g.User(member.ID)
		}
	}
	e.finish()
}

// SetChannel updates the guild's default channel and confirms in reply.
func (e *Engine) SetChannel(id models.GuildID, reply, channel models.ChannelRef) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		g.ChannelID = &channel
		e.queue(reply, messages.ChannelSet(channel))
	}
	e.finish()
	return err
}

// DescribeChannel replies with the current default channel, or with usage
// when asked from within the default channel itself.
func (e *Engine) DescribeChannel(id models.GuildID, reply models.ChannelRef) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		switch {
		case g.ChannelID == nil:
			err = ErrChannelMissing
		case reply != *g.ChannelID:
			e.queue(reply, messages.ChannelInfo(e.bot, *g.ChannelID, g.ThreadID))
		default:
			e.queue(reply, messages.ChannelUsage)
		}
	}
	e.finish()
	return err
}

// Help replies with the full help message.
func (e *Engine) Help(id models.GuildID, reply models.ChannelRef) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		if g.ChannelID == nil {
			err = ErrChannelMissing
		} else {
			e.queue(reply, messages.Help(e.bot, *g.ChannelID, g.ThreadID))
		}
	}
	e.finish()
	return err
}

// Scores replies with the leaderboard, but only when asked from the default
// channel, the daily thread or the weekly thread.
func (e *Engine) Scores(id models.GuildID, reply models.ChannelRef) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil && channelIsKnown(g, reply) {
		e.queue(reply, messages.Leaderboard(e.rankLocked(id, g)))
	}
	e.finish()
	return err
}

func channelIsKnown(g *models.GuildState, channel models.ChannelRef) bool {
	if g.ChannelID != nil && channel == *g.ChannelID {
		return true
	}
	if g.ThreadID != nil && channel == *g.ThreadID {
		return true
	}
	return g.WeeklyID != nil && channel == *g.WeeklyID
}

// ActiveCommand serves /active: report both axes, report one axis, or toggle
// one axis. Toggling daily on while no thread exists immediately opens the
// day's challenge.
func (e *Engine) ActiveCommand(id models.GuildID, reply models.ChannelRef, args []string) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err != nil {
		e.finish()
		return err
	}

	switch {
	case len(args) == 0:
		e.queue(reply, messages.ActiveStatus(e.bot, g.ActiveDaily, g.ActiveWeekly))
	case len(args) == 1 && validAxis(args[0]):
		e.queue(reply, messages.ActiveAxis(e.bot, args[0], axisValue(g, args[0]), false))
	case len(args) == 2 && validAxis(args[0]) && args[1] == "toggle":
		value := !axisValue(g, args[0])
		err = e.setActiveLocked(id, g, args[0], value)
		e.queue(reply, messages.ActiveAxis(e.bot, args[0], value, true))
	default:
		e.queue(reply, messages.ActiveUsage)
	}
	e.finish()
	return err
}

// SetActive sets one feature axis. Activating daily with no open thread
// triggers an immediate daily open.
func (e *Engine) SetActive(id models.GuildID, axis string, value bool) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err == nil {
		err = e.setActiveLocked(id, g, axis, value)
	}
	e.finish()
	return err
}

func (e *Engine) setActiveLocked(id models.GuildID, g *models.GuildState, axis string, value bool) error {
	if axis == models.AxisWeekly {
		g.ActiveWeekly = value
		return nil
	}
	g.ActiveDaily = value
	if value && g.ThreadID == nil {
		return e.openDailyLocked(id, g, nowUTC(), "")
	}
	return nil
}

func validAxis(axis string) bool {
	return axis == models.AxisDaily || axis == models.AxisWeekly
}

func axisValue(g *models.GuildState, axis string) bool {
	if axis == models.AxisWeekly {
		return g.ActiveWeekly
	}
	return g.ActiveDaily
}

// Random posts a random catalog question to channel and starts a thread for
// it. No guild state is touched.
func (e *Engine) Random(channel models.ChannelRef, filters []string) error {
	q, err := e.catalog.FetchRandomQuestion(filters)
	if err != nil {
		return err
	}
	ref, err := e.platform.SendQuestion(channel, messages.RandomAnnouncement(), q)
	if err != nil {
		return err
	}
	if _, ok := e.platform.CreateThreadFromMessage(channel, ref, q.Title); !ok {
		slog.Warn("failed to create thread for random question", "channel", channel)
	}
	return nil
}
