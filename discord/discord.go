// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
	"github.com/growtogether/leetcode-daily/platform"
	"github.com/growtogether/leetcode-daily/scheduler"
)

// Bot owns the gateway session and forwards events to the engine.
type Bot struct {
	session *discordgo.Session
	engine  *engine.Engine

	schedulers sync.Once
}

// New creates a session with the intents the dispatcher needs. The session
// is not opened until Open.
func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	return &Bot{session: session}, nil
}

// Client exposes the session as the platform capability the core consumes.
func (b *Bot) Client() platform.Client {
	return &client{session: b.session}
}

// Attach binds the engine and registers the gateway handlers.
func (b *Bot) Attach(eng *engine.Engine) {
	b.engine = eng
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteractionCreate)
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway session: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.engine.SetBot(models.UserID(s.State.User.ID))
	slog.Info("gateway ready", "guilds", len(r.Guilds))

	b.schedulers.Do(func() {
		sched := scheduler.New(b.engine)
		go sched.RunDaily()
		go sched.RunWeekly()
	})
}

// onGuildCreate fires both for newly joined guilds and for every known guild
// at connect time. Known guilds only get a membership sync; new guilds are
// initialised with their first text channel as the default.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	guild := models.GuildID(g.ID)
	members, err := b.Client().ListMembers(guild)
	if err != nil {
		slog.Error("failed to list members", "guild_id", guild, "error", err)
		return
	}

	if b.engine.HasGuild(guild) {
		b.engine.SyncMembers(guild, members)
		return
	}

	var channel *models.ChannelRef
	for _, ch := range g.Channels {
		if ch.Type == discordgo.ChannelTypeGuildText {
			ref := models.ChannelRef(ch.ID)
			channel = &ref
			break
		}
	}
	if err := b.engine.InitGuild(guild, members, channel); err != nil {
		slog.Error("failed to initialise guild", "guild_id", guild, "error", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		if _, err := s.ChannelMessageSend(m.ChannelID, messages.DMReply); err != nil {
			slog.Error("failed to reply to dm", "error", err)
		}
		return
	}

	event := inboundEvent{
		guild:   models.GuildID(m.GuildID),
		user:    models.UserID(m.Author.ID),
		channel: models.ChannelRef(m.ChannelID),
		content: m.Content,
		link:    messageLink(m.GuildID, m.ChannelID, m.ID),
	}
	if err := b.dispatch(event); err != nil {
		slog.Error("failed to handle message", "guild_id", event.guild, "error", err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	data := i.MessageComponentData()
	if data.CustomID != pollCustomID || i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return
	}
	if len(data.Values) != 1 || i.Message == nil {
		return
	}

	ack := b.handleVote(
		models.GuildID(i.GuildID),
		models.UserID(i.Member.User.ID),
		models.UserID(data.Values[0]),
		models.MessageRef(i.Message.ID),
	)
	if ack == "" {
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: ack,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to acknowledge vote", "guild_id", i.GuildID, "error", err)
	}
}

func messageLink(guildID, channelID, messageID string) string {
	return "https://discord.com/channels/" + guildID + "/" + channelID + "/" + messageID
}
