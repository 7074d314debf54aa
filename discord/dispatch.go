// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
)

// codeBlock matches a fenced submission anywhere in a message.
var codeBlock = regexp.MustCompile("(?s)```.+```")

// inboundEvent is one guild message reduced to what the dispatcher needs.
type inboundEvent struct {
	guild   models.GuildID
	user    models.UserID
	channel models.ChannelRef
	content string
	link    string
}

// dispatch routes one guild message to the matching engine operation. The
// dispatcher is deliberately thin: parsing and channel plumbing here, all
// state decisions in the engine.
func (b *Bot) dispatch(event inboundEvent) error {
	switch {
	case strings.HasPrefix(event.content, "/active"):
		return b.engine.ActiveCommand(event.guild, event.channel, strings.Fields(event.content)[1:])
	case event.content == "/help":
		return b.engine.Help(event.guild, event.channel)
	case strings.HasPrefix(event.content, "/random"):
		return b.engine.Random(event.channel, strings.Fields(event.content)[1:])
	case event.content == "/scores":
		return b.engine.Scores(event.guild, event.channel)
	case strings.HasPrefix(event.content, "/channel"):
		return b.handleChannel(event)
	case event.content == "/poll":
		return b.engine.TogglePoll(event.guild, event.channel)
	case isSubmission(event.content):
		err := b.engine.Submission(event.guild, event.user, event.channel, event.link, time.Now().UTC())
		if errors.Is(err, engine.ErrAlreadySubmitted) || errors.Is(err, engine.ErrContestCompleted) {
			return nil
		}
		return err
	}
	return nil
}

// handleChannel serves /channel: with a valid text-channel id the default
// channel moves there; with a bad id the member gets a fixed rejection; with
// no id the engine describes or explains usage depending on where it was
// asked.
func (b *Bot) handleChannel(event inboundEvent) error {
	fields := strings.Fields(event.content)
	arg := fields[len(fields)-1]
	if _, err := strconv.ParseUint(arg, 10, 64); err != nil {
		return b.engine.DescribeChannel(event.guild, event.channel)
	}

	ch, err := b.session.Channel(arg)
	if err != nil || ch.Type != discordgo.ChannelTypeGuildText || ch.GuildID != string(event.guild) {
		_, sendErr := b.session.ChannelMessageSend(string(event.channel), messages.InvalidChannel)
		return sendErr
	}
	return b.engine.SetChannel(event.guild, event.channel, models.ChannelRef(ch.ID))
}

// handleVote records a poll ballot and returns the ephemeral acknowledgement
// text, or "" when the interaction should be ignored (stale poll, daily
// inactive).
func (b *Bot) handleVote(guild models.GuildID, voter, target models.UserID, poll models.MessageRef) string {
	name, err := b.engine.Vote(guild, voter, target, poll)
	switch {
	case err == nil:
		return messages.VoteAck(name)
	case errors.Is(err, engine.ErrSelfVote):
		return messages.SelfVote
	case errors.Is(err, engine.ErrInvalidTarget):
		return messages.VoteNoSubmission
	case errors.Is(err, engine.ErrNotParticipating):
		return messages.VoteNotInGuild
	default:
		return ""
	}
}

// isSubmission reports whether content carries a fenced code block.
func isSubmission(content string) bool {
	return codeBlock.MatchString(content)
}
