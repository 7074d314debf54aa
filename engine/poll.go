// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"log/slog"

	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
)

// ensurePollLocked makes sure the day's poll exists. With an existing poll
// the stored ref is verified against the thread; a stale ref (platform-side
// deletion) is cleared and reported as ErrPollMismatch so the next attempt
// creates a fresh poll. When announceExisting is set a valid poll gets a
// "vote here" reply.
func (e *Engine) ensurePollLocked(id models.GuildID, g *models.GuildState, announceExisting bool) error {
	if g.ThreadID == nil {
		return ErrThreadMissing
	}

	if g.PollID != nil {
		if err := e.platform.FetchMessage(*g.ThreadID, *g.PollID); err == nil {
			if announceExisting {
				if err := e.platform.Reply(*g.ThreadID, *g.PollID, messages.VoteViaPoll); err != nil {
					slog.Warn("failed to reply to poll", "guild_id", id, "error", err)
				}
			}
			return nil
		}
		e.queue(*g.ThreadID, messages.PollError)
		g.PollID = nil
		return ErrPollMismatch
	}

	ref, err := e.platform.SendPoll(*g.ThreadID, messages.SubmissionList(g.Users))
	if err != nil {
		return fmt.Errorf("failed to create poll: %w", err)
	}
	g.PollID = &ref
	if err := e.platform.PinMessage(*g.ThreadID, ref); err != nil {
		slog.Warn("failed to pin poll message", "guild_id", id, "error", err)
	}
	return nil
}

// TogglePoll serves /poll: in the daily thread it creates the poll or
// re-announces the existing one; in the default channel it redirects to the
// thread; anywhere else it is ignored.
func (e *Engine) TogglePoll(id models.GuildID, channel models.ChannelRef) error {
	e.mu.Lock()
	g, err := e.guildLocked(id)
	if err != nil {
		e.finish()
		return err
	}
	if !g.ActiveDaily {
		e.finish()
		return nil
	}

	switch {
	case g.ThreadID != nil && channel == *g.ThreadID:
		err = e.ensurePollLocked(id, g, true)
	case g.ChannelID != nil && channel == *g.ChannelID && g.ThreadID != nil:
		e.queue(channel, messages.WrongChannelPoll(*g.ThreadID))
	}
	e.finish()
	return err
}
