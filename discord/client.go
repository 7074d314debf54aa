// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/growtogether/leetcode-daily/messages"
	"github.com/growtogether/leetcode-daily/models"
)

// pollCustomID identifies the favourite-submission select menu across
// restarts; it is baked into every poll message.
const pollCustomID = "favourite_submission"

// threadArchiveMinutes auto-archives daily threads after one day.
const threadArchiveMinutes = 1440

// Embed colours per difficulty
const (
	colourEasy   = 0x1F8B4C
	colourMedium = 0xE67E22
	colourHard   = 0x992D22
)

// client implements platform.Client over a discordgo session.
type client struct {
	session *discordgo.Session
}

func (c *client) Say(channel models.ChannelRef, content string) (models.MessageRef, error) {
	msg, err := c.session.ChannelMessageSend(string(channel), content)
	if err != nil {
		return "", err
	}
	return models.MessageRef(msg.ID), nil
}

func (c *client) SendQuestion(channel models.ChannelRef, content string, q models.Question) (models.MessageRef, error) {
	msg, err := c.session.ChannelMessageSendComplex(string(channel), &discordgo.MessageSend{
		Content: content,
		Embed:   questionEmbed(q),
	})
	if err != nil {
		return "", err
	}
	return models.MessageRef(msg.ID), nil
}

func questionEmbed(q models.Question) *discordgo.MessageEmbed {
	colour := 0
	switch q.Difficulty {
	case models.DifficultyEasy:
		colour = colourEasy
	case models.DifficultyMedium:
		colour = colourMedium
	case models.DifficultyHard:
		colour = colourHard
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s. %s", q.FrontendID, q.Title),
		URL:   q.URL,
		Color: colour,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Difficulty", Value: q.Difficulty, Inline: true},
			{Name: "Acceptance Rate", Value: fmt.Sprintf("%.2f%%", q.AcceptanceRate), Inline: true},
		},
	}
}

func (c *client) SendPoll(channel models.ChannelRef, content string) (models.MessageRef, error) {
	msg, err := c.session.ChannelMessageSendComplex(string(channel), &discordgo.MessageSend{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType:    discordgo.UserSelectMenu,
						CustomID:    pollCustomID,
						Placeholder: messages.PollPlaceholder,
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return models.MessageRef(msg.ID), nil
}

func (c *client) Reply(channel models.ChannelRef, ref models.MessageRef, content string) error {
	_, err := c.session.ChannelMessageSendReply(string(channel), content, &discordgo.MessageReference{
		MessageID: string(ref),
		ChannelID: string(channel),
	})
	return err
}

func (c *client) EditMessage(channel models.ChannelRef, ref models.MessageRef, content string) error {
	_, err := c.session.ChannelMessageEdit(string(channel), string(ref), content)
	return err
}

func (c *client) FetchMessage(channel models.ChannelRef, ref models.MessageRef) error {
	_, err := c.session.ChannelMessage(string(channel), string(ref))
	return err
}

func (c *client) PinMessage(channel models.ChannelRef, ref models.MessageRef) error {
	return c.session.ChannelMessagePin(string(channel), string(ref))
}

func (c *client) CreateThreadFromMessage(channel models.ChannelRef, ref models.MessageRef, title string) (models.ChannelRef, bool) {
	thread, err := c.session.MessageThreadStartComplex(string(channel), string(ref), &discordgo.ThreadStart{
		Name:                title,
		AutoArchiveDuration: threadArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	})
	if err != nil {
		slog.Warn("failed to create thread", "channel", channel, "error", err)
		return "", false
	}
	return models.ChannelRef(thread.ID), true
}

func (c *client) ListMembers(guild models.GuildID) ([]models.Member, error) {
	const pageSize = 1000
	var out []models.Member
	after := ""
	for {
		page, err := c.session.GuildMembers(string(guild), after, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, member := range page {
			if member.User == nil || member.User.Bot {
				continue
			}
			name := member.Nick
			if name == "" {
				name = member.User.Username
			}
			out = append(out, models.Member{ID: models.UserID(member.User.ID), Name: name})
		}
		after = page[len(page)-1].User.ID
		if len(page) < pageSize {
			break
		}
	}
	return out, nil
}
