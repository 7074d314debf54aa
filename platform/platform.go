// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package platform

import "github.com/growtogether/leetcode-daily/models"

// Client is the capability surface the core consumes from the chat platform.
// Implementations are expected to be safe for concurrent use.
type Client interface {
	// Say sends a plain text message and returns its ref.
	Say(channel models.ChannelRef, content string) (models.MessageRef, error)

	// SendQuestion sends content with a rich question card attached.
	SendQuestion(channel models.ChannelRef, content string, q models.Question) (models.MessageRef, error)

	// SendPoll sends content with a member-select component attached so
	// members can vote for their favourite submission.
	SendPoll(channel models.ChannelRef, content string) (models.MessageRef, error)

	// Reply sends content as a reply to an existing message.
	Reply(channel models.ChannelRef, ref models.MessageRef, content string) error

	// EditMessage replaces the content of an existing message.
	EditMessage(channel models.ChannelRef, ref models.MessageRef, content string) error

	// FetchMessage reports whether ref still exists in channel. A non-nil
	// error means the stored ref is stale.
	FetchMessage(channel models.ChannelRef, ref models.MessageRef) error

	// PinMessage pins ref in channel.
	PinMessage(channel models.ChannelRef, ref models.MessageRef) error

	// CreateThreadFromMessage starts a public thread from a message.
	// Failure is non-fatal and reported as ok == false.
	CreateThreadFromMessage(channel models.ChannelRef, ref models.MessageRef, title string) (thread models.ChannelRef, ok bool)

	// ListMembers returns the guild's current members, bots excluded.
	ListMembers(guild models.GuildID) ([]models.Member, error)
}

// Catalog is the question-catalog collaborator.
type Catalog interface {
	// FetchDailyQuestion returns the question of the day.
	FetchDailyQuestion() (models.Question, error)

	// FetchRandomQuestion returns a random question matching every filter.
	// Recognised filters: free, paid, easy, medium, hard.
	FetchRandomQuestion(filters []string) (models.Question, error)
}
