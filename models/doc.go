// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the persisted domain types for the bot.

# Identifiers

Opaque string ids for platform entities:

  - GuildID: one chat community
  - UserID: one member
  - ChannelRef: a channel or thread
  - MessageRef: a single message

# Persisted State

The whole database is one JSON document, a map from guild id to GuildState:

  - GuildState: per-guild channels, thread handles, poll handle, feature flags
  - UserStatus: per-member vote, submission link, counters, score

UserStatus entries are created lazily via GuildState.User the first time a
member submits, is voted for, or appears in a membership sync. There is no
deletion path; a member who leaves the guild leaves a stale but harmless entry.

# Collaborator Types

  - Question: a catalog entry (title, difficulty, acceptance rate, url)
  - Member: a non-bot guild member with a display name

# Constants

Feature axes:

	AxisDaily  = "daily"
	AxisWeekly = "weekly"

Question difficulties:

	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
*/
package models
