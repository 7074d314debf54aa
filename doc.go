// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the LeetCode Daily bot.

LeetCode Daily runs a recurring coding-challenge cycle per guild: it posts the
question of the day, tracks submissions in a daily thread, scores them with
time and streak bonuses, runs a favourite-submission poll, and opens a
90-minute weekly contest every Sunday at 02:30 UTC. All times are UTC.

# Starting the Bot

The bot requires the gateway credential in the environment:

	DISCORD_TOKEN=... go run main.go

Or with flags for local development:

	go run main.go -d state/database.json --token ...

# Configuration

Required settings:

  - DISCORD_TOKEN (--token): gateway credential

Optional settings:

  - DATABASE_PATH (-d): snapshot file path (default: database.json)

# Architecture

The bot is a single process around one state owner:

  - engine: guild state machine behind one lock, all transition rules
  - scoring: pure reward, penalty and leaderboard rules
  - scheduler: daily midnight and weekly contest loops
  - store: write-through JSON snapshot persistence
  - discord: gateway session, dispatcher and platform adapter
  - leetcode: question-catalog client
  - messages: outbound message texts
  - platform: collaborator interfaces the core consumes
  - models: persisted domain types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
