// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package discord adapts the Discord gateway to the core.

The package has two halves. Bot owns the discordgo session, registers the
gateway handlers (ready, guild create, message create, interaction create)
and dispatches each event to the matching engine operation. client implements
platform.Client over the same session, so the engine's outbound capability
and the inbound event flow share one connection.

The dispatcher stays at the interface boundary: it parses command text,
detects fenced code blocks, validates /channel arguments against the live
channel list and maps the engine's tagged errors onto fixed reply texts.
Everything stateful happens inside the engine.

Votes arrive as component interactions on the poll's member-select menu
(custom id "favourite_submission") and are acknowledged ephemerally.
*/
package discord
