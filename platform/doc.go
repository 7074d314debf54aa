// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package platform declares the collaborator capabilities the core consumes.

The core never talks to the chat platform or the question catalog directly; it
goes through these two interfaces so the engine, schedulers and tests are
independent of any concrete client.

# Client

The chat-platform capability: sending plain, question and poll messages,
editing and fetching messages, pinning, starting threads from messages, and
listing non-bot guild members. Thread creation failure is deliberately
non-fatal (ok == false) so callers can continue degraded and let a member
recover via /poll.

# Catalog

The question-catalog capability: the question of the day plus a random
question with optional free/paid/easy/medium/hard filters.

The production implementations live in the discord and leetcode packages; the
testutil package provides in-memory fakes.
*/
package platform
