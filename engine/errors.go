// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "errors"

// Tagged error conditions. Configuration errors are fatal to the specific
// operation only; validation errors mutate no state; platform errors leave
// the operation degraded but recoverable.
var (
	// ErrUnknownGuild means the guild has never been initialised.
	ErrUnknownGuild = errors.New("guild does not exist in database")

	// ErrChannelMissing means no default channel is configured.
	ErrChannelMissing = errors.New("no default channel")

	// ErrThreadMissing means the operation needs a daily thread and none exists.
	ErrThreadMissing = errors.New("no default thread")

	// ErrThreadCreationFailed means the platform rejected thread creation.
	// The state records no thread; a member recovers via /poll after the
	// next successful open.
	ErrThreadCreationFailed = errors.New("failed to create thread")

	// ErrAlreadySubmitted means the member already submitted today.
	ErrAlreadySubmitted = errors.New("already submitted")

	// ErrSelfVote means a member voted for themselves.
	ErrSelfVote = errors.New("cannot vote for yourself")

	// ErrInvalidTarget means the vote target has no submission today.
	ErrInvalidTarget = errors.New("vote target has not submitted")

	// ErrNotParticipating means the vote target is not a tracked member.
	ErrNotParticipating = errors.New("vote target is not participating")

	// ErrContestCompleted means the member already finished all contest
	// questions.
	ErrContestCompleted = errors.New("contest already completed")

	// ErrPollMismatch means the stored poll ref could not be fetched from
	// the thread, usually after a platform-side deletion. Tolerated; the
	// stale ref is cleared so a fresh poll can be created.
	ErrPollMismatch = errors.New("poll message is not in this channel")
)
