// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine owns all guild state and the transition rules over it.

Engine is the single state owner: the in-memory guild map, the member-name
cache and the store handle live behind one mutex, and the schedulers and the
dispatcher only reach the state through the exported operations. There is no
per-guild lock granularity; a long operation on one guild delays the others,
an accepted trade-off at the expected guild counts.

# Operation Shape

Every operation follows the same sequence: take the lock, mutate, write the
full snapshot through to the store, release the lock, then flush queued
best-effort messages. Platform calls whose results must be recorded (thread
and poll ids) run inside the critical section; plain notifications are queued
and sent after release so a slow send cannot hold up other guilds. A platform
failure after a mutation never rolls the mutation back; persistence always
reflects the in-memory state.

# Daily Cycle

OpenDailyChallenge posts the question of the day and starts the submission
thread. Submission routes code to the daily or weekly recorder by channel,
rewards by time bucket plus streak bonus, and keeps the poll current. Vote
validates self-votes and non-submitters. RolloverDaily runs at UTC midnight:
vote tally, missed-day penalties, month-rollover bonuses, counter resets and
the next open.

# Weekly Contest

OpenWeeklyContest and CloseWeeklyContest bound the 90-minute Sunday window.
The first three members to finish all 4 questions earn podium rewards; weekly
counters reset at both edges for every guild, active or not.

# Errors

Conditions are tagged sentinel errors (see errors.go) so the dispatcher can
map each to a specific user-facing reply. Scheduler-driven batch operations
(RolloverAll, RemindAll, OpenWeeklyAll, CloseWeeklyAll) log per-guild
failures and continue.
*/
package engine
