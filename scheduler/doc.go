// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler runs the two perpetual wall-clock loops.

All scheduling is UTC. The daily loop targets 00:01 (one minute of slack so
the catalog has rotated its question of the day), with a reminder pass one
hour before. The weekly loop targets Sunday 02:30 and holds the contest open
for 90 minutes.

The duration math (UntilMidnightUTC, UntilWeeklyContest) is pure and
independently testable; the Run loops are thin sleeps around the engine's
batch operations, which handle per-guild failures themselves.
*/
package scheduler
