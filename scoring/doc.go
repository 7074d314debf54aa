// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring implements the pure reward and ranking rules.

Every function is deterministic given its inputs and consults no clocks or
state, so each rule is independently testable. Time only enters through
explicit parameters (hours remaining, a reference instant for month lengths).

# Daily Rewards

DailyReward buckets the reward by hours remaining until UTC midnight:

	>= 23h -> 5
	>= 21h -> 4
	>= 16h -> 3
	>=  8h -> 2
	else   -> 1

StreakBonus adds 5 points when a member returns after missing more than 7
consecutive days. Penalty deducts 1 point per missed day, floored at zero.

# Monthly and Weekly Bonuses

MonthlyLeaderBonus grants 5 points to everyone tied for the highest monthly
record at month rollover, plus 10 more for a perfect month (record equal to
the prior month's length). WeeklyPlacement rewards the first three members to
finish all 4 contest questions with 4/3/2 points and everyone after with 1.

# Votes and Ranking

TallyVotes counts one point per ballot received; SortedVotes orders a tally
for display. Rank builds the leaderboard with the (score desc, monthly record
desc, name asc) total order, excluding zero-score members.
*/
package scoring
