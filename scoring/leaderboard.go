// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"sort"

	"github.com/growtogether/leetcode-daily/models"
)

// Entry is one ranked leaderboard row.
type Entry struct {
	Name          string
	Score         int
	MonthlyRecord uint32
}

// Rank produces the guild leaderboard: score descending, ties broken by
// monthly record descending, remaining ties by resolved name ascending so the
// order is a stable total order. Members with zero score are excluded; an
// empty result means no one has scored yet and callers render a fixed notice
// instead of an empty listing.
func Rank(users map[models.UserID]*models.UserStatus, resolve func(models.UserID) string) []Entry {
	var entries []Entry
	for id, status := range users {
		if status.Score == 0 {
			continue
		}
		entries = append(entries, Entry{
			Name:          resolve(id),
			Score:         status.Score,
			MonthlyRecord: status.MonthlyRecord,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MonthlyRecord != b.MonthlyRecord {
			return a.MonthlyRecord > b.MonthlyRecord
		}
		return a.Name < b.Name
	})
	return entries
}
