// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package leetcode implements the question-catalog client against the LeetCode
GraphQL API.

Two queries are used: questionOfToday for the daily challenge and
problemsetQuestionList for random questions. The full problemset is fetched
once and cached in memory for roughly a month; random selection and filtering
(free, paid, easy, medium, hard) run against the cache.

Fetch failures are reported upward and not retried inline; the daily
scheduler's next tick attempts again.
*/
package leetcode
