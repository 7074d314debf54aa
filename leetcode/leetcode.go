// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leetcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/growtogether/leetcode-daily/models"
)

const defaultBaseURL = "https://leetcode.com"

// problemsetTTL is how long the full question list is cached, roughly a
// month; the list changes rarely and is ~5000 entries per fetch.
const problemsetTTL = 2500000 * time.Second

const dailyQuery = `
	query questionOfToday {
		activeDailyCodingChallengeQuestion {
			date
			link
			question {
				acRate
				difficulty
				frontendQuestionId: questionFrontendId
				paidOnly: isPaidOnly
				title
				titleSlug
			}
		}
	}
`

const problemsetQuery = `
	query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
		problemsetQuestionList: questionList(
			categorySlug: $categorySlug
			limit: $limit
			skip: $skip
			filters: $filters
		) {
			total: totalNum
			questions: data {
				acRate
				difficulty
				frontendQuestionId: questionFrontendId
				paidOnly: isPaidOnly
				title
				titleSlug
			}
		}
	}
`

type graphQLQuery struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type question struct {
	AcRate     float64 `json:"acRate"`
	Difficulty string  `json:"difficulty"`
	FrontendID string  `json:"frontendQuestionId"`
	PaidOnly   bool    `json:"paidOnly"`
	Title      string  `json:"title"`
	TitleSlug  string  `json:"titleSlug"`
}

type dailyResponse struct {
	Data struct {
		ActiveDailyCodingChallengeQuestion struct {
			Date     string   `json:"date"`
			Link     string   `json:"link"`
			Question question `json:"question"`
		} `json:"activeDailyCodingChallengeQuestion"`
	} `json:"data"`
}

type problemsetResponse struct {
	Data struct {
		ProblemsetQuestionList struct {
			Total     int        `json:"total"`
			Questions []question `json:"questions"`
		} `json:"problemsetQuestionList"`
	} `json:"data"`
}

// Client fetches questions from the LeetCode GraphQL API. It caches the full
// problemset in memory and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	cached    []question
	fetchedAt time.Time
}

// New returns a catalog client against the public API.
func New() *Client {
	return NewWithBaseURL(defaultBaseURL)
}

// NewWithBaseURL returns a client against an alternate endpoint, for tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// FetchDailyQuestion returns the question of the day.
func (c *Client) FetchDailyQuestion() (models.Question, error) {
	var parsed dailyResponse
	if err := c.query(dailyQuery, nil, &parsed); err != nil {
		return models.Question{}, fmt.Errorf("failed to fetch daily question: %w", err)
	}
	challenge := parsed.Data.ActiveDailyCodingChallengeQuestion
	return c.toModel(challenge.Question, challenge.Link), nil
}

// FetchRandomQuestion returns a random question matching every filter.
// Recognised filters are free, paid, easy, medium and hard; an unknown
// filter matches nothing.
func (c *Client) FetchRandomQuestion(filters []string) (models.Question, error) {
	questions, err := c.problemset()
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to fetch question list: %w", err)
	}

	var matching []question
	for _, q := range questions {
		if matchesFilters(q, filters) {
			matching = append(matching, q)
		}
	}
	if len(matching) == 0 {
		return models.Question{}, fmt.Errorf("no questions to select from")
	}

	q := matching[rand.Intn(len(matching))]
	return c.toModel(q, "/problems/"+q.TitleSlug), nil
}

// problemset returns the cached question list, refetching after the TTL.
func (c *Client) problemset() ([]question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < problemsetTTL {
		return c.cached, nil
	}

	variables := map[string]any{
		"categorySlug": "",
		"skip":         0,
		"limit":        5000,
		"filters":      map[string]any{},
	}
	var parsed problemsetResponse
	if err := c.query(problemsetQuery, variables, &parsed); err != nil {
		return nil, err
	}

	c.cached = parsed.Data.ProblemsetQuestionList.Questions
	c.fetchedAt = time.Now()
	return c.cached, nil
}

func (c *Client) query(query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphQLQuery{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/graphql", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) toModel(q question, link string) models.Question {
	return models.Question{
		FrontendID:     q.FrontendID,
		Title:          q.Title,
		TitleSlug:      q.TitleSlug,
		Difficulty:     q.Difficulty,
		AcceptanceRate: q.AcRate,
		PaidOnly:       q.PaidOnly,
		URL:            c.baseURL + link,
	}
}

// matchesFilters reports whether q satisfies every filter.
func matchesFilters(q question, filters []string) bool {
	for _, filter := range filters {
		switch filter {
		case "free":
			if q.PaidOnly {
				return false
			}
		case "paid":
			if !q.PaidOnly {
				return false
			}
		case "easy", "medium", "hard":
			if strings.ToLower(q.Difficulty) != filter {
				return false
			}
		default:
			return false
		}
	}
	return true
}
