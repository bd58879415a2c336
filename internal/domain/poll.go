package domain

import "time"

// PollSuggestion is a poll candidate produced by the text-generation
// collaborator. Only candidates with RelevanceScore above the admission
// threshold become active polls.
type PollSuggestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	RelevanceScore int      `json:"relevance_score"`
}

// Poll is an active, time-windowed poll. Votes maps username to the chosen
// option; the first vote per user is final.
type Poll struct {
	ID             int               `json:"id"`
	Question       string            `json:"question"`
	Options        []string          `json:"options"`
	Votes          map[string]string `json:"votes"`
	CreatedAt      time.Time         `json:"created_at"`
	RelevanceScore int               `json:"relevance_score"`
}
