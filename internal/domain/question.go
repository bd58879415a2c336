package domain

import "time"

// QuestionCluster is a deduplicated group of textually similar questions.
// Created on the first occurrence of a novel question and mutated (frequency,
// askers) as similar questions arrive; never deleted within a session.
type QuestionCluster struct {
	Question        string    `json:"question"`
	Frequency       int       `json:"frequency"`
	Askers          []string  `json:"askers"`
	CreatedAt       time.Time `json:"timestamp"`
	SuggestedAnswer string    `json:"ai_suggested_answer,omitempty"`
}
