package domain

import "time"

// HighlightSuggestion is a highlight candidate from the text-generation
// collaborator. The timestamp string the backend reports is informational
// only; admitted highlights get a fresh receipt timestamp.
type HighlightSuggestion struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Highlight is an active, time-windowed stream highlight.
type Highlight struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Same reports structural equality on the identity fields used for duplicate
// suppression (title, summary, category).
func (h Highlight) Same(other Highlight) bool {
	return h.Title == other.Title && h.Summary == other.Summary && h.Category == other.Category
}
