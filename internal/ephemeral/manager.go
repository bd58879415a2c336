// Package ephemeral manages the two independently time-windowed, capacity
// bounded collections of UI artifacts: active polls and active highlights.
// Expired or evicted items are simply dropped; no tombstones.
package ephemeral

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

const (
	defaultPollTTL       = 5 * time.Minute
	defaultHighlightTTL  = 30 * time.Minute
	defaultMaxPolls      = 2
	defaultMaxHighlights = 10

	minRelevanceScore = 70
)

// Config tunes the expiry windows and capacity bounds.
type Config struct {
	PollTTL       time.Duration
	HighlightTTL  time.Duration
	MaxPolls      int
	MaxHighlights int
}

func DefaultConfig() Config {
	return Config{
		PollTTL:       defaultPollTTL,
		HighlightTTL:  defaultHighlightTTL,
		MaxPolls:      defaultMaxPolls,
		MaxHighlights: defaultMaxHighlights,
	}
}

// Manager owns the active polls and highlights of one session. All methods
// assume a single logical owner; the session serialises access.
type Manager struct {
	clock      clockwork.Clock
	cfg        Config
	polls      []*domain.Poll
	highlights []domain.Highlight
}

func NewManager(cfg Config, clock clockwork.Clock) *Manager {
	return &Manager{clock: clock, cfg: cfg}
}

// AdmitPoll sweeps expired polls, then admits the candidate if its relevance
// score exceeds the threshold and the active set has room. Returns the
// created poll, or nil when the candidate was nil or rejected.
//
// The new poll's id is the post-sweep active count. Ids are therefore
// monotonic within a sweep but may be reused after an eviction; this id
// reuse quirk is deliberate, documented behavior.
func (m *Manager) AdmitPoll(candidate *domain.PollSuggestion) *domain.Poll {
	m.sweepPolls()
	if candidate == nil {
		return nil
	}
	if candidate.RelevanceScore <= minRelevanceScore || len(m.polls) >= m.cfg.MaxPolls {
		return nil
	}

	poll := &domain.Poll{
		ID:             len(m.polls),
		Question:       candidate.Question,
		Options:        append([]string(nil), candidate.Options...),
		Votes:          make(map[string]string),
		CreatedAt:      m.clock.Now(),
		RelevanceScore: candidate.RelevanceScore,
	}
	m.polls = append(m.polls, poll)
	return poll
}

// ActivePolls sweeps expired polls and returns a copy of the active set.
func (m *Manager) ActivePolls() []domain.Poll {
	m.sweepPolls()
	out := make([]domain.Poll, len(m.polls))
	for i, p := range m.polls {
		out[i] = *p
	}
	return out
}

func (m *Manager) sweepPolls() {
	now := m.clock.Now()
	kept := m.polls[:0]
	for _, p := range m.polls {
		if now.Sub(p.CreatedAt) < m.cfg.PollTTL {
			kept = append(kept, p)
		}
	}
	m.polls = kept
}

// RecordVote records user's vote on the given poll. The first vote per
// (poll, user) pair is final; a later vote returns ErrAlreadyVoted without
// mutating state. An unknown poll id returns ErrPollNotFound.
//
// The option string is not validated against the poll's declared options;
// that permissiveness matches the upstream contract.
func (m *Manager) RecordVote(pollID int, option, user string) (*domain.Poll, error) {
	for _, p := range m.polls {
		if p.ID != pollID {
			continue
		}
		if _, voted := p.Votes[user]; voted {
			return nil, domain.ErrAlreadyVoted
		}
		p.Votes[user] = option
		return p, nil
	}
	return nil, domain.ErrPollNotFound
}

// AdmitHighlights sweeps expired highlights, appends each candidate not
// already present (structural equality on title, summary and category) with
// a fresh timestamp, then keeps only the most recent by timestamp.
func (m *Manager) AdmitHighlights(candidates []domain.HighlightSuggestion) {
	now := m.clock.Now()
	kept := m.highlights[:0]
	for _, h := range m.highlights {
		if now.Sub(h.Timestamp) < m.cfg.HighlightTTL {
			kept = append(kept, h)
		}
	}
	m.highlights = kept

	for _, c := range candidates {
		candidate := domain.Highlight{
			Title:     c.Title,
			Summary:   c.Summary,
			Category:  c.Category,
			Timestamp: now,
		}
		if !m.hasHighlight(candidate) {
			m.highlights = append(m.highlights, candidate)
		}
	}

	sort.SliceStable(m.highlights, func(i, j int) bool {
		return m.highlights[i].Timestamp.After(m.highlights[j].Timestamp)
	})
	if len(m.highlights) > m.cfg.MaxHighlights {
		m.highlights = m.highlights[:m.cfg.MaxHighlights]
	}
}

func (m *Manager) hasHighlight(candidate domain.Highlight) bool {
	for _, h := range m.highlights {
		if h.Same(candidate) {
			return true
		}
	}
	return false
}

// ActiveHighlights returns a copy of the active highlight set, newest first.
func (m *Manager) ActiveHighlights() []domain.Highlight {
	out := make([]domain.Highlight, len(m.highlights))
	copy(out, m.highlights)
	return out
}
