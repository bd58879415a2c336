// Package app ties the aggregation components together into a per-stream
// insight session and runs the refresh scheduling around it.
package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/aggregate"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/ephemeral"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/metrics"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/platform/correlation"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/questions"
)

const (
	defaultRefreshInterval = 30 * time.Second
	defaultGeneratorWindow = 100
	topQuestionLimit       = 5
)

// SessionParams wires a session's collaborators. Store, Questions, Ephemeral
// and Generator are required; Publisher is optional.
type SessionParams struct {
	Store           *aggregate.Store
	Questions       *questions.Deduplicator
	Ephemeral       *ephemeral.Manager
	Generator       domain.Generator
	Publisher       domain.SnapshotPublisher
	RefreshInterval time.Duration
	GeneratorWindow int
	Clock           clockwork.Clock
}

// Session is the single logical owner of one stream's mutable insight state:
// one aggregation store, one ephemeral item manager, one cached snapshot.
// Batch ingestion is continuous; snapshot recomputation is throttled to the
// refresh interval. Between refreshes every caller observes the identical
// previous snapshot.
type Session struct {
	id        uuid.UUID
	clock     clockwork.Clock
	store     *aggregate.Store
	questions *questions.Deduplicator
	ephemeral *ephemeral.Manager
	generator domain.Generator
	publisher domain.SnapshotPublisher
	interval  time.Duration
	window    int

	mu          sync.Mutex
	lastRefresh time.Time
	snapshot    atomic.Pointer[domain.Snapshot]
	flight      singleflight.Group
}

func NewSession(p SessionParams) *Session {
	if p.RefreshInterval <= 0 {
		p.RefreshInterval = defaultRefreshInterval
	}
	if p.GeneratorWindow <= 0 {
		p.GeneratorWindow = defaultGeneratorWindow
	}
	return &Session{
		id:        uuid.New(),
		clock:     p.Clock,
		store:     p.Store,
		questions: p.Questions,
		ephemeral: p.Ephemeral,
		generator: p.Generator,
		publisher: p.Publisher,
		interval:  p.RefreshInterval,
		window:    p.GeneratorWindow,
	}
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// GetInsights ingests the batch and returns the current snapshot. The batch
// is always recorded into the aggregation store; a full refresh cycle runs
// only when the interval has elapsed since the last one or no snapshot
// exists yet. Otherwise the previous snapshot is returned unchanged.
func (s *Session) GetInsights(ctx context.Context, batch []domain.InboundMessage) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	processed := s.store.LoadBatch(batch)
	metrics.MessagesIngested.Add(float64(len(processed)))
	metrics.MessagesDropped.Add(float64(len(batch) - len(processed)))
	s.questions.Consume(processed)

	if s.snapshot.Load() == nil || s.clock.Since(s.lastRefresh) >= s.interval {
		s.refreshLocked(ctx)
	}
	return s.snapshot.Load()
}

// Snapshot returns the cached snapshot without ingesting or refreshing.
// Nil before the first refresh cycle.
func (s *Session) Snapshot() *domain.Snapshot {
	return s.snapshot.Load()
}

// Insights serves read requests. A fresh snapshot is returned directly;
// otherwise concurrent callers are collapsed into a single empty-batch
// refresh so at most one recomputation is ever in flight.
func (s *Session) Insights(ctx context.Context) *domain.Snapshot {
	if snap := s.snapshot.Load(); snap != nil && !s.stale() {
		return snap
	}
	result, _, _ := s.flight.Do("refresh", func() (interface{}, error) {
		return s.GetInsights(ctx, nil), nil
	})
	return result.(*domain.Snapshot)
}

func (s *Session) stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Since(s.lastRefresh) >= s.interval
}

// TrendingTopics queries the aggregation store under the session lock.
// Unlike the snapshot this reads the live log, not the last refresh.
func (s *Session) TrendingTopics(limit int) []domain.TrendingTopic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.TrendingTopics(limit)
}

// MessagesByTag queries the aggregation store under the session lock.
func (s *Session) MessagesByTag(tag string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.MessagesByTag(tag)
}

// RecordVote forwards a vote to the ephemeral manager under the session
// lock. The cached snapshot keeps showing the pre-vote tallies until the
// next refresh.
func (s *Session) RecordVote(pollID int, option, user string) (*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, err := s.ephemeral.RecordVote(pollID, option, user)
	if err != nil {
		metrics.Votes.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.Votes.WithLabelValues("ok").Inc()
	return poll, nil
}

// refreshLocked runs one full refresh cycle: generator facets, question
// annotation, ephemeral admission, metrics recomputation, atomic snapshot
// replacement. Each generator call is independently fallible; a failure
// degrades only its own facet.
func (s *Session) refreshLocked(ctx context.Context) {
	ctx = correlation.WithID(ctx, correlation.NewID())
	start := s.clock.Now()
	window := s.store.RecentMessages(s.window)

	pollSuggestion, err := s.generator.SuggestPoll(ctx, window)
	if err != nil {
		slog.WarnContext(ctx, "Poll suggestion failed", "session", s.id, "error", err)
		pollSuggestion = nil
	}

	generated, err := s.generator.AnalyzeSentiment(ctx, window)
	if err != nil {
		slog.WarnContext(ctx, "Sentiment analysis failed", "session", s.id, "error", err)
		generated = nil
	}

	highlightSuggestions, err := s.generator.GenerateHighlights(ctx, window)
	if err != nil {
		slog.WarnContext(ctx, "Highlight generation failed", "session", s.id, "error", err)
		highlightSuggestions = nil
	}

	qa := s.questions.TopClustersWithAnswers(ctx, topQuestionLimit, s.generator)

	s.ephemeral.AdmitPoll(pollSuggestion)
	s.ephemeral.AdmitHighlights(highlightSuggestions)

	sentiment := s.store.Sentiment()
	sentiment.Generated = generated

	snap := &domain.Snapshot{
		Polls:      s.ephemeral.ActivePolls(),
		QA:         qa,
		Sentiment:  sentiment,
		Highlights: s.ephemeral.ActiveHighlights(),
		Metrics:    s.store.Engagement(),
	}
	s.snapshot.Store(snap)
	s.lastRefresh = s.clock.Now()

	metrics.RefreshCycles.Inc()
	metrics.RefreshDuration.Observe(s.clock.Since(start).Seconds())
	metrics.ActivePolls.Set(float64(len(snap.Polls)))
	metrics.ActiveHighlights.Set(float64(len(snap.Highlights)))

	if s.publisher != nil {
		s.publisher.Publish(snap)
	}

	slog.InfoContext(ctx, "Insights refreshed",
		"session", s.id,
		"messages", snap.Metrics.TotalMessages,
		"polls", len(snap.Polls),
		"highlights", len(snap.Highlights),
		"clusters", len(snap.QA),
	)
}
