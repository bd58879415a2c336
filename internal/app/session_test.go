package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/aggregate"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/ephemeral"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/questions"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/signals"
)

// --- Mocks ---

type mockGenerator struct {
	mu            sync.Mutex
	poll          *domain.PollSuggestion
	pollErr       error
	sentiment     *domain.GeneratedSentiment
	sentimentErr  error
	highlights    []domain.HighlightSuggestion
	highlightsErr error
	answer        string
	answerErr     error
	pollCalls     int
}

func (m *mockGenerator) SuggestPoll(_ context.Context, _ []domain.Message) (*domain.PollSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollCalls++
	return m.poll, m.pollErr
}

func (m *mockGenerator) AnalyzeSentiment(_ context.Context, _ []domain.Message) (*domain.GeneratedSentiment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sentiment, m.sentimentErr
}

func (m *mockGenerator) GenerateHighlights(_ context.Context, _ []domain.Message) ([]domain.HighlightSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.highlights, m.highlightsErr
}

func (m *mockGenerator) AnswerQuestion(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answer, m.answerErr
}

func (m *mockGenerator) getPollCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollCalls
}

type mockPublisher struct {
	mu        sync.Mutex
	published []*domain.Snapshot
}

func (m *mockPublisher) Publish(snapshot *domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, snapshot)
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

// --- Helpers ---

func defaultGenerator() *mockGenerator {
	return &mockGenerator{
		poll: &domain.PollSuggestion{
			Question:       "best opening?",
			Options:        []string{"e4", "d4", "c4", "Nf3"},
			RelevanceScore: 85,
		},
		sentiment:  &domain.GeneratedSentiment{Score: 75, Positive: 60, Negative: 10},
		highlights: []domain.HighlightSuggestion{{Title: "big moment", Summary: "chat erupted", Category: "community"}},
		answer:     "Good question.",
	}
}

func newTestSession(clock clockwork.Clock, gen domain.Generator, publisher domain.SnapshotPublisher, interval time.Duration) *Session {
	extractor := signals.NewExtractor(signals.DefaultConfig())
	return NewSession(SessionParams{
		Store:           aggregate.NewStore(extractor, aggregate.DefaultConfig(), clock),
		Questions:       questions.NewDeduplicator(clock),
		Ephemeral:       ephemeral.NewManager(ephemeral.DefaultConfig(), clock),
		Generator:       gen,
		Publisher:       publisher,
		RefreshInterval: interval,
		Clock:           clock,
	})
}

func batch(texts ...string) []domain.InboundMessage {
	out := make([]domain.InboundMessage, len(texts))
	for i, text := range texts {
		out[i] = domain.InboundMessage{Username: "user", Text: text}
	}
	return out
}

// --- Tests ---

func TestFirstCallRefreshes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	s := newTestSession(clock, gen, nil, 30*time.Second)

	snap := s.GetInsights(context.Background(), batch("hello chess fans"))
	require.NotNil(t, snap)

	assert.Equal(t, 1, snap.Metrics.TotalMessages)
	require.Len(t, snap.Polls, 1)
	assert.Equal(t, "best opening?", snap.Polls[0].Question)
	require.Len(t, snap.Highlights, 1)
	require.NotNil(t, snap.Sentiment.Generated)
	assert.InDelta(t, 75.0, snap.Sentiment.Generated.Score, 0.001)
}

func TestRefreshThrottling(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	s := newTestSession(clock, gen, nil, 30*time.Second)

	first := s.GetInsights(context.Background(), batch("one"))
	clock.Advance(10 * time.Second)
	second := s.GetInsights(context.Background(), batch("two"))

	assert.Same(t, first, second, "within the interval the cached snapshot is returned unchanged")
	assert.Equal(t, 1, gen.getPollCalls())

	clock.Advance(20 * time.Second)
	third := s.GetInsights(context.Background(), nil)
	assert.NotSame(t, first, third, "after the interval even an empty batch triggers recomputation")
	assert.Equal(t, 2, gen.getPollCalls())
}

func TestAccumulationIsContinuous(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := newTestSession(clock, defaultGenerator(), nil, 30*time.Second)

	s.GetInsights(context.Background(), batch("one"))
	clock.Advance(5 * time.Second)
	// Recorded into the store even though no refresh runs.
	stale := s.GetInsights(context.Background(), batch("two", "three"))
	assert.Equal(t, 1, stale.Metrics.TotalMessages, "snapshot still reflects the last refresh")

	clock.Advance(30 * time.Second)
	fresh := s.GetInsights(context.Background(), nil)
	assert.Equal(t, 3, fresh.Metrics.TotalMessages, "accumulated log drives the next refresh")
}

func TestFacetFailuresAreIndependent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	gen.pollErr = errors.New("timeout")
	gen.sentimentErr = errors.New("quota")
	s := newTestSession(clock, gen, nil, 30*time.Second)

	snap := s.GetInsights(context.Background(), batch("hello there everyone"))

	assert.Empty(t, snap.Polls, "failed poll facet degrades to no poll")
	assert.Nil(t, snap.Sentiment.Generated, "failed sentiment facet degrades to nil")
	require.Len(t, snap.Highlights, 1, "highlight facet unaffected")
	assert.Equal(t, 1, snap.Metrics.TotalMessages, "metrics unaffected")
}

func TestQuestionAnnotation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	s := newTestSession(clock, gen, nil, 30*time.Second)

	snap := s.GetInsights(context.Background(), batch("what engine do you use?"))

	require.Len(t, snap.QA, 1)
	assert.Equal(t, "what engine do you use?", snap.QA[0].Question)
	assert.Equal(t, "Good question.", snap.QA[0].SuggestedAnswer)
}

func TestQuestionAnswerFallback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	gen.answerErr = errors.New("backend down")
	s := newTestSession(clock, gen, nil, 30*time.Second)

	snap := s.GetInsights(context.Background(), batch("what engine do you use?"))

	require.Len(t, snap.QA, 1)
	assert.Equal(t, questions.FallbackAnswer, snap.QA[0].SuggestedAnswer)
}

func TestRecordVote(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := newTestSession(clock, defaultGenerator(), nil, 30*time.Second)
	snap := s.GetInsights(context.Background(), batch("hello"))
	require.Len(t, snap.Polls, 1)

	poll, err := s.RecordVote(snap.Polls[0].ID, "e4", "alice")
	require.NoError(t, err)
	assert.Equal(t, "e4", poll.Votes["alice"])

	_, err = s.RecordVote(snap.Polls[0].ID, "d4", "alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	_, err = s.RecordVote(42, "e4", "bob")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestInsightsServesCachedSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gen := defaultGenerator()
	s := newTestSession(clock, gen, nil, 30*time.Second)

	first := s.GetInsights(context.Background(), batch("hello"))
	clock.Advance(5 * time.Second)

	served := s.Insights(context.Background())
	assert.Same(t, first, served)
	assert.Equal(t, 1, gen.getPollCalls(), "fresh snapshot served without a new refresh")

	clock.Advance(30 * time.Second)
	refreshed := s.Insights(context.Background())
	assert.NotSame(t, first, refreshed)
	assert.Equal(t, 2, gen.getPollCalls())
}

func TestPublisherReceivesSnapshots(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pub := &mockPublisher{}
	s := newTestSession(clock, defaultGenerator(), pub, 30*time.Second)

	s.GetInsights(context.Background(), batch("hello"))
	assert.Equal(t, 1, pub.count())

	clock.Advance(30 * time.Second)
	s.GetInsights(context.Background(), nil)
	assert.Equal(t, 2, pub.count())
}

func TestSnapshotNilBeforeFirstRefresh(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := newTestSession(clock, defaultGenerator(), nil, 30*time.Second)
	assert.Nil(t, s.Snapshot())
}
