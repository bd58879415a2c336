package aggregate

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/signals"
)

func newTestStore(clock clockwork.Clock) *Store {
	return NewStore(signals.NewExtractor(signals.DefaultConfig()), DefaultConfig(), clock)
}

func msg(username, text string) domain.InboundMessage {
	return domain.InboundMessage{Username: username, Text: text}
}

func TestEmptyLog(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	assert.Equal(t, 0, s.TotalMessages())
	assert.Empty(t, s.TrendingTopics(10))

	metrics := s.Engagement()
	assert.Equal(t, 0, metrics.TotalMessages)
	assert.Equal(t, 0, metrics.UniqueUsers)
	assert.Empty(t, metrics.MostActiveUsers)
	assert.Empty(t, metrics.PeakTimes)

	report := s.Sentiment()
	assert.Empty(t, report.Distributions)
	assert.Equal(t, domain.Mood(""), report.OverallMood)
	assert.Len(t, report.MoodHeatmap, 24)
	assert.Equal(t, 0, report.BasicSentiment.TotalMessages)
}

func TestLoadBatchAssignsSequenceIDs(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	first := s.LoadBatch([]domain.InboundMessage{msg("alice", "hello there"), msg("bob", "hi")})
	require.Len(t, first, 2)
	assert.Equal(t, 0, first[0].ID)
	assert.Equal(t, 1, first[1].ID)

	second := s.LoadBatch([]domain.InboundMessage{msg("carol", "hey")})
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].ID)
	assert.Equal(t, 3, s.TotalMessages())
}

func TestLoadBatchDropsMalformedMessages(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	processed := s.LoadBatch([]domain.InboundMessage{
		{Username: "", Text: "no user"},
		{Username: "alice", Text: ""},
		msg("bob", "valid message"),
	})

	require.Len(t, processed, 1)
	assert.Equal(t, "bob", processed[0].Username)
	assert.Equal(t, 1, s.TotalMessages())
}

func TestTrendingTopics(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	var batch []domain.InboundMessage
	for i := 0; i < 5; i++ {
		batch = append(batch, msg("u", "chess"))
	}
	for i := 0; i < 3; i++ {
		batch = append(batch, msg("u", "stream"))
	}
	s.LoadBatch(batch)

	topics := s.TrendingTopics(10)
	require.Len(t, topics, 2)
	assert.Equal(t, domain.TrendingTopic{Topic: "chess", Count: 5}, topics[0])
	assert.Equal(t, domain.TrendingTopic{Topic: "stream", Count: 3}, topics[1])
}

func TestTrendingExcludesStopWordsAndShortTokens(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{msg("u", "the cat and for with opening")})

	topics := s.TrendingTopics(10)
	// "the", "and", "for" are stop words; "cat" is length 3.
	require.Len(t, topics, 2)
	assert.Equal(t, "with", topics[0].Topic)
	assert.Equal(t, "opening", topics[1].Topic)
}

func TestTrendingTieBrokenByFirstSeen(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{msg("u", "zebra apple zebra apple")})

	topics := s.TrendingTopics(10)
	require.Len(t, topics, 2)
	assert.Equal(t, "zebra", topics[0].Topic)
	assert.Equal(t, "apple", topics[1].Topic)
}

func TestHeatmapPartition(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	s := newTestStore(clock)

	s.LoadBatch([]domain.InboundMessage{msg("a", "first 🔥"), msg("b", "second")})
	clock.Advance(3 * time.Hour)
	s.LoadBatch([]domain.InboundMessage{msg("c", "third")})

	heatmap := s.Sentiment().MoodHeatmap
	require.Len(t, heatmap, 24)

	sum := 0
	for _, slot := range heatmap {
		sum += slot.Total
	}
	assert.Equal(t, s.TotalMessages(), sum)

	nine := heatmap["09"]
	assert.Equal(t, 2, nine.Total)
	assert.Equal(t, 2, nine.Intensity)
	assert.Equal(t, domain.MoodExcited, nine.DominantMood)

	assert.Equal(t, 1, heatmap["12"].Total)
	assert.Equal(t, domain.MoodNeutral, heatmap["00"].DominantMood)
}

func TestOverallMood(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{
		msg("a", "lol"),
		msg("b", "haha nice"),
		msg("c", "wow"),
	})

	assert.Equal(t, domain.MoodAmused, s.Sentiment().OverallMood)
	assert.Equal(t, 2, s.Sentiment().Distributions[domain.MoodAmused])
	assert.Equal(t, 1, s.Sentiment().Distributions[domain.MoodExcited])
}

func TestBasicSentimentCounts(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{
		msg("a", "great 🎉"),
		msg("b", "oh no 😭"),
		msg("c", "plain text"),
	})

	b := s.Sentiment().BasicSentiment
	assert.Equal(t, 1, b.PositiveCount)
	assert.Equal(t, 1, b.NegativeCount)
	assert.Equal(t, 1, b.NeutralCount)
	assert.Equal(t, 3, b.TotalMessages)
}

func TestEngagementMetrics(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	ts := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	s.LoadBatch([]domain.InboundMessage{
		{Username: "alice", Text: "chess is fun", SentAt: &ts},
		{Username: "alice", Text: "another one"},
		msg("bob", "great game 🎉"),
	})

	m := s.Engagement()
	assert.Equal(t, 3, m.TotalMessages)
	assert.Equal(t, 2, m.UniqueUsers)
	assert.Equal(t, 1, m.EmojiMessages)
	assert.Equal(t, 1, m.TagDistribution["chess"])
	assert.Equal(t, 1, m.TagDistribution["game"])
	assert.Equal(t, 1, m.TagDistribution["reaction"])

	require.NotEmpty(t, m.MostActiveUsers)
	assert.Equal(t, domain.UserActivity{Username: "alice", Messages: 2}, m.MostActiveUsers[0])

	// Only the message with an inbound timestamp counts toward peaks.
	require.Len(t, m.PeakTimes, 1)
	assert.Equal(t, 14, m.PeakTimes[0].Hour)
	assert.Equal(t, 1, m.PeakTimes[0].MessageCount)
	assert.InDelta(t, 100.0, m.PeakTimes[0].Percentage, 0.001)
}

func TestMessagesByTag(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{
		msg("a", "chess opening"),
		msg("b", "nothing here"),
		msg("c", "chess endgame"),
	})

	byTag := s.MessagesByTag("chess")
	require.Len(t, byTag, 2)
	assert.Equal(t, "chess opening", byTag[0].Text)
	assert.Equal(t, "chess endgame", byTag[1].Text)
	assert.Empty(t, s.MessagesByTag("unknown"))
}

func TestRecentMessages(t *testing.T) {
	s := newTestStore(clockwork.NewFakeClock())

	s.LoadBatch([]domain.InboundMessage{msg("a", "one"), msg("b", "two"), msg("c", "three")})

	recent := s.RecentMessages(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Text)
	assert.Equal(t, "three", recent[1].Text)

	assert.Len(t, s.RecentMessages(10), 3)
	assert.Nil(t, s.RecentMessages(0))
}
