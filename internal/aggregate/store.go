// Package aggregate holds the per-session message log and its derived
// rollups. The store is a pure incremental accumulator: batches are appended
// in arrival order and every rollup is recomputed from the full log, so a
// query always reflects the whole session.
//
// All methods assume a single logical owner; the session serialises access.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/signals"
)

const (
	defaultTrendingLimit  = 10
	defaultMinTokenLength = 3
	keywordsPerMood       = 2
	topKeywordsLimit      = 3
	mostActiveLimit       = 5
	peakTimesLimit        = 3
)

// Config tunes the rollup computation.
type Config struct {
	StopWords      []string
	MinTokenLength int
}

// DefaultConfig returns the stock stop-word set and token length threshold.
func DefaultConfig() Config {
	return Config{
		StopWords:      []string{"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for"},
		MinTokenLength: defaultMinTokenLength,
	}
}

// Store accumulates processed messages and derived rollups for one stream
// session. The log is unbounded, in-memory and append-only for the session
// lifetime.
type Store struct {
	clock       clockwork.Clock
	extractor   *signals.Extractor
	stopWords   map[string]struct{}
	minTokenLen int

	messages []domain.Message
	nextID   int

	trending   []domain.TrendingTopic
	sentiment  domain.SentimentReport
	engagement domain.EngagementMetrics
	tagGroups  map[string][]int
}

func NewStore(extractor *signals.Extractor, cfg Config, clock clockwork.Clock) *Store {
	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[w] = struct{}{}
	}
	s := &Store{
		clock:       clock,
		extractor:   extractor,
		stopWords:   stop,
		minTokenLen: cfg.MinTokenLength,
		tagGroups:   make(map[string][]int),
	}
	s.recompute()
	return s
}

// LoadBatch assigns sequence ids and a receipt timestamp to each valid
// message, derives tags/emojis/moods, appends to the log and recomputes the
// rollups. Malformed messages (missing username or text) are dropped and the
// rest of the batch continues. Returns the processed messages.
func (s *Store) LoadBatch(batch []domain.InboundMessage) []domain.Message {
	now := s.clock.Now()
	processed := make([]domain.Message, 0, len(batch))
	for _, in := range batch {
		if !in.Valid() {
			continue
		}
		emojis := s.extractor.Emojis(in.Text)
		msg := domain.Message{
			ID:         s.nextID,
			Username:   in.Username,
			Text:       in.Text,
			ReceivedAt: now,
			SentAt:     in.SentAt,
			HasEmoji:   len(emojis) > 0,
			Tags:       s.extractor.Tags(in.Text),
			Emojis:     emojis,
			Moods:      s.extractor.Moods(in.Text),
		}
		s.nextID++
		s.messages = append(s.messages, msg)
		processed = append(processed, msg)
	}
	if len(processed) > 0 {
		s.recompute()
	}
	return processed
}

// TotalMessages returns the session log length.
func (s *Store) TotalMessages() int {
	return len(s.messages)
}

// RecentMessages returns up to n messages from the tail of the log, oldest
// first.
func (s *Store) RecentMessages(n int) []domain.Message {
	if n <= 0 || len(s.messages) == 0 {
		return nil
	}
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]domain.Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// MessagesByTag returns the messages carrying the given tag, in log order.
func (s *Store) MessagesByTag(tag string) []domain.Message {
	indices := s.tagGroups[tag]
	out := make([]domain.Message, 0, len(indices))
	for _, i := range indices {
		out = append(out, s.messages[i])
	}
	return out
}

// TrendingTopics returns the top-limit tokens by frequency, ties broken by
// first-seen order. Limit <= 0 uses the default of 10.
func (s *Store) TrendingTopics(limit int) []domain.TrendingTopic {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > len(s.trending) {
		limit = len(s.trending)
	}
	out := make([]domain.TrendingTopic, limit)
	copy(out, s.trending[:limit])
	return out
}

// Sentiment returns the lexical sentiment rollup (distributions, keywords,
// overall mood, heatmap, basic counts). The Generated field is left nil; the
// refresh cycle fills it from the collaborator.
func (s *Store) Sentiment() domain.SentimentReport {
	return s.sentiment
}

// Engagement returns the engagement metrics rollup. Zero-valued for an empty
// log, never an error.
func (s *Store) Engagement() domain.EngagementMetrics {
	return s.engagement
}

// --- rollup recomputation ---

func (s *Store) recompute() {
	s.recomputeTagGroups()
	s.recomputeTrending()
	s.recomputeSentiment()
	s.recomputeEngagement()
}

func (s *Store) recomputeTagGroups() {
	groups := make(map[string][]int)
	for i, msg := range s.messages {
		for _, tag := range msg.Tags {
			groups[tag] = append(groups[tag], i)
		}
	}
	s.tagGroups = groups
}

func (s *Store) recomputeTrending() {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, msg := range s.messages {
		for _, token := range strings.Fields(strings.ToLower(msg.Text)) {
			if len([]rune(token)) <= s.minTokenLen {
				continue
			}
			if _, stop := s.stopWords[token]; stop {
				continue
			}
			if _, seen := counts[token]; !seen {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	trending := make([]domain.TrendingTopic, 0, len(counts))
	for token, count := range counts {
		trending = append(trending, domain.TrendingTopic{Topic: token, Count: count})
	}
	sort.Slice(trending, func(i, j int) bool {
		if trending[i].Count != trending[j].Count {
			return trending[i].Count > trending[j].Count
		}
		return firstSeen[trending[i].Topic] < firstSeen[trending[j].Topic]
	})
	s.trending = trending
}

func (s *Store) recomputeSentiment() {
	distributions := make(map[domain.Mood]int)
	rawKeywords := make(map[domain.Mood][]string)

	for _, msg := range s.messages {
		words := moodKeywordCandidates(msg.Text, s.minTokenLen)
		for _, mood := range msg.Moods {
			distributions[mood]++
			rawKeywords[mood] = append(rawKeywords[mood], words...)
		}
	}

	keywords := make(map[domain.Mood][]string, len(rawKeywords))
	for mood, words := range rawKeywords {
		keywords[mood] = topKeywords(words, topKeywordsLimit)
	}

	s.sentiment = domain.SentimentReport{
		Distributions:  distributions,
		MoodKeywords:   keywords,
		OverallMood:    overallMood(distributions),
		MoodHeatmap:    s.moodHeatmap(),
		BasicSentiment: s.basicSentiment(),
	}
}

// moodKeywordCandidates returns up to keywordsPerMood leading words longer
// than the token threshold, in original casing.
func moodKeywordCandidates(text string, minLen int) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) > minLen {
			words = append(words, w)
			if len(words) == keywordsPerMood {
				break
			}
		}
	}
	return words
}

func topKeywords(words []string, limit int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if _, seen := counts[w]; !seen {
			firstSeen[w] = i
		}
		counts[w]++
	}
	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})
	if limit > len(unique) {
		limit = len(unique)
	}
	return unique[:limit]
}

// overallMood is the argmax over the session mood distribution, ties broken
// by canonical mood order. Empty distribution yields the empty mood.
func overallMood(distributions map[domain.Mood]int) domain.Mood {
	var best domain.Mood
	bestCount := 0
	for _, mood := range domain.Moods {
		if count := distributions[mood]; count > bestCount {
			best = mood
			bestCount = count
		}
	}
	return best
}

// moodHeatmap buckets messages into the 24 hour-of-day slots ("00".."23")
// of the local clock. The slots partition the log: the bucket totals always
// sum to the message count.
func (s *Store) moodHeatmap() map[string]domain.HeatmapSlot {
	slots := make(map[string]domain.HeatmapSlot, 24)
	for hour := 0; hour < 24; hour++ {
		slots[fmt.Sprintf("%02d", hour)] = domain.HeatmapSlot{
			Moods:        map[domain.Mood]int{},
			DominantMood: domain.MoodNeutral,
		}
	}

	for _, msg := range s.messages {
		key := msg.ReceivedAt.Format("15")
		slot := slots[key]
		slot.Total++
		for _, mood := range msg.Moods {
			slot.Moods[mood]++
		}
		slots[key] = slot
	}

	for key, slot := range slots {
		slot.Intensity = slot.Total
		if dominant := overallMood(slot.Moods); dominant != "" {
			slot.DominantMood = dominant
		}
		slots[key] = slot
	}
	return slots
}

func (s *Store) basicSentiment() domain.BasicSentiment {
	var b domain.BasicSentiment
	for _, msg := range s.messages {
		switch s.extractor.BasicSentiment(msg.Emojis) {
		case domain.SentimentPositive:
			b.PositiveCount++
		case domain.SentimentNegative:
			b.NegativeCount++
		default:
			b.NeutralCount++
		}
	}
	b.TotalMessages = len(s.messages)
	return b
}

func (s *Store) recomputeEngagement() {
	userCounts := make(map[string]int)
	userFirst := make(map[string]int)
	emojiMessages := 0
	hourCounts := make(map[int]int)
	timestamped := 0

	for i, msg := range s.messages {
		if _, seen := userCounts[msg.Username]; !seen {
			userFirst[msg.Username] = i
		}
		userCounts[msg.Username]++
		if msg.HasEmoji {
			emojiMessages++
		}
		if msg.SentAt != nil {
			hourCounts[msg.SentAt.Hour()]++
			timestamped++
		}
	}

	tagDistribution := make(map[string]int, len(s.tagGroups))
	for tag, indices := range s.tagGroups {
		tagDistribution[tag] = len(indices)
	}

	s.engagement = domain.EngagementMetrics{
		TotalMessages:   len(s.messages),
		UniqueUsers:     len(userCounts),
		EmojiMessages:   emojiMessages,
		TagDistribution: tagDistribution,
		MostActiveUsers: mostActive(userCounts, userFirst, mostActiveLimit),
		PeakTimes:       peakTimes(hourCounts, timestamped, peakTimesLimit),
	}
}

func mostActive(counts map[string]int, first map[string]int, limit int) []domain.UserActivity {
	users := make([]domain.UserActivity, 0, len(counts))
	for name, count := range counts {
		users = append(users, domain.UserActivity{Username: name, Messages: count})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Messages != users[j].Messages {
			return users[i].Messages > users[j].Messages
		}
		return first[users[i].Username] < first[users[j].Username]
	})
	if limit > len(users) {
		limit = len(users)
	}
	return users[:limit]
}

// peakTimes ranks hours by message count over the messages that carried an
// inbound timestamp. Messages without one are excluded entirely.
func peakTimes(hourCounts map[int]int, total, limit int) []domain.PeakTime {
	if total == 0 {
		return nil
	}
	peaks := make([]domain.PeakTime, 0, len(hourCounts))
	for hour, count := range hourCounts {
		peaks = append(peaks, domain.PeakTime{
			Hour:         hour,
			MessageCount: count,
			Percentage:   float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].MessageCount != peaks[j].MessageCount {
			return peaks[i].MessageCount > peaks[j].MessageCount
		}
		return peaks[i].Hour < peaks[j].Hour
	})
	if limit > len(peaks) {
		limit = len(peaks)
	}
	return peaks[:limit]
}
