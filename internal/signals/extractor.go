// Package signals provides pure lexical extraction over chat message text:
// tags, emojis, moods and basic sentiment. No state beyond the configured
// rule tables.
package signals

import (
	"strings"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

// TagRule is one lexical category rule. A rule matches when any of its
// keywords occurs as a substring of the lowercased message text.
type TagRule struct {
	Name     string
	Keywords []string
}

// RuneRange is an inclusive Unicode codepoint range.
type RuneRange struct {
	Lo, Hi rune
}

// Config holds the rule and indicator tables driving extraction. The tables
// are configuration, not behavior: deployments supply their own keyword
// tables for the stream's domain.
type Config struct {
	TagRules       []TagRule
	ReactionTag    string
	EmojiRanges    []RuneRange
	MoodEmojis     map[domain.Mood][]string
	MoodKeywords   map[domain.Mood][]string
	PositiveEmojis []string
	NegativeEmojis []string
}

// Extractor evaluates the configured tables against message text.
type Extractor struct {
	cfg            Config
	moodEmojis     map[domain.Mood]map[string]struct{}
	positiveEmojis map[string]struct{}
	negativeEmojis map[string]struct{}
}

func NewExtractor(cfg Config) *Extractor {
	e := &Extractor{
		cfg:            cfg,
		moodEmojis:     make(map[domain.Mood]map[string]struct{}, len(cfg.MoodEmojis)),
		positiveEmojis: toSet(cfg.PositiveEmojis),
		negativeEmojis: toSet(cfg.NegativeEmojis),
	}
	for mood, emojis := range cfg.MoodEmojis {
		e.moodEmojis[mood] = toSet(emojis)
	}
	return e
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Emojis returns the distinct emojis found in text, in first-occurrence
// order. Only codepoints inside the configured ranges count as emojis.
func (e *Extractor) Emojis(text string) []string {
	var found []string
	seen := make(map[rune]struct{})
	for _, r := range text {
		if !e.isEmoji(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		found = append(found, string(r))
	}
	return found
}

func (e *Extractor) isEmoji(r rune) bool {
	for _, rng := range e.cfg.EmojiRanges {
		if r >= rng.Lo && r <= rng.Hi {
			return true
		}
	}
	return false
}

// Tags evaluates every tag rule independently against the lowercased text
// and returns the names of matching rules. Rules are non-exclusive; the
// reaction tag fires on emoji presence.
func (e *Extractor) Tags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, rule := range e.cfg.TagRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.Name)
				break
			}
		}
	}
	if e.cfg.ReactionTag != "" && len(e.Emojis(text)) > 0 {
		tags = append(tags, e.cfg.ReactionTag)
	}
	return tags
}

// Moods detects the moods of a message. The emoji indicator table is checked
// first, in canonical mood order, collecting every matching mood. Only when
// the emoji tier matches nothing is the keyword table consulted, under the
// same multi-match policy. A message with no match resolves to [neutral].
// The emoji-over-keyword priority is a deliberate policy, not incidental.
func (e *Extractor) Moods(text string) []domain.Mood {
	emojis := e.Emojis(text)

	var detected []domain.Mood
	for _, mood := range domain.Moods {
		indicators, ok := e.moodEmojis[mood]
		if !ok {
			continue
		}
		for _, emoji := range emojis {
			if _, match := indicators[emoji]; match {
				detected = append(detected, mood)
				break
			}
		}
	}

	if len(detected) == 0 {
		lower := strings.ToLower(text)
		for _, mood := range domain.Moods {
			for _, kw := range e.cfg.MoodKeywords[mood] {
				if strings.Contains(lower, kw) {
					detected = append(detected, mood)
					break
				}
			}
		}
	}

	if len(detected) == 0 {
		detected = []domain.Mood{domain.MoodNeutral}
	}
	return detected
}

// BasicSentiment classifies a message's emoji set as positive, negative or
// neutral. Positive is checked first and wins ties; the checks are mutually
// exclusive.
func (e *Extractor) BasicSentiment(emojis []string) domain.Sentiment {
	for _, emoji := range emojis {
		if _, ok := e.positiveEmojis[emoji]; ok {
			return domain.SentimentPositive
		}
	}
	for _, emoji := range emojis {
		if _, ok := e.negativeEmojis[emoji]; ok {
			return domain.SentimentNegative
		}
	}
	return domain.SentimentNeutral
}
