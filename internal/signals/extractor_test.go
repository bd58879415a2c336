package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

func newTestExtractor() *Extractor {
	return NewExtractor(DefaultConfig())
}

func TestEmojis(t *testing.T) {
	e := newTestExtractor()

	t.Run("finds emojis in configured range", func(t *testing.T) {
		assert.Equal(t, []string{"🔥", "😂"}, e.Emojis("this is 🔥 lol 😂"))
	})

	t.Run("deduplicates repeated emojis", func(t *testing.T) {
		assert.Equal(t, []string{"🔥"}, e.Emojis("🔥🔥🔥"))
	})

	t.Run("empty for plain text", func(t *testing.T) {
		assert.Empty(t, e.Emojis("no emojis here"))
	})

	t.Run("ignores codepoints outside range", func(t *testing.T) {
		// Heart with variation selector sits below U+1F300.
		assert.Empty(t, e.Emojis("❤️"))
	})
}

func TestTags(t *testing.T) {
	e := newTestExtractor()

	t.Run("rules are non-exclusive", func(t *testing.T) {
		tags := e.Tags("nice chess game today")
		assert.Equal(t, []string{"chess", "game"}, tags)
	})

	t.Run("keyword match is case-insensitive substring", func(t *testing.T) {
		assert.Equal(t, []string{"technical"}, e.Tags("the STREAM quality dropped"))
	})

	t.Run("reaction tag fires on emoji presence", func(t *testing.T) {
		assert.Equal(t, []string{"reaction"}, e.Tags("🎉"))
	})

	t.Run("no match yields no tags", func(t *testing.T) {
		assert.Empty(t, e.Tags("hello there"))
	})
}

func TestMoods(t *testing.T) {
	e := newTestExtractor()

	t.Run("emoji tier wins over keyword tier", func(t *testing.T) {
		// "please" is a concerned keyword, but the emoji tier already
		// matched so the keyword table is not consulted.
		moods := e.Moods("please 🔥")
		assert.Equal(t, []domain.Mood{domain.MoodExcited}, moods)
	})

	t.Run("multiple emoji sets yield multiple moods in order", func(t *testing.T) {
		moods := e.Moods("😂 and 🔥")
		assert.Equal(t, []domain.Mood{domain.MoodExcited, domain.MoodAmused}, moods)
	})

	t.Run("keyword tier used when no emoji matched", func(t *testing.T) {
		moods := e.Moods("wow that was amazing")
		assert.Equal(t, []domain.Mood{domain.MoodExcited}, moods)
	})

	t.Run("defaults to neutral", func(t *testing.T) {
		moods := e.Moods("just a message")
		assert.Equal(t, []domain.Mood{domain.MoodNeutral}, moods)
	})
}

func TestBasicSentiment(t *testing.T) {
	e := newTestExtractor()

	t.Run("positive wins ties", func(t *testing.T) {
		// 😂 is positive, 😢 negative; positive is checked first.
		s := e.BasicSentiment([]string{"😢", "😂"})
		assert.Equal(t, domain.SentimentPositive, s)
	})

	t.Run("negative when only negative present", func(t *testing.T) {
		assert.Equal(t, domain.SentimentNegative, e.BasicSentiment([]string{"😭"}))
	})

	t.Run("neutral for no classified emojis", func(t *testing.T) {
		assert.Equal(t, domain.SentimentNeutral, e.BasicSentiment([]string{"🤔"}))
		assert.Equal(t, domain.SentimentNeutral, e.BasicSentiment(nil))
	})
}
