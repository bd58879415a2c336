package domain

// Mood is one label from the fixed mood vocabulary describing the emotional
// tone of a message.
type Mood string

const (
	MoodExcited    Mood = "excited"
	MoodAmused     Mood = "amused"
	MoodHappy      Mood = "happy"
	MoodConcerned  Mood = "concerned"
	MoodFrustrated Mood = "frustrated"
	MoodSad        Mood = "sad"
	MoodNeutral    Mood = "neutral"
)

// Moods lists all moods in canonical enumeration order. Mood tables are
// checked in this order, so multi-match results and argmax tie-breaks are
// deterministic.
var Moods = []Mood{
	MoodExcited,
	MoodAmused,
	MoodHappy,
	MoodConcerned,
	MoodFrustrated,
	MoodSad,
	MoodNeutral,
}

// Sentiment is the coarse three-way classification derived from emojis alone.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)
