package domain

// TrendingTopic is a token surviving stop-word and length filtering, ranked
// by raw frequency across the session log.
type TrendingTopic struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// HeatmapSlot is one hour-of-day bucket of the mood heatmap.
type HeatmapSlot struct {
	Total        int          `json:"total"`
	Moods        map[Mood]int `json:"moods"`
	DominantMood Mood         `json:"dominant_mood"`
	Intensity    int          `json:"intensity"`
}

// BasicSentiment holds the emoji-derived three-way sentiment counts.
type BasicSentiment struct {
	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`
	TotalMessages int `json:"total_messages"`
}

// SentimentTopic is one topic entry of the generated sentiment analysis.
type SentimentTopic struct {
	Topic     string `json:"topic"`
	Sentiment string `json:"sentiment"`
}

// GeneratedSentiment is the free-form sentiment analysis produced by the
// text-generation collaborator. Nil in the snapshot when the call failed.
type GeneratedSentiment struct {
	Score    float64          `json:"score"`
	Positive float64          `json:"positive"`
	Negative float64          `json:"negative"`
	Topics   []SentimentTopic `json:"topics"`
}

// SentimentReport combines the lexical mood rollups with the generated
// analysis.
type SentimentReport struct {
	Distributions  map[Mood]int           `json:"distributions"`
	MoodKeywords   map[Mood][]string      `json:"mood_keywords"`
	OverallMood    Mood                   `json:"overall_mood"`
	MoodHeatmap    map[string]HeatmapSlot `json:"mood_heatmap"`
	BasicSentiment BasicSentiment         `json:"basic_sentiment"`
	Generated      *GeneratedSentiment    `json:"generated,omitempty"`
}

// UserActivity is one entry of the most-active-users ranking.
type UserActivity struct {
	Username string `json:"username"`
	Messages int    `json:"messages"`
}

// PeakTime is one entry of the peak-activity ranking. Percentage is relative
// to the number of messages that carried an inbound timestamp.
type PeakTime struct {
	Hour         int     `json:"hour"`
	MessageCount int     `json:"message_count"`
	Percentage   float64 `json:"percentage"`
}

// EngagementMetrics summarises session activity.
type EngagementMetrics struct {
	TotalMessages   int            `json:"total_messages"`
	UniqueUsers     int            `json:"active_users"`
	EmojiMessages   int            `json:"emoji_messages"`
	TagDistribution map[string]int `json:"tag_distribution"`
	MostActiveUsers []UserActivity `json:"most_active_users"`
	PeakTimes       []PeakTime     `json:"peak_times"`
}

// Snapshot is the cached insight tuple external callers observe. Overwritten
// atomically at refresh boundaries, never partially updated.
type Snapshot struct {
	Polls      []Poll            `json:"polls"`
	QA         []QuestionCluster `json:"qa"`
	Sentiment  SentimentReport   `json:"sentiment"`
	Highlights []Highlight       `json:"highlights"`
	Metrics    EngagementMetrics `json:"metrics"`
}
