package signals

import "github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"

// DefaultConfig returns the stock rule tables. The tag keyword table here
// suits a chess/gaming stream; production deployments pass their own.
func DefaultConfig() Config {
	return Config{
		TagRules: []TagRule{
			{Name: "chess", Keywords: []string{"chess"}},
			{Name: "game", Keywords: []string{"game"}},
			{Name: "technical", Keywords: []string{"video", "stream", "quality"}},
			{Name: "entertainment", Keywords: []string{"bheem", "kaliya"}},
		},
		ReactionTag: "reaction",
		EmojiRanges: []RuneRange{
			{Lo: 0x1F300, Hi: 0x1F9FF},
		},
		MoodEmojis: map[domain.Mood][]string{
			domain.MoodExcited:    {"🔥", "💯", "🤩", "⚡", "🎉", "🎊", "🥳"},
			domain.MoodAmused:     {"😂", "🤣", "😅", "😆", "😄", "😃"},
			domain.MoodHappy:      {"😊", "🙂", "😌", "👍", "♥️", "❤️"},
			domain.MoodConcerned:  {"😕", "😟", "😨", "😰", "😥"},
			domain.MoodFrustrated: {"😤", "😠", "😡", "🤬", "👎"},
			domain.MoodSad:        {"😢", "😭", "😞", "😔", "💔"},
			domain.MoodNeutral:    {"🤔", "😐", "😶"},
		},
		MoodKeywords: map[domain.Mood][]string{
			domain.MoodAmused:    {"lol", "haha", "lmao"},
			domain.MoodExcited:   {"wow", "amazing", "awesome"},
			domain.MoodConcerned: {"please", "help", "why"},
		},
		PositiveEmojis: []string{"😊", "😄", "😃", "🤣", "😂", "👍", "♥️", "❤️", "🔥", "💯", "🤩", "⚡", "🎉"},
		NegativeEmojis: []string{"😢", "😭", "😤", "😠", "😡", "👎", "💔", "😕", "😟", "😨"},
	}
}
