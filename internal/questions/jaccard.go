package questions

import (
	"strings"
	"unicode"
)

// tokenize lowercases the text, strips punctuation and splits on whitespace,
// returning the word set.
func tokenize(text string) map[string]struct{} {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)

	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(cleaned) {
		tokens[w] = struct{}{}
	}
	return tokens
}

// jaccard computes |intersection| / |union| over two word sets, treating an
// empty union as similarity 0.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
