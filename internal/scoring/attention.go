package scoring

import (
	"strings"
	"unicode"
)

var clickbaitPhrases = []string{
	"you won't believe",
	"shocking",
	"stunning",
	"breaking",
	"what happens next",
	"goes viral",
	"must see",
	"jaw-dropping",
	"slams",
	"destroys",
	"explosive",
}

// Attention scores how hard a set of headlines is trying to grab the reader:
// punctuation intensity (capped), ALL-CAPS token density, and clickbait
// phrases. The per-headline score is already on 0..10, so the average is
// clamped directly with no further range mapping.
func Attention(headlines []string) float64 {
	if len(headlines) == 0 {
		return Neutral
	}
	var sum float64
	for _, h := range headlines {
		sum += headlineAttention(h)
	}
	avg := sum / float64(len(headlines))
	return Round2(Normalize(avg, 0, 10, 0, 10))
}

func headlineAttention(headline string) float64 {
	// Punctuation: each ! or ? adds 1.5, capped at 4.
	marks := strings.Count(headline, "!") + strings.Count(headline, "?")
	punct := float64(marks) * 1.5
	if punct > 4 {
		punct = 4
	}

	// ALL-CAPS token density contributes up to 4.
	tokens := strings.Fields(headline)
	caps := 0
	for _, tok := range tokens {
		if isShoutyToken(tok) {
			caps++
		}
	}
	var capsScore float64
	if len(tokens) > 0 {
		capsScore = float64(caps) / float64(len(tokens)) * 4
	}

	// Clickbait phrase presence contributes a flat 2.
	var bait float64
	lower := strings.ToLower(headline)
	for _, phrase := range clickbaitPhrases {
		if strings.Contains(lower, phrase) {
			bait = 2
			break
		}
	}

	return punct + capsScore + bait
}

// isShoutyToken reports whether a token is an all-uppercase word of at least
// two letters. Short acronyms like "US" count; single letters do not.
func isShoutyToken(tok string) bool {
	letters := 0
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}
