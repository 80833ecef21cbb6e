package util

import (
	"strings"
	"time"
	"unicode/utf8"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Excerpt collapses whitespace and cuts text to at most maxRunes code points,
// marking a cut with an ellipsis.
func Excerpt(text string, maxRunes int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if maxRunes <= 0 || utf8.RuneCountInString(collapsed) <= maxRunes {
		return collapsed
	}
	runes := []rune(collapsed)
	if maxRunes == 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:maxRunes-1]), " ") + "…"
}
