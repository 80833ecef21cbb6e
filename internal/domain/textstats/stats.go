package textstats

import (
	"strings"
	"unicode/utf8"
)

// Stats holds the counters shown under the input box.
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
}

// Compute derives Stats from raw input. Characters are counted on the untrimmed
// text; words and sentences are zero when the trimmed text is empty.
func Compute(text string) Stats {
	stats := Stats{Characters: utf8.RuneCountInString(text)}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return stats
	}
	stats.Words = len(strings.Fields(trimmed))
	stats.Sentences = countSentences(text)
	return stats
}

// MaxSentences is the upper bound for a requested summary length.
func MaxSentences(stats Stats) int {
	if stats.Sentences < 1 {
		return 1
	}
	return stats.Sentences
}

// Clamp constrains count into [1, MaxSentences(stats)].
func Clamp(count int, stats Stats) int {
	if count < 1 {
		return 1
	}
	if limit := MaxSentences(stats); count > limit {
		return limit
	}
	return count
}

func countSentences(text string) int {
	segments := strings.FieldsFunc(text, isTerminator)
	count := 0
	for _, segment := range segments {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
