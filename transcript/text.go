package transcript

import (
	"regexp"
	"strings"

	"lessonbot/config"
)

var (
	bracketedRe   = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctSpaceRe  = regexp.MustCompile(`\s+([.,!?;:])`)
	wordCharRe    = regexp.MustCompile(`\w`)
)

// Validate reports whether text is usable as a lesson source: at least
// 100 characters after trimming, containing at least one word character.
func Validate(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < config.MinTranscriptChars {
		return false
	}
	return wordCharRe.MatchString(trimmed)
}

// Clean normalizes formatting artifacts without touching word content:
// bracketed and parenthetical annotations (stage directions, [Music] tags)
// are dropped, whitespace runs collapse to single spaces, and stray spaces
// before punctuation are removed.
func Clean(text string) string {
	cleaned := bracketedRe.ReplaceAllString(text, " ")
	cleaned = parentheticRe.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = punctSpaceRe.ReplaceAllString(cleaned, "$1")
	return strings.TrimSpace(cleaned)
}
