package chords

import (
	"regexp"
	"strings"
	"unicode"
)

// Classification thresholds. Stored songs were styled with these values, so
// they are fixed rather than configurable.
const (
	chordRatioThreshold = 0.4
	shortLineTokens     = 3
)

var chordTokenPattern = regexp.MustCompile(`^[A-G]([b#])?((m|maj|min|sus|dim|aug|add)?[0-9]*)?(/[A-G]([b#])?)?$`)

var tokenCleaner = strings.NewReplacer("(", "", ")", "", ",", "")

// isSpace reports whether r is whitespace in the JavaScript \s sense.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// IsChordToken reports whether a single whitespace-free token is a chord
// once parentheses and commas are stripped.
func IsChordToken(token string) bool {
	return chordTokenPattern.MatchString(tokenCleaner.Replace(token))
}

// IsChordLine guesses whether line is a row of chords rather than lyrics.
//
// A line is a chord line when more than 40% of its tokens are chords, or
// when it has fewer than three tokens and at least one of them is a chord.
func IsChordLine(line string) bool {
	trimmed := strings.TrimFunc(line, isSpace)
	if trimmed == "" {
		return false
	}

	tokens := strings.FieldsFunc(trimmed, isSpace)
	chordCount := 0
	for _, token := range tokens {
		if IsChordToken(token) {
			chordCount++
		}
	}

	ratio := float64(chordCount) / float64(len(tokens))
	return ratio > chordRatioThreshold || (chordCount > 0 && len(tokens) < shortLineTokens)
}
