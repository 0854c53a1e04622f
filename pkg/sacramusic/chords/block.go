package chords

import (
	"regexp"
	"strings"
)

// Mode selects which text of a song is shown and whether it transposes.
type Mode string

const (
	ModeLyrics Mode = "lyrics"
	ModeChords Mode = "chords"
)

// ParseMode converts a user-supplied mode name.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLyrics:
		return ModeLyrics, true
	case ModeChords:
		return ModeChords, true
	}
	return "", false
}

// Line is one rendered row of a text block.
type Line struct {
	Text    string `json:"text"`
	IsChord bool   `json:"isChordLine"`
}

var keyRootPattern = regexp.MustCompile(`^[A-G][#b]?`)

// TransposeBlock splits text on line breaks and returns one Line per input
// line, in order. Chord lines are transposed by offset only in chords mode;
// everything else is returned verbatim. An offset of 0 always reproduces
// the input text.
func TransposeBlock(text string, mode Mode, offset int) []Line {
	rows := strings.Split(text, "\n")
	lines := make([]Line, len(rows))

	if mode != ModeChords || offset == 0 {
		for i, row := range rows {
			lines[i] = Line{Text: row, IsChord: IsChordLine(row)}
		}
		return lines
	}

	for i, row := range rows {
		if !IsChordLine(row) {
			lines[i] = Line{Text: row}
			continue
		}
		lines[i] = Line{Text: TransposeLine(row, offset), IsChord: true}
	}
	return lines
}

// TransposeLine transposes every chord token in line and leaves the spans
// between them (usually alignment whitespace) untouched. It does not check
// whether line is a chord line.
func TransposeLine(line string, offset int) string {
	return tokenPattern.ReplaceAllStringFunc(line, func(match string) string {
		return TransposeChord(match, offset)
	})
}

// JoinLines reassembles rendered lines into a text block.
func JoinLines(lines []Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// TransposeKey shifts the leading note of a key such as "Am" or "F#7",
// keeping the remainder. Keys without a leading note are returned unchanged.
func TransposeKey(key string, offset int) string {
	root := keyRootPattern.FindString(key)
	if root == "" {
		return key
	}
	return TransposeNote(root, offset) + key[len(root):]
}
