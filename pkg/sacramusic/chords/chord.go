package chords

import "regexp"

// jsSpace is the character class JavaScript's \s matches. Go's \s is ASCII
// only, so a non-breaking space would otherwise be swallowed into a suffix.
const jsSpace = `\s\v\p{Z}\x{FEFF}`

var (
	// chordPattern captures root, suffix, slash, bass and bass suffix of a
	// single isolated chord token.
	chordPattern = regexp.MustCompile(`^([A-G][#b]?)([^/` + jsSpace + `]*)(/)?([A-G][#b]?)?([^/` + jsSpace + `]*)?$`)

	// tokenPattern finds chord tokens inside a chord line.
	tokenPattern = regexp.MustCompile(`([A-G][#b]?)([^/` + jsSpace + `]*)(/[A-G][#b]?)?([^/` + jsSpace + `]*)?`)
)

// Chord is a parsed chord symbol.
type Chord struct {
	Root       string
	Suffix     string
	Slash      string
	Bass       string
	BassSuffix string
}

// ParseChord splits a single chord token into its parts. ok is false when
// the token does not have the shape of a chord.
func ParseChord(chord string) (c Chord, ok bool) {
	m := chordPattern.FindStringSubmatch(chord)
	if m == nil {
		return Chord{}, false
	}
	return Chord{
		Root:       m[1],
		Suffix:     m[2],
		Slash:      m[3],
		Bass:       m[4],
		BassSuffix: m[5],
	}, true
}

// String reassembles the chord. Suffixes and the slash are kept verbatim.
func (c Chord) String() string {
	return c.Root + c.Suffix + c.Slash + c.Bass + c.BassSuffix
}

// Transpose moves the root and the bass note by steps semitones.
func (c Chord) Transpose(steps int) Chord {
	c.Root = TransposeNote(c.Root, steps)
	if c.Bass != "" {
		c.Bass = TransposeNote(c.Bass, steps)
	}
	return c
}

// TransposeChord transposes one chord token, e.g. "C/E" by 3 gives "D#/G".
// Text that is not a chord is returned unchanged.
func TransposeChord(chord string, steps int) string {
	c, ok := ParseChord(chord)
	if !ok {
		return chord
	}
	return c.Transpose(steps).String()
}
