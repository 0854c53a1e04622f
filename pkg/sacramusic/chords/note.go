// Package chords transposes chord symbols and detects chord rows inside
// mixed chords/lyrics text. Every function is pure and total: input that
// does not fit the chord grammar is returned unchanged.
package chords

// Notes is the chromatic scale starting at C, spelled with sharps.
var Notes = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// flats maps the accepted flat spellings to their sharp equivalents.
var flats = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
	"Cb": "B",
}

// NormalizeNote returns the sharp spelling of a flat note, or the note as given.
func NormalizeNote(note string) string {
	if sharp, ok := flats[note]; ok {
		return sharp
	}
	return note
}

// NoteIndex returns the position of note in Notes after flat normalization,
// or -1 when the note is not recognized.
func NoteIndex(note string) int {
	norm := NormalizeNote(note)
	for i, n := range Notes {
		if n == norm {
			return i
		}
	}
	return -1
}

// TransposeNote shifts note by semitones, wrapping modulo 12. Unrecognized
// notes are returned unchanged.
func TransposeNote(note string, semitones int) string {
	idx := NoteIndex(note)
	if idx == -1 {
		return note
	}
	newIdx := (idx + semitones%12) % 12
	if newIdx < 0 {
		newIdx += 12
	}
	return Notes[newIdx]
}
