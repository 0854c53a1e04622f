package chords

import "testing"

func TestTransposeChord(t *testing.T) {
	tests := []struct {
		chord    string
		steps    int
		expected string
	}{
		{"G", 2, "A"},
		{"Dm7", 1, "D#m7"},
		{"C/E", 3, "D#/G"},
		{"Xyz", 2, "Xyz"},
		{"Am7/G", -2, "Gm7/F"},
		{"Bbmaj7", 1, "Bmaj7"},
		{"F#m7(b5)", 1, "Gm7(b5)"},
		{"Csus4", 0, "Csus4"},
		{"Db/Ab", 0, "C#/G#"},
		{"C/E/G", 2, "C/E/G"},
		{"C)", 2, "D)"},
		{"", 4, ""},
		{"am", 2, "am"},
		{"G E", 2, "G E"},
	}

	for _, tt := range tests {
		result := TransposeChord(tt.chord, tt.steps)
		if result != tt.expected {
			t.Errorf("TransposeChord(%q, %d) = %q, expected %q", tt.chord, tt.steps, result, tt.expected)
		}
	}
}

func TestParseChord(t *testing.T) {
	c, ok := ParseChord("Am7/G#9")
	if !ok {
		t.Fatal("expected Am7/G#9 to parse")
	}
	want := Chord{Root: "A", Suffix: "m7", Slash: "/", Bass: "G#", BassSuffix: "9"}
	if c != want {
		t.Errorf("ParseChord = %+v, expected %+v", c, want)
	}
	if c.String() != "Am7/G#9" {
		t.Errorf("String() = %q", c.String())
	}

	if _, ok := ParseChord("Verse"); ok {
		t.Error("expected Verse not to parse")
	}
}

func TestChordTransposeWithoutBass(t *testing.T) {
	c, _ := ParseChord("Em")
	got := c.Transpose(5)
	if got.Bass != "" || got.Slash != "" {
		t.Errorf("transpose should not invent a bass: %+v", got)
	}
	if got.String() != "Am" {
		t.Errorf("expected Am, got %s", got.String())
	}
}
