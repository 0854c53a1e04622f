package chords

import (
	"math"
	"testing"
)

func TestTransposeNote(t *testing.T) {
	tests := []struct {
		note      string
		semitones int
		expected  string
	}{
		{"C", 0, "C"},
		{"C", 1, "C#"},
		{"B", 1, "C"},
		{"C", -1, "B"},
		{"A", 3, "C"},
		{"E", 13, "F"},
		{"E", -13, "D#"},
		{"G", 120, "G"},
		{"Db", 0, "C#"},
		{"Eb", 2, "F"},
		{"Gb", -1, "F"},
		{"Ab", 1, "A"},
		{"Bb", 1, "B"},
		{"Cb", 0, "B"},
		{"H", 2, "H"},
		{"Fb", 1, "Fb"},
		{"c", 1, "c"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		result := TransposeNote(tt.note, tt.semitones)
		if result != tt.expected {
			t.Errorf("TransposeNote(%q, %d) = %q, expected %q", tt.note, tt.semitones, result, tt.expected)
		}
	}
}

func TestTransposeNoteRoundTrip(t *testing.T) {
	for _, n := range Notes {
		for k := -30; k <= 30; k++ {
			if got := TransposeNote(TransposeNote(n, k), -k); got != n {
				t.Errorf("round trip of %s by %d gave %s", n, k, got)
			}
		}
		for _, k := range []int{math.MaxInt, math.MinInt, math.MaxInt - 5, math.MinInt + 7} {
			if got := TransposeNote(TransposeNote(n, k), -(k % 12)); got != n {
				t.Errorf("round trip of %s by %d gave %s", n, k, got)
			}
		}
		if got := TransposeNote(TransposeNote(n, math.MaxInt), -math.MaxInt); got != n {
			t.Errorf("round trip of %s by MaxInt gave %s", n, got)
		}
	}
}

func TestTransposeNoteExtremeOffsets(t *testing.T) {
	tests := []struct {
		note      string
		semitones int
		expected  string
	}{
		{"C#", math.MaxInt, "G#"},
		{"C", math.MaxInt, "G"},
		{"C", math.MinInt, "E"},
		{"A", math.MinInt, "C#"},
		{"Bb", math.MaxInt - 7, "A#"},
	}
	for _, tt := range tests {
		if got := TransposeNote(tt.note, tt.semitones); got != tt.expected {
			t.Errorf("TransposeNote(%q, %d) = %q, expected %q", tt.note, tt.semitones, got, tt.expected)
		}
	}
}

func TestTransposeNoteOctaveWrap(t *testing.T) {
	for _, n := range Notes {
		if got := TransposeNote(n, 12); got != n {
			t.Errorf("TransposeNote(%s, 12) = %s", n, got)
		}
		if got := TransposeNote(n, 0); got != n {
			t.Errorf("TransposeNote(%s, 0) = %s", n, got)
		}
	}
}

func TestNoteIndex(t *testing.T) {
	if idx := NoteIndex("C"); idx != 0 {
		t.Errorf("expected 0 for C, got %d", idx)
	}
	if idx := NoteIndex("Bb"); idx != 10 {
		t.Errorf("expected 10 for Bb, got %d", idx)
	}
	if idx := NoteIndex("X"); idx != -1 {
		t.Errorf("expected -1 for X, got %d", idx)
	}
}
