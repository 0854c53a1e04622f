package chords

import (
	"strings"
	"testing"
)

const sampleBlock = "Intro: C  G\n" +
	"\n" +
	"C       G       Am\n" +
	"Te louvamos, ó Senhor\n" +
	"F           G/B     C\n" +
	"Nós te bendizemos"

func TestTransposeBlockScenario(t *testing.T) {
	lines := TransposeBlock("C       G\nTe louvamos, ó Senhor", ModeChords, 2)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "D       A" || !lines[0].IsChord {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Text != "Te louvamos, ó Senhor" || lines[1].IsChord {
		t.Errorf("line 1 = %+v", lines[1])
	}
}

func TestTransposeBlockIdentity(t *testing.T) {
	for _, mode := range []Mode{ModeLyrics, ModeChords} {
		lines := TransposeBlock(sampleBlock, mode, 0)
		if got := JoinLines(lines); got != sampleBlock {
			t.Errorf("mode %s offset 0 changed the text:\n%s", mode, got)
		}
	}
}

func TestTransposeBlockLyricsModeNeverTransposes(t *testing.T) {
	lines := TransposeBlock(sampleBlock, ModeLyrics, 5)
	if got := JoinLines(lines); got != sampleBlock {
		t.Errorf("lyrics mode should not transpose, got:\n%s", got)
	}
	if !lines[2].IsChord {
		t.Error("lyrics mode should still classify chord lines")
	}
}

func TestTransposeBlockPreservesLineCount(t *testing.T) {
	text := "C\n\n\nG\n"
	lines := TransposeBlock(text, ModeChords, 1)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	want := []string{"C#", "", "", "G#", ""}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, expected %q", i, lines[i].Text, w)
		}
	}
	if lines[1].IsChord || lines[4].IsChord {
		t.Error("blank lines must not be chord lines")
	}
}

func TestTransposeBlockLeavesLyricLinesAlone(t *testing.T) {
	lines := TransposeBlock(sampleBlock, ModeChords, 3)

	expected := []Line{
		{Text: "Intro: D#  A#", IsChord: true},
		{Text: "", IsChord: false},
		{Text: "D#       A#       Cm", IsChord: true},
		{Text: "Te louvamos, ó Senhor", IsChord: false},
		{Text: "G#           A#/D     D#", IsChord: true},
		{Text: "Nós te bendizemos", IsChord: false},
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %+v, expected %+v", i, lines[i], expected[i])
		}
	}
}

func TestTransposeBlockRoundTrip(t *testing.T) {
	block := "C  G/B  Am7  F\nDm  A#  Gsus4\n(E)  F#m,  C#dim"
	for k := -14; k <= 14; k++ {
		up := JoinLines(TransposeBlock(block, ModeChords, k))
		down := JoinLines(TransposeBlock(up, ModeChords, -k))
		if down != block {
			t.Errorf("round trip by %d gave:\n%s", k, down)
		}
	}
}

func TestTransposeBlockNonBreakingSpaces(t *testing.T) {
	lines := TransposeBlock("C\u00a0\u00a0G", ModeChords, 2)
	if lines[0].Text != "D\u00a0\u00a0A" {
		t.Errorf("got %q", lines[0].Text)
	}
}

func TestTransposeLine(t *testing.T) {
	got := TransposeLine("  Am   C/G   x  ", 2)
	if got != "  Bm   D/A   x  " {
		t.Errorf("got %q", got)
	}
}

func TestTransposeKey(t *testing.T) {
	tests := []struct {
		key      string
		offset   int
		expected string
	}{
		{"C", 2, "D"},
		{"Am", 2, "Bm"},
		{"F#7", 1, "G7"},
		{"Bb", 1, "B"},
		{"Eb", 0, "D#"},
		{"", 3, ""},
		{"Tom: C", 2, "Tom: C"},
		{"G", -12, "G"},
	}

	for _, tt := range tests {
		if got := TransposeKey(tt.key, tt.offset); got != tt.expected {
			t.Errorf("TransposeKey(%q, %d) = %q, expected %q", tt.key, tt.offset, got, tt.expected)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode(" Chords "); !ok || m != ModeChords {
		t.Errorf("ParseMode(Chords) = %q, %v", m, ok)
	}
	if m, ok := ParseMode("lyrics"); !ok || m != ModeLyrics {
		t.Errorf("ParseMode(lyrics) = %q, %v", m, ok)
	}
	if _, ok := ParseMode("tabs"); ok {
		t.Error("ParseMode(tabs) should fail")
	}
}

func TestTransposeBlockDeterministic(t *testing.T) {
	first := TransposeBlock(sampleBlock, ModeChords, -5)
	second := TransposeBlock(sampleBlock, ModeChords, -5)
	if JoinLines(first) != JoinLines(second) {
		t.Error("same input produced different output")
	}
	for _, l := range first {
		if l.IsChord && strings.Contains(l.Text, "b") {
			t.Errorf("chord line re-emitted a flat spelling: %q", l.Text)
		}
	}
}
