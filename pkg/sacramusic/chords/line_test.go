package chords

import "testing"

func TestIsChordLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"plain chords", "C  G  Am  F", true},
		{"lyrics", "Jesus é o caminho, a verdade e a vida", false},
		{"empty", "", false},
		{"whitespace only", "   \t ", false},
		{"single chord", "D", true},
		{"two tokens one chord", "Refrão: G", true},
		{"slash chords", "C/E  F  G/B", true},
		{"parenthesized", "(C)  (G)  Am,", true},
		{"intro label", "Intro: C G", true},
		{"stray capital in lyrics", "A graça de Deus é tão grande para mim", false},
		{"extensions", "Cmaj7  Dm9  Gsus4  Aadd9", true},
		{"non-grammar suffix", "C7M  F7M  G7M", false},
		{"nbsp separated", "C\u00a0\u00a0G", true},
		{"exactly 40 percent", "C G lorem ipsum dolor", false},
		{"just above 40 percent", "C G Am lorem ipsum", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChordLine(tt.line); got != tt.expected {
				t.Errorf("IsChordLine(%q) = %v, expected %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestIsChordToken(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"Am", true},
		{"F#m7", true},
		{"Bb/D", true},
		{"(Em)", true},
		{"G,", true},
		{"Am7(9)", true},
		{"Do", false},
		{"a", false},
		{"C/E/G", false},
	}

	for _, tt := range tests {
		if got := IsChordToken(tt.token); got != tt.expected {
			t.Errorf("IsChordToken(%q) = %v, expected %v", tt.token, got, tt.expected)
		}
	}
}
