package perform

import (
	"reflect"
	"sync"
	"testing"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
)

var testSong = &models.Song{
	ID:     "s1",
	Title:  "Te Louvamos",
	Key:    "Cm",
	Lyrics: "Te louvamos, ó Senhor",
	Chords: "C       G\nTe louvamos, ó Senhor",
}

func TestDefaultMode(t *testing.T) {
	tests := []struct {
		chords string
		want   chords.Mode
	}{
		{"", chords.ModeLyrics},
		{"C G Am F D", chords.ModeLyrics}, // exactly 10 chars
		{"C G Am F D7", chords.ModeChords},
	}
	for _, tt := range tests {
		if got := DefaultMode(&models.Song{Chords: tt.chords}); got != tt.want {
			t.Errorf("DefaultMode(%q) = %s, want %s", tt.chords, got, tt.want)
		}
	}
}

func TestSourceText(t *testing.T) {
	if got := SourceText(testSong, chords.ModeChords); got != testSong.Chords {
		t.Errorf("chords mode should use chords text, got %q", got)
	}
	if got := SourceText(testSong, chords.ModeLyrics); got != testSong.Lyrics {
		t.Errorf("lyrics mode should use lyrics text, got %q", got)
	}
	noChords := &models.Song{Lyrics: "Aleluia"}
	if got := SourceText(noChords, chords.ModeChords); got != "Aleluia" {
		t.Errorf("chords mode should fall back to lyrics, got %q", got)
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer(0)
	v := r.Render(testSong, chords.ModeChords, 2)

	if v.Key != "Dm" {
		t.Errorf("key = %q, want Dm", v.Key)
	}
	want := []chords.Line{
		{Text: "D       A", IsChord: true},
		{Text: "Te louvamos, ó Senhor", IsChord: false},
	}
	if !reflect.DeepEqual(v.Lines, want) {
		t.Errorf("lines = %+v, want %+v", v.Lines, want)
	}
	if v.Mode != chords.ModeChords || v.Offset != 2 || v.Title != testSong.Title {
		t.Errorf("unexpected view header %+v", v)
	}
}

func TestRenderEmptyText(t *testing.T) {
	v := NewRenderer(8).Render(&models.Song{ID: "x", Title: "Vazia"}, chords.ModeLyrics, 0)
	if len(v.Lines) != 0 {
		t.Errorf("expected no lines, got %+v", v.Lines)
	}
}

func TestRendererCacheMatchesUncached(t *testing.T) {
	cached := NewRenderer(4)
	plain := NewRenderer(0)

	for _, offset := range []int{-3, 0, 2, 2, 14} {
		a := cached.Lines(testSong.Chords, chords.ModeChords, offset)
		b := plain.Lines(testSong.Chords, chords.ModeChords, offset)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("offset %d: cached %+v != uncached %+v", offset, a, b)
		}
	}
	if got := cached.Len(); got != 4 {
		t.Errorf("cache len = %d, want 4", got)
	}
	if got := plain.Len(); got != 0 {
		t.Errorf("disabled cache len = %d, want 0", got)
	}
}

func TestRendererReturnsCopies(t *testing.T) {
	r := NewRenderer(2)
	first := r.Lines(testSong.Chords, chords.ModeChords, 1)
	first[0].Text = "mutated"

	second := r.Lines(testSong.Chords, chords.ModeChords, 1)
	if second[0].Text != "C#       G#" {
		t.Errorf("cache entry was mutated through a returned slice: %q", second[0].Text)
	}
}

func TestRendererConcurrent(t *testing.T) {
	r := NewRenderer(3)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			r.Render(testSong, chords.ModeChords, offset%5)
		}(i)
	}
	wg.Wait()
	if r.Len() > 3 {
		t.Errorf("cache grew past its bound: %d", r.Len())
	}
}

func TestNavigationMass(t *testing.T) {
	setlist := &models.Setlist{
		ID:   "sl",
		Name: "Domingo",
		Items: map[models.MassMoment]string{
			models.MomentComunhao: "c",
			models.MomentEntrada:  "a",
			models.MomentGloria:   "b",
			models.MomentFinal:    "",
		},
	}

	tests := []struct {
		song       string
		prev, next string
	}{
		{"a", "", "b"},
		{"b", "a", "c"},
		{"c", "b", ""},
		{"missing", "", ""},
	}
	for _, tt := range tests {
		nav := Navigation(setlist, tt.song, -1)
		if nav.SetlistName != "Domingo" {
			t.Fatalf("setlist name = %q", nav.SetlistName)
		}
		if got := stepSong(nav.Prev); got != tt.prev {
			t.Errorf("%s: prev = %q, want %q", tt.song, got, tt.prev)
		}
		if got := stepSong(nav.Next); got != tt.next {
			t.Errorf("%s: next = %q, want %q", tt.song, got, tt.next)
		}
		if nav.Next != nil && nav.Next.Index != -1 {
			t.Errorf("mass steps should carry index -1, got %d", nav.Next.Index)
		}
	}
}

func TestNavigationCustom(t *testing.T) {
	setlist := &models.Setlist{
		ID:       "sl",
		Category: models.CategoryAdoracao,
		CustomItems: []models.CustomSetlistItem{
			{UUID: "1", SongID: "x"},
			{UUID: "2", SongID: "y"},
			{UUID: "3", SongID: "x"},
		},
	}

	nav := Navigation(setlist, "x", -1)
	if nav.Prev != nil || nav.Next == nil || *nav.Next != (Step{SongID: "y", Index: 1}) {
		t.Errorf("first occurrence nav = %+v", nav)
	}

	nav = Navigation(setlist, "x", 2)
	if nav.Next != nil || nav.Prev == nil || *nav.Prev != (Step{SongID: "y", Index: 1}) {
		t.Errorf("explicit index nav = %+v", nav)
	}

	nav = Navigation(setlist, "x", 9)
	if nav.Prev != nil || nav.Next != nil {
		t.Errorf("out of range index should yield no steps, got %+v", nav)
	}

	if Navigation(nil, "x", 0) != nil {
		t.Error("nil setlist should yield nil nav")
	}
}

func stepSong(s *Step) string {
	if s == nil {
		return ""
	}
	return s.SongID
}

func TestRendererFoldsOffsets(t *testing.T) {
	r := NewRenderer(8)

	base := r.Lines(testSong.Chords, chords.ModeChords, 2)
	for _, offset := range []int{14, -10, 50, 2 + 12*1000} {
		got := r.Lines(testSong.Chords, chords.ModeChords, offset)
		if !reflect.DeepEqual(base, got) {
			t.Errorf("offset %d: %+v != %+v", offset, got, base)
		}
	}
	if r.Len() != 1 {
		t.Errorf("expected one cached block, got %d", r.Len())
	}

	// 12 normalizes flats, so it must not share an entry with 0.
	r.Lines(testSong.Chords, chords.ModeChords, 0)
	r.Lines(testSong.Chords, chords.ModeChords, 12)
	if r.Len() != 3 {
		t.Errorf("expected 0 and 12 cached separately, got %d entries", r.Len())
	}
}
