// Package perform builds the live performance view of a song: which text
// block is shown, how it is transposed, and where the song sits in a setlist.
package perform

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/zeebo/blake3"
)

// minChordsLen is the length a song's chords text must exceed before the
// view opens in chords mode.
const minChordsLen = 10

// View is a rendered song, ready for display.
type View struct {
	SongID      string        `json:"songId"`
	Title       string        `json:"title"`
	Key         string        `json:"key"`
	Mode        chords.Mode   `json:"mode"`
	Offset      int           `json:"offset"`
	Lines       []chords.Line `json:"lines"`
	YouTubeLink string        `json:"youtubeLink,omitempty"`
	Nav         *Nav          `json:"nav,omitempty"`
}

// DefaultMode is the mode a song opens in.
func DefaultMode(song *models.Song) chords.Mode {
	if len(song.Chords) > minChordsLen {
		return chords.ModeChords
	}
	return chords.ModeLyrics
}

// SourceText picks the text block shown in mode. Chords mode falls back to
// the lyrics when the song has no chords.
func SourceText(song *models.Song, mode chords.Mode) string {
	if mode == chords.ModeChords && song.Chords != "" {
		return song.Chords
	}
	return song.Lyrics
}

type cacheKey struct {
	sum    [32]byte
	mode   chords.Mode
	offset int
}

// Renderer turns songs into views. Transposed lines are memoized in an LRU
// keyed by the text digest, mode and offset. A Renderer is safe for
// concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewRenderer returns a renderer caching up to size blocks. A size of zero
// or less disables the cache.
func NewRenderer(size int) *Renderer {
	r := &Renderer{}
	if size > 0 {
		r.cache = lru.New(size)
	}
	return r
}

// Render builds the view of song in mode, transposed by offset semitones.
func (r *Renderer) Render(song *models.Song, mode chords.Mode, offset int) *View {
	return &View{
		SongID:      song.ID,
		Title:       song.Title,
		Key:         chords.TransposeKey(song.Key, offset),
		Mode:        mode,
		Offset:      offset,
		Lines:       r.Lines(SourceText(song, mode), mode, offset),
		YouTubeLink: song.YouTubeLink,
	}
}

// Lines transposes one text block. Empty text renders no lines.
func (r *Renderer) Lines(text string, mode chords.Mode, offset int) []chords.Line {
	if text == "" {
		return []chords.Line{}
	}
	if r == nil || r.cache == nil {
		return chords.TransposeBlock(text, mode, offset)
	}

	offset = wrapOffset(offset)
	key := cacheKey{sum: blake3.Sum256([]byte(text)), mode: mode, offset: offset}

	r.mu.Lock()
	v, ok := r.cache.Get(key)
	r.mu.Unlock()
	if ok {
		return clone(v.([]chords.Line))
	}

	lines := chords.TransposeBlock(text, mode, offset)

	r.mu.Lock()
	r.cache.Add(key, lines)
	r.mu.Unlock()

	return clone(lines)
}

// wrapOffset folds a non-zero offset into 1..12. Offsets a multiple of 12
// apart render the same lines, while 0 stays 0 because it skips flat
// normalization.
func wrapOffset(offset int) int {
	if offset == 0 {
		return 0
	}
	offset %= 12
	if offset <= 0 {
		offset += 12
	}
	return offset
}

// Len reports how many blocks are cached.
func (r *Renderer) Len() int {
	if r == nil || r.cache == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}

func clone(lines []chords.Line) []chords.Line {
	out := make([]chords.Line, len(lines))
	copy(out, lines)
	return out
}
