package sacramusic

import (
	"errors"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrForbidden         = errors.New("record belongs to another ministry")
)

// PerformRequest selects what the performance view shows.
type PerformRequest struct {
	SongID     string
	MinistryID string // caller's ministry, checked against the setlist
	SetlistID  string // optional; enables prev/next navigation
	Index      int    // position in a custom setlist, -1 when unknown
	Mode       chords.Mode
	Offset     int
}

// ResolvedSetlist is a setlist together with the songs it references.
// Songs that no longer exist are absent from the map.
type ResolvedSetlist struct {
	Setlist *models.Setlist         `json:"setlist"`
	Songs   map[string]*models.Song `json:"songs"`
}
