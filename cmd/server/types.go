package main

import (
	"fmt"
	"strings"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
)

// MaxTransposeBytes caps the text accepted by POST /api/transpose.
const MaxTransposeBytes = 256 << 10

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// MessageResponse acknowledges a deletion or other body-less action.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ---- songs ----

// SongRequest is the body of POST /api/songs and PUT /api/songs/{id}.
type SongRequest struct {
	Title       string                    `json:"title"`
	Key         string                    `json:"key"`
	Moments     []models.MassMoment       `json:"moments"`
	Seasons     []models.LiturgicalSeason `json:"seasons"`
	Lyrics      string                    `json:"lyrics"`
	Chords      string                    `json:"chords"`
	YouTubeLink string                    `json:"youtubeLink"`
}

func (r *SongRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func (r *SongRequest) toModel(id, createdBy string) *models.Song {
	return &models.Song{
		ID:          id,
		Title:       r.Title,
		Key:         r.Key,
		Moments:     r.Moments,
		Seasons:     r.Seasons,
		Lyrics:      r.Lyrics,
		Chords:      r.Chords,
		YouTubeLink: r.YouTubeLink,
		CreatedBy:   createdBy,
	}
}

// SongDTO is a song in API responses, with the embeddable video URL
// resolved for the client.
type SongDTO struct {
	models.Song
	EmbedURL string `json:"embedUrl,omitempty"`
}

func toSongDTO(song models.Song) SongDTO {
	dto := SongDTO{Song: song}
	if utils.IsYouTubeURL(song.YouTubeLink) {
		dto.EmbedURL = utils.EmbedURL(song.YouTubeLink)
	}
	return dto
}

// ListSongsResponse is the response for GET /api/songs
type ListSongsResponse struct {
	Songs []SongDTO `json:"songs"`
	Count int       `json:"count"`
}

// ImportSongRequest is the body of POST /api/songs/import.
type ImportSongRequest struct {
	URL string `json:"url"`
}

func (r *ImportSongRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

// ---- transpose ----

// TransposeRequest is the body of POST /api/transpose.
type TransposeRequest struct {
	Text   string `json:"text"`
	Mode   string `json:"mode"`
	Offset int    `json:"offset"`
}

// Validate checks the request and returns the parsed mode. An empty mode
// means chords.
func (r *TransposeRequest) Validate() (chords.Mode, error) {
	if len(r.Text) > MaxTransposeBytes {
		return "", fmt.Errorf("text too long: %d bytes (maximum: %d)", len(r.Text), MaxTransposeBytes)
	}
	if r.Mode == "" {
		return chords.ModeChords, nil
	}
	mode, ok := chords.ParseMode(r.Mode)
	if !ok {
		return "", fmt.Errorf("unknown mode %q", r.Mode)
	}
	return mode, nil
}

// TransposeResponse is the response for POST /api/transpose.
type TransposeResponse struct {
	Lines []chords.Line `json:"lines"`
	Text  string        `json:"text"`
}

// ---- setlists ----

// ListSetlistsResponse is the response for GET /api/setlists
type ListSetlistsResponse struct {
	Setlists []models.Setlist `json:"setlists"`
	Count    int              `json:"count"`
}

// CustomItemRequest is the body of POST /api/setlists/{id}/items.
type CustomItemRequest struct {
	SongID string `json:"songId"`
}

// ---- roster ----

// ListMusiciansResponse is the response for GET /api/musicians
type ListMusiciansResponse struct {
	Musicians []models.Musician `json:"musicians"`
	Count     int               `json:"count"`
}

// ListSchedulesResponse is the response for GET /api/schedules
type ListSchedulesResponse struct {
	Schedules []models.ScheduleEntry `json:"schedules"`
	Count     int                    `json:"count"`
}

// ---- ministries and session ----

// CreateMinistryRequest is the body of POST /api/ministries.
type CreateMinistryRequest struct {
	Name string `json:"name"`
}

func (r *CreateMinistryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// JoinMinistryRequest is the body of POST /api/ministries/join.
type JoinMinistryRequest struct {
	Code string `json:"code"`
}

func (r *JoinMinistryRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("code is required")
	}
	return nil
}

// SessionRequest is the body of POST /api/session. It signs a user in by
// id and optionally selects one of their ministries.
type SessionRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	MinistryID  string `json:"ministryId,omitempty"`
}

func (r *SessionRequest) Validate() error {
	if strings.TrimSpace(r.UID) == "" {
		return fmt.Errorf("uid is required")
	}
	return nil
}

// SessionResponse describes the signed-in user.
type SessionResponse struct {
	User       *models.UserProfile `json:"user"`
	MinistryID string              `json:"ministryId,omitempty"`
	Onboarding bool                `json:"onboarding"`
}

// MembersResponse is the response for GET /api/ministries/current/members
type MembersResponse struct {
	Members []models.UserProfile `json:"members"`
	Count   int                  `json:"count"`
}
