package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/himanishpuri/SacraMusic/internal/config"
	"github.com/himanishpuri/SacraMusic/internal/session"
	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service  sacramusic.Service
	config   *config.Config
	sessions *session.Provider
	log      sacramusic.Logger
}

// NewServer creates a new server instance
func NewServer(service sacramusic.Service, cfg *config.Config, sessions *session.Provider, log sacramusic.Logger) *Server {
	return &Server{
		service:  service,
		config:   cfg,
		sessions: sessions,
		log:      log,
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondServiceError maps a service error onto its HTTP status. Unexpected
// errors are logged and reported as 500 without their details.
func (s *Server) respondServiceError(w http.ResponseWriter, what string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Errorf("Failed to %s: %v", what, err)
		s.respondError(w, status, "Failed to "+what)
		return
	}
	s.respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sacramusic.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sacramusic.ErrInvalidRecord), errors.Is(err, sacramusic.ErrInvalidInviteCode):
		return http.StatusBadRequest
	case errors.Is(err, sacramusic.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, session.ErrNoUser), errors.Is(err, session.ErrNoMinistry):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.log.Debugf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "SacraMusic API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":    "GET /health",
			"songs":     "GET|POST /api/songs",
			"song":      "GET|PUT|DELETE /api/songs/{id}",
			"import":    "POST /api/songs/import",
			"perform":   "GET /api/perform/{songID}",
			"transpose": "POST /api/transpose",
			"setlists":  "GET|POST /api/setlists",
			"musicians": "GET|POST /api/musicians",
			"schedules": "GET|POST /api/schedules",
			"ministry":  "GET /api/ministries/current",
			"session":   "GET|POST|DELETE /api/session",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ---- songs ----

// handleListSongs handles GET /api/songs?q=
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	var (
		songs []models.Song
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		songs, err = s.service.SearchSongs(r.Context(), q)
	} else {
		songs, err = s.service.ListSongs(r.Context())
	}
	if err != nil {
		s.respondServiceError(w, "list songs", err)
		return
	}

	dtos := make([]SongDTO, len(songs))
	for i, song := range songs {
		dtos[i] = toSongDTO(song)
	}
	s.respondJSON(w, http.StatusOK, ListSongsResponse{Songs: dtos, Count: len(dtos)})
}

// handleGetSong handles GET /api/songs/{id}
func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.service.GetSong(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, "get song", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toSongDTO(*song))
}

// handleCreateSong handles POST /api/songs
func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	song, err := s.service.SaveSong(r.Context(), req.toModel("", userFrom(r.Context())))
	if err != nil {
		s.respondServiceError(w, "save song", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toSongDTO(*song))
}

// handleUpdateSong handles PUT /api/songs/{id}. The original author is kept.
func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.service.GetSong(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, "get song", err)
		return
	}

	var req SongRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	song, err := s.service.SaveSong(r.Context(), req.toModel(id, existing.CreatedBy))
	if err != nil {
		s.respondServiceError(w, "save song", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toSongDTO(*song))
}

// handleDeleteSong handles DELETE /api/songs/{id}
func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.DeleteSong(r.Context(), id); err != nil {
		s.respondServiceError(w, "delete song", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Song deleted successfully", ID: id})
}

// handleImportSong handles POST /api/songs/import
func (s *Server) handleImportSong(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req ImportSongRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	song, err := s.service.ImportSong(ctx, req.URL, userFrom(ctx))
	if err != nil {
		s.respondServiceError(w, "import song", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toSongDTO(*song))
}

// ---- perform ----

// handlePerform handles GET /api/perform/{songID}?mode=&offset=&setlist=&idx=
func (s *Server) handlePerform(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := sacramusic.PerformRequest{
		SongID:    chi.URLParam(r, "songID"),
		SetlistID: q.Get("setlist"),
		Index:     -1,
	}

	if m := q.Get("mode"); m != "" {
		mode, ok := chords.ParseMode(m)
		if !ok {
			s.respondError(w, http.StatusBadRequest, "mode must be lyrics or chords")
			return
		}
		req.Mode = mode
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid offset")
			return
		}
		req.Offset = offset
	}
	if v := q.Get("idx"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid idx")
			return
		}
		req.Index = idx
	}
	if req.SetlistID != "" {
		_, ministryID, err := s.sessions.CurrentMinistry(r)
		if err != nil {
			s.respondServiceError(w, "perform song", err)
			return
		}
		req.MinistryID = ministryID
	}

	view, err := s.service.Perform(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, "perform song", err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

// handleTranspose handles POST /api/transpose
func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxTransposeBytes*2)

	var req TransposeRequest
	if !s.decode(w, r, &req) {
		return
	}
	mode, err := req.Validate()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := s.service.Transpose(req.Text, mode, req.Offset)
	s.respondJSON(w, http.StatusOK, TransposeResponse{Lines: lines, Text: chords.JoinLines(lines)})
}
