package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/himanishpuri/SacraMusic/pkg/models"
)

// ---- setlists ----

// handleListSetlists handles GET /api/setlists
func (s *Server) handleListSetlists(w http.ResponseWriter, r *http.Request) {
	setlists, err := s.service.ListSetlists(r.Context(), ministryFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "list setlists", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ListSetlistsResponse{Setlists: setlists, Count: len(setlists)})
}

// handleGetSetlist handles GET /api/setlists/{id}
func (s *Server) handleGetSetlist(w http.ResponseWriter, r *http.Request) {
	setlist, err := s.service.GetSetlist(r.Context(), ministryFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, "get setlist", err)
		return
	}
	s.respondJSON(w, http.StatusOK, setlist)
}

// handleSaveSetlist handles POST /api/setlists and PUT /api/setlists/{id}.
// The path id wins over any id in the body; POST always creates.
func (s *Server) handleSaveSetlist(w http.ResponseWriter, r *http.Request) {
	var setlist models.Setlist
	if !s.decode(w, r, &setlist) {
		return
	}
	setlist.ID = chi.URLParam(r, "id")
	ministryID := ministryFrom(r.Context())

	status := http.StatusCreated
	if setlist.ID != "" {
		if _, err := s.service.GetSetlist(r.Context(), ministryID, setlist.ID); err != nil {
			s.respondServiceError(w, "get setlist", err)
			return
		}
		status = http.StatusOK
	}

	saved, err := s.service.SaveSetlist(r.Context(), ministryID, &setlist)
	if err != nil {
		s.respondServiceError(w, "save setlist", err)
		return
	}
	s.respondJSON(w, status, saved)
}

// handleDeleteSetlist handles DELETE /api/setlists/{id}
func (s *Server) handleDeleteSetlist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.DeleteSetlist(r.Context(), ministryFrom(r.Context()), id); err != nil {
		s.respondServiceError(w, "delete setlist", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Setlist deleted successfully", ID: id})
}

// handleSetlistSongs handles GET /api/setlists/{id}/songs
func (s *Server) handleSetlistSongs(w http.ResponseWriter, r *http.Request) {
	resolved, err := s.service.ResolveSetlist(r.Context(), ministryFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, "resolve setlist", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resolved)
}

// handleAddCustomItem handles POST /api/setlists/{id}/items
func (s *Server) handleAddCustomItem(w http.ResponseWriter, r *http.Request) {
	var req CustomItemRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.SongID == "" {
		s.respondError(w, http.StatusBadRequest, "songId is required")
		return
	}

	setlist, err := s.service.AddCustomItem(r.Context(), ministryFrom(r.Context()), chi.URLParam(r, "id"), req.SongID)
	if err != nil {
		s.respondServiceError(w, "add setlist item", err)
		return
	}
	s.respondJSON(w, http.StatusOK, setlist)
}

// handleRemoveCustomItem handles DELETE /api/setlists/{id}/items/{uuid}
func (s *Server) handleRemoveCustomItem(w http.ResponseWriter, r *http.Request) {
	setlist, err := s.service.RemoveCustomItem(r.Context(), ministryFrom(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "uuid"))
	if err != nil {
		s.respondServiceError(w, "remove setlist item", err)
		return
	}
	s.respondJSON(w, http.StatusOK, setlist)
}

// ---- musicians ----

// handleListMusicians handles GET /api/musicians?instrument=
func (s *Server) handleListMusicians(w http.ResponseWriter, r *http.Request) {
	musicians, err := s.service.ListMusicians(r.Context(), ministryFrom(r.Context()), r.URL.Query().Get("instrument"))
	if err != nil {
		s.respondServiceError(w, "list musicians", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ListMusiciansResponse{Musicians: musicians, Count: len(musicians)})
}

// handleSaveMusician handles POST /api/musicians. A body with an id updates
// that musician.
func (s *Server) handleSaveMusician(w http.ResponseWriter, r *http.Request) {
	var musician models.Musician
	if !s.decode(w, r, &musician) {
		return
	}
	saved, err := s.service.SaveMusician(r.Context(), ministryFrom(r.Context()), &musician)
	if err != nil {
		s.respondServiceError(w, "save musician", err)
		return
	}
	s.respondJSON(w, http.StatusOK, saved)
}

// handleDeleteMusician handles DELETE /api/musicians/{id}
func (s *Server) handleDeleteMusician(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.DeleteMusician(r.Context(), ministryFrom(r.Context()), id); err != nil {
		s.respondServiceError(w, "delete musician", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Musician deleted successfully", ID: id})
}

// handleInstruments handles GET /api/instruments
func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := s.service.Instruments(r.Context(), ministryFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "list instruments", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"instruments": instruments})
}

// ---- schedules ----

// handleListSchedules handles GET /api/schedules?musician=
func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListSchedules(r.Context(), ministryFrom(r.Context()), r.URL.Query().Get("musician"))
	if err != nil {
		s.respondServiceError(w, "list schedules", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ListSchedulesResponse{Schedules: entries, Count: len(entries)})
}

// handleGetSchedule handles GET /api/schedules/{id}
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.GetSchedule(r.Context(), ministryFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, "get schedule", err)
		return
	}
	s.respondJSON(w, http.StatusOK, entry)
}

// handleSaveSchedule handles POST /api/schedules and PUT /api/schedules/{id}
func (s *Server) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	var entry models.ScheduleEntry
	if !s.decode(w, r, &entry) {
		return
	}
	entry.ID = chi.URLParam(r, "id")
	ministryID := ministryFrom(r.Context())

	status := http.StatusCreated
	if entry.ID != "" {
		if _, err := s.service.GetSchedule(r.Context(), ministryID, entry.ID); err != nil {
			s.respondServiceError(w, "get schedule", err)
			return
		}
		status = http.StatusOK
	}

	saved, err := s.service.SaveSchedule(r.Context(), ministryID, &entry)
	if err != nil {
		s.respondServiceError(w, "save schedule", err)
		return
	}
	s.respondJSON(w, status, saved)
}

// handleDeleteSchedule handles DELETE /api/schedules/{id}
func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.DeleteSchedule(r.Context(), ministryFrom(r.Context()), id); err != nil {
		s.respondServiceError(w, "delete schedule", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Schedule deleted successfully", ID: id})
}

// ---- ministries ----

// handleCreateMinistry handles POST /api/ministries and selects the new
// ministry in the session.
func (s *Server) handleCreateMinistry(w http.ResponseWriter, r *http.Request) {
	var req CreateMinistryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ministry, err := s.service.CreateMinistry(r.Context(), req.Name, userFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "create ministry", err)
		return
	}
	if err := s.sessions.SetMinistry(w, r, ministry.ID); err != nil {
		s.respondServiceError(w, "update session", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, ministry)
}

// handleJoinMinistry handles POST /api/ministries/join
func (s *Server) handleJoinMinistry(w http.ResponseWriter, r *http.Request) {
	var req JoinMinistryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ministry, err := s.service.JoinMinistryByCode(r.Context(), req.Code, userFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "join ministry", err)
		return
	}
	if err := s.sessions.SetMinistry(w, r, ministry.ID); err != nil {
		s.respondServiceError(w, "update session", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ministry)
}

// handleCurrentMinistry handles GET /api/ministries/current
func (s *Server) handleCurrentMinistry(w http.ResponseWriter, r *http.Request) {
	ministry, err := s.service.GetMinistry(r.Context(), ministryFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "get ministry", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ministry)
}

// handleMembers handles GET /api/ministries/current/members
func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.service.MinistryMembers(r.Context(), ministryFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, "list members", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MembersResponse{Members: members, Count: len(members)})
}

// handleRemoveMember handles DELETE /api/ministries/current/members/{uid}
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := chi.URLParam(r, "uid")
	if err := s.service.RemoveMember(ctx, ministryFrom(ctx), userFrom(ctx), member); err != nil {
		s.respondServiceError(w, "remove member", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Member removed successfully", ID: member})
}

// ---- session ----

// handleGetSession handles GET /api/session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	uid, ministryID, err := s.sessions.CurrentMinistry(r)
	if uid == "" {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}
	profile, perr := s.service.GetUserProfile(r.Context(), uid)
	if perr != nil {
		s.respondServiceError(w, "get user", perr)
		return
	}
	s.respondJSON(w, http.StatusOK, SessionResponse{User: profile, MinistryID: ministryID, Onboarding: err != nil})
}

// handleCreateSession handles POST /api/session. The profile is created or
// merged, and the requested ministry (or the user's current one) is
// selected when the user belongs to it.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.service.SaveUserProfile(r.Context(), &models.UserProfile{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		s.respondServiceError(w, "save user", err)
		return
	}

	ministryID := req.MinistryID
	if ministryID == "" {
		ministryID = profile.CurrentMinistryID
	}
	if ministryID != "" {
		ministry, err := s.service.GetMinistry(r.Context(), ministryID)
		member := err == nil && ministry.IsMember(profile.UID)
		switch {
		case member:
		case req.MinistryID == "":
			s.log.Warnf("Stale current ministry %s for user %s", ministryID, profile.UID)
			ministryID = ""
		case err != nil:
			s.respondServiceError(w, "get ministry", err)
			return
		default:
			s.respondError(w, http.StatusForbidden, "not a member of this ministry")
			return
		}
	}

	if err := s.sessions.Set(w, r, profile.UID, ministryID); err != nil {
		s.respondServiceError(w, "save session", err)
		return
	}
	s.respondJSON(w, http.StatusOK, SessionResponse{User: profile, MinistryID: ministryID, Onboarding: ministryID == ""})
}

// handleDeleteSession handles DELETE /api/session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(w, r); err != nil {
		s.respondServiceError(w, "clear session", err)
		return
	}
	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "Signed out"})
}
