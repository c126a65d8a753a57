package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/example/vocadrill/internal/database"
	"github.com/example/vocadrill/pkg/models"
)

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(ownerID(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// Encodes as JSON null when there is no active session
	respondJSON(w, session, http.StatusOK)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitIDs  string          `json:"unit_ids"`
		Queue    []models.Word   `json:"queue"`
		Progress models.Progress `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Queue) == 0 {
		respondError(w, "Queue must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Queue)+req.Progress.Done != req.Progress.Total {
		respondError(w, "Queue and progress do not add up", http.StatusBadRequest)
		return
	}

	session := &models.PracticeSession{
		ID:       uuid.New().String(),
		UserID:   ownerID(r),
		UnitIDs:  req.UnitIDs,
		Queue:    req.Queue,
		Progress: req.Progress,
	}
	if err := s.sessions.Create(session); err != nil {
		if errors.Is(err, database.ErrSessionExists) {
			respondError(w, "Session already exists", http.StatusConflict)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, session, http.StatusCreated)
}

func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Queue    []models.Word   `json:"queue"`
		Progress models.Progress `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Queue) == 0 {
		// A finished session is deleted, never stored completed
		respondError(w, "Queue must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Queue)+req.Progress.Done != req.Progress.Total {
		respondError(w, "Queue and progress do not add up", http.StatusBadRequest)
		return
	}

	current, err := s.sessions.Get(ownerID(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if current == nil {
		respondError(w, "No active session", http.StatusNotFound)
		return
	}
	// Total is fixed when the session is created
	if req.Progress.Total != current.Progress.Total {
		respondError(w, "Progress total cannot change", http.StatusBadRequest)
		return
	}

	if err := s.sessions.Update(ownerID(r), req.Queue, req.Progress); err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			respondError(w, "No active session", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Remove(ownerID(r)); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
