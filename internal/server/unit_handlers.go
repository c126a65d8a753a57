package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/vocadrill/internal/database"
	"github.com/example/vocadrill/internal/importer"
	"github.com/example/vocadrill/internal/practice"
	"github.com/example/vocadrill/pkg/models"
)

// maxUploadSize bounds word-list uploads (multipart memory limit)
const maxUploadSize = 10 << 20

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.units.GetByUser(ownerID(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, units, http.StatusOK)
}

func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Unit not found", http.StatusNotFound)
		return
	}

	unit, err := s.units.GetByID(unitID, ownerID(r))
	if errors.Is(err, database.ErrUnitNotFound) {
		respondError(w, "Unit not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	words, err := s.words.GetByUnit(unitID, ownerID(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"unit": unit, "words": words}, http.StatusOK)
}

func (s *Server) deleteUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Unit not found", http.StatusNotFound)
		return
	}

	if err := s.units.Delete(unitID, ownerID(r)); err != nil {
		if errors.Is(err, database.ErrUnitNotFound) {
			respondError(w, "Unit not found", http.StatusNotFound)
			return
		}
		respondError(w, "Failed to delete unit", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// getWords serves the union of words across the requested units. Non-numeric
// ids are dropped; an empty resolved id set yields an empty result.
func (s *Server) getWords(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("units")
	if selector == "" {
		respondError(w, "No units specified", http.StatusBadRequest)
		return
	}

	words, err := s.words.GetByUnits(practice.ParseUnitIDs(selector), ownerID(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"words": words}, http.StatusOK)
}

// uploadUnit creates a unit from an uploaded CSV or Excel word list
func (s *Server) uploadUnit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	words, err := importer.Parse(header.Filename, file)
	if err != nil {
		respondError(w, "Empty or invalid file", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	unit := &models.Unit{UserID: ownerID(r), Name: name}
	if err := s.units.Create(unit); err != nil {
		respondError(w, "Failed to create unit", http.StatusInternalServerError)
		return
	}
	if err := s.words.CreateBatch(unit.ID, words); err != nil {
		respondError(w, "Failed to import words", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"id": unit.ID, "name": unit.Name}, http.StatusCreated)
}
