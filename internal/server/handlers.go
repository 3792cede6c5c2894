package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/irontracker/internal/models"
	"github.com/claude/irontracker/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats())
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Reindex())
}

func (s *Server) handleLatestRecord(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.LatestPR())
}

type recordsSeenRequest struct {
	SeenAt *time.Time `json:"seen_at"`
}

func (s *Server) handleRecordsSeen(w http.ResponseWriter, r *http.Request) {
	var req recordsSeenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	at := s.tracker.Now()
	if req.SeenAt != nil {
		at = *req.SeenAt
	}
	stats, err := s.tracker.MarkRecordsSeen(r.Context(), at)
	if err != nil {
		s.log.Error("mark records seen failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	history := s.tracker.History()
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed < len(history) {
			history = history[:parsed]
		}
	}
	if history == nil {
		history = []models.WorkoutSession{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var ws models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ws.Mode != "" && ws.Mode != models.ModeActive && ws.Mode != models.ModeLog {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be active or log"})
		return
	}
	saved, err := s.tracker.SaveSession(r.Context(), ws)
	if err != nil {
		s.log.Error("save session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}
	if err := s.tracker.DeleteSession(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		s.log.Error("delete session failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	items := s.tracker.Library().All()
	if items == nil {
		items = []models.LibraryExercise{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSaveExercise(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	var ex models.LibraryExercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	ex.ID = id
	if ex.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if err := s.tracker.SaveExercise(r.Context(), ex); err != nil {
		s.log.Error("save exercise failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
