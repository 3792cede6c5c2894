package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/estimate"
)

func period(r *http.Request) analytics.Period {
	return analytics.ParsePeriod(r.URL.Query().Get("period"))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Aggregator().Overview(period(r)))
}

func (s *Server) handleVolumeFatigue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Aggregator().VolumeFatigue(period(r)))
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	mode := analytics.ParseGroupMode(r.URL.Query().Get("group"))
	writeJSON(w, http.StatusOK, s.tracker.Aggregator().WeeklyVolume(period(r), mode))
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	rows := s.tracker.Aggregator().EquipmentDistribution(period(r))
	if rows == nil {
		rows = []analytics.EquipmentShare{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExerciseOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Aggregator().ExerciseOptions())
}

func (s *Server) handleExerciseSeries(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	metric := analytics.ParseMetric(r.URL.Query().Get("metric"))
	writeJSON(w, http.StatusOK, s.tracker.Aggregator().ExerciseSeries(period(r), id, metric))
}

func (s *Server) handleSBD(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Radar())
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats().Insights)
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := estimate.ParseNumber(q.Get("target"))
	bar := estimate.DefaultBarWeight
	if v := q.Get("bar"); v != "" {
		bar = estimate.ParseNumber(v)
	}
	if target <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target must be a positive number"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"target":   target,
		"bar":      bar,
		"per_side": estimate.Plates(target, bar),
	})
}

func (s *Server) handleOneRepMax(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, reps := q.Get("weight"), q.Get("reps")
	if weight == "" || reps == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight and reps parameters required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"weight":      estimate.ParseNumber(weight),
		"reps":        estimate.ParseNumber(reps),
		"one_rep_max": estimate.Estimate1RM(weight, reps),
	})
}
