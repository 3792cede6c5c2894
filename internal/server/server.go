package server

import (
	"log/slog"
	"net/http"

	"github.com/coocood/freecache"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/claude/irontracker/internal/metrics"
	"github.com/claude/irontracker/internal/tracker"
)

const megabyte = 1024 * 1024

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Service
	metrics *metrics.Manager
	cache   *freecache.Cache
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. m may be nil.
func New(svc *tracker.Service, m *metrics.Manager, cacheSizeMB int, apiKey string, log *slog.Logger) *Server {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	s := &Server{
		tracker: svc,
		metrics: m,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/records/latest", s.handleLatestRecord)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/library", s.handleListLibrary)

		r.Get("/tools/plates", s.handlePlates)
		r.Get("/tools/one-rep-max", s.handleOneRepMax)

		r.Route("/analytics", func(r chi.Router) {
			r.Use(s.cached)
			r.Get("/overview", s.handleOverview)
			r.Get("/volume-fatigue", s.handleVolumeFatigue)
			r.Get("/weekly-volume", s.handleWeeklyVolume)
			r.Get("/equipment", s.handleEquipment)
			r.Get("/exercises", s.handleExerciseOptions)
			r.Get("/exercises/{id}/series", s.handleExerciseSeries)
			r.Get("/sbd", s.handleSBD)
			r.Get("/insights", s.handleInsights)
		})

		// Mutations (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/dashboard/reindex", s.handleReindex)
			r.Post("/records/seen", s.handleRecordsSeen)
			r.Post("/sessions", s.handleSaveSession)
			r.Delete("/sessions/{id}", s.handleDeleteSession)
			r.Put("/library/{id}", s.handleSaveExercise)
		})
	})
}
