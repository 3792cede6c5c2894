// Package tracker owns the in-memory history and library snapshot. It is the
// only write path: every mutation is persisted, applied copy-on-write and
// followed by a dashboard recompute before the call returns.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/insights"
	"github.com/claude/irontracker/internal/models"
	"github.com/claude/irontracker/internal/storage"
)

// Service serialises writers and publishes immutable snapshots to readers.
type Service struct {
	store storage.Store
	cache *dashboard.Cache
	log   *slog.Logger
	now   func() time.Time

	// writeMu serialises mutations end to end.
	writeMu sync.Mutex

	// mu guards the snapshot and the clock.
	mu       sync.RWMutex
	history  []models.WorkoutSession
	library  *models.Library
	lastSeen *time.Time
}

// New creates a Service. Call Load before serving.
func New(store storage.Store, cache *dashboard.Cache, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		log:     log,
		now:     time.Now,
		library: models.NewLibrary(nil),
	}
}

// SetClock replaces the time source. Safe to call while serving.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	s.cache.SetClock(now)
}

// Now returns the current time of the service clock.
func (s *Service) Now() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	return now()
}

// Load reads history, library and the last-seen timestamp from the store and
// computes the first dashboard snapshot.
func (s *Service) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	history, err := s.store.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	exercises, err := s.store.LoadLibrary(ctx)
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}
	lastSeen, err := s.store.LastSeenRecords(ctx)
	if err != nil {
		return fmt.Errorf("loading last seen records: %w", err)
	}
	models.SortHistory(history)

	s.publish(history, models.NewLibrary(exercises), lastSeen)
	s.log.Info("tracker loaded", "sessions", len(history), "exercises", len(exercises))
	return nil
}

// History returns the current history, newest first. Callers must not modify it.
func (s *Service) History() []models.WorkoutSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

// Library returns the current exercise library.
func (s *Service) Library() *models.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.library
}

// Stats returns the current dashboard snapshot.
func (s *Service) Stats() dashboard.Stats {
	return s.cache.Stats()
}

// Aggregator returns an aggregator over the current snapshot.
func (s *Service) Aggregator() *analytics.Aggregator {
	history, lib, _ := s.snapshot()
	return analytics.New(history, lib, s.Now())
}

// Radar computes the squat/bench/deadlift radar over the current history.
func (s *Service) Radar() insights.Radar {
	history, lib, _ := s.snapshot()
	return insights.SBDRadar(history, lib)
}

// LatestPR returns the unseen record of the latest session, if any.
func (s *Service) LatestPR() *insights.PR {
	history, lib, lastSeen := s.snapshot()
	return insights.LatestPR(history, lib, lastSeen)
}

// SaveSession persists a new or edited session and returns the stored copy.
// A zero id is replaced by one derived from the current time.
func (s *Service) SaveSession(ctx context.Context, ws models.WorkoutSession) (models.WorkoutSession, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ws = ws.Clone()
	if ws.ID == 0 {
		ws.ID = s.nextID()
	}
	if ws.Mode == "" {
		ws.Mode = models.ModeLog
	}
	if ws.StartTime.IsZero() {
		ws.StartTime = s.Now()
	}
	if err := s.store.SaveSession(ctx, ws); err != nil {
		return models.WorkoutSession{}, err
	}

	history, lib, lastSeen := s.snapshot()
	next := make([]models.WorkoutSession, 0, len(history)+1)
	for _, h := range history {
		if h.ID != ws.ID {
			next = append(next, h)
		}
	}
	next = append(next, ws)
	models.SortHistory(next)

	s.publish(next, lib, lastSeen)
	s.log.Info("session saved", "id", ws.ID, "sets", ws.WorkingSetCount())
	return ws, nil
}

// DeleteSession removes a session. Unknown ids return storage.ErrNotFound.
func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.DeleteSession(ctx, id); err != nil {
		return err
	}

	history, lib, lastSeen := s.snapshot()
	next := make([]models.WorkoutSession, 0, len(history))
	for _, h := range history {
		if h.ID != id {
			next = append(next, h)
		}
	}
	s.publish(next, lib, lastSeen)
	s.log.Info("session deleted", "id", id)
	return nil
}

// SaveExercise persists a library entry and rebuilds the library index.
func (s *Service) SaveExercise(ctx context.Context, ex models.LibraryExercise) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.SaveExercise(ctx, ex); err != nil {
		return err
	}

	history, lib, lastSeen := s.snapshot()
	items := lib.All()
	replaced := false
	for i := range items {
		if items[i].ID == ex.ID {
			items[i] = ex
			replaced = true
		}
	}
	if !replaced {
		items = append(items, ex)
	}
	s.publish(history, models.NewLibrary(items), lastSeen)
	s.log.Info("exercise saved", "id", ex.ID, "name", ex.Name)
	return nil
}

// MarkRecordsSeen stores the acknowledgement time and re-indexes the dashboard.
func (s *Service) MarkRecordsSeen(ctx context.Context, at time.Time) (dashboard.Stats, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.SetLastSeenRecords(ctx, at); err != nil {
		return dashboard.Stats{}, err
	}
	history, lib, _ := s.snapshot()
	return s.publish(history, lib, &at), nil
}

// Reindex recomputes the dashboard without a mutation.
func (s *Service) Reindex() dashboard.Stats {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.cache.Reindex()
}

func (s *Service) snapshot() ([]models.WorkoutSession, *models.Library, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history, s.library, s.lastSeen
}

// publish swaps in the new snapshot and recomputes the dashboard from it.
// Readers of the snapshot wait until the dashboard matches it.
// Must be called with writeMu held.
func (s *Service) publish(history []models.WorkoutSession, lib *models.Library, lastSeen *time.Time) dashboard.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
	s.library = lib
	s.lastSeen = lastSeen
	return s.cache.Update(history, lib, lastSeen)
}

// nextID derives a millisecond timestamp id, bumped past any existing id.
func (s *Service) nextID() int64 {
	id := s.Now().UnixMilli()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.history {
		if h.ID >= id {
			id = h.ID + 1
		}
	}
	return id
}
