package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/claude/irontracker/internal/models"
)

// Recorder receives recompute measurements.
type Recorder interface {
	ObserveRecompute(trigger string, took time.Duration, sessions, weeklySets int)
}

// Cache owns the current snapshot and the inputs it was computed from.
// Writers hold the lock for the whole recompute, so readers only ever see a
// complete snapshot.
type Cache struct {
	log *slog.Logger
	rec Recorder
	now func() time.Time

	mu       sync.RWMutex
	stats    Stats
	history  []models.WorkoutSession
	library  *models.Library
	lastSeen *time.Time
}

// NewCache creates a cache holding the empty-history snapshot. rec may be nil.
func NewCache(log *slog.Logger, rec Recorder) *Cache {
	c := &Cache{log: log, rec: rec, now: time.Now}
	c.stats = Compute(nil, nil, nil, c.now())
	return c
}

// SetClock replaces the time source used for recomputes.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Update recomputes from new inputs and returns the new snapshot. The caller
// hands over ownership of history and library; neither may be mutated afterwards.
func (c *Cache) Update(history []models.WorkoutSession, library *models.Library, lastSeen *time.Time) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = history
	c.library = library
	c.lastSeen = lastSeen
	return c.recompute("update")
}

// Reindex recomputes from the last inputs.
func (c *Cache) Reindex() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recompute("reindex")
}

// Stats returns the current snapshot.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// recompute must be called with mu held for writing.
func (c *Cache) recompute(trigger string) Stats {
	start := time.Now()
	c.stats = Compute(c.history, c.library, c.lastSeen, c.now())
	took := time.Since(start)

	if c.rec != nil {
		c.rec.ObserveRecompute(trigger, took, len(c.history), c.stats.WeeklySets)
	}
	c.log.Debug("dashboard recomputed",
		"trigger", trigger,
		"sessions", len(c.history),
		"weekly_sets", c.stats.WeeklySets,
		"insights", len(c.stats.Insights),
		"has_new_pr", c.stats.HasNewPR,
		"took", took,
	)
	return c.stats
}
