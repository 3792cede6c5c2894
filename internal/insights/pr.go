// Package insights implements personal record detection, the squat/bench/deadlift
// relative strength radar and the weekly rule-based training insights.
package insights

import (
	"math"
	"time"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/estimate"
	"github.com/claude/irontracker/internal/models"
)

// BestMetric returns the best same-kind value over the working sets:
// max distance for cardio, max held duration for timed exercises and the
// best unrounded 1RM estimate otherwise.
func BestMetric(kind analytics.Kind, sets []models.SetRecord) float64 {
	var best float64
	for _, s := range sets {
		if !s.Working() {
			continue
		}
		var v float64
		switch kind {
		case analytics.KindCardio:
			v = estimate.ParseNumber(s.Reps)
		case analytics.KindTimed:
			v = float64(estimate.ParseDuration(s.Reps))
		default:
			v = estimate.OneRepMax(estimate.ParseNumber(s.Weight), estimate.ParseNumber(s.Reps))
		}
		best = math.Max(best, v)
	}
	return best
}

// PR describes a record set in the latest session.
type PR struct {
	ExerciseID int       `json:"exercise_id"`
	Name       string    `json:"name"`
	SessionID  int64     `json:"session_id"`
	Date       time.Time `json:"date"`
	Previous   float64   `json:"previous"`
	Current    float64   `json:"current"`
}

// LatestPR compares each exercise of the most recent session with every
// strictly earlier session and returns the first exercise, in session order,
// whose best beats a non-zero earlier best. It returns nil when there is no
// such exercise or when lastSeen is at or after the latest session start.
func LatestPR(history []models.WorkoutSession, lib *models.Library, lastSeen *time.Time) *PR {
	if len(history) == 0 {
		return nil
	}
	latest := history[0]
	for _, s := range history[1:] {
		if s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	if lastSeen != nil && !lastSeen.Before(latest.StartTime) {
		return nil
	}

	for _, ex := range latest.Exercises {
		kind := analytics.KindOf(lib, ex.ExerciseID)
		current := BestMetric(kind, ex.Sets)
		if current == 0 {
			continue
		}
		var prior float64
		for _, s := range history {
			if !s.StartTime.Before(latest.StartTime) {
				continue
			}
			for _, earlier := range s.Exercises {
				if earlier.ExerciseID == ex.ExerciseID {
					prior = math.Max(prior, BestMetric(kind, earlier.Sets))
				}
			}
		}
		if prior > 0 && current > prior {
			return &PR{
				ExerciseID: ex.ExerciseID,
				Name:       lib.Name(ex.ExerciseID),
				SessionID:  latest.ID,
				Date:       latest.StartTime,
				Previous:   prior,
				Current:    current,
			}
		}
	}
	return nil
}

// DetectNewPR reports whether the latest session holds an unseen record.
func DetectNewPR(history []models.WorkoutSession, lib *models.Library, lastSeen *time.Time) bool {
	return LatestPR(history, lib, lastSeen) != nil
}
