package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/claude/irontracker/internal/estimate"
	"github.com/claude/irontracker/internal/models"
)

// Metric selects what the exercise detail chart plots.
type Metric string

const (
	Metric1RM     Metric = "1rm"
	MetricMax     Metric = "max"
	MetricVolume  Metric = "volume"
	MetricTonnage Metric = "tonnage"
)

// ParseMetric defaults to the estimated 1RM.
func ParseMetric(s string) Metric {
	switch Metric(s) {
	case MetricMax, MetricVolume, MetricTonnage:
		return Metric(s)
	default:
		return Metric1RM
	}
}

// SeriesPoint is one session on an exercise detail chart.
type SeriesPoint struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ExerciseSeries returns one point per session in the window that has at least
// one working set of the exercise. Sessions without such sets are skipped,
// not zero-filled.
func (a *Aggregator) ExerciseSeries(p Period, exerciseID int, metric Metric) []SeriesPoint {
	kind := KindOf(a.library, exerciseID)
	out := []SeriesPoint{}
	for _, s := range a.Relevant(p) {
		var sets []models.SetRecord
		for _, ex := range s.Exercises {
			if ex.ExerciseID == exerciseID {
				sets = append(sets, ex.WorkingSets()...)
			}
		}
		if len(sets) == 0 {
			continue
		}
		out = append(out, SeriesPoint{
			Label: s.StartTime.In(a.now.Location()).Format(labelLayout),
			Date:  s.StartTime,
			Value: SessionMetric(kind, metric, sets),
		})
	}
	return out
}

// SessionMetric computes metric over the working sets of one exercise in one
// session, interpreting the fields according to kind.
func SessionMetric(kind Kind, metric Metric, sets []models.SetRecord) float64 {
	if metric == MetricVolume {
		return float64(len(sets))
	}
	var v float64
	for _, s := range sets {
		weight := estimate.ParseNumber(s.Weight)
		switch kind {
		case KindTimed:
			dur := float64(estimate.ParseDuration(s.Reps))
			switch metric {
			case Metric1RM:
				v = math.Max(v, weight)
			case MetricMax:
				v = math.Max(v, dur)
			case MetricTonnage:
				v += dur
			}
		case KindCardio:
			dist := estimate.ParseNumber(s.Reps)
			switch metric {
			case Metric1RM:
				v = math.Max(v, weight)
			case MetricMax:
				v = math.Max(v, dist)
			case MetricTonnage:
				v += dist
			}
		default:
			switch metric {
			case Metric1RM:
				v = math.Max(v, estimate.Estimate1RM(s.Weight, s.Reps))
			case MetricMax:
				v = math.Max(v, weight)
			case MetricTonnage:
				v += Tonnage(s)
			}
		}
	}
	return v
}

// ExerciseOption is an entry for the exercise picker.
type ExerciseOption struct {
	ID   int                 `json:"id"`
	Name string              `json:"name"`
	Type models.ExerciseType `json:"type,omitempty"`
}

// ExerciseOptions lists every exercise present anywhere in the history,
// sorted by name.
func (a *Aggregator) ExerciseOptions() []ExerciseOption {
	seen := map[int]bool{}
	out := []ExerciseOption{}
	for _, s := range a.history {
		for _, ex := range s.Exercises {
			if seen[ex.ExerciseID] {
				continue
			}
			seen[ex.ExerciseID] = true
			opt := ExerciseOption{ID: ex.ExerciseID, Name: models.UnknownExerciseName}
			if lib, ok := a.library.Find(ex.ExerciseID); ok {
				opt.Name = lib.Name
				opt.Type = lib.Type
			}
			out = append(out, opt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MuscleCounts returns working sets per primary muscle inside the window.
// Unknown exercises are skipped.
func (a *Aggregator) MuscleCounts(p Period) map[models.Muscle]int {
	counts := map[models.Muscle]int{}
	for _, s := range a.Relevant(p) {
		for _, ex := range s.Exercises {
			lib, ok := a.library.Find(ex.ExerciseID)
			if !ok {
				continue
			}
			if n := len(ex.WorkingSets()); n > 0 {
				counts[lib.Muscle] += n
			}
		}
	}
	return counts
}
