package insights

import (
	"math"
	"time"

	"github.com/claude/irontracker/internal/estimate"
	"github.com/claude/irontracker/internal/models"
)

// DefaultBodyWeight is used when no session records a usable body weight.
const DefaultBodyWeight = 75.0

// Elite bodyweight multiples that map to a full radar score.
const (
	EliteSquat    = 2.2
	EliteBench    = 1.7
	EliteDeadlift = 2.8
)

// dumbbellBenchFactor converts a per-hand dumbbell load to a barbell equivalent.
const dumbbellBenchFactor = 2 / 0.8

// Library ids counted as bench press and deadlift variations.
var (
	BenchIDs    = []int{1, 2, 3}
	DeadliftIDs = []int{30, 31, 32}
)

// Lift is one axis of the radar.
type Lift struct {
	Name  string  `json:"name"`
	Score int     `json:"score"`
	Ratio float64 `json:"ratio"`
	Best  float64 `json:"best"`
}

// Radar is the relative strength summary over the whole history.
type Radar struct {
	Lifts      []Lift  `json:"lifts"`
	BodyWeight float64 `json:"body_weight"`
	Total      float64 `json:"total"`
	TotalRatio float64 `json:"total_ratio"`
}

// SBDRadar scans the entire history for the best squat, bench and deadlift
// estimates and scores them against elite bodyweight ratios.
func SBDRadar(history []models.WorkoutSession, lib *models.Library) Radar {
	bw := BodyWeight(history)

	squat := bestWhere(history, lib, func(ex models.LibraryExercise) bool {
		return ex.Type == models.TypeCompound && ex.Muscle == models.MuscleQuads
	}, false)
	if squat == 0 {
		squat = bestWhere(history, lib, func(ex models.LibraryExercise) bool {
			return ex.Type == models.TypeCompound && ex.Muscle == models.MuscleLegs
		}, false)
	}
	bench := bestWhere(history, lib, inIDs(BenchIDs), true)
	deadlift := bestWhere(history, lib, inIDs(DeadliftIDs), false)

	r := Radar{
		Lifts: []Lift{
			lift("Squat", squat, bw, EliteSquat),
			lift("Bench", bench, bw, EliteBench),
			lift("Deadlift", deadlift, bw, EliteDeadlift),
		},
		BodyWeight: bw,
	}
	for _, l := range r.Lifts {
		r.Total += l.Best
	}
	r.TotalRatio = round2(r.Total / bw)
	return r
}

// BodyWeight returns the body weight of the most recent session that has a
// parseable non-zero value, or DefaultBodyWeight.
func BodyWeight(history []models.WorkoutSession) float64 {
	bw := DefaultBodyWeight
	var at time.Time
	found := false
	for _, s := range history {
		v := estimate.ParseNumber(s.BodyWeight)
		if v <= 0 {
			continue
		}
		if !found || s.StartTime.After(at) {
			bw, at, found = v, s.StartTime, true
		}
	}
	return bw
}

func lift(name string, best, bw, elite float64) Lift {
	ratio := best / bw
	return Lift{
		Name:  name,
		Score: int(math.Min(100, math.Round(100*ratio/elite))),
		Ratio: round2(ratio),
		Best:  math.Round(best),
	}
}

func inIDs(ids []int) func(models.LibraryExercise) bool {
	return func(ex models.LibraryExercise) bool {
		for _, id := range ids {
			if ex.ID == id {
				return true
			}
		}
		return false
	}
}

// bestWhere returns the best unrounded 1RM among working sets of library
// exercises matching keep. With normalizeDumbbell, dumbbell loads are
// converted to a barbell equivalent first.
func bestWhere(history []models.WorkoutSession, lib *models.Library, keep func(models.LibraryExercise) bool, normalizeDumbbell bool) float64 {
	var best float64
	for _, s := range history {
		for _, ex := range s.Exercises {
			libEx, ok := lib.Find(ex.ExerciseID)
			if !ok || !keep(libEx) {
				continue
			}
			dumbbell := normalizeDumbbell && libEx.Equipment == models.EquipCodeDumbbell
			for _, set := range ex.WorkingSets() {
				w := estimate.ParseNumber(set.Weight)
				if dumbbell {
					w *= dumbbellBenchFactor
				}
				best = math.Max(best, estimate.OneRepMax(w, estimate.ParseNumber(set.Reps)))
			}
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
