package analytics

import (
	"github.com/claude/irontracker/internal/estimate"
	"github.com/claude/irontracker/internal/models"
)

// Kind selects how a set's fields are interpreted.
type Kind int

const (
	// KindStrength reads weight x reps. Unknown exercises land here too.
	KindStrength Kind = iota
	// KindCardio reads weight as intensity and reps as distance.
	KindCardio
	// KindTimed reads reps as a held duration.
	KindTimed
)

// KindOf resolves the kind for a library id. Unresolved ids are never treated
// as cardio or timed.
func KindOf(lib *models.Library, exerciseID int) Kind {
	ex, ok := lib.Find(exerciseID)
	if !ok {
		return KindStrength
	}
	return KindForType(ex.Type)
}

// KindForType maps an exercise type to its kind.
func KindForType(t models.ExerciseType) Kind {
	switch {
	case t == models.TypeCardio:
		return KindCardio
	case t.TimeBased():
		return KindTimed
	default:
		return KindStrength
	}
}

// Tonnage returns weight x reps for a set.
func Tonnage(s models.SetRecord) float64 {
	return estimate.ParseNumber(s.Weight) * estimate.ParseNumber(s.Reps)
}

// countsTowardTonnage excludes types where weight x reps means nothing.
func countsTowardTonnage(lib *models.Library, exerciseID int) bool {
	ex, ok := lib.Find(exerciseID)
	if !ok {
		return true
	}
	switch ex.Type {
	case models.TypeCardio, models.TypeStatic, models.TypeStretching:
		return false
	default:
		return true
	}
}
