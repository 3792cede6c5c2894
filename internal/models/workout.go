package models

import (
	"sort"
	"time"
)

// SessionMode distinguishes a live session from a manually logged one.
type SessionMode string

const (
	ModeActive SessionMode = "active"
	ModeLog    SessionMode = "log"
)

// SetRecord is one performed set. Numeric fields are kept as the strings the
// user typed; parsing is lenient and happens at computation time.
type SetRecord struct {
	Weight      string     `json:"weight"`
	Reps        string     `json:"reps"`
	RIR         string     `json:"rir,omitempty"`
	Done        bool       `json:"done"`
	IsWarmup    bool       `json:"is_warmup"`
	Note        string     `json:"note,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Working reports whether the set counts toward aggregates.
func (s SetRecord) Working() bool {
	return s.Done && !s.IsWarmup
}

// ExerciseInstance is one exercise performed within a session.
type ExerciseInstance struct {
	ExerciseID  int         `json:"exercise_id"`
	RestSeconds int         `json:"rest_seconds"`
	Sets        []SetRecord `json:"sets"`
	Notes       string      `json:"notes,omitempty"`
	IsBonus     bool        `json:"is_bonus,omitempty"`
}

// WorkingSets returns the completed, non-warmup sets in logged order.
func (e ExerciseInstance) WorkingSets() []SetRecord {
	var out []SetRecord
	for _, s := range e.Sets {
		if s.Working() {
			out = append(out, s)
		}
	}
	return out
}

// WorkoutSession is one logged or live workout.
// ProgramName and SessionName are denormalized copies, not references.
type WorkoutSession struct {
	ID          int64              `json:"id"`
	ProgramName string             `json:"program_name"`
	SessionName string             `json:"session_name"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     *time.Time         `json:"end_time,omitempty"`
	BodyWeight  string             `json:"body_weight,omitempty"`
	Fatigue     string             `json:"fatigue,omitempty"`
	Exercises   []ExerciseInstance `json:"exercises"`
	Mode        SessionMode        `json:"mode"`
}

// WorkingSetCount counts completed non-warmup sets across all exercises.
func (w WorkoutSession) WorkingSetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if s.Working() {
				n++
			}
		}
	}
	return n
}

// Clone returns a copy that shares no exercise or set slices with w.
func (w WorkoutSession) Clone() WorkoutSession {
	out := w
	out.Exercises = make([]ExerciseInstance, len(w.Exercises))
	for i, ex := range w.Exercises {
		ex.Sets = append([]SetRecord(nil), ex.Sets...)
		out.Exercises[i] = ex
	}
	return out
}

// SortHistory orders sessions newest first. Equal start times keep the
// higher id first.
func SortHistory(history []WorkoutSession) {
	sort.SliceStable(history, func(i, j int) bool {
		a, b := history[i], history[j]
		if a.StartTime.Equal(b.StartTime) {
			return a.ID > b.ID
		}
		return a.StartTime.After(b.StartTime)
	})
}
