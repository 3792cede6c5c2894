package models

import (
	"testing"
	"time"
)

// TestWorkingSetCount verifies warmups and undone sets are not counted.
func TestWorkingSetCount(t *testing.T) {
	s := WorkoutSession{Exercises: []ExerciseInstance{
		{ExerciseID: 1, Sets: []SetRecord{
			{Weight: "60", Reps: "10", Done: true, IsWarmup: true},
			{Weight: "100", Reps: "5", Done: true},
			{Weight: "100", Reps: "5"},
		}},
		{ExerciseID: 2, Sets: []SetRecord{{Weight: "20", Reps: "12", Done: true}}},
	}}
	if got := s.WorkingSetCount(); got != 2 {
		t.Errorf("WorkingSetCount = %d, want 2", got)
	}
	if got := len(s.Exercises[0].WorkingSets()); got != 1 {
		t.Errorf("WorkingSets = %d, want 1", got)
	}
}

// TestClone verifies the copy does not alias the original sets.
func TestClone(t *testing.T) {
	orig := WorkoutSession{ID: 1, Exercises: []ExerciseInstance{
		{ExerciseID: 1, Sets: []SetRecord{{Weight: "100", Reps: "5", Done: true}}},
	}}
	c := orig.Clone()
	c.Exercises[0].Sets[0].Weight = "200"
	c.Exercises[0].ExerciseID = 9
	if orig.Exercises[0].Sets[0].Weight != "100" || orig.Exercises[0].ExerciseID != 1 {
		t.Errorf("original mutated through clone: %+v", orig.Exercises[0])
	}
}

// TestSortHistory verifies newest-first ordering with an id tiebreak.
func TestSortHistory(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h := []WorkoutSession{
		{ID: 1, StartTime: base},
		{ID: 3, StartTime: base.Add(time.Hour)},
		{ID: 2, StartTime: base},
	}
	SortHistory(h)
	want := []int64{3, 2, 1}
	for i, id := range want {
		if h[i].ID != id {
			t.Errorf("h[%d].ID = %d, want %d", i, h[i].ID, id)
		}
	}
}
