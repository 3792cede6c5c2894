package models

import "testing"

func TestCategoryForEquipment(t *testing.T) {
	tests := []struct {
		code string
		want EquipmentCategory
	}{
		{"BB", EquipBarbell},
		{"EZ", EquipBarbell},
		{"KB", EquipDumbbell},
		{"LP", EquipMachine},
		{"PL", EquipCable},
		{"BD", EquipBodyweight},
		{"", EquipOther},
		{"bb", EquipOther},
	}
	for _, tt := range tests {
		if got := CategoryForEquipment(tt.code); got != tt.want {
			t.Errorf("CategoryForEquipment(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

// TestColorFallback verifies unmapped keys get the grey fallback, never "".
func TestColorFallback(t *testing.T) {
	if got := Muscle("Adducteurs").Color(); got != FallbackColor {
		t.Errorf("unknown muscle colour = %q, want %q", got, FallbackColor)
	}
	if got := ExerciseType("Yoga").Color(); got != FallbackColor {
		t.Errorf("unknown type colour = %q, want %q", got, FallbackColor)
	}
	for _, m := range Muscles {
		if m.Color() == FallbackColor {
			t.Errorf("canonical muscle %s has no dedicated colour", m)
		}
	}
}

// TestLibraryLookup verifies misses degrade instead of panicking, including on a nil library.
func TestLibraryLookup(t *testing.T) {
	lib := NewLibrary([]LibraryExercise{{ID: 1, Name: "Squat"}, {ID: 1, Name: "Squat barre"}})
	if got := lib.Name(1); got != "Squat barre" {
		t.Errorf("Name(1) = %q, want later duplicate", got)
	}
	if got := lib.Name(42); got != UnknownExerciseName {
		t.Errorf("Name(42) = %q, want %q", got, UnknownExerciseName)
	}
	var nilLib *Library
	if _, ok := nilLib.Find(1); ok {
		t.Error("nil library found an exercise")
	}
	if nilLib.Len() != 0 || nilLib.All() != nil {
		t.Error("nil library not empty")
	}
}
