package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/claude/irontracker/internal/models"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

var testLibrary = models.NewLibrary([]models.LibraryExercise{
	{ID: 1, Name: "Développé couché", Type: models.TypeCompound, Muscle: models.MuscleChest, Equipment: "BB"},
	{ID: 10, Name: "Tirage poulie", Type: models.TypeCompound, Muscle: models.MuscleBack, Equipment: "CB"},
	{ID: 20, Name: "Squat", Type: models.TypeCompound, Muscle: models.MuscleQuads, Equipment: "BB"},
	{ID: 21, Name: "Presse", Type: models.TypeCompound, Muscle: models.MuscleLegs, Equipment: "LP"},
	{ID: 40, Name: "Curl haltères", Type: models.TypeIsolation, Muscle: models.MuscleBiceps, Equipment: "DB"},
	{ID: 50, Name: "Gainage", Type: models.TypeStatic, Muscle: models.MuscleAbs, Equipment: "BW"},
	{ID: 60, Name: "Rameur", Type: models.TypeCardio, Muscle: models.MuscleCardio, Equipment: "MA"},
	{ID: 70, Name: "Hip thrust", Type: models.TypeCompound, Muscle: "Adducteurs", Equipment: "XX"},
})

func done(weight, reps string) models.SetRecord {
	return models.SetRecord{Weight: weight, Reps: reps, Done: true}
}

func warmup(weight, reps string) models.SetRecord {
	return models.SetRecord{Weight: weight, Reps: reps, Done: true, IsWarmup: true}
}

func undone(weight, reps string) models.SetRecord {
	return models.SetRecord{Weight: weight, Reps: reps}
}

func session(id int64, daysAgo int, exercises ...models.ExerciseInstance) models.WorkoutSession {
	return models.WorkoutSession{
		ID:        id,
		StartTime: testNow.AddDate(0, 0, -daysAgo),
		Exercises: exercises,
		Mode:      models.ModeLog,
	}
}

func exercise(id int, sets ...models.SetRecord) models.ExerciseInstance {
	return models.ExerciseInstance{ExerciseID: id, Sets: sets}
}

func repeat(n int, s models.SetRecord) []models.SetRecord {
	out := make([]models.SetRecord, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// TestRelevantFiltersAndSortsAscending verifies the window bound and that
// output is chronological even though history is stored newest first.
func TestRelevantFiltersAndSortsAscending(t *testing.T) {
	history := []models.WorkoutSession{
		session(3, 1),
		session(2, 6),
		session(1, 20),
	}
	agg := New(history, testLibrary, testNow)

	got := agg.Relevant(Period7d)
	if len(got) != 2 {
		t.Fatalf("Relevant(7d) = %d sessions, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("Relevant(7d) order = [%d %d], want [2 3]", got[0].ID, got[1].ID)
	}
	if n := len(agg.Relevant(Period30d)); n != 3 {
		t.Errorf("Relevant(30d) = %d sessions, want 3", n)
	}
}

// TestRelevantBoundaryInclusive verifies a session exactly at the window start is kept.
func TestRelevantBoundaryInclusive(t *testing.T) {
	s := models.WorkoutSession{ID: 1, StartTime: testNow.Add(-7 * 24 * time.Hour)}
	agg := New([]models.WorkoutSession{s}, testLibrary, testNow)
	if n := len(agg.Relevant(Period7d)); n != 1 {
		t.Errorf("Relevant(7d) at boundary = %d, want 1", n)
	}
}

// TestNonWorkingSetsExcluded verifies that warmup and undone sets contribute
// to no aggregate at all.
func TestNonWorkingSetsExcluded(t *testing.T) {
	history := []models.WorkoutSession{
		session(1, 1,
			exercise(1, warmup("60", "10"), undone("100", "5")),
			exercise(60, warmup("5", "2000")),
			exercise(50, undone("0", "1:00")),
		),
	}
	agg := New(history, testLibrary, testNow)

	o := agg.Overview(Period7d)
	if o.Sets != 0 || o.TonnageKg != 0 || o.TonnageK != 0 {
		t.Errorf("Overview = %+v, want zero sets and tonnage", o)
	}
	if o.Sessions != 1 {
		t.Errorf("Overview.Sessions = %d, want 1", o.Sessions)
	}
	for _, row := range agg.WeeklyVolume(Period7d, GroupByMuscle) {
		if row.Sets != 0 {
			t.Errorf("WeeklyVolume %s = %d, want 0", row.Key, row.Sets)
		}
	}
	if eq := agg.EquipmentDistribution(Period7d); len(eq) != 0 {
		t.Errorf("EquipmentDistribution = %v, want empty", eq)
	}
	if pts := agg.ExerciseSeries(Period7d, 1, Metric1RM); len(pts) != 0 {
		t.Errorf("ExerciseSeries = %v, want empty", pts)
	}
	if vf := agg.VolumeFatigue(Period7d); vf[0].Sets != 0 {
		t.Errorf("VolumeFatigue sets = %d, want 0", vf[0].Sets)
	}
}

// TestOverviewTonnage verifies tonnage sums strength sets only and is
// reported in thousands.
func TestOverviewTonnage(t *testing.T) {
	history := []models.WorkoutSession{
		session(1, 2,
			exercise(1, done("100", "10"), done("100", "10"), warmup("60", "10")),
			exercise(60, done("10", "5000")),
			exercise(50, done("20", "60")),
			exercise(999, done("50", "10")),
		),
		session(2, 40, exercise(1, done("100", "10"))),
	}
	agg := New(history, testLibrary, testNow)

	o := agg.Overview(Period30d)
	if o.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", o.Sessions)
	}
	if o.Sets != 5 {
		t.Errorf("Sets = %d, want 5", o.Sets)
	}
	// 2000 from bench, 500 from the unknown exercise
	if o.TonnageKg != 2500 {
		t.Errorf("TonnageKg = %v, want 2500", o.TonnageKg)
	}
	if o.TonnageK != 3 {
		t.Errorf("TonnageK = %d, want 3", o.TonnageK)
	}
}

// TestVolumeFatigueDefaults verifies fatigue parsing with the default of 3.
func TestVolumeFatigueDefaults(t *testing.T) {
	s1 := session(1, 2, exercise(1, done("100", "5")))
	s1.Fatigue = "4"
	s2 := session(2, 1, exercise(1, done("100", "5"), done("100", "5")))
	s2.Fatigue = "beaucoup"
	agg := New([]models.WorkoutSession{s2, s1}, testLibrary, testNow)

	pts := agg.VolumeFatigue(Period7d)
	if len(pts) != 2 {
		t.Fatalf("points = %d, want 2", len(pts))
	}
	if pts[0].Fatigue != 4 || pts[0].Sets != 1 {
		t.Errorf("pts[0] = %+v, want fatigue 4, sets 1", pts[0])
	}
	if pts[1].Fatigue != 3 || pts[1].Sets != 2 {
		t.Errorf("pts[1] = %+v, want fatigue 3, sets 2", pts[1])
	}
	if pts[0].Label != "16/03" {
		t.Errorf("pts[0].Label = %q, want 16/03", pts[0].Label)
	}
}

// TestWeeklyVolumeAveraging verifies 14 sets over a 30-day window average to 3.5 per week.
func TestWeeklyVolumeAveraging(t *testing.T) {
	history := []models.WorkoutSession{
		session(3, 2, exercise(1, repeat(4, done("80", "8"))...)),
		session(2, 10, exercise(1, repeat(5, done("80", "8"))...)),
		session(1, 25, exercise(1, repeat(5, done("80", "8"))...)),
	}
	agg := New(history, testLibrary, testNow)

	var chest *VolumeRow
	rows := agg.WeeklyVolume(Period30d, GroupByMuscle)
	for i := range rows {
		if rows[i].Key == string(models.MuscleChest) {
			chest = &rows[i]
		}
	}
	if chest == nil {
		t.Fatal("no Pectoraux row")
	}
	want := math.Round(14.0/4*10) / 10
	if chest.AvgSets != want {
		t.Errorf("Pectoraux AvgSets = %v, want %v", chest.AvgSets, want)
	}
	if chest.Sets != 14 {
		t.Errorf("Pectoraux Sets = %d, want 14", chest.Sets)
	}
}

// TestWeeklyVolumeOrdering verifies canonical order, the hidden legacy leg
// bucket, and dynamically discovered keys appended at the end.
func TestWeeklyVolumeOrdering(t *testing.T) {
	history := []models.WorkoutSession{
		session(1, 1,
			exercise(70, done("100", "10")),
			exercise(40, done("12", "10")),
		),
	}
	agg := New(history, testLibrary, testNow)
	rows := agg.WeeklyVolume(Period7d, GroupByMuscle)

	for _, r := range rows {
		if r.Key == string(models.MuscleLegs) {
			t.Errorf("legacy Jambes row shown with zero sets")
		}
	}
	if rows[0].Key != string(models.MuscleChest) {
		t.Errorf("first row = %q, want Pectoraux", rows[0].Key)
	}
	last := rows[len(rows)-1]
	if last.Key != "Adducteurs" || last.Sets != 1 || last.Color != models.FallbackColor {
		t.Errorf("last row = %+v, want Adducteurs with 1 set and fallback colour", last)
	}
	// Jambes is hidden, Adducteurs is appended
	if want := len(models.Muscles); len(rows) != want {
		t.Errorf("rows = %d, want %d", len(rows), want)
	}

	history = append(history, session(2, 2, exercise(21, done("200", "10"))))
	rows = New(history, testLibrary, testNow).WeeklyVolume(Period7d, GroupByMuscle)
	found := false
	for _, r := range rows {
		if r.Key == string(models.MuscleLegs) {
			found = true
		}
	}
	if !found {
		t.Error("legacy Jambes row hidden despite non-zero sets")
	}
}

// TestWeeklyVolumeByType verifies type grouping lists every canonical type.
func TestWeeklyVolumeByType(t *testing.T) {
	history := []models.WorkoutSession{
		session(1, 1, exercise(40, repeat(3, done("12", "10"))...), exercise(999, done("1", "1"))),
	}
	rows := New(history, testLibrary, testNow).WeeklyVolume(Period7d, GroupByType)
	if len(rows) != len(models.ExerciseTypes) {
		t.Fatalf("rows = %d, want %d", len(rows), len(models.ExerciseTypes))
	}
	if rows[1].Key != string(models.TypeIsolation) || rows[1].AvgSets != 3 {
		t.Errorf("rows[1] = %+v, want Isolation with 3", rows[1])
	}
}

// TestEquipmentDistribution verifies category mapping, the fallback and sort order.
func TestEquipmentDistribution(t *testing.T) {
	history := []models.WorkoutSession{
		session(1, 1,
			exercise(1, done("100", "5")),
			exercise(10, repeat(3, done("50", "10"))...),
			exercise(40, repeat(2, done("12", "10"))...),
			exercise(70, done("1", "1")),
			exercise(999, done("1", "1")),
		),
	}
	got := New(history, testLibrary, testNow).EquipmentDistribution(Period7d)
	want := []EquipmentShare{
		{models.EquipCable, 3},
		{models.EquipDumbbell, 2},
		{models.EquipOther, 2},
		{models.EquipBarbell, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("EquipmentDistribution = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
