// Package analytics derives per-view datasets from the workout history:
// window totals, weekly volume per muscle or type, equipment distribution and
// per-exercise time series.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/claude/irontracker/internal/estimate"
	"github.com/claude/irontracker/internal/models"
)

// labelLayout is the short day/month label used on chart axes.
const labelLayout = "02/01"

// defaultFatigue is used when a session's fatigue rating is missing or unparseable.
const defaultFatigue = 3

// Aggregator answers view queries over one snapshot of history and library.
// The snapshot must not be mutated while the aggregator is in use.
type Aggregator struct {
	history []models.WorkoutSession
	library *models.Library
	now     time.Time
}

// New creates an Aggregator. history may be in any order.
func New(history []models.WorkoutSession, library *models.Library, now time.Time) *Aggregator {
	return &Aggregator{history: history, library: library, now: now}
}

// Relevant returns the sessions inside the window, oldest first.
// The stored history is newest first; callers must not rely on input order here.
func (a *Aggregator) Relevant(p Period) []models.WorkoutSession {
	since := p.Since(a.now)
	var out []models.WorkoutSession
	for _, s := range a.history {
		if !s.StartTime.Before(since) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// Overview holds window totals.
type Overview struct {
	Sessions  int     `json:"sessions"`
	Sets      int     `json:"sets"`
	TonnageKg float64 `json:"tonnage_kg"`
	TonnageK  int     `json:"tonnage_k"`
}

// Overview returns session, working set and tonnage totals for the window.
// Cardio, static and stretching exercises are left out of tonnage.
func (a *Aggregator) Overview(p Period) Overview {
	var o Overview
	for _, s := range a.Relevant(p) {
		o.Sessions++
		for _, ex := range s.Exercises {
			withTonnage := countsTowardTonnage(a.library, ex.ExerciseID)
			for _, set := range ex.WorkingSets() {
				o.Sets++
				if withTonnage {
					o.TonnageKg += Tonnage(set)
				}
			}
		}
	}
	o.TonnageK = int(math.Round(o.TonnageKg / 1000))
	return o
}

// VolumeFatiguePoint is one session on the volume-vs-fatigue chart.
type VolumeFatiguePoint struct {
	Label   string    `json:"label"`
	Date    time.Time `json:"date"`
	Sets    int       `json:"sets"`
	Fatigue int       `json:"fatigue"`
}

// VolumeFatigue returns one point per session in the window.
func (a *Aggregator) VolumeFatigue(p Period) []VolumeFatiguePoint {
	sessions := a.Relevant(p)
	out := make([]VolumeFatiguePoint, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, VolumeFatiguePoint{
			Label:   s.StartTime.In(a.now.Location()).Format(labelLayout),
			Date:    s.StartTime,
			Sets:    s.WorkingSetCount(),
			Fatigue: estimate.ParseInt(s.Fatigue, defaultFatigue),
		})
	}
	return out
}

// GroupMode selects the weekly volume grouping.
type GroupMode string

const (
	GroupByMuscle GroupMode = "muscle"
	GroupByType   GroupMode = "type"
)

// ParseGroupMode defaults to grouping by muscle.
func ParseGroupMode(s string) GroupMode {
	if GroupMode(s) == GroupByType {
		return GroupByType
	}
	return GroupByMuscle
}

// VolumeRow is the weekly average for one muscle or type.
type VolumeRow struct {
	Key     string  `json:"key"`
	Sets    int     `json:"sets"`
	AvgSets float64 `json:"avg_sets"`
	Color   string  `json:"color"`
}

// WeeklyVolume returns average working sets per week for each muscle or type.
// Canonical keys are always listed in canonical order, except the legacy
// leg bucket which is dropped when empty. Other keys follow in first-seen
// order when non-zero. Unknown exercises have no key and are skipped.
func (a *Aggregator) WeeklyVolume(p Period, mode GroupMode) []VolumeRow {
	counts := map[string]int{}
	var seen []string
	for _, s := range a.Relevant(p) {
		for _, ex := range s.Exercises {
			lib, ok := a.library.Find(ex.ExerciseID)
			if !ok {
				continue
			}
			key := string(lib.Muscle)
			if mode == GroupByType {
				key = string(lib.Type)
			}
			if key == "" {
				continue
			}
			n := len(ex.WorkingSets())
			if n == 0 {
				continue
			}
			if _, ok := counts[key]; !ok {
				seen = append(seen, key)
			}
			counts[key] += n
		}
	}

	weeks := p.Weeks()
	row := func(key, color string) VolumeRow {
		c := counts[key]
		return VolumeRow{
			Key:     key,
			Sets:    c,
			AvgSets: math.Round(float64(c)/weeks*10) / 10,
			Color:   color,
		}
	}

	var out []VolumeRow
	canonical := map[string]bool{}
	if mode == GroupByType {
		for _, t := range models.ExerciseTypes {
			canonical[string(t)] = true
			out = append(out, row(string(t), t.Color()))
		}
	} else {
		for _, m := range models.Muscles {
			canonical[string(m)] = true
			if m == models.MuscleLegs && counts[string(m)] == 0 {
				continue
			}
			out = append(out, row(string(m), m.Color()))
		}
	}
	for _, key := range seen {
		if canonical[key] || counts[key] == 0 {
			continue
		}
		out = append(out, row(key, models.FallbackColor))
	}
	return out
}

// EquipmentShare is the working set count for one equipment category.
type EquipmentShare struct {
	Category models.EquipmentCategory `json:"category"`
	Sets     int                      `json:"sets"`
}

// EquipmentDistribution returns working sets per equipment category, most used
// first. Categories with no sets are omitted.
func (a *Aggregator) EquipmentDistribution(p Period) []EquipmentShare {
	counts := map[models.EquipmentCategory]int{}
	for _, s := range a.Relevant(p) {
		for _, ex := range s.Exercises {
			n := len(ex.WorkingSets())
			if n == 0 {
				continue
			}
			code := ""
			if lib, ok := a.library.Find(ex.ExerciseID); ok {
				code = lib.Equipment
			}
			counts[models.CategoryForEquipment(code)] += n
		}
	}
	var out []EquipmentShare
	for _, c := range models.EquipmentCategories {
		if counts[c] > 0 {
			out = append(out, EquipmentShare{Category: c, Sets: counts[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sets > out[j].Sets })
	return out
}
