package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/models"
)

// Level is the severity of an insight.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
	LevelSuccess Level = "success"
)

// Insight is one ranked training note. Lower priority is more urgent.
type Insight struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Level    Level  `json:"level"`
	Priority int    `json:"priority"`
}

// TargetWeeklySets is the weekly set count at which a primary muscle stops
// being reported as under-dosed.
const TargetWeeklySets = 10

// legacyLegsDominant is the legacy leg count above which granular leg
// muscles are no longer checked.
const legacyLegsDominant = 10

type primaryMuscle struct {
	muscle models.Muscle
	key    string
}

// primaryMuscles are checked for missing or low weekly volume, in this order.
var primaryMuscles = []primaryMuscle{
	{models.MuscleChest, "pectoraux"},
	{models.MuscleBack, "dos"},
	{models.MuscleShoulders, "epaules"},
	{models.MuscleLegs, "jambes"},
	{models.MuscleQuads, "quadriceps"},
	{models.MuscleHamstrings, "ischios"},
	{models.MuscleGlutes, "fessiers"},
}

func isGranularLeg(m models.Muscle) bool {
	return m == models.MuscleQuads || m == models.MuscleHamstrings || m == models.MuscleGlutes
}

// Generate evaluates the rule set over the seven days ending at now.
func Generate(history []models.WorkoutSession, lib *models.Library, now time.Time) []Insight {
	if len(history) == 0 {
		return []Insight{{
			ID:       "welcome",
			Title:    "Bienvenue",
			Text:     "Enregistre ta première séance pour obtenir des conseils personnalisés.",
			Level:    LevelInfo,
			Priority: 1,
		}}
	}

	counts := analytics.New(history, lib, now).MuscleCounts(analytics.Period7d)
	chest := counts[models.MuscleChest]
	back := counts[models.MuscleBack]
	quads := counts[models.MuscleQuads]
	hams := counts[models.MuscleHamstrings]

	var out []Insight

	// Each ratio is an independent guard; opposite notes may coexist.
	if back > 0 && float64(chest)/float64(back) > 1.5 {
		out = append(out, Insight{
			ID:       "ratio_push_pull",
			Title:    "Déséquilibre poussée/tirage",
			Text:     fmt.Sprintf("%d séries de pectoraux pour %d de dos cette semaine. Ajoute du tirage pour protéger tes épaules.", chest, back),
			Level:    LevelWarning,
			Priority: 2,
		})
	}
	if chest > 0 && float64(back)/float64(chest) > 1.5 {
		out = append(out, Insight{
			ID:       "ratio_pull_push",
			Title:    "Dominante tirage",
			Text:     fmt.Sprintf("%d séries de dos pour %d de pectoraux cette semaine.", back, chest),
			Level:    LevelInfo,
			Priority: 3,
		})
	}
	if hams > 0 && float64(quads)/float64(hams) > 2 {
		out = append(out, Insight{
			ID:       "ratio_quad_ham",
			Title:    "Déséquilibre quadriceps/ischios",
			Text:     fmt.Sprintf("%d séries de quadriceps pour %d d'ischios cette semaine. Renforce l'arrière de la cuisse.", quads, hams),
			Level:    LevelWarning,
			Priority: 2,
		})
	}

	granular := quads + hams + counts[models.MuscleGlutes]
	legacy := counts[models.MuscleLegs]
	for _, pm := range primaryMuscles {
		if pm.muscle == models.MuscleLegs && granular > 0 {
			continue
		}
		if isGranularLeg(pm.muscle) && legacy > legacyLegsDominant {
			continue
		}
		n := counts[pm.muscle]
		switch {
		case n == 0:
			out = append(out, Insight{
				ID:       "missing_" + pm.key,
				Title:    fmt.Sprintf("%s absents", pm.muscle),
				Text:     fmt.Sprintf("Aucune série de %s sur les 7 derniers jours.", pm.muscle),
				Level:    LevelDanger,
				Priority: 1,
			})
		case n < TargetWeeklySets:
			out = append(out, Insight{
				ID:       "low_" + pm.key,
				Title:    fmt.Sprintf("Volume faible : %s", pm.muscle),
				Text:     fmt.Sprintf("%d séries de %s cette semaine, vise au moins %d.", n, pm.muscle, TargetWeeklySets),
				Level:    LevelWarning,
				Priority: 4,
			})
		}
	}

	if len(out) == 0 {
		out = append(out, Insight{
			ID:       "on_pace",
			Title:    "Dans le rythme",
			Text:     "Volume équilibré sur tous les groupes principaux cette semaine.",
			Level:    LevelSuccess,
			Priority: 5,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
