package models

// ExerciseType classifies a library exercise.
type ExerciseType string

const (
	TypeCompound   ExerciseType = "Polyarticulaire"
	TypeIsolation  ExerciseType = "Isolation"
	TypeCardio     ExerciseType = "Cardio"
	TypeStatic     ExerciseType = "Statique"
	TypeStretching ExerciseType = "Étirement"
)

// ExerciseTypes is the canonical display order for type groupings.
var ExerciseTypes = []ExerciseType{TypeCompound, TypeIsolation, TypeCardio, TypeStatic, TypeStretching}

// TimeBased reports whether reps hold a duration rather than a count.
func (t ExerciseType) TimeBased() bool {
	return t == TypeStatic || t == TypeStretching
}

// Color returns the chart colour for the type.
func (t ExerciseType) Color() string {
	switch t {
	case TypeCompound:
		return "#3b82f6"
	case TypeIsolation:
		return "#8b5cf6"
	case TypeCardio:
		return "#ef4444"
	case TypeStatic:
		return "#f59e0b"
	case TypeStretching:
		return "#10b981"
	default:
		return FallbackColor
	}
}

// Muscle is a primary muscle tag.
type Muscle string

const (
	MuscleChest      Muscle = "Pectoraux"
	MuscleBack       Muscle = "Dos"
	MuscleShoulders  Muscle = "Épaules"
	MuscleBiceps     Muscle = "Biceps"
	MuscleTriceps    Muscle = "Triceps"
	MuscleForearms   Muscle = "Avant-bras"
	MuscleQuads      Muscle = "Quadriceps"
	MuscleHamstrings Muscle = "Ischios"
	MuscleGlutes     Muscle = "Fessiers"
	// MuscleLegs is the legacy aggregate leg bucket used before quads,
	// hamstrings and glutes were logged separately.
	MuscleLegs   Muscle = "Jambes"
	MuscleCalves Muscle = "Mollets"
	MuscleAbs    Muscle = "Abdos"
	MuscleCardio Muscle = "Cardio"
)

// Muscles is the canonical display order for muscle groupings.
var Muscles = []Muscle{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps, MuscleForearms,
	MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleLegs, MuscleCalves, MuscleAbs, MuscleCardio,
}

// FallbackColor is used for any key without a dedicated colour.
const FallbackColor = "#94a3b8"

var muscleColors = map[Muscle]string{
	MuscleChest:      "#ef4444",
	MuscleBack:       "#3b82f6",
	MuscleShoulders:  "#f59e0b",
	MuscleBiceps:     "#8b5cf6",
	MuscleTriceps:    "#ec4899",
	MuscleForearms:   "#a855f7",
	MuscleQuads:      "#10b981",
	MuscleHamstrings: "#14b8a6",
	MuscleGlutes:     "#84cc16",
	MuscleLegs:       "#22c55e",
	MuscleCalves:     "#06b6d4",
	MuscleAbs:        "#eab308",
	MuscleCardio:     "#f97316",
}

// Color returns the chart colour for the muscle.
func (m Muscle) Color() string {
	if c, ok := muscleColors[m]; ok {
		return c
	}
	return FallbackColor
}

// EquipmentCategory groups equipment codes for the distribution chart.
type EquipmentCategory string

const (
	EquipBarbell    EquipmentCategory = "Barre"
	EquipDumbbell   EquipmentCategory = "Haltères"
	EquipMachine    EquipmentCategory = "Machine"
	EquipCable      EquipmentCategory = "Poulie"
	EquipBodyweight EquipmentCategory = "Poids du corps"
	EquipOther      EquipmentCategory = "Autre"
)

// EquipmentCategories is the canonical category order.
var EquipmentCategories = []EquipmentCategory{
	EquipBarbell, EquipDumbbell, EquipMachine, EquipCable, EquipBodyweight, EquipOther,
}

// Equipment codes stored on library entries.
const (
	EquipCodeBarbell    = "BB"
	EquipCodeEZBar      = "EZ"
	EquipCodeSmith      = "SM"
	EquipCodeTrapBar    = "TB"
	EquipCodeDumbbell   = "DB"
	EquipCodeKettlebell = "KB"
	EquipCodeMachine    = "MA"
	EquipCodeLegPress   = "LP"
	EquipCodeCable      = "CB"
	EquipCodePulley     = "PL"
	EquipCodeBodyweight = "BW"
	EquipCodeBand       = "BD"
)

// CategoryForEquipment maps an equipment code to its category.
// Unmapped codes, including the empty code, fall into EquipOther.
func CategoryForEquipment(code string) EquipmentCategory {
	switch code {
	case EquipCodeBarbell, EquipCodeEZBar, EquipCodeSmith, EquipCodeTrapBar:
		return EquipBarbell
	case EquipCodeDumbbell, EquipCodeKettlebell:
		return EquipDumbbell
	case EquipCodeMachine, EquipCodeLegPress:
		return EquipMachine
	case EquipCodeCable, EquipCodePulley:
		return EquipCable
	case EquipCodeBodyweight, EquipCodeBand:
		return EquipBodyweight
	default:
		return EquipOther
	}
}

// LibraryExercise is a catalog entry. The engine only reads these.
type LibraryExercise struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Type      ExerciseType `json:"type"`
	Muscle    Muscle       `json:"muscle"`
	Equipment string       `json:"equipment"`
	Favorite  bool         `json:"favorite,omitempty"`
	Archived  bool         `json:"archived,omitempty"`
}

// UnknownExerciseName is displayed for ids missing from the library.
const UnknownExerciseName = "Inconnu"

// Library is a read-only id index over the exercise catalog.
type Library struct {
	byID  map[int]LibraryExercise
	items []LibraryExercise
}

// NewLibrary indexes the given exercises. Later duplicates win.
func NewLibrary(exercises []LibraryExercise) *Library {
	l := &Library{
		byID:  make(map[int]LibraryExercise, len(exercises)),
		items: append([]LibraryExercise(nil), exercises...),
	}
	for _, ex := range exercises {
		l.byID[ex.ID] = ex
	}
	return l
}

// Find looks up an exercise by id. A nil library finds nothing.
func (l *Library) Find(id int) (LibraryExercise, bool) {
	if l == nil {
		return LibraryExercise{}, false
	}
	ex, ok := l.byID[id]
	return ex, ok
}

// Name returns the exercise name, or UnknownExerciseName on a miss.
func (l *Library) Name(id int) string {
	if ex, ok := l.Find(id); ok {
		return ex.Name
	}
	return UnknownExerciseName
}

// All returns a copy of the catalog in insertion order.
func (l *Library) All() []LibraryExercise {
	if l == nil {
		return nil
	}
	return append([]LibraryExercise(nil), l.items...)
}

// Len returns the number of catalog entries.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}
