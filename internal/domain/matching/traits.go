package matching

import "fmt"

// SchemaVersion versiona el orden de traits. Los artifacts del scaler lo declaran
// y el loader rechaza cualquier versión distinta.
const SchemaVersion = 1

// Trait es el nombre de una dimensión del cuestionario / registro de mascota.
type Trait string

const (
	TraitDogs      Trait = "dogs"      // comodidad con perros
	TraitCats      Trait = "cats"      // comodidad con gatos
	TraitKids      Trait = "kids"      // comodidad con niños
	TraitEnergy    Trait = "energy"    // nivel de energía
	TraitAffection Trait = "affection" // nivel de afecto
	TraitTraining  Trait = "training"  // disposición a entrenar
)

const (
	MinRating = 1
	MaxRating = 5
)

// traitOrder es el orden canónico (mismo que el esquema de entrenamiento).
// No exportado para que nadie lo mute; usar Traits().
var traitOrder = [...]Trait{
	TraitDogs,
	TraitCats,
	TraitKids,
	TraitEnergy,
	TraitAffection,
	TraitTraining,
}

// NumTraits es la dimensión de todos los vectores.
const NumTraits = len(traitOrder)

// Traits devuelve una copia del orden canónico.
func Traits() []Trait {
	out := make([]Trait, NumTraits)
	copy(out, traitOrder[:])
	return out
}

// ParseTrait valida un nombre de columna/campo.
func ParseTrait(s string) (Trait, bool) {
	for _, t := range traitOrder {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Ratings mapea trait -> rating entero.
type Ratings map[Trait]int

// Validate exige todos los traits presentes y dentro de [MinRating, MaxRating].
func (r Ratings) Validate() error {
	for _, t := range traitOrder {
		v, ok := r[t]
		if !ok {
			return &MissingFeatureError{Trait: t}
		}
		if v < MinRating || v > MaxRating {
			return &RatingRangeError{Trait: t, Value: v}
		}
	}
	return nil
}

// SameOrder indica si names coincide exactamente con el orden canónico.
func SameOrder(names []string) bool {
	if len(names) != NumTraits {
		return false
	}
	for i, t := range traitOrder {
		if names[i] != string(t) {
			return false
		}
	}
	return true
}

func (t Trait) String() string { return string(t) }

// RatingRangeError: rating fuera de [1,5].
type RatingRangeError struct {
	Trait Trait
	Value int
}

func (e *RatingRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Trait, MinRating, MaxRating, e.Value)
}

func (e *RatingRangeError) Is(target error) bool { return target == ErrRatingOutOfRange }
