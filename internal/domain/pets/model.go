package pets

import (
	"strings"

	"pet-matcher/internal/domain/matching"
)

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// AllSpecies en orden estable (usado para cargar modelos al arranque).
func AllSpecies() []Species {
	return []Species{SpeciesDog, SpeciesCat}
}

// ParseSpecies normaliza (trim + lower) y valida la especie.
func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	default:
		return "", false
	}
}

func (s Species) String() string { return string(s) }

// Pet es un candidato adoptable de la población de un refugio.
// La especie se fija en la ingesta y nunca se mezcla entre poblaciones.
type Pet struct {
	ID      string
	Name    string
	Species Species

	Breed string
	Size  string

	// Pass-through opcionales: el matcher no los usa.
	Age       *int
	Weight    *float64
	NewPeople *int
	ImageURL  string

	Ratings matching.Ratings
}
