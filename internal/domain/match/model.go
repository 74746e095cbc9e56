package match

import (
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
)

// Questionnaire es lo que envía el usuario; se usa una vez y se descarta.
type Questionnaire struct {
	Species string
	Ratings matching.Ratings
}

// Result es un candidato con su match% (ya redondeado a 2 decimales).
// El orden de un []Result es descendente por MatchPercentage.
type Result struct {
	Pet             pets.Pet
	MatchPercentage float64
}
