package model

import (
	"errors"
	"fmt"

	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"

	"github.com/goccy/go-json"
)

var ErrInvalidArtifact = errors.New("invalid scaler artifact")

// Artifact es el formato serializado de un scaler ajustado para una especie.
type Artifact struct {
	SchemaVersion int       `json:"schema_version"`
	Species       string    `json:"species"`
	Features      []string  `json:"features"`
	Mean          []float64 `json:"mean"`
	Scale         []float64 `json:"scale"`
}

// DecodeArtifact parsea JSON sin validar contenido; ver Artifact.Scaler.
func DecodeArtifact(raw []byte) (Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return a, nil
}

// Scaler valida el artifact contra la especie esperada y el orden de traits,
// y construye el scaler.
func (a Artifact) Scaler(species pets.Species, policy matching.ZeroScalePolicy) (*matching.Scaler, error) {
	if a.SchemaVersion != matching.SchemaVersion {
		return nil, fmt.Errorf("%w: schema_version %d, want %d", ErrInvalidArtifact, a.SchemaVersion, matching.SchemaVersion)
	}
	got, ok := pets.ParseSpecies(a.Species)
	if !ok || got != species {
		return nil, fmt.Errorf("%w: species %q, want %q", ErrInvalidArtifact, a.Species, species)
	}
	if !matching.SameOrder(a.Features) {
		return nil, fmt.Errorf("%w: features %v do not match trait order", ErrInvalidArtifact, a.Features)
	}

	sc, err := matching.NewScaler(a.Mean, a.Scale, policy)
	if err != nil {
		return nil, fmt.Errorf("%s scaler: %w", species, err)
	}
	return sc, nil
}

// NewArtifact serializa un scaler ya ajustado (lo usa matchctl inspect-model --json).
func NewArtifact(species pets.Species, sc *matching.Scaler) Artifact {
	features := make([]string, 0, matching.NumTraits)
	for _, t := range matching.Traits() {
		features = append(features, t.String())
	}
	return Artifact{
		SchemaVersion: matching.SchemaVersion,
		Species:       string(species),
		Features:      features,
		Mean:          sc.Mean(),
		Scale:         sc.Scale(),
	}
}

// Encode devuelve el JSON indentado del artifact.
func (a Artifact) Encode() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
