package memory

import (
	"context"
	"sync"

	"pet-matcher/internal/domain/pets"
)

// PetRepo es una población en memoria, segura para uso concurrente.
type PetRepo struct {
	mu        sync.RWMutex
	bySpecies map[pets.Species][]pets.Pet
}

// NewPetRepo crea una población en memoria (dev/tests). Los items se agrupan
// por especie conservando el orden recibido.
func NewPetRepo(seed ...pets.Pet) *PetRepo {
	r := &PetRepo{bySpecies: make(map[pets.Species][]pets.Pet)}
	for _, p := range seed {
		r.bySpecies[p.Species] = append(r.bySpecies[p.Species], p)
	}
	return r
}

// Replace reemplaza la población completa de una especie (swap entero,
// los lectores nunca ven una lista a medio actualizar).
func (r *PetRepo) Replace(species pets.Species, items []pets.Pet) {
	cp := make([]pets.Pet, len(items))
	copy(cp, items)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySpecies[species] = cp
}

func (r *PetRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySpecies[species]
	out := make([]pets.Pet, len(items))
	copy(out, items)
	return out, nil
}
