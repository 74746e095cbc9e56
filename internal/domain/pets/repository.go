package pets

import "context"

// Repository carga la población de una especie desde el backing store.
// El orden devuelto es el orden de población (se usa para desempatar).
type Repository interface {
	ListBySpecies(ctx context.Context, species Species) ([]Pet, error)
}
