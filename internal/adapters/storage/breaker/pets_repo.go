package breaker

import (
	"context"
	"errors"
	"time"

	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/logger"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrOpen se devuelve mientras el breaker está abierto (backing store caído).
var ErrOpen = gobreaker.ErrOpenState

type Options struct {
	Name string

	// FailureThreshold: fallas consecutivas para abrir. Default 5.
	FailureThreshold uint32
	// OpenTimeout: cuánto queda abierto antes de probar de nuevo. Default 30s.
	OpenTimeout time.Duration

	Logger logger.Logger
}

// PetsRepo envuelve un pets.Repository con un circuit breaker: si el store
// falla seguido, las cargas fallan rápido en vez de colgarse hasta el timeout.
type PetsRepo struct {
	next pets.Repository
	cb   *gobreaker.CircuitBreaker[[]pets.Pet]
}

func NewPetsRepo(next pets.Repository, opts Options) *PetsRepo {
	if opts.Name == "" {
		opts.Name = "population"
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		// Un request cancelado por el cliente no dice nada del store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}

	return &PetsRepo{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]pets.Pet](settings),
	}
}

func (r *PetsRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	return r.cb.Execute(func() ([]pets.Pet, error) {
		return r.next.ListBySpecies(ctx, species)
	})
}

// State expone el estado actual (closed, half-open, open).
func (r *PetsRepo) State() string {
	return r.cb.State().String()
}
