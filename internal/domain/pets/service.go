package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-matcher/internal/domain/matching"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("pet not found")
	ErrEmptyPopulation = errors.New("empty population")
	ErrMixedSpecies    = errors.New("population mixes species")
	ErrInvalidRecord   = errors.New("invalid pet record")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List devuelve la población tal cual (para browse), sin exigir que no esté vacía.
func (s *Service) List(ctx context.Context, species Species) ([]Pet, error) {
	if _, ok := ParseSpecies(string(species)); !ok {
		return nil, ErrInvalidInput
	}
	return s.repo.ListBySpecies(ctx, species)
}

// Population carga la población para puntuar y valida que sirva:
// no vacía, una sola especie y todos los traits presentes y en rango.
// Cualquier falla acá es un problema de datos (server side), no del cliente.
func (s *Service) Population(ctx context.Context, species Species) ([]Pet, error) {
	items, err := s.List(ctx, species)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: species=%s", ErrEmptyPopulation, species)
	}

	for i, p := range items {
		if p.Species != species {
			return nil, fmt.Errorf("%w: record %d is %q, want %q", ErrMixedSpecies, i, p.Species, species)
		}
		if err := p.Ratings.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d (%s): %v", ErrInvalidRecord, i, p.Name, err)
		}
	}
	return items, nil
}

// GetByID busca dentro de la población de la especie.
func (s *Service) GetByID(ctx context.Context, species Species, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	items, err := s.List(ctx, species)
	if err != nil {
		return Pet{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

// RatingsOf proyecta la población a sus ratings, en el mismo orden.
func RatingsOf(items []Pet) []matching.Ratings {
	out := make([]matching.Ratings, len(items))
	for i, p := range items {
		out[i] = p.Ratings
	}
	return out
}
