package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-matcher/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyRepo struct {
	err   error
	calls int
}

func (r *flakyRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []pets.Pet{{ID: "1", Name: "Milo", Species: species}}, nil
}

func TestPetsRepo_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakyRepo{err: errors.New("store down")}
	repo := NewPetsRepo(next, Options{FailureThreshold: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := repo.ListBySpecies(context.Background(), pets.SpeciesDog)
		require.Error(t, err)
	}
	assert.Equal(t, "open", repo.State())

	_, err := repo.ListBySpecies(context.Background(), pets.SpeciesDog)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 2, next.calls)
}

func TestPetsRepo_CanceledRequestsDoNotTrip(t *testing.T) {
	next := &flakyRepo{err: context.Canceled}
	repo := NewPetsRepo(next, Options{FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, err := repo.ListBySpecies(context.Background(), pets.SpeciesDog)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", repo.State())
}

func TestPetsRepo_PassesThrough(t *testing.T) {
	repo := NewPetsRepo(&flakyRepo{}, Options{})

	items, err := repo.ListBySpecies(context.Background(), pets.SpeciesCat)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, pets.SpeciesCat, items[0].Species)
}
