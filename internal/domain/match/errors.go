package match

import (
	"errors"
	"fmt"

	"pet-matcher/internal/domain/matching"
)

var (
	// ErrInvalidInput agrupa las fallas del cliente (400, nunca se reintentan).
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataUnavailable agrupa fallas de población/modelo (500).
	ErrDataUnavailable = errors.New("match data unavailable")
)

type InvalidSpeciesError struct {
	Value string
}

func (e *InvalidSpeciesError) Error() string {
	return fmt.Sprintf("pet_type must be 'dog' or 'cat', got %q", e.Value)
}

func (e *InvalidSpeciesError) Is(target error) bool { return target == ErrInvalidInput }

type InvalidRatingError struct {
	Trait   matching.Trait
	Value   int
	Missing bool
}

func (e *InvalidRatingError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s is required", e.Trait)
	}
	return fmt.Sprintf("%s must be between %d and %d, got %d",
		e.Trait, matching.MinRating, matching.MaxRating, e.Value)
}

func (e *InvalidRatingError) Is(target error) bool { return target == ErrInvalidInput }

// dataError envuelve la causa real (para logs) pero se presenta como ErrDataUnavailable.
type dataError struct {
	op    string
	cause error
}

func (e *dataError) Error() string { return e.op + ": " + e.cause.Error() }

func (e *dataError) Unwrap() error { return e.cause }

func (e *dataError) Is(target error) bool { return target == ErrDataUnavailable }
