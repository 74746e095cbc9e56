package matching

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFeature    = errors.New("missing feature")
	ErrRatingOutOfRange  = errors.New("rating out of range")
	ErrScaleZero         = errors.New("zero scale")
	ErrInvalidScaler     = errors.New("invalid scaler")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidTopK       = errors.New("top k must be >= 1")
	ErrNoCandidates      = errors.New("no candidates")
)

// MissingFeatureError se devuelve cuando falta un trait requerido.
type MissingFeatureError struct {
	Trait Trait
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing feature %q", string(e.Trait))
}

func (e *MissingFeatureError) Is(target error) bool { return target == ErrMissingFeature }

// ScaleZeroError: scale[i] == 0 con política ZeroScaleReject.
type ScaleZeroError struct {
	Trait Trait
}

func (e *ScaleZeroError) Error() string {
	return fmt.Sprintf("zero scale for feature %q", string(e.Trait))
}

func (e *ScaleZeroError) Is(target error) bool { return target == ErrScaleZero }
