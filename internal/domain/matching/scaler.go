package matching

import (
	"fmt"
	"math"
	"strings"
)

// ZeroScalePolicy define qué hacer con scale[i] == 0.
type ZeroScalePolicy string

const (
	// ZeroScaleSubstitute trata scale=1: la dimensión no discrimina pero no rompe.
	ZeroScaleSubstitute ZeroScalePolicy = "substitute"
	// ZeroScaleReject falla con ScaleZeroError.
	ZeroScaleReject ZeroScalePolicy = "reject"
)

func ParseZeroScalePolicy(s string) (ZeroScalePolicy, error) {
	switch ZeroScalePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ZeroScaleSubstitute:
		return ZeroScaleSubstitute, nil
	case ZeroScaleReject:
		return ZeroScaleReject, nil
	default:
		return "", fmt.Errorf("unknown zero scale policy %q", s)
	}
}

// Scaler aplica la estandarización (x - mean) / scale ajustada offline por especie.
// Inmutable: se comparte entre requests concurrentes sin locks.
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler valida y copia los parámetros ajustados.
func NewScaler(mean, scale []float64, policy ZeroScalePolicy) (*Scaler, error) {
	if len(mean) != NumTraits || len(scale) != NumTraits {
		return nil, fmt.Errorf("%w: want %d params, got mean=%d scale=%d",
			ErrDimensionMismatch, NumTraits, len(mean), len(scale))
	}

	s := &Scaler{
		mean:  make([]float64, NumTraits),
		scale: make([]float64, NumTraits),
	}
	for i := range mean {
		m, sc := mean[i], scale[i]
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("%w: mean[%s] is not finite", ErrInvalidScaler, traitOrder[i])
		}
		if math.IsNaN(sc) || math.IsInf(sc, 0) || sc < 0 {
			return nil, fmt.Errorf("%w: scale[%s]=%v", ErrInvalidScaler, traitOrder[i], sc)
		}
		if sc == 0 {
			if policy == ZeroScaleReject {
				return nil, &ScaleZeroError{Trait: traitOrder[i]}
			}
			sc = 1
		}
		s.mean[i] = m
		s.scale[i] = sc
	}
	return s, nil
}

// FitScaler calcula media y desviación estándar poblacional (ddof=0) de vectors,
// igual que el StandardScaler del entrenamiento offline.
func FitScaler(vectors []Vector, policy ZeroScalePolicy) (*Scaler, error) {
	if len(vectors) == 0 {
		return nil, ErrNoCandidates
	}

	n := float64(len(vectors))
	mean := make([]float64, NumTraits)
	for _, v := range vectors {
		if len(v) != NumTraits {
			return nil, fmt.Errorf("%w: vector has %d features", ErrDimensionMismatch, len(v))
		}
		for i, x := range v {
			mean[i] += x
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	scale := make([]float64, NumTraits)
	for _, v := range vectors {
		for i, x := range v {
			d := x - mean[i]
			scale[i] += d * d
		}
	}
	for i := range scale {
		scale[i] = math.Sqrt(scale[i] / n)
	}

	return NewScaler(mean, scale, policy)
}

// Transform devuelve un vector nuevo estandarizado; v no se modifica.
func (s *Scaler) Transform(v Vector) (Vector, error) {
	if len(v) != NumTraits {
		return nil, fmt.Errorf("%w: vector has %d features", ErrDimensionMismatch, len(v))
	}
	out := make(Vector, NumTraits)
	for i, x := range v {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// TransformAll estandariza la población completa con el mismo scaler.
func (s *Scaler) TransformAll(vs []Vector) ([]Vector, error) {
	out := make([]Vector, 0, len(vs))
	for _, v := range vs {
		t, err := s.Transform(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Scaler) Mean() []float64 {
	out := make([]float64, NumTraits)
	copy(out, s.mean)
	return out
}

func (s *Scaler) Scale() []float64 {
	out := make([]float64, NumTraits)
	copy(out, s.scale)
	return out
}
