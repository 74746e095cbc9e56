package matching

import (
	"fmt"
	"math"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Distance es la distancia euclídea entre dos vectores de igual largo.
func Distance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Score devuelve el match% de cada candidato respecto de user, en el mismo orden:
//
//	match% = 100 * (1 - d / max_d)
//
// max_d es la mayor distancia observada en esta llamada, así que los puntajes solo
// son comparables dentro de un mismo ranking. Con un solo candidato, o con todos
// los candidatos iguales entre sí (incluye max_d == 0), todos valen 100.
func Score(user Vector, candidates []Vector) ([]float64, error) {
	if len(candidates) == 0 {
		return []float64{}, nil
	}

	dists := make([]float64, len(candidates))
	maxD := 0.0
	for i, c := range candidates {
		d, err := Distance(user, c)
		if err != nil {
			return nil, err
		}
		dists[i] = d
		if d > maxD {
			maxD = d
		}
	}

	scores := make([]float64, len(candidates))
	if maxD == 0 || allEqual(candidates) {
		for i := range scores {
			scores[i] = MaxScore
		}
		return scores, nil
	}
	for i, d := range dists {
		scores[i] = Clamp(MaxScore * (1 - d/maxD))
	}
	return scores, nil
}

// allEqual: true si todos los vectores son idénticos al primero (o hay uno solo).
func allEqual(vs []Vector) bool {
	for _, v := range vs[1:] {
		for i := range v {
			if v[i] != vs[0][i] {
				return false
			}
		}
	}
	return true
}

// Clamp acota s a [0,100]; NaN se considera 0.
func Clamp(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return MinScore
	case s < MinScore:
		return MinScore
	case s > MaxScore:
		return MaxScore
	default:
		return s
	}
}

// Round2 redondea a 2 decimales (formato de respuesta).
func Round2(s float64) float64 {
	return math.Round(s*100) / 100
}
