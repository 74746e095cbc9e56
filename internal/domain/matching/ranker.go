package matching

import "sort"

// DefaultTopK es la cantidad de matches devuelta si no se configura otra.
const DefaultTopK = 6

// Ranked es un candidato (por índice en la población) con su puntaje.
type Ranked struct {
	Index int
	Score float64
}

type Ranker struct {
	k int
}

func NewRanker(k int) (*Ranker, error) {
	if k < 1 {
		return nil, ErrInvalidTopK
	}
	return &Ranker{k: k}, nil
}

func (r *Ranker) K() int { return r.k }

// Top devuelve los K mejores por puntaje descendente.
// Empates: se conserva el orden original de la población (sort estable por índice).
// Si hay menos de K candidatos se devuelven todos.
func (r *Ranker) Top(scores []float64) []Ranked {
	out := make([]Ranked, len(scores))
	for i, s := range scores {
		out[i] = Ranked{Index: i, Score: s}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > r.k {
		out = out[:r.k]
	}
	return out
}
