package matching

// Rank ejecuta el pipeline completo sobre datos ya cargados:
// build -> normalize (mismo scaler para ambos lados) -> score -> top K.
// Los índices de Ranked apuntan a population.
func Rank(scaler *Scaler, ranker *Ranker, user Ratings, population []Ratings) ([]Ranked, error) {
	if len(population) == 0 {
		return nil, ErrNoCandidates
	}

	uv, err := BuildVector(user)
	if err != nil {
		return nil, err
	}
	pv, err := BuildVectors(population)
	if err != nil {
		return nil, err
	}

	us, err := scaler.Transform(uv)
	if err != nil {
		return nil, err
	}
	ps, err := scaler.TransformAll(pv)
	if err != nil {
		return nil, err
	}

	scores, err := Score(us, ps)
	if err != nil {
		return nil, err
	}
	return ranker.Top(scores), nil
}
