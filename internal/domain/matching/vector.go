package matching

// Vector es un vector de features en el orden canónico de Traits().
type Vector []float64

// BuildVector arma el vector de features respetando el orden canónico.
// Falla con MissingFeatureError si falta algún trait (no imputa valores:
// la imputación, si existe, vive en el borde de ingesta).
func BuildVector(r Ratings) (Vector, error) {
	v := make(Vector, NumTraits)
	for i, t := range traitOrder {
		rating, ok := r[t]
		if !ok {
			return nil, &MissingFeatureError{Trait: t}
		}
		v[i] = float64(rating)
	}
	return v, nil
}

// BuildVectors arma los vectores de toda una población, preservando el orden.
func BuildVectors(all []Ratings) ([]Vector, error) {
	out := make([]Vector, 0, len(all))
	for _, r := range all {
		v, err := BuildVector(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
