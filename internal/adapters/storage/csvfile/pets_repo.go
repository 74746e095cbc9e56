package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
)

var (
	ErrMalformed = errors.New("malformed population file")
)

// Columnas conocidas del export del refugio. Las demás se ignoran.
const (
	colID        = "id"
	colType      = "type"
	colName      = "name"
	colAge       = "age"
	colBreed     = "breed"
	colSize      = "size"
	colWeight    = "weight"
	colNewPeople = "new_people"
	colImageURL  = "image_url"
)

type Options struct {
	Path string

	// ImputeMissing: 0 = un rating vacío es un error de datos.
	// 1..5 = se usa ese valor (política explícita de ingesta; el colector de
	// Shelterluv completaba training con 3).
	ImputeMissing int
}

// PetsRepo lee la población desde un CSV. El archivo se lee entero en cada
// llamada: lo actualiza un proceso externo y no cacheamos.
type PetsRepo struct {
	path   string
	impute int
}

func NewPetsRepo(opts Options) (*PetsRepo, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("csvfile: path required")
	}
	if opts.ImputeMissing != 0 &&
		(opts.ImputeMissing < matching.MinRating || opts.ImputeMissing > matching.MaxRating) {
		return nil, fmt.Errorf("csvfile: impute value %d out of range", opts.ImputeMissing)
	}
	return &PetsRepo{path: opts.Path, impute: opts.ImputeMissing}, nil
}

func (r *PetsRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: open %s: %w", r.path, err)
	}
	defer f.Close()

	return r.read(ctx, f, species)
}

func (r *PetsRepo) read(ctx context.Context, src io.Reader, species pets.Species) ([]pets.Pet, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	idx := indexHeader(header)

	for _, c := range []string{colType, colName} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, c)
		}
	}
	if r.impute == 0 {
		for _, t := range matching.Traits() {
			if _, ok := idx[string(t)]; !ok {
				return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, t)
			}
		}
	}

	out := make([]pets.Pet, 0)
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}
		if row%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		// Otras especies (conejos, hurones...) o la especie que no se pidió.
		s, ok := pets.ParseSpecies(get(colType))
		if !ok || s != species {
			continue
		}

		p, err := r.toPet(s, row, get)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PetsRepo) toPet(species pets.Species, row int, get func(string) string) (pets.Pet, error) {
	name := get(colName)
	if name == "" {
		return pets.Pet{}, errors.New("name is empty")
	}

	p := pets.Pet{
		ID:       get(colID),
		Name:     name,
		Species:  species,
		Breed:    get(colBreed),
		Size:     get(colSize),
		ImageURL: get(colImageURL),
		Ratings:  matching.Ratings{},
	}
	if p.ID == "" {
		p.ID = pets.DeriveID(species, name, row)
	}

	for _, t := range matching.Traits() {
		raw := get(string(t))
		if raw == "" {
			if r.impute == 0 {
				return pets.Pet{}, fmt.Errorf("%s is empty", t)
			}
			p.Ratings[t] = r.impute
			continue
		}
		v, err := parseRating(raw)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("%s: %v", t, err)
		}
		p.Ratings[t] = v
	}

	if v := get(colAge); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Age = &n
		}
	}
	if v := get(colWeight); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(w) {
			p.Weight = &w
		}
	}
	if v := get(colNewPeople); v != "" {
		if n, err := parseRating(v); err == nil {
			p.NewPeople = &n
		}
	}

	return p, nil
}

// parseRating acepta "4" y "4.0" (exports de pandas), nada fraccionario.
func parseRating(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid rating %q", s)
	}
	return int(f), nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}
