package postgres

import (
	"context"
	"database/sql"

	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
)

// PetsRepo carga la población desde la tabla adoptable_pets
// (la llena el colector de datos del refugio, fuera de este servicio).
//
//	CREATE TABLE adoptable_pets (
//		id text PRIMARY KEY, position int NOT NULL, type text NOT NULL, name text NOT NULL,
//		breed text, size text, age int, weight double precision, new_people int, image_url text,
//		dogs int, cats int, kids int, energy int, affection int, training int
//	);
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name,
			COALESCE(breed, ''), COALESCE(size, ''),
			age, weight, new_people,
			COALESCE(image_url, ''),
			dogs, cats, kids, energy, affection, training
		FROM adoptable_pets
		WHERE lower(type) = $1
		ORDER BY position ASC, id ASC
	`, string(species))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var (
			p                           pets.Pet
			age, newPeople              sql.NullInt64
			weight                      sql.NullFloat64
			dogs, cats, kids            sql.NullInt64
			energy, affection, training sql.NullInt64
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Breed,
			&p.Size,
			&age,
			&weight,
			&newPeople,
			&p.ImageURL,
			&dogs,
			&cats,
			&kids,
			&energy,
			&affection,
			&training,
		); err != nil {
			return nil, err
		}

		p.Species = species
		p.Age = toIntPtr(age)
		p.NewPeople = toIntPtr(newPeople)
		if weight.Valid {
			w := weight.Float64
			p.Weight = &w
		}

		// NULL = rating ausente; pets.Service.Population lo rechaza.
		p.Ratings = matching.Ratings{}
		setRating(p.Ratings, matching.TraitDogs, dogs)
		setRating(p.Ratings, matching.TraitCats, cats)
		setRating(p.Ratings, matching.TraitKids, kids)
		setRating(p.Ratings, matching.TraitEnergy, energy)
		setRating(p.Ratings, matching.TraitAffection, affection)
		setRating(p.Ratings, matching.TraitTraining, training)

		out = append(out, p)
	}

	return out, rows.Err()
}

func setRating(r matching.Ratings, t matching.Trait, v sql.NullInt64) {
	if v.Valid {
		r[t] = int(v.Int64)
	}
}

func toIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
