package pets

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
	})
}

// petResponse representa un candidato adoptable.
type petResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      Species        `json:"type" enums:"dog,cat"`
	Breed     string         `json:"breed,omitempty"`
	Size      string         `json:"size,omitempty"`
	Age       *int           `json:"age,omitempty"`
	Weight    *float64       `json:"weight,omitempty"`
	NewPeople *int           `json:"new_people,omitempty"`
	ImageURL  *string        `json:"image_url"`
	Traits    map[string]int `json:"traits"`
}

// listPetsHandler godoc
// @Summary Listar mascotas adoptables
// @Description Devuelve la población actual de la especie indicada, en orden de población.
// @Tags pets
// @Produce json
// @Param type query string true "Especie" Enums(dog, cat)
// @Success 200 {array} petResponse
// @Failure 400 {string} string "type must be 'dog' or 'cat'"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species, ok := ParseSpecies(r.URL.Query().Get("type"))
		if !ok {
			http.Error(w, "type must be 'dog' or 'cat'", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), species)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Perfil de una mascota adoptable
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param type query string true "Especie" Enums(dog, cat)
// @Success 200 {object} petResponse
// @Failure 400 {string} string "type must be 'dog' or 'cat'"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species, ok := ParseSpecies(r.URL.Query().Get("type"))
		if !ok {
			http.Error(w, "type must be 'dog' or 'cat'", http.StatusBadRequest)
			return
		}

		p, err := svc.GetByID(r.Context(), species, chi.URLParam(r, "petID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	traits := make(map[string]int, len(p.Ratings))
	for t, v := range p.Ratings {
		traits[string(t)] = v
	}

	var img *string
	if s := strings.TrimSpace(p.ImageURL); s != "" {
		img = &s
	}

	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Species,
		Breed:     p.Breed,
		Size:      p.Size,
		Age:       p.Age,
		Weight:    p.Weight,
		NewPeople: p.NewPeople,
		ImageURL:  img,
		Traits:    traits,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
