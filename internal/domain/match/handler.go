package match

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"pet-matcher/internal/domain/matching"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/match_pet", matchHandler(svc))

	// Mismo contrato, ruta usada por el UI.
	r.Post("/friendr/api/match", matchHandler(svc))
}

// matchRequest es el cuestionario de compatibilidad.
// Los ratings son punteros para distinguir "no enviado" de un valor inválido.
type matchRequest struct {
	PetType   string `json:"pet_type" validate:"required" enums:"dog,cat"`
	Dogs      *int   `json:"dogs" validate:"required,min=1,max=5"`
	Cats      *int   `json:"cats" validate:"required,min=1,max=5"`
	Kids      *int   `json:"kids" validate:"required,min=1,max=5"`
	Energy    *int   `json:"energy" validate:"required,min=1,max=5"`
	Affection *int   `json:"affection" validate:"required,min=1,max=5"`
	Training  *int   `json:"training" validate:"required,min=1,max=5"`
}

// petMatchResponse es un match devuelto por la API.
type petMatchResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type" enums:"dog,cat"`
	MatchPercentage float64  `json:"match_percentage"`
	ImageURL        *string  `json:"image_url"`
	Breed           string   `json:"breed,omitempty"`
	Size            string   `json:"size,omitempty"`
	Age             *int     `json:"age,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`

	Traits map[string]int `json:"traits"`
}

// matchResponse envuelve los matches ordenados por match_percentage descendente.
type matchResponse struct {
	Matches []petMatchResponse `json:"matches"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Reportar los campos con su nombre JSON.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// matchHandler godoc
// @Summary Buscar mascotas compatibles
// @Description Recibe el cuestionario (pet_type + seis ratings 1-5) y devuelve los mejores candidatos de esa especie con su porcentaje de compatibilidad. El porcentaje es relativo a la población de esta llamada.
// @Tags match
// @Accept json
// @Produce json
// @Param payload body matchRequest true "Cuestionario"
// @Success 200 {object} matchResponse
// @Failure 400 {string} string "invalid json / pet_type inválido / rating fuera de rango"
// @Failure 500 {string} string "match could not be completed"
// @Router /match_pet [post]
// @Router /friendr/api/match [post]
func matchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := getValidator().Struct(&req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		results, err := svc.Match(r.Context(), req.toQuestionnaire())
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				// No exponemos detalles del storage/modelo.
				http.Error(w, "match could not be completed", http.StatusInternalServerError)
			}
			return
		}

		out := matchResponse{Matches: make([]petMatchResponse, 0, len(results))}
		for _, res := range results {
			out.Matches = append(out.Matches, toMatchResponse(res))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (req matchRequest) toQuestionnaire() Questionnaire {
	ratings := matching.Ratings{}
	set := func(t matching.Trait, v *int) {
		if v != nil {
			ratings[t] = *v
		}
	}
	set(matching.TraitDogs, req.Dogs)
	set(matching.TraitCats, req.Cats)
	set(matching.TraitKids, req.Kids)
	set(matching.TraitEnergy, req.Energy)
	set(matching.TraitAffection, req.Affection)
	set(matching.TraitTraining, req.Training)

	return Questionnaire{Species: req.PetType, Ratings: ratings}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid input"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d",
				fe.Field(), matching.MinRating, matching.MaxRating))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

func toMatchResponse(res Result) petMatchResponse {
	var img *string
	if s := strings.TrimSpace(res.Pet.ImageURL); s != "" {
		img = &s
	}
	traits := make(map[string]int, len(res.Pet.Ratings))
	for t, v := range res.Pet.Ratings {
		traits[t.String()] = v
	}
	return petMatchResponse{
		ID:              res.Pet.ID,
		Name:            res.Pet.Name,
		Type:            string(res.Pet.Species),
		MatchPercentage: res.MatchPercentage,
		ImageURL:        img,
		Breed:           res.Pet.Breed,
		Size:            res.Pet.Size,
		Age:             res.Pet.Age,
		Weight:          res.Pet.Weight,
		Traits:          traits,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
