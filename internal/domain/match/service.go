package match

import (
	"context"
	"errors"
	"time"

	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/logger"
	"pet-matcher/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

const DefaultLoadTimeout = 3 * time.Second

// ScalerProvider entrega los parámetros de estandarización ajustados para una especie.
type ScalerProvider interface {
	Scaler(ctx context.Context, species pets.Species) (*matching.Scaler, error)
}

type Options struct {
	TopK        int
	LoadTimeout time.Duration

	// FitFromPopulation ignora el provider y ajusta el scaler con la población
	// cargada en cada request (modo dev, sin artifacts).
	FitFromPopulation bool
	ZeroScalePolicy   matching.ZeroScalePolicy

	Logger logger.Logger
}

// Service orquesta un match: validar, cargar, puntuar, rankear y dar forma.
// No guarda estado entre requests.
type Service struct {
	pets    *pets.Service
	scalers ScalerProvider
	ranker  *matching.Ranker

	loadTimeout time.Duration
	fit         bool
	zeroPolicy  matching.ZeroScalePolicy

	log logger.Logger
	now func() time.Time
}

func NewService(petsSvc *pets.Service, scalers ScalerProvider, opts Options) (*Service, error) {
	k := opts.TopK
	if k == 0 {
		k = matching.DefaultTopK
	}
	ranker, err := matching.NewRanker(k)
	if err != nil {
		return nil, err
	}
	if scalers == nil && !opts.FitFromPopulation {
		return nil, errors.New("match: scaler provider required")
	}

	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	policy := opts.ZeroScalePolicy
	if policy == "" {
		policy = matching.ZeroScaleSubstitute
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		pets:        petsSvc,
		scalers:     scalers,
		ranker:      ranker,
		loadTimeout: timeout,
		fit:         opts.FitFromPopulation,
		zeroPolicy:  policy,
		log:         log,
		now:         time.Now,
	}, nil
}

func (s *Service) TopK() int { return s.ranker.K() }

// Validate chequea el cuestionario antes de tocar datos o hacer cuentas.
func Validate(q Questionnaire) (pets.Species, error) {
	species, ok := pets.ParseSpecies(q.Species)
	if !ok {
		return "", &InvalidSpeciesError{Value: q.Species}
	}
	for _, t := range matching.Traits() {
		v, ok := q.Ratings[t]
		if !ok {
			return "", &InvalidRatingError{Trait: t, Missing: true}
		}
		if v < matching.MinRating || v > matching.MaxRating {
			return "", &InvalidRatingError{Trait: t, Value: v}
		}
	}
	return species, nil
}

// Match devuelve los top K candidatos de la especie pedida, ordenados por match%.
func (s *Service) Match(ctx context.Context, q Questionnaire) ([]Result, error) {
	started := s.now()

	species, err := Validate(q)
	if err != nil {
		metrics.MatchRequests.WithLabelValues("invalid", metrics.OutcomeClientError).Inc()
		s.log.Debug("match rejected", map[string]any{"error": err.Error()})
		return nil, err
	}

	out, err := s.match(ctx, species, q.Ratings)
	if err != nil {
		metrics.MatchRequests.WithLabelValues(string(species), metrics.OutcomeServerError).Inc()
		s.log.Error("match failed", map[string]any{
			"species": string(species),
			"error":   err.Error(),
		})
		return nil, err
	}

	elapsed := s.now().Sub(started)
	metrics.MatchRequests.WithLabelValues(string(species), metrics.OutcomeOK).Inc()
	metrics.MatchDuration.WithLabelValues(string(species)).Observe(elapsed.Seconds())
	s.log.Debug("match done", map[string]any{
		"species":     string(species),
		"results":     len(out),
		"duration_ms": elapsed.Milliseconds(),
	})
	return out, nil
}

func (s *Service) match(ctx context.Context, species pets.Species, user matching.Ratings) ([]Result, error) {
	population, scaler, err := s.load(ctx, species)
	if err != nil {
		return nil, err
	}

	ranked, err := matching.Rank(scaler, s.ranker, user, pets.RatingsOf(population))
	if err != nil {
		// El cuestionario ya fue validado; cualquier error acá viene de datos/modelo.
		return nil, &dataError{op: "rank", cause: err}
	}

	out := make([]Result, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Result{
			Pet:             population[r.Index],
			MatchPercentage: matching.Round2(matching.Clamp(r.Score)),
		})
	}
	return out, nil
}

// load trae población y scaler en paralelo, acotado por loadTimeout. Ambos se
// validan completos antes de puntuar: nunca se devuelven resultados parciales.
func (s *Service) load(ctx context.Context, species pets.Species) ([]pets.Pet, *matching.Scaler, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	var (
		population []pets.Pet
		scaler     *matching.Scaler
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.pets.Population(gctx, species)
		if err != nil {
			metrics.PopulationLoadErrors.WithLabelValues(string(species)).Inc()
			return &dataError{op: "load population", cause: err}
		}
		metrics.PopulationSize.WithLabelValues(string(species)).Set(float64(len(items)))
		population = items
		return nil
	})
	if !s.fit {
		g.Go(func() error {
			sc, err := s.scalers.Scaler(gctx, species)
			if err != nil {
				return &dataError{op: "load scaler", cause: err}
			}
			scaler = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if s.fit {
		vs, err := matching.BuildVectors(pets.RatingsOf(population))
		if err != nil {
			return nil, nil, &dataError{op: "fit scaler", cause: err}
		}
		sc, err := matching.FitScaler(vs, s.zeroPolicy)
		if err != nil {
			return nil, nil, &dataError{op: "fit scaler", cause: err}
		}
		scaler = sc
	}

	return population, scaler, nil
}
