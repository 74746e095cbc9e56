// Package app arma los adapters a partir de la config. Lo usan cmd/api y cmd/matchctl.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pet-matcher/internal/adapters/model"
	"pet-matcher/internal/adapters/storage/breaker"
	"pet-matcher/internal/adapters/storage/csvfile"
	mem "pet-matcher/internal/adapters/storage/memory"
	pg "pet-matcher/internal/adapters/storage/postgres"
	"pet-matcher/internal/config"
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/httpclient"
	"pet-matcher/internal/platform/logger"
)

const userAgent = "pet-matcher/1.0"

// Population es el repo armado más lo que haya que cerrar al salir.
type Population struct {
	Repo pets.Repository
	db   *sql.DB
}

func (p *Population) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// NewPopulation elige el loader según population.source. csv y postgres van
// detrás de un circuit breaker; memory carga el CSV (si hay) una sola vez.
func NewPopulation(ctx context.Context, cfg config.PopulationConfig, log logger.Logger) (*Population, error) {
	var (
		repo pets.Repository
		db   *sql.DB
	)

	switch cfg.Source {
	case config.PopulationCSV:
		r, err := csvfile.NewPetsRepo(csvfile.Options{Path: cfg.Path, ImputeMissing: cfg.ImputeMissing})
		if err != nil {
			return nil, err
		}
		repo = r

	case config.PopulationPostgres:
		opened, err := pg.Open(cfg.DSN, pg.Options{})
		if err != nil {
			return nil, fmt.Errorf("open population db: %w", err)
		}
		db = opened
		repo = pg.NewPetsRepo(db)

	case config.PopulationMemory:
		m := mem.NewPetRepo()
		if cfg.Path != "" {
			if err := seedFromCSV(ctx, m, cfg); err != nil {
				return nil, err
			}
		}
		log.Info("population cached in memory", map[string]any{"path": cfg.Path})
		return &Population{Repo: m}, nil

	default:
		return nil, fmt.Errorf("unknown population source %q", cfg.Source)
	}

	return &Population{
		Repo: breaker.NewPetsRepo(repo, breaker.Options{
			Name:             "population-" + cfg.Source,
			FailureThreshold: cfg.BreakerFailures,
			OpenTimeout:      cfg.BreakerOpenTimeout,
			Logger:           log,
		}),
		db: db,
	}, nil
}

func seedFromCSV(ctx context.Context, m *mem.PetRepo, cfg config.PopulationConfig) error {
	src, err := csvfile.NewPetsRepo(csvfile.Options{Path: cfg.Path, ImputeMissing: cfg.ImputeMissing})
	if err != nil {
		return err
	}
	for _, sp := range pets.AllSpecies() {
		items, err := src.ListBySpecies(ctx, sp)
		if err != nil {
			return fmt.Errorf("seed %s population: %w", sp, err)
		}
		m.Replace(sp, items)
	}
	return nil
}

// NewModelStore arma el store de scalers y hace la primera carga. Con
// model.source=population devuelve nil: el scaler se ajusta por request.
func NewModelStore(ctx context.Context, cfg config.ModelConfig, log logger.Logger) (*model.Store, error) {
	policy, err := matching.ParseZeroScalePolicy(cfg.ZeroScalePolicy)
	if err != nil {
		return nil, err
	}

	var src model.Source
	switch cfg.Source {
	case config.ModelPopulation:
		return nil, nil
	case config.ModelFile:
		fs, err := model.NewFileSource(cfg.Dir)
		if err != nil {
			return nil, err
		}
		src = fs
	case config.ModelHTTP:
		client, err := httpclient.New(cfg.URL, httpclient.Options{
			Timeout:   cfg.FetchTimeout,
			UserAgent: userAgent,
		})
		if err != nil {
			return nil, err
		}
		hs, err := model.NewHTTPSource(client)
		if err != nil {
			return nil, err
		}
		src = hs
	default:
		return nil, fmt.Errorf("unknown model source %q", cfg.Source)
	}

	store, err := model.NewStore(src, model.StoreOptions{
		ZeroScalePolicy: policy,
		ReloadTimeout:   cfg.FetchTimeout,
		Logger:          log,
	})
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, fetchTimeout(cfg))
	defer cancel()
	if err := store.Load(loadCtx); err != nil {
		return nil, err
	}
	return store, nil
}

func fetchTimeout(cfg config.ModelConfig) time.Duration {
	if cfg.FetchTimeout > 0 {
		return cfg.FetchTimeout
	}
	return model.DefaultReloadTimeout
}
