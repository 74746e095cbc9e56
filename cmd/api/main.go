package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-matcher/internal/app"
	"pet-matcher/internal/config"
	"pet-matcher/internal/domain/match"
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/platform/logger"
	"pet-matcher/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pop, err := app.NewPopulation(ctx, cfg.Population, log)
	if err != nil {
		return err
	}
	defer pop.Close()

	// Policy ya validada por config.Validate.
	policy, _ := matching.ParseZeroScalePolicy(cfg.Model.ZeroScalePolicy)

	opts := router.Options{
		Logger:   log,
		PetsRepo: pop.Repo,
		Match: match.Options{
			TopK:            cfg.Match.TopK,
			LoadTimeout:     cfg.Match.LoadTimeout,
			ZeroScalePolicy: policy,
		},
		HTTP: cfg.HTTP,
	}

	store, err := app.NewModelStore(ctx, cfg.Model, log)
	if err != nil {
		return err
	}
	if store != nil {
		opts.Scalers = store
		opts.Reloader = store

		if cfg.Model.Watch && cfg.Model.Source == config.ModelFile {
			if err := store.Watch(ctx, cfg.Model.Dir); err != nil {
				return err
			}
			log.Info("watching scaler artifacts", map[string]any{"dir": cfg.Model.Dir})
		}
	} else {
		log.Warn("no scaler artifacts, fitting per request from population", nil)
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":              cfg.Addr(),
			"population_source": cfg.Population.Source,
			"model_source":      cfg.Model.Source,
			"top_k":             cfg.Match.TopK,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
