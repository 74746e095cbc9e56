package router

import (
	"context"
	"net/http"
	"time"

	mem "pet-matcher/internal/adapters/storage/memory"
	"pet-matcher/internal/config"
	_ "pet-matcher/internal/docs" // swagger spec
	"pet-matcher/internal/domain/match"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/middleware"
	"pet-matcher/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	AppName    = "Pet Adoption Matcher API"
	AppVersion = "1.0.0"
)

// ModelReloader recarga los scalers bajo demanda (POST /admin/model/reload).
type ModelReloader interface {
	Reload(ctx context.Context) error
	LoadedAt() time.Time
}

type Options struct {
	Logger logger.Logger

	// Opcional: si es nil se usa una población in-memory vacía (modo dev).
	PetsRepo pets.Repository

	// Scalers nil => el scaler se ajusta con la población de cada request.
	Scalers match.ScalerProvider
	// Reloader opcional; sin él /admin/model/reload no se registra.
	Reloader ModelReloader

	Match match.Options
	HTTP  config.HTTPConfig
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	petRepo := opts.PetsRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}

	matchOpts := opts.Match
	matchOpts.Logger = log
	if opts.Scalers == nil {
		matchOpts.FitFromPopulation = true
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	matchSvc, err := match.NewService(petsSvc, opts.Scalers, matchOpts)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)

	origins := opts.HTTP.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	if opts.HTTP.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.HTTP.MaxBodyBytes))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": AppName,
			"version": AppVersion,
		})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
	))

	// Rutas por módulo; el límite por IP aplica solo a la API.
	r.Group(func(api chi.Router) {
		if opts.HTTP.RateLimit > 0 {
			window := opts.HTTP.RateLimitEvery
			if window <= 0 {
				window = time.Minute
			}
			api.Use(httprate.LimitByIP(opts.HTTP.RateLimit, window))
		}
		pets.RegisterRoutes(api, petsSvc)
		match.RegisterRoutes(api, matchSvc)
	})

	if opts.Reloader != nil {
		r.With(middleware.AdminToken(opts.HTTP.AdminToken)).
			Post("/admin/model/reload", reloadHandler(opts.Reloader, log))
	}

	return r, nil
}

func reloadHandler(reloader ModelReloader, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reloader.Reload(r.Context()); err != nil {
			log.Error("manual scaler reload failed", map[string]any{"error": err.Error()})
			http.Error(w, "reload failed, previous model kept", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "reloaded",
			"loaded_at": reloader.LoadedAt().Format(time.RFC3339),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
