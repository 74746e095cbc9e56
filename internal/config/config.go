package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"pet-matcher/internal/domain/matching"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar permite apuntar a un YAML fuera de los paths por defecto.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pet-matcher/config.yaml",
}

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Population PopulationConfig `koanf:"population"`
	Model      ModelConfig      `koanf:"model"`
	Match      MatchConfig      `koanf:"match"`
	HTTP       HTTPConfig       `koanf:"http"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text | json
	App    string `koanf:"app"`
}

// Fuentes de población.
const (
	PopulationCSV      = "csv"
	PopulationPostgres = "postgres"
	PopulationMemory   = "memory"
)

type PopulationConfig struct {
	Source string `koanf:"source"`
	Path   string `koanf:"path"`
	// ImputeMissing: 0 rechaza filas sin rating; 1..5 es el valor a imputar.
	ImputeMissing int    `koanf:"impute_missing"`
	DSN           string `koanf:"dsn"`

	BreakerFailures    uint32        `koanf:"breaker_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
}

// Fuentes del scaler.
const (
	ModelFile       = "file"
	ModelHTTP       = "http"
	ModelPopulation = "population"
)

type ModelConfig struct {
	Source          string        `koanf:"source"`
	Dir             string        `koanf:"dir"`
	URL             string        `koanf:"url"`
	Watch           bool          `koanf:"watch"`
	ZeroScalePolicy string        `koanf:"zero_scale_policy"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
}

type MatchConfig struct {
	TopK        int           `koanf:"top_k"`
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

type HTTPConfig struct {
	CORSOrigins    []string      `koanf:"cors_origins"`
	RateLimit      int           `koanf:"rate_limit"` // 0 = sin límite
	RateLimitEvery time.Duration `koanf:"rate_limit_window"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes"`
	// AdminToken habilita POST /admin/model/reload; vacío = deshabilitado.
	AdminToken string `koanf:"admin_token"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-matcher",
		},
		Population: PopulationConfig{
			Source:             PopulationCSV,
			Path:               "data/pets.csv",
			BreakerFailures:    5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Model: ModelConfig{
			Source:          ModelFile,
			Dir:             "models",
			ZeroScalePolicy: string(matching.ZeroScaleSubstitute),
			FetchTimeout:    10 * time.Second,
		},
		Match: MatchConfig{
			TopK:        matching.DefaultTopK,
			LoadTimeout: 3 * time.Second,
		},
		HTTP: HTTPConfig{
			CORSOrigins:    []string{"*"},
			RateLimit:      100,
			RateLimitEvery: time.Minute,
			MaxBodyBytes:   1 << 20,
		},
	}
}

// Load arma la config por capas: defaults < YAML < variables de entorno.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom es Load con un path explícito ("" = sin archivo).
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitCSV(k, "http.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings: variable de entorno (en minúsculas) -> path koanf.
// Lo que no está acá se ignora.
var envMappings = map[string]string{
	"port":                    "server.port",
	"read_timeout":            "server.read_timeout",
	"write_timeout":           "server.write_timeout",
	"shutdown_timeout":        "server.shutdown_timeout",
	"log_level":               "log.level",
	"log_format":              "log.format",
	"app_name":                "log.app",
	"population_source":       "population.source",
	"data_path":               "population.path",
	"impute_missing":          "population.impute_missing",
	"db_dsn":                  "population.dsn",
	"breaker_failures":        "population.breaker_failures",
	"breaker_open_timeout":    "population.breaker_open_timeout",
	"model_source":            "model.source",
	"model_dir":               "model.dir",
	"model_url":               "model.url",
	"model_watch":             "model.watch",
	"model_zero_scale_policy": "model.zero_scale_policy",
	"model_fetch_timeout":     "model.fetch_timeout",
	"match_top_k":             "match.top_k",
	"match_load_timeout":      "match.load_timeout",
	"cors_origins":            "http.cors_origins",
	"rate_limit":              "http.rate_limit",
	"rate_limit_window":       "http.rate_limit_window",
	"max_body_bytes":          "http.max_body_bytes",
	"admin_token":             "http.admin_token",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// splitCSV convierte "a, b" (desde env) en []string; los slices del YAML quedan igual.
func splitCSV(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return k.Set(path, out)
}

// Validate chequea coherencia entre fuentes y parámetros.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	switch c.Population.Source {
	case PopulationCSV:
		if strings.TrimSpace(c.Population.Path) == "" {
			errs = append(errs, errors.New("population.path is required for csv source"))
		}
	case PopulationPostgres:
		if strings.TrimSpace(c.Population.DSN) == "" {
			errs = append(errs, errors.New("population.dsn is required for postgres source"))
		}
	case PopulationMemory:
	default:
		errs = append(errs, fmt.Errorf("population.source must be csv, postgres or memory, got %q", c.Population.Source))
	}
	if c.Population.ImputeMissing != 0 &&
		(c.Population.ImputeMissing < matching.MinRating || c.Population.ImputeMissing > matching.MaxRating) {
		errs = append(errs, fmt.Errorf("population.impute_missing must be 0 or %d..%d", matching.MinRating, matching.MaxRating))
	}

	switch c.Model.Source {
	case ModelFile:
		if strings.TrimSpace(c.Model.Dir) == "" {
			errs = append(errs, errors.New("model.dir is required for file source"))
		}
	case ModelHTTP:
		if strings.TrimSpace(c.Model.URL) == "" {
			errs = append(errs, errors.New("model.url is required for http source"))
		}
	case ModelPopulation:
	default:
		errs = append(errs, fmt.Errorf("model.source must be file, http or population, got %q", c.Model.Source))
	}
	if _, err := matching.ParseZeroScalePolicy(c.Model.ZeroScalePolicy); err != nil {
		errs = append(errs, err)
	}

	if c.Match.TopK < 1 {
		errs = append(errs, fmt.Errorf("match.top_k must be >= 1, got %d", c.Match.TopK))
	}
	if c.Match.LoadTimeout <= 0 {
		errs = append(errs, errors.New("match.load_timeout must be positive"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.max_body_bytes must be positive"))
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, errors.New("http.rate_limit must be >= 0"))
	}

	return errors.Join(errs...)
}

// Addr es la dirección de escucha del server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
