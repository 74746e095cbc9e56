package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, PopulationCSV, cfg.Population.Source)
	assert.Equal(t, ModelFile, cfg.Model.Source)
	assert.Equal(t, 6, cfg.Match.TopK)
	assert.Equal(t, 3*time.Second, cfg.Match.LoadTimeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
model:
  source: population
match:
  top_k: 3
  load_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("MATCH_TOP_K", "5")
	t.Setenv("DATA_PATH", "/srv/pets.csv")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, ModelPopulation, cfg.Model.Source)
	assert.Equal(t, 5, cfg.Match.TopK, "env gana sobre el archivo")
	assert.Equal(t, 5*time.Second, cfg.Match.LoadTimeout)
	assert.Equal(t, "/srv/pets.csv", cfg.Population.Path)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoadFrom_UnmappedEnvIgnored(t *testing.T) {
	t.Setenv("SERVER_PORT", "1")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFrom_InvalidCombinations(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without dsn": {"POPULATION_SOURCE": "postgres"},
		"http model no url":    {"MODEL_SOURCE": "http"},
		"unknown model source": {"MODEL_SOURCE": "kmeans"},
		"top k zero":           {"MATCH_TOP_K": "0"},
		"impute out of range":  {"IMPUTE_MISSING": "9"},
		"unknown zero policy":  {"MODEL_ZERO_SCALE_POLICY": "ignore"},
		"port out of range":    {"PORT": "70000"},
		"unknown population":   {"POPULATION_SOURCE": "sqlite"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom("")
			assert.Error(t, err)
		})
	}
}
