package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pet-matcher/internal/adapters/model"
	"pet-matcher/internal/adapters/storage/breaker"
	"pet-matcher/internal/config"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `type,name,age,breed,size,weight,dogs,cats,kids,energy,affection,new_people,training,image_url
Dog,Ace,3,Lab,Large,30,5,5,5,5,5,4,5,
Dog,Bo,2,Mix,Small,8,1,1,1,1,1,2,1,
Cat,Cleo,4,DSH,Medium,4,3,3,3,3,3,3,3,
`

func TestNewPopulation_MemorySeedsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	pop, err := NewPopulation(context.Background(), config.PopulationConfig{
		Source: config.PopulationMemory,
		Path:   path,
	}, logger.NewNop())
	require.NoError(t, err)
	defer pop.Close()

	// el archivo ya no hace falta: quedó cacheado
	require.NoError(t, os.Remove(path))

	dogs, err := pop.Repo.ListBySpecies(context.Background(), pets.SpeciesDog)
	require.NoError(t, err)
	require.Len(t, dogs, 2)
	assert.Equal(t, "Ace", dogs[0].Name)
}

func TestNewPopulation_CSVIsBehindBreaker(t *testing.T) {
	pop, err := NewPopulation(context.Background(), config.PopulationConfig{
		Source:          config.PopulationCSV,
		Path:            filepath.Join(t.TempDir(), "missing.csv"),
		BreakerFailures: 1,
	}, logger.NewNop())
	require.NoError(t, err)

	_, err = pop.Repo.ListBySpecies(context.Background(), pets.SpeciesDog)
	require.Error(t, err)
	_, err = pop.Repo.ListBySpecies(context.Background(), pets.SpeciesDog)
	assert.ErrorIs(t, err, breaker.ErrOpen)
}

func TestNewPopulation_UnknownSource(t *testing.T) {
	_, err := NewPopulation(context.Background(), config.PopulationConfig{Source: "sqlite"}, logger.NewNop())
	assert.Error(t, err)
}

func TestNewModelStore_PopulationSourceHasNoStore(t *testing.T) {
	store, err := NewModelStore(context.Background(), config.ModelConfig{Source: config.ModelPopulation}, logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewModelStore_FileSourceLoadsOnStart(t *testing.T) {
	dir := t.TempDir()
	for _, sp := range pets.AllSpecies() {
		raw := `{"schema_version":1,"species":"` + string(sp) + `",
"features":["dogs","cats","kids","energy","affection","training"],
"mean":[3,3,3,3,3,3],"scale":[1,1,1,1,1,1]}`
		require.NoError(t, os.WriteFile(model.ArtifactPath(dir, sp), []byte(raw), 0o644))
	}

	store, err := NewModelStore(context.Background(), config.ModelConfig{Source: config.ModelFile, Dir: dir}, logger.NewNop())
	require.NoError(t, err)

	sc, err := store.Scaler(context.Background(), pets.SpeciesCat)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, sc.Scale())
}

func TestNewModelStore_MissingArtifactsFailStartup(t *testing.T) {
	_, err := NewModelStore(context.Background(), config.ModelConfig{Source: config.ModelFile, Dir: t.TempDir()}, logger.NewNop())
	assert.ErrorIs(t, err, model.ErrArtifactNotFound)
}
