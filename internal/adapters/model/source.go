package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/httpclient"
)

// ErrArtifactNotFound: no hay artifact para la especie.
var ErrArtifactNotFound = errors.New("scaler artifact not found")

// Source trae el artifact de una especie desde donde sea que viva.
type Source interface {
	Fetch(ctx context.Context, species pets.Species) (Artifact, error)
}

// FileSource lee <Dir>/scaler_<species>.json.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) (*FileSource, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("model dir is required")
	}
	return &FileSource{Dir: dir}, nil
}

// ArtifactPath es el path del artifact de species dentro de dir.
func ArtifactPath(dir string, species pets.Species) string {
	return filepath.Join(dir, "scaler_"+string(species)+".json")
}

func (s *FileSource) Fetch(ctx context.Context, species pets.Species) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	path := ArtifactPath(s.Dir, species)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return Artifact{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeArtifact(raw)
}

// HTTPSource pide GET <base>/v1/scalers/<species> a un registry de modelos.
type HTTPSource struct {
	client *httpclient.Client
}

func NewHTTPSource(client *httpclient.Client) (*HTTPSource, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	return &HTTPSource{client: client}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, species pets.Species) (Artifact, error) {
	var a Artifact
	err := s.client.GetJSON(ctx, "/v1/scalers/"+string(species), &a)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
			return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, species)
		}
		return Artifact{}, fmt.Errorf("fetch %s scaler: %w", species, err)
	}
	return a, nil
}
