package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/platform/logger"
	"pet-matcher/internal/platform/metrics"

	"github.com/knadh/koanf/providers/file"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded: el store todavía no tiene un snapshot válido para la especie.
var ErrNotLoaded = errors.New("scaler not loaded")

const DefaultReloadTimeout = 10 * time.Second

type snapshot struct {
	scalers  map[pets.Species]*matching.Scaler
	loadedAt time.Time
}

type StoreOptions struct {
	ZeroScalePolicy matching.ZeroScalePolicy
	ReloadTimeout   time.Duration
	Logger          logger.Logger
}

// Store guarda los scalers de todas las especies como un único snapshot
// inmutable. Lecturas sin lock; una recarga reemplaza el snapshot entero o
// no toca nada.
type Store struct {
	src     Source
	policy  matching.ZeroScalePolicy
	timeout time.Duration
	log     logger.Logger

	snap atomic.Pointer[snapshot]

	// serializa recargas
	reloadMu sync.Mutex

	watchMu  sync.Mutex
	watchers []*file.File

	now func() time.Time
}

func NewStore(src Source, opts StoreOptions) (*Store, error) {
	if src == nil {
		return nil, errors.New("model source is required")
	}
	policy := opts.ZeroScalePolicy
	if policy == "" {
		policy = matching.ZeroScaleSubstitute
	}
	timeout := opts.ReloadTimeout
	if timeout <= 0 {
		timeout = DefaultReloadTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		src:     src,
		policy:  policy,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}, nil
}

// Load trae y valida los artifacts de todas las especies en paralelo. Si
// alguno falla se conserva el snapshot anterior.
func (s *Store) Load(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	species := pets.AllSpecies()
	loaded := make([]*matching.Scaler, len(species))

	g, gctx := errgroup.WithContext(ctx)
	for i, sp := range species {
		g.Go(func() error {
			a, err := s.src.Fetch(gctx, sp)
			if err != nil {
				return err
			}
			sc, err := a.Scaler(sp, s.policy)
			if err != nil {
				return err
			}
			loaded[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.ScalerReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("load scalers: %w", err)
	}

	next := &snapshot{
		scalers:  make(map[pets.Species]*matching.Scaler, len(species)),
		loadedAt: s.now().UTC(),
	}
	for i, sp := range species {
		next.scalers[sp] = loaded[i]
	}
	s.snap.Store(next)

	metrics.ScalerReloads.WithLabelValues("ok").Inc()
	s.log.Info("scalers loaded", map[string]any{"species": len(species)})
	return nil
}

// Reload es Load con el timeout configurado, para watchers y el endpoint admin.
func (s *Store) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Load(ctx)
}

// Scaler implementa match.ScalerProvider.
func (s *Store) Scaler(ctx context.Context, species pets.Species) (*matching.Scaler, error) {
	snap := s.snap.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	sc, ok := snap.scalers[species]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, species)
	}
	return sc, nil
}

// LoadedAt devuelve el momento del último snapshot válido (cero si nunca cargó).
func (s *Store) LoadedAt() time.Time {
	if snap := s.snap.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}

// Watch recarga el store cuando cambia cualquier artifact de dir. Se detiene
// cuando ctx termina.
func (s *Store) Watch(ctx context.Context, dir string) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for _, sp := range pets.AllSpecies() {
		path := ArtifactPath(dir, sp)
		provider := file.Provider(path)
		err := provider.Watch(func(event interface{}, err error) {
			if err != nil {
				s.log.Warn("artifact watch error", map[string]any{"path": path, "error": err.Error()})
				return
			}
			if err := s.Reload(ctx); err != nil {
				s.log.Error("scaler reload failed, keeping previous snapshot", map[string]any{
					"path":  path,
					"error": err.Error(),
				})
			}
		})
		if err != nil {
			s.stopLocked()
			return fmt.Errorf("watch %s: %w", path, err)
		}
		s.watchers = append(s.watchers, provider)
	}

	go func() {
		<-ctx.Done()
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		s.stopLocked()
	}()
	return nil
}

func (s *Store) stopLocked() {
	for _, w := range s.watchers {
		_ = w.Unwatch()
	}
	s.watchers = nil
}
