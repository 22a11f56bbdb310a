package world

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/worldcore/internal/config"
	"github.com/udisondev/worldcore/internal/grid"
	"github.com/udisondev/worldcore/internal/spawn"
)

// Manager owns every map and drives their updates.
// Maps progress concurrently, each map on one goroutine at a time.
type Manager struct {
	layout *grid.Layout
	store  spawn.Store
	cfg    config.Maps

	mu   sync.RWMutex
	maps map[uint32]*Map
}

// NewManager creates a manager with one map per configured instance.
func NewManager(cfg config.Maps, layout *grid.Layout, store spawn.Store) *Manager {
	mgr := &Manager{
		layout: layout,
		store:  store,
		cfg:    cfg,
		maps:   make(map[uint32]*Map, len(cfg.Instances)),
	}
	for _, entry := range cfg.Instances {
		mgr.CreateMap(entry.ID, entry.Difficulty)
	}
	return mgr
}

// CreateMap adds a map instance, or returns the existing one with that id.
func (mgr *Manager) CreateMap(id uint32, difficulty uint8) *Map {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if m, ok := mgr.maps[id]; ok {
		return m
	}
	m := NewMap(MapOptions{
		ID:          id,
		Difficulty:  difficulty,
		UnloadGrids: mgr.cfg.UnloadGrids,
		UnloadDelay: mgr.cfg.UnloadDelay,
	}, mgr.layout, mgr.store)
	mgr.maps[id] = m

	slog.Info("map created", "map", id, "difficulty", difficulty)
	return m
}

// Map returns the map with id.
func (mgr *Manager) Map(id uint32) (*Map, error) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()

	m, ok := mgr.maps[id]
	if !ok {
		return nil, fmt.Errorf("map %d: %w", id, ErrMapNotFound)
	}
	return m, nil
}

// Count returns the number of maps.
func (mgr *Manager) Count() int {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return len(mgr.maps)
}

// snapshot returns the maps ordered by id.
func (mgr *Manager) snapshot() []*Map {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()

	out := make([]*Map, 0, len(mgr.maps))
	for _, id := range slices.Sorted(maps.Keys(mgr.maps)) {
		out = append(out, mgr.maps[id])
	}
	return out
}

// UpdateAll updates every map once, at most UpdateThreads at a time.
func (mgr *Manager) UpdateAll(ctx context.Context, now time.Time) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, mgr.cfg.UpdateThreads))

	for _, m := range mgr.snapshot() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.Update(now)
			return nil
		})
	}
	return g.Wait()
}

// Run updates every map on each tick until ctx is cancelled, then unloads
// all maps.
func (mgr *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(mgr.cfg.UpdateInterval)
	defer ticker.Stop()

	slog.Info("map manager started",
		"maps", mgr.Count(),
		"interval", mgr.cfg.UpdateInterval,
		"threads", mgr.cfg.UpdateThreads)

	for {
		select {
		case <-ctx.Done():
			slog.Info("map manager stopping")
			mgr.UnloadAll()
			return ctx.Err()

		case now := <-ticker.C:
			if err := mgr.UpdateAll(ctx, now); err != nil && ctx.Err() == nil {
				return fmt.Errorf("updating maps: %w", err)
			}
		}
	}
}

// UnloadAll unloads every map. Must not run concurrently with UpdateAll.
func (mgr *Manager) UnloadAll() {
	for _, m := range mgr.snapshot() {
		m.UnloadAll()
	}
}
