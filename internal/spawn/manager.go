package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Repository loads persisted spawns and corpses.
type Repository interface {
	LoadSpawns(ctx context.Context) ([]*SpawnData, error)
	LoadCorpses(ctx context.Context) ([]CorpseRecord, error)
}

// Manager fills an Index from a Repository.
type Manager struct {
	repo  Repository
	index *Index

	// set by Load, read by status queries from other goroutines
	spawnCount  atomic.Int32
	corpseCount atomic.Int32
}

// NewManager creates a spawn manager filling index from repo.
func NewManager(repo Repository, index *Index) *Manager {
	return &Manager{
		repo:  repo,
		index: index,
	}
}

// Index returns the store the manager fills.
func (m *Manager) Index() *Index {
	return m.index
}

// Load reads every spawn and corpse from the repository into the index.
func (m *Manager) Load(ctx context.Context) error {
	spawns, err := m.repo.LoadSpawns(ctx)
	if err != nil {
		return fmt.Errorf("loading spawns: %w", err)
	}

	count, skipped, personal := 0, 0, 0
	for _, d := range spawns {
		if !d.HasMap() {
			slog.Warn("spawn without map skipped", "type", d.Type, "spawnID", d.SpawnID)
			skipped++
			continue
		}
		if !m.index.AddSpawn(d) {
			slog.Warn("spawn type without data skipped", "type", d.Type, "spawnID", d.SpawnID)
			skipped++
			continue
		}
		if d.IsPersonal() {
			personal++
		}
		count++
	}
	m.spawnCount.Store(int32(count))

	corpses, err := m.repo.LoadCorpses(ctx)
	if err != nil {
		return fmt.Errorf("loading corpses: %w", err)
	}
	for _, c := range corpses {
		m.index.AddCorpse(c)
	}
	m.corpseCount.Store(int32(len(corpses)))

	slog.Info("spawns loaded",
		"spawns", count,
		"personal", personal,
		"skipped", skipped,
		"corpses", len(corpses))
	return nil
}

// SpawnCount returns the number of spawns indexed by the last Load.
func (m *Manager) SpawnCount() int {
	return int(m.spawnCount.Load())
}

// CorpseCount returns the number of corpses indexed by the last Load.
func (m *Manager) CorpseCount() int {
	return int(m.corpseCount.Load())
}
