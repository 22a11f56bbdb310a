package spawn

import "context"

// StaticRepository serves spawns held in memory. Used when the server runs
// without a database and by tests.
type StaticRepository struct {
	Spawns  []*SpawnData
	Corpses []CorpseRecord
}

// NewStaticRepository creates a repository over fixed records.
func NewStaticRepository(spawns []*SpawnData, corpses []CorpseRecord) *StaticRepository {
	return &StaticRepository{Spawns: spawns, Corpses: corpses}
}

// LoadSpawns implements Repository.
func (r *StaticRepository) LoadSpawns(_ context.Context) ([]*SpawnData, error) {
	return r.Spawns, nil
}

// LoadCorpses implements Repository.
func (r *StaticRepository) LoadCorpses(_ context.Context) ([]CorpseRecord, error) {
	return r.Corpses, nil
}
