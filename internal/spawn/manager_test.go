package spawn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldcore/internal/grid"
	"github.com/udisondev/worldcore/internal/testutil"
)

type failingRepository struct {
	spawnsErr  error
	corpsesErr error
}

func (r failingRepository) LoadSpawns(context.Context) ([]*SpawnData, error) {
	return nil, r.spawnsErr
}

func (r failingRepository) LoadCorpses(context.Context) ([]CorpseRecord, error) {
	return nil, r.corpsesErr
}

func TestManager_Load(t *testing.T) {
	l := grid.DefaultLayout()
	pos := cellPosition(l, grid.CellCoord{X: 40, Y: 41})

	unbound := &SpawnData{SpawnMetadata: NewSpawnMetadata(SpawnTypeCreature, 99)}
	phased := NewSpawnData(SpawnTypeGameObject, 3, 0, 5, pos)
	phased.PhaseID = 12

	repo := NewStaticRepository(
		[]*SpawnData{
			NewSpawnData(SpawnTypeCreature, 1, 0, 5, pos),
			NewSpawnData(SpawnTypeCreature, 2, 0, 5, pos),
			phased,
			unbound,
		},
		[]CorpseRecord{{GUIDLow: 1, MapID: 0, Position: pos}},
	)

	mgr := NewManager(repo, NewIndex(l))
	require.NoError(t, mgr.Load(context.Background()))

	assert.Equal(t, 3, mgr.SpawnCount())
	assert.Equal(t, 1, mgr.CorpseCount())

	cellID := mgr.Index().CellID(pos.Coordinates())
	base := mgr.Index().LookupCellSpawns(0, cellID)
	assert.Equal(t, []uint64{1, 2}, base.Creatures)
	assert.Len(t, base.Corpses, 1)
	assert.Equal(t, []uint64{3}, mgr.Index().LookupPhaseCellSpawns(0, 0, 12, cellID).GameObjects)
	assert.Nil(t, mgr.Index().SpawnData(SpawnTypeCreature, 99))
}

func TestManager_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		repo Repository
	}{
		{"spawns", failingRepository{spawnsErr: testutil.ErrSimulated}},
		{"corpses", failingRepository{corpsesErr: testutil.ErrSimulated}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := NewManager(tt.repo, NewIndex(grid.DefaultLayout()))
			err := mgr.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, testutil.ErrSimulated)
		})
	}
}

func TestManager_LoadEmpty(t *testing.T) {
	mgr := NewManager(NewStaticRepository(nil, nil), NewIndex(grid.DefaultLayout()))
	require.NoError(t, mgr.Load(context.Background()))
	assert.Zero(t, mgr.SpawnCount())
	assert.Zero(t, mgr.Index().Count())

}
