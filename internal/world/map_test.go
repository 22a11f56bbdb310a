package world

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldcore/internal/grid"
	"github.com/udisondev/worldcore/internal/model"
	"github.com/udisondev/worldcore/internal/respawn"
	"github.com/udisondev/worldcore/internal/spawn"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Every fixture lives in grid (32, 32), cells 256..263 on both axes.
var homeCell = grid.CellCoord{X: 260, Y: 260}

func newTestMap(t *testing.T, opts MapOptions, spawns ...*spawn.SpawnData) (*Map, *spawn.Index) {
	t.Helper()
	l := grid.DefaultLayout()
	ix := spawn.NewIndex(l)
	for _, d := range spawns {
		require.True(t, ix.AddSpawn(d))
	}
	return NewMap(opts, l, ix), ix
}

func defaultOpts() MapOptions {
	return MapOptions{ID: 0, UnloadGrids: true, UnloadDelay: time.Hour}
}

func at(x, y float32) model.Position {
	return model.NewPosition(x, y, 0, 0)
}

func creatureSpawn(id uint64, pos model.Position) *spawn.SpawnData {
	d := spawn.NewSpawnData(spawn.SpawnTypeCreature, id, 0, 1000+uint32(id), pos)
	d.RespawnDelay = 30 * time.Second
	return d
}

func spawnedCreature(t *testing.T, m *Map, id uint64) *model.Creature {
	t.Helper()
	obj, ok := m.SpawnedObject(spawn.SpawnTypeCreature, id)
	require.True(t, ok, "creature spawn %d not materialized", id)
	c, ok := obj.(*model.Creature)
	require.True(t, ok)
	return c
}

func newPlayer(m *Map, name string, pos model.Position) *model.Player {
	guid := model.ObjectGUID{High: model.HighGUIDPlayer, Low: m.GenerateLowGUID(model.HighGUIDPlayer)}
	return model.NewPlayer(guid, name, pos)
}

func TestMap_EnsureGridLoaded(t *testing.T) {
	// (300, 300) is the centre of cell (260, 260)
	gameObject := spawn.NewSpawnData(spawn.SpawnTypeGameObject, 1, 0, 500, at(370, 300))
	heroicOnly := creatureSpawn(3, at(300, 300))
	heroicOnly.Difficulties = []uint8{2}
	otherMap := spawn.NewSpawnData(spawn.SpawnTypeCreature, 4, 1, 10, at(300, 300))

	m, _ := newTestMap(t, defaultOpts(),
		creatureSpawn(1, at(300, 300)),
		creatureSpawn(2, at(310, 290)),
		gameObject, heroicOnly, otherMap)

	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)
	require.NotNil(t, g)
	assert.Equal(t, grid.GridCoord{X: 32, Y: 32}, g.Coord())
	assert.Equal(t, GridStateActive, g.State())
	assert.Equal(t, 1, m.GridCount())

	gc := m.GridCell(cell)
	require.Len(t, gc.Grid.Creatures, 2)
	assert.Empty(t, gc.World.Creatures)
	assert.Len(t, m.GridCell(m.Layout().CellFromCoord(grid.CellCoord{X: 261, Y: 260})).Grid.GameObjects, 1)

	c := spawnedCreature(t, m, 1)
	assert.True(t, c.IsInWorld())
	assert.Equal(t, uint64(1), c.SpawnID())
	assert.Equal(t, uint32(1001), c.Entry())
	assert.Equal(t, 30*time.Second, c.RespawnDelay())
	cur, ok := c.CurrentCell()
	require.True(t, ok)
	assert.True(t, cur.Equal(cell))

	_, ok = m.SpawnedObject(spawn.SpawnTypeCreature, 3)
	assert.False(t, ok, "spawn of another difficulty loaded")
	_, ok = m.SpawnedObject(spawn.SpawnTypeCreature, 4)
	assert.False(t, ok, "spawn of another map loaded")

	assert.Same(t, g, m.EnsureGridLoaded(cell))
	assert.Len(t, gc.Grid.Creatures, 2, "second load duplicated spawns")
	assert.Equal(t, 3, g.ObjectCount())
}

func TestMap_VisitNoCreate(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)

	s := NewObjectListSearcher(nil)
	noCreate := cell
	noCreate.SetNoCreate()
	m.Visit(noCreate, s)
	assert.Empty(t, s.Objects)
	assert.Zero(t, m.GridCount())

	m.Visit(cell, s)
	assert.Len(t, s.Objects, 1)
	assert.Equal(t, 1, m.GridCount())
}

func TestMap_VisitScopes(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	p := newPlayer(m, "Anduin", at(301, 301))
	m.AddPlayer(p)
	cell := m.Layout().CellFromCoord(homeCell)

	tests := []struct {
		name  string
		scope grid.Scope
		want  int
	}{
		{"all", grid.ScopeAll, 2},
		{"grid", grid.ScopeGrid, 1},
		{"world", grid.ScopeWorld, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewObjectListSearcher(nil)
			m.Visit(cell, grid.Scoped{Visitor: s, Scope: tt.scope})
			assert.Len(t, s.Objects, tt.want)
		})
	}

	s := NewObjectListSearcher(nil)
	m.Visit(cell, grid.Scoped{Visitor: s, Scope: grid.ScopeWorld})
	require.Len(t, s.Objects, 1)
	assert.Same(t, p, s.Objects[0])
}

func TestMap_RadiusSearch(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(),
		creatureSpawn(1, at(305, 300)), // 5 away
		creatureSpawn(2, at(320, 300)), // 20 away
		creatureSpawn(3, at(300, 360)), // 60 away, next cell
		creatureSpawn(4, at(500, 300)), // 200 away
	)
	center := grid.Point{X: 300, Y: 300}

	search := func(radius float64) []uint64 {
		s := NewObjectListSearcher(InRange(center, radius))
		grid.VisitAllObjects(m, center, s, radius, false)
		var ids []uint64
		for _, obj := range s.Objects {
			ids = append(ids, obj.SpawnID())
		}
		return ids
	}

	assert.ElementsMatch(t, []uint64{1, 2}, search(30))
	assert.ElementsMatch(t, []uint64{1, 2, 3}, search(70))
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4}, search(250))
}

func TestMap_VisitDontLoad(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))

	s := NewObjectListSearcher(nil)
	grid.VisitAllObjects(m, grid.Point{X: 300, Y: 300}, s, 200, true)
	assert.Empty(t, s.Objects)
	assert.Zero(t, m.GridCount())
}

func TestObjectListSearcher_VisibleTo(t *testing.T) {
	phased := creatureSpawn(2, at(300, 300))
	phased.PhaseID = 9
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)), phased)

	owner := newPlayer(m, "Jaina", at(300, 300))
	owner.AddPersonalPhase(9)
	stranger := newPlayer(m, "Thrall", at(300, 300))
	m.AddPlayer(owner)
	m.AddPlayer(stranger)

	cell := m.Layout().CellFromCoord(homeCell)
	seen := func(viewer *model.Player) int {
		s := NewObjectListSearcher(All(VisibleTo(viewer.GUID()), func(obj model.Object) bool {
			_, ok := obj.(*model.Creature)
			return ok
		}))
		m.Visit(cell, s)
		return len(s.Objects)
	}

	assert.Equal(t, 2, seen(owner))
	assert.Equal(t, 1, seen(stranger))
}

func TestMap_Stopper(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)
	c := spawnedCreature(t, m, 1)

	dyn := model.NewDynamicObject(
		model.ObjectGUID{High: model.HighGUIDDynamicObject, Low: m.GenerateLowGUID(model.HighGUIDDynamicObject)},
		c.GUID(), 133, 8, c.Position())
	trigger := model.NewAreaTrigger(
		model.ObjectGUID{High: model.HighGUIDAreaTrigger, Low: m.GenerateLowGUID(model.HighGUIDAreaTrigger)},
		c.GUID(), 2120, c.Position())
	for _, obj := range []model.Object{dyn, trigger} {
		obj.SetRemoveListener(m)
		obj.AddToWorld()
		require.True(t, m.AddToGrid(obj, cell))
	}
	c.AddDynObject(dyn)
	c.AddAreaTrigger(trigger)
	c.EngageCombat()

	// nobody around: the grid stops on its first update
	m.Update(t0)

	assert.Equal(t, GridStateIdle, g.State())
	assert.False(t, c.IsInCombat())
	assert.Empty(t, c.DynObjects())
	assert.Empty(t, c.AreaTriggers())
	assert.True(t, dyn.IsDestroyed())
	assert.True(t, trigger.IsDestroyed())

	gc := m.GridCell(cell)
	assert.Empty(t, gc.Grid.DynamicObjects)
	assert.Empty(t, gc.Grid.AreaTriggers)
	assert.Len(t, gc.Grid.Creatures, 1)
	assert.True(t, c.IsInWorld(), "stopped creatures stay in the world")
}

func TestMap_GridLifecycle(t *testing.T) {
	opts := defaultOpts()
	opts.UnloadDelay = time.Minute
	m, _ := newTestMap(t, opts, creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)
	c := spawnedCreature(t, m, 1)

	m.Update(t0)
	assert.Equal(t, GridStateIdle, g.State())

	m.Update(t0.Add(time.Second))
	assert.Equal(t, GridStateRemoval, g.State())
	assert.Equal(t, t0.Add(time.Second+time.Minute), g.UnloadAt())

	m.Update(t0.Add(time.Minute))
	assert.Equal(t, 1, m.GridCount(), "unloaded before the delay")

	m.Update(t0.Add(time.Second + time.Minute))
	assert.Zero(t, m.GridCount())
	assert.False(t, c.IsInWorld())
	assert.True(t, c.IsDestroyed())
	_, ok := m.SpawnedObject(spawn.SpawnTypeCreature, 1)
	assert.False(t, ok)

	// loading again materializes a fresh object
	m.EnsureGridLoaded(cell)
	assert.NotSame(t, c, spawnedCreature(t, m, 1))
}

func TestMap_GridUnloadDisabled(t *testing.T) {
	opts := defaultOpts()
	opts.UnloadGrids = false
	opts.UnloadDelay = time.Second
	m, _ := newTestMap(t, opts)
	g := m.EnsureGridLoaded(m.Layout().CellFromCoord(homeCell))

	m.Update(t0)
	m.Update(t0)
	m.Update(t0.Add(time.Hour))

	assert.Equal(t, 1, m.GridCount())
	assert.Equal(t, GridStateRemoval, g.State())
	assert.Equal(t, t0.Add(time.Hour+time.Second), g.UnloadAt())
}

func TestMap_PlayerKeepsGridActive(t *testing.T) {
	opts := defaultOpts()
	opts.UnloadDelay = time.Second
	m, _ := newTestMap(t, opts, creatureSpawn(1, at(300, 300)))
	p := newPlayer(m, "Varian", at(300, 300))
	m.AddPlayer(p)
	g := m.Grid(32, 32)
	require.NotNil(t, g)

	for i := range 5 {
		m.Update(t0.Add(time.Duration(i) * time.Minute))
	}
	assert.Equal(t, GridStateActive, g.State())
	assert.Equal(t, 1, m.GridCount())

	m.RemovePlayer(p)
	assert.False(t, p.IsInWorld())
	assert.Zero(t, m.PlayerCount())

	m.Update(t0.Add(time.Hour))
	m.Update(t0.Add(time.Hour))
	m.Update(t0.Add(2 * time.Hour))
	assert.Zero(t, m.GridCount())
}

func TestMap_PlayerNearGridEdgeKeepsNeighbourActive(t *testing.T) {
	opts := defaultOpts()
	opts.UnloadDelay = 0
	m, _ := newTestMap(t, opts)

	// cell 264 is the first cell of grid 33, next to grid 32
	p := newPlayer(m, "Genn", at(0, 0))
	x, y := m.Layout().CellCenter(grid.CellCoord{X: 264, Y: 260})
	p.SetPosition(at(float32(x), float32(y)))
	m.AddPlayer(p)
	neighbour := m.EnsureGridLoaded(m.Layout().CellFromCoord(homeCell))
	far := m.EnsureGridLoaded(m.Layout().CellFromCoord(grid.CellCoord{X: 100, Y: 100}))

	m.Update(t0)
	assert.Equal(t, GridStateActive, neighbour.State())
	assert.Equal(t, GridStateIdle, far.State())
}

func TestMap_Corpses(t *testing.T) {
	m, ix := newTestMap(t, defaultOpts())
	owner := model.ObjectGUID{High: model.HighGUIDPlayer, Low: 77}
	ix.AddCorpse(spawn.CorpseRecord{GUIDLow: 1, Type: model.CorpseBones, Position: at(300, 300), CreatedAt: t0})
	ix.AddCorpse(spawn.CorpseRecord{GUIDLow: 2, Owner: owner, Type: model.CorpseResurrectablePvE, Position: at(300, 300), CreatedAt: t0})

	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)

	gc := m.GridCell(cell)
	require.Len(t, gc.Grid.Corpses, 1)
	require.Len(t, gc.World.Corpses, 1)
	assert.Equal(t, uint64(1), gc.Grid.Corpses[0].GUID().Low)
	assert.Equal(t, owner, gc.World.Corpses[0].Owner())

	resurrectable := model.ObjectGUID{High: model.HighGUIDCorpse, MapID: 0, Low: 2}
	_, moving := m.MovingObject(resurrectable)
	assert.True(t, moving)
	assert.Len(t, m.CorpsesInCell(homeCell.ID(m.Layout())), 2)

	require.True(t, m.UnloadGrid(g))
	bones, ok := m.Corpse(1)
	require.True(t, ok, "corpses outlive their grid")
	assert.False(t, bones.IsInWorld())
	_, moving = m.MovingObject(resurrectable)
	assert.False(t, moving)

	m.EnsureGridLoaded(cell)
	gc = m.GridCell(cell)
	assert.Len(t, gc.Grid.Corpses, 1)
	assert.Len(t, gc.World.Corpses, 1)
	assert.Same(t, bones, gc.Grid.Corpses[0])
	assert.True(t, bones.IsInWorld())
}

func TestMap_AddRemoveCorpse(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts())
	cell := m.Layout().CellFromCoord(homeCell)
	m.EnsureGridLoaded(cell)

	guid := model.ObjectGUID{High: model.HighGUIDCorpse, Low: m.GenerateLowGUID(model.HighGUIDCorpse)}
	c := model.NewCorpse(guid, model.ObjectGUID{High: model.HighGUIDPlayer, Low: 5}, model.CorpseResurrectablePvP, at(300, 300), t0)
	m.AddCorpse(c)

	assert.True(t, c.IsInWorld())
	assert.Len(t, m.GridCell(cell).World.Corpses, 1)

	// not yet loaded: tabled only
	far := model.NewCorpse(model.ObjectGUID{High: model.HighGUIDCorpse, Low: 99}, model.EmptyGUID, model.CorpseBones, at(-9000, -9000), t0)
	m.AddCorpse(far)
	assert.False(t, far.IsInWorld())
	_, ok := m.Corpse(99)
	assert.True(t, ok)

	m.RemoveCorpse(c)
	assert.Empty(t, m.GridCell(cell).World.Corpses)
	_, ok = m.Corpse(guid.Low)
	assert.False(t, ok)
	assert.Empty(t, m.CorpsesInCell(homeCell.ID(m.Layout())))
}

func TestMap_RemovedCorpseStaysRemovedAfterReload(t *testing.T) {
	m, ix := newTestMap(t, defaultOpts())
	ix.AddCorpse(spawn.CorpseRecord{GUIDLow: 1, Type: model.CorpseBones, Position: at(300, 300), CreatedAt: t0})
	ix.AddCorpse(spawn.CorpseRecord{GUIDLow: 2, Type: model.CorpseBones, Position: at(305, 305), CreatedAt: t0})

	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)
	removed, ok := m.Corpse(1)
	require.True(t, ok)

	m.RemoveCorpse(removed)
	require.True(t, m.UnloadGrid(g))
	m.EnsureGridLoaded(cell)

	_, ok = m.Corpse(1)
	assert.False(t, ok, "removed corpse registered again")
	assert.False(t, removed.IsInWorld())

	gc := m.GridCell(cell)
	require.Len(t, gc.Grid.Corpses, 1)
	assert.Equal(t, uint64(2), gc.Grid.Corpses[0].GUID().Low)
	assert.Len(t, m.CorpsesInCell(homeCell.ID(m.Layout())), 1)
}

func TestMap_AreaTriggerSpawns(t *testing.T) {
	trigger := spawn.NewSpawnData(spawn.SpawnTypeAreaTrigger, 7, 0, 4485, at(300, 300))
	m, _ := newTestMap(t, defaultOpts(), trigger)

	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)

	gc := m.GridCell(cell)
	require.Len(t, gc.Grid.AreaTriggers, 1)
	placed := gc.Grid.AreaTriggers[0]
	assert.Equal(t, uint32(4485), placed.Entry())
	assert.Equal(t, uint64(7), placed.SpawnID())
	assert.True(t, placed.Caster().IsEmpty())
	assert.True(t, placed.IsInWorld())

	obj, ok := m.SpawnedObject(spawn.SpawnTypeAreaTrigger, 7)
	require.True(t, ok)
	assert.Same(t, placed, obj)

	require.True(t, m.DespawnForRespawn(placed, t0))
	m.RemoveAllObjectsInRemoveList()
	assert.Empty(t, gc.Grid.AreaTriggers)
	info := m.Respawns().Get(spawn.SpawnTypeAreaTrigger, 7)
	require.NotNil(t, info)
	assert.Equal(t, uint32(4485), info.Entry)

	assert.Equal(t, 1, m.ProcessRespawns(t0))
	require.Len(t, gc.Grid.AreaTriggers, 1)

	require.True(t, m.UnloadGrid(g))
	_, ok = m.SpawnedObject(spawn.SpawnTypeAreaTrigger, 7)
	assert.False(t, ok)
}

func TestMap_PersonalPhase(t *testing.T) {
	phased := creatureSpawn(10, at(300, 300))
	phased.PhaseID = 7
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)), phased)
	owner := model.ObjectGUID{High: model.HighGUIDPlayer, Low: 42}
	cell := m.Layout().CellFromCoord(homeCell)

	g := m.EnsureGridLoaded(cell)
	require.Len(t, m.GridCell(cell).Grid.Creatures, 1, "phase spawn leaked into the base world")

	m.AddPersonalPhase(7, owner)
	assert.True(t, g.HasPhase(7))
	creatures := m.GridCell(cell).Grid.Creatures
	require.Len(t, creatures, 2)
	var phasedCreature *model.Creature
	for _, c := range creatures {
		if c.PhaseID() == 7 {
			phasedCreature = c
		}
	}
	require.NotNil(t, phasedCreature)
	assert.Equal(t, owner, phasedCreature.PrivateOwner())
	assert.Equal(t, uint64(10), phasedCreature.SpawnID())

	// registering twice loads nothing more
	m.AddPersonalPhase(7, owner)
	require.NoError(t, m.LoadPersonalPhaseGrid(g.Coord(), 7, owner))
	assert.Len(t, m.GridCell(cell).Grid.Creatures, 2)

	err := m.LoadPersonalPhaseGrid(grid.GridCoord{X: 1, Y: 1}, 7, owner)
	assert.ErrorIs(t, err, ErrGridNotLoaded)

	m.RemovePersonalPhase(7)
	assert.False(t, g.HasPhase(7))
	assert.Len(t, m.GridCell(cell).Grid.Creatures, 1)
	assert.False(t, phasedCreature.IsInWorld())
}

func TestMap_PersonalPhaseLoadedWithNewGrid(t *testing.T) {
	phased := creatureSpawn(10, at(300, 300))
	phased.PhaseID = 7
	m, _ := newTestMap(t, defaultOpts(), phased)

	p := newPlayer(m, "Tyrande", at(300, 300))
	p.AddPersonalPhase(7)
	m.AddPlayer(p)

	creatures := m.GridCell(m.Layout().CellFromCoord(homeCell)).Grid.Creatures
	require.Len(t, creatures, 1)
	assert.Equal(t, p.GUID(), creatures[0].PrivateOwner())

	m.RemovePlayer(p)
	assert.Empty(t, m.GridCell(m.Layout().CellFromCoord(homeCell)).Grid.Creatures)
}

type recordingStore struct {
	spawn.Store
	phaseCells []uint32
}

func (s *recordingStore) LookupPhaseCellSpawns(mapID uint32, difficulty uint8, phaseID uint32, cellID uint32) spawn.CellSpawns {
	s.phaseCells = append(s.phaseCells, cellID)
	return s.Store.LookupPhaseCellSpawns(mapID, difficulty, phaseID, cellID)
}

func TestPersonalPhaseGridLoader_CellOrder(t *testing.T) {
	l := grid.DefaultLayout()
	store := &recordingStore{Store: spawn.NewIndex(l)}
	m := NewMap(defaultOpts(), l, store)
	g := m.EnsureGridLoaded(l.CellFromCoord(homeCell))

	NewPersonalPhaseGridLoader(m, 3, model.EmptyGUID).Load(g)

	var want []uint32
	for x := range uint32(8) {
		for y := range uint32(8) {
			want = append(want, grid.CellCoord{X: 256 + x, Y: 256 + y}.ID(l))
		}
	}
	assert.Equal(t, want, store.phaseCells)
}

func TestMap_Respawn(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)
	m.EnsureGridLoaded(cell)
	c := spawnedCreature(t, m, 1)

	require.True(t, m.DespawnForRespawn(c, t0))
	m.Update(t0)

	assert.Empty(t, m.GridCell(cell).Grid.Creatures)
	assert.False(t, c.IsInWorld())
	require.Equal(t, 1, m.PendingRespawns())
	info := m.Respawns().Get(spawn.SpawnTypeCreature, 1)
	require.NotNil(t, info)
	assert.Equal(t, t0.Add(30*time.Second), info.RespawnTime)
	assert.Equal(t, cell.ID(), info.GridID)
	assert.Equal(t, uint32(1001), info.Entry)

	m.Update(t0.Add(29 * time.Second))
	assert.Empty(t, m.GridCell(cell).Grid.Creatures)

	m.Update(t0.Add(30 * time.Second))
	assert.Zero(t, m.PendingRespawns())
	respawned := spawnedCreature(t, m, 1)
	assert.NotSame(t, c, respawned)
	assert.Len(t, m.GridCell(cell).Grid.Creatures, 1)
}

func TestMap_GridLoadSkipsPendingRespawn(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)
	g := m.EnsureGridLoaded(cell)

	require.True(t, m.DespawnForRespawn(spawnedCreature(t, m, 1), t0))
	m.RemoveAllObjectsInRemoveList()
	require.True(t, m.UnloadGrid(g))

	m.EnsureGridLoaded(cell)
	assert.Empty(t, m.GridCell(cell).Grid.Creatures)

	m.Update(t0.Add(time.Minute))
	assert.Len(t, m.GridCell(cell).Grid.Creatures, 1)
}

func TestMap_RespawnOnUnloadedGridDropped(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	cell := m.Layout().CellFromCoord(homeCell)

	require.True(t, m.SaveRespawn(&respawn.Info{
		Type:        spawn.SpawnTypeCreature,
		SpawnID:     1,
		RespawnTime: t0,
		GridID:      cell.ID(),
	}))
	m.Update(t0)

	assert.Zero(t, m.PendingRespawns())
	assert.Zero(t, m.GridCount(), "respawn loaded a grid")
}

func TestMap_DespawnForRespawnRejectsUnspawned(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts())
	m.EnsureGridLoaded(m.Layout().CellFromCoord(homeCell))

	p := newPlayer(m, "Malfurion", at(300, 300))
	m.AddPlayer(p)
	assert.False(t, m.DespawnForRespawn(p, t0))

	summon := model.NewCreature(model.ObjectGUID{High: model.HighGUIDCreature, Low: 1}, 1, at(300, 300))
	assert.False(t, m.DespawnForRespawn(summon, t0), "creature without spawn")
}

func TestMap_MoveObject(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	l := m.Layout()
	m.EnsureGridLoaded(l.CellFromCoord(homeCell))
	c := spawnedCreature(t, m, 1)

	require.True(t, m.MoveObject(c, at(310, 300)))
	assert.Equal(t, float32(310), c.Position().X)
	assert.Len(t, m.GridCell(l.CellFromCoord(homeCell)).Grid.Creatures, 1)

	next := grid.CellCoord{X: 261, Y: 260}
	require.True(t, m.MoveObject(c, at(350, 300)))
	assert.Empty(t, m.GridCell(l.CellFromCoord(homeCell)).Grid.Creatures)
	assert.Len(t, m.GridCell(l.CellFromCoord(next)).Grid.Creatures, 1)
	cur, _ := c.CurrentCell()
	assert.Equal(t, next, cur.CellCoord())

	// grid 33 is not loaded
	assert.False(t, m.MoveObject(c, at(1000, 300)))
	assert.Equal(t, float32(350), c.Position().X)
	assert.Equal(t, 1, m.GridCount())
}

func TestMap_MovePlayerLoadsGrid(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(1000, 300)))
	p := newPlayer(m, "Sylvanas", at(300, 300))
	m.AddPlayer(p)
	require.Equal(t, 1, m.GridCount())

	require.True(t, m.MoveObject(p, at(1000, 300)))
	assert.Equal(t, 2, m.GridCount())
	_, ok := m.SpawnedObject(spawn.SpawnTypeCreature, 1)
	assert.True(t, ok)

	obj, ok := m.MovingObject(p.GUID())
	require.True(t, ok)
	assert.Same(t, p, obj)
	cur, _ := p.CurrentCell()
	assert.Equal(t, m.Layout().WorldToCellCoord(1000, 300), cur.CellCoord())
}

func TestMap_Enqueue(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts())

	var wg sync.WaitGroup
	ran := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Enqueue(func(*Map) { ran++ })
		}()
	}
	wg.Wait()

	m.Update(t0)
	assert.Equal(t, 8, ran)

	m.Update(t0)
	assert.Equal(t, 8, ran, "queued work ran twice")
}

func TestMap_RemoveListDeduplicates(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)))
	m.EnsureGridLoaded(m.Layout().CellFromCoord(homeCell))
	c := spawnedCreature(t, m, 1)

	m.AddObjectToRemoveList(c)
	m.AddObjectToRemoveList(c)
	m.RemoveAllObjectsInRemoveList()

	assert.False(t, c.IsInWorld())
	_, ok := m.SpawnedObject(spawn.SpawnTypeCreature, 1)
	assert.False(t, ok)
}

func TestMap_UnloadAll(t *testing.T) {
	m, _ := newTestMap(t, defaultOpts(), creatureSpawn(1, at(300, 300)), creatureSpawn(2, at(-5000, 4000)))
	p := newPlayer(m, "Arthas", at(300, 300))
	m.AddPlayer(p)
	m.EnsureGridLoaded(m.Layout().CellAt(-5000, 4000))
	require.Equal(t, 2, m.GridCount())

	m.UnloadAll()

	assert.Zero(t, m.GridCount())
	assert.Zero(t, m.PlayerCount())
	assert.False(t, p.IsInWorld())
}

func TestLowGUIDGenerator(t *testing.T) {
	g := NewLowGUIDGenerator()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint64]struct{})
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 250 {
				low := g.Generate(model.HighGUIDCreature)
				mu.Lock()
				seen[low] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 1000)

	// kinds count independently
	assert.Equal(t, uint64(lowGUIDStart+1), g.Generate(model.HighGUIDGameObject))
}

func BenchmarkMap_RadiusSearch(b *testing.B) {
	l := grid.DefaultLayout()
	ix := spawn.NewIndex(l)
	for i := range uint64(500) {
		ix.AddSpawn(creatureSpawn(i+1, at(float32(200+i%25*8), float32(200+i/25*8))))
	}
	m := NewMap(defaultOpts(), l, ix)
	center := grid.Point{X: 300, Y: 300}
	grid.VisitAllObjects(m, center, NewObjectListSearcher(nil), 200, false)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		s := NewObjectListSearcher(InRange(center, 50))
		grid.VisitAllObjects(m, center, s, 50, true)
	}
}
