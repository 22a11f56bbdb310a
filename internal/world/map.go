package world

import (
	"cmp"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/worldcore/internal/grid"
	"github.com/udisondev/worldcore/internal/model"
	"github.com/udisondev/worldcore/internal/respawn"
	"github.com/udisondev/worldcore/internal/spawn"
)

var (
	// ErrMapNotFound is returned for a map id the manager does not own.
	ErrMapNotFound = errors.New("map not found")
	// ErrGridNotLoaded is returned when an operation needs a resident grid.
	ErrGridNotLoaded = errors.New("grid not loaded")
)

// MapOptions configure one map instance.
type MapOptions struct {
	ID         uint32
	Difficulty uint8

	UnloadGrids bool
	UnloadDelay time.Duration
}

type spawnKey struct {
	t  spawn.SpawnObjectType
	id uint64
}

// Map owns the loaded grids of one map instance and everything in them.
//
// A Map is driven by one goroutine at a time: Update and every method below
// except Enqueue must not run concurrently. Other goroutines hand work to
// the map through Enqueue.
type Map struct {
	id         uint32
	difficulty uint8
	layout     *grid.Layout
	store      spawn.Store

	unloadGrids bool
	unloadDelay time.Duration

	grids   map[uint32]*Grid // by Cell.ID
	moving  map[model.ObjectGUID]model.Object
	spawned map[spawnKey]model.Object // base-world objects by spawn
	players map[model.ObjectGUID]*model.Player

	corpses     map[uint32][]*model.Corpse // by cell coordinate id
	corpsesByID map[uint64]*model.Corpse
	corpseCells map[uint32]struct{} // cells whose stored corpses are tabled

	phases map[uint32]model.ObjectGUID // personal phase -> owner

	removeList []model.Object
	removing   map[model.Object]struct{}

	guids    *LowGUIDGenerator
	respawns *respawn.Queue

	mu      sync.Mutex
	pending []func(*Map)
}

// NewMap creates an empty map loading its content from store.
func NewMap(opts MapOptions, layout *grid.Layout, store spawn.Store) *Map {
	return &Map{
		id:          opts.ID,
		difficulty:  opts.Difficulty,
		layout:      layout,
		store:       store,
		unloadGrids: opts.UnloadGrids,
		unloadDelay: opts.UnloadDelay,
		grids:       make(map[uint32]*Grid),
		moving:      make(map[model.ObjectGUID]model.Object),
		spawned:     make(map[spawnKey]model.Object),
		players:     make(map[model.ObjectGUID]*model.Player),
		corpses:     make(map[uint32][]*model.Corpse),
		corpsesByID: make(map[uint64]*model.Corpse),
		corpseCells: make(map[uint32]struct{}),
		phases:      make(map[uint32]model.ObjectGUID),
		removing:    make(map[model.Object]struct{}),
		guids:       NewLowGUIDGenerator(),
		respawns:    respawn.NewQueue(),
	}
}

func (m *Map) ID() uint32               { return m.id }
func (m *Map) Difficulty() uint8        { return m.difficulty }
func (m *Map) Layout() *grid.Layout     { return m.layout }
func (m *Map) GridCount() int           { return len(m.grids) }
func (m *Map) PlayerCount() int         { return len(m.players) }
func (m *Map) PendingRespawns() int     { return m.respawns.Len() }
func (m *Map) Respawns() *respawn.Queue { return m.respawns }

// Visit hands the content of cell to v. An unloaded grid is loaded first,
// unless the cell is marked noCreate.
func (m *Map) Visit(cell grid.Cell, v grid.Visitor) {
	if !cell.IsValid() || !cell.GridCoord().IsValid(m.layout) {
		return
	}

	g, ok := m.grids[cell.ID()]
	if !ok {
		if cell.NoCreate() {
			return
		}
		g = m.EnsureGridLoaded(cell)
	}

	gc := g.Cell(cell.CellX(), cell.CellY())
	inner, scope := grid.Unscope(v)
	if scope != grid.ScopeWorld {
		dispatch(cell, &gc.Grid, inner)
	}
	if scope != grid.ScopeGrid {
		dispatch(cell, &gc.World, inner)
	}
}

// visitGrid visits every cell of a loaded grid, local X then Y.
func (m *Map) visitGrid(g *Grid, v grid.Visitor) {
	for x := range g.size {
		for y := range g.size {
			m.Visit(m.layout.CellInGrid(g.coord, x, y), v)
		}
	}
}

// EnsureGridLoaded returns the grid holding cell, loading it if needed:
// base spawns, corpses, then every registered personal phase.
func (m *Map) EnsureGridLoaded(cell grid.Cell) *Grid {
	if g, ok := m.grids[cell.ID()]; ok {
		return g
	}

	g := newGrid(m.layout, cell.GridCoord())
	m.grids[g.id] = g

	loader := NewGridLoader(m)
	loader.Load(g)

	corpses := NewWorldLoader(m)
	m.visitGrid(g, grid.Scoped{Visitor: corpses, Scope: grid.ScopeWorld})

	for _, phaseID := range slices.Sorted(maps.Keys(m.phases)) {
		m.loadPersonalPhase(g, phaseID, m.phases[phaseID])
	}

	creatures, gameObjects, areaTriggers, _ := loader.Counts()
	slog.Debug("grid loaded",
		"map", m.id,
		"gridX", g.coord.X,
		"gridY", g.coord.Y,
		"creatures", creatures,
		"gameobjects", gameObjects,
		"areatriggers", areaTriggers,
		"corpses", corpses.Count())
	return g
}

// Grid returns the loaded grid at (gridX, gridY), nil if not loaded.
func (m *Map) Grid(gridX, gridY uint32) *Grid {
	return m.grids[m.layout.CellInGrid(grid.GridCoord{X: gridX, Y: gridY}, 0, 0).ID()]
}

// IsGridLoaded reports whether the grid at gc is resident.
func (m *Map) IsGridLoaded(gc grid.GridCoord) bool {
	return m.Grid(gc.X, gc.Y) != nil
}

// GridCell returns the storage of cell, nil if its grid is not loaded.
func (m *Map) GridCell(cell grid.Cell) *GridCell {
	g, ok := m.grids[cell.ID()]
	if !ok || !cell.IsValid() {
		return nil
	}
	return g.Cell(cell.CellX(), cell.CellY())
}

// AddToGrid files obj into cell. World objects go to the world container
// and the moving index, others to the grid container. The grid must be loaded.
func (m *Map) AddToGrid(obj model.Object, cell grid.Cell) bool {
	gc := m.GridCell(cell)
	if gc == nil {
		return false
	}

	if obj.IsWorldObject() {
		if !gc.World.add(obj) {
			return false
		}
		m.moving[obj.GUID()] = obj
	} else if !gc.Grid.add(obj) {
		return false
	}

	obj.SetCurrentCell(cell)
	return true
}

// RemoveFromGrid takes obj out of the cell it is filed in.
func (m *Map) RemoveFromGrid(obj model.Object) bool {
	cell, ok := obj.CurrentCell()
	if !ok {
		return false
	}
	if obj.IsWorldObject() {
		m.RemoveFromMovingIndex(obj)
	}

	gc := m.GridCell(cell)
	if gc == nil {
		return false
	}
	return gc.Grid.remove(obj) || gc.World.remove(obj)
}

// MoveObject relocates obj to pos, re-filing it when it crosses a cell.
// World objects load the grid they enter; other objects refuse to leave
// for an unloaded grid and MoveObject returns false.
func (m *Map) MoveObject(obj model.Object, pos model.Position) bool {
	old, ok := obj.CurrentCell()
	if !ok {
		return false
	}

	next := m.layout.CellAt(pos.Coordinates())
	if !old.DiffGrid(next) && !old.DiffCell(next) {
		obj.SetPosition(pos)
		return true
	}

	if old.DiffGrid(next) && m.GridCell(next) == nil {
		if !obj.IsWorldObject() {
			return false
		}
		m.EnsureGridLoaded(next)
	}

	// corpses are tabled by the cell of their position
	corpse, isCorpse := obj.(*model.Corpse)
	if isCorpse {
		m.forgetCorpse(corpse)
	}
	m.RemoveFromGrid(obj)
	obj.SetPosition(pos)
	if isCorpse {
		m.trackCorpse(corpse)
	}
	return m.AddToGrid(obj, next)
}

// AddToMovingIndex tracks a world object by GUID.
func (m *Map) AddToMovingIndex(obj model.Object) {
	m.moving[obj.GUID()] = obj
}

// RemoveFromMovingIndex stops tracking a world object.
func (m *Map) RemoveFromMovingIndex(obj model.Object) {
	if cur, ok := m.moving[obj.GUID()]; ok && cur == obj {
		delete(m.moving, obj.GUID())
	}
}

// MovingObject returns the tracked world object with guid.
func (m *Map) MovingObject(guid model.ObjectGUID) (model.Object, bool) {
	obj, ok := m.moving[guid]
	return obj, ok
}

// GenerateLowGUID returns a fresh low GUID counter for kind on this map.
func (m *Map) GenerateLowGUID(kind model.HighGUID) uint64 {
	return m.guids.Generate(kind)
}

// AddObjectToRemoveList schedules obj for removal at the next safe point.
func (m *Map) AddObjectToRemoveList(obj model.Object) {
	if _, ok := m.removing[obj]; ok {
		return
	}
	m.removing[obj] = struct{}{}
	m.removeList = append(m.removeList, obj)
}

// RemoveAllObjectsInRemoveList removes and releases every scheduled object.
func (m *Map) RemoveAllObjectsInRemoveList() {
	// removals may schedule further removals
	for len(m.removeList) > 0 {
		list := m.removeList
		m.removeList = nil
		for _, obj := range list {
			delete(m.removing, obj)
			m.removeObject(obj)
		}
	}
}

func (m *Map) removeObject(obj model.Object) {
	obj.CleanupsBeforeDelete()
	m.RemoveFromGrid(obj)

	switch o := obj.(type) {
	case *model.Corpse:
		m.forgetCorpse(o)
	case *model.Player:
		delete(m.players, o.GUID())
	}
	m.forgetSpawned(obj)
	obj.Dispose()
}

// forgetSpawned drops obj from the base-world spawn table.
func (m *Map) forgetSpawned(obj model.Object) {
	t, ok := spawnTypeOf(obj)
	if !ok || obj.SpawnID() == 0 || obj.PhaseID() != 0 {
		return
	}
	key := spawnKey{t, obj.SpawnID()}
	if m.spawned[key] == obj {
		delete(m.spawned, key)
	}
}

func spawnTypeOf(obj model.Object) (spawn.SpawnObjectType, bool) {
	switch obj.(type) {
	case *model.Creature:
		return spawn.SpawnTypeCreature, true
	case *model.GameObject:
		return spawn.SpawnTypeGameObject, true
	case *model.AreaTrigger:
		return spawn.SpawnTypeAreaTrigger, true
	}
	return 0, false
}

// loadSpawns materializes spawns of type t into cell. Spawns of other
// difficulties and spawns waiting for respawn are skipped.
func (m *Map) loadSpawns(cell grid.Cell, t spawn.SpawnObjectType, ids []uint64, phaseID uint32, owner model.ObjectGUID) int {
	n := 0
	for _, id := range ids {
		d := m.store.SpawnData(t, id)
		if d == nil || !d.SpawnsIn(m.difficulty) {
			continue
		}
		if phaseID == 0 {
			if m.respawns.Get(t, id) != nil {
				continue
			}
			if _, ok := m.spawned[spawnKey{t, id}]; ok {
				continue
			}
		}
		if m.materialize(d, cell, phaseID, owner) != nil {
			n++
		}
	}
	return n
}

// materialize creates the object described by d and files it into cell.
func (m *Map) materialize(d *spawn.SpawnData, cell grid.Cell, phaseID uint32, owner model.ObjectGUID) model.Object {
	var obj model.Object
	switch d.Type {
	case spawn.SpawnTypeCreature:
		guid := model.ObjectGUID{High: model.HighGUIDCreature, MapID: m.id, Entry: d.Entry, Low: m.GenerateLowGUID(model.HighGUIDCreature)}
		c := model.NewCreature(guid, d.Entry, d.Position)
		c.SetSpawnID(d.SpawnID)
		c.SetRespawnDelay(d.RespawnDelay)
		obj = c
	case spawn.SpawnTypeGameObject:
		guid := model.ObjectGUID{High: model.HighGUIDGameObject, MapID: m.id, Entry: d.Entry, Low: m.GenerateLowGUID(model.HighGUIDGameObject)}
		g := model.NewGameObject(guid, d.Entry, d.Position)
		g.SetSpawnID(d.SpawnID)
		g.SetRespawnDelay(d.RespawnDelay)
		obj = g
	case spawn.SpawnTypeAreaTrigger:
		guid := model.ObjectGUID{High: model.HighGUIDAreaTrigger, MapID: m.id, Entry: d.Entry, Low: m.GenerateLowGUID(model.HighGUIDAreaTrigger)}
		at := model.NewSpawnedAreaTrigger(guid, d.Entry, d.Position)
		at.SetSpawnID(d.SpawnID)
		obj = at
	default:
		return nil
	}

	obj.SetPhaseOwner(phaseID, owner)
	obj.SetRemoveListener(m)
	obj.AddToWorld()
	if !m.AddToGrid(obj, cell) {
		return nil
	}
	if phaseID == 0 {
		m.spawned[spawnKey{d.Type, d.SpawnID}] = obj
	}
	return obj
}

// SpawnedObject returns the base-world object materialized from a spawn.
func (m *Map) SpawnedObject(t spawn.SpawnObjectType, spawnID uint64) (model.Object, bool) {
	obj, ok := m.spawned[spawnKey{t, spawnID}]
	return obj, ok
}

// registerStoredCorpses tables the persisted corpses of a cell the first
// time the cell loads. Later loads trust the table, so corpses removed from
// the map stay removed.
func (m *Map) registerStoredCorpses(cellID uint32, recs []spawn.CorpseRecord) int {
	if len(recs) == 0 {
		return 0
	}
	if _, ok := m.corpseCells[cellID]; ok {
		return 0
	}
	m.corpseCells[cellID] = struct{}{}

	n := 0
	for _, rec := range recs {
		if m.registerCorpse(rec) {
			n++
		}
	}
	return n
}

// registerCorpse adds a persisted corpse to the map's corpse table.
func (m *Map) registerCorpse(rec spawn.CorpseRecord) bool {
	if _, ok := m.corpsesByID[rec.GUIDLow]; ok {
		return false
	}
	guid := model.ObjectGUID{High: model.HighGUIDCorpse, MapID: m.id, Low: rec.GUIDLow}
	c := model.NewCorpse(guid, rec.Owner, rec.Type, rec.Position, rec.CreatedAt)
	m.trackCorpse(c)
	return true
}

func (m *Map) trackCorpse(c *model.Corpse) {
	c.SetRemoveListener(m)
	id := m.layout.WorldToCellCoord(c.Coordinates()).ID(m.layout)
	m.corpses[id] = append(m.corpses[id], c)
	m.corpsesByID[c.GUID().Low] = c
}

func (m *Map) forgetCorpse(c *model.Corpse) {
	if m.corpsesByID[c.GUID().Low] != c {
		return
	}
	delete(m.corpsesByID, c.GUID().Low)
	id := m.layout.WorldToCellCoord(c.Coordinates()).ID(m.layout)
	m.corpses[id] = slices.DeleteFunc(m.corpses[id], func(o *model.Corpse) bool { return o == c })
	if len(m.corpses[id]) == 0 {
		delete(m.corpses, id)
	}
}

// AddCorpse hands a corpse to the map. It is filed right away when its grid
// is loaded, otherwise when the grid loads.
func (m *Map) AddCorpse(c *model.Corpse) {
	if _, ok := m.corpsesByID[c.GUID().Low]; ok {
		return
	}
	m.trackCorpse(c)

	cell := m.layout.CellAt(c.Coordinates())
	if m.GridCell(cell) != nil {
		c.AddToWorld()
		m.AddToGrid(c, cell)
	}
}

// RemoveCorpse takes a corpse out of the map for good.
func (m *Map) RemoveCorpse(c *model.Corpse) {
	m.RemoveFromGrid(c)
	c.RemoveFromWorld()
	m.forgetCorpse(c)
}

// CorpsesInCell returns the corpses whose position lies in the cell with
// the given cell coordinate id, loaded or not.
func (m *Map) CorpsesInCell(cellID uint32) []*model.Corpse {
	return m.corpses[cellID]
}

// Corpse returns the corpse with the given low GUID.
func (m *Map) Corpse(guidLow uint64) (*model.Corpse, bool) {
	c, ok := m.corpsesByID[guidLow]
	return c, ok
}

// AddPlayer places p on the map, loading its grid and its personal phases.
func (m *Map) AddPlayer(p *model.Player) {
	cell := m.layout.CellAt(p.Coordinates())
	g := m.EnsureGridLoaded(cell)
	g.state = GridStateActive

	p.SetRemoveListener(m)
	p.SetDestroyed(false)
	p.AddToWorld()
	m.AddToGrid(p, cell)
	m.players[p.GUID()] = p

	for _, phaseID := range p.PersonalPhases() {
		m.AddPersonalPhase(phaseID, p.GUID())
	}

	slog.Debug("player added to map", "map", m.id, "player", p.Name(), "guid", p.GUID())
}

// RemovePlayer takes p off the map together with the personal phases it owns.
func (m *Map) RemovePlayer(p *model.Player) {
	if _, ok := m.players[p.GUID()]; !ok {
		return
	}
	for _, phaseID := range slices.Sorted(maps.Keys(m.phases)) {
		if m.phases[phaseID] == p.GUID() {
			m.RemovePersonalPhase(phaseID)
		}
	}

	m.RemoveFromGrid(p)
	p.RemoveFromWorld()
	delete(m.players, p.GUID())

	slog.Debug("player removed from map", "map", m.id, "player", p.Name())
}

// Player returns the player with guid.
func (m *Map) Player(guid model.ObjectGUID) (*model.Player, bool) {
	p, ok := m.players[guid]
	return p, ok
}

// AddPersonalPhase registers a personal phase owned by owner and loads it
// into every resident grid. Grids loaded later pick it up on load.
func (m *Map) AddPersonalPhase(phaseID uint32, owner model.ObjectGUID) {
	if phaseID == 0 {
		return
	}
	if _, ok := m.phases[phaseID]; ok {
		return
	}
	m.phases[phaseID] = owner

	for _, id := range slices.Sorted(maps.Keys(m.grids)) {
		m.loadPersonalPhase(m.grids[id], phaseID, owner)
	}
}

// LoadPersonalPhaseGrid loads one personal phase into a resident grid.
func (m *Map) LoadPersonalPhaseGrid(gc grid.GridCoord, phaseID uint32, owner model.ObjectGUID) error {
	g := m.Grid(gc.X, gc.Y)
	if g == nil {
		return ErrGridNotLoaded
	}
	m.loadPersonalPhase(g, phaseID, owner)
	return nil
}

func (m *Map) loadPersonalPhase(g *Grid, phaseID uint32, owner model.ObjectGUID) {
	if g.HasPhase(phaseID) {
		return
	}
	g.phases[phaseID] = struct{}{}

	loader := NewPersonalPhaseGridLoader(m, phaseID, owner)
	loader.Load(g)

	creatures, gameObjects := loader.Counts()
	if creatures+gameObjects > 0 {
		slog.Debug("personal phase loaded",
			"map", m.id,
			"phase", phaseID,
			"gridX", g.coord.X,
			"gridY", g.coord.Y,
			"creatures", creatures,
			"gameobjects", gameObjects)
	}
}

// RemovePersonalPhase unregisters a phase and removes its objects from
// every resident grid.
func (m *Map) RemovePersonalPhase(phaseID uint32) {
	if _, ok := m.phases[phaseID]; !ok {
		return
	}
	delete(m.phases, phaseID)

	for _, id := range slices.Sorted(maps.Keys(m.grids)) {
		g := m.grids[id]
		if !g.HasPhase(phaseID) {
			continue
		}
		delete(g.phases, phaseID)
		for i := range g.cells {
			c := &g.cells[i].Grid
			for _, cr := range c.Creatures {
				if cr.PhaseID() == phaseID {
					m.AddObjectToRemoveList(cr)
				}
			}
			for _, obj := range c.GameObjects {
				if obj.PhaseID() == phaseID {
					m.AddObjectToRemoveList(obj)
				}
			}
		}
	}
	m.RemoveAllObjectsInRemoveList()
}

// SaveRespawn queues a respawn. A later respawn of an already queued spawn
// is rejected.
func (m *Map) SaveRespawn(info *respawn.Info) bool {
	if !m.respawns.Add(info) {
		return false
	}
	slog.Debug("respawn saved",
		"map", m.id,
		"type", info.Type,
		"spawnID", info.SpawnID,
		"at", info.RespawnTime)
	return true
}

// DespawnForRespawn removes a spawned object and queues its respawn after
// the object's respawn delay.
func (m *Map) DespawnForRespawn(obj model.Object, now time.Time) bool {
	t, ok := spawnTypeOf(obj)
	if !ok || obj.SpawnID() == 0 || obj.PhaseID() != 0 {
		return false
	}
	cell, ok := obj.CurrentCell()
	if !ok {
		return false
	}

	var (
		entry uint32
		delay time.Duration
	)
	switch o := obj.(type) {
	case *model.Creature:
		entry, delay = o.Entry(), o.RespawnDelay()
	case *model.GameObject:
		entry, delay = o.Entry(), o.RespawnDelay()
	case *model.AreaTrigger:
		entry = o.Entry()
	}

	m.forgetSpawned(obj)
	m.SaveRespawn(&respawn.Info{
		Type:        t,
		SpawnID:     obj.SpawnID(),
		Entry:       entry,
		RespawnTime: now.Add(delay),
		GridID:      cell.ID(),
	})
	m.AddObjectToRemoveList(obj)
	return true
}

// ProcessRespawns re-materializes due respawns whose grid is loaded.
// Respawns for unloaded grids are dropped: loading the grid spawns them.
func (m *Map) ProcessRespawns(now time.Time) int {
	n := 0
	for _, info := range m.respawns.PopDue(now) {
		if m.DoRespawn(info) {
			n++
		}
	}
	return n
}

// DoRespawn materializes the spawn of info if its grid is loaded.
func (m *Map) DoRespawn(info *respawn.Info) bool {
	if _, ok := m.grids[info.GridID]; !ok {
		return false
	}
	if _, ok := m.spawned[spawnKey{info.Type, info.SpawnID}]; ok {
		return false
	}
	d := m.store.SpawnData(info.Type, info.SpawnID)
	if d == nil || !d.SpawnsIn(m.difficulty) {
		return false
	}

	cell := m.layout.CellAt(d.Position.Coordinates())
	if m.materialize(d, cell, 0, model.EmptyGUID) == nil {
		return false
	}
	slog.Debug("respawned", "map", m.id, "type", info.Type, "spawnID", info.SpawnID)
	return true
}

// Enqueue schedules fn to run on the map's goroutine at the next Update.
// Safe for concurrent use.
func (m *Map) Enqueue(fn func(*Map)) {
	m.mu.Lock()
	m.pending = append(m.pending, fn)
	m.mu.Unlock()
}

// Update advances the map: queued work, due respawns, deferred removals,
// then the grid lifecycle.
func (m *Map) Update(now time.Time) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range pending {
		fn(m)
	}

	m.ProcessRespawns(now)
	m.RemoveAllObjectsInRemoveList()
	m.updateGrids(now)
}

func (m *Map) updateGrids(now time.Time) {
	for _, id := range slices.Sorted(maps.Keys(m.grids)) {
		g := m.grids[id]
		near := m.playersNear(g)

		switch g.state {
		case GridStateActive:
			if near {
				continue
			}
			m.visitGrid(g, grid.Scoped{Visitor: Stopper{}, Scope: grid.ScopeGrid})
			g.state = GridStateIdle

		case GridStateIdle:
			if near {
				g.state = GridStateActive
				continue
			}
			g.state = GridStateRemoval
			g.unloadAt = now.Add(m.unloadDelay)

		case GridStateRemoval:
			if near {
				g.state = GridStateActive
				continue
			}
			if now.Before(g.unloadAt) {
				continue
			}
			if !m.unloadGrids || !m.UnloadGrid(g) {
				g.unloadAt = now.Add(m.unloadDelay)
			}
		}
	}
	m.RemoveAllObjectsInRemoveList()
}

// playersNear reports whether a player stands in g or in the cell ring
// around it.
func (m *Map) playersNear(g *Grid) bool {
	if len(m.players) == 0 {
		return false
	}
	area := g.cellArea(m.layout, 1)
	for _, p := range m.players {
		cell, ok := p.CurrentCell()
		if ok && area.Contains(cell.CellCoord()) {
			return true
		}
	}
	return false
}

// UnloadGrid retires every object of g and drops the grid. Grids holding
// players are kept.
func (m *Map) UnloadGrid(g *Grid) bool {
	for i := range g.cells {
		if len(g.cells[i].World.Players) > 0 {
			return false
		}
	}

	m.visitGrid(g, grid.Scoped{Visitor: Cleaner{}, Scope: grid.ScopeGrid})
	m.RemoveAllObjectsInRemoveList()

	for i := range g.cells {
		gc := &g.cells[i]
		for _, c := range gc.Grid.Creatures {
			m.forgetSpawned(c)
		}
		for _, obj := range gc.Grid.GameObjects {
			m.forgetSpawned(obj)
		}
		for _, at := range gc.Grid.AreaTriggers {
			m.forgetSpawned(at)
		}
		for _, c := range slices.Concat(gc.Grid.Corpses, gc.World.Corpses) {
			m.RemoveFromMovingIndex(c)
			c.RemoveFromWorld()
		}
	}

	m.visitGrid(g, grid.Scoped{Visitor: Unloader{}, Scope: grid.ScopeGrid})
	delete(m.grids, g.id)

	slog.Debug("grid unloaded", "map", m.id, "gridX", g.coord.X, "gridY", g.coord.Y)
	return true
}

// UnloadAll removes every player and unloads every grid.
func (m *Map) UnloadAll() {
	byLow := func(a, b model.ObjectGUID) int { return cmp.Compare(a.Low, b.Low) }
	for _, guid := range slices.SortedFunc(maps.Keys(m.players), byLow) {
		m.RemovePlayer(m.players[guid])
	}
	for _, id := range slices.Sorted(maps.Keys(m.grids)) {
		m.UnloadGrid(m.grids[id])
	}
	m.RemoveAllObjectsInRemoveList()
}
