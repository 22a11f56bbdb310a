package spawn

import (
	"slices"
	"sync"

	"github.com/udisondev/worldcore/internal/grid"
)

// CellSpawns lists what a cell holds in the spawn store.
type CellSpawns struct {
	Creatures    []uint64 // spawn ids
	GameObjects  []uint64 // spawn ids
	AreaTriggers []uint64 // spawn ids
	Corpses      []CorpseRecord
}

// IsEmpty reports whether the cell holds nothing.
func (c CellSpawns) IsEmpty() bool {
	return len(c.Creatures) == 0 && len(c.GameObjects) == 0 &&
		len(c.AreaTriggers) == 0 && len(c.Corpses) == 0
}

// Store is the read contract grids load from. Implementations must be safe
// for concurrent reads: every map loads from the same store.
type Store interface {
	// LookupCellSpawns returns the base-world spawns and corpses of a cell.
	LookupCellSpawns(mapID uint32, cellID uint32) CellSpawns
	// LookupPhaseCellSpawns returns the personal phase spawns of a cell.
	LookupPhaseCellSpawns(mapID uint32, difficulty uint8, phaseID uint32, cellID uint32) CellSpawns
	// SpawnData returns the record of a spawn, nil if unknown.
	SpawnData(t SpawnObjectType, spawnID uint64) *SpawnData
}

type cellKey struct {
	mapID  uint32
	cellID uint32
}

type phaseCellKey struct {
	mapID   uint32
	phaseID uint32
	cellID  uint32
}

type spawnKey struct {
	t  SpawnObjectType
	id uint64
}

// Index is an in-memory Store keyed by cell.
type Index struct {
	layout *grid.Layout

	mu     sync.RWMutex
	spawns map[spawnKey]*SpawnData
	cells  map[cellKey]*CellSpawns
	phases map[phaseCellKey]*CellSpawns
}

// NewIndex creates an empty index. Cell ids are computed with layout.
func NewIndex(layout *grid.Layout) *Index {
	return &Index{
		layout: layout,
		spawns: make(map[spawnKey]*SpawnData),
		cells:  make(map[cellKey]*CellSpawns),
		phases: make(map[phaseCellKey]*CellSpawns),
	}
}

// CellID returns the store key of the cell holding pos.
func (ix *Index) CellID(x, y float64) uint32 {
	return ix.layout.WorldToCellCoord(x, y).ID(ix.layout)
}

// AddSpawn files a spawn under the cell holding its position. Spawns of
// types without data cannot be stored and are ignored.
func (ix *Index) AddSpawn(d *SpawnData) bool {
	if !TypeHasData(d.Type) {
		return false
	}

	px, py := d.Position.Coordinates()
	cellID := ix.CellID(px, py)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	key := spawnKey{d.Type, d.SpawnID}
	if old, ok := ix.spawns[key]; ok {
		ix.unfileLocked(old)
	}
	ix.spawns[key] = d

	var cell *CellSpawns
	if d.IsPersonal() {
		cell = ix.phaseCellLocked(phaseCellKey{d.MapID, d.PhaseID, cellID})
	} else {
		cell = ix.cellLocked(cellKey{d.MapID, cellID})
	}
	switch d.Type {
	case SpawnTypeCreature:
		cell.Creatures = append(cell.Creatures, d.SpawnID)
	case SpawnTypeGameObject:
		cell.GameObjects = append(cell.GameObjects, d.SpawnID)
	case SpawnTypeAreaTrigger:
		cell.AreaTriggers = append(cell.AreaTriggers, d.SpawnID)
	}
	return true
}

// RemoveSpawn drops a spawn from the index.
func (ix *Index) RemoveSpawn(t SpawnObjectType, spawnID uint64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	key := spawnKey{t, spawnID}
	if d, ok := ix.spawns[key]; ok {
		ix.unfileLocked(d)
		delete(ix.spawns, key)
	}
}

// AddCorpse files a corpse under the cell holding its position.
func (ix *Index) AddCorpse(c CorpseRecord) {
	px, py := c.Position.Coordinates()
	cellID := ix.CellID(px, py)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	cell := ix.cellLocked(cellKey{c.MapID, cellID})
	cell.Corpses = append(cell.Corpses, c)
}

// RemoveCorpse drops a corpse from the index.
func (ix *Index) RemoveCorpse(mapID uint32, guidLow uint64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for key, cell := range ix.cells {
		if key.mapID != mapID {
			continue
		}
		cell.Corpses = slices.DeleteFunc(cell.Corpses, func(c CorpseRecord) bool {
			return c.GUIDLow == guidLow
		})
	}
}

// LookupCellSpawns implements Store.
func (ix *Index) LookupCellSpawns(mapID uint32, cellID uint32) CellSpawns {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	cell, ok := ix.cells[cellKey{mapID, cellID}]
	if !ok {
		return CellSpawns{}
	}
	return cell.clone()
}

// LookupPhaseCellSpawns implements Store. Spawns restricted to other
// difficulties are filtered out.
func (ix *Index) LookupPhaseCellSpawns(mapID uint32, difficulty uint8, phaseID uint32, cellID uint32) CellSpawns {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	cell, ok := ix.phases[phaseCellKey{mapID, phaseID, cellID}]
	if !ok {
		return CellSpawns{}
	}

	keep := func(t SpawnObjectType) func(uint64) bool {
		return func(id uint64) bool {
			d := ix.spawns[spawnKey{t, id}]
			return d == nil || !d.SpawnsIn(difficulty)
		}
	}
	out := cell.clone()
	out.Creatures = slices.DeleteFunc(out.Creatures, keep(SpawnTypeCreature))
	out.GameObjects = slices.DeleteFunc(out.GameObjects, keep(SpawnTypeGameObject))
	out.AreaTriggers = slices.DeleteFunc(out.AreaTriggers, keep(SpawnTypeAreaTrigger))
	return out
}

// SpawnData implements Store.
func (ix *Index) SpawnData(t SpawnObjectType, spawnID uint64) *SpawnData {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.spawns[spawnKey{t, spawnID}]
}

// Count returns the number of indexed spawns.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.spawns)
}

func (ix *Index) cellLocked(key cellKey) *CellSpawns {
	cell, ok := ix.cells[key]
	if !ok {
		cell = &CellSpawns{}
		ix.cells[key] = cell
	}
	return cell
}

func (ix *Index) phaseCellLocked(key phaseCellKey) *CellSpawns {
	cell, ok := ix.phases[key]
	if !ok {
		cell = &CellSpawns{}
		ix.phases[key] = cell
	}
	return cell
}

func (ix *Index) unfileLocked(d *SpawnData) {
	px, py := d.Position.Coordinates()
	cellID := ix.CellID(px, py)

	var cell *CellSpawns
	if d.IsPersonal() {
		cell = ix.phases[phaseCellKey{d.MapID, d.PhaseID, cellID}]
	} else {
		cell = ix.cells[cellKey{d.MapID, cellID}]
	}
	if cell == nil {
		return
	}

	drop := func(id uint64) bool { return id == d.SpawnID }
	switch d.Type {
	case SpawnTypeCreature:
		cell.Creatures = slices.DeleteFunc(cell.Creatures, drop)
	case SpawnTypeGameObject:
		cell.GameObjects = slices.DeleteFunc(cell.GameObjects, drop)
	case SpawnTypeAreaTrigger:
		cell.AreaTriggers = slices.DeleteFunc(cell.AreaTriggers, drop)
	}
}

func (c *CellSpawns) clone() CellSpawns {
	return CellSpawns{
		Creatures:    slices.Clone(c.Creatures),
		GameObjects:  slices.Clone(c.GameObjects),
		AreaTriggers: slices.Clone(c.AreaTriggers),
		Corpses:      slices.Clone(c.Corpses),
	}
}
