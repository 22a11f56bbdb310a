package world

import (
	"github.com/udisondev/worldcore/internal/model"
	"github.com/udisondev/worldcore/internal/spawn"
)

// GridLoader materializes the base-world spawns of a grid and registers the
// persisted corpses of its cells with the map.
type GridLoader struct {
	m *Map

	creatures    int
	gameObjects  int
	areaTriggers int
	corpses      int
}

// NewGridLoader creates a base-world loader for m.
func NewGridLoader(m *Map) *GridLoader {
	return &GridLoader{m: m}
}

// Load visits every cell of g, local X then Y.
func (l *GridLoader) Load(g *Grid) {
	layout := l.m.layout
	for x := range g.size {
		for y := range g.size {
			cell := layout.CellInGrid(g.coord, x, y)
			cellID := cell.CellCoord().ID(layout)
			spawns := l.m.store.LookupCellSpawns(l.m.id, cellID)
			if spawns.IsEmpty() {
				continue
			}
			l.creatures += l.m.loadSpawns(cell, spawn.SpawnTypeCreature, spawns.Creatures, 0, model.EmptyGUID)
			l.gameObjects += l.m.loadSpawns(cell, spawn.SpawnTypeGameObject, spawns.GameObjects, 0, model.EmptyGUID)
			l.areaTriggers += l.m.loadSpawns(cell, spawn.SpawnTypeAreaTrigger, spawns.AreaTriggers, 0, model.EmptyGUID)
			l.corpses += l.m.registerStoredCorpses(cellID, spawns.Corpses)
		}
	}
}

// Counts returns what the loader materialized.
func (l *GridLoader) Counts() (creatures, gameObjects, areaTriggers, corpses int) {
	return l.creatures, l.gameObjects, l.areaTriggers, l.corpses
}

// PersonalPhaseGridLoader materializes the spawns of one personal phase
// into a loaded grid. Loaded objects belong to the phase and its owner.
type PersonalPhaseGridLoader struct {
	m       *Map
	phaseID uint32
	owner   model.ObjectGUID

	creatures   int
	gameObjects int
}

// NewPersonalPhaseGridLoader creates a loader for the phase owned by owner.
func NewPersonalPhaseGridLoader(m *Map, phaseID uint32, owner model.ObjectGUID) *PersonalPhaseGridLoader {
	return &PersonalPhaseGridLoader{m: m, phaseID: phaseID, owner: owner}
}

// Load visits every cell of g, local X then Y.
func (l *PersonalPhaseGridLoader) Load(g *Grid) {
	layout := l.m.layout
	for x := range g.size {
		for y := range g.size {
			cell := layout.CellInGrid(g.coord, x, y)
			spawns := l.m.store.LookupPhaseCellSpawns(l.m.id, l.m.difficulty, l.phaseID, cell.CellCoord().ID(layout))
			l.creatures += l.m.loadSpawns(cell, spawn.SpawnTypeCreature, spawns.Creatures, l.phaseID, l.owner)
			l.gameObjects += l.m.loadSpawns(cell, spawn.SpawnTypeGameObject, spawns.GameObjects, l.phaseID, l.owner)
			l.m.loadSpawns(cell, spawn.SpawnTypeAreaTrigger, spawns.AreaTriggers, l.phaseID, l.owner)
		}
	}
}

// Counts returns what the loader materialized.
func (l *PersonalPhaseGridLoader) Counts() (creatures, gameObjects int) {
	return l.creatures, l.gameObjects
}
