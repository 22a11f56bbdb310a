package model

import "github.com/udisondev/worldcore/internal/grid"

// Object is any object a map can store in its cells.
type Object interface {
	GUID() ObjectGUID
	Position() Position
	SetPosition(pos Position)
	Coordinates() (x, y float64)
	SpawnID() uint64

	IsInWorld() bool
	AddToWorld()
	RemoveFromWorld()
	IsDestroyed() bool
	SetDestroyed(destroyed bool)

	// IsWorldObject reports whether the object is tracked in the map's
	// moving index instead of staying addressed by its cell.
	IsWorldObject() bool

	CurrentCell() (grid.Cell, bool)
	SetCurrentCell(cell grid.Cell)

	PhaseID() uint32
	PrivateOwner() ObjectGUID
	SetPhaseOwner(phaseID uint32, owner ObjectGUID)

	SetRemoveListener(l RemoveListener)

	// CleanupsBeforeDelete detaches the object from everything it references
	// in the world. The object stays allocated.
	CleanupsBeforeDelete()
	// Dispose releases the object after CleanupsBeforeDelete.
	Dispose()
}

// RemoveListener receives objects that asked to leave the map. The map
// removes them from their cells once it is safe to mutate cell lists.
type RemoveListener interface {
	AddObjectToRemoveList(obj Object)
}

// WorldObject is the state shared by every object placed on a map.
// Not safe for concurrent use: a map and its objects are driven by one
// goroutine at a time.
type WorldObject struct {
	guid     ObjectGUID
	position Position
	spawnID  uint64

	inWorld     bool
	destroyed   bool
	worldObject bool

	cell    grid.Cell
	hasCell bool

	phaseID      uint32
	privateOwner ObjectGUID

	remover RemoveListener
}

// NewWorldObject creates the base state of an object.
func NewWorldObject(guid ObjectGUID, pos Position) *WorldObject {
	return &WorldObject{
		guid:     guid,
		position: pos,
	}
}

// GUID returns the object identity (immutable after creation).
func (w *WorldObject) GUID() ObjectGUID { return w.guid }

// Position returns a copy of the object position.
func (w *WorldObject) Position() Position { return w.position }

// SetPosition moves the object. Re-indexing into another cell is the map's job.
func (w *WorldObject) SetPosition(pos Position) { w.position = pos }

// Coordinates implements grid.Locatable.
func (w *WorldObject) Coordinates() (x, y float64) { return w.position.Coordinates() }

// SpawnID returns the spawn the object was materialized from, 0 if none.
func (w *WorldObject) SpawnID() uint64 { return w.spawnID }

// SetSpawnID records the originating spawn.
func (w *WorldObject) SetSpawnID(id uint64) { w.spawnID = id }

func (w *WorldObject) IsInWorld() bool { return w.inWorld }
func (w *WorldObject) AddToWorld()     { w.inWorld = true }

// RemoveFromWorld marks the object as no longer part of the simulation.
func (w *WorldObject) RemoveFromWorld() { w.inWorld = false }

func (w *WorldObject) IsDestroyed() bool           { return w.destroyed }
func (w *WorldObject) SetDestroyed(destroyed bool) { w.destroyed = destroyed }

func (w *WorldObject) IsWorldObject() bool         { return w.worldObject }
func (w *WorldObject) SetWorldObject(enabled bool) { w.worldObject = enabled }

// CurrentCell returns the cell the object is filed in, if any.
func (w *WorldObject) CurrentCell() (grid.Cell, bool) { return w.cell, w.hasCell }

// SetCurrentCell records the cell the object is filed in.
func (w *WorldObject) SetCurrentCell(cell grid.Cell) {
	w.cell = cell
	w.hasCell = true
}

// PhaseID returns the personal phase the object belongs to, 0 for the base world.
func (w *WorldObject) PhaseID() uint32 { return w.phaseID }

// PrivateOwner returns the player a phased object is visible to.
func (w *WorldObject) PrivateOwner() ObjectGUID { return w.privateOwner }

// SetPhaseOwner attributes the object to a personal phase and its owner.
func (w *WorldObject) SetPhaseOwner(phaseID uint32, owner ObjectGUID) {
	w.phaseID = phaseID
	w.privateOwner = owner
}

// SetRemoveListener attaches the map that owns the object.
func (w *WorldObject) SetRemoveListener(l RemoveListener) { w.remover = l }

// CleanupsBeforeDelete takes the object out of the world.
func (w *WorldObject) CleanupsBeforeDelete() {
	w.inWorld = false
}

// Dispose drops every reference the object holds.
func (w *WorldObject) Dispose() {
	w.inWorld = false
	w.hasCell = false
	w.remover = nil
}

// requestRemoval asks the owning map to drop self from its cell.
func (w *WorldObject) requestRemoval(self Object) {
	w.destroyed = true
	w.inWorld = false
	if w.remover != nil {
		w.remover.AddObjectToRemoveList(self)
	}
}
