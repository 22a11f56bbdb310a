package model

// DynamicObject is a spell effect placed in the world by a caster
// (ground-targeted area effects).
type DynamicObject struct {
	*WorldObject

	caster  ObjectGUID
	spellID uint32
	radius  float32
}

// NewDynamicObject creates a dynamic object owned by caster.
func NewDynamicObject(guid ObjectGUID, caster ObjectGUID, spellID uint32, radius float32, pos Position) *DynamicObject {
	return &DynamicObject{
		WorldObject: NewWorldObject(guid, pos),
		caster:      caster,
		spellID:     spellID,
		radius:      radius,
	}
}

func (d *DynamicObject) Caster() ObjectGUID { return d.caster }
func (d *DynamicObject) SpellID() uint32    { return d.spellID }
func (d *DynamicObject) Radius() float32    { return d.radius }

// Remove destroys the object and asks its map to drop it.
func (d *DynamicObject) Remove() {
	if d.IsDestroyed() {
		return
	}
	d.requestRemoval(d)
}

// AreaTrigger is a scripted volume created by a spell or encounter, or
// placed by a spawn.
type AreaTrigger struct {
	*WorldObject

	entry   uint32
	caster  ObjectGUID
	spellID uint32
}

// NewAreaTrigger creates an area trigger owned by caster.
func NewAreaTrigger(guid ObjectGUID, caster ObjectGUID, spellID uint32, pos Position) *AreaTrigger {
	return &AreaTrigger{
		WorldObject: NewWorldObject(guid, pos),
		caster:      caster,
		spellID:     spellID,
	}
}

// NewSpawnedAreaTrigger creates the area trigger of template entry placed
// by a spawn. It has no caster.
func NewSpawnedAreaTrigger(guid ObjectGUID, entry uint32, pos Position) *AreaTrigger {
	return &AreaTrigger{
		WorldObject: NewWorldObject(guid, pos),
		entry:       entry,
	}
}

func (a *AreaTrigger) Entry() uint32      { return a.entry }
func (a *AreaTrigger) Caster() ObjectGUID { return a.caster }
func (a *AreaTrigger) SpellID() uint32    { return a.spellID }

// Remove destroys the trigger and asks its map to drop it.
func (a *AreaTrigger) Remove() {
	if a.IsDestroyed() {
		return
	}
	a.requestRemoval(a)
}
