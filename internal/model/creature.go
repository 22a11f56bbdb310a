package model

import "time"

// DefaultCombatReach is the melee reach of a creature without template data.
const DefaultCombatReach = 1.5

// Creature is a spawned NPC.
type Creature struct {
	*WorldObject

	entry        uint32
	combatReach  float32
	respawnDelay time.Duration

	inCombat     bool
	dynObjects   []*DynamicObject
	areaTriggers []*AreaTrigger
}

// NewCreature creates a creature of template entry at pos.
func NewCreature(guid ObjectGUID, entry uint32, pos Position) *Creature {
	return &Creature{
		WorldObject: NewWorldObject(guid, pos),
		entry:       entry,
		combatReach: DefaultCombatReach,
	}
}

// Entry returns the creature template id.
func (c *Creature) Entry() uint32 { return c.entry }

// CombatReach implements grid.Reacher.
func (c *Creature) CombatReach() float64 { return float64(c.combatReach) }

// SetCombatReach overrides the template reach.
func (c *Creature) SetCombatReach(reach float32) { c.combatReach = reach }

// RespawnDelay returns the delay between death and respawn.
func (c *Creature) RespawnDelay() time.Duration { return c.respawnDelay }

// SetRespawnDelay sets the delay between death and respawn.
func (c *Creature) SetRespawnDelay(d time.Duration) { c.respawnDelay = d }

// IsInCombat reports whether the creature is engaged.
func (c *Creature) IsInCombat() bool { return c.inCombat }

// EngageCombat puts the creature into combat.
func (c *Creature) EngageCombat() { c.inCombat = true }

// CombatStop ends combat unconditionally.
func (c *Creature) CombatStop() { c.inCombat = false }

// AddDynObject records a dynamic object cast by this creature.
func (c *Creature) AddDynObject(d *DynamicObject) {
	c.dynObjects = append(c.dynObjects, d)
}

// DynObjects returns the dynamic objects currently owned by the creature.
func (c *Creature) DynObjects() []*DynamicObject { return c.dynObjects }

// RemoveAllDynObjects removes every owned dynamic object from the map.
func (c *Creature) RemoveAllDynObjects() {
	for _, d := range c.dynObjects {
		d.Remove()
	}
	c.dynObjects = nil
}

// AddAreaTrigger records an area trigger created by this creature.
func (c *Creature) AddAreaTrigger(at *AreaTrigger) {
	c.areaTriggers = append(c.areaTriggers, at)
}

// AreaTriggers returns the area triggers currently owned by the creature.
func (c *Creature) AreaTriggers() []*AreaTrigger { return c.areaTriggers }

// RemoveAllAreaTriggers removes every owned area trigger from the map.
func (c *Creature) RemoveAllAreaTriggers() {
	for _, at := range c.areaTriggers {
		at.Remove()
	}
	c.areaTriggers = nil
}

// CleanupsBeforeDelete drops everything the creature left in the world.
func (c *Creature) CleanupsBeforeDelete() {
	c.RemoveAllDynObjects()
	c.RemoveAllAreaTriggers()
	c.CombatStop()
	c.WorldObject.CleanupsBeforeDelete()
}

// Dispose releases the creature.
func (c *Creature) Dispose() {
	c.dynObjects = nil
	c.areaTriggers = nil
	c.WorldObject.Dispose()
}
