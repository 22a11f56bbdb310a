package model

import "time"

// CorpseType classifies a corpse.
type CorpseType uint8

const (
	// CorpseBones is a decayed corpse; it never moves and stays in its cell.
	CorpseBones CorpseType = iota
	// CorpseResurrectablePvE can be used by its owner to resurrect.
	CorpseResurrectablePvE
	// CorpseResurrectablePvP can be used by its owner to resurrect.
	CorpseResurrectablePvP
)

// Corpse is a player corpse. Corpses outlive grids: they are owned by the
// map's corpse table and only filed into cells while the grid is loaded.
type Corpse struct {
	*WorldObject

	owner      ObjectGUID
	corpseType CorpseType
	createdAt  time.Time
}

// NewCorpse creates a corpse for owner. Resurrectable corpses are world
// objects because their owner may relocate them.
func NewCorpse(guid ObjectGUID, owner ObjectGUID, corpseType CorpseType, pos Position, createdAt time.Time) *Corpse {
	c := &Corpse{
		WorldObject: NewWorldObject(guid, pos),
		owner:       owner,
		corpseType:  corpseType,
		createdAt:   createdAt,
	}
	c.SetWorldObject(corpseType != CorpseBones)
	return c
}

func (c *Corpse) Owner() ObjectGUID    { return c.owner }
func (c *Corpse) Type() CorpseType     { return c.corpseType }
func (c *Corpse) CreatedAt() time.Time { return c.createdAt }

// ConvertToBones turns a resurrectable corpse into bones.
func (c *Corpse) ConvertToBones() {
	c.corpseType = CorpseBones
	c.owner = EmptyGUID
	c.SetWorldObject(false)
}
