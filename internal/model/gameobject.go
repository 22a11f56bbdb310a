package model

import "time"

// GameObjectState is the activation state of a game object.
type GameObjectState uint8

const (
	GameObjectStateActive GameObjectState = iota
	GameObjectStateReady
	GameObjectStateDestroyed
)

// GameObject is a spawned interactive object (doors, chests, nodes).
type GameObject struct {
	*WorldObject

	entry        uint32
	state        GameObjectState
	respawnDelay time.Duration
}

// NewGameObject creates a game object of template entry at pos.
func NewGameObject(guid ObjectGUID, entry uint32, pos Position) *GameObject {
	return &GameObject{
		WorldObject: NewWorldObject(guid, pos),
		entry:       entry,
		state:       GameObjectStateReady,
	}
}

func (g *GameObject) Entry() uint32                    { return g.entry }
func (g *GameObject) State() GameObjectState           { return g.state }
func (g *GameObject) SetState(s GameObjectState)       { g.state = s }
func (g *GameObject) RespawnDelay() time.Duration      { return g.respawnDelay }
func (g *GameObject) SetRespawnDelay(d time.Duration) { g.respawnDelay = d }
