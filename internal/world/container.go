package world

import (
	"slices"

	"github.com/udisondev/worldcore/internal/model"
)

// Container holds the typed content lists of one cell.
type Container struct {
	Creatures      []*model.Creature
	GameObjects    []*model.GameObject
	DynamicObjects []*model.DynamicObject
	AreaTriggers   []*model.AreaTrigger
	Corpses        []*model.Corpse
	Players        []*model.Player
}

func (c *Container) add(obj model.Object) bool {
	switch o := obj.(type) {
	case *model.Creature:
		c.Creatures = append(c.Creatures, o)
	case *model.GameObject:
		c.GameObjects = append(c.GameObjects, o)
	case *model.DynamicObject:
		c.DynamicObjects = append(c.DynamicObjects, o)
	case *model.AreaTrigger:
		c.AreaTriggers = append(c.AreaTriggers, o)
	case *model.Corpse:
		c.Corpses = append(c.Corpses, o)
	case *model.Player:
		c.Players = append(c.Players, o)
	default:
		return false
	}
	return true
}

func (c *Container) remove(obj model.Object) bool {
	switch o := obj.(type) {
	case *model.Creature:
		return removeFrom(&c.Creatures, o)
	case *model.GameObject:
		return removeFrom(&c.GameObjects, o)
	case *model.DynamicObject:
		return removeFrom(&c.DynamicObjects, o)
	case *model.AreaTrigger:
		return removeFrom(&c.AreaTriggers, o)
	case *model.Corpse:
		return removeFrom(&c.Corpses, o)
	case *model.Player:
		return removeFrom(&c.Players, o)
	}
	return false
}

func removeFrom[T comparable](list *[]T, obj T) bool {
	i := slices.Index(*list, obj)
	if i < 0 {
		return false
	}
	*list = slices.Delete(*list, i, i+1)
	return true
}

// Len returns the number of objects held.
func (c *Container) Len() int {
	return len(c.Creatures) + len(c.GameObjects) + len(c.DynamicObjects) +
		len(c.AreaTriggers) + len(c.Corpses) + len(c.Players)
}

// GridCell is the storage of one cell: objects addressed by the cell and
// world objects currently inside it.
type GridCell struct {
	Grid  Container
	World Container
}

// Len returns the number of objects in both containers.
func (gc *GridCell) Len() int {
	return gc.Grid.Len() + gc.World.Len()
}
