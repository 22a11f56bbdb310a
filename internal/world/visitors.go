package world

import (
	"github.com/udisondev/worldcore/internal/grid"
	"github.com/udisondev/worldcore/internal/model"
)

// Content categories a visitor can receive. Map.Visit hands a cell's lists
// to every category interface the visitor implements, once per container.

// CreatureVisitor receives the creatures of a cell.
type CreatureVisitor interface {
	VisitCreatures(cell grid.Cell, creatures []*model.Creature)
}

// GameObjectVisitor receives the game objects of a cell.
type GameObjectVisitor interface {
	VisitGameObjects(cell grid.Cell, gameObjects []*model.GameObject)
}

// CorpseVisitor receives the corpses of a cell.
type CorpseVisitor interface {
	VisitCorpses(cell grid.Cell, corpses []*model.Corpse)
}

// PlayerVisitor receives the players of a cell.
type PlayerVisitor interface {
	VisitPlayers(cell grid.Cell, players []*model.Player)
}

// ObjectVisitor receives every non-player object of a cell, one at a time.
type ObjectVisitor interface {
	VisitObject(cell grid.Cell, obj model.Object)
}

func dispatch(cell grid.Cell, c *Container, v grid.Visitor) {
	if cv, ok := v.(CreatureVisitor); ok {
		cv.VisitCreatures(cell, c.Creatures)
	}
	if gv, ok := v.(GameObjectVisitor); ok {
		gv.VisitGameObjects(cell, c.GameObjects)
	}
	if cv, ok := v.(CorpseVisitor); ok {
		cv.VisitCorpses(cell, c.Corpses)
	}
	if pv, ok := v.(PlayerVisitor); ok {
		pv.VisitPlayers(cell, c.Players)
	}
	if ov, ok := v.(ObjectVisitor); ok {
		visitEach(cell, c.Creatures, ov)
		visitEach(cell, c.GameObjects, ov)
		visitEach(cell, c.DynamicObjects, ov)
		visitEach(cell, c.AreaTriggers, ov)
		visitEach(cell, c.Corpses, ov)
	}
}

func visitEach[T model.Object](cell grid.Cell, list []T, v ObjectVisitor) {
	for _, obj := range list {
		v.VisitObject(cell, obj)
	}
}

// Cleaner retires objects without releasing them: each one is marked
// destroyed and detached from the world.
type Cleaner struct{}

func (Cleaner) VisitObject(_ grid.Cell, obj model.Object) {
	obj.SetDestroyed(true)
	obj.CleanupsBeforeDelete()
}

// Stopper strips creatures of what they left in the world before their
// grid goes idle.
type Stopper struct{}

func (Stopper) VisitCreatures(_ grid.Cell, creatures []*model.Creature) {
	for _, c := range creatures {
		c.RemoveAllDynObjects()
		c.RemoveAllAreaTriggers()
		if c.IsInCombat() {
			c.CombatStop()
		}
	}
}

// Unloader cleans up and releases objects of an unloading grid.
// Corpses outlive grids and are skipped.
type Unloader struct{}

func (Unloader) VisitObject(_ grid.Cell, obj model.Object) {
	if _, ok := obj.(*model.Corpse); ok {
		return
	}
	obj.CleanupsBeforeDelete()
	obj.Dispose()
}

// WorldLoader files the map's corpses into the cells of a grid being
// loaded. Resurrectable corpses go to the world container and the moving
// index, bones stay addressed by their cell.
type WorldLoader struct {
	m     *Map
	count int
}

// NewWorldLoader creates a corpse loader for m.
func NewWorldLoader(m *Map) *WorldLoader {
	return &WorldLoader{m: m}
}

func (l *WorldLoader) VisitCorpses(cell grid.Cell, _ []*model.Corpse) {
	for _, c := range l.m.CorpsesInCell(cell.CellCoord().ID(l.m.layout)) {
		if c.IsInWorld() {
			continue
		}
		c.SetDestroyed(false)
		c.AddToWorld()
		if l.m.AddToGrid(c, cell) {
			l.count++
		}
	}
}

// Count returns the number of corpses loaded so far.
func (l *WorldLoader) Count() int { return l.count }

// ObjectListSearcher collects the in-world objects accepted by Check.
type ObjectListSearcher struct {
	Check   func(obj model.Object) bool
	Objects []model.Object
}

// NewObjectListSearcher creates a searcher accepting objects passing check.
func NewObjectListSearcher(check func(obj model.Object) bool) *ObjectListSearcher {
	return &ObjectListSearcher{Check: check}
}

func (s *ObjectListSearcher) VisitObject(_ grid.Cell, obj model.Object) {
	s.collect(obj)
}

func (s *ObjectListSearcher) VisitPlayers(_ grid.Cell, players []*model.Player) {
	for _, p := range players {
		s.collect(p)
	}
}

func (s *ObjectListSearcher) collect(obj model.Object) {
	if !obj.IsInWorld() || obj.IsDestroyed() {
		return
	}
	if s.Check == nil || s.Check(obj) {
		s.Objects = append(s.Objects, obj)
	}
}

// InRange accepts objects within radius of center on the plane.
func InRange(center grid.Locatable, radius float64) func(model.Object) bool {
	cx, cy := center.Coordinates()
	r2 := radius * radius
	return func(obj model.Object) bool {
		x, y := obj.Coordinates()
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r2
	}
}

// VisibleTo accepts base-world objects and objects of phases owned by viewer.
func VisibleTo(viewer model.ObjectGUID) func(model.Object) bool {
	return func(obj model.Object) bool {
		return obj.PhaseID() == 0 || obj.PrivateOwner() == viewer
	}
}

// All accepts objects accepted by every check.
func All(checks ...func(model.Object) bool) func(model.Object) bool {
	return func(obj model.Object) bool {
		for _, check := range checks {
			if !check(obj) {
				return false
			}
		}
		return true
	}
}
