package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldcore/internal/grid"
)

type recordingRemover struct {
	removed []Object
}

func (r *recordingRemover) AddObjectToRemoveList(obj Object) {
	r.removed = append(r.removed, obj)
}

func TestNormalizeOrientation(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"inside", 1.5, 1.5},
		{"full turn", 2 * math.Pi, 0},
		{"over a turn", 2*math.Pi + 1, 1},
		{"negative", -1, 2*math.Pi - 1},
		{"negative several turns", -3 * math.Pi, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeOrientation(tt.in), 1e-5)
		})
	}
}

func TestPosition_Distances(t *testing.T) {
	p := NewPosition(1, 2, 3, 0)

	assert.Equal(t, float32(25), p.ExactDist2dSq(4, 6))
	assert.Equal(t, float32(25+16), p.DistanceSquared(NewPosition(4, 6, 7, 0)))
	assert.True(t, p.IsWithinDist2d(4, 6, 5))
	assert.False(t, p.IsWithinDist2d(4, 6, 4.9))

	moved := p.WithCoordinates(10, 20, 30)
	assert.Equal(t, float32(1), p.X, "WithCoordinates mutated the receiver")
	assert.Equal(t, Position{X: 10, Y: 20, Z: 30}, moved)

	x, y := moved.Coordinates()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestObjectGUID(t *testing.T) {
	assert.True(t, EmptyGUID.IsEmpty())

	g := ObjectGUID{High: HighGUIDCreature, MapID: 1, Entry: 1498, Low: 7}
	assert.False(t, g.IsEmpty())
	assert.Equal(t, "Creature-1-1498-7", g.String())
	assert.Equal(t, "HighGUID(42)", HighGUID(42).String())
}

func TestCreature_CleanupsBeforeDelete(t *testing.T) {
	remover := &recordingRemover{}
	owner := ObjectGUID{High: HighGUIDCreature, Low: 1}

	c := NewCreature(owner, 1498, NewPosition(0, 0, 0, 0))
	c.AddToWorld()
	c.EngageCombat()
	assert.Equal(t, DefaultCombatReach, c.CombatReach())

	dyn := NewDynamicObject(ObjectGUID{High: HighGUIDDynamicObject, Low: 2}, owner, 133, 8, c.Position())
	trigger := NewAreaTrigger(ObjectGUID{High: HighGUIDAreaTrigger, Low: 3}, owner, 2120, c.Position())
	for _, obj := range []Object{dyn, trigger} {
		obj.SetRemoveListener(remover)
		obj.AddToWorld()
	}
	c.AddDynObject(dyn)
	c.AddAreaTrigger(trigger)

	c.CleanupsBeforeDelete()

	assert.False(t, c.IsInCombat())
	assert.False(t, c.IsInWorld())
	assert.Empty(t, c.DynObjects())
	assert.Empty(t, c.AreaTriggers())
	require.Len(t, remover.removed, 2)
	assert.Same(t, dyn, remover.removed[0])
	assert.Same(t, trigger, remover.removed[1])
	assert.True(t, dyn.IsDestroyed())
	assert.False(t, trigger.IsInWorld())

	// removal is requested once
	dyn.Remove()
	assert.Len(t, remover.removed, 2)
}

func TestWorldObject_Dispose(t *testing.T) {
	remover := &recordingRemover{}
	g := NewGameObject(ObjectGUID{High: HighGUIDGameObject, Low: 1}, 2843, NewPosition(0, 0, 0, 0))
	assert.Equal(t, GameObjectStateReady, g.State())
	assert.False(t, g.IsWorldObject())

	g.SetRemoveListener(remover)
	g.AddToWorld()
	cell := grid.DefaultLayout().CellAt(300, 300)
	g.SetCurrentCell(cell)
	got, ok := g.CurrentCell()
	require.True(t, ok)
	assert.True(t, cell.Equal(got))

	g.Dispose()
	assert.False(t, g.IsInWorld())
	_, ok = g.CurrentCell()
	assert.False(t, ok)
	assert.Empty(t, remover.removed, "dispose must not request removal")
}

func TestCorpse_ConvertToBones(t *testing.T) {
	owner := ObjectGUID{High: HighGUIDPlayer, Low: 9}
	c := NewCorpse(ObjectGUID{High: HighGUIDCorpse, Low: 1}, owner, CorpseResurrectablePvE, NewPosition(1, 2, 3, 0), time.Unix(0, 0))
	assert.True(t, c.IsWorldObject())
	assert.Equal(t, owner, c.Owner())

	c.ConvertToBones()
	assert.Equal(t, CorpseBones, c.Type())
	assert.True(t, c.Owner().IsEmpty())
	assert.False(t, c.IsWorldObject())
}

func TestPlayer_PersonalPhases(t *testing.T) {
	p := NewPlayer(ObjectGUID{High: HighGUIDPlayer, Low: 1}, "Jaina", NewPosition(0, 0, 0, 0))
	assert.True(t, p.IsWorldObject())

	p.AddPersonalPhase(5)
	p.AddPersonalPhase(5)
	p.AddPersonalPhase(0)
	p.AddPersonalPhase(8)
	assert.Equal(t, []uint32{5, 8}, p.PersonalPhases())

	p.RemovePersonalPhase(5)
	assert.Equal(t, []uint32{8}, p.PersonalPhases())
}
