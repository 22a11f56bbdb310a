package world

import (
	"sync/atomic"

	"github.com/udisondev/worldcore/internal/model"
)

// lowGUIDStart keeps generated counters clear of low values that persisted
// objects (corpses, players) carry from the database.
const lowGUIDStart = 1 << 32

// LowGUIDGenerator hands out low GUID counters per object kind.
// Counters are unique per map and kind. Safe for concurrent use.
type LowGUIDGenerator struct {
	next [model.HighGUIDCorpse + 1]atomic.Uint64
}

// NewLowGUIDGenerator creates a generator with every counter at its start.
func NewLowGUIDGenerator() *LowGUIDGenerator {
	g := &LowGUIDGenerator{}
	for i := range g.next {
		g.next[i].Store(lowGUIDStart)
	}
	return g
}

// Generate returns the next counter for kind.
func (g *LowGUIDGenerator) Generate(kind model.HighGUID) uint64 {
	if int(kind) >= len(g.next) {
		kind = model.HighGUIDNone
	}
	return g.next[kind].Add(1)
}
