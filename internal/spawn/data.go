package spawn

import (
	"slices"
	"time"

	"github.com/udisondev/worldcore/internal/model"
)

// SpawnData is a persisted spawn point.
type SpawnData struct {
	SpawnMetadata

	Entry        uint32 // creature or game object template
	Position     model.Position
	PhaseID      uint32  // personal phase, 0 for the base world
	Difficulties []uint8 // empty means every difficulty
	RespawnDelay time.Duration
}

// NewSpawnData creates a stored spawn of type t on mapID.
func NewSpawnData(t SpawnObjectType, spawnID uint64, mapID uint32, entry uint32, pos model.Position) *SpawnData {
	d := &SpawnData{
		SpawnMetadata: NewSpawnMetadata(t, spawnID),
		Entry:         entry,
		Position:      pos,
	}
	d.MapID = mapID
	d.data = d
	return d
}

// SpawnsIn reports whether the spawn exists in the given map difficulty.
func (d *SpawnData) SpawnsIn(difficulty uint8) bool {
	return len(d.Difficulties) == 0 || slices.Contains(d.Difficulties, difficulty)
}

// IsPersonal reports whether the spawn belongs to a personal phase.
func (d *SpawnData) IsPersonal() bool {
	return d.PhaseID != 0
}

// CorpseRecord is a persisted player corpse.
type CorpseRecord struct {
	GUIDLow   uint64
	Owner     model.ObjectGUID
	Type      model.CorpseType
	MapID     uint32
	Position  model.Position
	CreatedAt time.Time
}
