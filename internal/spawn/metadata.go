// Package spawn describes potential world objects before they are
// materialized, and the read contract of the spawn store grids load from.
package spawn

import "fmt"

// SpawnObjectType is the kind of object a spawn materializes into.
type SpawnObjectType uint8

const (
	SpawnTypeCreature     SpawnObjectType = 0
	SpawnTypeGameObject   SpawnObjectType = 1
	SpawnTypeAreaTrigger  SpawnObjectType = 2
	SpawnTypeConversation SpawnObjectType = 3 // script-spawned, no stored data

	// Types below NumSpawnTypesWithData carry a full SpawnData record.
	NumSpawnTypesWithData SpawnObjectType = 3
	NumSpawnTypes         SpawnObjectType = 4
)

var spawnTypeNames = [NumSpawnTypes]string{
	SpawnTypeCreature:     "creature",
	SpawnTypeGameObject:   "gameobject",
	SpawnTypeAreaTrigger:  "areatrigger",
	SpawnTypeConversation: "conversation",
}

func (t SpawnObjectType) String() string {
	if TypeIsValid(t) {
		return spawnTypeNames[t]
	}
	return fmt.Sprintf("SpawnObjectType(%d)", uint8(t))
}

// SpawnTypeMask is a bit set of spawn types.
type SpawnTypeMask uint32

const (
	SpawnTypeMaskCreature     SpawnTypeMask = 1 << SpawnTypeCreature
	SpawnTypeMaskGameObject   SpawnTypeMask = 1 << SpawnTypeGameObject
	SpawnTypeMaskAreaTrigger  SpawnTypeMask = 1 << SpawnTypeAreaTrigger
	SpawnTypeMaskConversation SpawnTypeMask = 1 << SpawnTypeConversation

	SpawnTypeMaskWithData SpawnTypeMask = 1<<NumSpawnTypesWithData - 1
	SpawnTypeMaskAll      SpawnTypeMask = 1<<NumSpawnTypes - 1
)

// TypeInMask reports whether t is set in mask.
func TypeInMask(t SpawnObjectType, mask SpawnTypeMask) bool {
	return TypeIsValid(t) && (1<<t)&mask != 0
}

// TypeHasData reports whether spawns of type t carry a SpawnData record.
func TypeHasData(t SpawnObjectType) bool {
	return t < NumSpawnTypesWithData
}

// TypeIsValid reports whether t is one of the known spawn types.
func TypeIsValid(t SpawnObjectType) bool {
	return t < NumSpawnTypes
}

// MapIDUnset marks metadata not yet bound to a map.
const MapIDUnset = ^uint32(0)

// SpawnGroupFlags modify how a spawn group is handled.
type SpawnGroupFlags uint32

const (
	SpawnGroupFlagSystem SpawnGroupFlags = 1 << iota
	SpawnGroupFlagCompatibilityMode
	SpawnGroupFlagManualSpawn
	SpawnGroupFlagDynamicSpawnRate
	SpawnGroupFlagEscortQuestNPC
	SpawnGroupFlagDespawnOnConditionFailure
)

// SpawnGroupTemplate is a named set of spawns toggled together by scripts.
type SpawnGroupTemplate struct {
	ID    uint32
	Name  string
	MapID uint32
	Flags SpawnGroupFlags
}

// HasFlag reports whether every bit of f is set.
func (g *SpawnGroupTemplate) HasFlag(f SpawnGroupFlags) bool {
	return g.Flags&f == f
}

// SpawnMetadata is the typed identity of a spawn.
type SpawnMetadata struct {
	Type       SpawnObjectType
	SpawnID    uint64
	MapID      uint32
	DBData     bool // false for spawns created at runtime by scripts
	SpawnGroup *SpawnGroupTemplate

	// data is the record this metadata heads, if any.
	data *SpawnData
}

// NewSpawnMetadata returns metadata with an unset map, backed by stored data.
func NewSpawnMetadata(t SpawnObjectType, spawnID uint64) SpawnMetadata {
	return SpawnMetadata{
		Type:    t,
		SpawnID: spawnID,
		MapID:   MapIDUnset,
		DBData:  true,
	}
}

// ToSpawnData returns the full spawn record. Types without data yield nil.
func (m *SpawnMetadata) ToSpawnData() *SpawnData {
	if !TypeHasData(m.Type) {
		return nil
	}
	if m.data != nil {
		return m.data
	}
	d := &SpawnData{SpawnMetadata: *m}
	d.data = d
	return d
}

// HasMap reports whether the metadata is bound to a map.
func (m *SpawnMetadata) HasMap() bool {
	return m.MapID != MapIDUnset
}
