package model

import "fmt"

// HighGUID is the object kind encoded in an ObjectGUID.
type HighGUID uint8

const (
	HighGUIDNone HighGUID = iota
	HighGUIDPlayer
	HighGUIDCreature
	HighGUIDGameObject
	HighGUIDDynamicObject
	HighGUIDAreaTrigger
	HighGUIDCorpse
)

var highGUIDNames = [...]string{
	HighGUIDNone:          "None",
	HighGUIDPlayer:        "Player",
	HighGUIDCreature:      "Creature",
	HighGUIDGameObject:    "GameObject",
	HighGUIDDynamicObject: "DynamicObject",
	HighGUIDAreaTrigger:   "AreaTrigger",
	HighGUIDCorpse:        "Corpse",
}

func (h HighGUID) String() string {
	if int(h) < len(highGUIDNames) {
		return highGUIDNames[h]
	}
	return fmt.Sprintf("HighGUID(%d)", uint8(h))
}

// ObjectGUID identifies a materialized object. Low counters are unique per
// (map, kind).
type ObjectGUID struct {
	High  HighGUID
	MapID uint32
	Entry uint32
	Low   uint64
}

// EmptyGUID is the zero GUID.
var EmptyGUID ObjectGUID

// IsEmpty reports whether g is the zero GUID.
func (g ObjectGUID) IsEmpty() bool {
	return g == EmptyGUID
}

func (g ObjectGUID) String() string {
	return fmt.Sprintf("%s-%d-%d-%d", g.High, g.MapID, g.Entry, g.Low)
}
