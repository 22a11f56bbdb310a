package model

import "slices"

// Player is a connected character. Players keep grids active and own
// personal phases.
type Player struct {
	*WorldObject

	name           string
	personalPhases []uint32
}

// NewPlayer creates a player at pos.
func NewPlayer(guid ObjectGUID, name string, pos Position) *Player {
	p := &Player{
		WorldObject: NewWorldObject(guid, pos),
		name:        name,
	}
	p.SetWorldObject(true)
	return p
}

func (p *Player) Name() string { return p.name }

// PersonalPhases returns the personal phases the player currently sees.
func (p *Player) PersonalPhases() []uint32 { return p.personalPhases }

// AddPersonalPhase makes a personal phase visible to the player.
func (p *Player) AddPersonalPhase(phaseID uint32) {
	if phaseID == 0 || slices.Contains(p.personalPhases, phaseID) {
		return
	}
	p.personalPhases = append(p.personalPhases, phaseID)
}

// RemovePersonalPhase hides a personal phase from the player.
func (p *Player) RemovePersonalPhase(phaseID uint32) {
	p.personalPhases = slices.DeleteFunc(p.personalPhases, func(id uint32) bool { return id == phaseID })
}
