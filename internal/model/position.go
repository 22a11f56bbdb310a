package model

import "math"

// Position is a single-precision world position with orientation.
// Value type, passed by value.
type Position struct {
	X, Y, Z float32
	O       float32 // orientation in radians
}

// NewPosition creates a Position with the given coordinates.
func NewPosition(x, y, z, o float32) Position {
	return Position{X: x, Y: y, Z: z, O: NormalizeOrientation(o)}
}

// Coordinates returns the plane coordinates widened to float64.
func (p Position) Coordinates() (x, y float64) {
	return float64(p.X), float64(p.Y)
}

// WithCoordinates returns a copy moved to (x, y, z).
func (p Position) WithCoordinates(x, y, z float32) Position {
	p.X, p.Y, p.Z = x, y, z
	return p
}

// ExactDist2dSq returns the squared distance on the plane.
func (p Position) ExactDist2dSq(x, y float32) float32 {
	dx := p.X - x
	dy := p.Y - y
	return dx*dx + dy*dy
}

// DistanceSquared returns the squared 3D distance to other (no sqrt on the hot path).
func (p Position) DistanceSquared(other Position) float32 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// IsWithinDist2d reports whether (x, y) lies within dist on the plane.
func (p Position) IsWithinDist2d(x, y, dist float32) bool {
	return p.ExactDist2dSq(x, y) <= dist*dist
}

// NormalizeOrientation maps o into [0, 2π).
func NormalizeOrientation(o float32) float32 {
	const twoPi = 2 * math.Pi
	if o < 0 {
		mod := -o
		mod = float32(math.Mod(float64(mod), twoPi))
		if mod == 0 {
			return 0
		}
		return twoPi - mod
	}
	return float32(math.Mod(float64(o), twoPi))
}
