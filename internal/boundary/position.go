// Package boundary implements point-in-region tests used by encounter
// scripts to decide whether a unit is still inside its arena.
package boundary

import "github.com/udisondev/worldcore/internal/model"

// DoublePosition keeps double-precision coordinates next to the
// single-precision position. Boundary math is done on the doubles.
type DoublePosition struct {
	X, Y, Z float64
	pos     model.Position
}

// NewDoublePosition creates a position from double-precision coordinates.
func NewDoublePosition(x, y, z float64) DoublePosition {
	return DoublePosition{
		X:   x,
		Y:   y,
		Z:   z,
		pos: model.Position{X: float32(x), Y: float32(y), Z: float32(z)},
	}
}

// FromPosition widens a single-precision position.
func FromPosition(p model.Position) DoublePosition {
	return DoublePosition{
		X:   float64(p.X),
		Y:   float64(p.Y),
		Z:   float64(p.Z),
		pos: p,
	}
}

// Position returns the single-precision representation.
func (d DoublePosition) Position() model.Position { return d.pos }

// DoubleExactDist2dSq returns the squared plane distance to (x, y).
func (d DoublePosition) DoubleExactDist2dSq(x, y float64) float64 {
	dx := d.X - x
	dy := d.Y - y
	return dx*dx + dy*dy
}

