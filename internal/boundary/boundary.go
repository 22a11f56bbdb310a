package boundary

import (
	"math"

	"github.com/udisondev/worldcore/internal/model"
)

// AreaBoundary tests whether a position lies inside a region.
type AreaBoundary interface {
	// IsWithinBoundary reports membership. A nil position is never inside.
	IsWithinBoundary(p *model.Position) bool
}

// area is the raw membership predicate of a concrete boundary.
type area interface {
	isWithinBoundaryArea(p *model.Position) bool
}

// Base carries the inversion flag shared by every boundary.
type Base struct {
	inverted bool
}

// IsInverted reports whether membership is negated.
func (b Base) IsInverted() bool { return b.inverted }

// isWithinBoundaryArea is the default predicate: nothing is inside.
func (Base) isWithinBoundaryArea(*model.Position) bool { return false }

func within(a area, inverted bool, p *model.Position) bool {
	if p == nil {
		return false
	}
	return a.isWithinBoundaryArea(p) != inverted
}

// IsWithinBoundary implements AreaBoundary.
func (b Base) IsWithinBoundary(p *model.Position) bool {
	return within(b, b.inverted, p)
}

// TriangleBoundary is the triangle ABC.
type TriangleBoundary struct {
	Base
	a, b, c    DoublePosition
	ab, bc, ca DoublePosition // edge vectors
}

// NewTriangleBoundary creates a triangle from its three vertices.
func NewTriangleBoundary(a, b, c DoublePosition, inverted bool) *TriangleBoundary {
	return &TriangleBoundary{
		Base: Base{inverted: inverted},
		a:    a,
		b:    b,
		c:    c,
		ab:   NewDoublePosition(b.X-a.X, b.Y-a.Y, 0),
		bc:   NewDoublePosition(c.X-b.X, c.Y-b.Y, 0),
		ca:   NewDoublePosition(a.X-c.X, a.Y-c.Y, 0),
	}
}

func (t *TriangleBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(t, t.inverted, p)
}

func (t *TriangleBoundary) isWithinBoundaryArea(p *model.Position) bool {
	px, py := float64(p.X), float64(p.Y)
	sign1 := cross(px-t.b.X, py-t.b.Y, t.ab) < 0
	sign2 := cross(px-t.c.X, py-t.c.Y, t.bc) < 0
	sign3 := cross(px-t.a.X, py-t.a.Y, t.ca) < 0
	return sign1 == sign2 && sign2 == sign3
}

func cross(dx, dy float64, e DoublePosition) float64 {
	return dx*e.Y - dy*e.X
}

// RectangleBoundary is the axis-aligned rectangle [minX, maxX] x [minY, maxY].
type RectangleBoundary struct {
	Base
	minX, maxX, minY, maxY float64
}

// NewRectangleBoundary creates a rectangle from its bounds in any order.
func NewRectangleBoundary(southX, northX, eastY, westY float64, inverted bool) *RectangleBoundary {
	return &RectangleBoundary{
		Base: Base{inverted: inverted},
		minX: math.Min(southX, northX),
		maxX: math.Max(southX, northX),
		minY: math.Min(eastY, westY),
		maxY: math.Max(eastY, westY),
	}
}

func (r *RectangleBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(r, r.inverted, p)
}

func (r *RectangleBoundary) isWithinBoundaryArea(p *model.Position) bool {
	x, y := float64(p.X), float64(p.Y)
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

// CircleBoundary is the disc around a center.
type CircleBoundary struct {
	Base
	center   DoublePosition
	radiusSq float64
}

// NewCircleBoundary creates a disc of the given radius.
func NewCircleBoundary(center DoublePosition, radius float64, inverted bool) *CircleBoundary {
	return &CircleBoundary{
		Base:     Base{inverted: inverted},
		center:   center,
		radiusSq: radius * radius,
	}
}

// NewCircleBoundaryThrough creates the disc around center passing through
// pathPoint.
func NewCircleBoundaryThrough(center, pathPoint DoublePosition, inverted bool) *CircleBoundary {
	return &CircleBoundary{
		Base:     Base{inverted: inverted},
		center:   center,
		radiusSq: center.DoubleExactDist2dSq(pathPoint.X, pathPoint.Y),
	}
}

func (c *CircleBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(c, c.inverted, p)
}

func (c *CircleBoundary) isWithinBoundaryArea(p *model.Position) bool {
	return c.center.DoubleExactDist2dSq(float64(p.X), float64(p.Y)) <= c.radiusSq
}

// EllipseBoundary is an axis-aligned ellipse.
type EllipseBoundary struct {
	Base
	center    DoublePosition
	radiusYSq float64
	scaleXSq  float64
}

// NewEllipseBoundary creates an ellipse with semi-axes radiusX and radiusY.
func NewEllipseBoundary(center DoublePosition, radiusX, radiusY float64, inverted bool) *EllipseBoundary {
	return &EllipseBoundary{
		Base:      Base{inverted: inverted},
		center:    center,
		radiusYSq: radiusY * radiusY,
		scaleXSq:  (radiusY * radiusY) / (radiusX * radiusX),
	}
}

func (e *EllipseBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(e, e.inverted, p)
}

func (e *EllipseBoundary) isWithinBoundaryArea(p *model.Position) bool {
	dx := float64(p.X) - e.center.X
	dy := float64(p.Y) - e.center.Y
	return dx*dx*e.scaleXSq+dy*dy <= e.radiusYSq
}

// ParallelogramBoundary is the parallelogram spanned by A, B and D.
// C is derived as B + D - A.
type ParallelogramBoundary struct {
	Base
	a, b, d, c DoublePosition
	ab, da     DoublePosition
}

// NewParallelogramBoundary creates a parallelogram from three corners.
func NewParallelogramBoundary(a, b, d DoublePosition, inverted bool) *ParallelogramBoundary {
	c := NewDoublePosition(d.X+(b.X-a.X), d.Y+(b.Y-a.Y), 0)
	return &ParallelogramBoundary{
		Base: Base{inverted: inverted},
		a:    a,
		b:    b,
		d:    d,
		c:    c,
		ab:   NewDoublePosition(b.X-a.X, b.Y-a.Y, 0),
		da:   NewDoublePosition(a.X-d.X, a.Y-d.Y, 0),
	}
}

func (b *ParallelogramBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(b, b.inverted, p)
}

func (b *ParallelogramBoundary) isWithinBoundaryArea(p *model.Position) bool {
	px, py := float64(p.X), float64(p.Y)
	// CD runs opposite to AB and BC opposite to DA
	sign1 := cross(px-b.b.X, py-b.b.Y, b.ab) < 0
	sign2 := cross(px-b.a.X, py-b.a.Y, b.da) < 0
	sign3 := cross(px-b.d.X, py-b.d.Y, b.ab) > 0
	sign4 := cross(px-b.c.X, py-b.c.Y, b.da) > 0
	return sign1 == sign2 && sign2 == sign3 && sign3 == sign4
}

// ZRangeBoundary bounds the height only.
type ZRangeBoundary struct {
	Base
	minZ, maxZ float32
}

// NewZRangeBoundary creates a height band [minZ, maxZ].
func NewZRangeBoundary(minZ, maxZ float32, inverted bool) *ZRangeBoundary {
	return &ZRangeBoundary{Base: Base{inverted: inverted}, minZ: minZ, maxZ: maxZ}
}

func (z *ZRangeBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(z, z.inverted, p)
}

func (z *ZRangeBoundary) isWithinBoundaryArea(p *model.Position) bool {
	return p.Z >= z.minZ && p.Z <= z.maxZ
}

// UnionBoundary contains every point inside either of two boundaries.
type UnionBoundary struct {
	Base
	first, second AreaBoundary
}

// NewUnionBoundary creates the union of two boundaries.
func NewUnionBoundary(first, second AreaBoundary, inverted bool) *UnionBoundary {
	return &UnionBoundary{Base: Base{inverted: inverted}, first: first, second: second}
}

func (u *UnionBoundary) IsWithinBoundary(p *model.Position) bool {
	return within(u, u.inverted, p)
}

func (u *UnionBoundary) isWithinBoundaryArea(p *model.Position) bool {
	return u.first.IsWithinBoundary(p) || u.second.IsWithinBoundary(p)
}

// CreatureBoundary is the set of boundaries a creature must stay within.
// An empty set places no restriction.
type CreatureBoundary []AreaBoundary

// IsWithinBoundary reports whether p is inside every boundary of the set.
func (cb CreatureBoundary) IsWithinBoundary(p *model.Position) bool {
	if p == nil {
		return false
	}
	for _, b := range cb {
		if !b.IsWithinBoundary(p) {
			return false
		}
	}
	return true
}
