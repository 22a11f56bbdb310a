package grid

import "math"

// circleThreshold is the axis span (in cells) above which a visit switches
// from the exhaustive rectangle to the octagon fill.
const circleThreshold = 4

// Visitor is anything a Map knows how to feed cell content to. The map picks
// the content categories by the interfaces the visitor implements.
type Visitor any

// Map is the owner of cell content.
type Map interface {
	Layout() *Layout
	// Visit hands the content lists of cell to v.
	Visit(cell Cell, v Visitor)
}

// Scope restricts a visit to one of the two containers of a cell.
type Scope uint8

const (
	// ScopeAll visits both containers.
	ScopeAll Scope = iota
	// ScopeGrid visits objects that stay addressed by their cell.
	ScopeGrid
	// ScopeWorld visits objects tracked in the map's moving index.
	ScopeWorld
)

// Scoped wraps a visitor with a container restriction.
type Scoped struct {
	Visitor Visitor
	Scope   Scope
}

// Unscope returns the wrapped visitor and its scope. Plain visitors have
// ScopeAll.
func Unscope(v Visitor) (Visitor, Scope) {
	if s, ok := v.(Scoped); ok {
		return s.Visitor, s.Scope
	}
	return v, ScopeAll
}

// Visit feeds every cell within radius of (x, y) to v. The receiver is the
// cell the query stands in and is always visited first; standing is its
// coordinate and is never visited twice. Cells produced by the query inherit
// the receiver's noCreate flag.
//
// Visit does not check c.IsValid(); callers do.
func (c Cell) Visit(standing CellCoord, v Visitor, m Map, x, y, radius float64) {
	if radius <= 0 {
		m.Visit(c, v)
		return
	}

	if limit := c.layout.MaxRadius(); radius > limit {
		radius = limit
	}

	area := c.layout.CalculateCellArea(x, y, radius)
	if area.IsSingle() {
		m.Visit(c, v)
		return
	}

	begin, end := area.Low, area.High
	if end.X-begin.X > circleThreshold && end.Y-begin.Y > circleThreshold {
		c.VisitCircle(v, m, begin, end)
		return
	}

	m.Visit(c, v)

	for cx := begin.X; cx <= end.X; cx++ {
		for cy := begin.Y; cy <= end.Y; cy++ {
			coord := CellCoord{X: cx, Y: cy}
			if coord == standing {
				continue
			}
			c.visitCoord(coord, v, m)
		}
	}
}

// VisitCircle visits an octagon inscribed in the [begin, end] rectangle: a
// full-height vertical strip in the middle, then two mirrored wings whose
// height shrinks by one row on each side per column away from the strip.
func (c Cell) VisitCircle(v Visitor, m Map, begin, end CellCoord) {
	xShift := uint32(max(0, math.Ceil(float64(end.X-begin.X)*0.3-0.5)))

	xStart := begin.X + xShift
	xEnd := end.X - xShift
	for cx := xStart; cx <= xEnd; cx++ {
		for cy := begin.Y; cy <= end.Y; cy++ {
			c.visitCoord(CellCoord{X: cx, Y: cy}, v, m)
		}
	}

	if xShift == 0 {
		return
	}

	yStart, yEnd := begin.Y, end.Y
	for step := uint32(1); step <= xShift; step++ {
		if yEnd-yStart < 2 {
			break
		}
		yStart++
		yEnd--

		for cy := yStart; cy <= yEnd; cy++ {
			c.visitCoord(CellCoord{X: xStart - step, Y: cy}, v, m)
			c.visitCoord(CellCoord{X: xEnd + step, Y: cy}, v, m)
		}
	}
}

func (c Cell) visitCoord(coord CellCoord, v Visitor, m Map) {
	cell := c.layout.CellFromCoord(coord)
	cell.noCreate = c.noCreate
	m.Visit(cell, v)
}

// Locatable is anything with a position on the map plane.
type Locatable interface {
	Coordinates() (x, y float64)
}

// Reacher is a Locatable whose interaction range extends past its position.
type Reacher interface {
	CombatReach() float64
}

// Point is a bare position usable as the centre of a visit.
type Point struct {
	X, Y float64
}

// Coordinates implements Locatable.
func (p Point) Coordinates() (x, y float64) { return p.X, p.Y }

// VisitGridObjects visits objects that stay addressed by their cell.
func VisitGridObjects(m Map, center Locatable, v Visitor, radius float64, dontLoad bool) {
	visitAround(m, center, Scoped{Visitor: v, Scope: ScopeGrid}, radius, dontLoad)
}

// VisitWorldObjects visits objects registered in the map's moving index.
func VisitWorldObjects(m Map, center Locatable, v Visitor, radius float64, dontLoad bool) {
	visitAround(m, center, Scoped{Visitor: v, Scope: ScopeWorld}, radius, dontLoad)
}

// VisitAllObjects visits both containers of every cell in range.
func VisitAllObjects(m Map, center Locatable, v Visitor, radius float64, dontLoad bool) {
	visitAround(m, center, v, radius, dontLoad)
}

func visitAround(m Map, center Locatable, v Visitor, radius float64, dontLoad bool) {
	l := m.Layout()
	x, y := center.Coordinates()
	standing := l.WorldToCellCoord(x, y)
	cell := l.CellFromCoord(standing)
	if dontLoad {
		cell.SetNoCreate()
	}
	if r, ok := center.(Reacher); ok {
		radius += r.CombatReach()
	}
	cell.Visit(standing, v, m, x, y, radius)
}
