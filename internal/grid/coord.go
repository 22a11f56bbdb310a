package grid

// GridCoord identifies one grid of the map's top-level array.
type GridCoord struct {
	X, Y uint32
}

// IsValid reports whether the coordinate addresses a grid of the layout.
func (g GridCoord) IsValid(l *Layout) bool {
	return g.X < l.GridsPerMap && g.Y < l.GridsPerMap
}

// ID returns a map-unique grid identifier.
func (g GridCoord) ID(l *Layout) uint32 {
	return g.Y*l.GridsPerMap + g.X
}

// Normalized clamps the coordinate into the grid array.
func (g GridCoord) Normalized(l *Layout) GridCoord {
	return GridCoord{X: min(g.X, l.GridsPerMap-1), Y: min(g.Y, l.GridsPerMap-1)}
}

// CellCoord is a global cell address across the whole map.
type CellCoord struct {
	X, Y uint32
}

// IsValid reports whether the coordinate addresses a cell of the layout.
func (c CellCoord) IsValid(l *Layout) bool {
	limit := l.TotalCells()
	return c.X < limit && c.Y < limit
}

// ID returns a map-unique cell identifier. Spawn tables are keyed by it.
func (c CellCoord) ID(l *Layout) uint32 {
	return c.Y*l.TotalCells() + c.X
}

// Normalized clamps the coordinate into the cell array.
func (c CellCoord) Normalized(l *Layout) CellCoord {
	limit := l.TotalCells() - 1
	return CellCoord{X: min(c.X, limit), Y: min(c.Y, limit)}
}

// Shifted moves the coordinate by (dx, dy), saturating at the map border.
func (c CellCoord) Shifted(l *Layout, dx, dy int) CellCoord {
	limit := int64(l.TotalCells()) - 1
	shift := func(v uint32, d int) uint32 {
		n := int64(v) + int64(d)
		if n < 0 {
			return 0
		}
		if n > limit {
			return uint32(limit)
		}
		return uint32(n)
	}
	return CellCoord{X: shift(c.X, dx), Y: shift(c.Y, dy)}
}
