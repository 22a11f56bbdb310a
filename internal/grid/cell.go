package grid

// Cell is a cell addressed by its grid plus its local position inside the
// grid. It is a small value; copy it freely.
type Cell struct {
	layout *Layout

	gridX, gridY uint32
	cellX, cellY uint32

	// noCreate forbids loading the grid backing this cell for a query.
	noCreate bool
}

// CellKey is the comparable identity of a Cell.
type CellKey struct {
	GridX, GridY uint32
	CellX, CellY uint32
}

// CellFromCoord splits a global cell coordinate into grid and local parts.
func (l *Layout) CellFromCoord(c CellCoord) Cell {
	return Cell{
		layout: l,
		gridX:  c.X / l.CellsPerGrid,
		gridY:  c.Y / l.CellsPerGrid,
		cellX:  c.X % l.CellsPerGrid,
		cellY:  c.Y % l.CellsPerGrid,
	}
}

// CellAt returns the cell containing world position (x, y).
func (l *Layout) CellAt(x, y float64) Cell {
	return l.CellFromCoord(l.WorldToCellCoord(x, y))
}

// CellInGrid returns the cell at local position (cellX, cellY) of grid g.
func (l *Layout) CellInGrid(g GridCoord, cellX, cellY uint32) Cell {
	return Cell{
		layout: l,
		gridX:  g.X,
		gridY:  g.Y,
		cellX:  cellX,
		cellY:  cellY,
	}
}

func (c Cell) Layout() *Layout { return c.layout }
func (c Cell) GridX() uint32   { return c.gridX }
func (c Cell) GridY() uint32   { return c.gridY }
func (c Cell) CellX() uint32   { return c.cellX }
func (c Cell) CellY() uint32   { return c.cellY }

// NoCreate reports whether queries through this cell must not load its grid.
func (c Cell) NoCreate() bool { return c.noCreate }

// SetNoCreate marks the cell so that visiting it never loads its grid.
func (c *Cell) SetNoCreate() { c.noCreate = true }

// IsValid reports whether the local cell coordinates fit the grid.
func (c Cell) IsValid() bool {
	return c.cellX < c.layout.CellsPerGrid && c.cellY < c.layout.CellsPerGrid
}

// ID returns the identifier of the grid holding this cell, which is the key
// of the map's active grid table. It is not unique per cell.
func (c Cell) ID() uint32 {
	return c.gridX*c.layout.GridsPerMap + c.gridY
}

// DiffCell reports whether o has different local cell coordinates.
func (c Cell) DiffCell(o Cell) bool {
	return c.cellX != o.cellX || c.cellY != o.cellY
}

// DiffGrid reports whether o lies in a different grid.
func (c Cell) DiffGrid(o Cell) bool {
	return c.gridX != o.gridX || c.gridY != o.gridY
}

// CellCoord returns the global coordinate of the cell.
func (c Cell) CellCoord() CellCoord {
	return CellCoord{
		X: c.gridX*c.layout.CellsPerGrid + c.cellX,
		Y: c.gridY*c.layout.CellsPerGrid + c.cellY,
	}
}

// GridCoord returns the coordinate of the grid holding the cell.
func (c Cell) GridCoord() GridCoord {
	return GridCoord{X: c.gridX, Y: c.gridY}
}

// Key returns the comparable identity of the cell, ignoring noCreate.
func (c Cell) Key() CellKey {
	return CellKey{GridX: c.gridX, GridY: c.gridY, CellX: c.cellX, CellY: c.cellY}
}

// Equal compares coordinates only.
func (c Cell) Equal(o Cell) bool {
	return c.Key() == o.Key()
}
