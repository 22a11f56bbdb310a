package grid

// CellArea is an inclusive rectangle in cell coordinates.
type CellArea struct {
	Low  CellCoord
	High CellCoord
}

// IsSingle reports whether the area collapses to one cell.
func (a CellArea) IsSingle() bool {
	return a.Low == a.High
}

// Contains reports whether c lies inside the area.
func (a CellArea) Contains(c CellCoord) bool {
	return c.X >= a.Low.X && c.X <= a.High.X && c.Y >= a.Low.Y && c.Y <= a.High.Y
}

// Width returns the number of cell columns in the area.
func (a CellArea) Width() uint32 { return a.High.X - a.Low.X + 1 }

// Height returns the number of cell rows in the area.
func (a CellArea) Height() uint32 { return a.High.Y - a.Low.Y + 1 }

// CalculateCellArea returns the cells covering a circle of radius around
// (x, y). A non-positive radius yields the single cell holding the point.
func (l *Layout) CalculateCellArea(x, y, radius float64) CellArea {
	if radius <= 0 {
		center := l.WorldToCellCoord(x, y).Normalized(l)
		return CellArea{Low: center, High: center}
	}
	return CellArea{
		Low:  l.WorldToCellCoord(x-radius, y-radius).Normalized(l),
		High: l.WorldToCellCoord(x+radius, y+radius).Normalized(l),
	}
}
