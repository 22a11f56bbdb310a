// Package grid implements the spatial addressing of a map: grid and cell
// coordinates, world-to-cell conversion and the radius visit over cells.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Default map partition. A map is GridsPerMap×GridsPerMap grids, each grid is
// CellsPerGrid×CellsPerGrid cells.
const (
	DefaultCellsPerGrid = 8
	DefaultGridsPerMap  = 64
	DefaultGridSize     = 533.3333
)

// Layout is the map configuration every coordinate computation depends on.
// A Layout must not be modified after cells have been created from it.
type Layout struct {
	CellsPerGrid uint32  `yaml:"cells_per_grid"`
	GridsPerMap  uint32  `yaml:"grids_per_map"`
	GridSize     float64 `yaml:"grid_size"` // world units per grid edge

	// MaxVisitRadius caps the radius of a single visit.
	// Zero means CellSize * CenterCellID (half the map).
	MaxVisitRadius float64 `yaml:"max_visit_radius"`
}

// DefaultLayout returns the standard 64×64 grid, 8×8 cell partition.
func DefaultLayout() *Layout {
	return &Layout{
		CellsPerGrid: DefaultCellsPerGrid,
		GridsPerMap:  DefaultGridsPerMap,
		GridSize:     DefaultGridSize,
	}
}

// Validate reports configuration that would make cell math meaningless.
func (l *Layout) Validate() error {
	var errs []error
	if l.CellsPerGrid == 0 {
		errs = append(errs, errors.New("cells_per_grid must be positive"))
	}
	if l.GridsPerMap == 0 || l.GridsPerMap%2 != 0 {
		errs = append(errs, fmt.Errorf("grids_per_map must be a positive even number, got %d", l.GridsPerMap))
	}
	if !(l.GridSize > 0) || math.IsInf(l.GridSize, 0) {
		errs = append(errs, fmt.Errorf("grid_size must be positive and finite, got %v", l.GridSize))
	}
	if l.MaxVisitRadius < 0 {
		errs = append(errs, fmt.Errorf("max_visit_radius must not be negative, got %v", l.MaxVisitRadius))
	}
	return errors.Join(errs...)
}

// CellSize returns the edge length of one cell in world units.
func (l *Layout) CellSize() float64 {
	return l.GridSize / float64(l.CellsPerGrid)
}

// TotalCells returns the number of cells along one axis of the map.
func (l *Layout) TotalCells() uint32 {
	return l.GridsPerMap * l.CellsPerGrid
}

// CenterGridID is the grid index containing world coordinate 0.
func (l *Layout) CenterGridID() uint32 {
	return l.GridsPerMap / 2
}

// CenterCellID is the global cell index containing world coordinate 0.
func (l *Layout) CenterCellID() uint32 {
	return l.TotalCells() / 2
}

// MapHalfSize returns half the map edge in world units.
func (l *Layout) MapHalfSize() float64 {
	return l.GridSize * float64(l.GridsPerMap) / 2
}

// MaxRadius returns the effective visit radius cap.
func (l *Layout) MaxRadius() float64 {
	if l.MaxVisitRadius > 0 {
		return l.MaxVisitRadius
	}
	return l.CellSize() * float64(l.CenterCellID())
}

// NormalizeMapCoord clamps a world coordinate into the addressable map.
func (l *Layout) NormalizeMapCoord(c float64) float64 {
	limit := l.MapHalfSize() - 0.5
	switch {
	case math.IsNaN(c):
		return 0
	case c > limit:
		return limit
	case c < -limit:
		return -limit
	}
	return c
}

// IsValidMapCoord reports whether (x, y) lies inside the addressable map.
func (l *Layout) IsValidMapCoord(x, y float64) bool {
	limit := l.MapHalfSize() - 0.5
	return !math.IsNaN(x) && !math.IsNaN(y) &&
		math.Abs(x) <= limit && math.Abs(y) <= limit
}

// WorldToCellCoord converts a world position into a global cell coordinate.
// Out of map positions are clamped to the border cells.
func (l *Layout) WorldToCellCoord(x, y float64) CellCoord {
	size := l.CellSize()
	center := float64(l.CenterCellID())
	limit := l.TotalCells()
	return CellCoord{
		X: toIndex(l.NormalizeMapCoord(x), size, center, limit),
		Y: toIndex(l.NormalizeMapCoord(y), size, center, limit),
	}
}

// WorldToGridCoord converts a world position into a grid coordinate.
func (l *Layout) WorldToGridCoord(x, y float64) GridCoord {
	center := float64(l.CenterGridID())
	return GridCoord{
		X: toIndex(l.NormalizeMapCoord(x), l.GridSize, center, l.GridsPerMap),
		Y: toIndex(l.NormalizeMapCoord(y), l.GridSize, center, l.GridsPerMap),
	}
}

// CellCenter returns the world position of the centre of a cell.
func (l *Layout) CellCenter(c CellCoord) (x, y float64) {
	size := l.CellSize()
	center := float64(l.CenterCellID())
	x = (float64(c.X) - center + 0.5) * size
	y = (float64(c.Y) - center + 0.5) * size
	return x, y
}

// toIndex maps c onto [0, limit) using an offset of half a unit, the same
// rounding the spawn tables were generated with.
func toIndex(c, size, center float64, limit uint32) uint32 {
	offset := (c - size/2) / size
	v := int64(offset + center + 0.5)
	if v < 0 {
		return 0
	}
	if v >= int64(limit) {
		return limit - 1
	}
	return uint32(v)
}
