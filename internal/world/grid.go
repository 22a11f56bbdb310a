package world

import (
	"time"

	"github.com/udisondev/worldcore/internal/grid"
)

// GridState is the lifecycle state of a loaded grid.
type GridState uint8

const (
	// GridStateActive grids have players nearby and are fully simulated.
	GridStateActive GridState = iota
	// GridStateIdle grids were stopped and wait for their unload timer.
	GridStateIdle
	// GridStateRemoval grids unload once their timer expires.
	GridStateRemoval
)

func (s GridState) String() string {
	switch s {
	case GridStateActive:
		return "active"
	case GridStateIdle:
		return "idle"
	case GridStateRemoval:
		return "removal"
	}
	return "unknown"
}

// Grid is one loaded tile of a map.
type Grid struct {
	coord grid.GridCoord
	id    uint32 // Cell.ID of every cell in the grid
	size  uint32 // cells per grid edge
	cells []GridCell

	state    GridState
	unloadAt time.Time

	// personal phases already loaded into this grid
	phases map[uint32]struct{}
}

func newGrid(l *grid.Layout, coord grid.GridCoord) *Grid {
	return &Grid{
		coord:  coord,
		id:     l.CellInGrid(coord, 0, 0).ID(),
		size:   l.CellsPerGrid,
		cells:  make([]GridCell, l.CellsPerGrid*l.CellsPerGrid),
		state:  GridStateActive,
		phases: make(map[uint32]struct{}),
	}
}

// Coord returns the grid coordinate.
func (g *Grid) Coord() grid.GridCoord { return g.coord }

// ID returns the key of the grid in its map.
func (g *Grid) ID() uint32 { return g.id }

// State returns the lifecycle state.
func (g *Grid) State() GridState { return g.state }

// UnloadAt returns when a grid in removal state unloads.
func (g *Grid) UnloadAt() time.Time { return g.unloadAt }

// Cell returns the storage of the local cell (cellX, cellY).
func (g *Grid) Cell(cellX, cellY uint32) *GridCell {
	return &g.cells[cellY*g.size+cellX]
}

// HasPhase reports whether a personal phase is loaded into the grid.
func (g *Grid) HasPhase(phaseID uint32) bool {
	_, ok := g.phases[phaseID]
	return ok
}

// ObjectCount returns the number of objects in every cell.
func (g *Grid) ObjectCount() int {
	n := 0
	for i := range g.cells {
		n += g.cells[i].Len()
	}
	return n
}

// cellArea returns the cells of the grid widened by margin cells on each side.
func (g *Grid) cellArea(l *grid.Layout, margin int) grid.CellArea {
	low := l.CellInGrid(g.coord, 0, 0).CellCoord()
	high := l.CellInGrid(g.coord, g.size-1, g.size-1).CellCoord()
	return grid.CellArea{
		Low:  low.Shifted(l, -margin, -margin),
		High: high.Shifted(l, margin, margin),
	}
}
