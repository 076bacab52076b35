package pathfind

import (
	"fmt"
	"math"
)

// Handle addresses a cell by its index in the grid's flat storage.
// Handles stay valid for the lifetime of the grid, unlike pointers into a
// slice that may be reallocated.
type Handle int

// NoHandle marks the absence of a cell (e.g. the start cell's predecessor).
const NoHandle Handle = -1

// Cell is a single grid position plus its search session state.
type Cell struct {
	x, y int

	// Wall blocks the cell for neighbour expansion. Change it only between
	// searches.
	Wall bool

	// Search session state, reset by Grid.ResetSearchState.
	Visited bool    // Finalized; never reopened during the same search
	G       float64 // Best known cost from start, +Inf when unknown
	H       float64 // Estimated cost to goal, written on discovery
	Pred    Handle  // Cell the current G was reached from
}

// X returns the cell's column.
func (c *Cell) X() int { return c.x }

// Y returns the cell's row.
func (c *Cell) Y() int { return c.y }

// Coord returns the cell's position.
func (c *Cell) Coord() Coord { return Coord{X: c.x, Y: c.y} }

// F returns the search priority G + H.
func (c *Cell) F() float64 { return c.G + c.H }

// resetSearch restores the session state to its pre-search values.
func (c *Cell) resetSearch() {
	c.Visited = false
	c.G = math.Inf(1)
	c.H = 0
	c.Pred = NoHandle
}

// Grid is a fixed-size rectangle of cells.
// Cells are stored in row-major order: index = y*width + x.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a width x height grid with every cell open and its search
// state reset.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[y*width+x]
			c.x, c.y = x, y
			c.resetSearch()
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Handle returns the handle of the cell at (x, y).
func (g *Grid) Handle(x, y int) (Handle, error) {
	if !g.InBounds(x, y) {
		return NoHandle, g.outOfBounds(x, y)
	}
	return Handle(y*g.width + x), nil
}

// Cell returns the cell for a handle obtained from this grid.
func (g *Grid) Cell(h Handle) *Cell {
	return &g.cells[h]
}

// CellAt returns the cell at (x, y).
func (g *Grid) CellAt(x, y int) (*Cell, error) {
	h, err := g.Handle(x, y)
	if err != nil {
		return nil, err
	}
	return &g.cells[h], nil
}

// SetWall sets the wall flag of the cell at (x, y).
func (g *Grid) SetWall(x, y int, wall bool) error {
	c, err := g.CellAt(x, y)
	if err != nil {
		return err
	}
	c.Wall = wall
	return nil
}

// ToggleWall flips the wall flag at (x, y) and returns the new value.
func (g *Grid) ToggleWall(x, y int) (bool, error) {
	c, err := g.CellAt(x, y)
	if err != nil {
		return false, err
	}
	c.Wall = !c.Wall
	return c.Wall, nil
}

// IsWall reports whether (x, y) is a wall. Out-of-bounds positions are not.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x].Wall
}

// ClearWalls opens every cell.
func (g *Grid) ClearWalls() {
	for i := range g.cells {
		g.cells[i].Wall = false
	}
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	count := 0
	for i := range g.cells {
		if g.cells[i].Wall {
			count++
		}
	}
	return count
}

// Walls returns the positions of all wall cells in row-major order.
func (g *Grid) Walls() []Coord {
	coords := make([]Coord, 0)
	for i := range g.cells {
		if g.cells[i].Wall {
			coords = append(coords, g.cells[i].Coord())
		}
	}
	return coords
}

// ResetSearchState clears visited flags, costs and predecessors on every
// cell, leaving walls untouched. Call it between searches on the same grid.
func (g *Grid) ResetSearchState() {
	for i := range g.cells {
		g.cells[i].resetSearch()
	}
}

// Clone returns a deep copy of the grid, search state included.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
	}
}

func (g *Grid) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
}
