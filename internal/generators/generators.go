// Package generators provides the built-in wall layouts. Importing it
// registers every generator with the registry package.
package generators

import (
	"math/rand"

	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
)

func init() {
	registry.Register("open", func() registry.Generator { return Open{} })
	registry.Register("scatter", func() registry.Generator { return Scatter{} })
	registry.Register("maze", func() registry.Generator { return Maze{} })
	registry.Register("rooms", func() registry.Generator { return Rooms{} })
}

// Open clears every wall.
type Open struct{}

func (Open) ID() string    { return "open" }
func (Open) Title() string { return "Open field" }

func (Open) Generate(g *pathfind.Grid, _ *rand.Rand, _ registry.Params) {
	g.ClearWalls()
}

// Scatter walls each cell independently with probability Density.
type Scatter struct{}

func (Scatter) ID() string    { return "scatter" }
func (Scatter) Title() string { return "Random scatter" }

func (Scatter) Generate(g *pathfind.Grid, rng *rand.Rand, p registry.Params) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			//nolint:errcheck // x, y are in bounds
			g.SetWall(x, y, rng.Float64() < p.Density)
		}
	}
}

// fill sets every cell to a wall.
func fill(g *pathfind.Grid) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			//nolint:errcheck // x, y are in bounds
			g.SetWall(x, y, true)
		}
	}
}

// open clears a cell, ignoring positions outside the grid.
func open(g *pathfind.Grid, x, y int) {
	if g.InBounds(x, y) {
		//nolint:errcheck // bounds checked above
		g.SetWall(x, y, false)
	}
}
