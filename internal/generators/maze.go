package generators

import (
	"math/rand"

	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
)

// Maze carves a perfect maze with Wilson's algorithm (loop-erased random
// walks). Rooms sit on even coordinates and the cells between two rooms are
// the passages, so every even/even cell is reachable from every other one.
type Maze struct{}

func (Maze) ID() string    { return "maze" }
func (Maze) Title() string { return "Maze (Wilson)" }

type mazeStep struct{ dx, dy int }

var mazeSteps = [4]mazeStep{{0, -2}, {0, 2}, {2, 0}, {-2, 0}}

func (Maze) Generate(g *pathfind.Grid, rng *rand.Rand, _ registry.Params) {
	fill(g)

	// Rooms are the cells with even coordinates.
	cols := (g.Width() + 1) / 2
	rows := (g.Height() + 1) / 2
	total := cols * rows

	inMaze := make([]bool, total)
	room := func(i int) (int, int) { return (i % cols) * 2, (i / cols) * 2 }
	index := func(x, y int) int { return (y/2)*cols + x/2 }

	first := rng.Intn(total)
	inMaze[first] = true
	fx, fy := room(first)
	open(g, fx, fy)
	remaining := total - 1

	// next[i] is the direction the current walk last left room i by.
	// Overwriting it on revisits erases loops.
	next := make([]mazeStep, total)

	for remaining > 0 {
		startIdx := rng.Intn(total)
		for inMaze[startIdx] {
			startIdx = rng.Intn(total)
		}

		// Random walk until the maze is hit.
		cur := startIdx
		for !inMaze[cur] {
			x, y := room(cur)
			var step mazeStep
			for {
				step = mazeSteps[rng.Intn(len(mazeSteps))]
				if g.InBounds(x+step.dx, y+step.dy) {
					break
				}
			}
			next[cur] = step
			cur = index(x+step.dx, y+step.dy)
		}

		// Retrace the loop-erased walk and carve it.
		cur = startIdx
		for !inMaze[cur] {
			x, y := room(cur)
			step := next[cur]
			open(g, x, y)
			open(g, x+step.dx/2, y+step.dy/2)
			inMaze[cur] = true
			remaining--
			cur = index(x+step.dx, y+step.dy)
		}
	}
}
