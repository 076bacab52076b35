package generators

import (
	"math/rand"

	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
)

// roomSize is the distance between partition walls.
const roomSize = 6

// Rooms splits the grid into roughly square rooms separated by one-cell walls
// with a random door in every wall segment between two rooms.
type Rooms struct{}

func (Rooms) ID() string    { return "rooms" }
func (Rooms) Title() string { return "Rooms and doors" }

func (Rooms) Generate(g *pathfind.Grid, rng *rand.Rand, _ registry.Params) {
	g.ClearWalls()
	w, h := g.Width(), g.Height()

	// Vertical partitions, one door per room-height segment.
	for x := roomSize; x < w-1; x += roomSize {
		for y := 0; y < h; y++ {
			//nolint:errcheck // in bounds
			g.SetWall(x, y, true)
		}
		for y0 := 0; y0 < h; y0 += roomSize {
			open(g, x, door(rng, y0, h))
		}
	}

	// Horizontal partitions, one door per room-width segment.
	for y := roomSize; y < h-1; y += roomSize {
		for x := 0; x < w; x++ {
			//nolint:errcheck // in bounds
			g.SetWall(x, y, true)
		}
		for x0 := 0; x0 < w; x0 += roomSize {
			open(g, door(rng, x0, w), y)
		}
	}
}

// door picks a door position in the segment starting at from, skipping the
// crossing partition at the segment start.
func door(rng *rand.Rand, from, limit int) int {
	lo := from
	if from > 0 {
		lo = from + 1
	}
	hi := min(from+roomSize, limit)
	if lo >= hi {
		return from
	}
	return lo + rng.Intn(hi-lo)
}
