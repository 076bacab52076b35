package pathfind

// directions lists the orthogonal steps in expansion order: west, east,
// north, south. The order is fixed so searches are reproducible.
var directions = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Neighbors returns the up-to-four in-bounds orthogonal neighbours of h.
// Walls and visited cells are not filtered.
func Neighbors(g *Grid, h Handle) []Handle {
	return appendNeighbors(make([]Handle, 0, 4), g, h)
}

// appendNeighbors appends the neighbours of h to buf, letting the search
// loop reuse one buffer across iterations.
func appendNeighbors(buf []Handle, g *Grid, h Handle) []Handle {
	c := g.Cell(h)
	for _, d := range directions {
		nx, ny := c.x+d[0], c.y+d[1]
		if g.InBounds(nx, ny) {
			buf = append(buf, Handle(ny*g.width+nx))
		}
	}
	return buf
}
