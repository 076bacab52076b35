package pathfind

// Estimate returns the Manhattan distance between two cells. It never
// overestimates the number of unit orthogonal steps between them, which the
// search relies on to return shortest paths.
func Estimate(a, b *Cell) float64 {
	dx := a.x - b.x
	if dx < 0 {
		dx = -dx
	}
	dy := a.y - b.y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}
