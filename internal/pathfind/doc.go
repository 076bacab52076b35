// Package pathfind implements shortest-path search on a 2-D grid of cells with
// walls, using an A* best-first search guided by the Manhattan distance.
//
// The package has no external dependencies so it can be driven by the CLI,
// the terminal editor and tests alike. A search mutates per-cell session
// state (visited flag, costs, predecessor) on the Grid it runs against; a Grid
// must be reset with ResetSearchState before it is searched again, and must
// never be searched by two goroutines at once.
package pathfind
