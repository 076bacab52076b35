package pathfind

import "fmt"

// Path is an ordered sequence of cells from start to goal inclusive.
// An empty Path means the goal is unreachable.
type Path []Coord

// Len returns the number of steps (cells minus one), or 0 for an empty path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Contains reports whether c is on the path.
func (p Path) Contains(c Coord) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Set returns the path cells as a lookup set.
func (p Path) Set() map[Coord]bool {
	set := make(map[Coord]bool, len(p))
	for _, c := range p {
		set[c] = true
	}
	return set
}

// Result contains the outcome of a search.
type Result struct {
	Path       Path
	Found      bool
	Cost       float64 // G of the goal, 0 when not found
	Expanded   int     // Cells finalized
	Discovered int     // Cells inserted into the open set, start included
}

// Pathfinder runs A* searches over a Grid.
// The zero value is usable and equals New() with no options.
type Pathfinder struct {
	opts Options
}

// New creates a pathfinder with the given options.
func New(options ...Option) *Pathfinder {
	p := &Pathfinder{}
	for _, option := range options {
		option(&p.opts)
	}
	return p
}

// Options returns the pathfinder's effective options.
func (p *Pathfinder) Options() Options {
	return p.opts
}

// Run searches for the shortest path from start to goal and returns it.
// An unreachable goal yields an empty path and a nil error.
func (p *Pathfinder) Run(g *Grid, start, goal Coord) (Path, error) {
	res, err := p.Search(g, start, goal)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search is Run plus search statistics.
//
// The grid's search state must be fresh (see Grid.ResetSearchState) unless the
// pathfinder was created WithAutoReset.
func (p *Pathfinder) Search(g *Grid, start, goal Coord) (Result, error) {
	startH, err := g.Handle(start.X, start.Y)
	if err != nil {
		return Result{}, fmt.Errorf("start: %w", err)
	}
	goalH, err := g.Handle(goal.X, goal.Y)
	if err != nil {
		return Result{}, fmt.Errorf("goal: %w", err)
	}

	if p.opts.Endpoints == EndpointReject {
		if g.Cell(startH).Wall {
			return Result{}, fmt.Errorf("%w: start %v", ErrEndpointWall, start)
		}
		if g.Cell(goalH).Wall {
			return Result{}, fmt.Errorf("%w: goal %v", ErrEndpointWall, goal)
		}
	}

	if p.opts.AutoReset {
		g.ResetSearchState()
	}

	goalCell := g.Cell(goalH)
	startCell := g.Cell(startH)
	startCell.G = 0
	startCell.Pred = NoHandle
	startCell.H = Estimate(startCell, goalCell)

	open := newOpenSet(g.Len())
	open.insert(startH, startCell.F())

	var res Result
	res.Discovered = 1
	neighbors := make([]Handle, 0, 4)

	for open.Len() > 0 {
		current := open.popMin()
		cur := g.Cell(current)

		if current == goalH {
			res.Found = true
			res.Cost = cur.G
			res.Path = reconstructPath(g, goalH)
			return res, nil
		}

		cur.Visited = true
		res.Expanded++

		neighbors = appendNeighbors(neighbors[:0], g, current)
		for _, nh := range neighbors {
			nb := g.Cell(nh)
			if nb.Wall || nb.Visited {
				continue
			}

			tentativeG := cur.G + 1
			if tentativeG >= nb.G {
				continue
			}
			nb.Pred = current
			nb.G = tentativeG
			nb.H = Estimate(nb, goalCell)

			if open.contains(nh) {
				open.update(nh, nb.F())
			} else {
				open.insert(nh, nb.F())
				res.Discovered++
			}
		}
	}

	return res, nil
}

// reconstructPath follows predecessor handles back from goal and returns the
// cells in start-to-goal order.
func reconstructPath(g *Grid, goal Handle) Path {
	var path Path
	for h := goal; h != NoHandle; h = g.Cell(h).Pred {
		path = append(path, g.Cell(h).Coord())
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
