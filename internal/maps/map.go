package maps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Map is a complete layout definition.
type Map struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Walls    []pathfind.Coord
	Start    pathfind.Coord
	Goal     pathfind.Coord
	Metadata map[string]string
	FilePath string // Empty for built-in maps
}

// Validate checks dimensions and that every position lies on the grid.
// Walls on the start or goal cell are allowed; the search decides how to
// treat them.
func (m Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("map size %dx%d must be positive", m.Width, m.Height),
		}
	}
	inBounds := func(c pathfind.Coord) bool {
		return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
	}
	for _, w := range m.Walls {
		if !inBounds(w) {
			return ValidationError{Code: "WALL_OUT_OF_BOUNDS", Message: fmt.Sprintf("wall %v outside %dx%d", w, m.Width, m.Height)}
		}
	}
	if !inBounds(m.Start) {
		return ValidationError{Code: "START_OUT_OF_BOUNDS", Message: fmt.Sprintf("start %v outside %dx%d", m.Start, m.Width, m.Height)}
	}
	if !inBounds(m.Goal) {
		return ValidationError{Code: "GOAL_OUT_OF_BOUNDS", Message: fmt.Sprintf("goal %v outside %dx%d", m.Goal, m.Width, m.Height)}
	}
	return nil
}

// ToGrid creates a fresh Grid with the map's walls set.
func (m Map) ToGrid() (*pathfind.Grid, error) {
	g, err := pathfind.NewGrid(m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.ID, err)
	}
	for _, w := range m.Walls {
		if err := g.SetWall(w.X, w.Y, true); err != nil {
			return nil, fmt.Errorf("map %s: %w", m.ID, err)
		}
	}
	return g, nil
}

// FromGrid captures a grid's walls and endpoints as a map.
func FromGrid(id, name string, g *pathfind.Grid, start, goal pathfind.Coord) Map {
	return Map{
		ID:     id,
		Name:   name,
		Width:  g.Width(),
		Height: g.Height(),
		Walls:  g.Walls(),
		Start:  start,
		Goal:   goal,
	}
}

// Save writes m to path as YAML, creating parent directories.
func Save(m Map, path string) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}
