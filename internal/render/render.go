// Package render turns a grid, its endpoints and a search result into
// characters on a core.Screen or plain ASCII text.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Category is the display class of a single grid cell.
type Category int

const (
	CategoryEmpty Category = iota
	CategoryStart
	CategoryGoal
	CategoryWall
	CategoryPath
	CategoryExplored
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "empty"
	case CategoryStart:
		return "start"
	case CategoryGoal:
		return "goal"
	case CategoryWall:
		return "wall"
	case CategoryPath:
		return "path"
	case CategoryExplored:
		return "explored"
	default:
		return "unknown"
	}
}

// Scene is everything the renderer needs to draw one frame.
type Scene struct {
	Grid         *pathfind.Grid
	Start        pathfind.Coord
	Goal         pathfind.Coord
	Path         pathfind.Path
	ShowExplored bool // Draw finalized cells of the last search
}

// Classifier answers Classify queries for a scene with an O(1) path lookup.
type Classifier struct {
	scene  Scene
	onPath map[pathfind.Coord]bool
}

// NewClassifier prepares a classifier for the scene.
func NewClassifier(scene Scene) *Classifier {
	return &Classifier{
		scene:  scene,
		onPath: scene.Path.Set(),
	}
}

// Classify returns the category of (x, y). Precedence: start, goal, wall,
// path, explored, empty.
func (c *Classifier) Classify(x, y int) Category {
	pos := pathfind.C(x, y)
	switch {
	case pos == c.scene.Start:
		return CategoryStart
	case pos == c.scene.Goal:
		return CategoryGoal
	case c.scene.Grid.IsWall(x, y):
		return CategoryWall
	case c.onPath[pos]:
		return CategoryPath
	case c.scene.ShowExplored && c.visited(x, y):
		return CategoryExplored
	}
	return CategoryEmpty
}

func (c *Classifier) visited(x, y int) bool {
	cell, err := c.scene.Grid.CellAt(x, y)
	if err != nil {
		return false
	}
	return cell.Visited
}

// Glyph is how one category looks on screen.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Theme maps categories to glyphs. CellWidth repeats each glyph horizontally
// so cells look closer to square in a terminal.
type Theme struct {
	Glyphs    map[Category]Glyph
	CellWidth int
}

// DefaultTheme returns the ASCII theme used by the CLI and tests.
func DefaultTheme() Theme {
	return Theme{
		Glyphs: map[Category]Glyph{
			CategoryEmpty:    {'.', core.ColorGray},
			CategoryStart:    {'S', core.ColorBrightGreen},
			CategoryGoal:     {'G', core.ColorBrightRed},
			CategoryWall:     {'#', core.ColorWhite},
			CategoryPath:     {'*', core.ColorBrightYellow},
			CategoryExplored: {',', core.ColorBlue},
		},
		CellWidth: 1,
	}
}

// Glyph returns the glyph for a category, falling back to the empty glyph.
func (t Theme) Glyph(c Category) Glyph {
	if g, ok := t.Glyphs[c]; ok {
		return g
	}
	if g, ok := t.Glyphs[CategoryEmpty]; ok {
		return g
	}
	return Glyph{Rune: '.'}
}

func (t Theme) cellWidth() int {
	if t.CellWidth < 1 {
		return 1
	}
	return t.CellWidth
}

// Size returns the screen footprint of a grid drawn with this theme.
func (t Theme) Size(g *pathfind.Grid) (w, h int) {
	return g.Width() * t.cellWidth(), g.Height()
}

// Draw renders the scene onto dst with the grid's top-left at (ox, oy).
func Draw(dst *core.Screen, scene Scene, theme Theme, ox, oy int) {
	cls := NewClassifier(scene)
	cw := theme.cellWidth()

	for y := 0; y < scene.Grid.Height(); y++ {
		for x := 0; x < scene.Grid.Width(); x++ {
			glyph := theme.Glyph(cls.Classify(x, y))
			for i := 0; i < cw; i++ {
				dst.SetColored(ox+x*cw+i, oy+y, glyph.Rune, glyph.Color)
			}
		}
	}
}

// RenderASCII returns the scene as plain text, one grid row per line.
func RenderASCII(scene Scene, theme Theme) string {
	w, h := theme.Size(scene.Grid)
	screen := core.NewScreen(w, h)
	Draw(screen, scene, theme, 0, 0)
	return screen.String()
}

// Summary returns a one-line description of a search result.
func Summary(res pathfind.Result) string {
	var sb strings.Builder
	if res.Found {
		sb.WriteString(fmt.Sprintf("path found: %d steps", res.Path.Len()))
	} else {
		sb.WriteString("no path")
	}
	sb.WriteString(fmt.Sprintf(" | expanded %d | discovered %d", res.Expanded, res.Discovered))
	return sb.String()
}
