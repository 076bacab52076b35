// Package maps loads grid layouts (size, walls, start, goal) from YAML files
// and from the built-in set embedded in the binary.
package maps

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Characters used by the rows form of a map file.
const (
	RuneEmpty = '.'
	RuneWall  = '#'
	RuneStart = 'S'
	RuneGoal  = 'G'
)

// yamlMap represents the YAML structure of a map file.
// Either Rows or Size (+ Walls) describes the layout.
type yamlMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows,omitempty"`
	Size     *yamlSize         `yaml:"size,omitempty"`
	Walls    []yamlPoint       `yaml:"walls,omitempty"`
	Start    *yamlPoint        `yaml:"start,omitempty"`
	Goal     *yamlPoint        `yaml:"goal,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ValidationError describes why a map file was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Parse decodes and validates a YAML map.
//
// When start or goal are not given they default to the top-left and
// bottom-right corners.
func Parse(data []byte) (Map, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Metadata: ym.Metadata,
	}
	if m.ID == "" {
		return Map{}, ValidationError{Code: "MISSING_ID", Message: "map has no id"}
	}
	if m.Name == "" {
		m.Name = m.ID
	}

	var start, goal *pathfind.Coord
	switch {
	case len(ym.Rows) > 0 && ym.Size != nil:
		return Map{}, ValidationError{Code: "AMBIGUOUS_LAYOUT", Message: "use either rows or size, not both"}
	case len(ym.Rows) > 0:
		var err error
		start, goal, err = m.parseRows(ym.Rows)
		if err != nil {
			return Map{}, err
		}
	case ym.Size != nil:
		m.Width, m.Height = ym.Size.W, ym.Size.H
	default:
		return Map{}, ValidationError{Code: "MISSING_LAYOUT", Message: "map needs rows or size"}
	}

	for _, p := range ym.Walls {
		m.Walls = append(m.Walls, pathfind.C(p.X, p.Y))
	}

	if ym.Start != nil {
		if start != nil {
			return Map{}, ValidationError{Code: "DUPLICATE_START", Message: "start given both in rows and as a key"}
		}
		s := pathfind.C(ym.Start.X, ym.Start.Y)
		start = &s
	}
	if ym.Goal != nil {
		if goal != nil {
			return Map{}, ValidationError{Code: "DUPLICATE_GOAL", Message: "goal given both in rows and as a key"}
		}
		g := pathfind.C(ym.Goal.X, ym.Goal.Y)
		goal = &g
	}

	m.Start = pathfind.C(0, 0)
	if start != nil {
		m.Start = *start
	}
	m.Goal = pathfind.C(m.Width-1, m.Height-1)
	if goal != nil {
		m.Goal = *goal
	}

	if err := m.Validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}

// declaredID returns the id key of a map file without validating the rest.
func declaredID(data []byte) string {
	var head struct {
		ID string `yaml:"id"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return ""
	}
	return head.ID
}

// parseRows fills dimensions and walls from the rows form and returns the
// start and goal markers if present.
func (m *Map) parseRows(rows []string) (start, goal *pathfind.Coord, err error) {
	m.Height = len(rows)
	m.Width = len([]rune(rows[0]))

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != m.Width {
			return nil, nil, ValidationError{
				Code:    "RAGGED_ROWS",
				Message: fmt.Sprintf("row %d has %d cells, expected %d", y, len(runes), m.Width),
			}
		}
		for x, r := range runes {
			c := pathfind.C(x, y)
			switch r {
			case RuneEmpty:
			case RuneWall:
				m.Walls = append(m.Walls, c)
			case RuneStart:
				if start != nil {
					return nil, nil, ValidationError{Code: "DUPLICATE_START", Message: fmt.Sprintf("second start marker at %v", c)}
				}
				start = &c
			case RuneGoal:
				if goal != nil {
					return nil, nil, ValidationError{Code: "DUPLICATE_GOAL", Message: fmt.Sprintf("second goal marker at %v", c)}
				}
				goal = &c
			default:
				return nil, nil, ValidationError{Code: "INVALID_CELL", Message: fmt.Sprintf("unknown cell %q at %v", r, c)}
			}
		}
	}
	return start, goal, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Rows renders the layout back into the rows form.
func (m Map) Rows() []string {
	walls := make(map[pathfind.Coord]bool, len(m.Walls))
	for _, w := range m.Walls {
		walls[w] = true
	}

	rows := make([]string, m.Height)
	for y := 0; y < m.Height; y++ {
		var sb strings.Builder
		for x := 0; x < m.Width; x++ {
			c := pathfind.C(x, y)
			switch {
			case c == m.Start:
				sb.WriteRune(RuneStart)
			case c == m.Goal:
				sb.WriteRune(RuneGoal)
			case walls[c]:
				sb.WriteRune(RuneWall)
			default:
				sb.WriteRune(RuneEmpty)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Encode serializes m as YAML. The rows form is used unless a wall sits under
// the start or goal, or both share one cell; only the size form can express
// those.
func Encode(m Map) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	ym := yamlMap{
		ID:       m.ID,
		Name:     m.Name,
		Metadata: m.Metadata,
	}

	sizeForm := m.Start == m.Goal
	for _, w := range m.Walls {
		if w == m.Start || w == m.Goal {
			sizeForm = true
			break
		}
	}

	if sizeForm {
		ym.Size = &yamlSize{W: m.Width, H: m.Height}
		for _, w := range m.Walls {
			ym.Walls = append(ym.Walls, yamlPoint{X: w.X, Y: w.Y})
		}
		ym.Start = &yamlPoint{X: m.Start.X, Y: m.Start.Y}
		ym.Goal = &yamlPoint{X: m.Goal.X, Y: m.Goal.Y}
	} else {
		ym.Rows = m.Rows()
	}

	data, err := yaml.Marshal(ym)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}
