package maps_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// getTestdataPath returns path to testdata.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestParseRows(t *testing.T) {
	m, err := maps.Parse([]byte(`
id: tiny
name: Tiny
rows:
  - "S.#"
  - ".#G"
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if m.Width != 3 || m.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", m.Width, m.Height)
	}
	if m.Start != pathfind.C(0, 0) || m.Goal != pathfind.C(2, 1) {
		t.Errorf("start/goal = %v/%v, expected (0,0)/(2,1)", m.Start, m.Goal)
	}
	if len(m.Walls) != 2 || m.Walls[0] != pathfind.C(2, 0) || m.Walls[1] != pathfind.C(1, 1) {
		t.Errorf("Walls = %v, expected [(2,0) (1,1)]", m.Walls)
	}

	rows := m.Rows()
	if strings.Join(rows, "|") != "S.#|.#G" {
		t.Errorf("Rows() = %v", rows)
	}
}

func TestParseSizeDefaults(t *testing.T) {
	m, err := maps.Parse([]byte("id: plain\nsize: {w: 6, h: 4}\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if m.Name != "plain" {
		t.Errorf("Name should default to the ID, got %q", m.Name)
	}
	if m.Start != pathfind.C(0, 0) || m.Goal != pathfind.C(5, 3) {
		t.Errorf("start/goal defaults = %v/%v, expected corners", m.Start, m.Goal)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing id", "size: {w: 2, h: 2}\n", "MISSING_ID"},
		{"missing layout", "id: x\n", "MISSING_LAYOUT"},
		{"both layouts", "id: x\nsize: {w: 2, h: 2}\nrows: [\"..\"]\n", "AMBIGUOUS_LAYOUT"},
		{"ragged rows", "id: x\nrows: [\"...\", \"..\"]\n", "RAGGED_ROWS"},
		{"unknown cell", "id: x\nrows: [\".x.\"]\n", "INVALID_CELL"},
		{"two starts", "id: x\nrows: [\"S.S\"]\n", "DUPLICATE_START"},
		{"two goals", "id: x\nrows: [\"GG\"]\n", "DUPLICATE_GOAL"},
		{"start twice", "id: x\nrows: [\"S.\"]\nstart: {x: 1, y: 0}\n", "DUPLICATE_START"},
		{"zero size", "id: x\nsize: {w: 0, h: 3}\n", "INVALID_SIZE"},
		{"wall outside", "id: x\nsize: {w: 2, h: 2}\nwalls: [{x: 2, y: 0}]\n", "WALL_OUT_OF_BOUNDS"},
		{"start outside", "id: x\nsize: {w: 2, h: 2}\nstart: {x: -1, y: 0}\n", "START_OUT_OF_BOUNDS"},
		{"goal outside", "id: x\nsize: {w: 2, h: 2}\ngoal: {x: 0, y: 9}\n", "GOAL_OUT_OF_BOUNDS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := maps.Parse([]byte(tc.body))
			var verr maps.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse() error = %v, expected ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}

	if _, err := maps.Parse([]byte("id: [")); err == nil {
		t.Error("expected yaml error")
	}
}

func TestParseAllowsWalledEndpoints(t *testing.T) {
	m, err := maps.Parse([]byte("id: x\nsize: {w: 3, h: 1}\nwalls: [{x: 0, y: 0}]\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	g, err := m.ToGrid()
	if err != nil {
		t.Fatalf("ToGrid() failed: %v", err)
	}
	if !g.IsWall(0, 0) {
		t.Error("expected the start cell to keep its wall")
	}
}

func TestToGrid(t *testing.T) {
	m := maps.Map{
		ID:     "grid",
		Width:  3,
		Height: 2,
		Walls:  []pathfind.Coord{{X: 1, Y: 0}, {X: 2, Y: 1}},
	}
	g, err := m.ToGrid()
	if err != nil {
		t.Fatalf("ToGrid() failed: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 || g.WallCount() != 2 {
		t.Errorf("grid %dx%d with %d walls, expected 3x2 with 2", g.Width(), g.Height(), g.WallCount())
	}

	m.Width = 0
	if _, err := m.ToGrid(); !errors.Is(err, pathfind.ErrInvalidDimension) {
		t.Errorf("ToGrid() error = %v, expected ErrInvalidDimension", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := maps.NewLoader(getTestdataPath())

	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml and readme.txt are skipped.
	if len(all) != 2 {
		t.Fatalf("expected 2 maps, got %d", len(all))
	}
	if all[0].ID != "test-rows" || all[1].ID != "test-valid" {
		t.Errorf("maps not sorted by ID: %s, %s", all[0].ID, all[1].ID)
	}
	if !strings.HasSuffix(all[0].FilePath, filepath.Join("nested", "rows.yml")) {
		t.Errorf("FilePath = %q", all[0].FilePath)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := maps.NewLoader(getTestdataPath())

	m, err := loader.LoadByID("test-valid")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if m.Name != "Test map" || m.Width != 4 || m.Height != 3 {
		t.Errorf("unexpected map %+v", m)
	}
	if m.Metadata["author"] != "tests" {
		t.Errorf("Metadata = %v", m.Metadata)
	}

	if _, err := loader.LoadByID("nope"); !errors.Is(err, maps.ErrNotFound) {
		t.Errorf("LoadByID(nope) = %v, expected ErrNotFound", err)
	}
}

func TestLoaderLoadByIDInvalidFile(t *testing.T) {
	loader := maps.NewLoader(getTestdataPath())

	tests := []struct {
		name string
		id   string
	}{
		{"by id key", "test-broken"},
		{"by file name", "broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadByID(tt.id)
			if err == nil {
				t.Fatal("LoadByID() should fail for a broken map")
			}
			if errors.Is(err, maps.ErrNotFound) {
				t.Errorf("LoadByID(%s) = %v, expected the parse error, not ErrNotFound", tt.id, err)
			}
			var verr maps.ValidationError
			if !errors.As(err, &verr) || verr.Code != "RAGGED_ROWS" {
				t.Errorf("LoadByID(%s) = %v, expected RAGGED_ROWS", tt.id, err)
			}
		})
	}
}

func TestLoaderMissingDir(t *testing.T) {
	loader := maps.NewLoader(filepath.Join(t.TempDir(), "missing"))
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(getTestdataPath(), "valid.yaml")
	m, err := maps.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if m.FilePath != path {
		t.Errorf("FilePath = %q, expected %q", m.FilePath, path)
	}

	if _, err := maps.LoadPath(filepath.Join(getTestdataPath(), "broken.yaml")); err == nil {
		t.Error("expected parse error for broken map")
	}
}

func TestBuiltinMapsSolve(t *testing.T) {
	tests := []struct {
		id    string
		steps int // -1 = unreachable
	}{
		{"open", 8},
		{"gap", 4},
		{"divided", -1},
		{"corridor", 34},
		{"rooms", 20},
		{"spiral", 46},
	}

	loader := maps.Builtin()
	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != len(tests) {
		t.Errorf("expected %d builtin maps, got %v", len(tests), ids)
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			m, err := loader.LoadByID(tc.id)
			if err != nil {
				t.Fatalf("LoadByID failed: %v", err)
			}
			if m.FilePath != "" {
				t.Errorf("builtin maps have no file path, got %q", m.FilePath)
			}
			g, err := m.ToGrid()
			if err != nil {
				t.Fatalf("ToGrid failed: %v", err)
			}
			path, err := pathfind.New().Run(g, m.Start, m.Goal)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if tc.steps < 0 {
				if len(path) != 0 {
					t.Errorf("expected no path, got %v", path)
				}
				return
			}
			if path.Len() != tc.steps {
				t.Errorf("path has %d steps, expected %d", path.Len(), tc.steps)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	g, _ := pathfind.NewGrid(4, 3)
	g.SetWall(1, 0, true)
	g.SetWall(1, 1, true)
	g.SetWall(3, 0, true)

	tests := []struct {
		name     string
		goal     pathfind.Coord
		wantRows bool
	}{
		{"rows form", pathfind.C(3, 2), true},
		{"size form when goal is walled", pathfind.C(3, 0), false},
		{"size form when goal is start", pathfind.C(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maps.FromGrid("saved", "Saved", g, pathfind.C(0, 0), tt.goal)
			data, err := maps.Encode(m)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			if got := strings.Contains(string(data), "rows:"); got != tt.wantRows {
				t.Errorf("Encode() rows form = %v, expected %v:\n%s", got, tt.wantRows, data)
			}

			back, err := maps.Parse(data)
			if err != nil {
				t.Fatalf("Parse(Encode()) failed: %v\n%s", err, data)
			}
			if back.Start != m.Start || back.Goal != m.Goal {
				t.Errorf("endpoints = %v -> %v, expected %v -> %v", back.Start, back.Goal, m.Start, m.Goal)
			}
			bg, err := back.ToGrid()
			if err != nil {
				t.Fatalf("ToGrid() failed: %v", err)
			}
			if bg.WallCount() != 3 || !bg.IsWall(3, 0) {
				t.Errorf("decoded walls = %v, expected the 3 original walls", bg.Walls())
			}
		})
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	m := maps.Map{ID: "bad", Width: 2, Height: 2, Goal: pathfind.C(5, 5)}
	if _, err := maps.Encode(m); err == nil {
		t.Error("Encode() of an invalid map should fail")
	}
}

func TestSave(t *testing.T) {
	g, _ := pathfind.NewGrid(3, 3)
	g.SetWall(1, 1, true)
	path := filepath.Join(t.TempDir(), "nested", "saved.yaml")

	if err := maps.Save(maps.FromGrid("saved", "", g, pathfind.C(0, 0), pathfind.C(2, 2)), path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	m, err := maps.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() failed: %v", err)
	}
	if m.ID != "saved" || m.Name != "saved" || len(m.Walls) != 1 {
		t.Errorf("loaded map = %+v, expected id saved with one wall", m)
	}
}
