package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridpath/internal/core"
	_ "github.com/vovakirdan/gridpath/internal/generators"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/render"
	"github.com/vovakirdan/gridpath/internal/storage"
)

func newTestModel(t *testing.T, w, h int, mutate func(*EditorConfig)) Model {
	t.Helper()
	g, err := pathfind.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	cfg := EditorConfig{
		Grid:   g,
		Start:  pathfind.C(0, 0),
		Goal:   pathfind.C(w-1, h-1),
		Theme:  render.DefaultTheme(),
		Source: "edit",
		Logger: log.New(io.Discard),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, err := NewModel(EditorConfig{Logger: log.New(io.Discard), Goal: pathfind.C(19, 19)})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if m.grid.Width() != 20 || m.grid.Height() != 20 {
		t.Errorf("default grid = %dx%d, expected 20x20", m.grid.Width(), m.grid.Height())
	}
	if m.Cursor() != pathfind.C(0, 0) {
		t.Errorf("Cursor() = %v, expected start", m.Cursor())
	}
	if m.config.TickRate != core.DefaultConfig().TickRate {
		t.Errorf("TickRate = %d, expected %d", m.config.TickRate, core.DefaultConfig().TickRate)
	}
}

func TestNewModelRejectsOutOfBoundsEndpoints(t *testing.T) {
	g, _ := pathfind.NewGrid(3, 3)
	_, err := NewModel(EditorConfig{Grid: g, Start: pathfind.C(0, 0), Goal: pathfind.C(3, 0)})
	if err == nil {
		t.Error("NewModel() with goal outside the grid should fail")
	}
}

func TestCursorClamped(t *testing.T) {
	m := newTestModel(t, 3, 3, nil)

	m.Apply(core.ActionLeft)
	m.Apply(core.ActionUp)
	if m.Cursor() != pathfind.C(0, 0) {
		t.Errorf("Cursor() = %v, expected (0, 0)", m.Cursor())
	}

	for i := 0; i < 5; i++ {
		m.Apply(core.ActionRight)
		m.Apply(core.ActionDown)
	}
	if m.Cursor() != pathfind.C(2, 2) {
		t.Errorf("Cursor() = %v, expected (2, 2)", m.Cursor())
	}
}

func TestEditAndSearch(t *testing.T) {
	m := newTestModel(t, 3, 3, nil)

	m.Apply(core.ActionRight)
	m.Apply(core.ActionDown)
	m.Apply(core.ActionToggleWall)
	if !m.grid.IsWall(1, 1) {
		t.Fatal("ToggleWall should wall the cursor cell")
	}

	m.Apply(core.ActionSearch)
	res, ok := m.Result()
	if !ok {
		t.Fatalf("Result() not current after search, status %q", m.Status())
	}
	if !res.Found || res.Path.Len() != 4 {
		t.Errorf("search found=%v steps=%d, expected found with 4 steps", res.Found, res.Path.Len())
	}
	if got := len(m.visiblePath()); got != len(res.Path) {
		t.Errorf("visible path = %d cells, expected all %d without animation", got, len(res.Path))
	}
	if !strings.Contains(m.Status(), "path found") {
		t.Errorf("Status() = %q, expected search summary", m.Status())
	}

	// Any edit discards the result.
	m.Apply(core.ActionToggleWall)
	if _, ok := m.Result(); ok {
		t.Error("Result() still current after an edit")
	}
	if m.visiblePath() != nil {
		t.Error("visiblePath() should be empty after an edit")
	}
}

func TestMoveEndpoints(t *testing.T) {
	m := newTestModel(t, 4, 4, nil)

	m.Apply(core.ActionRight)
	m.Apply(core.ActionSetStart)
	m.Apply(core.ActionDown)
	m.Apply(core.ActionSetGoal)

	start, goal := m.Endpoints()
	if start != pathfind.C(1, 0) || goal != pathfind.C(1, 1) {
		t.Errorf("Endpoints() = %v, %v, expected (1, 0), (1, 1)", start, goal)
	}

	m.Apply(core.ActionSearch)
	res, _ := m.Result()
	if res.Path.Len() != 1 {
		t.Errorf("path steps = %d, expected 1", res.Path.Len())
	}
}

func TestRevealSingleTickChain(t *testing.T) {
	m := newTestModel(t, 5, 5, func(cfg *EditorConfig) {
		cfg.RevealPerTick = 1
	})

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("search should start the reveal tick")
	}

	// Cursor moves and repeated searches while revealing must not start a
	// second tick chain.
	keys := []tea.KeyMsg{
		{Type: tea.KeyRight},
		{Type: tea.KeyDown},
		{Type: tea.KeyEnter},
	}
	for _, k := range keys {
		model, cmd = model.Update(k)
		if cmd != nil {
			t.Errorf("Update(%q) returned a command during the reveal, expected nil", k.String())
		}
	}

	// The running chain keeps going until the path is shown.
	ticks := 0
	for {
		model, cmd = model.Update(TickMsg(time.Now()))
		ticks++
		if cmd == nil || ticks > 20 {
			break
		}
	}
	m = model.(Model)
	res, _ := m.Result()
	if m.animating || m.ticking {
		t.Error("reveal should be finished")
	}
	if ticks != len(res.Path) {
		t.Errorf("reveal took %d ticks, expected %d", ticks, len(res.Path))
	}

	// A new search after the reveal starts a fresh chain.
	m.Apply(core.ActionToggleWall)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("search after a finished reveal should start a new tick")
	}
}

func TestRevealAnimation(t *testing.T) {
	m := newTestModel(t, 3, 3, func(cfg *EditorConfig) {
		cfg.RevealPerTick = 1
	})

	m.Apply(core.ActionSearch)
	if !m.animating {
		t.Fatal("search with RevealPerTick > 0 should animate")
	}
	if len(m.visiblePath()) != 0 {
		t.Errorf("visible path = %d cells before first tick, expected 0", len(m.visiblePath()))
	}

	var model tea.Model = m
	for i := 0; i < 10; i++ {
		model, _ = model.Update(TickMsg(time.Now()))
	}
	m = model.(Model)

	res, _ := m.Result()
	if m.animating {
		t.Error("animation should stop once the whole path is revealed")
	}
	if len(m.visiblePath()) != len(res.Path) {
		t.Errorf("visible path = %d cells, expected %d", len(m.visiblePath()), len(res.Path))
	}
}

func TestSearchRejectsWalledEndpoint(t *testing.T) {
	m := newTestModel(t, 3, 3, func(cfg *EditorConfig) {
		cfg.Policy = pathfind.EndpointReject
	})

	m.Apply(core.ActionToggleWall) // cursor starts on the start cell
	m.Apply(core.ActionSearch)

	if _, ok := m.Result(); ok {
		t.Error("Result() should not be current after a rejected search")
	}
	if !m.failed {
		t.Errorf("Status() = %q, expected an error", m.Status())
	}
}

func TestUnreachableGoal(t *testing.T) {
	m := newTestModel(t, 3, 1, nil)
	m.grid.SetWall(1, 0, true)

	m.Apply(core.ActionSearch)
	res, ok := m.Result()
	if !ok || res.Found || len(res.Path) != 0 {
		t.Errorf("Result() = %+v, %v; expected a current result with no path", res, ok)
	}
	if !strings.Contains(m.Status(), "no path") {
		t.Errorf("Status() = %q, expected no path summary", m.Status())
	}
}

func TestGenerateKeepsEndpointsOpen(t *testing.T) {
	m := newTestModel(t, 6, 6, func(cfg *EditorConfig) {
		cfg.Generator = "scatter"
		cfg.Density = 1.0
		cfg.Runtime.Seed = 7
	})
	if m.Generator() != "scatter" {
		t.Fatalf("Generator() = %q, expected scatter", m.Generator())
	}

	m.Apply(core.ActionGenerate)
	if m.failed {
		t.Fatalf("generate failed: %s", m.Status())
	}
	if got := m.grid.WallCount(); got != 34 {
		t.Errorf("WallCount() = %d, expected 34", got)
	}
	if m.grid.IsWall(0, 0) || m.grid.IsWall(5, 5) {
		t.Error("generated layout should leave start and goal open")
	}

	m.Apply(core.ActionClear)
	if m.grid.WallCount() != 0 {
		t.Errorf("WallCount() after clear = %d, expected 0", m.grid.WallCount())
	}
}

func TestNextGeneratorCycles(t *testing.T) {
	m := newTestModel(t, 3, 3, nil)
	if len(m.generators) < 2 {
		t.Skip("need at least two generators")
	}

	first := m.Generator()
	for range m.generators {
		m.Apply(core.ActionNextGenerator)
	}
	if m.Generator() != first {
		t.Errorf("Generator() after a full cycle = %q, expected %q", m.Generator(), first)
	}
}

func TestSearchRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, 4, 4, func(cfg *EditorConfig) {
		cfg.Store = store
		cfg.MapID = "open"
	})
	m.Apply(core.ActionSearch)

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.MapID != "open" || r.Source != "edit" || r.Policy != "allow" {
		t.Errorf("run labels = (%q, %q, %q), expected (open, edit, allow)", r.MapID, r.Source, r.Policy)
	}
	if !r.Found || r.Steps != 6 {
		t.Errorf("run found=%v steps=%d, expected found with 6 steps", r.Found, r.Steps)
	}
}

func TestSnapshotAndScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, 3, 3, func(cfg *EditorConfig) {
		cfg.ScreenshotDir = dir
	})
	m.Apply(core.ActionSearch)

	snap := m.Snapshot()
	for _, want := range []string{"S", "G", "*", "┌"} {
		if !strings.Contains(snap, want) {
			t.Errorf("Snapshot() missing %q:\n%s", want, snap)
		}
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = model.(Model)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshot dir has %d files, expected 1 (status %q)", len(entries), m.Status())
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "S") {
		t.Errorf("screenshot content missing start marker:\n%s", data)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, 3, 3, nil)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if !model.(Model).quitting {
		t.Error("quit key should mark the model as quitting")
	}
	if model.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t, 10, 10, nil)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 5, Height: 5})
	if !strings.Contains(model.View(), "too small") {
		t.Errorf("View() = %q, expected size warning", model.View())
	}
}

func TestSaveMap(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, 4, 3, func(cfg *EditorConfig) {
		cfg.MapsDir = dir
	})
	m.Apply(core.ActionRight)
	m.Apply(core.ActionToggleWall)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = model.(Model)
	if m.failed {
		t.Fatalf("save failed: %s", m.Status())
	}

	loaded, err := maps.NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("maps dir has %d maps, expected 1", len(loaded))
	}
	saved := loaded[0]
	if saved.ID != m.mapID {
		t.Errorf("saved ID = %q, editor map ID = %q", saved.ID, m.mapID)
	}
	if saved.Width != 4 || saved.Height != 3 || len(saved.Walls) != 1 || saved.Walls[0] != pathfind.C(1, 0) {
		t.Errorf("saved map = %+v, expected 4x3 with a wall at (1, 0)", saved)
	}
}

func TestSaveMapWithoutDir(t *testing.T) {
	m := newTestModel(t, 3, 3, nil)
	m.saveMap()
	if !m.failed {
		t.Error("saveMap() without a maps directory should report an error")
	}
}
