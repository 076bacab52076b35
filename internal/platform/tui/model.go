package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
	"github.com/vovakirdan/gridpath/internal/render"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// EditorConfig is everything needed to start an editor session.
type EditorConfig struct {
	Grid   *pathfind.Grid
	Start  pathfind.Coord
	Goal   pathfind.Coord
	MapID  string // Map the grid was loaded from, if any
	Layout string // Generator that produced the grid's walls, if any

	Pathfinder   *pathfind.Pathfinder
	Policy       pathfind.EndpointPolicy
	Theme        render.Theme
	ShowExplored bool

	Runtime       core.RuntimeConfig // TickRate drives the reveal animation, Seed the generators
	RevealPerTick int                // Path cells revealed per tick, 0 = instant

	Generator string  // Initially selected generator ID
	Density   float64 // Passed to density-based generators

	Store         *storage.Store // Optional run history
	Source        string         // Recorded with each run ("edit", "ssh")
	Logger        *log.Logger
	ScreenshotDir string
	MapsDir       string // Where "save as map" writes, empty disables it
}

// Model is the Bubble Tea model for the interactive grid editor.
type Model struct {
	grid   *pathfind.Grid
	start  pathfind.Coord
	goal   pathfind.Coord
	cursor pathfind.Coord
	mapID  string
	layout string // Generator that produced the current walls, if any

	finder       *pathfind.Pathfinder
	policy       pathfind.EndpointPolicy
	theme        render.Theme
	showExplored bool

	result    pathfind.Result
	hasResult bool
	revealed  int // Path cells currently shown
	animating bool
	ticking   bool // A TickMsg is in flight

	generators []registry.GeneratorInfo
	genIndex   int
	density    float64
	seed       int64

	config        core.RuntimeConfig
	revealPerTick int
	screen        *core.Screen
	store         *storage.Store
	source        string
	logger        *log.Logger
	screenshotDir string
	mapsDir       string

	keys     EditorKeyMap
	help     help.Model
	status   string
	failed   bool // Status is an error message
	quitting bool
}

// NewModel creates an editor model. A nil Grid is replaced by an empty grid
// of the default size.
func NewModel(cfg EditorConfig) (Model, error) {
	g := cfg.Grid
	if g == nil {
		var err error
		g, err = pathfind.NewGrid(20, 20)
		if err != nil {
			return Model{}, err
		}
	}
	if !g.InBounds(cfg.Start.X, cfg.Start.Y) {
		return Model{}, fmt.Errorf("tui: start %v: %w", cfg.Start, pathfind.ErrOutOfBounds)
	}
	if !g.InBounds(cfg.Goal.X, cfg.Goal.Y) {
		return Model{}, fmt.Errorf("tui: goal %v: %w", cfg.Goal, pathfind.ErrOutOfBounds)
	}

	finder := cfg.Pathfinder
	if finder == nil {
		finder = pathfind.New(pathfind.WithEndpointPolicy(cfg.Policy), pathfind.WithAutoReset())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	runtime := cfg.Runtime
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	m := Model{
		grid:          g,
		start:         cfg.Start,
		goal:          cfg.Goal,
		cursor:        cfg.Start,
		mapID:         cfg.MapID,
		layout:        cfg.Layout,
		finder:        finder,
		policy:        finder.Options().Endpoints,
		theme:         cfg.Theme,
		showExplored:  cfg.ShowExplored,
		generators:    registry.List(),
		density:       cfg.Density,
		seed:          runtime.Seed,
		config:        runtime,
		revealPerTick: cfg.RevealPerTick,
		store:         cfg.Store,
		source:        cfg.Source,
		logger:        logger,
		screenshotDir: cfg.ScreenshotDir,
		mapsDir:       cfg.MapsDir,
		keys:          DefaultEditorKeyMap(),
		help:          help.New(),
		status:        "place walls, then press enter to search",
	}
	if m.theme.Glyphs == nil {
		m.theme = render.DefaultTheme()
	}
	for i, info := range m.generators {
		if info.ID == cfg.Generator {
			m.genIndex = i
		}
	}

	w, h := m.screenSize()
	m.screen = core.NewScreen(w, h)
	return m, nil
}

// Init initializes the model. The editor is idle until the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.SaveMap):
		m.saveMap()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.Apply(action)
	if m.animating && !m.ticking {
		m.ticking = true
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// handleTick advances the path reveal animation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.animating {
		m.ticking = false
		return m, nil
	}
	m.revealed += m.revealPerTick
	if m.revealed >= len(m.result.Path) {
		m.revealed = len(m.result.Path)
		m.animating = false
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// Apply performs one editor action. Any edit to walls or endpoints discards
// the previous search result.
func (m *Model) Apply(action core.Action) {
	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		next := m.cursor.Add(action.Delta())
		m.cursor = pathfind.C(
			core.Clamp(next.X, 0, m.grid.Width()-1),
			core.Clamp(next.Y, 0, m.grid.Height()-1),
		)

	case core.ActionToggleWall:
		wall, err := m.grid.ToggleWall(m.cursor.X, m.cursor.Y)
		if err != nil {
			m.setError(err)
			return
		}
		m.invalidate()
		if wall {
			m.setStatus(fmt.Sprintf("wall at %v", m.cursor))
		} else {
			m.setStatus(fmt.Sprintf("cleared %v", m.cursor))
		}

	case core.ActionSetStart:
		m.start = m.cursor
		m.invalidate()
		m.setStatus(fmt.Sprintf("start at %v", m.start))

	case core.ActionSetGoal:
		m.goal = m.cursor
		m.invalidate()
		m.setStatus(fmt.Sprintf("goal at %v", m.goal))

	case core.ActionSearch:
		m.search()

	case core.ActionClear:
		m.grid.ClearWalls()
		m.invalidate()
		m.mapID = ""
		m.layout = ""
		m.setStatus("walls cleared")

	case core.ActionGenerate:
		m.generate()

	case core.ActionNextGenerator:
		if len(m.generators) > 0 {
			m.genIndex = (m.genIndex + 1) % len(m.generators)
			m.setStatus(fmt.Sprintf("generator: %s", m.generators[m.genIndex].Title))
		}

	case core.ActionExplored:
		m.showExplored = !m.showExplored
	}
}

// invalidate drops the last result so a stale path is never shown over an
// edited grid.
func (m *Model) invalidate() {
	m.result = pathfind.Result{}
	m.hasResult = false
	m.revealed = 0
	m.animating = false
	m.grid.ResetSearchState()
}

// search runs the pathfinder, records the run and starts the reveal animation.
func (m *Model) search() {
	m.grid.ResetSearchState()

	began := time.Now()
	res, err := m.finder.Search(m.grid, m.start, m.goal)
	elapsed := time.Since(began)
	if err != nil {
		m.invalidate()
		if errors.Is(err, pathfind.ErrEndpointWall) {
			m.setError(errors.New("start or goal is a wall"))
		} else {
			m.setError(err)
		}
		return
	}

	m.result = res
	m.hasResult = true
	m.animating = res.Found && m.revealPerTick > 0 && len(res.Path) > 1
	if m.animating {
		m.revealed = 0
	} else {
		m.revealed = len(res.Path)
	}
	m.setStatus(render.Summary(res))

	m.logger.Debug("search finished",
		"start", m.start, "goal", m.goal,
		"found", res.Found, "steps", res.Path.Len(),
		"expanded", res.Expanded, "elapsed", elapsed)

	m.recordRun(res, elapsed)
}

func (m *Model) recordRun(res pathfind.Result, elapsed time.Duration) {
	if m.store == nil {
		return
	}
	run := storage.NewRun(m.grid, m.start, m.goal, res)
	run.MapID = m.mapID
	run.Source = m.source
	run.Policy = m.policy.String()
	run.Duration = elapsed
	run.Generator = m.layout
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not record run", "error", err)
	}
}

func (m *Model) lastGenerator() string {
	if len(m.generators) == 0 {
		return ""
	}
	return m.generators[m.genIndex].ID
}

// generate replaces the walls with the selected generator's layout, keeping
// the endpoints open. Each press uses the next seed.
func (m *Model) generate() {
	if len(m.generators) == 0 {
		m.setError(errors.New("no generators registered"))
		return
	}
	info := m.generators[m.genIndex]
	err := registry.Apply(info.ID, m.grid, registry.Params{
		Seed:    m.seed,
		Density: m.density,
		Keep:    []pathfind.Coord{m.start, m.goal},
	})
	if err != nil {
		m.setError(err)
		return
	}
	m.seed++
	m.mapID = ""
	m.layout = info.ID
	m.invalidate()
	m.setStatus(fmt.Sprintf("generated %s layout, %d walls", info.Title, m.grid.WallCount()))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
}

// visiblePath is the revealed prefix of the current path.
func (m Model) visiblePath() pathfind.Path {
	if !m.hasResult {
		return nil
	}
	return m.result.Path[:m.revealed]
}

// screenSize is the grid footprint plus a one-cell border.
func (m Model) screenSize() (w, h int) {
	gw, gh := m.theme.Size(m.grid)
	return gw + 2, gh + 2
}

// draw renders the bordered grid and cursor into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	w, h := m.screenSize()
	m.screen.DrawBox(core.NewRect(0, 0, w, h), core.ColorGray)

	render.Draw(m.screen, render.Scene{
		Grid:         m.grid,
		Start:        m.start,
		Goal:         m.goal,
		Path:         m.visiblePath(),
		ShowExplored: m.showExplored && m.hasResult,
	}, m.theme, 1, 1)

	cw := max(m.theme.CellWidth, 1)
	for i := 0; i < cw; i++ {
		x, y := 1+m.cursor.X*cw+i, 1+m.cursor.Y
		r := m.screen.Get(x, y)
		if r == m.theme.Glyph(render.CategoryEmpty).Rune {
			r = '+'
		}
		m.screen.SetColored(x, y, r, core.ColorBrightCyan)
	}
}

// Cursor returns the cursor position.
func (m Model) Cursor() pathfind.Coord { return m.cursor }

// Endpoints returns the current start and goal.
func (m Model) Endpoints() (start, goal pathfind.Coord) { return m.start, m.goal }

// Result returns the last search result and whether it is current.
func (m Model) Result() (pathfind.Result, bool) { return m.result, m.hasResult }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Generator returns the selected generator ID.
func (m Model) Generator() string { return m.lastGenerator() }

// Snapshot returns the plain-text frame written by screenshots.
func (m Model) Snapshot() string {
	m.draw()
	var sb strings.Builder
	sb.WriteString(m.screen.String())
	sb.WriteString("\n")
	sb.WriteString(m.status)
	sb.WriteString("\n")
	return sb.String()
}

// saveScreenshot writes the current frame to the screenshot directory.
func (m *Model) saveScreenshot() {
	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setError(fmt.Errorf("screenshot: %w", err))
			return
		}
		dir = filepath.Join(home, ".gridpath", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setError(fmt.Errorf("screenshot: %w", err))
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("grid_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.Snapshot()), 0o600); err != nil {
		m.setError(fmt.Errorf("screenshot: %w", err))
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("screenshot saved to " + path)
}

// saveMap writes the current layout as a map file that solve and edit can
// load by ID.
func (m *Model) saveMap() {
	if m.mapsDir == "" {
		m.setError(errors.New("no maps directory configured"))
		return
	}

	id := "grid_" + time.Now().Format("20060102_150405")
	path := filepath.Join(m.mapsDir, id+".yaml")
	saved := maps.FromGrid(id, id, m.grid, m.start, m.goal)
	if m.layout != "" {
		saved.Metadata = map[string]string{"generator": m.layout}
	}
	if err := maps.Save(saved, path); err != nil {
		m.setError(fmt.Errorf("save map: %w", err))
		return
	}

	m.mapID = id
	m.logger.Info("map saved", "id", id, "path", path)
	m.setStatus(fmt.Sprintf("saved map %s to %s", id, path))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.screenSize()
	if m.config.ScreenW > 0 && (m.config.ScreenW < w || m.config.ScreenH < h+4) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			w, h+4, m.config.ScreenW, m.config.ScreenH)
	}

	m.draw()

	var b strings.Builder
	title := fmt.Sprintf("gridpath %dx%d", m.grid.Width(), m.grid.Height())
	if m.mapID != "" {
		title += " | " + m.mapID
	}
	if g := m.lastGenerator(); g != "" {
		title += " | gen: " + g
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render("error: " + m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea editor in the current terminal.
func Run(cfg EditorConfig) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
