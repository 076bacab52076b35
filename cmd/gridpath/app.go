package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	appConfig config.Config
	logger    *log.Logger
)

// setupApp loads configuration and builds the logger before any command runs.
func setupApp(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}

	appConfig = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridpath",
		Level:           level,
	})
	logger.Debug("configuration loaded", "command", cmd.Name(), "db", cfg.Storage.DBPath)
	return nil
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// seed returns the --seed flag, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the run history database. A failure is logged and yields
// nil so commands keep working without history.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return nil
	}
	return store
}

// layoutSource selects where a grid's walls come from. At most one of MapFile,
// MapID and Generator is set; none means an empty grid.
type layoutSource struct {
	MapFile   string
	MapID     string
	Generator string
	Width     int
	Height    int
	Density   float64
	Seed      int64
	Start     string // "x,y" override, empty for the layout default
	Goal      string // "x,y" override, empty for the layout default
}

// layout is a ready-to-search grid with its endpoints.
type layout struct {
	Grid      *pathfind.Grid
	Start     pathfind.Coord
	Goal      pathfind.Coord
	MapID     string
	Generator string
}

// buildLayout resolves a layout source into a grid.
func buildLayout(src layoutSource, mapsDir string) (layout, error) {
	set := 0
	for _, s := range []string{src.MapFile, src.MapID, src.Generator} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return layout{}, errors.New("use only one of --map, --builtin and --generator")
	}

	var l layout
	switch {
	case src.MapFile != "":
		m, err := maps.LoadPath(src.MapFile)
		if err != nil {
			return layout{}, err
		}
		if l, err = fromMap(m); err != nil {
			return layout{}, err
		}

	case src.MapID != "":
		m, err := findMap(src.MapID, mapsDir)
		if err != nil {
			return layout{}, err
		}
		if l, err = fromMap(m); err != nil {
			return layout{}, err
		}

	default:
		g, err := pathfind.NewGrid(src.Width, src.Height)
		if err != nil {
			return layout{}, fmt.Errorf("grid %dx%d: %w", src.Width, src.Height, err)
		}
		l = layout{
			Grid:  g,
			Start: pathfind.C(0, 0),
			Goal:  pathfind.C(src.Width-1, src.Height-1),
		}
	}

	if err := overrideCoord(&l.Start, src.Start, "start"); err != nil {
		return layout{}, err
	}
	if err := overrideCoord(&l.Goal, src.Goal, "goal"); err != nil {
		return layout{}, err
	}
	for _, c := range []pathfind.Coord{l.Start, l.Goal} {
		if !l.Grid.InBounds(c.X, c.Y) {
			return layout{}, fmt.Errorf("%v outside %dx%d grid: %w", c, l.Grid.Width(), l.Grid.Height(), pathfind.ErrOutOfBounds)
		}
	}

	if src.Generator != "" {
		err := registry.Apply(src.Generator, l.Grid, registry.Params{
			Seed:    src.Seed,
			Density: src.Density,
			Keep:    []pathfind.Coord{l.Start, l.Goal},
		})
		if err != nil {
			return layout{}, err
		}
		l.Generator = src.Generator
	}
	return l, nil
}

func fromMap(m maps.Map) (layout, error) {
	g, err := m.ToGrid()
	if err != nil {
		return layout{}, err
	}
	return layout{Grid: g, Start: m.Start, Goal: m.Goal, MapID: m.ID}, nil
}

func overrideCoord(dst *pathfind.Coord, value, name string) error {
	if value == "" {
		return nil
	}
	c, err := pathfind.ParseCoord(value)
	if err != nil {
		return fmt.Errorf("--%s: %w", name, err)
	}
	*dst = c
	return nil
}

// findMap looks up a map ID among the built-in maps, then in mapsDir.
// A user map that exists but does not parse reports its own error.
func findMap(id, mapsDir string) (maps.Map, error) {
	m, err := maps.Builtin().LoadByID(id)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, maps.ErrNotFound) {
		return maps.Map{}, fmt.Errorf("built-in map %s: %w", id, err)
	}

	if dirExists(mapsDir) {
		m, err := maps.NewLoader(mapsDir).LoadByID(id)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, maps.ErrNotFound) {
			return maps.Map{}, fmt.Errorf("map %s in %s: %w", id, mapsDir, err)
		}
	}

	ids, _ := maps.Builtin().ListIDs()
	return maps.Map{}, fmt.Errorf("%w: %s (built-in: %s; run 'gridpath maps' for all)",
		maps.ErrNotFound, id, strings.Join(ids, ", "))
}

func dirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil {
		return false
	}
	return info.IsDir()
}
