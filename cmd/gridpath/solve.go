package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/render"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagSolveMap       string
	flagSolveBuiltin   string
	flagSolveGenerator string
	flagSolveWidth     int
	flagSolveHeight    int
	flagSolveDensity   float64
	flagSolveStart     string
	flagSolveGoal      string
	flagSolveReject    bool
	flagSolveExplored  bool
	flagSolveNoLog     bool
	flagSolveSave      string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a grid and print the path",
	Long: `Run one A* search and print the grid with the path, followed by search
statistics. Without --map, --builtin or --generator an empty grid of
--width x --height is solved.

Legend:
  S start   G goal   # wall   * path   , explored (with --explored)

Examples:
  gridpath solve --builtin spiral
  gridpath solve --map ./my-map.yaml --explored
  gridpath solve --generator scatter --density 0.3 --seed 7
  gridpath solve --width 10 --height 10 --start 2,3 --goal 9,0
  gridpath solve --generator maze --seed 3 --save ~/.gridpath/maps/maze3.yaml`,
	Run: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagSolveMap, "map", "", "Path to a map YAML file")
	solveCmd.Flags().StringVar(&flagSolveBuiltin, "builtin", "", "ID of a built-in or user map")
	solveCmd.Flags().StringVar(&flagSolveGenerator, "generator", "", "Generate walls with this generator")
	solveCmd.Flags().IntVar(&flagSolveWidth, "width", 0, "Grid width for generated/empty grids (default from config)")
	solveCmd.Flags().IntVar(&flagSolveHeight, "height", 0, "Grid height for generated/empty grids (default from config)")
	solveCmd.Flags().Float64Var(&flagSolveDensity, "density", -1, "Wall density for density-based generators (default from config)")
	solveCmd.Flags().StringVar(&flagSolveStart, "start", "", "Start cell as x,y")
	solveCmd.Flags().StringVar(&flagSolveGoal, "goal", "", "Goal cell as x,y")
	solveCmd.Flags().BoolVar(&flagSolveReject, "reject-wall-endpoints", false, "Fail when start or goal is a wall")
	solveCmd.Flags().BoolVar(&flagSolveExplored, "explored", false, "Show cells finalized by the search")
	solveCmd.Flags().BoolVar(&flagSolveNoLog, "no-log", false, "Do not record the run in the history database")
	solveCmd.Flags().StringVar(&flagSolveSave, "save", "", "Also write the layout as a map YAML file")
}

// solveRequest is a fully resolved solve command.
type solveRequest struct {
	Source   layoutSource
	Reject   bool
	Explored bool
}

// solveOutcome is what a solve produced.
type solveOutcome struct {
	Layout  layout
	Result  pathfind.Result
	Policy  pathfind.EndpointPolicy
	Elapsed time.Duration
}

// solve builds the layout, runs the search and writes the rendering to w.
func solve(cfg config.Config, req solveRequest, w io.Writer) (solveOutcome, error) {
	l, err := buildLayout(req.Source, config.ExpandHome(cfg.Maps.Dir))
	if err != nil {
		return solveOutcome{}, err
	}

	opts, err := cfg.PathfinderOptions()
	if err != nil {
		return solveOutcome{}, err
	}
	if req.Reject {
		opts = append(opts, pathfind.WithEndpointPolicy(pathfind.EndpointReject))
	}
	finder := pathfind.New(append(opts, pathfind.WithAutoReset())...)

	began := time.Now()
	res, err := finder.Search(l.Grid, l.Start, l.Goal)
	elapsed := time.Since(began)
	if err != nil {
		return solveOutcome{}, err
	}

	theme, err := cfg.Theme()
	if err != nil {
		return solveOutcome{}, err
	}
	// Plain text output; doubled cells only help in the editor.
	theme.CellWidth = 1

	scene := render.Scene{
		Grid:         l.Grid,
		Start:        l.Start,
		Goal:         l.Goal,
		Path:         res.Path,
		ShowExplored: req.Explored || cfg.Render.ShowExplored,
	}
	fmt.Fprintln(w, render.RenderASCII(scene, theme))
	fmt.Fprintln(w)
	fmt.Fprintln(w, render.Summary(res))
	if res.Found {
		fmt.Fprintf(w, "cost %.0f | %v -> %v\n", res.Cost, l.Start, l.Goal)
	}

	return solveOutcome{
		Layout:  l,
		Result:  res,
		Policy:  finder.Options().Endpoints,
		Elapsed: elapsed,
	}, nil
}

// saveLayout writes a layout as a map file whose ID is the file name.
func saveLayout(l layout, path string) error {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := maps.FromGrid(id, id, l.Grid, l.Start, l.Goal)
	if l.Generator != "" {
		m.Metadata = map[string]string{"generator": l.Generator}
	}
	return maps.Save(m, path)
}

func runSolve(cmd *cobra.Command, _ []string) {
	cfg := appConfig

	width, height := flagSolveWidth, flagSolveHeight
	if width == 0 {
		width = cfg.Grid.Width
	}
	if height == 0 {
		height = cfg.Grid.Height
	}
	density := flagSolveDensity
	if density < 0 {
		density = cfg.Generator.Density
	}

	req := solveRequest{
		Source: layoutSource{
			MapFile:   flagSolveMap,
			MapID:     flagSolveBuiltin,
			Generator: flagSolveGenerator,
			Width:     width,
			Height:    height,
			Density:   density,
			Seed:      seed(),
			Start:     flagSolveStart,
			Goal:      flagSolveGoal,
		},
		Reject:   flagSolveReject,
		Explored: flagSolveExplored,
	}

	out, err := solve(cfg, req, os.Stdout)
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("search finished",
		"found", out.Result.Found,
		"steps", out.Result.Path.Len(),
		"expanded", out.Result.Expanded,
		"elapsed", out.Elapsed)

	if flagSolveSave != "" {
		path := config.ExpandHome(flagSolveSave)
		if err := saveLayout(out.Layout, path); err != nil {
			fail("%v", err)
		}
		logger.Info("layout saved", "path", path)
	}

	if flagSolveNoLog {
		return
	}
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	run := storage.NewRun(out.Layout.Grid, out.Layout.Start, out.Layout.Goal, out.Result)
	run.MapID = out.Layout.MapID
	run.Generator = out.Layout.Generator
	run.Source = cmd.Name()
	run.Policy = out.Policy.String()
	run.Duration = out.Elapsed
	if _, err := store.SaveRun(run); err != nil {
		logger.Warn("could not record run", "error", err)
	}
}
