package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagEditWidth     int
	flagEditHeight    int
	flagEditMap       string
	flagEditBuiltin   string
	flagEditGenerator string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Build and solve grids interactively",
	Long: `Open the grid editor. Move the cursor, place walls, move the start and
goal, then search and watch the path being revealed.

Controls:
  Arrows/hjkl/wasd  - Move cursor
  Space/X           - Toggle wall
  1 / 2             - Place start / goal
  Enter             - Search
  C                 - Clear walls
  R                 - Generate a layout
  Tab               - Next generator
  E                 - Show explored cells
  Ctrl+S            - Screenshot to ~/.gridpath/screenshots
  M                 - Save the layout as a map in the maps directory
  ?                 - Full help
  Q/Esc             - Quit

Examples:
  gridpath edit
  gridpath edit --width 40 --height 20 --generator maze
  gridpath edit --builtin rooms`,
	Run: runEdit,
}

func init() {
	editCmd.Flags().IntVar(&flagEditWidth, "width", 0, "Grid width (default from config)")
	editCmd.Flags().IntVar(&flagEditHeight, "height", 0, "Grid height (default from config)")
	editCmd.Flags().StringVar(&flagEditMap, "map", "", "Start from a map YAML file")
	editCmd.Flags().StringVar(&flagEditBuiltin, "builtin", "", "Start from a built-in or user map")
	editCmd.Flags().StringVar(&flagEditGenerator, "generator", "", "Start from a generated layout")
}

// editorConfig turns a layout and the app config into an editor configuration.
func editorConfig(cfg config.Config, l layout, store *storage.Store, runtime core.RuntimeConfig) (tui.EditorConfig, error) {
	opts, err := cfg.PathfinderOptions()
	if err != nil {
		return tui.EditorConfig{}, err
	}
	theme, err := cfg.Theme()
	if err != nil {
		return tui.EditorConfig{}, err
	}

	generator := l.Generator
	if generator == "" {
		generator = cfg.Generator.Name
	}
	runtime.TickRate = cfg.Editor.TickRate

	return tui.EditorConfig{
		Grid:          l.Grid,
		Start:         l.Start,
		Goal:          l.Goal,
		MapID:         l.MapID,
		Layout:        l.Generator,
		Pathfinder:    pathfind.New(append(opts, pathfind.WithAutoReset())...),
		Theme:         theme,
		ShowExplored:  cfg.Render.ShowExplored,
		Runtime:       runtime,
		RevealPerTick: cfg.Editor.RevealPerTick,
		Generator:     generator,
		Density:       cfg.Generator.Density,
		Store:         store,
		Logger:        logger,
		ScreenshotDir: filepath.Join(filepath.Dir(config.ExpandHome(cfg.Storage.DBPath)), "screenshots"),
		MapsDir:       config.ExpandHome(cfg.Maps.Dir),
	}, nil
}

func runEdit(cmd *cobra.Command, _ []string) {
	cfg := appConfig

	width, height := flagEditWidth, flagEditHeight
	if width == 0 {
		width = cfg.Grid.Width
	}
	if height == 0 {
		height = cfg.Grid.Height
	}

	runSeed := seed()
	l, err := buildLayout(layoutSource{
		MapFile:   flagEditMap,
		MapID:     flagEditBuiltin,
		Generator: flagEditGenerator,
		Width:     width,
		Height:    height,
		Density:   cfg.Generator.Density,
		Seed:      runSeed,
	}, config.ExpandHome(cfg.Maps.Dir))
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size
	screenW, screenH := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screenW, screenH = w, h
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	editorCfg, err := editorConfig(cfg, l, store, core.RuntimeConfig{
		ScreenW: screenW,
		ScreenH: screenH,
		Seed:    runSeed + 1,
	})
	if err != nil {
		fail("%v", err)
	}
	editorCfg.Source = cmd.Name()

	if err := tui.Run(editorCfg); err != nil {
		fail("%v", err)
	}
}
