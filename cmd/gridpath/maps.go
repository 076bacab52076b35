package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/render"
)

var flagMapsDir string

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List available maps",
	Long: `Shows built-in maps and the maps found under the user maps directory
(maps.dir in the config, or --maps-dir). Invalid files are skipped.

Examples:
  gridpath maps
  gridpath maps --maps-dir ./levels
  gridpath maps show corridor`,
	Run: runMaps,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a map without solving it",
	Args:  cobra.ExactArgs(1),
	Run:   runMapsShow,
}

func init() {
	mapsCmd.PersistentFlags().StringVar(&flagMapsDir, "maps-dir", "", "User maps directory (default from config)")
	mapsCmd.AddCommand(mapsShowCmd)
}

func mapsDir() string {
	if flagMapsDir != "" {
		return flagMapsDir
	}
	return config.ExpandHome(appConfig.Maps.Dir)
}

// listMaps writes the built-in maps followed by the maps in dir.
func listMaps(w io.Writer, dir string) error {
	builtin, err := maps.Builtin().LoadAll()
	if err != nil {
		return err
	}

	var user []maps.Map
	if dirExists(dir) {
		if user, err = maps.NewLoader(dir).LoadAll(); err != nil {
			return err
		}
	}

	all := append(append([]maps.Map{}, builtin...), user...)
	maxIDLen := 2 // "ID" header
	for _, m := range all {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	printSection := func(title string, list []maps.Map) {
		fmt.Fprintf(w, "%s:\n\n", title)
		fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
		fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")
		for _, m := range list {
			fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, m.ID, fmt.Sprintf("%dx%d", m.Width, m.Height), m.Name)
		}
		fmt.Fprintln(w)
	}

	printSection("Built-in maps", builtin)
	if len(user) > 0 {
		printSection(fmt.Sprintf("User maps (%s)", dir), user)
	}
	fmt.Fprintln(w, "Run 'gridpath solve --builtin <id>' to solve a map.")
	return nil
}

func runMaps(_ *cobra.Command, _ []string) {
	if err := listMaps(os.Stdout, mapsDir()); err != nil {
		fail("%v", err)
	}
}

func runMapsShow(_ *cobra.Command, args []string) {
	m, err := findMap(args[0], mapsDir())
	if err != nil {
		fail("%v", err)
	}
	l, err := fromMap(m)
	if err != nil {
		fail("%v", err)
	}

	theme, err := appConfig.Theme()
	if err != nil {
		fail("%v", err)
	}
	theme.CellWidth = 1

	fmt.Printf("%s (%s) %dx%d, %d walls\n\n", m.Name, m.ID, m.Width, m.Height, len(m.Walls))
	fmt.Println(render.RenderASCII(render.Scene{Grid: l.Grid, Start: l.Start, Goal: l.Goal}, theme))
	for k, v := range m.Metadata {
		fmt.Printf("%s: %s\n", k, v)
	}
}
