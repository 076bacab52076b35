// gridpath finds shortest paths on 4-connected grids with A* and lets you
// build, solve and replay grid layouts in the terminal.
//
// Usage:
//
//	gridpath solve               - Solve a map or generated layout and print it
//	gridpath maps                - List built-in and user maps
//	gridpath generators          - List wall-layout generators
//	gridpath edit                - Interactive grid editor
//	gridpath history             - Show recorded runs
//	gridpath serve               - Host the editor over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.gridpath/config.yaml, ./configs/gridpath.yaml)
//	--db <path>         - Run history database (default: ~/.gridpath/runs.db)
//	--seed <value>      - RNG seed for generated layouts
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import generators to register them
	_ "github.com/vovakirdan/gridpath/internal/generators"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridpath",
	Short: "gridpath - A* shortest paths on grids, in your terminal",
	Long: `gridpath finds the shortest 4-connected path between two cells of a grid
with walls, using A* with a Manhattan estimate.

Available commands:
  solve       - Solve a map or generated layout and print the result
  maps        - List built-in and user maps
  generators  - List wall-layout generators
  edit        - Interactive grid editor
  history     - Show recorded runs
  serve       - Host the editor over SSH

Examples:
  gridpath solve --builtin corridor
  gridpath solve --generator maze --width 31 --height 15 --seed 42
  gridpath edit --generator rooms
  gridpath history --limit 20`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupApp(cmd)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for generators (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
