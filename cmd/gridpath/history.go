package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryMap   string
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded search runs",
	Long: `Display recent runs recorded by solve, edit and serve. Only outcomes are
stored: grid size, endpoints, wall count and search statistics.

Examples:
  gridpath history
  gridpath history --limit 50
  gridpath history --map corridor
  gridpath history --tui
  gridpath history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs interactively")
	historyCmd.Flags().StringVar(&flagHistoryMap, "map", "", "Only show runs for this map ID, with totals")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")
}

// printRuns writes runs as an aligned table.
func printRuns(w io.Writer, runs []storage.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tui.HistoryColumns, "\t"))
	for _, r := range runs {
		fmt.Fprintln(tw, strings.Join(tui.HistoryRow(r), "\t"))
	}
	return tw.Flush()
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagHistoryTUI {
		width, height := 100, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, flagHistoryLimit, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	var runs []storage.Run
	if flagHistoryMap != "" {
		runs, err = store.RunsForMap(flagHistoryMap, flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fail("%v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	if err := printRuns(os.Stdout, runs); err != nil {
		fail("%v", err)
	}

	if flagHistoryMap != "" {
		stats, err := store.StatsForMap(flagHistoryMap)
		if err != nil {
			fail("%v", err)
		}
		fmt.Println()
		fmt.Printf("%s: %d runs, %d found", stats.MapID, stats.Runs, stats.Found)
		if stats.BestSteps > 0 {
			fmt.Printf(", best %d steps", stats.BestSteps)
		}
		fmt.Println()
	}
}
