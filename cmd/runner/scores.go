package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/irr-runner/internal/platform/tui"
	"github.com/vovakirdan/irr-runner/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagPlain  bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display recorded runs, best first.

In an interactive terminal the history opens as a scrollable table;
use --plain (or pipe the output) for a text listing.

Examples:
  runner scores
  runner scores --recent --limit 20
  runner scores --plain
  runner scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list in plain mode")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text listing")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.RunRecord
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if flagRecent {
		fmt.Println("Recent Runs - IRR Runner")
	} else {
		fmt.Println("Top Runs - IRR Runner")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-8s  %-8s  %-12s  %s\n", "Rank", "Score", "Outcome", "Chase", "Player", "Date")
	fmt.Printf("  %-5s  %-8s  %-8s  %-8s  %-12s  %s\n", "----", "-----", "-------", "-----", "------", "----")
	for i, r := range runs {
		row := tui.RunRow(i+1, r)
		fmt.Printf("  %-5s  %-8s  %-8s  %-8s  %-12s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Escapes: %d  Best: %.2f%%\n", stats.Runs, stats.Wins, stats.Escapes, stats.HighScore)
	}
	return nil
}
