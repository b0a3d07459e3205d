package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polarforge/santavors/internal/platform/tui"
	"github.com/polarforge/santavors/internal/storage"
)

var flagScoresTable bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top runs with class, score, kills and wave reached.

Examples:
  santavors scores
  santavors scores --table   # interactive scrollable table`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Show an interactive table instead of plain output")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTable {
		model, err := tui.NewScoreboardModel(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading runs: %v\n", err)
			os.Exit(1)
		}
		if err := tui.RunScoreboard(model); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'santavors play' to set the first record!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-6s  %s\n", "Rank", "Class", "Score", "Kills", "Wave", "Boss", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----", "----")

	for i, r := range runs {
		boss := "-"
		if r.BossDefeated {
			boss = "yes"
		}
		fmt.Printf("  %-4d  %-10s  %-8d  %-6d  %-5d  %-6s  %s\n",
			i+1, r.ClassID, r.Score, r.Kills, r.Wave, boss,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestScore()
	if err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("High score: %d\n", best)
	}
}
