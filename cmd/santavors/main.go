// santavors is a terminal survivors-style action game with a Christmas
// setting: pick a champion, survive escalating waves, defeat the boss.
//
// Usage:
//
//	santavors play             - Start a run
//	santavors serve            - Start SSH server for remote play
//	santavors scores           - Show the best runs
//	santavors classes          - List playable classes
//	santavors shop             - Spend Nice Points on unlocks
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.santavors/santavors.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "santavors",
	Short: "Santavors - Save Christmas, one wave at a time",
	Long: `Santavors is a terminal survivors-style action game. Choose a
champion, mow down waves of rogue snowmen and gingerdreads, level up
mid-run, and take down the Frost Colossus.

Available commands:
  play     - Start a run
  serve    - Start SSH server for remote play
  scores   - View the best runs
  classes  - List playable classes
  shop     - Spend Nice Points on weapons and skins

Examples:
  santavors play
  santavors play --class elf --seed 42
  santavors serve --ssh :2222
  santavors scores
  santavors shop`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.santavors/santavors.db", "Path to progress database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(shopCmd)
}
