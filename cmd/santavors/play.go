package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/game"
	"github.com/polarforge/santavors/internal/meta"
	"github.com/polarforge/santavors/internal/platform/tui"
	"github.com/polarforge/santavors/internal/storage"
)

var (
	flagConfig string
	flagClass  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start playing. Pick a class in the menu or preselect one with --class.

Controls:
  WASD/Arrows - Move
  Space       - Fire (auto-aims the nearest enemy)
  1-3         - Pick a level-up upgrade
  P           - Pause
  R           - Restart (after a run ends)
  Q/Ctrl+C    - Quit

Examples:
  santavors play
  santavors play --class krampus
  santavors play --seed 42 --fps 30
  santavors play --config ./my-balance.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom balance YAML")
	playCmd.Flags().StringVar(&flagClass, "class", "", "Preselect a class and skip the menu")
}

func runPlay(cmd *cobra.Command, args []string) {
	tables, err := balance.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance data: %v\n", err)
		os.Exit(1)
	}

	// The playfield needs some room to be playable.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < 40 || h < 15 {
			fmt.Fprintf(os.Stderr, "Terminal too small (%dx%d); need at least 40x15.\n", w, h)
			os.Exit(1)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     seed,
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	var (
		metaStore meta.Store
		runs      game.RunSaver
	)
	if store != nil {
		metaStore = store
		runs = store
	}
	economy := meta.NewEconomy(metaStore, nil)
	economy.Load()

	g := game.New(cfg, tables, economy, runs, nil)
	if flagClass != "" {
		g.SelectClass(flagClass)
	}

	runErr := tui.Run(g, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
