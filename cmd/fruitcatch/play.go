package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clapcampus/tmgame3/internal/config"
	"github.com/clapcampus/tmgame3/internal/core"
	"github.com/clapcampus/tmgame3/internal/game/catcher"
	"github.com/clapcampus/tmgame3/internal/platform/tui"
	"github.com/clapcampus/tmgame3/internal/storage"
)

var (
	flagConfig    string
	flagTimeLimit int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a round in the terminal.

Controls:
  Left/A/H   - Move basket left
  Down/S/J   - Center the basket
  Right/D/L  - Move basket right
  R          - Restart (after round over)
  Q/Ctrl+C   - Quit

Examples:
  fruitcatch play
  fruitcatch play --time-limit 90
  fruitcatch play --config ./my-catcher.yaml
  fruitcatch play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagTimeLimit, "time-limit", 0, "Round length in seconds (0 = config default)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := config.LoadCatcher(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size; fall back to sane defaults when not a tty
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	round := catcher.New(gameCfg, nil, rand.New(rand.NewSource(seed)))

	timeLimit := flagTimeLimit
	if timeLimit <= 0 {
		timeLimit = gameCfg.Round.TimeLimitSeconds
	}

	// Open round storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(round, store, cfg, timeLimit)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
