// fruitcatch is a lane-based catching minigame driven by motion gestures
// or the keyboard, playable in the terminal, over SSH, or from a browser.
//
// Usage:
//
//	fruitcatch play              - Play in the terminal
//	fruitcatch scores            - Show round history and stats
//	fruitcatch serve             - Start websocket server for browser play
//	fruitcatch ssh               - Start SSH server for remote terminal play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.fruitcatch/rounds.db)
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
	Use:   "fruitcatch",
	Short: "Fruit Catcher - catch falling fruit, dodge the bombs",
	Long: `Fruit Catcher is a lane-based catching game. Fruit falls down three
lanes and you steer the basket to catch it before time runs out. Apples
are worth 100, grapes 200, and catching a bomb ends the round.

Available commands:
  play     - Play in the terminal
  scores   - View round history and statistics
  serve    - Start websocket server for gesture-driven browser play
  ssh      - Start SSH server for remote terminal play

Examples:
  fruitcatch play
  fruitcatch play --time-limit 90
  fruitcatch scores --tui
  fruitcatch serve --addr :8080
  fruitcatch ssh --addr :23234`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitcatch/rounds.db", "Path to rounds database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
}
