package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clapcampus/tmgame3/internal/platform/tui"
	"github.com/clapcampus/tmgame3/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show round history and stats",
	Long: `Display the top rounds recorded in the database.

Examples:
  fruitcatch scores
  fruitcatch scores --tui
  fruitcatch scores --stats
  fruitcatch scores --clear`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse rounds in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded rounds")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All rounds cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagScoresStats {
		printStats(store)
		return
	}

	printTopRounds(store)
}

func printTopRounds(store *storage.Store) {
	rounds, err := store.TopRounds(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top Rounds - Fruit Catcher")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fruitcatch play' to record the first round!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-8s  %s\n", "Rank", "Score", "Level", "Time", "Ended", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, entry := range rounds {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-8s  %s\n",
			i+1, entry.Score, entry.Level,
			fmt.Sprintf("%ds", entry.DurationSecs),
			entry.EndReason, dateStr)
	}

	fmt.Println()
	highScore, err := store.HighScore()
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Statistics - Fruit Catcher")
	fmt.Println()
	fmt.Printf("  Rounds played:  %d\n", stats.RoundsCount)
	fmt.Printf("  High score:     %d\n", stats.HighScore)
	fmt.Printf("  Average score:  %.1f\n", stats.AvgScore)
	fmt.Printf("  Bomb endings:   %d\n", stats.BombEndings)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:    %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
