package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clapcampus/tmgame3/internal/config"
	"github.com/clapcampus/tmgame3/internal/platform/web"
)

var (
	flagServeAddr   string
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket game server",
	Long: `Start an HTTP server exposing the game over a websocket.

A browser client connects to /ws, runs the pose classifier locally, and
streams gesture labels in. The server runs the authoritative simulation
and streams state snapshots back for rendering. Finished rounds are
saved to the shared database.

Examples:
  fruitcatch serve                       # Listen on :8080
  fruitcatch serve --addr :9000          # Listen on port 9000
  fruitcatch serve --config ./my.yaml    # Use custom game config
  fruitcatch serve --seed 42             # Reproducible rounds`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := config.LoadCatcher(flagServeConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	serverCfg := web.DefaultServerConfig()
	serverCfg.Address = flagServeAddr
	serverCfg.DBPath = flagDBPath
	serverCfg.TickRate = flagFPS
	serverCfg.Seed = flagSeed

	server, err := web.NewServer(serverCfg, gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}
	defer server.Close()

	fmt.Printf("Starting websocket game server on %s\n", serverCfg.Address)
	fmt.Println("Connect clients to ws://<host>/ws")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
