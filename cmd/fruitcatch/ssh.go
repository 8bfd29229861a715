package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clapcampus/tmgame3/internal/config"
	"github.com/clapcampus/tmgame3/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagSSHConfig    string
	flagSSHTimeLimit int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH game server",
	Long: `Start an SSH server that lets users connect and play in their own
terminal session. Rounds are stored per-server, so all users share the
same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fruitcatch/host_key

Examples:
  fruitcatch ssh                           # Listen on :23234
  fruitcatch ssh --addr :2222              # Listen on port 2222
  fruitcatch ssh --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "addr", ":23234", "SSH server address (host:port)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	sshCmd.Flags().StringVar(&flagSSHConfig, "config", "", "Path to custom game config YAML")
	sshCmd.Flags().IntVar(&flagSSHTimeLimit, "time-limit", 0, "Round length in seconds (0 = config default)")
}

func runSSH(_ *cobra.Command, _ []string) {
	gameCfg, err := config.LoadCatcher(flagSSHConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TimeLimit:   flagSSHTimeLimit,
	}

	server, err := tui.NewSSHServer(serverCfg, gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SSH game server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
