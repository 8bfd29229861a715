package web

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/clapcampus/tmgame3/internal/config"
	"github.com/clapcampus/tmgame3/internal/storage"
)

// ServerConfig holds configuration for the gesture websocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the rounds database.
	DBPath string

	// TickRate is the simulation rate in ticks per second.
	TickRate int

	// Seed seeds per-session RNGs; 0 derives from current time.
	Seed int64
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		DBPath:   "~/.fruitcatch/rounds.db",
		TickRate: 60,
	}
}

// Server runs authoritative game sessions over websockets.
type Server struct {
	config   ServerConfig
	gameCfg  config.CatcherConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a websocket game server.
func NewServer(serverCfg ServerConfig, gameCfg config.CatcherConfig) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitcatch-web",
	})

	if serverCfg.TickRate <= 0 {
		serverCfg.TickRate = 60
	}

	store, err := storage.Open(serverCfg.DBPath)
	if err != nil {
		logger.Warn("could not open rounds database", "error", err)
		// Continue without storage
	}

	return &Server{
		config:  serverCfg,
		gameCfg: gameCfg,
		store:   store,
		logger:  logger,
		upgrader: websocket.Upgrader{
			// The classifier page may be served from anywhere during
			// development; tighten for production deployments.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// ListenAndServe starts the HTTP server and blocks.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	s.logger.Info("listening", "addr", s.config.Address, "endpoint", "/ws")

	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// handleWS upgrades a connection and runs one game session on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)
	s.logger.Info("client connected", "remote", conn.RemoteAddr())
	sess.run()
	s.logger.Info("client disconnected", "remote", conn.RemoteAddr())
}
