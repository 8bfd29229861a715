// Package tui provides the Bubble Tea integration for the fruit catcher.
// It handles the terminal frame loop, key-to-gesture mapping, and round
// orchestration: once per frame it applies at most one gesture, advances
// the simulation, and redraws from the render-state snapshot.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clapcampus/tmgame3/internal/core"
	"github.com/clapcampus/tmgame3/internal/game/catcher"
	"github.com/clapcampus/tmgame3/internal/storage"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends tick messages at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model driving a catcher round.
type Model struct {
	round  *catcher.Round
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig

	timeLimit int
	pending   string // buffered gesture; at most one applied per frame
	restart   bool

	roundStartedAt time.Time
	roundSaved     bool
	lastSnap       catcher.Snapshot
	quitting       bool
}

// NewModel creates a model for the given round.
func NewModel(round *catcher.Round, store *storage.Store, cfg core.RuntimeConfig, timeLimit int) Model {
	return Model{
		round:     round,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		timeLimit: timeLimit,
	}
}

// Init starts the round and the tick loop.
func (m Model) Init() tea.Cmd {
	m.round.Start(catcher.Options{TimeLimitSeconds: m.timeLimit})
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey maps keys to gestures and control actions. The gesture is
// buffered and applied on the next tick so the frame sequence stays
// "at most one gesture, then tick, then render".
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		if m.round.Active() {
			m.round.Stop()
		}
		// The tick loop stops with tea.Quit, so persist the abort here.
		if !m.roundSaved {
			m.saveRound(m.round.Snapshot())
			m.roundSaved = true
		}
		return m, tea.Quit
	case "left", "a", "h":
		m.pending = core.GestureLeft
	case "down", "s", "j":
		m.pending = core.GestureCenter
	case "right", "d", "l":
		m.pending = core.GestureRight
	case "r":
		if !m.round.Active() {
			m.restart = true
		}
	}

	return m, nil
}

// handleTick runs one frame of the driver loop.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.restart {
		m.restart = false
		m.roundSaved = false
		m.round.Start(catcher.Options{TimeLimitSeconds: m.timeLimit})
		m.roundStartedAt = time.Now()
	}

	if m.roundStartedAt.IsZero() {
		// First tick after Init armed the round.
		m.roundStartedAt = time.Now()
	}

	if m.pending != "" {
		m.round.ApplyGesture(m.pending)
		m.pending = ""
	}

	m.round.Tick()

	snap := m.round.Snapshot()
	if !snap.Active && !m.roundSaved {
		m.saveRound(snap)
		m.roundSaved = true
	}
	m.lastSnap = snap

	return m, tickCmd(m.config.TickRate)
}

// saveRound persists the finished round; best effort, the game continues
// regardless.
func (m *Model) saveRound(snap catcher.Snapshot) {
	if m.store == nil {
		return
	}

	elapsed := 0
	if !m.roundStartedAt.IsZero() {
		elapsed = int(time.Since(m.roundStartedAt).Seconds())
	}
	reason := storage.EndBomb
	if elapsed >= m.timeLimit {
		elapsed = m.timeLimit
		reason = storage.EndTimeout
	}
	if m.quitting {
		reason = storage.EndAbort
	}

	//nolint:errcheck // Best-effort save
	m.store.SaveRound(snap.Score, snap.Level, elapsed, reason)
}

// View renders the current state for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.round.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a round.
func Run(round *catcher.Round, store *storage.Store, cfg core.RuntimeConfig, timeLimit int) error {
	model := NewModel(round, store, cfg, timeLimit)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
