package web

import (
	"math/rand"
	"time"

	"github.com/gorilla/websocket"

	"github.com/clapcampus/tmgame3/internal/core"
	"github.com/clapcampus/tmgame3/internal/game/catcher"
	"github.com/clapcampus/tmgame3/internal/storage"
)

const (
	readLimit    = 1 << 16
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

// session drives one round for one websocket client. All round mutation
// happens on the session goroutine: once per tick it applies at most one
// buffered gesture, advances the simulation, and pushes state.
type session struct {
	server *Server
	conn   *websocket.Conn
	round  *catcher.Round

	timeLimit int
	pending   string // latest gesture since the previous tick
	inbound   chan Envelope
	closed    chan struct{}

	roundStartedAt time.Time
	ended          bool
	finalScore     int
	finalLevel     int
}

func newSession(s *Server, conn *websocket.Conn) *session {
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess := &session{
		server:  s,
		conn:    conn,
		inbound: make(chan Envelope, 16),
		closed:  make(chan struct{}),
	}
	sess.round = catcher.New(s.gameCfg, nil, rand.New(rand.NewSource(seed)))
	sess.round.OnRoundEnd(func(score, level int) {
		// Runs synchronously inside Tick/Stop on this goroutine.
		sess.ended = true
		sess.finalScore = score
		sess.finalLevel = level
	})
	return sess
}

// run blocks until the client disconnects.
func (s *session) run() {
	defer s.conn.Close()

	go s.readPump()

	ticker := time.NewTicker(time.Second / time.Duration(s.server.config.TickRate))
	defer ticker.Stop()

	pinger := time.NewTicker(pingInterval)
	defer pinger.Stop()

	tick := 0
	for {
		select {
		case env := <-s.inbound:
			s.handleMessage(env)

		case <-ticker.C:
			tick++
			s.step(tick)

		case <-pinger.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closed:
			if s.round.Active() {
				s.round.Stop()
				s.finishRound(storage.EndAbort)
			}
			return
		}
	}
}

// readPump feeds decoded envelopes to the session goroutine.
func (s *session) readPump() {
	defer close(s.closed)

	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := DecodeEnvelope(msg)
		if err != nil {
			s.server.logger.Debug("bad envelope", "error", err)
			continue
		}
		select {
		case s.inbound <- env:
		default:
			// Slow session loop; drop rather than block the reader.
		}
	}
}

func (s *session) handleMessage(env Envelope) {
	switch env.T {
	case MsgHello:
		s.send(MsgWelcome, Welcome{
			TickRate: s.server.config.TickRate,
			Lanes:    core.LaneCount,
			Field: FieldGeometry{
				SpawnY:          s.server.gameCfg.Field.SpawnY,
				CatchBandTop:    s.server.gameCfg.Field.CatchBandTop,
				CatchBandBottom: s.server.gameCfg.Field.CatchBandBottom,
				DespawnY:        s.server.gameCfg.Field.DespawnY,
			},
		})

	case MsgStart:
		start, err := DecodePayload[Start](env)
		if err != nil {
			start = Start{}
		}
		s.timeLimit = start.TimeLimitSeconds
		if s.timeLimit <= 0 {
			s.timeLimit = s.server.gameCfg.Round.TimeLimitSeconds
		}
		if s.timeLimit <= 0 {
			s.timeLimit = 60
		}
		s.ended = false
		s.pending = ""
		s.roundStartedAt = time.Now()
		s.round.Start(catcher.Options{TimeLimitSeconds: s.timeLimit})

	case MsgGesture:
		g, err := DecodePayload[Gesture](env)
		if err != nil {
			return
		}
		// Only the most recent label survives until the next tick; the
		// round sees at most one gesture per frame.
		s.pending = g.Label

	case MsgStop:
		if s.round.Active() {
			s.round.Stop()
			s.finishRound(storage.EndAbort)
		}
	}
}

// step runs one frame of the driver loop.
func (s *session) step(tick int) {
	if s.pending != "" {
		s.round.ApplyGesture(s.pending)
		s.pending = ""
	}

	wasActive := s.round.Active()
	s.round.Tick()

	if wasActive && s.ended {
		reason := storage.EndBomb
		if int(time.Since(s.roundStartedAt).Seconds()) >= s.timeLimit {
			reason = storage.EndTimeout
		}
		s.finishRound(reason)
	}

	if s.round.Active() && tick%BroadcastDivisor == 0 {
		s.send(MsgState, s.round.Snapshot())
	}
}

// finishRound reports and persists a completed round exactly once.
func (s *session) finishRound(reason string) {
	if !s.ended {
		return
	}
	s.ended = false

	elapsed := int(time.Since(s.roundStartedAt).Seconds())
	if s.timeLimit > 0 && elapsed > s.timeLimit {
		elapsed = s.timeLimit
	}

	s.send(MsgState, s.round.Snapshot())
	s.send(MsgRoundEnd, RoundEnd{
		Score:        s.finalScore,
		Level:        s.finalLevel,
		DurationSecs: elapsed,
		Reason:       reason,
	})

	if s.server.store != nil {
		//nolint:errcheck // Best-effort save
		s.server.store.SaveRound(s.finalScore, s.finalLevel, elapsed, reason)
	}

	s.server.logger.Info("round finished",
		"score", s.finalScore,
		"level", s.finalLevel,
		"duration", elapsed,
		"reason", reason)
}

func (s *session) send(t string, payload any) {
	data, err := Encode(t, payload)
	if err != nil {
		s.server.logger.Error("encode failed", "type", t, "error", err)
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.server.logger.Debug("write failed", "type", t, "error", err)
	}
}
