// Package web exposes the game over a websocket so a browser client can
// drive it: the browser runs the pose classifier and streams stabilized
// gesture labels in, and the server streams render-state snapshots back
// for the canvas presentation layer. The server is authoritative; the
// client only classifies and draws.
package web

import (
	"encoding/json"
	"fmt"
)

// Message types carried in the envelope.
const (
	// Client -> server
	MsgHello   = "hello"
	MsgStart   = "start"
	MsgGesture = "gesture"
	MsgStop    = "stop"

	// Server -> client
	MsgWelcome  = "welcome"
	MsgState    = "state"
	MsgRoundEnd = "round_end"
)

// BroadcastDivisor controls how often state is pushed: one state message
// per this many simulation ticks.
const BroadcastDivisor = 3

// Envelope wraps every message with its type tag.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello is the client's opening message.
type Hello struct {
	Name string `json:"name"`
}

// Start requests a new round. Zero or missing fields fall back to the
// server's configured defaults.
type Start struct {
	TimeLimitSeconds int `json:"time_limit_seconds"`
}

// Gesture carries one stabilized classifier label.
type Gesture struct {
	Label string `json:"label"`
}

// FieldGeometry tells the client how to scale game units onto its canvas.
type FieldGeometry struct {
	SpawnY          float64 `json:"spawn_y"`
	CatchBandTop    float64 `json:"catch_band_top"`
	CatchBandBottom float64 `json:"catch_band_bottom"`
	DespawnY        float64 `json:"despawn_y"`
}

// Welcome acknowledges a hello with everything the client needs to draw.
type Welcome struct {
	TickRate int           `json:"tick_rate"`
	Lanes    int           `json:"lanes"`
	Field    FieldGeometry `json:"field"`
}

// RoundEnd reports a finished round.
type RoundEnd struct {
	Score        int    `json:"score"`
	Level        int    `json:"level"`
	DurationSecs int    `json:"duration_secs"`
	Reason       string `json:"reason"`
}

// Encode wraps a payload in an envelope and marshals it.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("web: cannot encode envelope without a type")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("web: cannot marshal %s payload: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope unmarshals the outer envelope.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("web: cannot decode empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// DecodePayload unmarshals an envelope's payload into a concrete type.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("web: empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}
