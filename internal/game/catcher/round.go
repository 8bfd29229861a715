// Package catcher implements the fruit catcher round: a three-lane
// catching game driven by discrete pose gestures. The round owns all
// mutable game state; an external frame loop feeds at most one gesture
// per frame, advances the simulation with Tick, and reads a Snapshot to
// draw.
package catcher

import (
	"math/rand"
	"time"

	"github.com/coder/quartz"

	"github.com/clapcampus/tmgame3/internal/config"
	"github.com/clapcampus/tmgame3/internal/core"
)

// Rand is the random source used for spawn lane and kind selection.
// *math/rand.Rand satisfies it; tests supply scripted sequences to
// validate the weighted-kind thresholds exactly.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// EndObserver is notified exactly once per round termination with the
// final score and the level at the moment the round ended.
type EndObserver func(finalScore, finalLevel int)

// Options configures a round at start. Zero or negative values fall back
// to the loaded configuration (and ultimately to a 60 second limit).
type Options struct {
	TimeLimitSeconds int
}

// Round is the fruit catcher state machine. It has exactly two externally
// visible modes, active and inactive; Start is the only way in and Stop
// the only way out (reached from timeout, bomb collision, or an external
// abort). A Round is reusable across rounds: Start fully resets state.
type Round struct {
	cfg   config.CatcherConfig
	clock quartz.Clock
	rng   Rand
	onEnd EndObserver

	score      int
	level      int
	timeLimit  int
	active     bool
	basketLane int
	items      []*FallingItem
	spawnTimer int
	startedAt  time.Time
}

// New creates a round. Construction runs no game logic; call Start to
// begin play. A nil clock falls back to the real clock and a nil rng to a
// time-seeded source.
func New(cfg config.CatcherConfig, clock quartz.Clock, rng Rand) *Round {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Round{
		cfg:   cfg,
		clock: clock,
		rng:   rng,
	}
}

// OnRoundEnd registers the single round-end observer. It replaces any
// previously registered observer.
func (r *Round) OnRoundEnd(fn EndObserver) {
	r.onEnd = fn
}

// Active reports whether a round is in progress.
func (r *Round) Active() bool {
	return r.active
}

// Start resets all mutable state and arms the round clock.
func (r *Round) Start(opts Options) {
	limit := opts.TimeLimitSeconds
	if limit <= 0 {
		limit = r.cfg.Round.TimeLimitSeconds
	}
	if limit <= 0 {
		limit = 60
	}

	r.score = 0
	r.level = 1
	r.timeLimit = limit
	r.basketLane = 1 // center lane
	r.items = r.items[:0]
	r.spawnTimer = 0
	r.startedAt = r.clock.Now()
	r.active = true
}

// Stop ends the round. The observer fires only on the active→inactive
// edge, so repeated calls cannot double-notify.
func (r *Round) Stop() {
	if !r.active {
		return
	}
	r.active = false
	if r.onEnd != nil {
		r.onEnd(r.score, r.level)
	}
}

// ApplyGesture moves the basket to the lane named by the label.
// Unrecognized labels are ignored; inactive rounds ignore all gestures.
// The move is an instantaneous teleport: no easing, no validation against
// the previous lane.
func (r *Round) ApplyGesture(label string) {
	if !r.active {
		return
	}
	if lane, ok := core.LaneFor(label); ok {
		r.basketLane = lane
	}
}

// Tick advances the simulation by one frame: derive the level from
// elapsed time, stop on timeout, spawn on the level-paced interval, then
// move every active item and resolve catch-band collisions before purging
// inactive items. No-op while inactive.
func (r *Round) Tick() {
	if !r.active {
		return
	}

	elapsed := r.clock.Since(r.startedAt).Seconds()
	r.level = r.levelFor(elapsed)

	if elapsed >= float64(r.timeLimit) {
		r.Stop()
		return
	}

	r.spawnTimer++
	if r.spawnTimer > r.spawnInterval() {
		r.spawnItem()
		r.spawnTimer = 0
	}

	speed := r.fallSpeed()
	for _, it := range r.items {
		if !it.Active {
			continue
		}
		it.Y += speed
		switch {
		case r.inCatchBand(it.Y) && it.Lane == r.basketLane:
			r.resolveCatch(it)
		case it.Y > r.cfg.Field.DespawnY:
			it.Active = false // missed, no penalty
		}
		if !r.active {
			break // a bomb ended the round mid-pass
		}
	}

	r.purge()
}

// levelFor derives the level purely from elapsed seconds.
func (r *Round) levelFor(elapsed float64) int {
	switch {
	case elapsed >= r.cfg.Levels.Level3AtSeconds:
		return 3
	case elapsed >= r.cfg.Levels.Level2AtSeconds:
		return 2
	default:
		return 1
	}
}

// spawnInterval returns the tick count between spawns for the current
// level, floored so higher levels cannot spawn arbitrarily fast.
func (r *Round) spawnInterval() int {
	interval := r.cfg.Spawn.BaseIntervalTicks - r.level*r.cfg.Spawn.StepTicks
	return core.Max(r.cfg.Spawn.MinIntervalTicks, interval)
}

// fallSpeed returns the per-tick vertical advance for the current level.
func (r *Round) fallSpeed() float64 {
	return r.cfg.Speed.Base + float64(r.level)*r.cfg.Speed.PerLevel
}

func (r *Round) inCatchBand(y float64) bool {
	return y >= r.cfg.Field.CatchBandTop && y < r.cfg.Field.CatchBandBottom
}

// spawnItem adds one item above the visible field. Lane is uniform over
// the three lanes; kind comes from a single weighted roll. The bomb
// branch is checked first and only opens at the configured minimum level,
// which widens the grape slice at level 1.
func (r *Round) spawnItem() {
	lane := r.rng.Intn(core.LaneCount)
	roll := r.rng.Float64()

	kind := KindApple
	switch {
	case r.level >= r.cfg.Spawn.BombMinLevel && roll > r.cfg.Spawn.BombThreshold:
		kind = KindBomb
	case roll > r.cfg.Spawn.GrapeThreshold:
		kind = KindGrape
	}

	r.items = append(r.items, &FallingItem{
		Lane:   lane,
		Y:      r.cfg.Field.SpawnY,
		Kind:   kind,
		Active: true,
	})
}

// resolveCatch handles a basket collision: the item resolves exactly
// once, a bomb ends the round with the score untouched, fruit scores.
func (r *Round) resolveCatch(it *FallingItem) {
	it.Active = false
	switch it.Kind {
	case KindBomb:
		r.Stop()
	case KindGrape:
		r.score += r.cfg.Scoring.Grape
	default:
		r.score += r.cfg.Scoring.Apple
	}
}

// purge drops inactive items, keeping spawn order for the survivors.
func (r *Round) purge() {
	kept := r.items[:0]
	for _, it := range r.items {
		if it.Active {
			kept = append(kept, it)
		}
	}
	// Release tail references so purged items can be collected.
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = kept
}
