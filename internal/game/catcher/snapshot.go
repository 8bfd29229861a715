package catcher

// ItemView describes one active falling item for the presentation layer.
type ItemView struct {
	Lane int     `json:"lane"`
	Y    float64 `json:"y"`
	Kind string  `json:"kind"`
}

// Snapshot is a pure projection of round state: everything a presentation
// layer needs to draw a frame. Producing one performs no mutation.
type Snapshot struct {
	Active     bool       `json:"active"`
	Score      int        `json:"score"`
	Level      int        `json:"level"`
	TimeLeft   int        `json:"time_left"`
	BasketLane int        `json:"basket_lane"`
	Items      []ItemView `json:"items"`
}

// Snapshot returns the current render state. Remaining time is floored to
// whole seconds and never negative. Items appear in spawn order.
func (r *Round) Snapshot() Snapshot {
	remaining := 0
	if r.active {
		left := float64(r.timeLimit) - r.clock.Since(r.startedAt).Seconds()
		if left > 0 {
			remaining = int(left)
		}
	}

	items := make([]ItemView, 0, len(r.items))
	for _, it := range r.items {
		if !it.Active {
			continue
		}
		items = append(items, ItemView{
			Lane: it.Lane,
			Y:    it.Y,
			Kind: it.Kind.String(),
		})
	}

	return Snapshot{
		Active:     r.active,
		Score:      r.score,
		Level:      r.level,
		TimeLeft:   remaining,
		BasketLane: r.basketLane,
		Items:      items,
	}
}

// Hash returns a cheap hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := uint64(17)
	if s.Active {
		h = h*31 + 1
	}
	h = h*31 + uint64(s.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(s.TimeLeft)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.BasketLane) //#nosec G115 -- hash computation
	for _, it := range s.Items {
		h = h*31 + uint64(it.Lane) //#nosec G115 -- hash computation
		h = h*31 + uint64(it.Y*16) //#nosec G115 -- hash computation
		for _, c := range it.Kind {
			h = h*31 + uint64(c)
		}
	}
	return h
}
