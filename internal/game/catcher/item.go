package catcher

// ItemKind identifies what kind of object is falling.
type ItemKind int

const (
	KindApple ItemKind = iota
	KindGrape
	KindBomb
)

// String returns a human-readable name for the kind.
func (k ItemKind) String() string {
	switch k {
	case KindApple:
		return "apple"
	case KindGrape:
		return "grape"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// FallingItem is one falling object. Lane and Kind are fixed at spawn;
// Y grows each tick while the item is active. Active flips to false at
// most once (catch, bomb hit, or leaving the field) and the item is
// purged before the next tick's collision pass.
type FallingItem struct {
	Lane   int
	Y      float64
	Kind   ItemKind
	Active bool
}
