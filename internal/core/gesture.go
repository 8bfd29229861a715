package core

// Gesture labels form the fixed vocabulary emitted by the pose classifier.
// Lane layout and labels are coupled 1:1 by position: left=0, center=1,
// right=2.
const (
	GestureLeft   = "left"
	GestureCenter = "center"
	GestureRight  = "right"
)

// LaneCount is the number of horizontal lanes in the play field.
const LaneCount = 3

// LaneFor maps a gesture label to its basket lane.
// Unrecognized labels return ok=false and must be ignored by callers.
func LaneFor(label string) (lane int, ok bool) {
	switch label {
	case GestureLeft:
		return 0, true
	case GestureCenter:
		return 1, true
	case GestureRight:
		return 2, true
	}
	return 0, false
}

// LabelFor maps a lane back to its gesture label. Used by the keyboard
// fallback, which produces lanes directly from arrow keys.
func LabelFor(lane int) string {
	switch lane {
	case 0:
		return GestureLeft
	case 1:
		return GestureCenter
	case 2:
		return GestureRight
	}
	return ""
}
