package catcher

import (
	"fmt"

	"github.com/clapcampus/tmgame3/internal/core"
)

// Visual characters for rendering
const (
	appleRune   = '●'
	grapeRune   = '◆'
	bombRune    = '◉'
	dividerRune = '·'
)

const hudHeight = 2

// Render draws the current round state into the screen buffer.
// Field coordinates (game units, 0..despawn) are scaled to the rows below
// the HUD; the three lanes split the width evenly.
func (r *Round) Render(dst *core.Screen) {
	dst.Clear()

	snap := r.Snapshot()
	w := dst.Width()
	h := dst.Height()

	r.renderHUD(dst, snap)

	fieldRows := h - hudHeight
	if fieldRows <= 0 || w < core.LaneCount {
		return
	}
	laneWidth := w / core.LaneCount

	// Lane dividers
	for lane := 1; lane < core.LaneCount; lane++ {
		for y := hudHeight; y < h; y++ {
			dst.SetCell(lane*laneWidth, y, dividerRune, core.ColorGray)
		}
	}

	// Falling items. Items above the visible field (negative y) are not
	// drawn yet.
	for _, it := range snap.Items {
		if it.Y < 0 {
			continue
		}
		row := r.fieldRow(it.Y, fieldRows)
		x := laneCenter(it.Lane, laneWidth)
		switch it.Kind {
		case "grape":
			dst.SetCell(x, row, grapeRune, core.ColorMagenta)
		case "bomb":
			dst.SetCell(x, row, bombRune, core.ColorBrightYellow)
		default:
			dst.SetCell(x, row, appleRune, core.ColorBrightRed)
		}
	}

	// Basket sits at the center of the catch band.
	basketY := r.fieldRow((r.cfg.Field.CatchBandTop+r.cfg.Field.CatchBandBottom)/2, fieldRows)
	basketX := laneCenter(snap.BasketLane, laneWidth)
	dst.SetCell(basketX-1, basketY, '╚', core.ColorYellow)
	dst.SetCell(basketX, basketY, '═', core.ColorYellow)
	dst.SetCell(basketX+1, basketY, '╝', core.ColorYellow)

	if !snap.Active {
		r.renderOverlay(dst,
			"ROUND OVER",
			fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	}
}

// renderHUD draws the top status bar and separator.
func (r *Round) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Score: %d   Level: %d   Time: %ds ", snap.Score, snap.Level, snap.TimeLeft)
	dst.DrawText(1, 0, hud)
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// fieldRow scales a field y coordinate to a screen row below the HUD.
func (r *Round) fieldRow(y float64, fieldRows int) int {
	despawn := r.cfg.Field.DespawnY
	if despawn <= 0 {
		return hudHeight
	}
	row := int(y / despawn * float64(fieldRows))
	return hudHeight + core.Clamp(row, 0, fieldRows-1)
}

// laneCenter returns the screen column at the middle of a lane.
func laneCenter(lane, laneWidth int) int {
	return lane*laneWidth + laneWidth/2
}

// renderOverlay draws a centered two-line message box.
func (r *Round) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(line1))/2, boxY+1, line1)
	dst.DrawText(boxX+(boxW-len(line2))/2, boxY+3, line2)
}
