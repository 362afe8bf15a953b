package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellChars = 2 // Each board cell is drawn two characters wide

	wellOriginX = 8
	wellOriginY = 4
	hudOriginX  = wellOriginX + BoardWidth*cellChars + 4

	// MinScreenW and MinScreenH are the smallest screen the full layout fits in.
	MinScreenW = BoardWidth*cellChars + 18
	MinScreenH = BoardHeight + 8
)

const tooSmallMessage = "Enlarge the terminal window."

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot())
}

// RenderSnapshot draws a snapshot to the screen. The screen is cleared first.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	dst.DrawBox(core.NewRect(0, 0, dst.Width(), dst.Height()), core.ColorGray)

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, tooSmallMessage, core.ColorDefault)
		return
	}

	renderBanner(dst, snap)
	renderWell(dst, snap)
	renderActive(dst, snap)
	renderTrail(dst, snap)
	renderHUD(dst, snap, hudOriginX, wellOriginY)
	renderNext(dst, snap, hudOriginX, wellOriginY+6)

	if snap.Paused && snap.Phase == PhasePlaying {
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func renderBanner(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColor(2, 1, "Terminal Tetris", core.ColorCyan)

	switch snap.Phase {
	case PhaseTitle:
		dst.DrawText(2, 2, "Press Enter to start, 'q' to quit")
		dst.DrawText(2, 3, "Arrows move, Up rotates, Space hard drops.")
	case PhaseGameOver:
		dst.DrawTextColor(2, 2, "Game Over - press 'r' to restart or 'q' to quit", core.ColorBrightRed)
	default:
		dst.DrawText(2, 2, "Press 'q' to quit, 'p' to pause")
		dst.DrawText(2, 3, "Arrows move, Space hard drops.")
	}
}

func renderWell(dst *core.Screen, snap Snapshot) {
	frame := core.NewRect(wellOriginX-1, wellOriginY-1, BoardWidth*cellChars+2, BoardHeight+2)
	dst.DrawBox(frame, core.ColorDefault)

	flashing := [BoardHeight]bool{}
	for _, row := range snap.ClearedRows {
		if row >= 0 && row < BoardHeight {
			flashing[row] = true
		}
	}

	for row := range BoardHeight {
		y := wellOriginY + row
		for col := range BoardWidth {
			x := wellOriginX + col*cellChars
			v := snap.Cells[row][col]
			switch {
			case flashing[row] && v != CellEmpty:
				drawBlock(dst, x, y, core.ColorInverse)
			case flashing[row]:
				dst.DrawTextColor(x, y, "  ", core.ColorInverse)
			case v != CellEmpty:
				drawBlock(dst, x, y, cellColor(v))
			}
		}
	}
}

func renderActive(dst *core.Screen, snap Snapshot) {
	if !snap.Active.Active || snap.Phase != PhasePlaying {
		return
	}
	shape := shapeAt(snap.Active.Shape)
	if shape == nil {
		return
	}
	for _, cell := range shape.Cells(snap.Active.Rotation) {
		row := snap.Active.Row + cell[0]
		col := snap.Active.Col + cell[1]
		if !inBounds(row, col) {
			continue
		}
		drawBlock(dst, wellOriginX+col*cellChars, wellOriginY+row, shape.Color)
	}
}

func renderTrail(dst *core.Screen, snap Snapshot) {
	for _, p := range snap.DropTrail {
		if !inBounds(p.Row, p.Col) {
			continue
		}
		dst.DrawTextColor(wellOriginX+p.Col*cellChars, wellOriginY+p.Row, "::", core.ColorBrightWhite)
	}
}

func renderHUD(dst *core.Screen, snap Snapshot, x, y int) {
	c := core.ColorDefault
	if snap.HUDPulse {
		c = core.ColorBrightYellow
	}
	dst.DrawTextColor(x, y, fmt.Sprintf("Score     : %d", snap.Score), c)
	dst.DrawTextColor(x, y+1, fmt.Sprintf("High Score: %d", snap.HighScore), c)
	dst.DrawTextColor(x, y+2, fmt.Sprintf("Level     : %d", snap.Level), c)
	dst.DrawTextColor(x, y+3, fmt.Sprintf("Lines     : %d", snap.Lines), c)
	dst.DrawTextColor(x, y+4, fmt.Sprintf("Gravity   : %dms", snap.GravityMS), c)
}

func renderNext(dst *core.Screen, snap Snapshot, x, y int) {
	dst.DrawText(x, y, "Next Piece:")
	dst.DrawBox(core.NewRect(x, y+1, 10, 6), core.ColorDefault)

	shape := shapeAt(snap.Next)
	if shape == nil {
		return
	}
	offset := (4 - shape.Size) / 2
	for _, cell := range shape.Cells(0) {
		px := x + 1 + offset*cellChars + cell[1]*cellChars
		py := y + 2 + offset + cell[0]
		drawBlock(dst, px, py, shape.Color)
	}
}

func renderOverlay(dst *core.Screen, title, hint string) {
	cy := wellOriginY + BoardHeight/2 - 1
	cx := wellOriginX + (BoardWidth*cellChars-len(hint))/2
	dst.DrawTextColor(wellOriginX+(BoardWidth*cellChars-len(title))/2, cy, title, core.ColorBrightWhite)
	dst.DrawText(cx, cy+1, hint)
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetCell(x, y, '[', c)
	dst.SetCell(x+1, y, ']', c)
}

// cellColor maps a locked cell value to its piece color.
func cellColor(v int) core.Color {
	if s := shapeAt(v - 1); s != nil {
		return s.Color
	}
	return core.ColorDefault
}
