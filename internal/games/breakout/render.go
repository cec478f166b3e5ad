package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	BrickChar    = '█'
	FadingChar   = '▒'
	VanishChar   = '░'
	WallVertChar = '│'
	WallTopChar  = '─'
	WallTLChar   = '┌'
	WallTRChar   = '┐'
)

// CellScale is the size of one terminal cell in world units. Cells are
// about twice as tall as wide.
type CellScale struct {
	W, H float64
}

// DefaultCellScale maps one cell to 8 by 16 world units.
var DefaultCellScale = CellScale{W: 8, H: 16}

// Bounds returns the world bounds covered by a cols by rows cell area.
func (c CellScale) Bounds(cols, rows int) core.Rect {
	return core.NewRect(0, 0, float64(cols)*c.W, float64(rows)*c.H)
}

// cell converts a world point to a cell coordinate relative to origin.
func (c CellScale) cell(origin, p core.Vec) (int, int) {
	return int(math.Floor((p.X() - origin.X()) / c.W)), int(math.Floor((p.Y() - origin.Y()) / c.H))
}

// span converts a world rect to the half-open cell range it covers. Every
// non-empty rect covers at least one cell.
func (c CellScale) span(origin core.Vec, r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = c.cell(origin, r.UpperLeft())
	x1 = int(math.Ceil((r.MaxX() - origin.X()) / c.W))
	y1 = int(math.Ceil((r.MaxY() - origin.Y()) / c.H))
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

// Render draws v into dst, offset by top rows. World units are mapped to
// cells with scale; the HUD and overlays are left to the host.
func Render(v View, dst *core.Screen, scale CellScale, top int) {
	origin := v.Bounds.UpperLeft().Sub(core.V(0, float64(top)*scale.H))

	if !v.Walls.IsEmpty() {
		x0, y0, x1, y1 := scale.span(origin, v.Walls)
		x1-- // last covered column
		dst.DrawHLine(x0, y0, x1-x0+1, WallTopChar, core.ColorGray)
		dst.DrawVLine(x0, y0, y1-y0, WallVertChar, core.ColorGray)
		dst.DrawVLine(x1, y0, y1-y0, WallVertChar, core.ColorGray)
		dst.SetColor(x0, y0, WallTLChar, core.ColorGray)
		dst.SetColor(x1, y0, WallTRChar, core.ColorGray)
	}

	for _, b := range v.Bricks {
		if b.State == BrickRemoved {
			continue
		}
		x0, y0, x1, y1 := scale.span(origin, b.Rect)
		glyph, color := BrickChar, core.RowColor(b.Row)
		if b.State == BrickDestroying {
			glyph, color = FadingChar, core.ColorGray
			if b.Fade < 0.5 {
				glyph = VanishChar
			}
		}
		dst.FillRect(x0, y0, x1, y1, glyph, color)
	}

	if !v.Paddle.IsEmpty() {
		x0, y0, x1, y1 := scale.span(origin, v.Paddle)
		dst.FillRect(x0, y0, x1, y1, PaddleChar, core.ColorBlue)
	}

	for _, b := range v.Balls {
		x, y := scale.cell(origin, b.Center)
		color := core.ColorRed
		if !b.Active {
			color = core.ColorBrightRed
		}
		dst.SetColor(x, y, BallChar, color)
	}
}

// Status returns the HUD line for v.
func Status(v View) string {
	return fmt.Sprintf("Score: %d  Balls used: %d", v.Score, v.BallsUsed)
}

// WinMessage returns the congratulation shown after a win.
func WinMessage(v View) string {
	return fmt.Sprintf("Congratulations! You used %d balls to complete the game", v.BallsUsed)
}
