package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Layout is the field geometry derived from the viewport bounds. It is a
// pure function of bounds, brick count and layout config.
type Layout struct {
	Bounds core.Rect

	// Walls is the rectangle whose left, upper and right sides are walls.
	Walls core.Rect

	Columns   int
	BrickSize core.Size
	Bricks    []core.Rect // Indexed like the session's bricks

	Paddle     core.Rect // Initial paddle, centered horizontally
	PaddleMinX float64   // Range of the paddle center
	PaddleMaxX float64

	BallRadius float64
	ParkY      float64 // Center y of a parked ball
}

// ComputeLayout arranges count bricks in rows of cfg.Columns starting at
// the top offset, with the paddle near the bottom of bounds.
func ComputeLayout(bounds core.Rect, count int, cfg config.BreakoutLayout) Layout {
	cols := max(cfg.Columns, 1)
	spacing := cfg.Spacing
	w, h := bounds.W, bounds.H

	brick := core.Size{
		W: max((w-spacing*float64(cols+1))/float64(cols), 0),
		H: h * cfg.BrickHeightRatio,
	}
	top := max(cfg.TopOffset, h*cfg.TopOffsetRatio)

	l := Layout{
		Bounds:    bounds,
		Walls:     bounds.Inset(cfg.WallInset, cfg.WallInset),
		Columns:   cols,
		BrickSize: brick,
		Bricks:    make([]core.Rect, max(count, 0)),
	}

	for i := range l.Bricks {
		row, col := i/cols, i%cols
		x := bounds.MinX() + spacing + float64(col)*(brick.W+spacing)
		y := bounds.MinY() + top + float64(row)*(brick.H+spacing)
		l.Bricks[i] = core.NewRect(x, y, brick.W, brick.H)
	}

	paddle := core.Size{W: brick.W * cfg.PaddleWidthRatio, H: brick.H * cfg.PaddleHeightRatio}
	center := core.V(bounds.MidX(), bounds.MaxY()-h*cfg.PaddleBottomRatio)
	l.Paddle = core.RectAround(center, paddle)
	l.PaddleMinX = bounds.MinX() + paddle.W/2
	l.PaddleMaxX = max(bounds.MaxX()-paddle.W/2, l.PaddleMinX)

	l.BallRadius = brick.H / 2
	l.ParkY = center.Y() - paddle.H/2 - l.BallRadius
	return l
}

// Row returns the grid row of brick i.
func (l Layout) Row(i int) int {
	return i / max(l.Columns, 1)
}

// ClampPaddleX bounds a paddle center x to the allowed range.
func (l Layout) ClampPaddleX(x float64) float64 {
	return core.ClampF(x, l.PaddleMinX, l.PaddleMaxX)
}
