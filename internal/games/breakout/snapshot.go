package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BrickView is the render state of one brick.
type BrickView struct {
	Index int        `json:"index"`
	Row   int        `json:"row"`
	Rect  core.Rect  `json:"rect"`
	State BrickState `json:"state"`
	Fade  float64    `json:"fade"`
}

// BallView is the render state of one ball.
type BallView struct {
	Center core.Vec `json:"center"`
	Radius float64  `json:"radius"`
	Active bool     `json:"active"`
}

// View is everything a renderer needs for one frame. It shares no memory
// with the session.
type View struct {
	State     State       `json:"state"`
	Bounds    core.Rect   `json:"bounds"`
	Walls     core.Rect   `json:"walls"`
	Paddle    core.Rect   `json:"paddle"`
	Bricks    []BrickView `json:"bricks"`
	Balls     []BallView  `json:"balls"`
	Score     int         `json:"score"`
	BallsUsed int         `json:"balls_used"`
	Destroyed int         `json:"destroyed"`
	Tick      uint64      `json:"tick"`
}

// View returns the current render state. Every brick of the game is
// listed with its state, removed ones included. In the Won state the field
// is empty: no paddle, balls or bricks.
func (s *Session) View() View {
	v := View{
		State:     s.state,
		Bounds:    s.bounds,
		Walls:     s.geom.Walls,
		Paddle:    s.paddle,
		Score:     s.score,
		BallsUsed: s.ballsUsed,
		Destroyed: s.destroyed,
		Tick:      s.tick,
	}
	if s.state == StateWon {
		return v
	}

	v.Bricks = make([]BrickView, 0, len(s.bricks))
	for _, b := range s.bricks {
		v.Bricks = append(v.Bricks, BrickView{
			Index: b.Index,
			Row:   s.geom.Row(b.Index),
			Rect:  b.Rect,
			State: b.State,
			Fade:  b.Fade,
		})
	}

	v.Balls = make([]BallView, len(s.balls))
	for i, b := range s.balls {
		v.Balls[i] = BallView{Center: b.Body.Position, Radius: b.Body.Radius, Active: b.Active}
	}
	return v
}

// Snapshot is the game state in primitive types, for determinism checks.
type Snapshot struct {
	Tick      uint64
	State     State
	Score     int
	BallsUsed int
	Destroyed int
	PaddleX   float64

	// Brick states by index.
	BrickData []int

	// Each ball is 5 values: X, Y, VX, VY, Active.
	BallData []float64

	RNGState uint64
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() Snapshot {
	bricks := make([]int, len(s.bricks))
	for i, b := range s.bricks {
		bricks[i] = int(b.State)
	}

	balls := make([]float64, 0, len(s.balls)*5)
	for _, b := range s.balls {
		active := 0.0
		if b.Active {
			active = 1
		}
		balls = append(balls,
			b.Body.Position.X(), b.Body.Position.Y(),
			b.Body.Velocity.X(), b.Body.Velocity.Y(),
			active)
	}

	return Snapshot{
		Tick:      s.tick,
		State:     s.state,
		Score:     s.score,
		BallsUsed: s.ballsUsed,
		Destroyed: s.destroyed,
		PaddleX:   s.paddle.MidX(),
		BrickData: bricks,
		BallData:  balls,
		RNGState:  s.rng.state,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallsUsed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	return h*31 + snap.RNGState
}
