package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// Launch angles. The y axis points down, so this range aims up the field,
// spreading from up-left to up-right.
const (
	LaunchAngleMin = 4 * math.Pi / 3
	LaunchAngleMax = 5 * math.Pi / 3
)

// missSlop makes a ball resting on the outer frame count as out.
const missSlop = 1e-6

// Ball is a session-owned body. A parked ball sits above the paddle and is
// not in the world; an active ball is in the world and nowhere else.
type Ball struct {
	Body   *physics.Body
	Active bool
}

// parkPosition is where parked balls wait.
func (s *Session) parkPosition() core.Vec {
	return core.V(s.paddle.MidX(), s.geom.ParkY)
}

// spawnBalls creates count parked balls.
func (s *Session) spawnBalls(count int) {
	s.balls = make([]*Ball, count)
	for i := range s.balls {
		body := physics.NewBody(i+1, s.parkPosition(), s.geom.BallRadius, s.cfg.Physics.BallMass)
		s.balls[i] = &Ball{Body: body}
	}
}

// removeBalls takes every ball out of the world and forgets it.
func (s *Session) removeBalls() {
	for _, b := range s.balls {
		s.world.RemoveBody(b.Body)
	}
	s.balls = nil
}

// park takes b out of the world and puts it back above the paddle.
func (s *Session) park(b *Ball) {
	s.world.RemoveBody(b.Body)
	b.Active = false
	b.Body.Stop()
	b.Body.Position = s.parkPosition()
}

// followPaddle keeps parked balls above the paddle.
func (s *Session) followPaddle() {
	for _, b := range s.balls {
		if !b.Active {
			b.Body.Position = s.parkPosition()
		}
	}
}

// resizeBalls applies the current ball radius. Parked balls are moved back
// above the paddle; active balls keep their position, velocity and any
// launch push not yet applied.
func (s *Session) resizeBalls() {
	r := s.geom.BallRadius
	for _, b := range s.balls {
		if !b.Active {
			b.Body.Radius = r
			b.Body.Position = s.parkPosition()
			continue
		}
		s.world.SetRadius(b.Body, r)
	}
}

// launchAngle draws a launch direction uniformly from
// [LaunchAngleMin, LaunchAngleMax).
func (s *Session) launchAngle() float64 {
	return s.rng.Range(LaunchAngleMin, LaunchAngleMax)
}

// Launch activates every parked ball and pushes it at a random angle. It
// returns the number of balls launched. Nothing happens unless the game is
// running.
func (s *Session) Launch() int {
	if s.state != StateRunning {
		return 0
	}
	launched := 0
	for _, b := range s.balls {
		if b.Active {
			continue
		}
		b.Active = true
		s.world.AddBody(b.Body)
		s.world.Push(b.Body, physics.Push{
			Magnitude: s.cfg.Physics.PushMagnitude,
			Angle:     s.launchAngle(),
		})
		launched++
	}
	if launched > 0 {
		s.log.Debug("balls launched", "count", launched)
	}
	return launched
}

// returnMissedBalls re-parks every active ball whose center has left the
// bounds inset by its radius. Each miss uses up one more ball.
func (s *Session) returnMissedBalls() {
	for _, b := range s.balls {
		if !b.Active {
			continue
		}
		r := b.Body.Radius + missSlop
		if s.bounds.Inset(r, r).Contains(b.Body.Position) {
			continue
		}
		s.park(b)
		s.ballsUsed++
		s.log.Debug("ball missed", "ball", b.Body.ID, "balls_used", s.ballsUsed)
	}
}

// countActive returns the number of balls in flight.
func (s *Session) countActive() int {
	n := 0
	for _, b := range s.balls {
		if b.Active {
			n++
		}
	}
	return n
}
