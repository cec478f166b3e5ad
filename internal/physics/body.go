// Package physics is the 2D simulation behind Breakout: circular bodies
// bouncing elastically off named static boundaries inside a rectangular
// frame, plus the registry that maps boundary names to callbacks.
//
// Two engines implement World: a small custom solver ("builtin") and an
// adapter over the Chipmunk2D port ("chipmunk").
package physics

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Body is a dynamic circle. Position is the center.
// Engines write Position and Velocity back after every step while the body
// is in the world; callers may change them freely while it is not.
type Body struct {
	ID       int
	Position core.Vec
	Velocity core.Vec
	Radius   float64
	Mass     float64
}

// NewBody creates a body at rest.
func NewBody(id int, center core.Vec, radius, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{ID: id, Position: center, Radius: radius, Mass: mass}
}

// Bounds returns the axis-aligned box enclosing the body.
func (b *Body) Bounds() core.Rect {
	return core.RectAround(b.Position, core.Size{W: 2 * b.Radius, H: 2 * b.Radius})
}

// Stop zeroes the velocity.
func (b *Body) Stop() {
	b.Velocity = core.Vec{}
}

// Push is an instantaneous directional impulse. Worlds apply a push once at
// the start of the next step and then discard it.
type Push struct {
	Magnitude float64
	Angle     float64 // Radians; 0 points along +X, π/2 along +Y (down)
}

// Direction returns the unit vector of the push angle.
func (p Push) Direction() core.Vec {
	return core.V(math.Cos(p.Angle), math.Sin(p.Angle))
}

// Impulse returns the push as an impulse vector for the given scale.
func (p Push) Impulse(scale float64) core.Vec {
	return p.Direction().Mul(p.Magnitude * scale)
}

// Contact identifies a body touching a named boundary.
type Contact struct {
	Body     *Body
	Boundary string
}
