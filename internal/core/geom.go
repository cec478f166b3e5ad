// Package core provides the geometry, input and screen primitives shared by
// the physics engines, the game session and the terminal host.
// It has no terminal dependencies so game logic stays pure and testable.
package core

import "github.com/go-gl/mathgl/mgl64"

// Vec is a 2D point or direction in world units. Y grows downward.
type Vec = mgl64.Vec2

// V builds a Vec from its components.
func V(x, y float64) Vec {
	return Vec{x, y}
}

// Size is a width/height pair in world units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle with the given origin and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround creates a rectangle of the given size centered on c.
func RectAround(c Vec, s Size) Rect {
	return Rect{X: c.X() - s.W/2, Y: c.Y() - s.H/2, W: s.W, H: s.H}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }
func (r Rect) MidX() float64 { return r.X + r.W/2 }
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return V(r.MidX(), r.MidY())
}

// UpperLeft, UpperRight, LowerLeft and LowerRight return the corners.
// "Upper" is the smaller Y since Y grows downward.
func (r Rect) UpperLeft() Vec  { return V(r.MinX(), r.MinY()) }
func (r Rect) UpperRight() Vec { return V(r.MaxX(), r.MinY()) }
func (r Rect) LowerLeft() Vec  { return V(r.MinX(), r.MaxY()) }
func (r Rect) LowerRight() Vec { return V(r.MaxX(), r.MaxY()) }

// Inset shrinks the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values grow it. A rectangle inset past its own size
// collapses to zero size around its center.
func (r Rect) Inset(dx, dy float64) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
	if out.W < 0 {
		out.X, out.W = r.MidX(), 0
	}
	if out.H < 0 {
		out.Y, out.H = r.MidY(), 0
	}
	return out
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// WithCenter returns a rectangle of the same size centered on c.
func (r Rect) WithCenter(c Vec) Rect {
	return RectAround(c, r.Size())
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside the rectangle.
// The minimum edges are inclusive and the maximum edges exclusive.
func (r Rect) Contains(p Vec) bool {
	return p.X() >= r.MinX() && p.X() < r.MaxX() &&
		p.Y() >= r.MinY() && p.Y() < r.MaxY()
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.MinX() >= other.MaxX() || other.MinX() >= r.MaxX() {
		return false
	}
	if r.MinY() >= other.MaxY() || other.MinY() >= r.MaxY() {
		return false
	}
	return true
}

// ContainsRect reports whether other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.MinX() >= r.MinX() && other.MaxX() <= r.MaxX() &&
		other.MinY() >= r.MinY() && other.MaxY() <= r.MaxY()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
