package physics

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Geometry is the shape of a static boundary.
// Every shape is reduced to line segments for collision.
type Geometry interface {
	Edges() []Segment
	Bounds() core.Rect
}

// Segment is a line from A to B.
type Segment struct {
	A, B core.Vec
}

func (s Segment) Edges() []Segment {
	return []Segment{s}
}

func (s Segment) Bounds() core.Rect {
	minX, maxX := math.Min(s.A.X(), s.B.X()), math.Max(s.A.X(), s.B.X())
	minY, maxY := math.Min(s.A.Y(), s.B.Y()), math.Max(s.A.Y(), s.B.Y())
	return core.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// ClosestPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPoint(p core.Vec) core.Vec {
	ab := s.B.Sub(s.A)
	lenSq := ab.LenSqr()
	if lenSq == 0 {
		return s.A
	}
	t := core.ClampF(p.Sub(s.A).Dot(ab)/lenSq, 0, 1)
	return s.A.Add(ab.Mul(t))
}

// Normal returns a unit normal of the segment. Its sign is arbitrary.
func (s Segment) Normal() core.Vec {
	d := s.B.Sub(s.A)
	n := core.V(-d.Y(), d.X())
	if n.Len() == 0 {
		return core.V(0, -1)
	}
	return n.Normalize()
}

// Box is a closed rectangle.
type Box struct {
	Rect core.Rect
}

func (b Box) Edges() []Segment {
	r := b.Rect
	return []Segment{
		{A: r.UpperLeft(), B: r.UpperRight()},
		{A: r.UpperRight(), B: r.LowerRight()},
		{A: r.LowerRight(), B: r.LowerLeft()},
		{A: r.LowerLeft(), B: r.UpperLeft()},
	}
}

func (b Box) Bounds() core.Rect {
	return b.Rect
}

// Ellipse is the oval inscribed in Rect, approximated by a closed polygon
// of Segments edges.
type Ellipse struct {
	Rect     core.Rect
	Segments int
}

const minEllipseSegments = 8

// Points returns the polygon vertices in order around the center.
func (e Ellipse) Points() []core.Vec {
	n := max(e.Segments, minEllipseSegments)
	c := e.Rect.Center()
	a, b := e.Rect.W/2, e.Rect.H/2
	pts := make([]core.Vec, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = core.V(c.X()+a*math.Cos(theta), c.Y()+b*math.Sin(theta))
	}
	return pts
}

func (e Ellipse) Edges() []Segment {
	pts := e.Points()
	edges := make([]Segment, len(pts))
	for i := range pts {
		edges[i] = Segment{A: pts[i], B: pts[(i+1)%len(pts)]}
	}
	return edges
}

func (e Ellipse) Bounds() core.Rect {
	return e.Rect
}
