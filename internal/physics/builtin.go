package physics

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

const (
	// contactSlop keeps a body that rests exactly on an edge in contact.
	contactSlop = 1e-6
	maxSubsteps = 256
)

func init() {
	Register("builtin", "Sub-stepped circle-vs-segment solver", func(opts Options) World {
		return newBuiltinWorld(opts)
	})
}

type staticBoundary struct {
	id     string
	edges  []Segment
	bounds core.Rect
}

type pendingPush struct {
	body *Body
	push Push
}

// builtinWorld integrates with semi-implicit Euler and resolves collisions
// after every substep by pushing bodies out of edges along the contact
// normal and reflecting the normal velocity component.
type builtinWorld struct {
	opts       Options
	bodies     []*Body
	gravity    core.Vec
	elasticity float64
	frame      core.Rect

	boundaries []*staticBoundary
	byID       map[string]*staticBoundary

	pushes   []pendingPush
	contacts *contactTracker
}

func newBuiltinWorld(opts Options) *builtinWorld {
	return &builtinWorld{
		opts:       opts.withDefaults(),
		elasticity: 1,
		byID:       make(map[string]*staticBoundary),
		contacts:   newContactTracker(),
	}
}

func (w *builtinWorld) AddBody(b *Body) {
	if b == nil || w.HasBody(b) {
		return
	}
	w.bodies = append(w.bodies, b)
}

func (w *builtinWorld) RemoveBody(b *Body) {
	i := slices.Index(w.bodies, b)
	if i < 0 {
		return
	}
	w.bodies = slices.Delete(w.bodies, i, i+1)
	w.contacts.dropBody(b)
	w.pushes = slices.DeleteFunc(w.pushes, func(p pendingPush) bool { return p.body == b })
}

func (w *builtinWorld) HasBody(b *Body) bool {
	return slices.Contains(w.bodies, b)
}

func (w *builtinWorld) SetRadius(b *Body, r float64) {
	if b != nil {
		b.Radius = r
	}
}

func (w *builtinWorld) SetGravity(g core.Vec) { w.gravity = g }

func (w *builtinWorld) SetElasticity(e float64) { w.elasticity = core.ClampF(e, 0, 1) }

func (w *builtinWorld) Elasticity() float64 { return w.elasticity }

func (w *builtinWorld) SetFrame(r core.Rect) { w.frame = r }

func (w *builtinWorld) SetBoundary(id string, g Geometry) {
	if g == nil {
		w.RemoveBoundary(id)
		return
	}
	sb, ok := w.byID[id]
	if !ok {
		sb = &staticBoundary{id: id}
		w.byID[id] = sb
		w.boundaries = append(w.boundaries, sb)
	}
	sb.edges = g.Edges()
	sb.bounds = g.Bounds()
}

func (w *builtinWorld) RemoveBoundary(id string) {
	if _, ok := w.byID[id]; !ok {
		return
	}
	delete(w.byID, id)
	w.boundaries = slices.DeleteFunc(w.boundaries, func(sb *staticBoundary) bool { return sb.id == id })
	w.contacts.dropBoundary(id)
}

func (w *builtinWorld) ClearBoundaries() {
	w.boundaries = nil
	clear(w.byID)
	w.contacts.clear()
}

func (w *builtinWorld) Push(b *Body, p Push) {
	if !w.HasBody(b) {
		return
	}
	w.pushes = append(w.pushes, pendingPush{body: b, push: p})
}

func (w *builtinWorld) Step(dt float64) []Contact {
	if dt <= 0 {
		return nil
	}

	for _, p := range w.pushes {
		p.body.Velocity = p.body.Velocity.Add(p.push.Impulse(w.opts.ImpulseScale).Mul(1 / p.body.Mass))
	}
	w.pushes = w.pushes[:0]

	for _, b := range w.bodies {
		b.Velocity = b.Velocity.Add(w.gravity.Mul(dt))

		n := w.substeps(b, dt)
		h := dt / float64(n)
		for range n {
			b.Position = b.Position.Add(b.Velocity.Mul(h))
			w.collide(b)
		}
	}

	return w.contacts.flush()
}

// substeps returns how many substeps keep b's travel within
// SubstepTravel radii per substep.
func (w *builtinWorld) substeps(b *Body, dt float64) int {
	travel := b.Velocity.Len() * dt
	limit := w.opts.SubstepTravel * b.Radius
	if travel == 0 || limit <= 0 {
		return 1
	}
	n := int(math.Ceil(travel / limit))
	return core.Clamp(n, 1, maxSubsteps)
}

func (w *builtinWorld) collide(b *Body) {
	reach := b.Radius + contactSlop
	for _, sb := range w.boundaries {
		if !sb.bounds.Inset(-reach, -reach).Contains(b.Position) {
			continue
		}
		touching := false
		for _, e := range sb.edges {
			if w.resolveEdge(b, e) {
				touching = true
			}
		}
		if touching {
			w.contacts.touch(b, sb.id)
		}
	}
	w.clampToFrame(b)
}

// resolveEdge separates b from e and reflects its velocity.
// It reports whether b touches e.
func (w *builtinWorld) resolveEdge(b *Body, e Segment) bool {
	q := e.ClosestPoint(b.Position)
	d := b.Position.Sub(q)
	dist := d.Len()
	if dist >= b.Radius+contactSlop {
		return false
	}
	if dist >= b.Radius {
		return true
	}

	var n core.Vec
	if dist > 1e-12 {
		n = d.Mul(1 / dist)
	} else {
		n = e.Normal()
		if b.Velocity.Dot(n) > 0 {
			n = n.Mul(-1)
		}
	}

	b.Position = q.Add(n.Mul(b.Radius))
	if vn := b.Velocity.Dot(n); vn < 0 {
		b.Velocity = b.Velocity.Sub(n.Mul((1 + w.elasticity) * vn))
	}
	return true
}

func (w *builtinWorld) clampToFrame(b *Body) {
	if w.frame.IsEmpty() {
		return
	}
	f, r, e := w.frame, b.Radius, w.elasticity

	if b.Position[0]-r < f.MinX() {
		b.Position[0] = f.MinX() + r
		if b.Velocity[0] < 0 {
			b.Velocity[0] = -e * b.Velocity[0]
		}
	} else if b.Position[0]+r > f.MaxX() {
		b.Position[0] = f.MaxX() - r
		if b.Velocity[0] > 0 {
			b.Velocity[0] = -e * b.Velocity[0]
		}
	}

	if b.Position[1]-r < f.MinY() {
		b.Position[1] = f.MinY() + r
		if b.Velocity[1] < 0 {
			b.Velocity[1] = -e * b.Velocity[1]
		}
	} else if b.Position[1]+r > f.MaxY() {
		b.Position[1] = f.MaxY() - r
		if b.Velocity[1] > 0 {
			b.Velocity[1] = -e * b.Velocity[1]
		}
	}
}
