package physics

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// scriptedWorld is a World that returns canned contacts from Step.
type scriptedWorld struct {
	boundaries map[string]Geometry
	steps      [][]Contact
	cleared    int
}

func newScriptedWorld(steps ...[]Contact) *scriptedWorld {
	return &scriptedWorld{boundaries: make(map[string]Geometry), steps: steps}
}

func (w *scriptedWorld) AddBody(*Body)            {}
func (w *scriptedWorld) RemoveBody(*Body)         {}
func (w *scriptedWorld) HasBody(*Body) bool       { return false }
func (w *scriptedWorld) SetGravity(core.Vec)      {}
func (w *scriptedWorld) SetElasticity(float64)    {}
func (w *scriptedWorld) Elasticity() float64      { return 1 }
func (w *scriptedWorld) SetFrame(core.Rect)       {}
func (w *scriptedWorld) Push(*Body, Push)         {}
func (w *scriptedWorld) RemoveBoundary(id string) { delete(w.boundaries, id) }

func (w *scriptedWorld) SetBoundary(id string, g Geometry) { w.boundaries[id] = g }

func (w *scriptedWorld) SetRadius(b *Body, r float64) { b.Radius = r }

func (w *scriptedWorld) ClearBoundaries() {
	clear(w.boundaries)
	w.cleared++
}

func (w *scriptedWorld) Step(float64) []Contact {
	if len(w.steps) == 0 {
		return nil
	}
	next := w.steps[0]
	w.steps = w.steps[1:]
	return next
}

func TestRegistryAddRemove(t *testing.T) {
	w := newScriptedWorld()
	r := NewRegistry(w)

	r.Add("Wall", Segment{A: core.V(0, 0), B: core.V(10, 0)}, nil)
	r.Add("Brick0", Box{Rect: core.NewRect(0, 0, 5, 5)}, nil)
	r.Add("Wall", Segment{A: core.V(0, 1), B: core.V(10, 1)}, nil)

	if r.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", r.Len())
	}
	if ids := r.IDs(); !slices.Equal(ids, []string{"Wall", "Brick0"}) {
		t.Errorf("IDs() = %v, expected [Wall Brick0]", ids)
	}
	g, ok := r.Geometry("Wall")
	if !ok || g.(Segment).A.Y() != 1 {
		t.Errorf("Geometry(Wall) = %v, %v; expected replaced segment", g, ok)
	}
	if _, ok := w.boundaries["Wall"]; !ok {
		t.Error("world should hold the Wall boundary")
	}

	r.Remove("Unknown")
	if r.Len() != 2 {
		t.Errorf("Remove(Unknown) changed Len() to %d", r.Len())
	}

	r.Remove("Wall")
	if r.Has("Wall") {
		t.Error("Has(Wall) = true after Remove")
	}
	if _, ok := w.boundaries["Wall"]; ok {
		t.Error("world still holds Wall after Remove")
	}

	r.Clear()
	if r.Len() != 0 || len(r.IDs()) != 0 || w.cleared != 1 {
		t.Errorf("Clear() left Len=%d IDs=%v cleared=%d", r.Len(), r.IDs(), w.cleared)
	}
}

func TestRegistryReplaceHandler(t *testing.T) {
	w := newScriptedWorld()
	r := NewRegistry(w)
	ball := NewBody(1, core.V(0, 0), 1, 1)

	var first, second int
	r.Add("Paddle", Box{Rect: core.NewRect(0, 0, 10, 2)}, func(Contact) { first++ })
	r.Add("Paddle", Box{Rect: core.NewRect(0, 0, 10, 2)}, func(Contact) { second++ })

	r.Dispatch(Contact{Body: ball, Boundary: "Paddle"})

	if first != 0 || second != 1 {
		t.Errorf("handlers fired first=%d second=%d, expected 0 and 1", first, second)
	}
}

func TestRegistryDispatchUnknown(t *testing.T) {
	r := NewRegistry(newScriptedWorld())
	r.Add("Silent", Segment{}, nil)

	tests := []struct {
		boundary string
		expected bool
	}{
		{"Missing", false},
		{"Silent", false},
	}
	for _, tt := range tests {
		if got := r.Dispatch(Contact{Boundary: tt.boundary}); got != tt.expected {
			t.Errorf("Dispatch(%q) = %v, expected %v", tt.boundary, got, tt.expected)
		}
	}
}

func TestAnimatorRemovalDuringDispatch(t *testing.T) {
	a1 := NewBody(1, core.V(0, 0), 1, 1)
	a2 := NewBody(2, core.V(0, 0), 1, 1)
	w := newScriptedWorld([]Contact{
		{Body: a1, Boundary: "Brick3"},
		{Body: a2, Boundary: "Brick3"},
		{Body: a2, Boundary: "Wall"},
	})
	anim := NewAnimator(w)

	var hits []string
	anim.Boundaries().Add("Brick3", Box{Rect: core.NewRect(0, 0, 4, 2)}, func(c Contact) {
		hits = append(hits, c.Boundary)
		anim.Boundaries().Remove(c.Boundary)
	})
	anim.Boundaries().Add("Wall", Segment{}, func(c Contact) {
		hits = append(hits, c.Boundary)
	})

	actions := 0
	anim.SetAction(func() { actions++ })

	if n := anim.Step(tick); n != 2 {
		t.Errorf("Step() dispatched %d, expected 2", n)
	}
	if !slices.Equal(hits, []string{"Brick3", "Wall"}) {
		t.Errorf("hits = %v, expected [Brick3 Wall]", hits)
	}
	if actions != 1 {
		t.Errorf("action ran %d times, expected 1", actions)
	}

	if n := anim.Step(tick); n != 0 || actions != 2 {
		t.Errorf("empty Step() dispatched %d with %d actions, expected 0 and 2", n, actions)
	}
}

func TestAnimatorWithEngine(t *testing.T) {
	w := newTestWorld(t, "builtin")
	anim := NewAnimator(w)
	b := NewBody(1, core.V(100, 80), 5, 1)
	b.Velocity = core.V(0, 100)
	w.AddBody(b)

	var old, replaced int
	anim.Boundaries().Add("Paddle", Segment{A: core.V(0, 100), B: core.V(200, 100)}, func(Contact) { old++ })
	anim.Boundaries().Add("Paddle", Segment{A: core.V(0, 100), B: core.V(200, 100)}, func(Contact) { replaced++ })

	for range 60 {
		anim.Step(tick)
	}
	if old != 0 || replaced != 1 {
		t.Errorf("old=%d replaced=%d, expected 0 and 1", old, replaced)
	}
}

func TestEllipsePoints(t *testing.T) {
	tests := []struct {
		segments int
		expected int
	}{
		{0, 8},
		{4, 8},
		{16, 16},
	}
	for _, tt := range tests {
		e := Ellipse{Rect: core.NewRect(0, 0, 20, 10), Segments: tt.segments}
		if got := len(e.Edges()); got != tt.expected {
			t.Errorf("Ellipse{Segments: %d}.Edges() has %d edges, expected %d", tt.segments, got, tt.expected)
		}
		for _, p := range e.Points() {
			if !e.Bounds().Inset(-1e-9, -1e-9).Contains(p) {
				t.Errorf("point %v outside bounds %v", p, e.Bounds())
			}
		}
	}
}

func TestSegmentClosestPoint(t *testing.T) {
	s := Segment{A: core.V(0, 0), B: core.V(10, 0)}
	tests := []struct {
		p        core.Vec
		expected core.Vec
	}{
		{core.V(5, 3), core.V(5, 0)},
		{core.V(-4, 1), core.V(0, 0)},
		{core.V(20, -2), core.V(10, 0)},
	}
	for _, tt := range tests {
		if got := s.ClosestPoint(tt.p); got != tt.expected {
			t.Errorf("ClosestPoint(%v) = %v, expected %v", tt.p, got, tt.expected)
		}
	}
}
