package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

const tick = 1.0 / 60

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestWorld(t *testing.T, engine string) World {
	t.Helper()
	w, err := NewWorld(engine, Options{ImpulseScale: 500})
	if err != nil {
		t.Fatalf("NewWorld(%q) failed: %v", engine, err)
	}
	return w
}

func TestEnginesRegistered(t *testing.T) {
	engines := Engines()
	if len(engines) != 2 {
		t.Fatalf("Engines() returned %d engines, expected 2", len(engines))
	}
	if engines[0].Name != "builtin" || engines[1].Name != "chipmunk" {
		t.Errorf("Engines() = %+v, expected builtin then chipmunk", engines)
	}
	if !Exists("chipmunk") {
		t.Error("Exists(chipmunk) = false, expected true")
	}
	if _, err := NewWorld("box2d", Options{}); err == nil {
		t.Error("NewWorld(box2d) should fail for unknown engine")
	}
	if w, err := NewWorld("", Options{}); err != nil || w == nil {
		t.Errorf("NewWorld(\"\") = %v, %v; expected default engine", w, err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with duplicate name should panic")
		}
	}()
	Register("builtin", "again", func(Options) World { return nil })
}

func TestPushIsSingleShot(t *testing.T) {
	for _, engine := range []string{"builtin", "chipmunk"} {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := NewBody(1, core.V(500, 500), 5, 1)
			w.AddBody(b)

			w.Push(b, Push{Magnitude: 0.6, Angle: 0})
			w.Step(tick)
			if !approx(b.Velocity.X(), 300) || !approx(b.Velocity.Y(), 0) {
				t.Fatalf("Velocity after push = %v, expected (300, 0)", b.Velocity)
			}

			w.Step(tick)
			if !approx(b.Velocity.X(), 300) {
				t.Errorf("Velocity after second step = %v, push should not re-fire", b.Velocity)
			}
			if b.Position.X() <= 500 {
				t.Errorf("Position.X = %v, expected body to move right", b.Position.X())
			}
		})
	}
}

func TestSetRadiusKeepsPush(t *testing.T) {
	for _, engine := range []string{"builtin", "chipmunk"} {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := NewBody(1, core.V(500, 500), 5, 1)
			w.AddBody(b)

			w.Push(b, Push{Magnitude: 0.6, Angle: 0})
			w.SetRadius(b, 8)
			if b.Radius != 8 {
				t.Errorf("Radius = %v, expected 8", b.Radius)
			}
			if !w.HasBody(b) {
				t.Fatal("body left the world on SetRadius")
			}

			w.Step(tick)
			if !approx(b.Velocity.X(), 300) {
				t.Errorf("Velocity after resize and step = %v, expected (300, 0)", b.Velocity)
			}
		})
	}
}

func TestPushScalesWithMass(t *testing.T) {
	w := newTestWorld(t, "builtin")
	b := NewBody(1, core.V(0, 0), 5, 4)
	w.AddBody(b)

	w.Push(b, Push{Magnitude: 0.6, Angle: math.Pi / 2})
	w.Step(tick)
	if !approx(b.Velocity.Y(), 75) {
		t.Errorf("Velocity.Y = %v, expected 75 for mass 4", b.Velocity.Y())
	}
}

func TestGravity(t *testing.T) {
	for _, engine := range []string{"builtin", "chipmunk"} {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := NewBody(1, core.V(0, 0), 5, 1)
			w.AddBody(b)
			w.SetGravity(core.V(0, 100))

			w.Step(0.1)
			if !approx(b.Velocity.Y(), 10) {
				t.Errorf("Velocity.Y after 0.1s = %v, expected 10", b.Velocity.Y())
			}
		})
	}
}

func TestBodyMembershipNoOps(t *testing.T) {
	for _, engine := range []string{"builtin", "chipmunk"} {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := NewBody(1, core.V(10, 10), 5, 1)

			w.RemoveBody(b) // unknown
			w.Push(b, Push{Magnitude: 1})
			w.AddBody(b)
			w.AddBody(b) // duplicate
			if !w.HasBody(b) {
				t.Fatal("HasBody() = false after AddBody")
			}

			w.Step(tick)
			if b.Velocity.Len() != 0 {
				t.Errorf("push queued before AddBody should be dropped, velocity = %v", b.Velocity)
			}

			w.RemoveBody(b)
			w.RemoveBody(b)
			if w.HasBody(b) {
				t.Error("HasBody() = true after RemoveBody")
			}
			w.RemoveBoundary("missing")
		})
	}
}

// dropOnFloor moves a ball down onto a horizontal segment and returns the
// ended contacts seen over the given number of steps.
func dropOnFloor(w World, b *Body, steps int) []Contact {
	w.SetBoundary("floor", Segment{A: core.V(0, 100), B: core.V(200, 100)})
	w.AddBody(b)

	var ended []Contact
	for range steps {
		ended = append(ended, w.Step(tick)...)
	}
	return ended
}

func TestElasticBounceEndsContactOnce(t *testing.T) {
	w := newTestWorld(t, "builtin")
	b := NewBody(1, core.V(100, 80), 5, 1)
	b.Velocity = core.V(0, 100)

	ended := dropOnFloor(w, b, 60)

	if len(ended) != 1 {
		t.Fatalf("got %d ended contacts, expected exactly 1", len(ended))
	}
	if ended[0].Boundary != "floor" || ended[0].Body != b {
		t.Errorf("ended contact = %+v, expected ball on floor", ended[0])
	}
	if !approx(b.Velocity.Y(), -100) || !approx(b.Velocity.X(), 0) {
		t.Errorf("Velocity after bounce = %v, expected (0, -100)", b.Velocity)
	}
	if b.Position.Y() >= 95 {
		t.Errorf("Position.Y = %v, ball should have left the floor", b.Position.Y())
	}
}

func TestElasticityScalesNormalVelocity(t *testing.T) {
	w := newTestWorld(t, "builtin")
	w.SetElasticity(0.5)
	b := NewBody(1, core.V(100, 80), 5, 1)
	b.Velocity = core.V(30, 100)

	dropOnFloor(w, b, 60)

	if !approx(b.Velocity.Y(), -50) {
		t.Errorf("Velocity.Y = %v, expected -50", b.Velocity.Y())
	}
	if !approx(b.Velocity.X(), 30) {
		t.Errorf("Velocity.X = %v, tangential component should be untouched", b.Velocity.X())
	}
}

func TestRestingContactDoesNotEnd(t *testing.T) {
	w := newTestWorld(t, "builtin")
	w.SetElasticity(0)
	w.SetGravity(core.V(0, 200))
	b := NewBody(1, core.V(100, 90), 5, 1)

	ended := dropOnFloor(w, b, 120)

	if len(ended) != 0 {
		t.Errorf("got %d ended contacts for a resting ball, expected 0", len(ended))
	}
	if !approx(b.Position.Y(), 95) {
		t.Errorf("Position.Y = %v, expected ball resting at 95", b.Position.Y())
	}
}

func TestRemovedBoundaryReportsNothing(t *testing.T) {
	w := newTestWorld(t, "builtin")
	w.SetElasticity(0)
	w.SetGravity(core.V(0, 200))
	b := NewBody(1, core.V(100, 90), 5, 1)

	dropOnFloor(w, b, 30)
	w.RemoveBoundary("floor")
	if ended := w.Step(tick); len(ended) != 0 {
		t.Errorf("Step() after RemoveBoundary reported %v, expected nothing", ended)
	}
}

func TestFrameKeepsBodiesInside(t *testing.T) {
	for _, engine := range []string{"builtin", "chipmunk"} {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			frame := core.NewRect(0, 0, 100, 100)
			w.SetFrame(frame)
			b := NewBody(1, core.V(90, 50), 5, 1)
			b.Velocity = core.V(120, 0)
			w.AddBody(b)

			for range 30 {
				if ended := w.Step(tick); len(ended) != 0 {
					t.Fatalf("frame contacts should not be reported, got %v", ended)
				}
			}
			if b.Velocity.X() >= 0 {
				t.Errorf("Velocity.X = %v, expected bounce off the right edge", b.Velocity.X())
			}
			if b.Position.X() > 100 {
				t.Errorf("Position.X = %v, body escaped the frame", b.Position.X())
			}
		})
	}
}

func TestChipmunkBounceReportsContactEnd(t *testing.T) {
	w := newTestWorld(t, "chipmunk")
	b := NewBody(1, core.V(100, 80), 5, 1)
	b.Velocity = core.V(0, 100)

	ended := dropOnFloor(w, b, 60)

	if len(ended) == 0 {
		t.Fatal("expected an ended contact with the floor")
	}
	for _, c := range ended {
		if c.Boundary != "floor" {
			t.Errorf("ended contact with %q, expected floor", c.Boundary)
		}
	}
	if b.Velocity.Y() >= 0 {
		t.Errorf("Velocity.Y = %v, expected the ball to bounce up", b.Velocity.Y())
	}
}

func TestBoxAndEllipseDeflect(t *testing.T) {
	shapes := map[string]Geometry{
		"box":     Box{Rect: core.NewRect(80, 100, 40, 10)},
		"ellipse": Ellipse{Rect: core.NewRect(80, 100, 40, 10), Segments: 16},
	}
	for name, g := range shapes {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t, "builtin")
			w.SetBoundary(name, g)
			b := NewBody(1, core.V(100, 70), 5, 1)
			b.Velocity = core.V(0, 120)
			w.AddBody(b)

			var ended []Contact
			for range 60 {
				ended = append(ended, w.Step(tick)...)
			}
			if b.Velocity.Y() >= 0 {
				t.Errorf("Velocity.Y = %v, expected deflection upward", b.Velocity.Y())
			}
			if len(ended) != 1 || ended[0].Boundary != name {
				t.Errorf("ended = %v, expected one contact with %s", ended, name)
			}
		})
	}
}
