package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

const (
	collisionTypeBall cp.CollisionType = iota + 1
	collisionTypeBoundary
	collisionTypeFrame
)

const frameThickness = 1.0

func init() {
	Register("chipmunk", "Chipmunk2D rigid-body engine", func(opts Options) World {
		return newChipmunkWorld(opts)
	})
}

type chipmunkBall struct {
	body  *cp.Body
	shape *cp.Shape
}

// chipmunkWorld runs the simulation in a cp.Space. Balls are circles with
// infinite moment so they never spin; boundaries and the frame are shapes
// on the space's static body. Contacts are observed in PreSolve, which cp
// calls every step a pair touches, and fed to the same episode tracker as
// the builtin engine.
type chipmunkWorld struct {
	opts       Options
	space      *cp.Space
	elasticity float64

	frameShapes []*cp.Shape

	balls      map[*Body]*chipmunkBall
	ballOrder  []*Body
	ballShapes map[*cp.Shape]*Body

	boundaryShapes map[string][]*cp.Shape
	shapeBoundary  map[*cp.Shape]string

	pushes   []pendingPush
	contacts *contactTracker
}

func newChipmunkWorld(opts Options) *chipmunkWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &chipmunkWorld{
		opts:           opts.withDefaults(),
		space:          space,
		elasticity:     1,
		balls:          make(map[*Body]*chipmunkBall),
		ballShapes:     make(map[*cp.Shape]*Body),
		boundaryShapes: make(map[string][]*cp.Shape),
		shapeBoundary:  make(map[*cp.Shape]string),
		contacts:       newContactTracker(),
	}
	w.installHandlers()
	return w
}

func (w *chipmunkWorld) installHandlers() {
	// Balls pass through each other.
	ballHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeBall)
	ballHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	boundaryHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeBoundary)
	boundaryHandler.UserData = w
	boundaryHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*chipmunkWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, okA := world.ballShapes[shapeA]
		id, okB := world.shapeBoundary[shapeB]
		if !okA || !okB {
			// Handler types are ordered, but be lenient.
			body, okA = world.ballShapes[shapeB]
			id, okB = world.shapeBoundary[shapeA]
			if !okA || !okB {
				return true
			}
		}
		world.contacts.touch(body, id)
		return true
	}
}

func toCP(v core.Vec) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func fromCP(v cp.Vector) core.Vec {
	return core.V(v.X, v.Y)
}

func (w *chipmunkWorld) AddBody(b *Body) {
	if b == nil || w.HasBody(b) {
		return
	}

	body := cp.NewBody(b.Mass, math.Inf(1))
	body.SetPosition(toCP(b.Position))
	body.SetVelocityVector(toCP(b.Velocity))

	shape := cp.NewCircle(body, b.Radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(w.elasticity)
	shape.SetCollisionType(collisionTypeBall)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	w.balls[b] = &chipmunkBall{body: body, shape: shape}
	w.ballShapes[shape] = b
	w.ballOrder = append(w.ballOrder, b)
}

func (w *chipmunkWorld) RemoveBody(b *Body) {
	ball, ok := w.balls[b]
	if !ok {
		return
	}
	delete(w.balls, b)
	delete(w.ballShapes, ball.shape)
	for i, o := range w.ballOrder {
		if o == b {
			w.ballOrder = append(w.ballOrder[:i], w.ballOrder[i+1:]...)
			break
		}
	}
	w.contacts.dropBody(b)

	kept := w.pushes[:0]
	for _, p := range w.pushes {
		if p.body != b {
			kept = append(kept, p)
		}
	}
	w.pushes = kept

	w.space.RemoveShape(ball.shape)
	w.space.RemoveBody(ball.body)
}

func (w *chipmunkWorld) HasBody(b *Body) bool {
	_, ok := w.balls[b]
	return ok
}

// SetRadius swaps the ball's circle shape. The cp body, and with it the
// velocity, stays in the space.
func (w *chipmunkWorld) SetRadius(b *Body, r float64) {
	if b == nil {
		return
	}
	b.Radius = r
	ball, ok := w.balls[b]
	if !ok {
		return
	}
	delete(w.ballShapes, ball.shape)
	w.space.RemoveShape(ball.shape)

	shape := cp.NewCircle(ball.body, r, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(w.elasticity)
	shape.SetCollisionType(collisionTypeBall)
	w.space.AddShape(shape)

	ball.shape = shape
	w.ballShapes[shape] = b
}

func (w *chipmunkWorld) SetGravity(g core.Vec) {
	w.space.SetGravity(toCP(g))
}

func (w *chipmunkWorld) SetElasticity(e float64) {
	w.elasticity = core.ClampF(e, 0, 1)
	for _, ball := range w.balls {
		ball.shape.SetElasticity(w.elasticity)
	}
}

func (w *chipmunkWorld) Elasticity() float64 {
	return w.elasticity
}

func (w *chipmunkWorld) SetFrame(r core.Rect) {
	for _, s := range w.frameShapes {
		w.space.RemoveShape(s)
	}
	w.frameShapes = w.frameShapes[:0]
	if r.IsEmpty() {
		return
	}

	// Segments are rounded; push them out so their inner surface is the frame.
	edges := Box{Rect: r.Inset(-frameThickness, -frameThickness)}.Edges()
	for _, e := range edges {
		shape := cp.NewSegment(w.space.StaticBody, toCP(e.A), toCP(e.B), frameThickness)
		shape.SetFriction(0)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeFrame)
		w.space.AddShape(shape)
		w.frameShapes = append(w.frameShapes, shape)
	}
}

// shapesFor converts geometry into static cp shapes.
func (w *chipmunkWorld) shapesFor(g Geometry) []*cp.Shape {
	static := w.space.StaticBody
	switch geom := g.(type) {
	case Segment:
		return []*cp.Shape{cp.NewSegment(static, toCP(geom.A), toCP(geom.B), 0)}
	case Box:
		r := geom.Rect
		bb := cp.BB{L: r.MinX(), B: r.MinY(), R: r.MaxX(), T: r.MaxY()}
		return []*cp.Shape{cp.NewBox2(static, bb, 0)}
	case Ellipse:
		pts := geom.Points()
		verts := make([]cp.Vector, len(pts))
		for i, p := range pts {
			verts[i] = toCP(p)
		}
		return []*cp.Shape{cp.NewPolyShape(static, len(verts), verts, cp.NewTransformIdentity(), 0)}
	default:
		edges := g.Edges()
		shapes := make([]*cp.Shape, 0, len(edges))
		for _, e := range edges {
			shapes = append(shapes, cp.NewSegment(static, toCP(e.A), toCP(e.B), 0))
		}
		return shapes
	}
}

func (w *chipmunkWorld) SetBoundary(id string, g Geometry) {
	if g == nil {
		w.RemoveBoundary(id)
		return
	}
	w.removeShapes(id)

	shapes := w.shapesFor(g)
	for _, s := range shapes {
		s.SetFriction(0)
		s.SetElasticity(1)
		s.SetCollisionType(collisionTypeBoundary)
		w.space.AddShape(s)
		w.shapeBoundary[s] = id
	}
	w.boundaryShapes[id] = shapes
}

// removeShapes detaches the shapes of a boundary. The mapping is dropped
// before removal so the separate callbacks cp fires are not attributed.
func (w *chipmunkWorld) removeShapes(id string) bool {
	shapes, ok := w.boundaryShapes[id]
	if !ok {
		return false
	}
	delete(w.boundaryShapes, id)
	for _, s := range shapes {
		delete(w.shapeBoundary, s)
		w.space.RemoveShape(s)
	}
	return true
}

func (w *chipmunkWorld) RemoveBoundary(id string) {
	if w.removeShapes(id) {
		w.contacts.dropBoundary(id)
	}
}

func (w *chipmunkWorld) ClearBoundaries() {
	for id := range w.boundaryShapes {
		w.removeShapes(id)
	}
	w.contacts.clear()
}

func (w *chipmunkWorld) Push(b *Body, p Push) {
	if !w.HasBody(b) {
		return
	}
	w.pushes = append(w.pushes, pendingPush{body: b, push: p})
}

func (w *chipmunkWorld) Step(dt float64) []Contact {
	if dt <= 0 {
		return nil
	}

	for _, p := range w.pushes {
		ball := w.balls[p.body]
		ball.body.ApplyImpulseAtWorldPoint(toCP(p.push.Impulse(w.opts.ImpulseScale)), ball.body.Position())
	}
	w.pushes = w.pushes[:0]

	w.space.Step(dt)

	for _, b := range w.ballOrder {
		ball := w.balls[b]
		b.Position = fromCP(ball.body.Position())
		b.Velocity = fromCP(ball.body.Velocity())
	}

	return w.contacts.flush()
}
