package physics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// World simulates bodies against static boundaries.
//
// Collision response is elastic, frictionless and non-rotating. Step reports
// each contact between a body and a named boundary once, when the contact
// ends. Adding a body twice or removing an unknown body or boundary is a
// no-op.
type World interface {
	AddBody(b *Body)
	RemoveBody(b *Body)
	HasBody(b *Body) bool

	// SetRadius changes the radius of b in place. Position, velocity and
	// any queued push are kept.
	SetRadius(b *Body, r float64)

	SetGravity(g core.Vec)
	SetElasticity(e float64)
	Elasticity() float64

	// SetFrame sets the outer rectangle bodies cannot leave.
	// An empty rectangle disables the frame.
	SetFrame(r core.Rect)

	SetBoundary(id string, g Geometry)
	RemoveBoundary(id string)
	ClearBoundaries()

	// Push queues a single-shot impulse for b, applied at the start of the
	// next Step. Pushes for bodies not in the world are dropped.
	Push(b *Body, p Push)

	// Step advances the simulation by dt seconds and returns the contacts
	// that ended during the step.
	Step(dt float64) []Contact
}

// Options configures a new World.
type Options struct {
	// ImpulseScale converts push magnitude into momentum: a push of
	// magnitude m changes the velocity of a body of mass M by
	// m*ImpulseScale/M.
	ImpulseScale float64

	// SubstepTravel caps how far a body may move in one substep, in
	// multiples of its radius. Only the builtin engine substeps.
	SubstepTravel float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{ImpulseScale: 500, SubstepTravel: 0.5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ImpulseScale <= 0 {
		o.ImpulseScale = d.ImpulseScale
	}
	if o.SubstepTravel <= 0 {
		o.SubstepTravel = d.SubstepTravel
	}
	return o
}

// EngineInfo describes a registered engine.
type EngineInfo struct {
	Name        string
	Description string
}

// Factory creates a World.
type Factory func(opts Options) World

type engine struct {
	factory     Factory
	description string
}

var (
	engines = make(map[string]engine)
	mu      sync.RWMutex
)

// DefaultEngine is the engine used when none is configured.
const DefaultEngine = "builtin"

// Register adds an engine under the given name.
// Panics if an engine with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := engines[name]; exists {
		panic(fmt.Sprintf("physics: engine %q already registered", name))
	}
	engines[name] = engine{factory: f, description: description}
}

// Engines returns all registered engines, sorted by name.
func Engines() []EngineInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EngineInfo, 0, len(engines))
	for name, e := range engines {
		result = append(result, EngineInfo{Name: name, Description: e.description})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Exists checks if an engine with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := engines[name]
	return ok
}

// NewWorld creates a world with the named engine.
// An empty name selects DefaultEngine.
func NewWorld(name string, opts Options) (World, error) {
	if name == "" {
		name = DefaultEngine
	}

	mu.RLock()
	e, ok := engines[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("physics: unknown engine %q", name)
	}
	return e.factory(opts.withDefaults()), nil
}
