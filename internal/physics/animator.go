package physics

// Animator drives a World and routes ended contacts to the handlers in its
// boundary Registry. Handlers run synchronously inside Step, after the world
// has finished stepping, so they may add or remove bodies and boundaries.
type Animator struct {
	world      World
	boundaries *Registry
	action     func()
}

// NewAnimator creates an animator for world with an empty registry.
func NewAnimator(world World) *Animator {
	return &Animator{
		world:      world,
		boundaries: NewRegistry(world),
	}
}

func (a *Animator) World() World {
	return a.world
}

func (a *Animator) Boundaries() *Registry {
	return a.boundaries
}

// SetAction installs a function run at the end of every Step.
func (a *Animator) SetAction(fn func()) {
	a.action = fn
}

// Step advances the world, dispatches ended contacts in order and then
// runs the action. It returns the number of handlers invoked.
//
// A handler that removes its own boundary prevents any later contact with
// that name in the same step from being dispatched.
func (a *Animator) Step(dt float64) int {
	dispatched := 0
	for _, c := range a.world.Step(dt) {
		if a.boundaries.Dispatch(c) {
			dispatched++
		}
	}
	if a.action != nil {
		a.action()
	}
	return dispatched
}
