package physics

import "slices"

// Handler is called when a body stops touching a boundary.
type Handler func(c Contact)

type boundaryEntry struct {
	geometry Geometry
	handler  Handler
}

// Registry keeps named boundaries in sync with a World and owns their
// handlers. A name maps to at most one geometry and one handler; adding a
// name again replaces both.
type Registry struct {
	world   World
	entries map[string]boundaryEntry
	order   []string
}

// NewRegistry creates an empty registry backed by world.
func NewRegistry(world World) *Registry {
	return &Registry{
		world:   world,
		entries: make(map[string]boundaryEntry),
	}
}

// Add registers or replaces the boundary named id. The handler may be nil.
func (r *Registry) Add(id string, g Geometry, h Handler) {
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = boundaryEntry{geometry: g, handler: h}
	r.world.SetBoundary(id, g)
}

// Remove drops the boundary and its handler. Unknown names are ignored.
func (r *Registry) Remove(id string) {
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	r.world.RemoveBoundary(id)
}

// Clear drops every boundary and handler.
func (r *Registry) Clear() {
	clear(r.entries)
	r.order = r.order[:0]
	r.world.ClearBoundaries()
}

// Has reports whether a boundary named id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Geometry returns the current geometry of a boundary.
func (r *Registry) Geometry(id string) (Geometry, bool) {
	e, ok := r.entries[id]
	return e.geometry, ok
}

// IDs returns boundary names in the order they were first added.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Len returns the number of boundaries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Dispatch calls the handler registered for the contact's boundary, looked
// up at call time. It reports whether a handler ran; contacts with unknown
// or handler-less boundaries are ignored.
func (r *Registry) Dispatch(c Contact) bool {
	e, ok := r.entries[c.Boundary]
	if !ok || e.handler == nil {
		return false
	}
	e.handler(c)
	return true
}
