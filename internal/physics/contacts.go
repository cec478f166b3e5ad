package physics

type contactKey struct {
	body     *Body
	boundary string
}

// contactTracker turns per-step touch observations into contact episodes.
// A pair touching in one step and not in the next has ended; each episode
// ends exactly once. Iteration follows the order contacts began, so the
// ended list is deterministic.
type contactTracker struct {
	active    []contactKey
	activeSet map[contactKey]bool
	touched   []contactKey
	touchSet  map[contactKey]bool
}

func newContactTracker() *contactTracker {
	return &contactTracker{
		activeSet: make(map[contactKey]bool),
		touchSet:  make(map[contactKey]bool),
	}
}

// touch records that b touches the boundary during the current step.
func (t *contactTracker) touch(b *Body, boundary string) {
	k := contactKey{body: b, boundary: boundary}
	if t.touchSet[k] {
		return
	}
	t.touchSet[k] = true
	t.touched = append(t.touched, k)
}

// flush closes the current step and returns the contacts that ended.
func (t *contactTracker) flush() []Contact {
	var ended []Contact
	next := make([]contactKey, 0, len(t.touched))

	for _, k := range t.active {
		if t.touchSet[k] {
			next = append(next, k)
			continue
		}
		ended = append(ended, Contact{Body: k.body, Boundary: k.boundary})
		delete(t.activeSet, k)
	}
	for _, k := range t.touched {
		if !t.activeSet[k] {
			t.activeSet[k] = true
			next = append(next, k)
		}
	}

	t.active = next
	t.touched = t.touched[:0]
	clear(t.touchSet)
	return ended
}

// isActive reports whether b is in an ongoing contact with the boundary.
func (t *contactTracker) isActive(b *Body, boundary string) bool {
	return t.activeSet[contactKey{body: b, boundary: boundary}]
}

// drop forgets every contact matching the predicate without reporting it.
func (t *contactTracker) drop(match func(contactKey) bool) {
	kept := t.active[:0]
	for _, k := range t.active {
		if match(k) {
			delete(t.activeSet, k)
			continue
		}
		kept = append(kept, k)
	}
	t.active = kept

	touched := t.touched[:0]
	for _, k := range t.touched {
		if match(k) {
			delete(t.touchSet, k)
			continue
		}
		touched = append(touched, k)
	}
	t.touched = touched
}

func (t *contactTracker) dropBody(b *Body) {
	t.drop(func(k contactKey) bool { return k.body == b })
}

func (t *contactTracker) dropBoundary(id string) {
	t.drop(func(k contactKey) bool { return k.boundary == id })
}

func (t *contactTracker) clear() {
	t.active = t.active[:0]
	t.touched = t.touched[:0]
	clear(t.activeSet)
	clear(t.touchSet)
}
