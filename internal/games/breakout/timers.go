package breakout

// timer is a deferred action owned by one game generation.
type timer struct {
	remaining  float64
	generation uint64
	fn         func()
}

// timerQueue runs deferred actions as simulated time passes. Timers from an
// older generation are abandoned when they come due instead of firing.
type timerQueue struct {
	timers []*timer
}

// after schedules fn to run once delay seconds have been advanced.
func (q *timerQueue) after(delay float64, generation uint64, fn func()) {
	q.timers = append(q.timers, &timer{remaining: delay, generation: generation, fn: fn})
}

// advance moves time forward by dt and runs due timers in scheduling order.
// generation is consulted before each timer fires, so a timer that starts a
// new game abandons the rest. Timers scheduled by a running timer wait for
// the next advance.
func (q *timerQueue) advance(dt float64, generation func() uint64) int {
	if len(q.timers) == 0 {
		return 0
	}

	var due []*timer
	pending := q.timers[:0:0]
	for _, t := range q.timers {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	q.timers = pending

	fired := 0
	for _, t := range due {
		if t.generation != generation() {
			continue
		}
		t.fn()
		fired++
	}
	return fired
}

func (q *timerQueue) len() int {
	return len(q.timers)
}
