package breakout

// EventKind identifies a session event.
type EventKind int

const (
	EventScoreIncremented EventKind = iota // A brick was hit; score goes up by one
	EventGameWon                           // Every brick is gone; BallsUsed is set
	EventNewGame                           // A fresh field was laid out
	EventBrickRemoved                      // A brick finished fading; Brick is set
)

func (k EventKind) String() string {
	switch k {
	case EventScoreIncremented:
		return "score_incremented"
	case EventGameWon:
		return "game_won"
	case EventNewGame:
		return "new_game"
	case EventBrickRemoved:
		return "brick_removed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers synchronously from the call that
// caused it, usually Step.
type Event struct {
	Kind      EventKind
	BallsUsed int
	Brick     int
}

// Listener receives session events. It must not block.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

type eventBus struct {
	subs   []subscription
	nextID int
}

// subscribe registers fn and returns a function that removes it.
func (b *eventBus) subscribe(fn Listener) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// emit calls subscribers in registration order. Subscribers added or
// removed while emitting take effect from the next event.
func (b *eventBus) emit(e Event) {
	subs := b.subs
	for _, s := range subs {
		s.fn(e)
	}
}
