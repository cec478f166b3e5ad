package breakout

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// BrickState is the lifecycle of a brick.
type BrickState int

const (
	BrickAlive      BrickState = iota // Collides with balls
	BrickDestroying                   // Hit; boundary gone, fading out
	BrickRemoved                      // Counted as destroyed
)

func (s BrickState) String() string {
	switch s {
	case BrickAlive:
		return "alive"
	case BrickDestroying:
		return "destroying"
	case BrickRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

func (s BrickState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BrickState) UnmarshalText(text []byte) error {
	for st := BrickAlive; st <= BrickRemoved; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("breakout: unknown brick state %q", text)
}

// Brick is one cell of the brick grid, addressed by its index.
type Brick struct {
	Index int
	Rect  core.Rect
	State BrickState
	Fade  float64 // 1 when hit, falls to 0 as the brick vanishes
}

// BrickID returns the boundary name of brick i. Names are generated from
// the index and never parsed back.
func BrickID(i int) string {
	return "Brick" + strconv.Itoa(i)
}

// newBricks creates alive bricks for every rect of the layout.
func newBricks(rects []core.Rect) []Brick {
	bricks := make([]Brick, len(rects))
	for i, r := range rects {
		bricks[i] = Brick{Index: i, Rect: r, State: BrickAlive}
	}
	return bricks
}

// addBrick registers the boundary of brick i with a hit handler.
func (s *Session) addBrick(i int) {
	s.anim.Boundaries().Add(BrickID(i), physics.Box{Rect: s.bricks[i].Rect}, func(physics.Contact) {
		s.hitBrick(i)
	})
}

// hitBrick starts destroying brick i. Only the first hit counts: the
// boundary is removed before anything else happens.
func (s *Session) hitBrick(i int) {
	if i < 0 || i >= len(s.bricks) || s.bricks[i].State != BrickAlive {
		return
	}
	s.anim.Boundaries().Remove(BrickID(i))
	s.bricks[i].State = BrickDestroying
	s.bricks[i].Fade = 1

	s.events.emit(Event{Kind: EventScoreIncremented})

	s.timers.after(s.cfg.Gameplay.BrickVanish, s.generation, func() {
		s.removeBrick(i)
	})
}

// removeBrick finishes destroying brick i once its fade is over.
func (s *Session) removeBrick(i int) {
	if i < 0 || i >= len(s.bricks) || s.bricks[i].State != BrickDestroying {
		return
	}
	s.bricks[i].State = BrickRemoved
	s.bricks[i].Fade = 0
	s.destroyed++
	s.log.Debug("brick removed", "brick", i, "destroyed", s.destroyed, "total", len(s.bricks))

	s.events.emit(Event{Kind: EventBrickRemoved, Brick: i})

	if s.destroyed == len(s.bricks) {
		s.win()
	}
}

// fadeBricks advances the fade of destroying bricks.
func (s *Session) fadeBricks(dt float64) {
	vanish := s.cfg.Gameplay.BrickVanish
	for i := range s.bricks {
		b := &s.bricks[i]
		if b.State == BrickDestroying {
			b.Fade = max(b.Fade-dt/vanish, 0)
		}
	}
}

// countBricks returns the number of bricks in the given state.
func (s *Session) countBricks(state BrickState) int {
	n := 0
	for _, b := range s.bricks {
		if b.State == state {
			n++
		}
	}
	return n
}
