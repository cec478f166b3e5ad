// Package breakout is the Breakout game session: the brick field, paddle
// and balls laid out over a physics world, and the rules that react to
// collisions reported by it.
//
// A Session is driven by its host. The host calls Resize when the viewport
// changes, Step once per frame, and forwards player input through
// MovePaddle, Launch and Acknowledge. Session is not safe for concurrent use.
package breakout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/settings"
)

// Boundary names of the fixed surfaces.
const (
	WallLeft  = "Left"
	WallUpper = "Upper"
	WallRight = "Right"
	PaddleID  = "Paddle"
)

// State is the session lifecycle.
type State int

const (
	StateUninitialized State = iota // No viewport yet
	StateLayingOut                  // Building the field
	StateRunning                    // Playing
	StateWon                        // Every brick destroyed, waiting for Acknowledge
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLayingOut:
		return "laying_out"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := StateUninitialized; st <= StateWon; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("breakout: unknown state %q", text)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSeed seeds the launch angle generator.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// WithWorld uses w instead of creating the engine named in the config.
func WithWorld(w physics.World) Option {
	return func(s *Session) {
		s.world = w
	}
}

type layoutRequest struct {
	bounds  core.Rect // Empty keeps the current bounds
	newGame bool
}

// Session is one game of Breakout.
type Session struct {
	cfg      config.BreakoutConfig
	settings settings.Settings
	log      *log.Logger
	seed     int64
	rng      *RNG

	world physics.World
	anim  *physics.Animator

	state  State
	bounds core.Rect
	geom   Layout
	paddle core.Rect
	bricks []Brick
	balls  []*Ball

	score     int
	ballsUsed int
	destroyed int
	tick      uint64
	elapsed   float64

	// generation changes with every new game; timers from an older one are
	// abandoned.
	generation uint64
	timers     timerQueue
	events     eventBus

	layingOut bool
	pending   *layoutRequest
}

// New creates a session in the uninitialized state. The field is laid out
// on the first Resize.
func New(cfg config.BreakoutConfig, s settings.Settings, opts ...Option) (*Session, error) {
	cfg.Validate()
	sess := &Session{
		cfg:  cfg,
		log:  log.New(io.Discard),
		seed: 1,
	}
	for _, opt := range opts {
		opt(sess)
	}

	if sess.world == nil {
		w, err := physics.NewWorld(cfg.Physics.Engine, physics.Options{
			ImpulseScale:  cfg.Physics.ImpulseScale,
			SubstepTravel: cfg.Physics.SubstepTravel,
		})
		if err != nil {
			return nil, fmt.Errorf("breakout: cannot create world: %w", err)
		}
		sess.world = w
	}

	sess.rng = NewRNG(sess.seed)
	sess.settings = sess.clampSettings(s)
	sess.world.SetGravity(core.V(0, cfg.Physics.Gravity))
	sess.world.SetElasticity(sess.settings.Bounciness)

	sess.anim = physics.NewAnimator(sess.world)
	sess.anim.SetAction(sess.returnMissedBalls)

	// Score follows the signal rather than the brick handler.
	sess.events.subscribe(func(e Event) {
		if e.Kind == EventScoreIncremented {
			sess.score++
		}
	})
	return sess, nil
}

// clampSettings bounds settings by the global limits and the config.
func (s *Session) clampSettings(in settings.Settings) settings.Settings {
	out := in.Clamp()
	out.Balls = min(out.Balls, s.cfg.Gameplay.MaxBalls)
	out.Bricks = min(out.Bricks, s.cfg.Gameplay.MaxBricks)
	return out
}

// Subscribe registers fn for session events and returns a function that
// unregisters it.
func (s *Session) Subscribe(fn Listener) func() {
	return s.events.subscribe(fn)
}

// Resize lays the field out for new viewport bounds. The first call starts
// a game; later calls keep brick state and parked balls.
func (s *Session) Resize(bounds core.Rect) {
	if bounds.IsEmpty() {
		return
	}
	s.requestLayout(layoutRequest{bounds: bounds, newGame: s.state == StateUninitialized})
}

// Configure applies new settings. Changing balls or bricks starts a new
// game; bounciness is applied to the running one. After a win the new
// settings wait for Acknowledge.
func (s *Session) Configure(next settings.Settings) {
	next = s.clampSettings(next)
	restart := s.settings.NeedsRestart(next)
	s.settings = next
	s.world.SetElasticity(next.Bounciness)
	s.log.Debug("settings applied", "settings", next, "restart", restart)

	if restart && s.state != StateUninitialized && s.state != StateWon {
		s.requestLayout(layoutRequest{newGame: true})
	}
}

// Acknowledge starts a new game after a win.
func (s *Session) Acknowledge() {
	if s.state != StateWon {
		return
	}
	s.requestLayout(layoutRequest{newGame: true})
}

// requestLayout runs a layout, or queues it if one is in progress. A queued
// request supersedes an earlier queued one but keeps its new-game flag.
func (s *Session) requestLayout(req layoutRequest) {
	if s.layingOut {
		if p := s.pending; p != nil {
			req.newGame = req.newGame || p.newGame
			if req.bounds.IsEmpty() {
				req.bounds = p.bounds
			}
		}
		s.pending = &req
		return
	}

	s.layingOut = true
	defer func() { s.layingOut = false }()
	for {
		s.layout(req)
		if s.pending == nil {
			return
		}
		req = *s.pending
		s.pending = nil
	}
}

func (s *Session) layout(req layoutRequest) {
	if !req.bounds.IsEmpty() {
		s.bounds = req.bounds
	}
	if s.bounds.IsEmpty() {
		return
	}

	prev := s.state
	s.state = StateLayingOut
	s.anim.Boundaries().Clear()
	s.world.SetFrame(s.bounds)
	s.geom = ComputeLayout(s.bounds, s.settings.Bricks, s.cfg.Layout)

	switch {
	case req.newGame || prev == StateUninitialized:
		s.startGame()
		s.state = StateRunning
		s.log.Debug("new game", "bounds", s.bounds, "bricks", len(s.bricks), "balls", len(s.balls))
		s.events.emit(Event{Kind: EventNewGame})
	case prev == StateWon:
		// The field stays empty until the win is acknowledged.
		s.state = StateWon
	default:
		s.rebuildField()
		s.state = prev
		s.log.Debug("field rebuilt", "bounds", s.bounds)
	}
}

// startGame builds a fresh field and resets the counters.
func (s *Session) startGame() {
	s.generation++
	s.removeBalls()

	s.score = 0
	s.ballsUsed = 1
	s.destroyed = 0
	s.tick = 0
	s.elapsed = 0

	s.addWalls()
	s.paddle = s.geom.Paddle
	s.addPaddle()

	s.bricks = newBricks(s.geom.Bricks)
	for i := range s.bricks {
		s.addBrick(i)
	}
	s.spawnBalls(s.settings.Balls)
}

// rebuildField re-derives geometry for the current bounds. Brick state is
// kept and only alive bricks get a boundary again.
func (s *Session) rebuildField() {
	s.addWalls()
	s.paddle = s.geom.Paddle
	s.addPaddle()

	for i := range s.bricks {
		if i < len(s.geom.Bricks) {
			s.bricks[i].Rect = s.geom.Bricks[i]
		}
		if s.bricks[i].State == BrickAlive {
			s.addBrick(i)
		}
	}
	s.resizeBalls()
}

func (s *Session) addWalls() {
	r := s.geom.Walls
	reg := s.anim.Boundaries()
	reg.Add(WallLeft, physics.Segment{A: r.LowerLeft(), B: r.UpperLeft()}, nil)
	reg.Add(WallUpper, physics.Segment{A: r.UpperLeft(), B: r.UpperRight()}, nil)
	reg.Add(WallRight, physics.Segment{A: r.LowerRight(), B: r.UpperRight()}, nil)
}

func (s *Session) addPaddle() {
	s.anim.Boundaries().Add(PaddleID, physics.Ellipse{
		Rect:     s.paddle,
		Segments: s.cfg.Layout.PaddleSegments,
	}, nil)
}

// win clears the field and announces the result once.
func (s *Session) win() {
	if s.state == StateWon {
		return
	}
	s.state = StateWon
	s.anim.Boundaries().Clear()
	s.removeBalls()
	s.paddle = core.Rect{}

	s.log.Info("game won", "balls_used", s.ballsUsed, "score", s.score, "seconds", s.elapsed)
	s.events.emit(Event{Kind: EventGameWon, BallsUsed: s.ballsUsed})
}

// Step advances the game by dt seconds: physics and collision handlers,
// missed balls, then brick timers.
func (s *Session) Step(dt float64) {
	if s.state != StateRunning || dt <= 0 {
		return
	}
	s.tick++
	s.elapsed += dt

	s.anim.Step(dt)
	s.fadeBricks(dt)
	s.timers.advance(dt, func() uint64 { return s.generation })
}

// MovePaddle moves the paddle horizontally by dx, keeping it inside the
// bounds. Parked balls follow it.
func (s *Session) MovePaddle(dx float64) {
	if s.state != StateRunning || dx == 0 {
		return
	}
	x := s.geom.ClampPaddleX(s.paddle.MidX() + dx)
	if x == s.paddle.MidX() {
		return
	}
	s.paddle = s.paddle.WithCenter(core.V(x, s.paddle.MidY()))
	s.addPaddle()
	s.followPaddle()
}

// HandleInput applies one frame of host input.
func (s *Session) HandleInput(in core.InputFrame) {
	if in.Pan != 0 {
		s.MovePaddle(in.Pan)
	}
	if in.Has(core.ActionLaunch) {
		s.Launch()
	}
	if in.Has(core.ActionRestart) {
		s.Acknowledge()
	}
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Settings returns the settings in effect, after clamping.
func (s *Session) Settings() settings.Settings { return s.settings }

// Score returns the number of bricks hit this game.
func (s *Session) Score() int { return s.score }

// BallsUsed returns the number of balls used this game, starting at one.
func (s *Session) BallsUsed() int { return s.ballsUsed }

// BricksDestroyed returns the number of bricks fully removed.
func (s *Session) BricksDestroyed() int { return s.destroyed }

// Bounds returns the current viewport bounds.
func (s *Session) Bounds() core.Rect { return s.bounds }

// Layout returns the current field geometry.
func (s *Session) Layout() Layout { return s.geom }

// World returns the physics world the session runs in.
func (s *Session) World() physics.World { return s.world }
