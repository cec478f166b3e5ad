package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/platform/spectate"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// chromeRows are the rows outside the field: the HUD and the help line.
const chromeRows = 2

type mode int

const (
	modePlay mode = iota
	modeSettings
	modeResults
)

// Options configures a Model. Only Config and Runtime are required.
type Options struct {
	Config  config.BreakoutConfig
	Runtime core.RuntimeConfig

	Settings settings.Store    // nil keeps settings in memory
	Results  ResultStore       // nil disables results
	Watcher  *settings.Watcher // reports external settings changes
	Hub      *spectate.Hub     // receives a view every few ticks
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Scale    breakout.CellScale // zero uses breakout.DefaultCellScale
}

// record is the per-game bookkeeping fed by session events. It is shared
// by every copy of the Model.
type record struct {
	ticks   uint64
	elapsed float64
	best    *storage.Result
	lastWin *storage.Result
}

// Model is the Bubble Tea model hosting one Breakout session.
type Model struct {
	session  *breakout.Session
	engine   string
	runtime  core.RuntimeConfig
	scale    breakout.CellScale
	screen   *core.Screen
	styles   Styles
	keys     KeyMap
	help     help.Model
	frame    core.InputFrame
	store    settings.Store
	results  ResultStore
	watcher  *settings.Watcher
	hub      *spectate.Hub
	log      *log.Logger
	rec      *record
	mode     mode
	editor   settingsEditor
	board    resultsBoard
	width    int
	height   int
	mouseX   int
	paused   bool
	quitting bool
}

// NewModel creates a model and its session. If the runtime config carries
// a screen size the field is laid out immediately.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	scale := opts.Scale
	if scale.W <= 0 || scale.H <= 0 {
		scale = breakout.DefaultCellScale
	}
	store := opts.Settings
	if store == nil {
		store = settings.NewMemoryStore()
	}

	set, err := store.Load()
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
		set = settings.Defaults()
	}

	cfg := opts.Config
	cfg.Validate()
	session, err := breakout.New(cfg, set,
		breakout.WithLogger(logger),
		breakout.WithSeed(rt.Seed),
	)
	if err != nil {
		return Model{}, err
	}

	engine := cfg.Physics.Engine
	if engine == "" {
		engine = physics.DefaultEngine
	}

	m := Model{
		session: session,
		engine:  engine,
		runtime: rt,
		scale:   scale,
		screen:  core.NewScreen(0, 0),
		styles:  NewStyles(opts.Renderer),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		frame:   core.NewInputFrame(),
		store:   store,
		results: opts.Results,
		watcher: opts.Watcher,
		hub:     opts.Hub,
		log:     logger,
		rec:     &record{},
		mouseX:  -1,
	}
	session.Subscribe(m.onEvent)

	if rt.ScreenW > 0 && rt.ScreenH > 0 {
		m.resize(rt.ScreenW, rt.ScreenH)
	}
	return m, nil
}

// onEvent keeps the game record. Only fields behind pointers are touched
// since the Model is copied on every update.
func (m Model) onEvent(e breakout.Event) {
	switch e.Kind {
	case breakout.EventNewGame:
		m.rec.elapsed = 0
		m.rec.lastWin = nil
		m.refreshBest()
	case breakout.EventGameWon:
		m.saveResult(e)
	}
}

func (m Model) saveResult(e breakout.Event) {
	r := storage.Result{
		BallsUsed: e.BallsUsed,
		Bricks:    m.session.Settings().Bricks,
		Score:     m.session.Score(),
		Duration:  time.Duration(m.rec.elapsed * float64(time.Second)),
		Engine:    m.engine,
		CreatedAt: time.Now(),
	}
	m.rec.lastWin = &r
	m.log.Info("game won", "balls_used", r.BallsUsed, "bricks", r.Bricks, "duration", r.Duration.Round(time.Millisecond))

	if m.results == nil {
		return
	}
	if _, err := m.results.SaveResult(r); err != nil {
		m.log.Warn("could not save result", "error", err)
		return
	}
	m.refreshBest()
}

func (m Model) refreshBest() {
	if m.results == nil {
		return
	}
	best, err := m.results.BestResult(m.session.Settings().Bricks)
	if err != nil {
		m.log.Warn("could not load best result", "error", err)
		return
	}
	m.rec.best = best
}

// Init starts the tick loop and the settings watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickDuration()), watchSettingsCmd(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.mode == modeResults {
			m.board, _ = m.board.Update(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()

	case SettingsChangedMsg:
		m.reloadSettings()
		return m, watchSettingsCmd(m.watcher)

	case settingsErrMsg:
		m.log.Warn("settings watcher error", "error", msg.err)
		return m, watchSettingsCmd(m.watcher)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.mode == modePlay && !m.paused {
			m.mouseX = MapMouseToFrame(msg, &m.frame, m.mouseX, m.scale.W)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSettings:
		var res editorResult
		m.editor, res = m.editor.Update(msg)
		switch res {
		case editorSaved:
			m.applySettings(m.editor.Value())
			m.mode, m.paused = modePlay, false
		case editorCancelled:
			m.mode, m.paused = modePlay, false
		}
		return m, nil

	case modeResults:
		var done bool
		m.board, done = m.board.Update(msg)
		if done {
			m.mode, m.paused = modePlay, false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Settings):
		m.editor = newSettingsEditor(m.session.Settings())
		m.mode, m.paused = modeSettings, true
	case key.Matches(msg, m.keys.Results):
		m.board = newResultsBoard(m.results, m.width, m.height)
		m.mode, m.paused = modeResults, true
	default:
		if !m.paused {
			m.keys.MapKeyToFrame(msg, &m.frame, panCells*m.scale.W)
		}
	}
	return m, nil
}

// handleTick feeds the collected input to the session and steps it.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.runtime.TickDuration())}

	if m.mode == modePlay && !m.paused {
		dt := m.runtime.TickSeconds()
		m.session.HandleInput(m.frame)
		if m.session.State() == breakout.StateRunning {
			m.rec.elapsed += dt
		}
		m.session.Step(dt)
		m.rec.ticks++

		if m.hub != nil && m.rec.ticks%spectate.DefaultEvery == 0 {
			cmds = append(cmds, broadcastCmd(m.hub, m.session.View()))
		}
	}
	m.frame.Clear()
	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	rows := max(height-chromeRows, 0)
	m.screen.Resize(width, rows)
	m.session.Resize(m.scale.Bounds(width, rows))
}

// applySettings stores s and hands it to the session.
func (m Model) applySettings(s settings.Settings) {
	if err := m.store.Save(s); err != nil {
		m.log.Warn("could not save settings", "error", err)
	}
	m.session.Configure(s)
	m.log.Debug("settings applied", "settings", m.session.Settings())
}

// reloadSettings picks up settings written by another process.
func (m Model) reloadSettings() {
	s, err := m.store.Load()
	if err != nil {
		m.log.Warn("could not reload settings", "error", err)
		return
	}
	if s.Clamp().Equal(m.session.Settings()) {
		return
	}
	m.log.Info("settings changed on disk", "settings", s)
	m.session.Configure(s)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case modeSettings:
		return m.editor.View(m.styles, m.width)
	case modeResults:
		return m.board.View(m.styles)
	}

	v := m.session.View()
	var b strings.Builder
	b.WriteString(m.hud(v))
	b.WriteString("\n")
	b.WriteString(m.field(v))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) hud(v breakout.View) string {
	line := m.styles.HUD.Render(breakout.Status(v))
	if best := m.rec.best; best != nil {
		line += m.styles.Best.Render("  Best: " + pluralBalls(best.BallsUsed))
	}
	return line
}

func (m Model) field(v breakout.View) string {
	rows := m.screen.Height()
	if v.State == breakout.StateWon {
		msg := breakout.WinMessage(v)
		if w := m.rec.lastWin; w != nil {
			msg += "\nTime: " + formatDuration(w.Duration)
		}
		msg += "\n\nPress r to play again"
		return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, m.styles.Banner.Render(msg))
	}

	m.screen.Clear()
	breakout.Render(v, m.screen, m.scale, 0)
	switch {
	case m.paused:
		m.screen.DrawTextCentered(rows/2, " PAUSED ", core.ColorBrightYellow)
	case v.State == breakout.StateRunning && !anyActive(v):
		m.screen.DrawTextCentered(rows/2, " Press space to launch ", core.ColorGray)
	}
	return m.styles.RenderScreen(m.screen)
}

func anyActive(v breakout.View) bool {
	for _, b := range v.Balls {
		if b.Active {
			return true
		}
	}
	return false
}

func pluralBalls(n int) string {
	if n == 1 {
		return "1 ball"
	}
	return fmt.Sprintf("%d balls", n)
}

// Session returns the hosted session.
func (m Model) Session() *breakout.Session {
	return m.session
}

// Run starts a Bubble Tea program for one local game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()
	return err
}
