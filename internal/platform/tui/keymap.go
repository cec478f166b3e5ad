package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// panCells is how far one key press moves the paddle, in cells.
const panCells = 3

// KeyMap defines the key bindings while playing.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Launch   key.Binding
	Restart  key.Binding
	Pause    key.Binding
	Settings key.Binding
	Results  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Launch, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Launch, k.Restart},
		{k.Pause, k.Settings, k.Results},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "launch"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "new game"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Results: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "results"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKeyToFrame adds the game input for msg to frame. panStep is the pan
// distance of one key press in world units. It reports whether the key
// belonged to the game.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, panStep float64) bool {
	switch {
	case key.Matches(msg, k.Left):
		frame.AddPan(-panStep)
	case key.Matches(msg, k.Right):
		frame.AddPan(panStep)
	case key.Matches(msg, k.Launch):
		frame.Set(core.ActionLaunch)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
	default:
		return false
	}
	return true
}

// MapMouseToFrame translates mouse motion into a pan and a left click
// into a launch. lastX is the previous pointer column, or -1 if unknown;
// the new column is returned.
func MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame, lastX int, cellW float64) int {
	switch msg.Action {
	case tea.MouseActionMotion:
		if lastX >= 0 && msg.X != lastX {
			frame.AddPan(float64(msg.X-lastX) * cellW)
		}
		return msg.X
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			frame.Set(core.ActionLaunch)
		}
		return msg.X
	}
	return lastX
}
