package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/settings"
)

// editorKeyMap defines the key bindings of the settings editor.
type editorKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Dec   key.Binding
	Inc   key.Binding
	Save  key.Binding
	Reset key.Binding
	Back  key.Binding
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Dec, k.Inc, k.Save, k.Reset, k.Back}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Dec:   key.NewBinding(key.WithKeys("left", "h", "a", "-"), key.WithHelp("←/-", "less")),
		Inc:   key.NewBinding(key.WithKeys("right", "l", "d", "+", "="), key.WithHelp("→/+", "more")),
		Save:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "defaults")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "cancel")),
	}
}

const bouncinessStep = 0.1

// editorResult is what the player did in the editor.
type editorResult int

const (
	editorEditing editorResult = iota
	editorSaved
	editorCancelled
)

// settingsEditor edits balls, bricks and bounciness. Changing balls or
// bricks starts a new game once applied.
type settingsEditor struct {
	value  settings.Settings
	start  settings.Settings
	cursor int
	keys   editorKeyMap
}

func newSettingsEditor(current settings.Settings) settingsEditor {
	return settingsEditor{
		value: current,
		start: current,
		keys:  defaultEditorKeyMap(),
	}
}

// Update handles a key press.
func (e settingsEditor) Update(msg tea.KeyMsg) (settingsEditor, editorResult) {
	switch {
	case key.Matches(msg, e.keys.Back):
		return e, editorCancelled
	case key.Matches(msg, e.keys.Save):
		return e, editorSaved
	case key.Matches(msg, e.keys.Up):
		if e.cursor > 0 {
			e.cursor--
		}
	case key.Matches(msg, e.keys.Down):
		if e.cursor < 2 {
			e.cursor++
		}
	case key.Matches(msg, e.keys.Dec):
		e.adjust(-1)
	case key.Matches(msg, e.keys.Inc):
		e.adjust(1)
	case key.Matches(msg, e.keys.Reset):
		e.value = settings.Defaults().Clamp()
	}
	return e, editorEditing
}

func (e *settingsEditor) adjust(dir int) {
	switch e.cursor {
	case 0:
		e.value.Balls += dir
	case 1:
		e.value.Bricks += dir
	case 2:
		b := e.value.Bounciness + float64(dir)*bouncinessStep
		e.value.Bounciness = math.Round(b*10) / 10
	}
	e.value = e.value.Clamp()
}

// Value returns the edited settings.
func (e settingsEditor) Value() settings.Settings {
	return e.value
}

// View renders the editor.
func (e settingsEditor) View(st Styles, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.Title.Render(centerText("S E T T I N G S", width)))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Number of balls    < %d >", e.value.Balls),
		fmt.Sprintf("Number of bricks   < %d >", e.value.Bricks),
		fmt.Sprintf("Ball bounciness    < %.1f >", e.value.Bounciness),
	}
	for i, row := range rows {
		line := "  " + row
		if i == e.cursor {
			line = st.Focused.Render("> " + row)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if e.value.NeedsRestart(e.start) {
		b.WriteString(centerText(st.Faint.Render("Applying starts a new game"), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(st.Help.Render(helpLine(e.keys.ShortHelp())), width))
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  •  ")
}
