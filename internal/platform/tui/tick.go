// Package tui hosts a Breakout session in a Bubble Tea program: it drives
// the tick loop, maps keys and mouse to session input, draws the field and
// persists finished games.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/spectate"
	"github.com/vovakirdan/tui-breakout/internal/settings"
)

// TickMsg is sent to trigger a simulation step.
type TickMsg time.Time

// tickCmd returns a command that sends one TickMsg after the tick interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SettingsChangedMsg reports that the settings file was written by
// someone else.
type SettingsChangedMsg struct{}

// settingsErrMsg carries a watcher error.
type settingsErrMsg struct{ err error }

// watchSettingsCmd waits for the next watcher event.
func watchSettingsCmd(w *settings.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			return SettingsChangedMsg{}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return settingsErrMsg{err: err}
		}
	}
}

// broadcastCmd sends v to spectators off the update loop.
func broadcastCmd(hub *spectate.Hub, v breakout.View) tea.Cmd {
	if hub == nil {
		return nil
	}
	return func() tea.Msg {
		//nolint:errcheck // spectators are best-effort
		hub.Broadcast(v)
		return nil
	}
}
