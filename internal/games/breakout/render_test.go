package breakout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/settings"
)

func TestRender(t *testing.T) {
	s := newTestSession(t, settings.Defaults())
	screen := core.NewScreen(50, 51)

	Render(s.View(), screen, DefaultCellScale, 1)

	tests := []struct {
		name     string
		x, y     int
		expected rune
	}{
		{"brick 0", 2, 7, BrickChar},
		{"paddle", 25, 43, PaddleChar},
		{"parked ball", 25, 42, BallChar},
		{"upper wall", 10, 1, WallTopChar},
		{"left wall", 1, 20, WallVertChar},
		{"hud row untouched", 10, 0, ' '},
	}
	for _, tt := range tests {
		if got := screen.Get(tt.x, tt.y); got != tt.expected {
			t.Errorf("%s: Get(%d, %d) = %q, expected %q", tt.name, tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRenderFadingBrick(t *testing.T) {
	s := newTestSession(t, settings.Defaults())
	s.hitBrick(0)
	screen := core.NewScreen(50, 50)

	Render(s.View(), screen, DefaultCellScale, 0)
	if got := screen.GetCell(2, 6); got.Rune != FadingChar || got.Color != core.ColorGray {
		t.Errorf("fading brick cell = %+v, expected %q in gray", got, FadingChar)
	}

	s.Step(0.3)
	screen.Clear()
	Render(s.View(), screen, DefaultCellScale, 0)
	if got := screen.Get(2, 6); got != VanishChar {
		t.Errorf("vanishing brick cell = %q, expected %q", got, VanishChar)
	}

	s.Step(0.3)
	screen.Clear()
	Render(s.View(), screen, DefaultCellScale, 0)
	if got := screen.Get(2, 6); got != ' ' {
		t.Errorf("removed brick cell = %q, expected blank", got)
	}
}

func TestStatus(t *testing.T) {
	v := View{Score: 4, BallsUsed: 2}
	if got := Status(v); got != "Score: 4  Balls used: 2" {
		t.Errorf("Status() = %q", got)
	}
	if got := WinMessage(v); !strings.Contains(got, "2 balls") {
		t.Errorf("WinMessage() = %q, expected ball count", got)
	}
}

func TestViewJSON(t *testing.T) {
	s := newTestSession(t, settings.Settings{Balls: 1, Bricks: 1, Bounciness: 1})
	data, err := json.Marshal(s.View())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	for _, want := range []string{`"state":"running"`, `"state":"alive"`, `"balls_used":1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}
}
