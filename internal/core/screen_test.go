package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColor(3, 2, '#', ColorRed)
	cell := s.GetCell(3, 2)
	if cell.Rune != '#' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected '#' in red", cell)
	}

	// Out of bounds writes are ignored and reads return blanks
	s.Set(-1, 0, 'X')
	s.Set(10, 0, 'X')
	s.Set(0, 5, 'X')
	if s.Get(-1, 0) != ' ' {
		t.Errorf("Get(-1, 0) = %q, expected space", s.Get(-1, 0))
	}
	if strings.Contains(s.String(), "X") {
		t.Error("out-of-bounds Set should not modify the buffer")
	}
}

func TestScreenFillRectClips(t *testing.T) {
	s := NewScreen(5, 3)
	s.FillRect(-2, -1, 3, 2, '=', ColorBlue)

	expected := "===  \n===  \n     "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
	if s.GetCell(2, 1).Color != ColorBlue {
		t.Errorf("GetCell(2, 1).Color = %v, expected ColorBlue", s.GetCell(2, 1).Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "Win", ColorYellow)

	if s.Row(0) != "    Win    " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}

	s.Clear()
	s.DrawText(9, 0, "abc", ColorDefault)
	if s.Row(0) != "         ab" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(0, 0, 'x')
	s.Resize(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("Resize() gave %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Errorf("Resize() should clear content, got %q", s.Get(0, 0))
	}
}
