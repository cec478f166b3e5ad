package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// palette maps core colors to ANSI color numbers.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightYellow: "11",
	core.ColorBrightCyan:   "14",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
}

// Styles holds the lipgloss styles of the game screen. Each SSH session
// builds its own from its renderer.
type Styles struct {
	cells   map[core.Color]lipgloss.Style
	HUD     lipgloss.Style
	Best    lipgloss.Style
	Banner  lipgloss.Style
	Help    lipgloss.Style
	Title   lipgloss.Style
	Faint   lipgloss.Style
	Focused lipgloss.Style
}

// NewStyles creates styles bound to r. A nil renderer uses the default.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	s := Styles{
		cells: make(map[core.Color]lipgloss.Style, len(palette)+1),
		HUD:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Best:  r.NewStyle().Foreground(lipgloss.Color("241")),
		Banner: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Help:    r.NewStyle().Foreground(lipgloss.Color("241")),
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		Faint:   r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Focused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
	s.cells[core.ColorDefault] = r.NewStyle()
	for c, ansi := range palette {
		s.cells[c] = r.NewStyle().Foreground(lipgloss.Color(ansi))
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string. Adjacent cells
// of the same color share one escape sequence.
func (st Styles) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(st.RenderRow(s, y))
	}
	return sb.String()
}

// RenderRow renders one screen row.
func (st Styles) RenderRow(s *core.Screen, y int) string {
	var sb strings.Builder
	var run strings.Builder
	x := 0
	for x < s.Width() {
		color := s.GetCell(x, y).Color
		run.Reset()
		for x < s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}
		style, ok := st.cells[color]
		if !ok {
			style = st.cells[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
