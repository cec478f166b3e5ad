package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// maxResults is how many wins the results screen loads.
const maxResults = 100

// ResultStore persists won games.
type ResultStore interface {
	SaveResult(r storage.Result) (int64, error)
	RecentResults(limit int) ([]storage.Result, error)
	BestResult(bricks int) (*storage.Result, error)
}

// boardKeyMap defines the key bindings of the results screen.
type boardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys("esc", "b", "t"), key.WithHelp("esc", "back")),
	}
}

// resultsBoard lists recent wins in a table.
type resultsBoard struct {
	results []storage.Result
	err     error
	table   table.Model
	keys    boardKeyMap
	width   int
	height  int
}

func newResultsBoard(store ResultStore, width, height int) resultsBoard {
	b := resultsBoard{
		keys:   defaultBoardKeyMap(),
		width:  width,
		height: height,
	}
	if store != nil {
		b.results, b.err = store.RecentResults(maxResults)
	}
	b.table = b.createTable()
	b.updateRows()
	return b
}

func (b *resultsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Balls", Width: 6},
		{Title: "Bricks", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Engine", Width: 9},
		{Title: "Date", Width: 13},
	}

	width := 0
	for _, c := range columns {
		width += c.Width + 2 // cell padding
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithWidth(width),
		table.WithFocused(true),
		table.WithHeight(max(b.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (b *resultsBoard) updateRows() {
	rows := make([]table.Row, len(b.results))
	for i, r := range b.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.BallsUsed),
			fmt.Sprintf("%d", r.Bricks),
			formatDuration(r.Duration),
			r.Engine,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// Update handles a message and reports whether the player left.
func (b resultsBoard) Update(msg tea.Msg) (resultsBoard, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, b.keys.Back) {
			return b, true
		}
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.table = b.createTable()
		b.updateRows()
		return b, false
	}
	b.table, _ = b.table.Update(msg)
	return b, false
}

// View renders the board.
func (b resultsBoard) View(st Styles) string {
	var sb strings.Builder

	sb.WriteString(st.Title.Render(centerText("RECENT WINS", b.width)))
	sb.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case b.err != nil:
		content = st.Faint.Padding(2, 4).Render("Results unavailable:\n" + b.err.Error())
	case len(b.results) == 0:
		content = st.Faint.Padding(2, 4).Render("No wins recorded yet.\nClear the field to get on the board!")
	default:
		content = b.table.View()
	}
	sb.WriteString(lipgloss.PlaceHorizontal(b.width, lipgloss.Center, box.Render(content)))

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render(helpLine(b.keys.ShortHelp())))
	return sb.String()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
