package core

// Color represents a foreground color for a screen cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// rowPalette cycles through brick rows from the top.
var rowPalette = []Color{
	ColorBrightRed,
	ColorOrange,
	ColorBrightYellow,
	ColorGreen,
	ColorBrightCyan,
	ColorBlue,
	ColorMagenta,
	ColorRed,
}

// RowColor returns the brick color for the given grid row.
func RowColor(row int) Color {
	if row < 0 {
		row = -row
	}
	return rowPalette[row%len(rowPalette)]
}
