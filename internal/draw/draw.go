// Package draw renders a logical pixel canvas onto an ANSI terminal.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is an xterm-256 palette index.
type Color uint8

// Palette used by the renderers.
const (
	ColorWhite  Color = 15
	ColorSnow   Color = 254
	ColorRed    Color = 196
	ColorGreen  Color = 28
	ColorPine   Color = 22
	ColorGray   Color = 244
	ColorStone  Color = 240
	ColorYellow Color = 220
	ColorOrange Color = 208
	ColorBlue   Color = 27
	ColorCyan   Color = 51
	ColorPurple Color = 135
	ColorBrown  Color = 94
)

// Foreground returns the escape sequence selecting c as text color.
func Foreground(c Color) string {
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// Background returns the escape sequence selecting c as cell background.
func Background(c Color) string {
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

// ANSI attribute sequences for text overlays.
const (
	ColorReset = "\033[0m"
	TextBold   = "\033[1m"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
