// Package draw renders to ANSI terminals: a half-block pixel canvas, a
// frame writer for SSH-friendly output and a few cursor helpers.
package draw

import (
	"fmt"
	"io"
)

// Point is a canvas coordinate in logical units, y-down.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI SGR colors.
const (
	ColorReset      = "\033[0m"
	ColorRed        = "\033[31m"
	ColorBlue       = "\033[34m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
	ColorBold       = "\033[1m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
