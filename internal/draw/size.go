package draw

import (
	"os"

	"golang.org/x/term"
)

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reads the size of the terminal attached to os.Stdout.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
