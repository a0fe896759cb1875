package object

import (
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/shootout/internal/draw"
)

// Text is an overlay label. Coordinates are 1-based canvas cells.
type Text struct {
	X     int
	Y     int
	Value string
	Style string // Optional SGR sequence, reset after Value
}

// Width is the number of terminal columns Value occupies.
func (t Text) Width() int {
	return runewidth.StringWidth(t.Value)
}

// styledWriter positions text itself, applying any canvas offset.
type styledWriter interface {
	WriteStyled(col, row int, style, s string)
}

// Render writes the text at its position using ANSI cursor movement.
func (t Text) Render(w io.Writer) error {
	if t.Value == "" {
		return nil
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	if sw, ok := w.(styledWriter); ok {
		sw.WriteStyled(x, y, t.Style, t.Value)
		return nil
	}
	draw.MoveCursor(w, x, y)
	value := t.Value
	if t.Style != "" {
		value = t.Style + value + draw.ColorReset
	}
	_, err := io.WriteString(w, value)
	return err
}

// Draw implements Object.
func (t Text) Draw(ctx DrawContext) error {
	return t.Render(ctx.Writer)
}
