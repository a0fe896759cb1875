package object

import (
	"io"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text overlays)
	Height float64      // Rink height, used to flip y-up rink coordinates
}

// ToCanvas converts a rink position (y-up) to canvas coordinates (y-down).
func (ctx DrawContext) ToCanvas(p r2.Point) draw.Point {
	return draw.Point{X: p.X, Y: ctx.Height - p.Y}
}

// Object is anything a client draws for a frame. Shapes go to ctx.Canvas
// before it is rendered; text goes to ctx.Writer after, on top of it.
type Object interface {
	Draw(ctx DrawContext) error
}

var (
	_ Object = Body{}
	_ Object = Text{}
)
