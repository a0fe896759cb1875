package object

import (
	"github.com/golang/geo/r2"
	"github.com/mattn/go-runewidth"

	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/physics"
)

// Body returns a copy of the actor's drawable state.
func (a *Actor) Body() Body {
	return Body{Kind: a.kind, Position: a.position, Radius: a.radius, Angle: a.angle}
}

// Body is an immutable view of an actor, safe to hand to renderers running
// on other goroutines.
type Body struct {
	Kind     Kind
	Position r2.Point
	Radius   float64
	Angle    float64
	Label    string // Optional name drawn next to the body
}

// Draw renders the body as a circle. Players get a stick line showing the
// way they face. Labels are text and are placed separately with LabelText.
func (b Body) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil {
		return nil
	}
	center := ctx.ToCanvas(b.Position)

	switch b.Kind {
	case KindPuck:
		ctx.Canvas.DrawCircle(center, b.Radius, true)
	case KindSkater:
		ctx.Canvas.DrawCircle(center, b.Radius, true)
		b.drawStick(ctx, center)
	case KindGoalie:
		ctx.Canvas.DrawCircle(center, b.Radius, false)
		b.drawStick(ctx, center)
	}
	return nil
}

// LabelText places the body's label centered above it, in 1-based canvas
// cells. ok is false for an unlabeled body.
func (b Body) LabelText(ctx DrawContext) (t Text, ok bool) {
	if b.Label == "" || ctx.Canvas == nil {
		return Text{}, false
	}
	center := ctx.ToCanvas(b.Position)
	col, row := ctx.Canvas.LogicalToTerminal(center.X, center.Y-b.Radius-1)
	return Text{X: col - runewidth.StringWidth(b.Label)/2, Y: row - 1, Value: b.Label}, true
}

func (b Body) drawStick(ctx DrawContext, center draw.Point) {
	tip := ctx.ToCanvas(b.Position.Add(physics.FromAngle(b.Angle, b.Radius*1.6)))
	ctx.Canvas.DrawLine(center, tip)
}
