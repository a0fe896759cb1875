package client

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
)

// arcSteps is the number of segments per quarter circle of the boards.
const arcSteps = 8

// drawRink draws the static markings of the rink. Positions are rink units;
// ctx flips them onto the canvas.
func drawRink(ctx object.DrawContext, r *rink.Rink) {
	ctx.Canvas.DrawPolygon(boardOutline(ctx, r), false)

	zones := r.Zones()
	for i := 1; i < rink.ZoneCount; i++ {
		step := 2.0 // Blue lines
		if zones[i-1].Kind == rink.RoundedEndZone || zones[i].Kind == rink.RoundedEndZone {
			step = 1 // Goal lines
		}
		dottedLine(ctx, r, zones[i].XStart(), step)
	}
	dottedLine(ctx, r, r.Center().X, 3)
	ctx.Canvas.DrawCircle(ctx.ToCanvas(r.Center()), 0.5, true)

	for _, n := range r.Nets() {
		drawCrease(ctx, n.Crease())
		drawNet(ctx, n)
	}
}

// boardOutline returns the rounded rectangle of the boards, in canvas space.
// Points on the bottom and right boards are pulled in by one pixel so they
// land on the canvas.
func boardOutline(ctx object.DrawContext, r *rink.Rink) []draw.Point {
	cv := ctx.Canvas
	px := cv.LogicalWidth() / float64(cv.TerminalWidth())
	py := cv.LogicalHeight() / float64(2*cv.TerminalHeight())

	zones := r.Zones()
	leftBottom, leftTop, _ := zones[0].CornerCenters()
	rightBottom, rightTop, _ := zones[rink.ZoneCount-1].CornerCenters()
	corners := []struct {
		center r2.Point
		radius float64
		from   float64 // Degrees, counter-clockwise in rink space
	}{
		{leftBottom, zones[0].CornerRadius, 180},
		{rightBottom, zones[rink.ZoneCount-1].CornerRadius, 270},
		{rightTop, zones[rink.ZoneCount-1].CornerRadius, 0},
		{leftTop, zones[0].CornerRadius, 90},
	}

	pts := make([]draw.Point, 0, len(corners)*(arcSteps+1))
	for _, c := range corners {
		for i := 0; i <= arcSteps; i++ {
			a := (c.from + 90*float64(i)/arcSteps) * math.Pi / 180
			p := r2.Point{
				X: math.Min(c.center.X+c.radius*math.Cos(a), r.Length()-px),
				Y: math.Max(c.center.Y+c.radius*math.Sin(a), py),
			}
			pts = append(pts, ctx.ToCanvas(p))
		}
	}
	return pts
}

// dottedLine marks a vertical line across the ice at x, one dot every step.
func dottedLine(ctx object.DrawContext, r *rink.Rink, x, step float64) {
	for y := step / 2; y < r.Height(); y += step {
		p := r2.Point{X: x, Y: y}
		if r.Contains(p) {
			c := ctx.ToCanvas(p)
			ctx.Canvas.SetFloat(c.X, c.Y)
		}
	}
}

// drawCrease draws the half circle on the ice side of the goal line.
func drawCrease(ctx object.DrawContext, c rink.GoalieCrease) {
	from, to := -90.0, 90.0
	if c.Side == rink.Right {
		from, to = 90, 270
	}
	arc(ctx, c.Center, c.Radius, from, to)
}

// arc draws a rink-space arc given in degrees counter-clockwise. The y flip
// mirrors angles, so the canvas arc runs from -to to -from.
func arc(ctx object.DrawContext, center r2.Point, radius, fromDeg, toDeg float64) {
	rad := math.Pi / 180
	ctx.Canvas.DrawArc(ctx.ToCanvas(center), radius, -toDeg*rad, -fromDeg*rad)
}

// drawNet fills the posts and outlines the opening.
func drawNet(ctx object.DrawContext, n *rink.Net) {
	for _, post := range []r2.Rect{n.TopPost(), n.BottomPost(), n.BackPost()} {
		lo, hi := rectCorners(ctx, post)
		ctx.Canvas.DrawRect(lo, hi, true)
	}
	lo, hi := rectCorners(ctx, n.Opening())
	ctx.Canvas.DrawRect(lo, hi, false)
}

// rectCorners converts a rink rectangle into canvas corners.
func rectCorners(ctx object.DrawContext, rect r2.Rect) (lo, hi draw.Point) {
	a := ctx.ToCanvas(rect.Lo())
	b := ctx.ToCanvas(rect.Hi())
	return draw.Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)}, draw.Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}
