package rink

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/physics"
)

// GoalieCrease is the semicircle in front of a net's opening that confines
// the net's goalie. It lies on the ice side of the goal line.
type GoalieCrease struct {
	Center r2.Point
	Radius float64
	Side   Side
}

// Contains reports whether p is within the crease radius and not behind the
// goal line.
func (c GoalieCrease) Contains(p r2.Point) bool {
	if !physics.PointInCircle(p, c.Center, c.Radius) {
		return false
	}
	if c.Side == Left {
		return p.X >= c.Center.X
	}
	return p.X <= c.Center.X
}

// Net is a goal. Origin is the bottom of the opening on the goal line; the
// body extends away from center ice by SideLength and is walled by posts of
// the given Thickness.
type Net struct {
	Origin        r2.Point
	OpeningLength float64
	SideLength    float64
	Thickness     float64
	Side          Side

	crease GoalieCrease
	scored bool

	// Solid strips and the opening, derived once at construction.
	topPost, bottomPost, backPost, frontFace, opening r2.Rect
}

// NewNet builds a net whose opening starts at origin on the goal line.
func NewNet(origin r2.Point, side Side, cfg config.Net) *Net {
	n := &Net{
		Origin:        origin,
		OpeningLength: cfg.OpeningLength,
		SideLength:    cfg.SideLength,
		Thickness:     cfg.Thickness,
		Side:          side,
	}
	n.crease = GoalieCrease{
		Center: n.OpeningMidpoint(),
		Radius: cfg.CreaseRadius,
		Side:   side,
	}
	n.buildRegions()
	return n
}

// depth returns the signed X direction from the goal line into the net.
func (n *Net) depth() float64 {
	if n.Side == Left {
		return -1
	}
	return 1
}

// span returns the interval between x and x moved dist into the net.
func (n *Net) span(x, dist float64) r1.Interval {
	return r1.IntervalFromPoint(x).AddPoint(x + n.depth()*dist)
}

func (n *Net) buildRegions() {
	gx := n.Origin.X
	lo := n.Origin.Y
	hi := n.Origin.Y + n.OpeningLength
	t := n.Thickness

	body := n.span(gx, n.SideLength)
	n.opening = r2.Rect{X: body, Y: r1.Interval{Lo: lo, Hi: hi}}
	n.bottomPost = r2.Rect{X: body, Y: r1.Interval{Lo: lo - t, Hi: lo}}
	n.topPost = r2.Rect{X: body, Y: r1.Interval{Lo: hi, Hi: hi + t}}
	n.backPost = r2.Rect{
		X: n.span(gx+n.depth()*n.SideLength, t),
		Y: r1.Interval{Lo: lo - t, Hi: hi + t},
	}
	n.frontFace = r2.Rect{X: n.span(gx, t), Y: r1.Interval{Lo: lo, Hi: hi}}
}

// TopPost returns the solid strip above the opening.
func (n *Net) TopPost() r2.Rect { return n.topPost }

// BottomPost returns the solid strip below the opening.
func (n *Net) BottomPost() r2.Rect { return n.bottomPost }

// BackPost returns the solid strip closing the back of the net.
func (n *Net) BackPost() r2.Rect { return n.backPost }

// FrontFace returns the strip spanning the opening flush with the goal line.
// It is solid for everything except the puck.
func (n *Net) FrontFace() r2.Rect { return n.frontFace }

// Opening returns the interior rectangle between the posts.
func (n *Net) Opening() r2.Rect { return n.opening }

// GoalLineX returns the X of the goal line the net sits on.
func (n *Net) GoalLineX() float64 { return n.Origin.X }

// OpeningMidpoint returns the middle of the opening on the goal line.
func (n *Net) OpeningMidpoint() r2.Point {
	return r2.Point{X: n.Origin.X, Y: n.Origin.Y + n.OpeningLength/2}
}

// Crease returns the net's goalie crease.
func (n *Net) Crease() GoalieCrease { return n.crease }

// Solid reports whether p lies in the net structure. When passOpening is set
// (the puck), the front face is treated as open.
func (n *Net) Solid(p r2.Point, passOpening bool) bool {
	if n.topPost.ContainsPoint(p) || n.bottomPost.ContainsPoint(p) || n.backPost.ContainsPoint(p) {
		return true
	}
	return !passOpening && n.frontFace.ContainsPoint(p)
}

// CollidingSamples returns the perimeter indices that lie in the net
// structure, ascending. isPuck selects the puck rule.
func (n *Net) CollidingSamples(p *physics.Perimeter, isPuck bool) []int {
	return p.Matching(func(pt r2.Point) bool {
		return n.Solid(pt, isPuck)
	})
}

// CheckGoal reports whether the puck's center is strictly inside the
// opening, and latches the scored flag when it is. A puck leaving the net
// afterwards does not clear the flag.
func (n *Net) CheckGoal(puckCenter r2.Point) bool {
	if n.opening.InteriorContainsPoint(puckCenter) {
		n.scored = true
		return true
	}
	return false
}

// Scored reports whether a goal has been registered since the last Reset.
func (n *Net) Scored() bool { return n.scored }

// Reset clears the scored flag for a new attempt.
func (n *Net) Reset() { n.scored = false }
