// Package rink models the playing surface: the five longitudinal zones whose
// union is the legal ice, and the two nets with their goalie creases.
package rink

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/physics"
)

var (
	// ErrCornerRadius is returned for a rounded end zone without a positive
	// corner radius, or a straight zone with one.
	ErrCornerRadius = errors.New("invalid zone corner radius")
	// ErrZoneSpan is returned when zones do not tile the rink length exactly.
	ErrZoneSpan = errors.New("zones do not span the rink")
)

// Side identifies one end of the rink.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ZoneKind is the shape class of a zone.
type ZoneKind int

const (
	NeutralZone    ZoneKind = iota // Center ice
	StraightZone                   // Goal line to blue line, plain rectangle
	RoundedEndZone                 // Behind the goal line, corners rounded
)

func (k ZoneKind) String() string {
	switch k {
	case NeutralZone:
		return "neutral"
	case StraightZone:
		return "straight"
	case RoundedEndZone:
		return "rounded-end"
	default:
		return fmt.Sprintf("ZoneKind(%d)", int(k))
	}
}

// Zone is one longitudinal section of the rink.
type Zone struct {
	Kind         ZoneKind
	Side         Side // Ignored for NeutralZone
	Bounds       r2.Rect
	CornerRadius float64
}

// NewZone validates and builds a zone spanning [xStart, xEnd] x [yStart, yEnd].
func NewZone(kind ZoneKind, side Side, xStart, xEnd, yStart, yEnd, cornerRadius float64) (Zone, error) {
	if xEnd <= xStart || yEnd <= yStart {
		return Zone{}, fmt.Errorf("%w: empty %s zone [%g,%g]x[%g,%g]", ErrZoneSpan, kind, xStart, xEnd, yStart, yEnd)
	}
	switch kind {
	case RoundedEndZone:
		if cornerRadius <= 0 {
			return Zone{}, fmt.Errorf("%w: rounded end zone needs a radius > 0, got %g", ErrCornerRadius, cornerRadius)
		}
		if cornerRadius*2 > yEnd-yStart {
			return Zone{}, fmt.Errorf("%w: radius %g exceeds half the zone height", ErrCornerRadius, cornerRadius)
		}
	default:
		if cornerRadius != 0 {
			return Zone{}, fmt.Errorf("%w: %s zone must not have a radius, got %g", ErrCornerRadius, kind, cornerRadius)
		}
	}
	return Zone{
		Kind:         kind,
		Side:         side,
		Bounds:       r2.Rect{X: r1.Interval{Lo: xStart, Hi: xEnd}, Y: r1.Interval{Lo: yStart, Hi: yEnd}},
		CornerRadius: cornerRadius,
	}, nil
}

// XStart returns the left edge of the zone.
func (z Zone) XStart() float64 { return z.Bounds.X.Lo }

// XEnd returns the right edge of the zone.
func (z Zone) XEnd() float64 { return z.Bounds.X.Hi }

// Length returns the zone's extent along the rink.
func (z Zone) Length() float64 { return z.Bounds.X.Length() }

// Contains reports whether p lies on the legal ice of this zone.
// Edges are inclusive.
func (z Zone) Contains(p r2.Point) bool {
	if !z.Bounds.ContainsPoint(p) {
		return false
	}
	if z.Kind != RoundedEndZone {
		return true
	}

	r := z.CornerRadius
	lowY, highY := z.Bounds.Y.Lo+r, z.Bounds.Y.Hi-r

	// Band between the two corner circles.
	if p.Y >= lowY && p.Y <= highY {
		return true
	}

	// Column on the center-ice side of the corner circles.
	var cornerX float64
	if z.Side == Left {
		cornerX = z.Bounds.X.Lo + r
		if p.X >= cornerX {
			return true
		}
	} else {
		cornerX = z.Bounds.X.Hi - r
		if p.X <= cornerX {
			return true
		}
	}

	cornerY := lowY
	if p.Y > highY {
		cornerY = highY
	}
	return physics.PointInCircle(p, r2.Point{X: cornerX, Y: cornerY}, r)
}

// CornerCenters returns the centers of the two rounding circles of an end
// zone, bottom first. Straight zones return ok=false.
func (z Zone) CornerCenters() (bottom, top r2.Point, ok bool) {
	if z.Kind != RoundedEndZone {
		return r2.Point{}, r2.Point{}, false
	}
	r := z.CornerRadius
	x := z.Bounds.X.Lo + r
	if z.Side == Right {
		x = z.Bounds.X.Hi - r
	}
	return r2.Point{X: x, Y: z.Bounds.Y.Lo + r}, r2.Point{X: x, Y: z.Bounds.Y.Hi - r}, true
}
