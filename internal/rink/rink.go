package rink

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/physics"
)

// ZoneCount is the number of zones a rink is split into.
const ZoneCount = 5

// zoneOrder is the required kind/side sequence from the left boards.
var zoneOrder = [ZoneCount]struct {
	kind ZoneKind
	side Side
}{
	{RoundedEndZone, Left},
	{StraightZone, Left},
	{NeutralZone, Left},
	{StraightZone, Right},
	{RoundedEndZone, Right},
}

// Rink is the playing surface: five zones laid end to end plus two nets.
// It is built once and shared by reference with every actor.
type Rink struct {
	zones  [ZoneCount]Zone
	nets   [2]*Net
	length float64
	height float64
}

// New builds a rink from the tuning's dimensions. The left boards sit at
// x = 0 and the bottom boards at y = 0. Nets are centered vertically on the
// two goal lines.
func New(t config.Tuning) (*Rink, error) {
	rc := t.Rink
	fractions := [ZoneCount]float64{
		rc.EndZoneFraction,
		rc.AttackZoneFraction,
		rc.NeutralFraction,
		rc.AttackZoneFraction,
		rc.EndZoneFraction,
	}

	var zones [ZoneCount]Zone
	x := 0.0
	for i, f := range fractions {
		end := x + f*rc.Length
		radius := 0.0
		if zoneOrder[i].kind == RoundedEndZone {
			radius = rc.CornerRadius
		}
		z, err := NewZone(zoneOrder[i].kind, zoneOrder[i].side, x, end, 0, rc.Height, radius)
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
		zones[i] = z
		x = end
	}

	netY := rc.Height/2 - t.Net.OpeningLength/2
	nets := [2]*Net{
		NewNet(r2.Point{X: zones[0].XEnd(), Y: netY}, Left, t.Net),
		NewNet(r2.Point{X: zones[4].XStart(), Y: netY}, Right, t.Net),
	}
	return NewFromZones(zones, nets, rc.Length, rc.Height)
}

// NewFromZones validates caller-supplied geometry: zones must appear in
// board-to-board order, be contiguous, start at x = 0 and together span
// exactly length.
func NewFromZones(zones [ZoneCount]Zone, nets [2]*Net, length, height float64) (*Rink, error) {
	tol := physics.Epsilon * math.Max(1, length)

	if math.Abs(zones[0].XStart()) > tol {
		return nil, fmt.Errorf("%w: first zone starts at %g, want 0", ErrZoneSpan, zones[0].XStart())
	}
	total := 0.0
	for i, z := range zones {
		if z.Kind != zoneOrder[i].kind || (z.Kind != NeutralZone && z.Side != zoneOrder[i].side) {
			return nil, fmt.Errorf("%w: zone %d is %s/%s, want %s/%s",
				ErrZoneSpan, i, z.Kind, z.Side, zoneOrder[i].kind, zoneOrder[i].side)
		}
		if i > 0 && math.Abs(z.XStart()-zones[i-1].XEnd()) > tol {
			return nil, fmt.Errorf("%w: zone %d starts at %g, previous ends at %g",
				ErrZoneSpan, i, z.XStart(), zones[i-1].XEnd())
		}
		total += z.Length()
	}
	if math.Abs(total-length) > tol {
		return nil, fmt.Errorf("%w: zones total %g, rink length %g", ErrZoneSpan, total, length)
	}
	if nets[0] == nil || nets[1] == nil || nets[0].Side != Left || nets[1].Side != Right {
		return nil, fmt.Errorf("%w: nets must be [left, right]", ErrZoneSpan)
	}

	return &Rink{zones: zones, nets: nets, length: length, height: height}, nil
}

// Contains reports whether p is on the ice, i.e. inside at least one zone.
func (r *Rink) Contains(p r2.Point) bool {
	for _, z := range r.zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// ViolatedSamples returns the perimeter indices that are off the ice,
// ascending. An empty result means the body is fully contained.
func (r *Rink) ViolatedSamples(p *physics.Perimeter) []int {
	return p.Outside(r.Contains)
}

// TouchingBoards reports whether any perimeter sample is off the ice.
func (r *Rink) TouchingBoards(p *physics.Perimeter) bool {
	for _, pt := range p {
		if !r.Contains(pt) {
			return true
		}
	}
	return false
}

// Zones returns the five zones from the left boards to the right boards.
func (r *Rink) Zones() [ZoneCount]Zone { return r.zones }

// Nets returns the nets, index 0 left and 1 right.
func (r *Rink) Nets() [2]*Net { return r.nets }

// Net returns the net at the given end.
func (r *Rink) Net(side Side) *Net { return r.nets[side] }

// Length returns the horizontal size of the rink.
func (r *Rink) Length() float64 { return r.length }

// Height returns the vertical size of the rink.
func (r *Rink) Height() float64 { return r.height }

// Center returns center ice.
func (r *Rink) Center() r2.Point {
	return r2.Point{X: r.length / 2, Y: r.height / 2}
}
