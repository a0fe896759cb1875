package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// PerimeterSamples is the number of points sampled around a circular body.
const PerimeterSamples = 8

// Perimeter holds the sample points of a circle, index 0 at the top and each
// following index 45° further clockwise. Coordinates are y-up, so "top" is
// the largest Y.
type Perimeter [PerimeterSamples]r2.Point

// diagonal is cos(45°), the per-axis offset of a diagonal sample on a unit circle.
var diagonal = math.Cos(math.Pi / 4)

// sampleOffsets are unit offsets in index order: top, top-right, right,
// bottom-right, bottom, bottom-left, left, top-left.
var sampleOffsets = [PerimeterSamples]r2.Point{
	{X: 0, Y: 1},
	{X: diagonal, Y: diagonal},
	{X: 1, Y: 0},
	{X: diagonal, Y: -diagonal},
	{X: 0, Y: -1},
	{X: -diagonal, Y: -diagonal},
	{X: -1, Y: 0},
	{X: -diagonal, Y: diagonal},
}

// SamplePerimeter computes the eight perimeter samples of a circle.
// It is a pure function of center and radius.
func SamplePerimeter(center r2.Point, radius float64) Perimeter {
	var p Perimeter
	for i, off := range sampleOffsets {
		p[i] = center.Add(off.Mul(radius))
	}
	return p
}

// Translate moves every sample by d.
func (p *Perimeter) Translate(d r2.Point) {
	for i := range p {
		p[i] = p[i].Add(d)
	}
}

// Outside returns the indices of samples for which inside reports false,
// in ascending index order.
func (p *Perimeter) Outside(inside func(r2.Point) bool) []int {
	var out []int
	for i, pt := range p {
		if !inside(pt) {
			out = append(out, i)
		}
	}
	return out
}

// Matching returns the indices of samples for which hit reports true.
func (p *Perimeter) Matching(hit func(r2.Point) bool) []int {
	var out []int
	for i, pt := range p {
		if hit(pt) {
			out = append(out, i)
		}
	}
	return out
}
