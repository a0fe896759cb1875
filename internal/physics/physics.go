// Package physics provides the geometric primitives shared by the rink and the
// actors: distances, perimeter sampling and the board/net reflection model.
package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Epsilon is the tolerance used when comparing derived geometry.
const Epsilon = 1e-9

// Distance calculates the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// PointInCircle checks if a point is within radius of a center (inclusive).
func PointInCircle(p, center r2.Point, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(c1 r2.Point, rad1 float64, c2 r2.Point, rad2 float64) bool {
	minDist := rad1 + rad2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// ClampComponents limits each component of v to [-max, max].
func ClampComponents(v r2.Point, max float64) r2.Point {
	return r2.Point{
		X: math.Max(-max, math.Min(max, v.X)),
		Y: math.Max(-max, math.Min(max, v.Y)),
	}
}

// FromAngle returns the vector of the given length pointing at angle degrees,
// measured counter-clockwise from +X.
func FromAngle(degrees, length float64) r2.Point {
	rad := degrees * math.Pi / 180
	return r2.Point{X: length * math.Cos(rad), Y: length * math.Sin(rad)}
}

// AngleOf returns the direction of v in degrees in (-180, 180].
// The zero vector yields 0.
func AngleOf(v r2.Point) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Mirror reflects v about the line whose normal is n, but only when v points
// against n. A zero normal or a separating velocity leaves v unchanged.
func Mirror(v, n r2.Point) r2.Point {
	if n.X == 0 && n.Y == 0 {
		return v
	}
	n = n.Normalize()
	d := v.Dot(n)
	if d >= 0 {
		return v
	}
	return v.Sub(n.Mul(2 * d))
}
