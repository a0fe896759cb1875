package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// ErrSampleIndex is returned when a collision names a perimeter sample that
// does not exist. It indicates a logic error upstream, not bad input.
var ErrSampleIndex = errors.New("perimeter sample index out of range")

var halfSqrt2 = math.Sqrt2 / 2

// reflectionNormals holds the contribution of each violated sample, indexed
// like Perimeter. Each sample contributes only its own row.
var reflectionNormals = [PerimeterSamples]r2.Point{
	{X: 0, Y: -1},
	{X: -halfSqrt2, Y: -halfSqrt2},
	{X: -1, Y: 0},
	{X: -halfSqrt2, Y: halfSqrt2},
	{X: 0, Y: 1},
	{X: halfSqrt2, Y: halfSqrt2},
	{X: 1, Y: 0},
	{X: halfSqrt2, Y: -halfSqrt2},
}

// ReflectionNormal returns the contribution of the sample at index.
func ReflectionNormal(index int) (r2.Point, error) {
	if index < 0 || index >= PerimeterSamples {
		return r2.Point{}, fmt.Errorf("%w: %d", ErrSampleIndex, index)
	}
	return reflectionNormals[index], nil
}

// ReflectionVector sums the contributions of the violated samples and
// normalizes the result. ok is false when the contributions cancel out.
func ReflectionVector(indices []int) (v r2.Point, ok bool, err error) {
	for _, idx := range indices {
		n, err := ReflectionNormal(idx)
		if err != nil {
			return r2.Point{}, false, err
		}
		v = v.Add(n)
	}
	mag := v.Norm()
	if mag < Epsilon {
		return r2.Point{}, false, nil
	}
	return v.Mul(1 / mag), true, nil
}

// ResolveCollision scales velocity component-wise by the normalized
// reflection vector of the violated samples. This multiplies rather than
// mirrors the velocity. When the contributions cancel, velocity is returned
// unchanged. An empty index list is a no-op.
func ResolveCollision(indices []int, velocity r2.Point) (r2.Point, error) {
	if len(indices) == 0 {
		return velocity, nil
	}
	n, ok, err := ReflectionVector(indices)
	if err != nil {
		return velocity, err
	}
	if !ok {
		return velocity, nil
	}
	return r2.Point{X: velocity.X * n.X, Y: velocity.Y * n.Y}, nil
}
