// pkg/geometry/linearring.go - Closed ring with implicit closure handling
package geometry

import (
	"iter"
	"slices"
)

// LinearRing is a closed sequence of points. When the input's first and last
// points differ, the ring behaves as if a copy of the first point followed the
// last one; the stored points are left as given.
type LinearRing struct {
	points []Point
	closed bool
	cache  derived

	circumference memo[float64]
}

// NewLinearRing copies points into a new ring. An empty input returns ErrEmptyRing.
func NewLinearRing(points ...Point) (*LinearRing, error) {
	if len(points) == 0 {
		return nil, ErrEmptyRing
	}
	return newLinearRing(slices.Clone(points)), nil
}

// MustLinearRing is NewLinearRing that panics on error. Intended for literals.
func MustLinearRing(points ...Point) *LinearRing {
	ring, err := NewLinearRing(points...)
	if err != nil {
		panic(err)
	}
	return ring
}

// newLinearRing takes ownership of a non-empty slice
func newLinearRing(points []Point) *LinearRing {
	return &LinearRing{
		points: points,
		closed: points[0] == points[len(points)-1],
	}
}

func (r *LinearRing) sealed() {}

// Type returns TypeLinearRing
func (r *LinearRing) Type() Type { return TypeLinearRing }

// Closed reports whether the input already ended with its first point
func (r *LinearRing) Closed() bool {
	return r.closed
}

// PointCount counts the closing point exactly once
func (r *LinearRing) PointCount() int {
	if r.closed {
		return len(r.points)
	}
	return len(r.points) + 1
}

// PointAt returns the i-th point of the closed ring; the last index maps to
// the first point when the closure is implicit
func (r *LinearRing) PointAt(i int) Point {
	if !r.closed && i == len(r.points) {
		return r.points[0]
	}
	return r.points[i]
}

// All iterates over the closed ring, closing point included
func (r *LinearRing) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		n := r.PointCount()
		for i := 0; i < n; i++ {
			if !yield(i, r.PointAt(i)) {
				return
			}
		}
	}
}

// Points returns the closed form of the ring
func (r *LinearRing) Points() []Point {
	points := make([]Point, r.PointCount())
	for i := range points {
		points[i] = r.PointAt(i)
	}
	return points
}

// OpenPoints returns the ring without its closing point
func (r *LinearRing) OpenPoints() []Point {
	return r.Points()[:r.PointCount()-1]
}

// Center averages the ring's points, leaving out the closing point
func (r *LinearRing) Center() Point {
	return r.cache.center.get(func() Point {
		return meanOfPoints(r.PointCount()-1, r.PointAt)
	})
}

// WKT returns "LINEARRING (x y, ..., x0 y0)"
func (r *LinearRing) WKT() string {
	return r.cache.wkt.get(func() string {
		return taggedPointsWKT(TypeLinearRing, r.PointCount(), r.PointAt)
	})
}

func (r *LinearRing) String() string { return r.WKT() }

// CircumferenceKilometers sums the great-circle distances around the closed ring
func (r *LinearRing) CircumferenceKilometers() float64 {
	return r.circumference.get(func() float64 {
		total := 0.0
		n := r.PointCount()
		for i := 0; i < n-1; i++ {
			total += r.PointAt(i).DistanceKilometers(r.PointAt(i + 1))
		}
		return total
	})
}

// CircumferenceMeters is CircumferenceKilometers in meters
func (r *LinearRing) CircumferenceMeters() float64 {
	return r.CircumferenceKilometers() * 1000
}

// ToLineString returns a line over the stored points
func (r *LinearRing) ToLineString() (*LineString, error) {
	return NewLineString(r.points...)
}

// Equal compares the logical rings, so an implicitly closed ring equals its
// explicitly closed form
func (r *LinearRing) Equal(other *LinearRing) bool {
	if r == nil || other == nil {
		return r == other
	}
	n := r.PointCount()
	if n != other.PointCount() {
		return false
	}
	for i := 0; i < n-1; i++ {
		if r.PointAt(i) != other.PointAt(i) {
			return false
		}
	}
	return true
}

// Transform returns a new ring with fn applied to every point of the closed ring
func (r *LinearRing) Transform(fn func(Point) Point) *LinearRing {
	points := make([]Point, r.PointCount())
	for i := range points {
		points[i] = fn(r.PointAt(i))
	}
	return newLinearRing(points)
}

// Translate returns the ring moved by (dx, dy)
func (r *LinearRing) Translate(dx, dy float64) *LinearRing {
	return r.Transform(func(p Point) Point { return p.Add(dx, dy) })
}

// Rotate returns the ring rotated around origin by radians
func (r *LinearRing) Rotate(origin Point, radians float64) *LinearRing {
	return r.Transform(func(p Point) Point { return p.Rotate(origin, radians) })
}

// RotateDegrees returns the ring rotated around origin by degrees
func (r *LinearRing) RotateDegrees(origin Point, degrees float64) *LinearRing {
	return r.Transform(func(p Point) Point { return p.RotateDegrees(origin, degrees) })
}

// Scale returns the ring scaled around origin
func (r *LinearRing) Scale(origin Point, sx, sy float64) *LinearRing {
	return r.Transform(func(p Point) Point { return p.Scale(origin, sx, sy) })
}
