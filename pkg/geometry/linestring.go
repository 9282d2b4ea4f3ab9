// pkg/geometry/linestring.go - Ordered path of two or more points
package geometry

import (
	"fmt"
	"iter"
	"slices"
)

// LineString is an immutable path of at least two points
type LineString struct {
	points []Point
	cache  derived
}

// NewLineString copies points into a new LineString. Fewer than two points
// returns ErrTooFewPoints.
func NewLineString(points ...Point) (*LineString, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	return &LineString{points: slices.Clone(points)}, nil
}

// MustLineString is NewLineString that panics on error. Intended for literals.
func MustLineString(points ...Point) *LineString {
	ls, err := NewLineString(points...)
	if err != nil {
		panic(err)
	}
	return ls
}

func (ls *LineString) sealed() {}

// Type returns TypeLineString
func (ls *LineString) Type() Type { return TypeLineString }

// PointCount returns the number of points
func (ls *LineString) PointCount() int {
	return ls.cache.pointCount.get(func() int { return len(ls.points) })
}

// Center returns the mean of all points
func (ls *LineString) Center() Point {
	return ls.cache.center.get(func() Point {
		return meanOfPoints(len(ls.points), ls.PointAt)
	})
}

// WKT returns "LINESTRING (x y, ...)"
func (ls *LineString) WKT() string {
	return ls.cache.wkt.get(func() string {
		return taggedPointsWKT(TypeLineString, len(ls.points), ls.PointAt)
	})
}

func (ls *LineString) String() string { return ls.WKT() }

// PointAt returns the point at index i
func (ls *LineString) PointAt(i int) Point {
	return ls.points[i]
}

// Points returns a copy of the points
func (ls *LineString) Points() []Point {
	return slices.Clone(ls.points)
}

// All iterates over the points in order
func (ls *LineString) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i, p := range ls.points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Reverse returns the line walked from its last point to its first
func (ls *LineString) Reverse() *LineString {
	points := slices.Clone(ls.points)
	slices.Reverse(points)
	return &LineString{points: points}
}

// ToLinearRing returns a ring over the same points
func (ls *LineString) ToLinearRing() *LinearRing {
	return newLinearRing(slices.Clone(ls.points))
}

// Equal reports whether both lines hold the same points in the same order
func (ls *LineString) Equal(other *LineString) bool {
	if ls == nil || other == nil {
		return ls == other
	}
	return slices.Equal(ls.points, other.points)
}

// Transform returns a new line with fn applied to every point
func (ls *LineString) Transform(fn func(Point) Point) *LineString {
	points := make([]Point, len(ls.points))
	for i, p := range ls.points {
		points[i] = fn(p)
	}
	return &LineString{points: points}
}

// Translate returns the line moved by (dx, dy)
func (ls *LineString) Translate(dx, dy float64) *LineString {
	return ls.Transform(func(p Point) Point { return p.Add(dx, dy) })
}

// Rotate returns the line rotated around origin by radians
func (ls *LineString) Rotate(origin Point, radians float64) *LineString {
	return ls.Transform(func(p Point) Point { return p.Rotate(origin, radians) })
}

// RotateDegrees returns the line rotated around origin by degrees
func (ls *LineString) RotateDegrees(origin Point, degrees float64) *LineString {
	return ls.Transform(func(p Point) Point { return p.RotateDegrees(origin, degrees) })
}

// Scale returns the line scaled around origin
func (ls *LineString) Scale(origin Point, sx, sy float64) *LineString {
	return ls.Transform(func(p Point) Point { return p.Scale(origin, sx, sy) })
}

// LineStringBuilder accumulates points for a LineString or LinearRing.
// Build copies the backing slice, so a builder can be reused.
type LineStringBuilder struct {
	points []Point
}

// NewLineStringBuilder returns an empty builder
func NewLineStringBuilder() *LineStringBuilder {
	return &LineStringBuilder{}
}

// AddPoint appends p
func (b *LineStringBuilder) AddPoint(p Point) *LineStringBuilder {
	b.points = append(b.points, p)
	return b
}

// AddXY appends the point (x, y)
func (b *LineStringBuilder) AddXY(x, y float64) *LineStringBuilder {
	return b.AddPoint(XY(x, y))
}

// AddYX appends the point given latitude first
func (b *LineStringBuilder) AddYX(y, x float64) *LineStringBuilder {
	return b.AddPoint(YX(y, x))
}

// AddPoints appends every point in order
func (b *LineStringBuilder) AddPoints(points ...Point) *LineStringBuilder {
	b.points = append(b.points, points...)
	return b
}

// RemovePoint removes the first occurrence of p
func (b *LineStringBuilder) RemovePoint(p Point) *LineStringBuilder {
	if i := slices.Index(b.points, p); i >= 0 {
		b.points = slices.Delete(b.points, i, i+1)
	}
	return b
}

// Len returns the number of accumulated points
func (b *LineStringBuilder) Len() int {
	return len(b.points)
}

// Build returns a LineString over the accumulated points
func (b *LineStringBuilder) Build() (*LineString, error) {
	return NewLineString(b.points...)
}

// BuildLinearRing returns a LinearRing over the accumulated points
func (b *LineStringBuilder) BuildLinearRing() (*LinearRing, error) {
	return NewLinearRing(b.points...)
}
