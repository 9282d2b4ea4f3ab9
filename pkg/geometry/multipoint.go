// pkg/geometry/multipoint.go - Ordered set of unconnected points
package geometry

import (
	"iter"
	"slices"
)

// EmptyMultiPoint is returned whenever a MultiPoint is built from zero points
var EmptyMultiPoint = &MultiPoint{}

// MultiPoint is an ordered collection of points
type MultiPoint struct {
	points []Point
	cache  derived
}

// NewMultiPoint copies points into a new MultiPoint
func NewMultiPoint(points ...Point) *MultiPoint {
	if len(points) == 0 {
		return EmptyMultiPoint
	}
	return &MultiPoint{points: slices.Clone(points)}
}

func (mp *MultiPoint) sealed() {}

// Type returns TypeMultiPoint
func (mp *MultiPoint) Type() Type { return TypeMultiPoint }

// Len returns the number of points
func (mp *MultiPoint) Len() int {
	return len(mp.points)
}

// IsEmpty reports whether the collection holds no points
func (mp *MultiPoint) IsEmpty() bool {
	return len(mp.points) == 0
}

// PointAt returns the i-th point
func (mp *MultiPoint) PointAt(i int) Point {
	return mp.points[i]
}

// Points returns a copy of the points
func (mp *MultiPoint) Points() []Point {
	return slices.Clone(mp.points)
}

// All iterates over the points in order
func (mp *MultiPoint) All() iter.Seq2[int, Point] {
	return slices.All(mp.points)
}

// PointCount returns the number of points
func (mp *MultiPoint) PointCount() int {
	return mp.cache.pointCount.get(func() int { return len(mp.points) })
}

// Center returns the mean of all points
func (mp *MultiPoint) Center() Point {
	return mp.cache.center.get(func() Point {
		return meanOfPoints(len(mp.points), mp.PointAt)
	})
}

// WKT returns "MULTIPOINT (x y, x y, ...)"
func (mp *MultiPoint) WKT() string {
	return mp.cache.wkt.get(func() string {
		return taggedPointsWKT(TypeMultiPoint, len(mp.points), mp.PointAt)
	})
}

func (mp *MultiPoint) String() string { return mp.WKT() }

// Equal reports whether both collections hold the same points in order
func (mp *MultiPoint) Equal(other *MultiPoint) bool {
	if mp == nil || other == nil {
		return mp == other
	}
	return slices.Equal(mp.points, other.points)
}

// Transform returns a new collection with fn applied to every point
func (mp *MultiPoint) Transform(fn func(Point) Point) *MultiPoint {
	if len(mp.points) == 0 {
		return EmptyMultiPoint
	}
	points := make([]Point, len(mp.points))
	for i, p := range mp.points {
		points[i] = fn(p)
	}
	return &MultiPoint{points: points}
}

// Translate returns the collection moved by (dx, dy)
func (mp *MultiPoint) Translate(dx, dy float64) *MultiPoint {
	return mp.Transform(func(p Point) Point { return p.Add(dx, dy) })
}

// Rotate returns the collection rotated around origin by radians
func (mp *MultiPoint) Rotate(origin Point, radians float64) *MultiPoint {
	return mp.Transform(func(p Point) Point { return p.Rotate(origin, radians) })
}

// RotateDegrees returns the collection rotated around origin by degrees
func (mp *MultiPoint) RotateDegrees(origin Point, degrees float64) *MultiPoint {
	return mp.Transform(func(p Point) Point { return p.RotateDegrees(origin, degrees) })
}

// Scale returns the collection scaled around origin
func (mp *MultiPoint) Scale(origin Point, sx, sy float64) *MultiPoint {
	return mp.Transform(func(p Point) Point { return p.Scale(origin, sx, sy) })
}

// MultiPointBuilder accumulates points
type MultiPointBuilder struct {
	points []Point
}

// NewMultiPointBuilder returns an empty builder
func NewMultiPointBuilder() *MultiPointBuilder {
	return &MultiPointBuilder{}
}

// AddPoint appends points
func (b *MultiPointBuilder) AddPoint(points ...Point) *MultiPointBuilder {
	b.points = append(b.points, points...)
	return b
}

// AddXY appends the point (x, y)
func (b *MultiPointBuilder) AddXY(x, y float64) *MultiPointBuilder {
	return b.AddPoint(XY(x, y))
}

// RemovePoint removes the first occurrence of p
func (b *MultiPointBuilder) RemovePoint(p Point) *MultiPointBuilder {
	if i := slices.Index(b.points, p); i >= 0 {
		b.points = slices.Delete(b.points, i, i+1)
	}
	return b
}

// Build returns the collection, or EmptyMultiPoint when nothing was added
func (b *MultiPointBuilder) Build() *MultiPoint {
	return NewMultiPoint(b.points...)
}
