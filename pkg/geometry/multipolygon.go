// pkg/geometry/multipolygon.go - Ordered set of polygons
package geometry

import (
	"iter"
	"slices"
)

// EmptyMultiPolygon is returned whenever a MultiPolygon is built from zero polygons
var EmptyMultiPolygon = &MultiPolygon{}

// MultiPolygon is an ordered collection of polygons
type MultiPolygon struct {
	polygons []*Polygon
	cache    derived
}

// NewMultiPolygon copies polygons into a new collection
func NewMultiPolygon(polygons ...*Polygon) (*MultiPolygon, error) {
	if len(polygons) == 0 {
		return EmptyMultiPolygon, nil
	}
	if slices.Contains(polygons, nil) {
		return nil, ErrNilGeometry
	}
	return &MultiPolygon{polygons: slices.Clone(polygons)}, nil
}

// MustMultiPolygon is NewMultiPolygon that panics on error
func MustMultiPolygon(polygons ...*Polygon) *MultiPolygon {
	mp, err := NewMultiPolygon(polygons...)
	if err != nil {
		panic(err)
	}
	return mp
}

func (mp *MultiPolygon) sealed() {}

// Type returns TypeMultiPolygon
func (mp *MultiPolygon) Type() Type { return TypeMultiPolygon }

// Len returns the number of polygons
func (mp *MultiPolygon) Len() int { return len(mp.polygons) }

// IsEmpty reports whether the collection holds no polygons
func (mp *MultiPolygon) IsEmpty() bool { return len(mp.polygons) == 0 }

// PolygonAt returns the i-th polygon
func (mp *MultiPolygon) PolygonAt(i int) *Polygon { return mp.polygons[i] }

// Polygons returns a copy of the polygons
func (mp *MultiPolygon) Polygons() []*Polygon { return slices.Clone(mp.polygons) }

// All iterates over the polygons in order
func (mp *MultiPolygon) All() iter.Seq2[int, *Polygon] {
	return slices.All(mp.polygons)
}

// PointCount sums the points of every polygon
func (mp *MultiPolygon) PointCount() int {
	return mp.cache.pointCount.get(func() int { return sumPointCounts(mp.polygons) })
}

// Center averages the centers of the polygons
func (mp *MultiPolygon) Center() Point {
	return mp.cache.center.get(func() Point { return meanOfCenters(mp.polygons) })
}

// WKT returns "MULTIPOLYGON (((exterior), (hole)), ((exterior)))"
func (mp *MultiPolygon) WKT() string {
	return mp.cache.wkt.get(func() string {
		bodies := make([]string, len(mp.polygons))
		for i, pg := range mp.polygons {
			bodies[i] = pg.body()
		}
		return taggedWKT(TypeMultiPolygon, bodies)
	})
}

func (mp *MultiPolygon) String() string { return mp.WKT() }

// Equal compares the polygons pairwise
func (mp *MultiPolygon) Equal(other *MultiPolygon) bool {
	if mp == nil || other == nil {
		return mp == other
	}
	return slices.EqualFunc(mp.polygons, other.polygons, (*Polygon).Equal)
}

// Transform returns a new collection with fn applied to every polygon
func (mp *MultiPolygon) Transform(fn func(*Polygon) *Polygon) *MultiPolygon {
	if len(mp.polygons) == 0 {
		return EmptyMultiPolygon
	}
	polygons := make([]*Polygon, len(mp.polygons))
	for i, pg := range mp.polygons {
		polygons[i] = fn(pg)
	}
	return &MultiPolygon{polygons: polygons}
}

// Translate returns the collection moved by (dx, dy)
func (mp *MultiPolygon) Translate(dx, dy float64) *MultiPolygon {
	return mp.Transform(func(pg *Polygon) *Polygon { return pg.Translate(dx, dy) })
}

// Rotate returns the collection rotated around origin by radians
func (mp *MultiPolygon) Rotate(origin Point, radians float64) *MultiPolygon {
	return mp.Transform(func(pg *Polygon) *Polygon { return pg.Rotate(origin, radians) })
}

// RotateDegrees returns the collection rotated around origin by degrees
func (mp *MultiPolygon) RotateDegrees(origin Point, degrees float64) *MultiPolygon {
	return mp.Transform(func(pg *Polygon) *Polygon { return pg.RotateDegrees(origin, degrees) })
}

// Scale returns the collection scaled around origin
func (mp *MultiPolygon) Scale(origin Point, sx, sy float64) *MultiPolygon {
	return mp.Transform(func(pg *Polygon) *Polygon { return pg.Scale(origin, sx, sy) })
}

// MultiPolygonBuilder accumulates polygons
type MultiPolygonBuilder struct {
	polygons []*Polygon
}

// NewMultiPolygonBuilder returns an empty builder
func NewMultiPolygonBuilder() *MultiPolygonBuilder {
	return &MultiPolygonBuilder{}
}

// AddPolygon appends polygons
func (b *MultiPolygonBuilder) AddPolygon(polygons ...*Polygon) *MultiPolygonBuilder {
	b.polygons = append(b.polygons, polygons...)
	return b
}

// RemovePolygon removes the first polygon equal to pg
func (b *MultiPolygonBuilder) RemovePolygon(pg *Polygon) *MultiPolygonBuilder {
	if i := slices.IndexFunc(b.polygons, pg.Equal); i >= 0 {
		b.polygons = slices.Delete(b.polygons, i, i+1)
	}
	return b
}

// Build returns the collection, or EmptyMultiPolygon when nothing was added
func (b *MultiPolygonBuilder) Build() (*MultiPolygon, error) {
	return NewMultiPolygon(b.polygons...)
}
