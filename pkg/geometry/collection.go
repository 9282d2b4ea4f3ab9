// pkg/geometry/collection.go - Heterogeneous geometry collection
package geometry

import (
	"fmt"
	"iter"
	"slices"
)

// EmptyGeometryCollection is returned whenever a collection is built from zero members
var EmptyGeometryCollection = &GeometryCollection{}

// GeometryCollection is an ordered collection of arbitrary geometries,
// other collections included
type GeometryCollection struct {
	geometries []Geometry
	cache      derived
}

// NewGeometryCollection copies geometries into a new collection. A nil member
// returns ErrNilGeometry; rings are polygon parts only and return
// ErrRingInCollection.
func NewGeometryCollection(geometries ...Geometry) (*GeometryCollection, error) {
	if len(geometries) == 0 {
		return EmptyGeometryCollection, nil
	}
	for i, g := range geometries {
		if isNil(g) {
			return nil, ErrNilGeometry
		}
		if _, ok := g.(*LinearRing); ok {
			return nil, fmt.Errorf("member %d: %w", i, ErrRingInCollection)
		}
	}
	return &GeometryCollection{geometries: slices.Clone(geometries)}, nil
}

// MustGeometryCollection is NewGeometryCollection that panics on error
func MustGeometryCollection(geometries ...Geometry) *GeometryCollection {
	gc, err := NewGeometryCollection(geometries...)
	if err != nil {
		panic(err)
	}
	return gc
}

func (gc *GeometryCollection) sealed() {}

// Type returns TypeGeometryCollection
func (gc *GeometryCollection) Type() Type { return TypeGeometryCollection }

// Len returns the number of members
func (gc *GeometryCollection) Len() int { return len(gc.geometries) }

// IsEmpty reports whether the collection has no members
func (gc *GeometryCollection) IsEmpty() bool { return len(gc.geometries) == 0 }

// GeometryAt returns the i-th member
func (gc *GeometryCollection) GeometryAt(i int) Geometry { return gc.geometries[i] }

// Geometries returns a copy of the members
func (gc *GeometryCollection) Geometries() []Geometry { return slices.Clone(gc.geometries) }

// All iterates over the members in order
func (gc *GeometryCollection) All() iter.Seq2[int, Geometry] {
	return slices.All(gc.geometries)
}

// PointCount sums the point counts of every member
func (gc *GeometryCollection) PointCount() int {
	return gc.cache.pointCount.get(func() int { return sumPointCounts(gc.geometries) })
}

// Center averages the centers of the members
func (gc *GeometryCollection) Center() Point {
	return gc.cache.center.get(func() Point { return meanOfCenters(gc.geometries) })
}

// WKT returns "GEOMETRYCOLLECTION (POINT (x y), LINESTRING (...), ...)"
func (gc *GeometryCollection) WKT() string {
	return gc.cache.wkt.get(func() string {
		bodies := make([]string, len(gc.geometries))
		for i, g := range gc.geometries {
			bodies[i] = g.WKT()
		}
		return taggedWKT(TypeGeometryCollection, bodies)
	})
}

func (gc *GeometryCollection) String() string { return gc.WKT() }

// Equal compares the members pairwise with the package-level Equal
func (gc *GeometryCollection) Equal(other *GeometryCollection) bool {
	if gc == nil || other == nil {
		return gc == other
	}
	return slices.EqualFunc(gc.geometries, other.geometries, Equal)
}

// Transform returns a new collection with fn applied to every member
func (gc *GeometryCollection) Transform(fn func(Geometry) Geometry) *GeometryCollection {
	if len(gc.geometries) == 0 {
		return EmptyGeometryCollection
	}
	geometries := make([]Geometry, len(gc.geometries))
	for i, g := range gc.geometries {
		geometries[i] = fn(g)
	}
	return &GeometryCollection{geometries: geometries}
}

// Translate returns the collection moved by (dx, dy)
func (gc *GeometryCollection) Translate(dx, dy float64) *GeometryCollection {
	return gc.mapPoints(func(p Point) Point { return p.Add(dx, dy) })
}

// Rotate returns the collection rotated around origin by radians
func (gc *GeometryCollection) Rotate(origin Point, radians float64) *GeometryCollection {
	return gc.mapPoints(func(p Point) Point { return p.Rotate(origin, radians) })
}

// RotateDegrees returns the collection rotated around origin by degrees
func (gc *GeometryCollection) RotateDegrees(origin Point, degrees float64) *GeometryCollection {
	return gc.mapPoints(func(p Point) Point { return p.RotateDegrees(origin, degrees) })
}

// Scale returns the collection scaled around origin
func (gc *GeometryCollection) Scale(origin Point, sx, sy float64) *GeometryCollection {
	return gc.mapPoints(func(p Point) Point { return p.Scale(origin, sx, sy) })
}

func (gc *GeometryCollection) mapPoints(fn func(Point) Point) *GeometryCollection {
	return gc.Transform(func(g Geometry) Geometry { return Transform(g, fn) })
}

// GeometryCollectionBuilder accumulates members
type GeometryCollectionBuilder struct {
	geometries []Geometry
}

// NewGeometryCollectionBuilder returns an empty builder
func NewGeometryCollectionBuilder() *GeometryCollectionBuilder {
	return &GeometryCollectionBuilder{}
}

// Add appends members
func (b *GeometryCollectionBuilder) Add(geometries ...Geometry) *GeometryCollectionBuilder {
	b.geometries = append(b.geometries, geometries...)
	return b
}

// Remove removes the first member equal to g
func (b *GeometryCollectionBuilder) Remove(g Geometry) *GeometryCollectionBuilder {
	if i := slices.IndexFunc(b.geometries, func(m Geometry) bool { return Equal(m, g) }); i >= 0 {
		b.geometries = slices.Delete(b.geometries, i, i+1)
	}
	return b
}

// Build returns the collection, or EmptyGeometryCollection when nothing was added
func (b *GeometryCollectionBuilder) Build() (*GeometryCollection, error) {
	return NewGeometryCollection(b.geometries...)
}
