// pkg/geometry/polygon.go - Exterior ring with optional holes
package geometry

import (
	"slices"
	"strings"
)

// Polygon is an exterior ring plus zero or more interior rings. The rings are
// not checked for containment or orientation.
type Polygon struct {
	exterior  *LinearRing
	interiors []*LinearRing
	cache     derived
}

// NewPolygon returns a polygon over exterior and interiors. A nil ring returns
// ErrMissingExterior or ErrNilGeometry.
func NewPolygon(exterior *LinearRing, interiors ...*LinearRing) (*Polygon, error) {
	if exterior == nil {
		return nil, ErrMissingExterior
	}
	if slices.Contains(interiors, nil) {
		return nil, ErrNilGeometry
	}
	return &Polygon{exterior: exterior, interiors: slices.Clone(interiors)}, nil
}

// MustPolygon is NewPolygon that panics on error. Intended for literals.
func MustPolygon(exterior *LinearRing, interiors ...*LinearRing) *Polygon {
	polygon, err := NewPolygon(exterior, interiors...)
	if err != nil {
		panic(err)
	}
	return polygon
}

func (pg *Polygon) sealed() {}

// Type returns TypePolygon
func (pg *Polygon) Type() Type { return TypePolygon }

// Exterior returns the outer ring
func (pg *Polygon) Exterior() *LinearRing {
	return pg.exterior
}

// InteriorCount returns the number of holes
func (pg *Polygon) InteriorCount() int {
	return len(pg.interiors)
}

// Interior returns the i-th hole
func (pg *Polygon) Interior(i int) *LinearRing {
	return pg.interiors[i]
}

// Interiors returns a copy of the holes
func (pg *Polygon) Interiors() []*LinearRing {
	return slices.Clone(pg.interiors)
}

// Rings returns the exterior followed by the holes
func (pg *Polygon) Rings() []*LinearRing {
	rings := make([]*LinearRing, 0, len(pg.interiors)+1)
	rings = append(rings, pg.exterior)
	return append(rings, pg.interiors...)
}

// PointCount sums the point counts of all rings
func (pg *Polygon) PointCount() int {
	return pg.cache.pointCount.get(func() int {
		return sumPointCounts(pg.Rings())
	})
}

// Center averages the centers of the exterior and every hole
func (pg *Polygon) Center() Point {
	return pg.cache.center.get(func() Point {
		return meanOfCenters(pg.Rings())
	})
}

// WKT returns "POLYGON ((exterior), (hole), ...)"
func (pg *Polygon) WKT() string {
	return pg.cache.wkt.get(func() string {
		return taggedWKT(TypePolygon, pg.ringBodies())
	})
}

func (pg *Polygon) String() string { return pg.WKT() }

func (pg *Polygon) ringBodies() []string {
	rings := pg.Rings()
	bodies := make([]string, len(rings))
	for i, ring := range rings {
		bodies[i] = pointListWKT(ring.PointCount(), ring.PointAt)
	}
	return bodies
}

// body renders the parenthesised ring list used inside MULTIPOLYGON
func (pg *Polygon) body() string {
	return "(" + strings.Join(pg.ringBodies(), ", ") + ")"
}

// Equal compares exterior and holes ring by ring
func (pg *Polygon) Equal(other *Polygon) bool {
	if pg == nil || other == nil {
		return pg == other
	}
	if !pg.exterior.Equal(other.exterior) {
		return false
	}
	return slices.EqualFunc(pg.interiors, other.interiors, (*LinearRing).Equal)
}

// Transform returns a new polygon with fn applied to every ring
func (pg *Polygon) Transform(fn func(*LinearRing) *LinearRing) *Polygon {
	interiors := make([]*LinearRing, len(pg.interiors))
	for i, ring := range pg.interiors {
		interiors[i] = fn(ring)
	}
	return &Polygon{exterior: fn(pg.exterior), interiors: interiors}
}

// Translate returns the polygon moved by (dx, dy)
func (pg *Polygon) Translate(dx, dy float64) *Polygon {
	return pg.Transform(func(r *LinearRing) *LinearRing { return r.Translate(dx, dy) })
}

// Rotate returns the polygon rotated around origin by radians
func (pg *Polygon) Rotate(origin Point, radians float64) *Polygon {
	return pg.Transform(func(r *LinearRing) *LinearRing { return r.Rotate(origin, radians) })
}

// RotateDegrees returns the polygon rotated around origin by degrees
func (pg *Polygon) RotateDegrees(origin Point, degrees float64) *Polygon {
	return pg.Transform(func(r *LinearRing) *LinearRing { return r.RotateDegrees(origin, degrees) })
}

// Scale returns the polygon scaled around origin
func (pg *Polygon) Scale(origin Point, sx, sy float64) *Polygon {
	return pg.Transform(func(r *LinearRing) *LinearRing { return r.Scale(origin, sx, sy) })
}

// PolygonBuilder accumulates an exterior and holes
type PolygonBuilder struct {
	exterior  *LinearRing
	interiors []*LinearRing
}

// NewPolygonBuilder returns an empty builder
func NewPolygonBuilder() *PolygonBuilder {
	return &PolygonBuilder{}
}

// SetExterior sets the outer ring
func (b *PolygonBuilder) SetExterior(ring *LinearRing) *PolygonBuilder {
	b.exterior = ring
	return b
}

// AddInterior appends holes
func (b *PolygonBuilder) AddInterior(rings ...*LinearRing) *PolygonBuilder {
	b.interiors = append(b.interiors, rings...)
	return b
}

// RemoveInterior removes the first hole equal to ring
func (b *PolygonBuilder) RemoveInterior(ring *LinearRing) *PolygonBuilder {
	if i := slices.IndexFunc(b.interiors, ring.Equal); i >= 0 {
		b.interiors = slices.Delete(b.interiors, i, i+1)
	}
	return b
}

// Build returns the polygon or ErrMissingExterior when no exterior was set
func (b *PolygonBuilder) Build() (*Polygon, error) {
	return NewPolygon(b.exterior, b.interiors...)
}
