// pkg/geometry/orb.go - Conversion to and from github.com/paulmach/orb geometries
package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// ToOrb converts g into the matching orb geometry. Rings come out closed.
func ToOrb(g Geometry) orb.Geometry {
	switch v := g.(type) {
	case Point:
		return pointToOrb(v)
	case *LineString:
		return orb.LineString(pointsToOrb(v.points))
	case *LinearRing:
		return ringToOrb(v)
	case *Polygon:
		return polygonToOrb(v)
	case *MultiPoint:
		return orb.MultiPoint(pointsToOrb(v.points))
	case *MultiLineString:
		result := make(orb.MultiLineString, len(v.lines))
		for i, ls := range v.lines {
			result[i] = pointsToOrb(ls.points)
		}
		return result
	case *MultiPolygon:
		result := make(orb.MultiPolygon, len(v.polygons))
		for i, pg := range v.polygons {
			result[i] = polygonToOrb(pg)
		}
		return result
	case *GeometryCollection:
		result := make(orb.Collection, len(v.geometries))
		for i, child := range v.geometries {
			result[i] = ToOrb(child)
		}
		return result
	default:
		return nil
	}
}

// FromOrb converts an orb geometry, enforcing the constructors' invariants.
// An orb.Bound becomes its rectangular polygon.
func FromOrb(og orb.Geometry) (Geometry, error) {
	switch v := og.(type) {
	case orb.Point:
		return pointFromOrb(v), nil
	case orb.MultiPoint:
		return NewMultiPoint(pointsFromOrb(v)...), nil
	case orb.LineString:
		return lift(NewLineString(pointsFromOrb(v)...))
	case orb.Ring:
		return lift(NewLinearRing(pointsFromOrb(v)...))
	case orb.Polygon:
		return lift(polygonFromOrb(v))
	case orb.MultiLineString:
		lines := make([]*LineString, len(v))
		for i, ls := range v {
			line, err := NewLineString(pointsFromOrb(ls)...)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
			lines[i] = line
		}
		return lift(NewMultiLineString(lines...))
	case orb.MultiPolygon:
		polygons := make([]*Polygon, len(v))
		for i, p := range v {
			polygon, err := polygonFromOrb(p)
			if err != nil {
				return nil, fmt.Errorf("polygon %d: %w", i, err)
			}
			polygons[i] = polygon
		}
		return lift(NewMultiPolygon(polygons...))
	case orb.Collection:
		geometries := make([]Geometry, len(v))
		for i, child := range v {
			g, err := FromOrb(child)
			if err != nil {
				return nil, fmt.Errorf("geometry %d: %w", i, err)
			}
			geometries[i] = g
		}
		return lift(NewGeometryCollection(geometries...))
	case orb.Bound:
		return lift(polygonFromOrb(v.ToPolygon()))
	case nil:
		return nil, ErrNilGeometry
	default:
		return nil, fmt.Errorf("unsupported orb geometry %T", og)
	}
}

// lift widens a constructor result to Geometry without leaking a typed nil
func lift[G Geometry](g G, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Bound returns the bounding box of g
func Bound(g Geometry) orb.Bound {
	return ToOrb(g).Bound()
}

// Simplify reduces the line with the Douglas-Peucker algorithm. The end points
// are always kept, so the result is still a valid line string.
func (ls *LineString) Simplify(threshold float64) *LineString {
	simplified := simplify.DouglasPeucker(threshold).LineString(orb.LineString(pointsToOrb(ls.points)))
	if len(simplified) < 2 {
		return ls
	}
	return &LineString{points: pointsFromOrb(simplified)}
}

// Simplify applies Douglas-Peucker with threshold to every line and ring in g.
// Points are returned unchanged. A polygon whose exterior collapses is an error.
func Simplify(g Geometry, threshold float64) (Geometry, error) {
	switch v := g.(type) {
	case Point, *MultiPoint:
		return g, nil
	case *LineString:
		return v.Simplify(threshold), nil
	case nil:
		return nil, ErrNilGeometry
	}
	simplified := simplify.DouglasPeucker(threshold).Simplify(ToOrb(g))
	if simplified == nil {
		return nil, fmt.Errorf("simplify %s: %w", g.Type(), ErrMissingExterior)
	}
	return FromOrb(simplified)
}

func pointToOrb(p Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

func pointFromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

func pointsToOrb(points []Point) []orb.Point {
	result := make([]orb.Point, len(points))
	for i, p := range points {
		result[i] = pointToOrb(p)
	}
	return result
}

func pointsFromOrb(points []orb.Point) []Point {
	result := make([]Point, len(points))
	for i, p := range points {
		result[i] = pointFromOrb(p)
	}
	return result
}

func ringToOrb(r *LinearRing) orb.Ring {
	return orb.Ring(pointsToOrb(r.Points()))
}

func polygonToOrb(pg *Polygon) orb.Polygon {
	result := make(orb.Polygon, 0, len(pg.interiors)+1)
	for _, ring := range pg.Rings() {
		result = append(result, ringToOrb(ring))
	}
	return result
}

func polygonFromOrb(p orb.Polygon) (*Polygon, error) {
	if len(p) == 0 {
		return nil, ErrMissingExterior
	}
	rings := make([]*LinearRing, len(p))
	for i, r := range p {
		ring, err := NewLinearRing(pointsFromOrb(r)...)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		rings[i] = ring
	}
	return NewPolygon(rings[0], rings[1:]...)
}
