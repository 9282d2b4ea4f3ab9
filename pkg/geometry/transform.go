// pkg/geometry/transform.go - Coordinate transforms over any geometry
package geometry

// Transform applies fn to every coordinate of g and returns a geometry of the
// same type. Rings are mapped over their closed form.
func Transform(g Geometry, fn func(Point) Point) Geometry {
	switch v := g.(type) {
	case Point:
		return fn(v)
	case *LineString:
		return v.Transform(fn)
	case *LinearRing:
		return v.Transform(fn)
	case *Polygon:
		return v.Transform(func(r *LinearRing) *LinearRing { return r.Transform(fn) })
	case *MultiPoint:
		return v.Transform(fn)
	case *MultiLineString:
		return v.Transform(func(ls *LineString) *LineString { return ls.Transform(fn) })
	case *MultiPolygon:
		return v.Transform(func(pg *Polygon) *Polygon {
			return Transform(pg, fn).(*Polygon)
		})
	case *GeometryCollection:
		return v.Transform(func(child Geometry) Geometry { return Transform(child, fn) })
	default:
		return g
	}
}

// Translate moves g by (dx, dy)
func Translate(g Geometry, dx, dy float64) Geometry {
	return Transform(g, func(p Point) Point { return p.Add(dx, dy) })
}

// Rotate rotates g around origin by radians
func Rotate(g Geometry, origin Point, radians float64) Geometry {
	return Transform(g, func(p Point) Point { return p.Rotate(origin, radians) })
}

// RotateDegrees rotates g around origin by degrees
func RotateDegrees(g Geometry, origin Point, degrees float64) Geometry {
	return Transform(g, func(p Point) Point { return p.RotateDegrees(origin, degrees) })
}

// Scale scales g around origin
func Scale(g Geometry, origin Point, sx, sy float64) Geometry {
	return Transform(g, func(p Point) Point { return p.Scale(origin, sx, sy) })
}

// RotateAboutCenter rotates g by degrees around its own center
func RotateAboutCenter(g Geometry, degrees float64) Geometry {
	return RotateDegrees(g, g.Center(), degrees)
}

// ScaleAboutCenter scales g around its own center, so the center stays put
func ScaleAboutCenter(g Geometry, sx, sy float64) Geometry {
	return Scale(g, g.Center(), sx, sy)
}
