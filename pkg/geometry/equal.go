// pkg/geometry/equal.go - Structural equality across geometry types
package geometry

// Equal reports whether a and b are the same type with the same coordinates.
// Rings compare in their closed form, so an implicitly closed ring equals its
// explicitly closed copy.
func Equal(a, b Geometry) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case Point:
		return x == b.(Point)
	case *LineString:
		return x.Equal(b.(*LineString))
	case *LinearRing:
		return x.Equal(b.(*LinearRing))
	case *Polygon:
		return x.Equal(b.(*Polygon))
	case *MultiPoint:
		return x.Equal(b.(*MultiPoint))
	case *MultiLineString:
		return x.Equal(b.(*MultiLineString))
	case *MultiPolygon:
		return x.Equal(b.(*MultiPolygon))
	case *GeometryCollection:
		return x.Equal(b.(*GeometryCollection))
	default:
		return false
	}
}

// isNil catches both a nil interface and a typed nil pointer inside one
func isNil(g Geometry) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *LineString:
		return v == nil
	case *LinearRing:
		return v == nil
	case *Polygon:
		return v == nil
	case *MultiPoint:
		return v == nil
	case *MultiLineString:
		return v == nil
	case *MultiPolygon:
		return v == nil
	case *GeometryCollection:
		return v == nil
	default:
		return false
	}
}
