// pkg/geometry/geometry.go - Sealed geometry interface and shared derived-value cache
package geometry

import (
	"errors"

	"go.uber.org/atomic"
)

// Type identifies the concrete variant behind a Geometry value
type Type int

const (
	TypePoint Type = iota
	TypeLineString
	TypeLinearRing
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
)

// String returns the GeoJSON-style name of the type
func (t Type) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypeLinearRing:
		return "LinearRing"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// Keyword returns the WKT keyword of the type
func (t Type) Keyword() string {
	switch t {
	case TypePoint:
		return "POINT"
	case TypeLineString:
		return "LINESTRING"
	case TypeLinearRing:
		return "LINEARRING"
	case TypePolygon:
		return "POLYGON"
	case TypeMultiPoint:
		return "MULTIPOINT"
	case TypeMultiLineString:
		return "MULTILINESTRING"
	case TypeMultiPolygon:
		return "MULTIPOLYGON"
	case TypeGeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return "UNKNOWN"
	}
}

// Geometry is implemented by every value of this package and by nothing else.
//
// All geometries are immutable. PointCount, Center and WKT are derived once and
// cached for the lifetime of the value.
type Geometry interface {
	Type() Type
	PointCount() int
	Center() Point
	WKT() string
	String() string

	sealed()
}

// Construction errors
var (
	ErrTooFewPoints     = errors.New("line string must have at least 2 points")
	ErrEmptyRing        = errors.New("linear ring must have at least 1 point")
	ErrMissingExterior  = errors.New("polygon exterior must be set")
	ErrNilGeometry      = errors.New("geometry must not be nil")
	ErrInvalidGeoHash   = errors.New("invalid geo hash")
	ErrRingInCollection = errors.New("geometry collection cannot hold a linear ring")
)

// memo caches a value computed from immutable state. Concurrent first readers may
// both compute it; each stores a complete value, so a reader never sees a torn one.
type memo[T any] struct {
	v atomic.Pointer[T]
}

func (m *memo[T]) get(compute func() T) T {
	if p := m.v.Load(); p != nil {
		return *p
	}
	value := compute()
	m.v.Store(&value)
	return value
}

// derived holds the lazily computed values shared by all composite geometries
type derived struct {
	pointCount memo[int]
	center     memo[Point]
	wkt        memo[string]
}
