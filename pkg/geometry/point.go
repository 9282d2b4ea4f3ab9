// pkg/geometry/point.go - Immutable 2D point and its affine transforms
package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// EarthRadiusKilometers is the mean Earth radius used for great-circle distances
const EarthRadiusKilometers = 6371.0

// Point is a 2D coordinate. For geographic use X is the longitude and Y the latitude.
// Points are plain values and compare with ==.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// XY returns a point from x and y, in that order
func XY(x, y float64) Point {
	return Point{X: x, Y: y}
}

// YX returns a point from y and x, in that order, for latitude-first call sites
func YX(y, x float64) Point {
	return Point{X: x, Y: y}
}

// PointFromGeoHash decodes a geohash into the center of the cell it denotes
func PointFromGeoHash(hash string) (Point, error) {
	if hash == "" {
		return Point{}, fmt.Errorf("%w: empty hash", ErrInvalidGeoHash)
	}
	if err := geohash.Validate(hash); err != nil {
		return Point{}, fmt.Errorf("%w %q: %v", ErrInvalidGeoHash, hash, err)
	}
	lat, lng := geohash.DecodeCenter(hash)
	return Point{X: lng, Y: lat}, nil
}

func (p Point) sealed() {}

// Type returns TypePoint
func (p Point) Type() Type { return TypePoint }

// PointCount is always 1
func (p Point) PointCount() int { return 1 }

// Center returns the point itself
func (p Point) Center() Point { return p }

// WKT returns "POINT (x y)"
func (p Point) WKT() string {
	var b strings.Builder
	b.WriteString("POINT (")
	writePoint(&b, p)
	b.WriteByte(')')
	return b.String()
}

func (p Point) String() string { return p.WKT() }

// WithX returns a copy of p with X replaced
func (p Point) WithX(x float64) Point {
	return Point{X: x, Y: p.Y}
}

// WithY returns a copy of p with Y replaced
func (p Point) WithY(y float64) Point {
	return Point{X: p.X, Y: y}
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rotate returns p rotated counter-clockwise around origin by radians
func (p Point) Rotate(origin Point, radians float64) Point {
	sin, cos := math.Sincos(radians)
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	return Point{
		X: origin.X + dx*cos - dy*sin,
		Y: origin.Y + dx*sin + dy*cos,
	}
}

// RotateDegrees is Rotate with the angle given in degrees
func (p Point) RotateDegrees(origin Point, degrees float64) Point {
	return p.Rotate(origin, degrees*math.Pi/180)
}

// Scale returns p scaled away from origin by sx and sy
func (p Point) Scale(origin Point, sx, sy float64) Point {
	return Point{
		X: origin.X + (p.X-origin.X)*sx,
		Y: origin.Y + (p.Y-origin.Y)*sy,
	}
}

// DistanceKilometers returns the haversine distance between p and other,
// reading both as (longitude, latitude) in degrees
func (p Point) DistanceKilometers(other Point) float64 {
	lat1 := p.Y * math.Pi / 180
	lat2 := other.Y * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (other.X - p.X) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * EarthRadiusKilometers * math.Asin(math.Min(1, math.Sqrt(a)))
}

// DistanceMeters is DistanceKilometers in meters
func (p Point) DistanceMeters(other Point) float64 {
	return p.DistanceKilometers(other) * 1000
}

// GeoHash encodes p into a geohash of the given number of characters (1-12)
func (p Point) GeoHash(precision uint) string {
	return geohash.EncodeWithPrecision(p.Y, p.X, precision)
}
