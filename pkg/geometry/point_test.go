// pkg/geometry/point_test.go - Unit tests for Point
package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointWKT(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  string
	}{
		{"london", XY(-0.118092, 51.509865), "POINT (-0.118092 51.509865)"},
		{"integers", XY(1, 2), "POINT (1 2)"},
		{"yx argument order", YX(51.509865, -0.118092), "POINT (-0.118092 51.509865)"},
		{"zero", Point{}, "POINT (0 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.WKT())
			assert.Equal(t, tt.want, tt.point.String())
		})
	}
}

func TestPointDerivedValues(t *testing.T) {
	p := XY(3, 4)
	assert.Equal(t, TypePoint, p.Type())
	assert.Equal(t, 1, p.PointCount())
	assert.Equal(t, p, p.Center())
}

func TestPointWith(t *testing.T) {
	p := XY(1, 2)
	assert.Equal(t, XY(5, 2), p.WithX(5))
	assert.Equal(t, XY(1, 7), p.WithY(7))
	assert.Equal(t, XY(1, 2), p, "receiver must not change")
}

func TestPointAffine(t *testing.T) {
	tests := []struct {
		name string
		got  Point
		want Point
	}{
		{"add", XY(1, 2).Add(3, -4), XY(4, -2)},
		{"rotate quarter turn", XY(1, 0).Rotate(XY(0, 0), math.Pi/2), XY(0, 1)},
		{"rotate degrees around other origin", XY(2, 1).RotateDegrees(XY(1, 1), 180), XY(0, 1)},
		{"rotate full turn", XY(3, -7).RotateDegrees(XY(10, 10), 360), XY(3, -7)},
		{"scale", XY(3, 3).Scale(XY(1, 1), 2, 3), XY(5, 7)},
		{"scale origin stays", XY(1, 1).Scale(XY(1, 1), 5, 5), XY(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want.X, tt.got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, tt.got.Y, 1e-9)
		})
	}
}

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		wantKm float64
	}{
		{"one degree of longitude at the equator", XY(0, 0), XY(1, 0), 111.19492664455873},
		{"long haul", XY(96, 64), XY(48, 32), 4840.034855783592},
		{"same point", XY(12, 34), XY(12, 34), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantKm, tt.a.DistanceKilometers(tt.b), 1e-6)
			assert.InDelta(t, tt.wantKm, tt.b.DistanceKilometers(tt.a), 1e-6)
			assert.InDelta(t, tt.wantKm*1000, tt.a.DistanceMeters(tt.b), 1e-3)
		})
	}
}

func TestPointFromGeoHash(t *testing.T) {
	tests := []struct {
		hash string
		want Point
	}{
		{"gcpuvpmm3k5f", YX(51.50070948, -0.12456732)},
		{"stq4s3x38z4n", YX(29.97923900, 31.13425897)},
		{"9q8zhuvg6cte", YX(37.81962781, -122.47855028)},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			got, err := PointFromGeoHash(tt.hash)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
		})
	}
}

func TestPointFromGeoHashInvalid(t *testing.T) {
	for _, hash := range []string{"", "B", "a", "i", "l", "o", "gcpuv!"} {
		t.Run(hash, func(t *testing.T) {
			_, err := PointFromGeoHash(hash)
			assert.ErrorIs(t, err, ErrInvalidGeoHash)
		})
	}
}

func TestPointGeoHash(t *testing.T) {
	tests := []struct {
		point Point
		want  string
	}{
		{YX(48.85853327, 2.29436914), "u09tunqtwdtx"},
		{YX(-33.85678251, 151.21526157), "r3gx2ux9fyr3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.GeoHash(12))
			assert.Equal(t, tt.want[:5], tt.point.GeoHash(5))
		})
	}
}
