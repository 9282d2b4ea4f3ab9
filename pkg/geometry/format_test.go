// pkg/geometry/format_test.go - Unit tests for coordinate formatting
package geometry

import (
	"math"
	"testing"
)

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"integer", 42, "42"},
		{"negative integer", -2, "-2"},
		{"fraction", 1.5, "1.5"},
		{"no exponent for large values", 1e21, "1000000000000000000000"},
		{"no exponent for small values", 0.000001, "0.000001"},
		{"rounds past sixteen digits", 0.1 + 0.2, "0.3"},
		{"below resolution", 1e-20, "0"},
		{"sixteen digits kept", 0.1234567890123456, "0.1234567890123456"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCoordinate(tt.in); got != tt.want {
				t.Errorf("FormatCoordinate(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		keyword string
	}{
		{TypePoint, "Point", "POINT"},
		{TypeLineString, "LineString", "LINESTRING"},
		{TypeLinearRing, "LinearRing", "LINEARRING"},
		{TypePolygon, "Polygon", "POLYGON"},
		{TypeMultiPoint, "MultiPoint", "MULTIPOINT"},
		{TypeMultiLineString, "MultiLineString", "MULTILINESTRING"},
		{TypeMultiPolygon, "MultiPolygon", "MULTIPOLYGON"},
		{TypeGeometryCollection, "GeometryCollection", "GEOMETRYCOLLECTION"},
	}

	for _, tt := range tests {
		if tt.typ.String() != tt.name {
			t.Errorf("String() = %s, want %s", tt.typ.String(), tt.name)
		}
		if tt.typ.Keyword() != tt.keyword {
			t.Errorf("Keyword() = %s, want %s", tt.typ.Keyword(), tt.keyword)
		}
	}
}
