// pkg/geometry/orb_test.go - Unit tests for the orb bridge
package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbRoundTrip(t *testing.T) {
	geometries := []Geometry{
		XY(1.5, -2),
		MustLineString(XY(0, 0), XY(1, 1), XY(2, 0)),
		MustPolygon(square(0, 0, 4), square(1, 1, 1)),
		NewMultiPoint(XY(0, 0), XY(5, 5)),
		MustMultiLineString(MustLineString(XY(0, 0), XY(1, 1)), MustLineString(XY(2, 2), XY(3, 3))),
		MustMultiPolygon(MustPolygon(square(0, 0, 1)), MustPolygon(square(5, 5, 2))),
		MustGeometryCollection(XY(1, 2), MustLineString(XY(0, 0), XY(1, 1))),
	}

	for _, g := range geometries {
		t.Run(g.Type().String(), func(t *testing.T) {
			back, err := FromOrb(ToOrb(g))
			require.NoError(t, err)
			assert.True(t, Equal(g, back), "got %s, want %s", back, g)
		})
	}
}

func TestToOrbClosesRings(t *testing.T) {
	ring := ToOrb(MustLinearRing(XY(0, 0), XY(1, 0), XY(1, 1))).(orb.Ring)
	assert.Len(t, ring, 4)
	assert.True(t, ring.Closed())
}

func TestFromOrbErrors(t *testing.T) {
	tests := []struct {
		name string
		in   orb.Geometry
		want error
	}{
		{"short line", orb.LineString{{0, 0}}, ErrTooFewPoints},
		{"empty polygon", orb.Polygon{}, ErrMissingExterior},
		{"empty ring", orb.Polygon{orb.Ring{}}, ErrEmptyRing},
		{"short line in multi", orb.MultiLineString{{{0, 0}, {1, 1}}, {{2, 2}}}, ErrTooFewPoints},
		{"nil", nil, ErrNilGeometry},
		{"ring in collection", orb.Collection{orb.Point{0, 0}, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, ErrRingInCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromOrb(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromOrbBound(t *testing.T) {
	g, err := FromOrb(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 1}})
	require.NoError(t, err)
	assert.Equal(t, TypePolygon, g.Type())
	assert.Equal(t, XY(1, 0.5), g.(*Polygon).Exterior().Center())
}

func TestBound(t *testing.T) {
	b := Bound(MustGeometryCollection(XY(-1, 5), MustLineString(XY(2, -3), XY(0, 0))))
	assert.Equal(t, orb.Point{-1, -3}, b.Min)
	assert.Equal(t, orb.Point{2, 5}, b.Max)
}

func TestLineStringSimplifyKeepsEnds(t *testing.T) {
	ls := MustLineString(XY(0, 0), XY(1, 0.01), XY(2, 0), XY(3, 5))

	simplified := ls.Simplify(0.1)
	assert.Equal(t, []Point{XY(0, 0), XY(2, 0), XY(3, 5)}, simplified.Points())
	assert.Equal(t, 4, ls.PointCount(), "source line is untouched")
}

func TestSimplify(t *testing.T) {
	line := MustLineString(XY(0, 0), XY(1, 0.01), XY(2, 0))

	t.Run("points unchanged", func(t *testing.T) {
		mp := NewMultiPoint(XY(0, 0), XY(0, 0.001))
		got, err := Simplify(mp, 1)
		require.NoError(t, err)
		assert.Same(t, mp, got)
	})

	t.Run("multi line string", func(t *testing.T) {
		got, err := Simplify(MustMultiLineString(line, line), 0.1)
		require.NoError(t, err)
		require.IsType(t, &MultiLineString{}, got)
		assert.Equal(t, "MULTILINESTRING ((0 0, 2 0), (0 0, 2 0))", got.WKT())
	})

	t.Run("collection", func(t *testing.T) {
		got, err := Simplify(MustGeometryCollection(XY(7, 7), line), 0.1)
		require.NoError(t, err)
		assert.Equal(t, "GEOMETRYCOLLECTION (POINT (7 7), LINESTRING (0 0, 2 0))", got.WKT())
	})

	t.Run("nil", func(t *testing.T) {
		_, err := Simplify(nil, 1)
		assert.ErrorIs(t, err, ErrNilGeometry)
	})
}
