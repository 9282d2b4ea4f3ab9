// pkg/geometry/multi_test.go - Unit tests for MultiPoint, MultiLineString and MultiPolygon
package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySingletons(t *testing.T) {
	mp := NewMultiPoint()
	mls, err := NewMultiLineString()
	require.NoError(t, err)
	mpg, err := NewMultiPolygon()
	require.NoError(t, err)
	gc, err := NewGeometryCollection()
	require.NoError(t, err)

	tests := []struct {
		name  string
		got   Geometry
		empty Geometry
		wkt   string
	}{
		{"multipoint", mp, EmptyMultiPoint, "MULTIPOINT EMPTY"},
		{"multilinestring", mls, EmptyMultiLineString, "MULTILINESTRING EMPTY"},
		{"multipolygon", mpg, EmptyMultiPolygon, "MULTIPOLYGON EMPTY"},
		{"geometrycollection", gc, EmptyGeometryCollection, "GEOMETRYCOLLECTION EMPTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.empty, tt.got)
			assert.Equal(t, tt.wkt, tt.got.WKT())
			assert.Equal(t, 0, tt.got.PointCount())
			assert.True(t, math.IsNaN(tt.got.Center().X))
			assert.True(t, math.IsNaN(tt.got.Center().Y))
		})
	}
}

func TestEmptyFromBuilders(t *testing.T) {
	assert.Same(t, EmptyMultiPoint, NewMultiPointBuilder().Build())

	mls, err := NewMultiLineStringBuilder().Build()
	require.NoError(t, err)
	assert.Same(t, EmptyMultiLineString, mls)

	mp, err := NewMultiPolygonBuilder().Build()
	require.NoError(t, err)
	assert.Same(t, EmptyMultiPolygon, mp)

	gc, err := NewGeometryCollectionBuilder().Build()
	require.NoError(t, err)
	assert.Same(t, EmptyGeometryCollection, gc)

	assert.Same(t, EmptyMultiPoint, EmptyMultiPoint.Translate(1, 1))
}

func TestMultiPoint(t *testing.T) {
	mp := NewMultiPoint(XY(0, 0), XY(2, 4), XY(4, 2))

	assert.Equal(t, "MULTIPOINT (0 0, 2 4, 4 2)", mp.WKT())
	assert.Equal(t, 3, mp.PointCount())
	assert.Equal(t, XY(2, 2), mp.Center())
	assert.Equal(t, "MULTIPOINT (1 1, 3 5, 5 3)", mp.Translate(1, 1).WKT())

	b := NewMultiPointBuilder().AddXY(1, 1).AddPoint(XY(2, 2), XY(3, 3)).RemovePoint(XY(2, 2))
	assert.True(t, b.Build().Equal(NewMultiPoint(XY(1, 1), XY(3, 3))))
}

func TestMultiLineString(t *testing.T) {
	mls := MustMultiLineString(
		MustLineString(XY(0, 0), XY(2, 0)),
		MustLineString(XY(0, 2), XY(2, 2), XY(4, 2)),
	)

	assert.Equal(t, "MULTILINESTRING ((0 0, 2 0), (0 2, 2 2, 4 2))", mls.WKT())
	assert.Equal(t, 5, mls.PointCount())
	// mean of (1, 0) and (2, 2)
	assert.Equal(t, XY(1.5, 1), mls.Center())

	_, err := NewMultiLineString(MustLineString(XY(0, 0), XY(1, 1)), nil)
	assert.ErrorIs(t, err, ErrNilGeometry)

	built, err := NewMultiLineStringBuilder().
		AddLine(mls.Lines()...).
		RemoveLine(MustLineString(XY(0, 0), XY(2, 0))).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 1, built.Len())
	assert.Equal(t, "MULTILINESTRING ((0 2, 2 2, 4 2))", built.WKT())
}

func TestMultiPolygon(t *testing.T) {
	mp := MustMultiPolygon(
		MustPolygon(square(0, 0, 4), square(1, 1, 1)),
		MustPolygon(MustLinearRing(XY(10, 10), XY(11, 10), XY(11, 11))),
	)

	assert.Equal(t,
		"MULTIPOLYGON (((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 2, 1 1)), ((10 10, 11 10, 11 11, 10 10)))",
		mp.WKT())
	assert.Equal(t, 14, mp.PointCount())
	assert.Equal(t, 2, mp.Len())

	moved := mp.Translate(1, 1)
	assert.InDelta(t, mp.Center().X+1, moved.Center().X, 1e-9)
	assert.InDelta(t, mp.Center().Y+1, moved.Center().Y, 1e-9)
	assert.False(t, mp.Equal(moved))
	assert.True(t, mp.Equal(MustMultiPolygon(mp.Polygons()...)))
}
