// internal/source/parser_test.go - Unit tests for document parsing
package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

const featureCollectionJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "road-1", "properties": {"lanes": 2},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]}},
    {"type": "Feature", "properties": {"name": "nowhere"}, "geometry": null},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 2], [2, 2], [2, 0], [0, 0]]]}}
  ]
}`

func TestParseGeometry(t *testing.T) {
	doc, err := NewParser(nil).Parse("point.geojson", []byte(pointJSON))
	require.NoError(t, err)

	assert.Equal(t, KindGeometry, doc.Kind)
	assert.Equal(t, "point.geojson", doc.Name)
	require.Len(t, doc.Features, 1)
	assert.Equal(t, geometry.XY(1.5, 2), doc.Features[0].Geometry)
	assert.Nil(t, doc.Features[0].Properties)
}

func TestParseFeature(t *testing.T) {
	data := `{"type":"Feature","id":7,"properties":{"name":"pin"},"geometry":{"type":"Point","coordinates":[3,4]}}`

	doc, err := NewParser(nil).Parse("pin.geojson", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, KindFeature, doc.Kind)
	require.Len(t, doc.Features, 1)
	assert.Equal(t, float64(7), doc.Features[0].ID)
	assert.Equal(t, "pin", doc.Features[0].Properties["name"])
	assert.Equal(t, geometry.XY(3, 4), doc.Features[0].Geometry)
}

func TestParseFeatureCollection(t *testing.T) {
	doc, err := NewParser(nil).Parse("roads.geojson", []byte(featureCollectionJSON))
	require.NoError(t, err)

	assert.Equal(t, KindFeatureCollection, doc.Kind)
	require.Len(t, doc.Features, 2, "null geometries are skipped")

	assert.Equal(t, "road-1", doc.Features[0].ID)
	assert.Equal(t, float64(2), doc.Features[0].Properties["lanes"])
	assert.Equal(t, "LINESTRING (0 0, 1 1, 2 0)", doc.Features[0].Geometry.WKT())
	assert.Equal(t, "POLYGON ((0 0, 0 2, 2 2, 2 0, 0 0))", doc.Features[1].Geometry.WKT())
	assert.Equal(t, 8, doc.PointCount())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantCode string
		wantErr  error
	}{
		{"invalid json", `{"type":`, internal.ErrorCodeValidation, nil},
		{"unknown type", `{"type":"Circle","coordinates":[0,0]}`, internal.ErrorCodeProcessing, codec.ErrUnknownType},
		{"bad coordinates", `{"type":"Point","coordinates":[0]}`, internal.ErrorCodeProcessing, codec.ErrMalformed},
		{"not an object", `[1, 2]`, internal.ErrorCodeProcessing, codec.ErrMalformed},
		{"invalid feature", `{"type":"Feature","geometry":{"type":"Point","coordinates":"x"}}`, internal.ErrorCodeValidation, nil},
		{
			"feature with short line",
			`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0]]}}`,
			internal.ErrorCodeProcessing,
			geometry.ErrTooFewPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).Parse("bad.geojson", []byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, internal.ErrorCodeOf(err))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestProcessMetadata(t *testing.T) {
	response := &Response{
		Request:    NewRequest("roads.geojson"),
		Data:       []byte(featureCollectionJSON),
		Size:       len(featureCollectionJSON),
		Compressed: true,
	}

	doc, err := NewParser(nil).Process(response)
	require.NoError(t, err)
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, len(featureCollectionJSON), doc.Metadata.Size)
	assert.True(t, doc.Metadata.Compressed)
	assert.Equal(t, 2, doc.Metadata.FeatureCount)
	assert.Equal(t, 8, doc.Metadata.PointCount)

	_, err = NewParser(nil).Process(&Response{Request: NewRequest("empty.geojson")})
	assert.Equal(t, internal.ErrorCodeValidation, internal.ErrorCodeOf(err))
}

func TestDocumentMap(t *testing.T) {
	doc, err := NewParser(nil).Process(&Response{Request: NewRequest("roads.geojson"), Data: []byte(featureCollectionJSON)})
	require.NoError(t, err)

	moved, err := doc.Map(func(g geometry.Geometry) (geometry.Geometry, error) {
		return geometry.Translate(g, 10, 0), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "LINESTRING (10 0, 11 1, 12 0)", moved.Features[0].Geometry.WKT())
	assert.Equal(t, "road-1", moved.Features[0].ID)
	assert.Equal(t, "LINESTRING (0 0, 1 1, 2 0)", doc.Features[0].Geometry.WKT(), "source document is untouched")
	assert.Equal(t, 8, moved.Metadata.PointCount)

	_, err = doc.Map(func(geometry.Geometry) (geometry.Geometry, error) { return nil, geometry.ErrNilGeometry })
	assert.ErrorIs(t, err, geometry.ErrNilGeometry)
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roads.geojson")
	require.NoError(t, os.WriteFile(path, []byte(featureCollectionJSON), 0o644))

	loader := NewLoader(testConfig(t), nil)

	doc, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, KindFeatureCollection, doc.Kind)
	assert.Len(t, doc.Features, 2)

	doc, err = loader.WithStdin(bytes.NewBufferString(pointJSON)).Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, KindGeometry, doc.Kind)
	assert.Equal(t, "-", doc.Name)
}
