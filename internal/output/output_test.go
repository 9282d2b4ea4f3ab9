// internal/output/output_test.go - Unit tests for formatters and writers
package output

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/valpere/geomkit/internal/source"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

const roadsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "road-1", "properties": {"lanes": 2},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[-1, -1], [-1, 1], [1, 1], [1, -1]]]}}
  ]
}`

func parse(t *testing.T, name, data string) *source.Document {
	t.Helper()
	doc, err := source.NewParser(nil).Parse(name, []byte(data))
	require.NoError(t, err)
	return doc
}

func decodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"geojson", "json", "wkt", "yaml", "WKB"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.True(t, f.IsValid())
	}
	_, err := ParseFormat("svg")
	assert.Error(t, err)
}

func TestGeoJSONFormatterGeometry(t *testing.T) {
	doc := parse(t, "point.geojson", `{"type":"Point","coordinates":[1.5,2]}`)

	data, err := NewGeoJSONFormatter(codec.Default(), false, false).Format(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1.5,2]}`, string(data))
}

func TestGeoJSONFormatterFeatureCollection(t *testing.T) {
	doc := parse(t, "roads.geojson", roadsJSON)

	data, err := NewGeoJSONFormatter(codec.Default(), true, false).Format(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "pretty output is indented")

	out := decodeJSON(t, data)
	assert.Equal(t, "FeatureCollection", out["type"])
	features := out["features"].([]any)
	require.Len(t, features, 2)

	first := features[0].(map[string]any)
	assert.Equal(t, "road-1", first["id"])
	assert.Equal(t, map[string]any{"lanes": float64(2)}, first["properties"])
	assert.Equal(t, "LineString", first["geometry"].(map[string]any)["type"])

	second := features[1].(map[string]any)
	assert.NotContains(t, second, "id")
	rings := second["geometry"].(map[string]any)["coordinates"].([]any)
	assert.Len(t, rings[0].([]any), 5, "rings are written closed")
}

func TestGeoJSONFormatterMetadata(t *testing.T) {
	doc, err := source.NewParser(nil).Process(&source.Response{
		Request: source.NewRequest("roads.geojson"),
		Data:    []byte(roadsJSON),
		Size:    len(roadsJSON),
	})
	require.NoError(t, err)

	data, err := NewGeoJSONFormatter(codec.Default(), false, true).Format(doc)
	require.NoError(t, err)

	metadata := decodeJSON(t, data)["_metadata"].(map[string]any)
	assert.Equal(t, "roads.geojson", metadata["source"])
	assert.Equal(t, float64(2), metadata["feature_count"])
	assert.Equal(t, float64(7), metadata["point_count"])
}

func TestGeoJSONFormatterBatch(t *testing.T) {
	docs := []*source.Document{
		parse(t, "roads.geojson", roadsJSON),
		parse(t, "point.geojson", `{"type":"Point","coordinates":[5,6]}`),
	}

	data, err := NewGeoJSONFormatter(codec.Default(), false, true).FormatBatch(docs)
	require.NoError(t, err)

	out := decodeJSON(t, data)
	features := out["features"].([]any)
	require.Len(t, features, 3)
	last := features[2].(map[string]any)
	assert.Equal(t, "point.geojson", last["properties"].(map[string]any)["_source"])

	metadata := out["_metadata"].(map[string]any)
	assert.Equal(t, float64(2), metadata["total_documents"])
	assert.Equal(t, float64(3), metadata["total_features"])
	assert.Equal(t, float64(8), metadata["total_points"])

	assert.NotContains(t, docs[0].Features[0].Properties, "_source", "source properties are untouched")
}

func TestJSONFormatterReport(t *testing.T) {
	doc := parse(t, "roads.geojson", roadsJSON)

	data, err := NewJSONFormatter(codec.Default(), false, false, 12).Format(doc)
	require.NoError(t, err)

	out := decodeJSON(t, data)
	assert.Equal(t, "roads.geojson", out["source"])
	assert.Equal(t, "FeatureCollection", out["kind"])
	assert.NotContains(t, out, "metadata")

	features := out["features"].([]any)
	line := features[0].(map[string]any)
	assert.Equal(t, "LineString", line["type"])
	assert.Equal(t, float64(2), line["point_count"])
	assert.Equal(t, map[string]any{"x": 0.5, "y": 0.5}, line["center"])
	assert.Equal(t, []any{0.0, 0.0, 1.0, 1.0}, line["bbox"])
	assert.Equal(t, "LINESTRING (0 0, 1 1)", line["wkt"])

	polygon := features[1].(map[string]any)
	assert.Equal(t, "Polygon", polygon["type"])
	assert.InDelta(t, 889.4916641750779, polygon["circumference_km"], 1e-9)
}

func TestFeatureReportEmptyAndPoint(t *testing.T) {
	empty, err := NewFeatureReport(&source.Feature{Geometry: geometry.EmptyMultiPoint}, codec.Default(), 12)
	require.NoError(t, err)
	assert.Nil(t, empty.Center)
	assert.Nil(t, empty.BBox)
	assert.Equal(t, "MULTIPOINT EMPTY", empty.WKT)

	point, err := NewFeatureReport(&source.Feature{Geometry: geometry.XY(-5.6, 42.6)}, codec.Default(), 5)
	require.NoError(t, err)
	assert.Equal(t, "ezs42", point.GeoHash)
	assert.Equal(t, &geometry.Point{X: -5.6, Y: 42.6}, point.Center)
}

func TestYAMLFormatter(t *testing.T) {
	doc := parse(t, "point.geojson", `{"type":"Point","coordinates":[1.5,2]}`)

	data, err := NewYAMLFormatter(codec.Default(), false, 0).Format(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, "point.geojson", out["source"])
	feature := out["features"].([]any)[0].(map[string]any)
	assert.Equal(t, "POINT (1.5 2)", feature["wkt"])
	assert.Equal(t, 1, feature["point_count"])
	assert.NotContains(t, feature, "geohash")

	batch, err := NewYAMLFormatter(codec.Default(), false, 0).FormatBatch([]*source.Document{doc, doc})
	require.NoError(t, err)
	var reports []map[string]any
	require.NoError(t, yaml.Unmarshal(batch, &reports))
	assert.Len(t, reports, 2)
}

func TestWKTFormatter(t *testing.T) {
	doc := parse(t, "roads.geojson", roadsJSON)

	data, err := NewWKTFormatter().Format(doc)
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING (0 0, 1 1)\nPOLYGON ((-1 -1, -1 1, 1 1, 1 -1, -1 -1))\n", string(data))

	batch, err := NewWKTFormatter().FormatBatch([]*source.Document{doc, doc})
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(batch), "\n"))
}

func TestWKBFormatter(t *testing.T) {
	doc := parse(t, "point.geojson", `{"type":"Point","coordinates":[1,2]}`)

	hex, err := NewWKBFormatter(true).Format(doc)
	require.NoError(t, err)
	assert.Equal(t, "0101000000000000000000f03f0000000000000040\n", string(hex))

	raw, err := NewWKBFormatter(false).Format(doc)
	require.NoError(t, err)
	assert.Len(t, raw, 21)
	assert.Equal(t, byte(1), raw[0], "little endian")
	assert.Equal(t, "application/octet-stream", NewWKBFormatter(false).ContentType())
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		ext    string
	}{
		{FormatGeoJSON, ".geojson"},
		{FormatJSON, ".json"},
		{FormatYAML, ".yaml"},
		{FormatWKT, ".wkt"},
	}
	for _, tt := range tests {
		f, err := NewFormatter(&FormatterConfig{Format: tt.format})
		require.NoError(t, err)
		assert.Equal(t, tt.ext, f.Extension())
	}

	f, err := NewFormatter(&FormatterConfig{Format: FormatWKB, WKBHex: true})
	require.NoError(t, err)
	assert.Equal(t, ".wkb.hex", f.Extension())

	_, err = NewFormatter(&FormatterConfig{Format: "svg"})
	assert.Error(t, err)
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewStreamWriter(&WriterConfig{Format: FormatGeoJSON}, &buf)
	require.NoError(t, err)

	require.NoError(t, w.Write(parse(t, "point.geojson", `{"type":"Point","coordinates":[1,2]}`)))
	require.NoError(t, w.Close())
	assert.Equal(t, "{\"coordinates\":[1,2],\"type\":\"Point\"}\n", buf.String())
}

func TestFileWriterCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "shapes.wkt")
	w, err := NewFileWriter(&WriterConfig{Format: FormatWKT, Compression: true}, path)
	require.NoError(t, err)
	assert.Equal(t, path+".gz", w.Name())

	require.NoError(t, w.WriteBatch([]*source.Document{parse(t, "roads.geojson", roadsJSON)}))
	require.NoError(t, w.Close())

	f, err := os.Open(path + ".gz")
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "LINESTRING (0 0, 1 1)\n"))
}

func TestMultiFileWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewMultiFileWriter(&WriterConfig{Format: FormatWKT}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "roads.wkt"), w.Path("in/roads.geojson"))
	assert.Equal(t, filepath.Join(dir, "roads.wkt"), w.Path("in/roads.geojson.gz"))

	path, err := w.WriteFile(parse(t, "in/roads.geojson", roadsJSON))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roads.wkt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNewWriter(t *testing.T) {
	w, err := NewWriter(&WriterConfig{Format: FormatJSON}, "-", false)
	require.NoError(t, err)
	assert.IsType(t, &StreamWriter{}, w)

	w, err = NewWriter(&WriterConfig{Format: FormatJSON}, t.TempDir(), true)
	require.NoError(t, err)
	assert.IsType(t, &MultiFileWriter{}, w)

	w, err = NewWriter(&WriterConfig{Format: FormatJSON}, filepath.Join(t.TempDir(), "a.json"), false)
	require.NoError(t, err)
	assert.IsType(t, &FileWriter{}, w)
	require.NoError(t, w.Close())
}
