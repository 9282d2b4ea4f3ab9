// internal/output/formatter.go - Output formatting implementation
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb/encoding/wkb"
	"gopkg.in/yaml.v3"

	"github.com/valpere/geomkit/internal/source"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

// GeoJSONFormatter renders documents as GeoJSON. A bare geometry document
// stays a bare geometry object; feature documents keep their wrapper.
type GeoJSONFormatter struct {
	registry     *codec.Registry
	pretty       bool
	includeStats bool
}

// NewGeoJSONFormatter creates a new GeoJSON formatter
func NewGeoJSONFormatter(registry *codec.Registry, pretty, includeStats bool) *GeoJSONFormatter {
	return &GeoJSONFormatter{
		registry:     registry,
		pretty:       pretty,
		includeStats: includeStats,
	}
}

// Format formats a single document as GeoJSON
func (f *GeoJSONFormatter) Format(doc *source.Document) ([]byte, error) {
	var output map[string]any

	switch doc.Kind {
	case source.KindGeometry:
		if len(doc.Features) != 1 {
			return nil, fmt.Errorf("geometry document %s holds %d geometries", doc.Name, len(doc.Features))
		}
		tree, err := f.registry.Encode(doc.Features[0].Geometry)
		if err != nil {
			return nil, err
		}
		output = tree

	case source.KindFeature:
		if len(doc.Features) != 1 {
			return f.featureCollection(doc.Features)
		}
		feature, err := f.feature(doc.Features[0])
		if err != nil {
			return nil, err
		}
		output = feature

	default:
		features, err := f.features(doc.Features)
		if err != nil {
			return nil, err
		}
		output = map[string]any{"type": "FeatureCollection", "features": features}
	}

	if f.includeStats && doc.Metadata != nil {
		output["_metadata"] = map[string]any{
			"source":        doc.Name,
			"feature_count": doc.Metadata.FeatureCount,
			"point_count":   doc.Metadata.PointCount,
			"size_bytes":    doc.Metadata.Size,
			"fetch_time":    doc.Metadata.FetchTime.String(),
			"parse_time":    doc.Metadata.ParseTime.String(),
		}
	}

	return f.marshal(output)
}

// FormatBatch merges the features of every document into one FeatureCollection
func (f *GeoJSONFormatter) FormatBatch(docs []*source.Document) ([]byte, error) {
	features := make([]any, 0)
	totalPoints := 0

	for _, doc := range docs {
		converted, err := f.features(doc.Features)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Name, err)
		}
		if f.includeStats {
			for _, feature := range converted {
				feature.(map[string]any)["properties"].(map[string]any)["_source"] = doc.Name
			}
		}
		features = append(features, converted...)
		totalPoints += doc.PointCount()
	}

	collection := map[string]any{"type": "FeatureCollection", "features": features}
	if f.includeStats {
		collection["_metadata"] = map[string]any{
			"total_documents": len(docs),
			"total_features":  len(features),
			"total_points":    totalPoints,
			"generated_at":    time.Now().UTC(),
		}
	}

	return f.marshal(collection)
}

func (f *GeoJSONFormatter) featureCollection(features []*source.Feature) ([]byte, error) {
	converted, err := f.features(features)
	if err != nil {
		return nil, err
	}
	return f.marshal(map[string]any{"type": "FeatureCollection", "features": converted})
}

func (f *GeoJSONFormatter) features(features []*source.Feature) ([]any, error) {
	result := make([]any, len(features))
	for i, feature := range features {
		converted, err := f.feature(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		result[i] = converted
	}
	return result, nil
}

// feature always carries a properties object, copied so callers may add to it
func (f *GeoJSONFormatter) feature(feature *source.Feature) (map[string]any, error) {
	tree, err := f.registry.Encode(feature.Geometry)
	if err != nil {
		return nil, err
	}
	properties := make(map[string]any, len(feature.Properties))
	for k, v := range feature.Properties {
		properties[k] = v
	}
	result := map[string]any{
		"type":       "Feature",
		"geometry":   tree,
		"properties": properties,
	}
	if feature.ID != nil {
		result["id"] = feature.ID
	}
	return result, nil
}

func (f *GeoJSONFormatter) marshal(v any) ([]byte, error) {
	if f.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ContentType returns the MIME type for GeoJSON
func (f *GeoJSONFormatter) ContentType() string {
	return "application/geo+json"
}

// Extension returns the file extension for GeoJSON
func (f *GeoJSONFormatter) Extension() string {
	return ".geojson"
}

// JSONFormatter renders the inspection report of each document as JSON
type JSONFormatter struct {
	registry     *codec.Registry
	pretty       bool
	includeStats bool
	precision    uint
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(registry *codec.Registry, pretty, includeStats bool, precision uint) *JSONFormatter {
	return &JSONFormatter{
		registry:     registry,
		pretty:       pretty,
		includeStats: includeStats,
		precision:    precision,
	}
}

// Format formats a single document report
func (f *JSONFormatter) Format(doc *source.Document) ([]byte, error) {
	report, err := f.report(doc)
	if err != nil {
		return nil, err
	}
	return f.marshal(report)
}

// FormatBatch formats the reports of several documents with a summary
func (f *JSONFormatter) FormatBatch(docs []*source.Document) ([]byte, error) {
	reports := make([]*Report, len(docs))
	for i, doc := range docs {
		report, err := f.report(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Name, err)
		}
		reports[i] = report
	}

	result := map[string]any{"documents": reports}
	if f.includeStats {
		result["summary"] = summarise(docs)
	}
	return f.marshal(result)
}

func (f *JSONFormatter) report(doc *source.Document) (*Report, error) {
	report, err := NewReport(doc, f.registry, f.precision)
	if err != nil {
		return nil, err
	}
	if !f.includeStats {
		report.Metadata = nil
	}
	return report, nil
}

func (f *JSONFormatter) marshal(v any) ([]byte, error) {
	if f.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ContentType returns the MIME type for JSON
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// Extension returns the file extension for JSON
func (f *JSONFormatter) Extension() string {
	return ".json"
}

// YAMLFormatter renders the inspection report of each document as YAML
type YAMLFormatter struct {
	registry     *codec.Registry
	includeStats bool
	precision    uint
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(registry *codec.Registry, includeStats bool, precision uint) *YAMLFormatter {
	return &YAMLFormatter{
		registry:     registry,
		includeStats: includeStats,
		precision:    precision,
	}
}

// Format formats a single document report
func (f *YAMLFormatter) Format(doc *source.Document) ([]byte, error) {
	report, err := NewReport(doc, f.registry, f.precision)
	if err != nil {
		return nil, err
	}
	if !f.includeStats {
		report.Metadata = nil
	}
	return marshalYAML(report)
}

// FormatBatch formats the reports of several documents as a YAML sequence
func (f *YAMLFormatter) FormatBatch(docs []*source.Document) ([]byte, error) {
	reports := make([]*Report, len(docs))
	for i, doc := range docs {
		report, err := NewReport(doc, f.registry, f.precision)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Name, err)
		}
		if !f.includeStats {
			report.Metadata = nil
		}
		reports[i] = report
	}
	return marshalYAML(reports)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type for YAML
func (f *YAMLFormatter) ContentType() string {
	return "application/yaml"
}

// Extension returns the file extension for YAML
func (f *YAMLFormatter) Extension() string {
	return ".yaml"
}

// WKTFormatter writes one WKT line per geometry
type WKTFormatter struct{}

// NewWKTFormatter creates a new WKT formatter
func NewWKTFormatter() *WKTFormatter {
	return &WKTFormatter{}
}

// Format formats the geometries of a document
func (f *WKTFormatter) Format(doc *source.Document) ([]byte, error) {
	var sb strings.Builder
	for _, feature := range doc.Features {
		sb.WriteString(feature.Geometry.WKT())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// FormatBatch formats the geometries of every document in order
func (f *WKTFormatter) FormatBatch(docs []*source.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		data, _ := f.Format(doc)
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type for WKT
func (f *WKTFormatter) ContentType() string {
	return "text/plain"
}

// Extension returns the file extension for WKT
func (f *WKTFormatter) Extension() string {
	return ".wkt"
}

// WKBFormatter encodes geometries as little-endian WKB, either as raw
// concatenated bytes or as one hex string per line
type WKBFormatter struct {
	hex bool
}

// NewWKBFormatter creates a new WKB formatter
func NewWKBFormatter(hex bool) *WKBFormatter {
	return &WKBFormatter{hex: hex}
}

// Format formats the geometries of a document
func (f *WKBFormatter) Format(doc *source.Document) ([]byte, error) {
	var buf bytes.Buffer
	for i, feature := range doc.Features {
		if err := f.encode(&buf, feature.Geometry); err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// FormatBatch formats the geometries of every document in order
func (f *WKBFormatter) FormatBatch(docs []*source.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		data, err := f.Format(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Name, err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func (f *WKBFormatter) encode(buf *bytes.Buffer, g geometry.Geometry) error {
	og := geometry.ToOrb(g)
	if f.hex {
		encoded, err := wkb.MarshalToHex(og)
		if err != nil {
			return fmt.Errorf("failed to encode WKB: %w", err)
		}
		buf.WriteString(encoded)
		buf.WriteByte('\n')
		return nil
	}
	encoded, err := wkb.Marshal(og)
	if err != nil {
		return fmt.Errorf("failed to encode WKB: %w", err)
	}
	buf.Write(encoded)
	return nil
}

// ContentType returns the MIME type for WKB
func (f *WKBFormatter) ContentType() string {
	if f.hex {
		return "text/plain"
	}
	return "application/octet-stream"
}

// Extension returns the file extension for WKB
func (f *WKBFormatter) Extension() string {
	if f.hex {
		return ".wkb.hex"
	}
	return ".wkb"
}

// NewFormatter creates a formatter based on the specified configuration
func NewFormatter(config *FormatterConfig) (Formatter, error) {
	return NewFormatterWithRegistry(config, codec.Default())
}

// NewFormatterWithRegistry creates a formatter encoding through registry
func NewFormatterWithRegistry(config *FormatterConfig, registry *codec.Registry) (Formatter, error) {
	switch config.Format {
	case FormatGeoJSON:
		return NewGeoJSONFormatter(registry, config.Pretty, config.IncludeStats), nil
	case FormatJSON:
		return NewJSONFormatter(registry, config.Pretty, config.IncludeStats, config.Precision), nil
	case FormatYAML:
		return NewYAMLFormatter(registry, config.IncludeStats, config.Precision), nil
	case FormatWKT:
		return NewWKTFormatter(), nil
	case FormatWKB:
		return NewWKBFormatter(config.WKBHex), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", config.Format)
	}
}

// summarise totals a set of documents for batch metadata
func summarise(docs []*source.Document) map[string]any {
	features, points := 0, 0
	for _, doc := range docs {
		features += len(doc.Features)
		points += doc.PointCount()
	}
	return map[string]any{
		"total_documents": len(docs),
		"total_features":  features,
		"total_points":    points,
		"generated_at":    time.Now().UTC(),
	}
}
