// internal/output/report.go - Inspection report for geometry documents
package output

import (
	"math"

	"github.com/valpere/geomkit/internal/source"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

// Report summarises a document, one entry per feature
type Report struct {
	Source   string           `json:"source" yaml:"source"`
	Kind     source.Kind      `json:"kind" yaml:"kind"`
	Features []*FeatureReport `json:"features" yaml:"features"`
	Metadata *source.Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FeatureReport holds the derived values of one geometry. Center and BBox
// are omitted for empty geometries.
type FeatureReport struct {
	ID              any             `json:"id,omitempty" yaml:"id,omitempty"`
	Type            string          `json:"type" yaml:"type"`
	PointCount      int             `json:"point_count" yaml:"point_count"`
	Center          *geometry.Point `json:"center,omitempty" yaml:"center,omitempty"`
	BBox            []float64       `json:"bbox,omitempty" yaml:"bbox,omitempty,flow"`
	GeoHash         string          `json:"geohash,omitempty" yaml:"geohash,omitempty"`
	CircumferenceKm float64         `json:"circumference_km,omitempty" yaml:"circumference_km,omitempty"`
	WKT             string          `json:"wkt" yaml:"wkt"`
	Geometry        map[string]any  `json:"geometry" yaml:"geometry"`
	Properties      map[string]any  `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NewReport builds the report for doc. Points get a geohash of the given
// precision; rings and polygons get the great-circle length of their outline.
func NewReport(doc *source.Document, registry *codec.Registry, precision uint) (*Report, error) {
	report := &Report{
		Source:   doc.Name,
		Kind:     doc.Kind,
		Features: make([]*FeatureReport, len(doc.Features)),
		Metadata: doc.Metadata,
	}
	for i, f := range doc.Features {
		fr, err := NewFeatureReport(f, registry, precision)
		if err != nil {
			return nil, err
		}
		report.Features[i] = fr
	}
	return report, nil
}

// NewFeatureReport builds the report entry for a single feature
func NewFeatureReport(f *source.Feature, registry *codec.Registry, precision uint) (*FeatureReport, error) {
	g := f.Geometry
	tree, err := registry.Encode(g)
	if err != nil {
		return nil, err
	}

	fr := &FeatureReport{
		ID:         f.ID,
		Type:       g.Type().String(),
		PointCount: g.PointCount(),
		WKT:        g.WKT(),
		Geometry:   tree,
		Properties: f.Properties,
	}

	if center := g.Center(); !math.IsNaN(center.X) && !math.IsNaN(center.Y) {
		fr.Center = &center
	}

	if bound := geometry.Bound(g); g.PointCount() > 0 && !bound.IsEmpty() {
		fr.BBox = []float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()}
	}

	switch v := g.(type) {
	case geometry.Point:
		if precision > 0 {
			fr.GeoHash = v.GeoHash(precision)
		}
	case *geometry.LinearRing:
		fr.CircumferenceKm = v.CircumferenceKilometers()
	case *geometry.Polygon:
		fr.CircumferenceKm = v.Exterior().CircumferenceKilometers()
	}

	return fr, nil
}
