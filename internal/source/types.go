// internal/source/types.go - Document source types
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/valpere/geomkit/pkg/geometry"
)

// Request identifies a document to fetch: a URL, a file path or "-" for stdin
type Request struct {
	Location string            `json:"location"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// Response holds the raw bytes of a fetched document
type Response struct {
	Request    *Request      `json:"request"`
	Data       []byte        `json:"data"`
	Headers    http.Header   `json:"headers"`
	StatusCode int           `json:"status_code"`
	Size       int           `json:"size"`
	FetchTime  time.Duration `json:"fetch_time"`
	Compressed bool          `json:"compressed"`
}

// Kind is the top-level GeoJSON object a document holds
type Kind string

const (
	KindGeometry          Kind = "Geometry"
	KindFeature           Kind = "Feature"
	KindFeatureCollection Kind = "FeatureCollection"
)

// Feature is a geometry with its identifier and properties
type Feature struct {
	ID         any            `json:"id,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   geometry.Geometry
}

// Document is a parsed source document. A bare geometry becomes a single
// feature without properties.
type Document struct {
	Name     string
	Kind     Kind
	Features []*Feature
	Metadata *Metadata
}

// Metadata describes where a document came from and what it holds
type Metadata struct {
	Size         int           `json:"size" yaml:"size"`
	Compressed   bool          `json:"compressed" yaml:"compressed"`
	FetchTime    time.Duration `json:"fetch_time" yaml:"fetch_time"`
	ParseTime    time.Duration `json:"parse_time" yaml:"parse_time"`
	FeatureCount int           `json:"feature_count" yaml:"feature_count"`
	PointCount   int           `json:"point_count" yaml:"point_count"`
}

// Fetcher retrieves raw documents
type Fetcher interface {
	Fetch(ctx context.Context, request *Request) (*Response, error)
	FetchWithRetry(ctx context.Context, request *Request) (*Response, error)
}

// NewRequest creates a request for location
func NewRequest(location string) *Request {
	return &Request{
		Location: location,
		Headers:  make(map[string]string),
	}
}

// Geometries returns the geometry of every feature in order
func (d *Document) Geometries() []geometry.Geometry {
	result := make([]geometry.Geometry, len(d.Features))
	for i, f := range d.Features {
		result[i] = f.Geometry
	}
	return result
}

// PointCount sums the point counts of all feature geometries
func (d *Document) PointCount() int {
	total := 0
	for _, f := range d.Features {
		total += f.Geometry.PointCount()
	}
	return total
}

// Map returns a copy of the document with fn applied to every geometry
func (d *Document) Map(fn func(geometry.Geometry) (geometry.Geometry, error)) (*Document, error) {
	features := make([]*Feature, len(d.Features))
	for i, f := range d.Features {
		g, err := fn(f.Geometry)
		if err != nil {
			return nil, err
		}
		features[i] = &Feature{ID: f.ID, Properties: f.Properties, Geometry: g}
	}
	mapped := *d
	mapped.Features = features
	if d.Metadata != nil {
		metadata := *d.Metadata
		metadata.PointCount = mapped.PointCount()
		mapped.Metadata = &metadata
	}
	return &mapped, nil
}

// Simplify returns the document with Douglas-Peucker applied to every geometry.
// A non-positive threshold returns d itself.
func (d *Document) Simplify(threshold float64) (*Document, error) {
	if threshold <= 0 {
		return d, nil
	}
	return d.Map(func(g geometry.Geometry) (geometry.Geometry, error) {
		return geometry.Simplify(g, threshold)
	})
}
