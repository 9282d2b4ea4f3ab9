// internal/source/parser.go - Geometry document parsing
package source

import (
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

// Parser turns raw GeoJSON documents into geometry documents. Bare geometry
// objects go through the codec registry; Feature and FeatureCollection
// wrappers are read with orb's geojson package.
type Parser struct {
	registry *codec.Registry
}

// NewParser creates a parser decoding bare geometries with registry, or the
// default registry when nil
func NewParser(registry *codec.Registry) *Parser {
	if registry == nil {
		registry = codec.Default()
	}
	return &Parser{registry: registry}
}

// Process parses a fetched response and records its metadata
func (p *Parser) Process(response *Response) (*Document, error) {
	start := time.Now()

	if len(response.Data) == 0 {
		return nil, internal.NewError(internal.ErrorCodeValidation, fmt.Sprintf("empty document: %s", response.Request.Location), nil)
	}

	doc, err := p.Parse(response.Request.Location, response.Data)
	if err != nil {
		return nil, err
	}

	doc.Metadata = &Metadata{
		Size:         response.Size,
		Compressed:   response.Compressed,
		FetchTime:    response.FetchTime,
		ParseTime:    time.Since(start),
		FeatureCount: len(doc.Features),
		PointCount:   doc.PointCount(),
	}
	return doc, nil
}

// Parse classifies data by its "type" member and decodes it
func (p *Parser) Parse(name string, data []byte) (*Document, error) {
	tree, err := codec.ParseTree(data)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeValidation, fmt.Sprintf("failed to parse %s", name), err)
	}

	doc := &Document{Name: name}
	obj, _ := tree.(map[string]any)

	switch obj[codec.KeyType] {
	case string(KindFeature):
		doc.Kind = KindFeature
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, internal.NewError(internal.ErrorCodeValidation, fmt.Sprintf("invalid feature in %s", name), err)
		}
		f, err := convertFeature(feature)
		if err != nil {
			return nil, internal.NewError(internal.ErrorCodeProcessing, fmt.Sprintf("failed to convert feature in %s", name), err)
		}
		if f != nil {
			doc.Features = []*Feature{f}
		}

	case string(KindFeatureCollection):
		doc.Kind = KindFeatureCollection
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, internal.NewError(internal.ErrorCodeValidation, fmt.Sprintf("invalid feature collection in %s", name), err)
		}
		doc.Features = make([]*Feature, 0, len(fc.Features))
		for i, feature := range fc.Features {
			f, err := convertFeature(feature)
			if err != nil {
				return nil, internal.NewError(internal.ErrorCodeProcessing, fmt.Sprintf("failed to convert feature %d in %s", i, name), err)
			}
			if f == nil {
				log.Debug().Str("source", name).Int("feature", i).Msg("skipping feature without geometry")
				continue
			}
			doc.Features = append(doc.Features, f)
		}

	default:
		doc.Kind = KindGeometry
		g, err := p.registry.Decode(tree)
		if err != nil {
			return nil, internal.NewError(internal.ErrorCodeProcessing, fmt.Sprintf("failed to decode geometry in %s", name), err)
		}
		doc.Features = []*Feature{{Geometry: g}}
	}

	return doc, nil
}

// convertFeature returns nil for a feature with a null geometry
func convertFeature(feature *geojson.Feature) (*Feature, error) {
	if feature.Geometry == nil {
		return nil, nil
	}
	g, err := geometry.FromOrb(feature.Geometry)
	if err != nil {
		return nil, err
	}
	return &Feature{
		ID:         feature.ID,
		Properties: map[string]any(feature.Properties),
		Geometry:   g,
	}, nil
}
