// internal/source/loader.go - Fetch and parse in one step
package source

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/pkg/codec"
)

// Loader fetches documents from any configured source and parses them
type Loader struct {
	factory *FetcherFactory
	parser  *Parser
}

// NewLoader creates a loader for cfg. A nil registry selects codec.Default().
func NewLoader(cfg *config.Config, registry *codec.Registry) *Loader {
	return &Loader{
		factory: NewFetcherFactory(cfg),
		parser:  NewParser(registry),
	}
}

// WithStdin replaces os.Stdin for "-" locations
func (l *Loader) WithStdin(r io.Reader) *Loader {
	l.factory.WithStdin(r)
	return l
}

// Load fetches location with retries and parses the result
func (l *Loader) Load(ctx context.Context, location string) (*Document, error) {
	fetcher, err := l.factory.CreateFetcher(location)
	if err != nil {
		return nil, err
	}

	response, err := fetcher.FetchWithRetry(ctx, NewRequest(location))
	if err != nil {
		return nil, err
	}

	doc, err := l.parser.Process(response)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("source", location).
		Str("kind", string(doc.Kind)).
		Int("features", doc.Metadata.FeatureCount).
		Int("points", doc.Metadata.PointCount).
		Dur("fetch_time", doc.Metadata.FetchTime).
		Msg("document loaded")

	return doc, nil
}
