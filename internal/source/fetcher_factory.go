// internal/source/fetcher_factory.go - Fetcher selection
package source

import (
	"fmt"
	"io"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
)

// FetcherFactory creates fetchers based on configuration
type FetcherFactory struct {
	config *config.Config
	stdin  io.Reader
}

// NewFetcherFactory creates a new fetcher factory
func NewFetcherFactory(cfg *config.Config) *FetcherFactory {
	return &FetcherFactory{config: cfg}
}

// WithStdin replaces os.Stdin for stdin sources
func (f *FetcherFactory) WithStdin(r io.Reader) *FetcherFactory {
	f.stdin = r
	return f
}

// CreateFetcher returns the fetcher for location, resolved through the
// configured source type
func (f *FetcherFactory) CreateFetcher(location string) (Fetcher, error) {
	return f.CreateFetcherForType(f.config.DetermineSourceType(location))
}

// CreateFetcherForType creates a fetcher for a specific source type
func (f *FetcherFactory) CreateFetcherForType(sourceType internal.SourceType) (Fetcher, error) {
	switch sourceType {
	case internal.SourceTypeHTTP:
		return NewHTTPFetcher(f.config), nil
	case internal.SourceTypeFile:
		return NewFileFetcher(f.config), nil
	case internal.SourceTypeStdin:
		return NewStdinFetcher(f.stdin), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}
