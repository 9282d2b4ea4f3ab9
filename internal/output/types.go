// internal/output/types.go - Output handling types
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/valpere/geomkit/internal/source"
)

// Format represents the output formats supported by the application
type Format string

const (
	FormatGeoJSON Format = "geojson"
	FormatJSON    Format = "json"
	FormatWKT     Format = "wkt"
	FormatYAML    Format = "yaml"
	FormatWKB     Format = "wkb"
)

// Writer writes formatted documents to a destination
type Writer interface {
	Write(doc *source.Document) error
	WriteBatch(docs []*source.Document) error
	Close() error
}

// Formatter renders documents in one output format
type Formatter interface {
	Format(doc *source.Document) ([]byte, error)
	FormatBatch(docs []*source.Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// Destination represents an output destination (file, stdout, etc.)
type Destination interface {
	io.WriteCloser
	Name() string
	Size() int64
}

// WriterConfig contains configuration for creating writers
type WriterConfig struct {
	Format      Format
	Pretty      bool
	Compression bool
	Metadata    bool
	WKBHex      bool
	Precision   uint
}

// FormatterConfig contains configuration for creating formatters
type FormatterConfig struct {
	Format       Format
	Pretty       bool
	IncludeStats bool
	WKBHex       bool
	Precision    uint
}

// formatterConfig derives the formatter settings from a writer configuration
func (c *WriterConfig) formatterConfig() *FormatterConfig {
	return &FormatterConfig{
		Format:       c.Format,
		Pretty:       c.Pretty,
		IncludeStats: c.Metadata,
		WKBHex:       c.WKBHex,
		Precision:    c.Precision,
	}
}

// ParseFormat converts a configuration value into a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format: %s", s)
	}
	return f, nil
}

// String returns a string representation of the format
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	switch f {
	case FormatGeoJSON, FormatJSON, FormatWKT, FormatYAML, FormatWKB:
		return true
	default:
		return false
	}
}
