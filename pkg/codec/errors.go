// pkg/codec/errors.go - Decode error types
package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed marks input whose shape does not match the geometry encoding
	ErrMalformed = errors.New("malformed geometry")
	// ErrUnknownType marks a "type" discriminator no codec is registered for
	ErrUnknownType = errors.New("unknown geometry type")
	// ErrUnsupported is returned when encoding a geometry type without a codec
	ErrUnsupported = errors.New("no codec registered for geometry")
)

// DecodeError locates a decoding failure inside the input tree. Path uses a
// JSONPath-like notation rooted at "$", e.g. "$.coordinates[0][1]".
type DecodeError struct {
	Path     string
	Expected string
	Actual   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Unwrap returns ErrMalformed, ErrUnknownType or the construction error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(path, expected, actual string) error {
	return &DecodeError{Path: path, Expected: expected, Actual: actual, Err: ErrMalformed}
}

// invalid wraps a geometry construction error raised while decoding
func invalid(path string, err error) error {
	return &DecodeError{Path: path, Err: err}
}
