// pkg/codec/registry.go - Codec registry keyed by Go type and discriminator
package codec

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/valpere/geomkit/pkg/geometry"
)

// Member names of the wire shape
const (
	KeyType        = "type"
	KeyCoordinates = "coordinates"
	KeyGeometries  = "geometries"
)

// EncodeFunc renders g as a JSON tree object. The registry is passed in so
// collections can encode their members.
type EncodeFunc func(r *Registry, g geometry.Geometry) (map[string]any, error)

// DecodeFunc rebuilds a geometry from an object whose discriminator already
// matched. path locates obj for error messages.
type DecodeFunc func(r *Registry, obj map[string]any, path string) (geometry.Geometry, error)

// Codec pairs the encoder and decoder of one geometry type. Name is the
// discriminator written on encode. A codec without Decode is encode-only and
// does not claim its Name for decoding.
type Codec struct {
	Name   string
	Encode EncodeFunc
	Decode DecodeFunc
}

// Registry maps geometry types to codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Codec
	byName map[string]Codec
}

// NewRegistry returns a registry with no codecs
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Codec),
		byName: make(map[string]Codec),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding the built-in codecs
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// Register adds or replaces the codec for the concrete type of sample
func (r *Registry) Register(sample geometry.Geometry, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType[reflect.TypeOf(sample)] = c
	if c.Decode != nil {
		r.byName[c.Name] = c
	}
}

// Clone returns an independent copy, for callers that want to override
// codecs without touching the shared registry
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{
		byType: maps.Clone(r.byType),
		byName: maps.Clone(r.byName),
	}
}

// Names returns the decodable discriminators in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byName))
}

// Encode renders g as a JSON tree object
func (r *Registry) Encode(g geometry.Geometry) (map[string]any, error) {
	if g == nil {
		return nil, geometry.ErrNilGeometry
	}

	r.mu.RLock()
	c, ok := r.byType[reflect.TypeOf(g)]
	r.mu.RUnlock()

	if !ok || c.Encode == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, g)
	}
	return c.Encode(r, g)
}

// Decode rebuilds a geometry from a JSON tree node
func (r *Registry) Decode(node any) (geometry.Geometry, error) {
	return r.decodeAt(node, "$")
}

func (r *Registry) decodeAt(node any, path string) (geometry.Geometry, error) {
	obj, err := asObject(node, path)
	if err != nil {
		return nil, err
	}

	raw, ok := obj[KeyType]
	if !ok {
		return nil, malformed(path+"."+KeyType, "string", "nothing")
	}
	name, ok := raw.(string)
	if !ok {
		return nil, malformed(path+"."+KeyType, "string", describe(raw))
	}

	r.mu.RLock()
	c, ok := r.byName[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &DecodeError{
			Path:     path + "." + KeyType,
			Expected: "one of " + strings.Join(r.Names(), ", "),
			Actual:   describe(name),
			Err:      ErrUnknownType,
		}
	}
	return c.Decode(r, obj, path)
}
