// pkg/codec/json.go - Byte-level JSON encoding and the Value wrapper
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/valpere/geomkit/pkg/geometry"
)

// Marshal encodes g with the default registry
func Marshal(g geometry.Geometry) ([]byte, error) {
	return Default().Marshal(g)
}

// Unmarshal decodes a geometry with the default registry
func Unmarshal(data []byte) (geometry.Geometry, error) {
	return Default().Unmarshal(data)
}

// Marshal encodes g as JSON
func (r *Registry) Marshal(g geometry.Geometry) ([]byte, error) {
	tree, err := r.Encode(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// Unmarshal parses data and decodes the geometry it holds. Numbers are kept
// as json.Number until a coordinate reads them.
func (r *Registry) Unmarshal(data []byte) (geometry.Geometry, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}
	return r.Decode(tree)
}

// ParseTree parses JSON into the generic tree Decode consumes
func ParseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return tree, nil
}

// Value embeds a geometry in larger JSON or BSON documents. A nil Geometry
// encodes as JSON null.
type Value struct {
	Geometry geometry.Geometry
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Geometry == nil {
		return []byte("null"), nil
	}
	return Marshal(v.Geometry)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		v.Geometry = nil
		return nil
	}
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	v.Geometry = g
	return nil
}
