// pkg/codec/bson.go - BSON documents in the same type/coordinates shape
package codec

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/valpere/geomkit/pkg/geometry"
)

// MarshalBSON encodes g as a BSON document with the default registry
func MarshalBSON(g geometry.Geometry) ([]byte, error) {
	return Default().MarshalBSON(g)
}

// UnmarshalBSON decodes a BSON document with the default registry
func UnmarshalBSON(data []byte) (geometry.Geometry, error) {
	return Default().UnmarshalBSON(data)
}

// MarshalBSON encodes g as a BSON document. The discriminator is written
// first so the document reads like the JSON form.
func (r *Registry) MarshalBSON(g geometry.Geometry) ([]byte, error) {
	tree, err := r.Encode(g)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(toBSON(tree))
}

// UnmarshalBSON decodes a geometry from a BSON document
func (r *Registry) UnmarshalBSON(data []byte) (geometry.Geometry, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse BSON: %w", err)
	}
	return r.Decode(FromBSON(doc))
}

// FromBSON converts decoded BSON values (bson.D, bson.M, bson.A, int32, int64)
// into the JSON tree Decode expects
func FromBSON(node any) any {
	switch v := node.(type) {
	case bson.D:
		obj := make(map[string]any, len(v))
		for _, e := range v {
			obj[e.Key] = FromBSON(e.Value)
		}
		return obj
	case bson.M:
		obj := make(map[string]any, len(v))
		for k, e := range v {
			obj[k] = FromBSON(e)
		}
		return obj
	case map[string]any:
		obj := make(map[string]any, len(v))
		for k, e := range v {
			obj[k] = FromBSON(e)
		}
		return obj
	case bson.A:
		arr := make([]any, len(v))
		for i, e := range v {
			arr[i] = FromBSON(e)
		}
		return arr
	case []any:
		arr := make([]any, len(v))
		for i, e := range v {
			arr[i] = FromBSON(e)
		}
		return arr
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return node
	}
}

// toBSON orders object members type, coordinates, geometries and then any
// extra members a custom codec added, sorted by key
func toBSON(node any) any {
	switch v := node.(type) {
	case map[string]any:
		doc := make(bson.D, 0, len(v))
		for _, key := range []string{KeyType, KeyCoordinates, KeyGeometries} {
			if e, ok := v[key]; ok {
				doc = append(doc, bson.E{Key: key, Value: toBSON(e)})
			}
		}
		for _, key := range slices.Sorted(maps.Keys(v)) {
			if key != KeyType && key != KeyCoordinates && key != KeyGeometries {
				doc = append(doc, bson.E{Key: key, Value: toBSON(v[key])})
			}
		}
		return doc
	case []any:
		arr := make(bson.A, len(v))
		for i, e := range v {
			arr[i] = toBSON(e)
		}
		return arr
	default:
		return node
	}
}

var errNilValue = errors.New("cannot encode a nil geometry as a BSON document")

// MarshalBSON implements bson.Marshaler
func (v Value) MarshalBSON() ([]byte, error) {
	if v.Geometry == nil {
		return nil, errNilValue
	}
	return MarshalBSON(v.Geometry)
}

// UnmarshalBSON implements bson.Unmarshaler
func (v *Value) UnmarshalBSON(data []byte) error {
	g, err := UnmarshalBSON(data)
	if err != nil {
		return err
	}
	v.Geometry = g
	return nil
}
