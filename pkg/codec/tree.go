// pkg/codec/tree.go - Accessors over generic JSON tree values
package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/valpere/geomkit/pkg/geometry"
)

// describe names the JSON kind of a tree node for error messages
func describe(node any) string {
	switch v := node.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return fmt.Sprintf("array of %d", len(v))
	case string:
		return "string " + strconv.Quote(v)
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", node)
	}
}

func asObject(node any, path string) (map[string]any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, malformed(path, "object", describe(node))
	}
	return obj, nil
}

func asArray(node any, path string) ([]any, error) {
	arr, ok := node.([]any)
	if !ok {
		return nil, malformed(path, "array", describe(node))
	}
	return arr, nil
}

func asNumber(node any, path string) (float64, error) {
	switch v := node.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, malformed(path, "number", "invalid number "+v.String())
		}
		return f, nil
	default:
		return 0, malformed(path, "number", describe(node))
	}
}

// member returns a required member of obj
func member(obj map[string]any, key, path string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, malformed(path+"."+key, "member", "nothing")
	}
	return v, nil
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// decodePosition reads an [x, y] pair
func decodePosition(node any, path string) (geometry.Point, error) {
	arr, err := asArray(node, path)
	if err != nil {
		return geometry.Point{}, err
	}
	if len(arr) != 2 {
		return geometry.Point{}, malformed(path, "position of 2 numbers", describe(arr))
	}
	x, err := asNumber(arr[0], index(path, 0))
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := asNumber(arr[1], index(path, 1))
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.XY(x, y), nil
}

func decodePositions(node any, path string) ([]geometry.Point, error) {
	arr, err := asArray(node, path)
	if err != nil {
		return nil, err
	}
	points := make([]geometry.Point, len(arr))
	for i, item := range arr {
		if points[i], err = decodePosition(item, index(path, i)); err != nil {
			return nil, err
		}
	}
	return points, nil
}

func decodeLineString(node any, path string) (*geometry.LineString, error) {
	points, err := decodePositions(node, path)
	if err != nil {
		return nil, err
	}
	ls, err := geometry.NewLineString(points...)
	if err != nil {
		return nil, invalid(path, err)
	}
	return ls, nil
}

func decodePolygon(node any, path string) (*geometry.Polygon, error) {
	arr, err := asArray(node, path)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, invalid(path, geometry.ErrMissingExterior)
	}
	rings := make([]*geometry.LinearRing, len(arr))
	for i, item := range arr {
		ringPath := index(path, i)
		points, err := decodePositions(item, ringPath)
		if err != nil {
			return nil, err
		}
		if rings[i], err = geometry.NewLinearRing(points...); err != nil {
			return nil, invalid(ringPath, err)
		}
	}
	return geometry.MustPolygon(rings[0], rings[1:]...), nil
}

func encodePosition(p geometry.Point) []any {
	return []any{p.X, p.Y}
}

func encodePositions(points []geometry.Point) []any {
	result := make([]any, len(points))
	for i, p := range points {
		result[i] = encodePosition(p)
	}
	return result
}

// encodeRings writes every ring in closed form, exterior first
func encodeRings(pg *geometry.Polygon) []any {
	rings := pg.Rings()
	result := make([]any, len(rings))
	for i, ring := range rings {
		result[i] = encodePositions(ring.Points())
	}
	return result
}
