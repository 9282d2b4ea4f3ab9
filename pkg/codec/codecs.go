// pkg/codec/codecs.go - Built-in codecs for every geometry type
package codec

import (
	"github.com/valpere/geomkit/pkg/geometry"
)

func registerBuiltins(r *Registry) {
	r.Register(geometry.Point{}, Codec{Name: "Point", Encode: encodePoint, Decode: decodePoint})
	r.Register((*geometry.LineString)(nil), Codec{Name: "LineString", Encode: encodeLineString, Decode: decodeLineStringObject})
	// rings travel as closed line strings
	r.Register((*geometry.LinearRing)(nil), Codec{Name: "LineString", Encode: encodeLinearRing})
	r.Register((*geometry.Polygon)(nil), Codec{Name: "Polygon", Encode: encodePolygon, Decode: decodePolygonObject})
	r.Register((*geometry.MultiPoint)(nil), Codec{Name: "MultiPoint", Encode: encodeMultiPoint, Decode: decodeMultiPoint})
	r.Register((*geometry.MultiLineString)(nil), Codec{Name: "MultiLineString", Encode: encodeMultiLineString, Decode: decodeMultiLineString})
	r.Register((*geometry.MultiPolygon)(nil), Codec{Name: "MultiPolygon", Encode: encodeMultiPolygon, Decode: decodeMultiPolygon})
	r.Register((*geometry.GeometryCollection)(nil), Codec{Name: "GeometryCollection", Encode: encodeCollection, Decode: decodeCollection})
}

func withCoordinates(name string, coordinates any) map[string]any {
	return map[string]any{KeyType: name, KeyCoordinates: coordinates}
}

func encodePoint(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	return withCoordinates("Point", encodePosition(g.(geometry.Point))), nil
}

func decodePoint(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	p, err := decodePosition(coords, path+"."+KeyCoordinates)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func encodeLineString(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	return withCoordinates("LineString", encodePositions(g.(*geometry.LineString).Points())), nil
}

func encodeLinearRing(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	return withCoordinates("LineString", encodePositions(g.(*geometry.LinearRing).Points())), nil
}

func decodeLineStringObject(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	ls, err := decodeLineString(coords, path+"."+KeyCoordinates)
	if err != nil {
		return nil, err
	}
	return ls, nil
}

func encodePolygon(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	return withCoordinates("Polygon", encodeRings(g.(*geometry.Polygon))), nil
}

func decodePolygonObject(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	pg, err := decodePolygon(coords, path+"."+KeyCoordinates)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

func encodeMultiPoint(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	return withCoordinates("MultiPoint", encodePositions(g.(*geometry.MultiPoint).Points())), nil
}

func decodeMultiPoint(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	points, err := decodePositions(coords, path+"."+KeyCoordinates)
	if err != nil {
		return nil, err
	}
	return geometry.NewMultiPoint(points...), nil
}

func encodeMultiLineString(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	lines := g.(*geometry.MultiLineString).Lines()
	coords := make([]any, len(lines))
	for i, ls := range lines {
		coords[i] = encodePositions(ls.Points())
	}
	return withCoordinates("MultiLineString", coords), nil
}

func decodeMultiLineString(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	path += "." + KeyCoordinates
	arr, err := asArray(coords, path)
	if err != nil {
		return nil, err
	}
	lines := make([]*geometry.LineString, len(arr))
	for i, item := range arr {
		if lines[i], err = decodeLineString(item, index(path, i)); err != nil {
			return nil, err
		}
	}
	return geometry.MustMultiLineString(lines...), nil
}

func encodeMultiPolygon(_ *Registry, g geometry.Geometry) (map[string]any, error) {
	polygons := g.(*geometry.MultiPolygon).Polygons()
	coords := make([]any, len(polygons))
	for i, pg := range polygons {
		coords[i] = encodeRings(pg)
	}
	return withCoordinates("MultiPolygon", coords), nil
}

func decodeMultiPolygon(_ *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	coords, err := member(obj, KeyCoordinates, path)
	if err != nil {
		return nil, err
	}
	path += "." + KeyCoordinates
	arr, err := asArray(coords, path)
	if err != nil {
		return nil, err
	}
	polygons := make([]*geometry.Polygon, len(arr))
	for i, item := range arr {
		if polygons[i], err = decodePolygon(item, index(path, i)); err != nil {
			return nil, err
		}
	}
	return geometry.MustMultiPolygon(polygons...), nil
}

func encodeCollection(r *Registry, g geometry.Geometry) (map[string]any, error) {
	members := g.(*geometry.GeometryCollection).Geometries()
	encoded := make([]any, len(members))
	for i, child := range members {
		obj, err := r.Encode(child)
		if err != nil {
			return nil, err
		}
		encoded[i] = obj
	}
	return map[string]any{KeyType: "GeometryCollection", KeyGeometries: encoded}, nil
}

func decodeCollection(r *Registry, obj map[string]any, path string) (geometry.Geometry, error) {
	raw, err := member(obj, KeyGeometries, path)
	if err != nil {
		return nil, err
	}
	path += "." + KeyGeometries
	arr, err := asArray(raw, path)
	if err != nil {
		return nil, err
	}
	members := make([]geometry.Geometry, len(arr))
	for i, item := range arr {
		if members[i], err = r.decodeAt(item, index(path, i)); err != nil {
			return nil, err
		}
	}
	return geometry.MustGeometryCollection(members...), nil
}
