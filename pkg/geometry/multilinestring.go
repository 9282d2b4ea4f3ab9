// pkg/geometry/multilinestring.go - Ordered set of line strings
package geometry

import (
	"iter"
	"slices"
)

// EmptyMultiLineString is returned whenever a MultiLineString is built from zero lines
var EmptyMultiLineString = &MultiLineString{}

// MultiLineString is an ordered collection of line strings
type MultiLineString struct {
	lines []*LineString
	cache derived
}

// NewMultiLineString copies lines into a new collection. A nil line returns
// ErrNilGeometry.
func NewMultiLineString(lines ...*LineString) (*MultiLineString, error) {
	if len(lines) == 0 {
		return EmptyMultiLineString, nil
	}
	if slices.Contains(lines, nil) {
		return nil, ErrNilGeometry
	}
	return &MultiLineString{lines: slices.Clone(lines)}, nil
}

// MustMultiLineString is NewMultiLineString that panics on error
func MustMultiLineString(lines ...*LineString) *MultiLineString {
	mls, err := NewMultiLineString(lines...)
	if err != nil {
		panic(err)
	}
	return mls
}

func (mls *MultiLineString) sealed() {}

// Type returns TypeMultiLineString
func (mls *MultiLineString) Type() Type { return TypeMultiLineString }

// Len returns the number of lines
func (mls *MultiLineString) Len() int { return len(mls.lines) }

// IsEmpty reports whether the collection holds no lines
func (mls *MultiLineString) IsEmpty() bool { return len(mls.lines) == 0 }

// LineAt returns the i-th line
func (mls *MultiLineString) LineAt(i int) *LineString { return mls.lines[i] }

// Lines returns a copy of the lines
func (mls *MultiLineString) Lines() []*LineString { return slices.Clone(mls.lines) }

// All iterates over the lines in order
func (mls *MultiLineString) All() iter.Seq2[int, *LineString] {
	return slices.All(mls.lines)
}

// PointCount sums the points of every line
func (mls *MultiLineString) PointCount() int {
	return mls.cache.pointCount.get(func() int { return sumPointCounts(mls.lines) })
}

// Center averages the centers of the lines
func (mls *MultiLineString) Center() Point {
	return mls.cache.center.get(func() Point { return meanOfCenters(mls.lines) })
}

// WKT returns "MULTILINESTRING ((x y, ...), (x y, ...))"
func (mls *MultiLineString) WKT() string {
	return mls.cache.wkt.get(func() string {
		bodies := make([]string, len(mls.lines))
		for i, ls := range mls.lines {
			bodies[i] = pointListWKT(len(ls.points), ls.PointAt)
		}
		return taggedWKT(TypeMultiLineString, bodies)
	})
}

func (mls *MultiLineString) String() string { return mls.WKT() }

// Equal compares the lines pairwise
func (mls *MultiLineString) Equal(other *MultiLineString) bool {
	if mls == nil || other == nil {
		return mls == other
	}
	return slices.EqualFunc(mls.lines, other.lines, (*LineString).Equal)
}

// Transform returns a new collection with fn applied to every line
func (mls *MultiLineString) Transform(fn func(*LineString) *LineString) *MultiLineString {
	if len(mls.lines) == 0 {
		return EmptyMultiLineString
	}
	lines := make([]*LineString, len(mls.lines))
	for i, ls := range mls.lines {
		lines[i] = fn(ls)
	}
	return &MultiLineString{lines: lines}
}

// Translate returns the collection moved by (dx, dy)
func (mls *MultiLineString) Translate(dx, dy float64) *MultiLineString {
	return mls.Transform(func(ls *LineString) *LineString { return ls.Translate(dx, dy) })
}

// Rotate returns the collection rotated around origin by radians
func (mls *MultiLineString) Rotate(origin Point, radians float64) *MultiLineString {
	return mls.Transform(func(ls *LineString) *LineString { return ls.Rotate(origin, radians) })
}

// RotateDegrees returns the collection rotated around origin by degrees
func (mls *MultiLineString) RotateDegrees(origin Point, degrees float64) *MultiLineString {
	return mls.Transform(func(ls *LineString) *LineString { return ls.RotateDegrees(origin, degrees) })
}

// Scale returns the collection scaled around origin
func (mls *MultiLineString) Scale(origin Point, sx, sy float64) *MultiLineString {
	return mls.Transform(func(ls *LineString) *LineString { return ls.Scale(origin, sx, sy) })
}

// MultiLineStringBuilder accumulates lines
type MultiLineStringBuilder struct {
	lines []*LineString
}

// NewMultiLineStringBuilder returns an empty builder
func NewMultiLineStringBuilder() *MultiLineStringBuilder {
	return &MultiLineStringBuilder{}
}

// AddLine appends lines
func (b *MultiLineStringBuilder) AddLine(lines ...*LineString) *MultiLineStringBuilder {
	b.lines = append(b.lines, lines...)
	return b
}

// RemoveLine removes the first line equal to ls
func (b *MultiLineStringBuilder) RemoveLine(ls *LineString) *MultiLineStringBuilder {
	if i := slices.IndexFunc(b.lines, ls.Equal); i >= 0 {
		b.lines = slices.Delete(b.lines, i, i+1)
	}
	return b
}

// Build returns the collection, or EmptyMultiLineString when nothing was added
func (b *MultiLineStringBuilder) Build() (*MultiLineString, error) {
	return NewMultiLineString(b.lines...)
}
