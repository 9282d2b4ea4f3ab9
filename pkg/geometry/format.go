// pkg/geometry/format.go - WKT text assembly and centroid/point-count helpers
package geometry

import (
	"math"
	"strconv"
	"strings"
)

// maxFractionDigits bounds the fractional digits a WKT coordinate may carry
const maxFractionDigits = 16

// FormatCoordinate renders a coordinate the way WKT output expects it: plain
// decimal notation, at most 16 fractional digits, no trailing zeros.
func FormatCoordinate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > maxFractionDigits {
		s = strconv.FormatFloat(v, 'f', maxFractionDigits, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatCoordinate(p.X))
	b.WriteByte(' ')
	b.WriteString(FormatCoordinate(p.Y))
}

// writePointList writes "(x y, x y, ...)" for n points produced by at
func writePointList(b *strings.Builder, n int, at func(int) Point) {
	b.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writePoint(b, at(i))
	}
	b.WriteByte(')')
}

func pointListWKT(n int, at func(int) Point) string {
	var b strings.Builder
	writePointList(&b, n, at)
	return b.String()
}

// taggedWKT joins bodies as "<KEYWORD> (a, b, ...)" or "<KEYWORD> EMPTY"
func taggedWKT(t Type, bodies []string) string {
	if len(bodies) == 0 {
		return t.Keyword() + " EMPTY"
	}
	return t.Keyword() + " (" + strings.Join(bodies, ", ") + ")"
}

// taggedPointsWKT renders point-sequence geometries whose body is one point list
func taggedPointsWKT(t Type, n int, at func(int) Point) string {
	if n == 0 {
		return t.Keyword() + " EMPTY"
	}
	return t.Keyword() + " " + pointListWKT(n, at)
}

// meanOfPoints averages n points produced by at. An empty input yields (NaN, NaN).
func meanOfPoints(n int, at func(int) Point) Point {
	var x, y float64
	for i := 0; i < n; i++ {
		p := at(i)
		x += p.X
		y += p.Y
	}
	count := float64(n)
	return Point{X: x / count, Y: y / count}
}

// meanOfCenters averages the centers of child geometries, unweighted
func meanOfCenters[G Geometry](children []G) Point {
	return meanOfPoints(len(children), func(i int) Point {
		return children[i].Center()
	})
}

func sumPointCounts[G Geometry](children []G) int {
	total := 0
	for _, child := range children {
		total += child.PointCount()
	}
	return total
}
