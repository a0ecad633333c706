package spiral

import (
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

// Rectangle holds four corners in drawing order. AB is the anchor side and
// BC, AD are perpendicular to it.
type Rectangle struct {
	A, B, C, D curve.Point
}

// BuildRectangle erects a rectangle on the segment AB. The second side is
// AB rotated a quarter turn clockwise and multiplied by ratio, so a negative
// ratio puts the rectangle on the other side of AB.
//
// Repeated application with ratio -1 yields the nested squares of the
// Fibonacci rectangle spiral.
func BuildRectangle(a, b curve.Point, ratio float64) (Rectangle, error) {
	if a == b {
		return Rectangle{}, errors.New(errors.ErrCodeDegenerateRectangle, "anchor points coincide at %v", a)
	}
	v := curve.Vec(b.Y-a.Y, a.X-b.X).Mul(ratio)
	return Rectangle{
		A: a,
		B: b,
		C: b.Translate(v),
		D: a.Translate(v),
	}, nil
}

// Corner returns the corner named by letter ('A' to 'D').
func (r Rectangle) Corner(letter byte) (curve.Point, bool) {
	switch letter {
	case 'A':
		return r.A, true
	case 'B':
		return r.B, true
	case 'C':
		return r.C, true
	case 'D':
		return r.D, true
	}
	return curve.Point{}, false
}

// Polygon returns the closed outline A-B-C-D. The triangle variant skips D.
func (r Rectangle) Polygon(triangle bool) curve.BezPath {
	path := curve.BezPath{curve.MoveTo(r.A), curve.LineTo(r.B), curve.LineTo(r.C)}
	if !triangle {
		path = append(path, curve.LineTo(r.D))
	}
	return append(path, curve.ClosePath())
}
