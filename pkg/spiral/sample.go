package spiral

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

// MaxPoints bounds the number of samples a single call may produce.
const MaxPoints = 1 << 22

// Spiral is an ordered sequence of points sampled at equal angular steps.
type Spiral []curve.Point

// Sample returns floor(turns*pointsPerTurn)+1 points of the logarithmic spiral
// that shrinks by factorPerTurn every full turn. Point i lies at distance
// R^i from the origin, R = (1/factorPerTurn)^(1/pointsPerTurn), and at angle
// 2*pi*i/pointsPerTurn - rotation.
func Sample(factorPerTurn, turns float64, pointsPerTurn int, rotation float64) (Spiral, error) {
	if !(factorPerTurn > 0) || math.IsInf(factorPerTurn, 0) {
		return nil, errors.New(errors.ErrCodePrecondition, "factor per turn must be positive, got %v", factorPerTurn)
	}
	if !(turns > 0) || math.IsInf(turns, 0) {
		return nil, errors.New(errors.ErrCodePrecondition, "turns must be positive, got %v", turns)
	}
	if pointsPerTurn <= 0 {
		return nil, errors.New(errors.ErrCodePrecondition, "points per turn must be positive, got %d", pointsPerTurn)
	}
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return nil, errors.New(errors.ErrCodePrecondition, "rotation must be finite, got %v", rotation)
	}

	total := turns * float64(pointsPerTurn)
	if total >= MaxPoints {
		return nil, errors.New(errors.ErrCodePrecondition, "%v turns at %d points per turn exceeds %d points", turns, pointsPerTurn, MaxPoints)
	}

	n := int(total) + 1
	step := 2 * math.Pi / float64(pointsPerTurn)
	ratio := math.Pow(1/factorPerTurn, 1/float64(pointsPerTurn))

	s := make(Spiral, n)
	for i := range s {
		r := math.Pow(ratio, float64(i))
		sin, cos := math.Sincos(step*float64(i) - rotation)
		s[i] = curve.Pt(r*sin, r*cos)
	}
	return s, nil
}

// Markers returns the radius marker set: one point per subdivision of a single
// turn, plus the closing point one turn further in.
func Markers(factorPerTurn float64, count int, rotation float64) (Spiral, error) {
	return Sample(factorPerTurn, 1, count, rotation)
}

// FactorPerTurn converts a growth constant applied every angle degrees into
// the growth over a full turn.
func FactorPerTurn(k float64, angle int) float64 {
	return math.Pow(k, 360/float64(angle))
}

// BoundingBox returns the axis-aligned box enclosing every point.
// It returns the zero Rect for an empty spiral.
func (s Spiral) BoundingBox() curve.Rect {
	if len(s) == 0 {
		return curve.Rect{}
	}
	box := curve.NewRectFromPoints(s[0], s[0])
	for _, p := range s[1:] {
		box = box.UnionPoint(p)
	}
	return box
}

// Radius returns the distance of point i from the origin.
func (s Spiral) Radius(i int) float64 {
	return curve.Vec2(s[i]).Hypot()
}

// Transform maps every point through aff.
func (s Spiral) Transform(aff curve.Affine) Spiral {
	out := make(Spiral, len(s))
	for i, p := range s {
		out[i] = p.Transform(aff)
	}
	return out
}

// Path returns the spiral as an open polyline.
func (s Spiral) Path() curve.BezPath {
	if len(s) == 0 {
		return nil
	}
	path := make(curve.BezPath, 0, len(s))
	path = append(path, curve.MoveTo(s[0]))
	for _, p := range s[1:] {
		path = append(path, curve.LineTo(p))
	}
	return path
}
