package spiral

import (
	"math"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

// Trim drops the tail of s whose points would be drawn closer to the origin
// than minVisibleRadius centimetres at the given scale.
//
// The cut is rounded to a whole number of marker sectors (pointsPerTurn*2/
// markerCount points each), so the spiral ends on a marker line, and never
// falls below one full turn. A markerCount of zero disables the rounding.
// The returned spiral shares its backing array with s.
func Trim(s Spiral, scale, minVisibleRadius float64, pointsPerTurn, markerCount int) (Spiral, error) {
	if pointsPerTurn <= 0 {
		return nil, errors.New(errors.ErrCodePrecondition, "points per turn must be positive, got %d", pointsPerTurn)
	}
	if markerCount < 0 {
		return nil, errors.New(errors.ErrCodePrecondition, "marker count cannot be negative, got %d", markerCount)
	}

	last := -1
	for i := len(s) - 1; i >= 0; i-- {
		if scale*s.Radius(i) >= minVisibleRadius {
			last = i
			break
		}
	}
	if last < 0 {
		return nil, errors.New(errors.ErrCodeDegenerateVisibility,
			"no point of the spiral reaches %v cm at scale %v", minVisibleRadius, scale)
	}

	cut := float64(last)
	if markerCount > 0 {
		sector := float64(pointsPerTurn*2) / float64(markerCount)
		cut = sector * math.RoundToEven(float64(last)*float64(markerCount)/2/float64(pointsPerTurn))
	}

	n := int(math.Max(float64(pointsPerTurn+1), cut))
	if n > len(s) {
		n = len(s)
	}
	return s[:n:n], nil
}
