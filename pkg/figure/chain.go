package figure

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// chainPairs lists the sides each new square is erected on. Square k adds
// points 2k+2 and 2k+3.
var chainPairs = [...][2]int{
	{0, 1}, {0, 3}, {1, 5}, {2, 7}, {4, 9}, {6, 11}, {8, 13}, {10, 15},
}

// chainLines are the visible square sides, outermost first.
var chainLines = [...][2]int{
	{17, 16}, {16, 14}, {14, 12}, {17, 12}, {10, 15},
	{8, 13}, {6, 11}, {4, 9}, {2, 7}, {1, 5}, {0, 3},
}

// chainCore is the outermost square.
var chainCore = [...]int{17, 16, 14, 12}

// chainOffset shifts the chain away from the spiral centre so that it sits
// below the largest turn.
var chainOffset = curve.Vec(0.1, -0.4)

// goldenChain builds the 18 vertices of the nested squares. Every square is
// erected outward on a side of the previous ones, so the sides grow like the
// Fibonacci numbers.
func goldenChain(spec ChainSpec) ([18]curve.Point, error) {
	var f [18]curve.Point
	sin, cos := math.Sincos(spec.Alpha * math.Pi / 180)
	f[1] = curve.Pt(spec.Lambda*cos, spec.Lambda*sin)

	for k, pair := range chainPairs {
		sq, err := spiral.BuildRectangle(f[pair[0]], f[pair[1]], -1)
		if err != nil {
			return f, err
		}
		f[2*k+2], f[2*k+3] = sq.C, sq.D
	}
	return f, nil
}
