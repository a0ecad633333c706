package catalog

import (
	"math"

	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

var (
	origin = figure.Origin
	radius = figure.Radius
	in     = figure.Input
	out    = figure.Output
)

// example starts an annotated recipe: logo, caption and a black border.
func example(name, title, symbol string, growth float64, angle int, set figure.Settings) figure.Recipe {
	return figure.Recipe{
		Name:     name,
		Title:    title,
		Symbol:   symbol,
		Growth:   growth,
		Angle:    angle,
		Fit:      spiral.AutoSearch,
		Settings: set,
		Logo:     true,
		Caption:  true,
		Border:   figure.BorderBlack,
	}
}

// rectangle is example with a rectangle on from-to and the given markers.
func rectangle(name, title, symbol string, growth float64, angle int, from, to figure.Ref, ratio float64, markers ...figure.Marker) func(figure.Settings) figure.Recipe {
	return func(set figure.Settings) figure.Recipe {
		r := example(name, title, symbol, growth, angle, set)
		r.Rectangle = &figure.RectangleSpec{From: from, To: to, Ratio: ratio}
		r.Markers = markers
		return r
	}
}

var examples = map[string]func(figure.Settings) figure.Recipe{
	"Example_00": func(set figure.Settings) figure.Recipe {
		r := example("Example_00", "Front page logo", "φ", phi, 90, set)
		r.Logo, r.Caption = false, false
		r.Border = figure.BorderWhite
		return r
	},
	"Example_00b": func(set figure.Settings) figure.Recipe {
		r := example("Example_00b", "Front page logo", "φ", phi, 90, set)
		r.Logo, r.Caption = false, false
		r.Border = figure.BorderNone
		return r
	},

	"Example_01": rectangle("Example_01", "An A7 sheet fits the √2/270° spiral: what are its proportions?",
		"√2", math.Sqrt2, 270, radius(5), origin, 1/math.Sqrt2,
		in("B"), in("C"), out("A")),
	"Example_02": rectangle("Example_02", "An A7 sheet fits the √2/90° spiral: what are its proportions?",
		"√2", math.Sqrt2, 90, origin, radius(9), 1/math.Sqrt2,
		in("A"), in("D"), out("B")),
	"Example_03": rectangle("Example_03", "Split a rectangle into 3 equal parts with the 3/360° spiral",
		"3", 3, 360, origin, radius(3), 0.5,
		in("A"), in("B"), out(radius(27))),
	"Example_04": rectangle("Example_04", "Split a rectangle into 3 equal parts with the 4/360° spiral",
		"4", 4, 360, radius(14), radius(26), 0.5,
		in("A"), in("B"), out(origin)),
	"Example_05": rectangle("Example_05", "Build a 1:√2 rectangle with the 4/360° spiral",
		"4", 4, 360, radius(26), origin, math.Sqrt2,
		in("A"), in("B"), out(radius(20))),
	"Example_06": func(set figure.Settings) figure.Recipe {
		r := rectangle("Example_06", "Measure the legs of a set square with the √3/270° spiral",
			"√3", math.Sqrt(3), 270, radius(1), origin, 1/math.Sqrt(3),
			in("B"), in("C"), out("A"))(set)
		r.Rectangle.Triangle = true
		return r
	},
	"Example_07": rectangle("Example_07", "Compare the diagonal and the side of a square with the 2/90° spiral",
		"2", 2, 90, radius(8), origin, 1,
		in("B"), in("A"), out("D")),
	"Example_08": rectangle("Example_08", "Credit cards are golden rectangles: check it with the φ/270° spiral",
		"φ", phi, 270, radius(15), origin, 1/phi,
		in("C"), in("B"), out("A")),
	"Example_09": rectangle("Example_09", "Divide a segment in the golden ratio with the φ/360° spiral",
		"φ", phi, 360, origin, radius(4), 0.5,
		in("A"), in("B"), out(radius(28))),
	"Example_10": rectangle("Example_10", "Divide a segment in the golden ratio with the φ/180° spiral",
		"φ", phi, 180, radius(28), radius(16), 1.0/3,
		in("A"), in("B"), out(origin)),

	"Example_11": func(set figure.Settings) figure.Recipe {
		r := example("Example_11", "The Fibonacci squares approximate the φ/90° spiral", "φ", phi, 90, set)
		chain := figure.DefaultChain
		r.Chain = &chain
		return r
	},
	"Example_11b": func(set figure.Settings) figure.Recipe {
		r := example("Example_11b", "The Fibonacci squares approximate the φ/90° spiral", "φ", phi, 90, set)
		chain := figure.DefaultChain
		chain.Fill = false
		r.Chain = &chain
		r.Logo, r.Caption = false, false
		return r
	},

	"Example_12": rectangle("Example_12", "Divide a segment into 8 equal parts with the 2/360° spiral",
		"2", 2, 360, origin, radius(4), 0.5,
		in("A"), in("B"), out(radius(76))),
	"Example_13": rectangle("Example_13", "Divide a segment into 9 equal parts with the 3/360° spiral",
		"3", 3, 360, origin, radius(2), 0.5,
		in("A"), in("B"), out(radius(50))),
	"Example_14": rectangle("Example_14", "Divide a segment in the golden ratio with the φ/90° spiral",
		"φ", phi, 90, origin, radius(7), 1/phi,
		in("A"), out("B"), in(radius(13))),
	"Example_15": rectangle("Example_15", "The 2/270° spiral and the doubling of the cube",
		"2", 2, 270, origin, radius(10), 1/math.Cbrt(2),
		in("A"), out("B"), in(radius(16))),
}
