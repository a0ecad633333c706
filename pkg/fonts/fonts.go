// Package fonts turns short labels into vector outlines.
//
// Figures carry no font resources: the logo and the caption are converted to
// filled paths so that every sink draws identical glyphs. The Go fonts are
// parsed once, on first use, and shared by all goroutines.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

// PointsPerCentimetre converts type sizes to the drawing unit.
const PointsPerCentimetre = 72 / 2.54

var (
	regular, bold *sfnt.Font
	loadErr       error
	loadOnce      sync.Once
)

func load() {
	if regular, loadErr = sfnt.Parse(goregular.TTF); loadErr != nil {
		return
	}
	bold, loadErr = sfnt.Parse(gobold.TTF)
}

// Face returns the parsed Go Regular or Go Bold font.
func Face(isBold bool) (*sfnt.Font, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, loadErr, "parse embedded font")
	}
	if isBold {
		return bold, nil
	}
	return regular, nil
}

// glyphRun walks the glyphs of text at the font's native resolution and calls
// fn with each glyph index and its pen position in font units.
func glyphRun(f *sfnt.Font, buf *sfnt.Buffer, text string, fn func(sfnt.GlyphIndex, fixed.Int26_6) error) (fixed.Int26_6, error) {
	ppem := fixed.I(int(f.UnitsPerEm()))
	var (
		pen  fixed.Int26_6
		prev sfnt.GlyphIndex
	)
	for i, r := range []rune(text) {
		idx, err := f.GlyphIndex(buf, r)
		if err != nil {
			return 0, err
		}
		if i > 0 {
			// Missing kerning pairs report ErrNotFound.
			if k, err := f.Kern(buf, prev, idx, ppem, font.HintingNone); err == nil {
				pen += k
			}
		}
		if fn != nil {
			if err := fn(idx, pen); err != nil {
				return 0, err
			}
		}
		adv, err := f.GlyphAdvance(buf, idx, ppem, font.HintingNone)
		if err != nil {
			return 0, err
		}
		pen += adv
		prev = idx
	}
	return pen, nil
}

// Advance returns the width of text in centimetres.
func Advance(text string, sizePt float64, isBold bool) (float64, error) {
	f, err := Face(isBold)
	if err != nil {
		return 0, err
	}
	var buf sfnt.Buffer
	width, err := glyphRun(f, &buf, text, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "measure %q", text)
	}
	return units(width) * unitScale(f, sizePt), nil
}

// Outline returns the glyph outlines of text in centimetres, centred
// horizontally on x = 0 with the baseline on y = 0 and y pointing up.
// Characters missing from the font are drawn with the .notdef glyph.
func Outline(text string, sizePt float64, isBold bool) (curve.BezPath, error) {
	f, err := Face(isBold)
	if err != nil {
		return nil, err
	}
	var buf sfnt.Buffer
	ppem := fixed.I(int(f.UnitsPerEm()))

	var path curve.BezPath
	width, err := glyphRun(f, &buf, text, func(idx sfnt.GlyphIndex, pen fixed.Int26_6) error {
		segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return err
		}
		x0 := units(pen)
		pt := func(p fixed.Point26_6) curve.Point {
			return curve.Pt(x0+units(p.X), -units(p.Y))
		}
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					path = append(path, curve.ClosePath())
				}
				path = append(path, curve.MoveTo(pt(s.Args[0])))
				open = true
			case sfnt.SegmentOpLineTo:
				path = append(path, curve.LineTo(pt(s.Args[0])))
			case sfnt.SegmentOpQuadTo:
				path = append(path, curve.QuadTo(pt(s.Args[0]), pt(s.Args[1])))
			case sfnt.SegmentOpCubeTo:
				path = append(path, curve.CubicTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])))
			}
		}
		if open {
			path = append(path, curve.ClosePath())
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "outline %q", text)
	}

	k := unitScale(f, sizePt)
	return path.Transform(curve.Translate(curve.Vec(-units(width)/2, 0)).ThenScale(k, k)), nil
}

// units converts a 26.6 value at ppem = unitsPerEm back to font units.
func units(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// unitScale returns centimetres per font unit at sizePt.
func unitScale(f *sfnt.Font, sizePt float64) float64 {
	return sizePt / PointsPerCentimetre / float64(f.UnitsPerEm())
}
