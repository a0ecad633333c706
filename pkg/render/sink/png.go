package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

// DefaultDPI is the raster resolution used when none is given.
const DefaultDPI = 150

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi        float64
	background figure.Color
}

// WithDPI sets the raster resolution in dots per inch.
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// WithPNGBackground replaces the white page colour.
func WithPNGBackground(c figure.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterises the figure onto an opaque page. Elements marked
// PDFOnly are skipped, as in SVG output.
func RenderPNG(fig *figure.Figure, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: DefaultDPI, background: figure.White}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.dpi > 0) || math.IsInf(r.dpi, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", r.dpi)
	}

	w := int(math.Round(fig.Page.Width / millimetresPerInch * r.dpi))
	h := int(math.Round(fig.Page.Height / millimetresPerInch * r.dpi))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page %vx%v mm is empty at %v dpi", fig.Page.Width, fig.Page.Height, r.dpi)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background.RGBA())
	dc.Clear()

	// gg transforms path points but not line widths, so strokes are scaled
	// by hand.
	k := r.dpi / centimetresPerInch
	dc.Translate(float64(w)/2, float64(h)/2)
	dc.Scale(k, -k)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	t := ggTracer{dc}
	for _, el := range fig.Elements {
		if el.PDFOnly {
			continue
		}
		if el.Fill != nil {
			dc.SetColor(el.Fill.RGBA())
			trace(t, el.Path)
			dc.Fill()
		}
		if s := el.Stroke; s != nil {
			dc.SetColor(s.Color.RGBA())
			dc.SetLineWidth(s.Width * k)
			dash := make([]float64, len(s.Dash))
			for i, d := range s.Dash {
				dash[i] = d * k
			}
			dc.SetDash(dash...)
			trace(t, el.Path)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type ggTracer struct {
	dc *gg.Context
}

func (t ggTracer) moveTo(p curve.Point) { t.dc.MoveTo(p.X, p.Y) }
func (t ggTracer) lineTo(p curve.Point) { t.dc.LineTo(p.X, p.Y) }
func (t ggTracer) closePath()           { t.dc.ClosePath() }

func (t ggTracer) cubicTo(p1, p2, p3 curve.Point) {
	t.dc.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}
