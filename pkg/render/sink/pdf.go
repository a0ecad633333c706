package sink

import (
	"os"

	"honnef.co/go/curve"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

// WritePDF writes the figure to path as a single-page PDF the size of the
// figure's page. Colours stay in DeviceCMYK.
func WritePDF(fig *figure.Figure, path string) error {
	w := fig.Page.Width * pointsPerMillimetre
	h := fig.Page.Height * pointsPerMillimetre

	page, err := document.CreateSinglePage(path, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}

	// Drawing units are centimetres about the page centre.
	k := pointsPerCentimetre
	page.Transform(matrix.Matrix{k, 0, 0, k, w / 2, h / 2})
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	t := pdfTracer{page}
	for _, el := range fig.Elements {
		if el.Fill != nil {
			page.SetFillColor(cmyk(*el.Fill))
			trace(t, el.Path)
			page.Fill()
		}
		if s := el.Stroke; s != nil {
			page.SetStrokeColor(cmyk(s.Color))
			page.SetLineWidth(s.Width)
			page.SetLineDash(s.Dash, 0)
			trace(t, el.Path)
			page.Stroke()
		}
	}

	if err := page.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// RenderPDF returns the PDF bytes of the figure.
func RenderPDF(fig *figure.Figure) ([]byte, error) {
	f, err := os.CreateTemp("", "spiramirabilis-*.pdf")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "temporary file")
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := WritePDF(fig, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func cmyk(c figure.Color) color.Color {
	return color.DeviceCMYK{c.C, c.M, c.Y, c.K}
}

type pdfTracer struct {
	page *document.Page
}

func (t pdfTracer) moveTo(p curve.Point) { t.page.MoveTo(p.X, p.Y) }
func (t pdfTracer) lineTo(p curve.Point) { t.page.LineTo(p.X, p.Y) }
func (t pdfTracer) closePath()           { t.page.ClosePath() }

func (t pdfTracer) cubicTo(p1, p2, p3 curve.Point) {
	t.page.CurveTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}
