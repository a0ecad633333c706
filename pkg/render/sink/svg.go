package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

// DefaultSVGPrecision is the number of decimals written for coordinates.
// Drawing units are centimetres, so four decimals resolve a micrometre.
const DefaultSVGPrecision = 4

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision  int
	background *figure.Color
}

// WithSVGPrecision sets the number of decimals written for coordinates.
func WithSVGPrecision(decimals int) SVGOption {
	return func(r *svgRenderer) { r.precision = max(decimals, 0) }
}

// WithSVGBackground paints the whole page in c before the figure.
func WithSVGBackground(c figure.Color) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// RenderSVG writes the figure as a standalone SVG document sized in
// millimetres. Elements marked PDFOnly are skipped.
func RenderSVG(fig *figure.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{precision: DefaultSVGPrecision}
	for _, opt := range opts {
		opt(&r)
	}

	b := fig.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="%s %s %s %s">`+"\n",
		r.num(fig.Page.Width), r.num(fig.Page.Height),
		r.num(b.X0), r.num(-b.Y1), r.num(b.Width()), r.num(b.Height()))

	if fig.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(fig.Name))
	}
	if fig.Title != "" {
		fmt.Fprintf(&buf, "  <desc>%s</desc>\n", html.EscapeString(fig.Title))
	}
	fmt.Fprintf(&buf, "  <metadata>%s</metadata>\n", fig.ID.URN())

	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			r.num(b.X0), r.num(-b.Y1), r.num(b.Width()), r.num(b.Height()), r.background.Hex())
	}

	buf.WriteString(`  <g transform="scale(1,-1)" stroke-linecap="round" stroke-linejoin="round">` + "\n")
	for _, el := range fig.Elements {
		if el.PDFOnly {
			continue
		}
		r.element(&buf, el)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) element(buf *bytes.Buffer, el figure.Element) {
	fmt.Fprintf(buf, `    <path class="%s" d="%s"`, el.Role, r.pathData(el.Path))
	if el.Fill != nil {
		fmt.Fprintf(buf, ` fill="%s"`, el.Fill.Hex())
	} else {
		buf.WriteString(` fill="none"`)
	}
	if s := el.Stroke; s != nil {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, s.Color.Hex(), r.num(s.Width))
		if len(s.Dash) > 0 {
			fmt.Fprintf(buf, ` stroke-dasharray="%s"`, r.list(s.Dash))
		}
	}
	buf.WriteString("/>\n")
}

func (r *svgRenderer) pathData(p curve.BezPath) string {
	var sb strings.Builder
	for i, el := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch el.Kind {
		case curve.MoveToKind:
			fmt.Fprintf(&sb, "M%s", r.point(el.P0))
		case curve.LineToKind:
			fmt.Fprintf(&sb, "L%s", r.point(el.P0))
		case curve.QuadToKind:
			fmt.Fprintf(&sb, "Q%s %s", r.point(el.P0), r.point(el.P1))
		case curve.CubicToKind:
			fmt.Fprintf(&sb, "C%s %s %s", r.point(el.P0), r.point(el.P1), r.point(el.P2))
		case curve.ClosePathKind:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func (r *svgRenderer) point(p curve.Point) string {
	return r.num(p.X) + "," + r.num(p.Y)
}

func (r *svgRenderer) list(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = r.num(v)
	}
	return strings.Join(parts, " ")
}

// num formats v with at most r.precision decimals and no trailing zeros.
func (r *svgRenderer) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', r.precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
