// Package sink writes composed figures to output formats.
//
// # Overview
//
// A "sink" turns a [figure.Figure] into bytes. Figures are device
// independent: element paths are in centimetres with the page centre at the
// origin and y pointing up, and every element carries its own stroke and
// fill. Each sink only maps that scene onto its device:
//
//   - SVG: a standalone document sized in millimetres
//   - PDF: a single page written natively, colours kept in DeviceCMYK
//   - PNG: a raster image at a chosen resolution
//
// Elements are painted in slice order; a fill is painted before the stroke
// of the same element. Elements marked PDFOnly (the cutting border) appear
// in PDF output only.
//
// # SVG Output
//
// [RenderSVG] flips the y axis with a group transform so that path data is
// written in figure coordinates:
//
//	svg := sink.RenderSVG(fig,
//	    sink.WithSVGPrecision(3),
//	    sink.WithSVGBackground(figure.White),
//	)
//
// # PDF Output
//
// [WritePDF] writes a file directly; [RenderPDF] returns the bytes. The page
// matches the figure's page size and the current transformation matrix maps
// centimetres to points about the page centre, so line widths and dashes
// are given in figure units.
//
// # PNG Output
//
// [RenderPNG] rasterises at [DefaultDPI] unless [WithDPI] is given:
//
//	png, err := sink.RenderPNG(fig, sink.WithDPI(300))
//
// [figure.Figure]: github.com/matzehuels/spiramirabilis/pkg/figure.Figure
package sink
