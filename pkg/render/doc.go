// Package render groups the output stages of spiramirabilis.
//
// Composition happens in [figure]; everything under render only turns a
// composed [figure.Figure] into bytes. The [sink] subpackage holds the SVG,
// PDF and PNG writers:
//
//	fig, _ := figure.Compose(recipe, figure.DefaultStyles())
//	svg := sink.RenderSVG(fig)
//	pdf, err := sink.RenderPDF(fig)
//
// [figure]: github.com/matzehuels/spiramirabilis/pkg/figure
// [figure.Figure]: github.com/matzehuels/spiramirabilis/pkg/figure#Figure
// [sink]: github.com/matzehuels/spiramirabilis/pkg/render/sink
package render
