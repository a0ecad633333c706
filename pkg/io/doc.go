// Package io provides JSON import and export for composed figures.
//
// # Overview
//
// A composed [figure.Figure] is everything a sink needs: the page, the fit
// that placed the spiral and every painted element with its stroke and fill.
// Exporting it decouples the geometry from the output format:
//
//   - Compute once, render to several formats later
//   - Inspect or post-process figures with external tools
//   - Round-trip: export, re-import and render identically
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "id": "5b0e…",
//	  "name": "Spiral_Phi_090",
//	  "page": {"width": 210, "height": 297, "margin": 15},
//	  "fit": {"rotation": 0.7, "scale": 1.9},
//	  "center": [0.4, -1.2],
//	  "top_right": [8.8, 13.1],
//	  "points": 3601,
//	  "elements": [
//	    {
//	      "role": "spiral",
//	      "path": [
//	        {"op": "M", "pts": [[0, 0]]},
//	        {"op": "L", "pts": [[0.1, 0.02]]}
//	      ],
//	      "stroke": {"width": 0.056, "color": {"c": 0, "m": 0, "y": 0, "k": 1}}
//	    }
//	  ]
//	}
//
// # Path Operations
//
// Each path is a list of operations in drawing units (centimetres, page
// centre at the origin, y up):
//
//   - M: move to one point
//   - L: line to one point
//   - Q: quadratic curve through a control point to an end point
//   - C: cubic curve through two control points to an end point
//   - Z: close the subpath, no points
//
// # Import
//
// Use [ImportFigure] to read a figure from a file path, or [ReadFigure] to
// read from any io.Reader:
//
//	fig, err := io.ImportFigure("Example_02.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Unknown operations, wrong point counts, unknown format versions and
// invalid colours are rejected with INVALID_FORMAT.
//
// # Export
//
// Use [ExportFigure] to write a figure to a file, or [WriteFigure] to write
// to any io.Writer.
//
// [figure.Figure]: github.com/matzehuels/spiramirabilis/pkg/figure.Figure
package io
