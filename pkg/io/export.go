package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// FormatVersion is written to every exported figure.
const FormatVersion = 1

var kindToOp = map[curve.PathElementKind]string{
	curve.MoveToKind:    "M",
	curve.LineToKind:    "L",
	curve.QuadToKind:    "Q",
	curve.CubicToKind:   "C",
	curve.ClosePathKind: "Z",
}

type document struct {
	Version  int            `json:"version"`
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Title    string         `json:"title,omitempty"`
	Page     spiral.Page    `json:"page"`
	Fit      spiral.PageFit `json:"fit"`
	Center   point          `json:"center"`
	TopRight point          `json:"top_right"`
	Points   int            `json:"points"`
	Elements []element      `json:"elements"`
}

type element struct {
	Role    figure.Role    `json:"role"`
	Path    []segment      `json:"path"`
	Stroke  *figure.Stroke `json:"stroke,omitempty"`
	Fill    *figure.Color  `json:"fill,omitempty"`
	PDFOnly bool           `json:"pdf_only,omitempty"`
}

type segment struct {
	Op  string  `json:"op"`
	Pts []point `json:"pts,omitempty"`
}

type point [2]float64

func toPoint(p curve.Point) point { return point{p.X, p.Y} }
func (p point) toCurve() curve.Point { return curve.Pt(p[0], p[1]) }

// WriteFigure encodes a figure as indented JSON and writes it to w.
// The output can be re-imported with [ReadFigure].
func WriteFigure(fig *figure.Figure, w io.Writer) error {
	out := document{
		Version:  FormatVersion,
		ID:       fig.ID,
		Name:     fig.Name,
		Title:    fig.Title,
		Page:     fig.Page,
		Fit:      fig.Fit,
		Center:   toPoint(fig.Center),
		TopRight: toPoint(fig.TopRight),
		Points:   fig.Points,
		Elements: make([]element, len(fig.Elements)),
	}

	for i, el := range fig.Elements {
		e := element{
			Role:    el.Role,
			Path:    make([]segment, len(el.Path)),
			Stroke:  el.Stroke,
			Fill:    el.Fill,
			PDFOnly: el.PDFOnly,
		}
		for j, pe := range el.Path {
			op, ok := kindToOp[pe.Kind]
			if !ok {
				return fmt.Errorf("element %d: unknown path element kind %d", i, pe.Kind)
			}
			pts := []curve.Point{pe.P0, pe.P1, pe.P2}[:opArity[op]]
			seg := segment{Op: op}
			for _, p := range pts {
				seg.Pts = append(seg.Pts, toPoint(p))
			}
			e.Path[j] = seg
		}
		out.Elements[i] = e
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFigure writes a figure to a JSON file at path.
func ExportFigure(fig *figure.Figure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteFigure(fig, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
