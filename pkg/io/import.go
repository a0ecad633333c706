package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

var opToKind = map[string]curve.PathElementKind{
	"M": curve.MoveToKind,
	"L": curve.LineToKind,
	"Q": curve.QuadToKind,
	"C": curve.CubicToKind,
	"Z": curve.ClosePathKind,
}

// opArity is the number of points each operation carries.
var opArity = map[string]int{"M": 1, "L": 1, "Q": 2, "C": 3, "Z": 0}

// ReadFigure decodes a JSON figure from r.
//
// ReadFigure returns an INVALID_FORMAT error if the JSON is malformed, the
// version is not [FormatVersion], a path operation is unknown or carries the
// wrong number of points, a colour channel lies outside [0, 1], a dash entry
// is negative or not finite, or the page fails [errors.ValidatePage]. Errors
// name the offending element. ReadFigure does not close r.
func ReadFigure(r io.Reader) (*figure.Figure, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if data.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported figure version %d", data.Version)
	}
	if err := data.Page.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "page")
	}

	fig := &figure.Figure{
		ID:       data.ID,
		Name:     data.Name,
		Title:    data.Title,
		Page:     data.Page,
		Fit:      data.Fit,
		Center:   data.Center.toCurve(),
		TopRight: data.TopRight.toCurve(),
		Points:   data.Points,
		Elements: make([]figure.Element, len(data.Elements)),
	}

	for i, e := range data.Elements {
		el := figure.Element{
			Role:    e.Role,
			Path:    make(curve.BezPath, len(e.Path)),
			Stroke:  e.Stroke,
			Fill:    e.Fill,
			PDFOnly: e.PDFOnly,
		}
		for j, seg := range e.Path {
			kind, ok := opToKind[seg.Op]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "element %d (%s): unknown path operation %q", i, e.Role, seg.Op)
			}
			if len(seg.Pts) != opArity[seg.Op] {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "element %d (%s): %s takes %d points, got %d",
					i, e.Role, seg.Op, opArity[seg.Op], len(seg.Pts))
			}
			pe := curve.PathElement{Kind: kind}
			for k, p := range seg.Pts {
				switch k {
				case 0:
					pe.P0 = p.toCurve()
				case 1:
					pe.P1 = p.toCurve()
				case 2:
					pe.P2 = p.toCurve()
				}
			}
			el.Path[j] = pe
		}
		if err := validatePaint(el); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %d (%s)", i, e.Role)
		}
		fig.Elements[i] = el
	}

	return fig, nil
}

func validatePaint(el figure.Element) error {
	if el.Fill != nil {
		if err := el.Fill.Validate(); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}
	if el.Stroke != nil {
		if err := el.Stroke.Color.Validate(); err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
		if !(el.Stroke.Width > 0) || math.IsInf(el.Stroke.Width, 0) {
			return fmt.Errorf("stroke width must be positive and finite, got %v", el.Stroke.Width)
		}
		var period float64
		for _, d := range el.Stroke.Dash {
			if !(d >= 0) || math.IsInf(d, 0) {
				return fmt.Errorf("dash entries must be non-negative and finite, got %v", el.Stroke.Dash)
			}
			period += d
		}
		if len(el.Stroke.Dash) > 0 && period == 0 {
			return fmt.Errorf("dash pattern %v has zero length", el.Stroke.Dash)
		}
	}
	return nil
}

// ImportFigure reads a JSON file at path and returns the decoded figure.
// A missing file is reported as FILE_NOT_FOUND.
func ImportFigure(path string) (*figure.Figure, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFigure(f)
}
