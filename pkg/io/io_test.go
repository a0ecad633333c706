package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

func composed(t *testing.T, name string) *figure.Figure {
	t.Helper()
	r, err := catalog.Example(name, figure.DefaultSettings())
	if err != nil {
		t.Fatalf("Example(%s) error = %v", name, err)
	}
	fig, err := figure.Compose(r, figure.DefaultStyles())
	if err != nil {
		t.Fatalf("Compose(%s) error = %v", name, err)
	}
	return fig
}

func TestRoundTrip(t *testing.T) {
	// Example_11 has every path operation: lines, glyph curves, circles and
	// closed polygons.
	for _, name := range []string{"Example_02", "Example_11"} {
		t.Run(name, func(t *testing.T) {
			fig := composed(t, name)

			var buf bytes.Buffer
			if err := WriteFigure(fig, &buf); err != nil {
				t.Fatalf("WriteFigure() error = %v", err)
			}
			got, err := ReadFigure(&buf)
			if err != nil {
				t.Fatalf("ReadFigure() error = %v", err)
			}
			if diff := cmp.Diff(fig, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteFigureFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFigure(composed(t, "Example_00"), &buf); err != nil {
		t.Fatalf("WriteFigure() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"version": 1`, `"name": "Example_00"`, `"op": "M"`, `"role": "spiral"`, "\n  "} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteFigure() output missing %q", want)
		}
	}
}

func TestReadFigureErrors(t *testing.T) {
	// doc builds a version 1 document on an A4 page around elements.
	doc := func(elements string) string {
		return `{"version": 1, "page": {"width": 210, "height": 297, "margin": 15}, "elements": [` + elements + `]}`
	}

	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"version": 1,`},
		{"version", `{"version": 2, "elements": []}`},
		{"missing page", `{"version": 1, "elements": []}`},
		{"oversized page", `{"version": 1, "page": {"width": 1e7, "height": 1e7}, "elements": []}`},
		{"margin fills page", `{"version": 1, "page": {"width": 100, "height": 100, "margin": 50}, "elements": []}`},
		{"unknown op", doc(`{"role": "spiral", "path": [{"op": "A", "pts": [[0, 0]]}]}`)},
		{"arity", doc(`{"role": "spiral", "path": [{"op": "C", "pts": [[0, 0]]}]}`)},
		{"close with points", doc(`{"role": "spiral", "path": [{"op": "Z", "pts": [[0, 0]]}]}`)},
		{"bad fill", doc(`{"role": "logo", "path": [], "fill": {"c": 2}}`)},
		{"zero stroke", doc(`{"role": "spiral", "path": [], "stroke": {"width": 0}}`)},
		{"negative dash", doc(`{"role": "radius", "path": [], "stroke": {"width": 0.02, "dash": [0.04, -0.04]}}`)},
		{"empty dash period", doc(`{"role": "radius", "path": [], "stroke": {"width": 0.02, "dash": [0, 0]}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadFigure(strings.NewReader(tt.json)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadFigure() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestReadFigureAcceptsDottedStroke(t *testing.T) {
	in := `{"version": 1, "page": {"width": 210, "height": 297, "margin": 15}, "elements": [
		{"role": "radius", "path": [{"op": "M", "pts": [[0, 0]]}, {"op": "L", "pts": [[1, 0]]}],
		 "stroke": {"width": 0.02, "dash": [0, 0.04]}}]}`

	fig, err := ReadFigure(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadFigure() error = %v", err)
	}
	if got := fig.Elements[0].Stroke.Dash; len(got) != 2 || got[1] != 0.04 {
		t.Errorf("dash = %v, want [0 0.04]", got)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.json")
	fig := composed(t, "Example_06")

	if err := ExportFigure(fig, path); err != nil {
		t.Fatalf("ExportFigure() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("exported file missing or empty: %v", err)
	}

	got, err := ImportFigure(path)
	if err != nil {
		t.Fatalf("ImportFigure() error = %v", err)
	}
	if got.ID != fig.ID || len(got.Elements) != len(fig.Elements) {
		t.Errorf("ImportFigure() = %s with %d elements, want %s with %d", got.ID, len(got.Elements), fig.ID, len(fig.Elements))
	}

	if _, err := ImportFigure(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFigure(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if err := ExportFigure(fig, filepath.Join(dir, "no", "such", "dir.json")); err == nil {
		t.Error("ExportFigure() into a missing directory succeeded")
	}
}
