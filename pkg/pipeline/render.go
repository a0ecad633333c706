package pipeline

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	figio "github.com/matzehuels/spiramirabilis/pkg/io"
	"github.com/matzehuels/spiramirabilis/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. It does not
// use a cache; see [Runner.Render].
func Render(fig *figure.Figure, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(fig, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat writes fig in a single format.
func RenderFormat(fig *figure.Figure, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatSVG:
		data = sink.RenderSVG(fig, sink.WithSVGPrecision(opts.SVGPrecision))
	case FormatPNG:
		data, err = sink.RenderPNG(fig, sink.WithDPI(opts.DPI))
	case FormatPDF:
		data, err = sink.RenderPDF(fig)
	case FormatJSON:
		data, err = marshalFigure(fig)
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func marshalFigure(fig *figure.Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := figio.WriteFigure(fig, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArtifacts writes each artifact to <dir>/<name>.<format>, creating dir
// if needed, and returns the written paths in format order.
func WriteArtifacts(dir, name string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidateFigureName(name); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}

	var paths []string
	for _, format := range slices.Sorted(maps.Keys(artifacts)) {
		path := filepath.Join(dir, name+"."+format)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
