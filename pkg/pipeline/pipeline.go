// Package pipeline provides the compose → render pipeline for spiral figures.
//
// This package implements the complete pipeline that the CLI runs for one
// figure or for a whole catalog. By centralizing this logic, every command
// applies overrides, logs, caches and reports errors the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compose: Fit, sample and trim the spiral and lay out the decorations
//     of a [figure.Recipe] into a device-independent [figure.Figure]
//  2. Render: Write the figure in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "pdf"}}
//	result, err := runner.Execute(ctx, recipe, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Render a catalog in parallel; one failing figure does not stop the others:
//
//	outcomes, err := runner.Batch(ctx, catalog.Templates(cs, set), opts)
//
// [figure.Recipe]: github.com/matzehuels/spiramirabilis/pkg/figure.Recipe
// [figure.Figure]: github.com/matzehuels/spiramirabilis/pkg/figure.Figure
package pipeline

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/render/sink"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and the config file
// =============================================================================

const (
	// DefaultDPI is the PNG resolution.
	DefaultDPI = float64(sink.DefaultDPI)

	// DefaultSVGPrecision is the number of decimals in SVG coordinates.
	DefaultSVGPrecision = sink.DefaultSVGPrecision
)

// DefaultJobs is the number of figures a batch renders at once.
var DefaultJobs = runtime.NumCPU()

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Compose options. Settings and Fit, when set, replace the values
	// carried by each recipe. Styles defaults to figure.DefaultStyles.
	Settings *figure.Settings    `json:"settings,omitempty"`
	Fit      *spiral.FitMode     `json:"fit,omitempty"`
	Styles   *figure.StyleConfig `json:"styles,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	DPI          float64  `json:"dpi,omitempty"`
	SVGPrecision int      `json:"svg_precision,omitempty"`

	// Batch options
	Jobs int `json:"jobs,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Progress, when set, is called once per finished figure of a batch.
	// It may be called from several goroutines at once.
	Progress func(Outcome) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Figure is the composed figure.
	Figure *figure.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points      int
	Elements    int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// Outcome is the result of one figure of a batch. Exactly one of Result and
// Err is set.
type Outcome struct {
	Name   string
	Result *Result
	Err    error
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if !(o.DPI > 0) || math.IsInf(o.DPI, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", o.DPI)
	}
	if o.SVGPrecision == 0 {
		o.SVGPrecision = DefaultSVGPrecision
	}
	if o.SVGPrecision < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "svg precision cannot be negative, got %d", o.SVGPrecision)
	}

	if o.Jobs == 0 {
		o.Jobs = DefaultJobs
	}
	if o.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jobs cannot be negative, got %d", o.Jobs)
	}

	if o.Settings != nil {
		if err := o.Settings.Validate(); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	if o.Styles == nil {
		def := figure.DefaultStyles()
		o.Styles = &def
	}
	if err := o.Styles.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "styles")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// apply returns r with the option overrides applied.
func (o *Options) apply(r figure.Recipe) figure.Recipe {
	if o.Settings != nil {
		r.Settings = *o.Settings
	}
	if o.Fit != nil {
		r.Fit = *o.Fit
	}
	return r
}
