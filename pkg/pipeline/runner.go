package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spiramirabilis/pkg/cache"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the compose → render pipeline for one recipe.
func (r *Runner) Execute(ctx context.Context, recipe figure.Recipe, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Compose
	composeStart := time.Now()
	fig, err := r.Compose(ctx, recipe, opts)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", recipe.Name, err)
	}
	result.Figure = fig
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.Points = fig.Points
	result.Stats.Elements = len(fig.Elements)

	opts.Logger.Debug("composed figure",
		"name", fig.Name,
		"points", fig.Points,
		"elements", len(fig.Elements),
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", recipe.Name, err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Debug("rendered outputs",
		"name", fig.Name,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose applies the option overrides to recipe and composes the figure.
func (r *Runner) Compose(ctx context.Context, recipe figure.Recipe, opts Options) (*figure.Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	recipe = opts.apply(recipe)
	hooks := observability.Figure()
	hooks.OnComposeStart(ctx, recipe.Name)
	start := time.Now()

	fig, err := figure.Compose(recipe, *opts.Styles)

	points := 0
	if fig != nil {
		points = fig.Points
	}
	hooks.OnComposeComplete(ctx, recipe.Name, points, time.Since(start), err)
	return fig, err
}

// RenderWithCacheInfo renders fig in every requested format, serving formats
// from the cache where possible. The returned flag reports whether every
// format was a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// The figure's JSON form determines every artifact.
	figData, err := marshalFigure(fig)
	if err != nil {
		return nil, false, fmt.Errorf("serialize figure for cache key: %w", err)
	}
	figHash := cache.Hash(figData)

	cacheHooks := observability.Cache()
	hooks := observability.Figure()
	hooks.OnRenderStart(ctx, fig.Name, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(figHash, artifactKeyOpts(format, opts))

		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, key)
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, key)
		allCached = false

		data, err := RenderFormat(fig, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, fig.Name, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, key, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, fig.Name, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, fig, opts)
	return artifacts, err
}

// Batch executes every recipe with at most opts.Jobs figures in flight. A
// failing figure is reported in its Outcome and does not stop the others.
// Outcomes are returned in recipe order. The error is non-nil only when ctx
// was cancelled; outcomes of figures that never started are then left with
// a nil Result and the context error.
func (r *Runner) Batch(ctx context.Context, recipes []figure.Recipe, opts Options) ([]Outcome, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	outcomes := make([]Outcome, len(recipes))
	g := new(errgroup.Group)
	g.SetLimit(opts.Jobs)

	for i, recipe := range recipes {
		outcomes[i].Name = recipe.Name
		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}
		g.Go(func() error {
			res, err := r.Execute(ctx, recipe, opts)
			outcomes[i] = Outcome{Name: recipe.Name, Result: res, Err: err}
			if err != nil {
				opts.Logger.Warn("figure failed", "name", recipe.Name, "error", err)
			}
			if opts.Progress != nil {
				opts.Progress(outcomes[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	opts.Logger.Info("batch finished", "figures", len(recipes), "failed", failed)

	return outcomes, ctx.Err()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.DPI = opts.DPI
	case FormatSVG:
		k.SVGPrecision = opts.SVGPrecision
	}
	return k
}
