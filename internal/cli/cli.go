// Package cli implements the spiramirabilis command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiramirabilis/pkg/buildinfo"
	"github.com/matzehuels/spiramirabilis/pkg/cache"
	"github.com/matzehuels/spiramirabilis/pkg/config"
	"github.com/matzehuels/spiramirabilis/pkg/observability"
	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Counters collects compose, render and cache counts for the run.
	Counters *observability.Counters

	configPath string
	useCache   bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Counters: &observability.Counters{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Spiramirabilis draws logarithmic spirals on paper",
		Long: `Spiramirabilis draws logarithmic spirals fitted to a page, with radius
markers, rectangles and Fibonacci chains, as SVG, PDF, PNG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.SetFigureHooks(c.Counters)
			observability.SetCacheHooks(c.Counters)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.Logger.Debug("run finished",
				"composed", c.Counters.Composed.Load(),
				"rendered", c.Counters.Rendered.Load(),
				"cache_hits", c.Counters.CacheHits.Load(),
				"cache_misses", c.Counters.CacheMisses.Load())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigHint()+")")
	root.PersistentFlags().BoolVar(&c.useCache, "cache", false, "reuse rendered artifacts from the local cache")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = cfg
	return cfg, nil
}

func defaultConfigHint() string {
	dir, err := config.Dir()
	if err != nil {
		return config.FileName
	}
	return filepath.Join(dir, config.FileName)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// version so that an upgrade never serves stale artifacts.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := newCache(c.useCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache returns the file cache when enabled. Without --cache every run
// renders from scratch and nothing is kept on disk.
func newCache(enabled bool) (cache.Cache, error) {
	if !enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		printWarning("cache disabled: %v", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// baseOptions returns pipeline options carrying the configured styles.
func (c *CLI) baseOptions(cfg *config.Config) pipeline.Options {
	styles := cfg.Style
	return pipeline.Options{
		Styles: &styles,
		Logger: c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/spiramirabilis/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
