// Package config loads the optional TOML configuration file.
//
// The file overrides the page, the sampling settings and the stroke styles,
// and can add constants and annotated recipes to the catalog:
//
//	[page]
//	width = 297
//	height = 210
//
//	[spiral]
//	radii = 12
//
//	[style.input.color]
//	c = 0
//	m = 0.8
//	y = 0.8
//	k = 0
//
//	[[constant]]
//	name = "Silver"
//	symbol = "δ"
//	value = 2.414213562
//	angles = [90, 180]
//
//	[[recipe]]
//	name = "Silver_Square"
//	constant = "Silver"
//	angle = 90
//	caption = true
//	rectangle = { from = "O", to = "R4", ratio = 1 }
//	markers = [{ at = "A", role = "input" }, { at = "C", role = "output" }]
//
// Keys the loader does not know are reported as errors rather than ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// AppName names the configuration directory.
const AppName = "spiramirabilis"

// FileName is the configuration file looked up in the configuration directory.
const FileName = "config.toml"

// Spiral holds the [spiral] section.
type Spiral struct {
	Radii         int     `toml:"radii"`
	Turns         float64 `toml:"turns"`
	PointsPerTurn int     `toml:"points_per_turn"`
	MinRadius     float64 `toml:"min_radius"`
}

// Recipe is a [[recipe]] entry. Constant, when set, fills Symbol and Growth
// from a built-in or configured constant.
type Recipe struct {
	figure.Recipe
	Constant string `toml:"constant"`
}

// Config is the decoded configuration. Absent keys keep their defaults.
type Config struct {
	Page      spiral.Page        `toml:"page"`
	Spiral    Spiral             `toml:"spiral"`
	Style     figure.StyleConfig `toml:"style"`
	Constants []catalog.Constant `toml:"constant"`
	Recipes   []Recipe           `toml:"recipe"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	set := figure.DefaultSettings()
	return &Config{
		Page: set.Page,
		Spiral: Spiral{
			Radii:         set.Radii,
			Turns:         set.Turns,
			PointsPerTurn: set.PointsPerTurn,
			MinRadius:     set.MinRadius,
		},
		Style: figure.DefaultStyles(),
	}
}

// Dir returns the configuration directory using the XDG standard
// (~/.config/spiramirabilis/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load reads the configuration at path. An empty path looks in Dir and falls
// back to Default when no file is there; an explicit path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(dir, FileName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(doc string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings, the styles and every added constant.
// Recipes are checked by FigureRecipes, once their constants are resolved.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[page] or [spiral]")
	}
	if err := c.Style.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[style]")
	}

	seen := make(map[string]bool)
	for _, k := range catalog.Constants() {
		seen[k.Name] = true
	}
	for _, k := range c.Constants {
		if err := k.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[[constant]] %q", k.Name)
		}
		if seen[k.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "[[constant]] %q defined twice", k.Name)
		}
		seen[k.Name] = true
	}
	return nil
}

// Settings returns the sampling settings for every figure.
func (c *Config) Settings() figure.Settings {
	return figure.Settings{
		Page:          c.Page,
		Radii:         c.Spiral.Radii,
		Turns:         c.Spiral.Turns,
		PointsPerTurn: c.Spiral.PointsPerTurn,
		MinRadius:     c.Spiral.MinRadius,
	}
}

// AllConstants returns the built-in constants followed by the configured ones.
func (c *Config) AllConstants() []catalog.Constant {
	return append(catalog.Constants(), c.Constants...)
}

// LookupConstant finds a built-in or configured constant.
func (c *Config) LookupConstant(name string) (catalog.Constant, error) {
	all := c.AllConstants()
	if i := slices.IndexFunc(all, func(k catalog.Constant) bool { return k.Name == name }); i >= 0 {
		return all[i], nil
	}
	return catalog.Constant{}, errors.New(errors.ErrCodeNotFound, "unknown constant %q", name)
}

// FigureRecipes returns the configured recipes with their constants
// resolved and the configured settings applied.
func (c *Config) FigureRecipes() ([]figure.Recipe, error) {
	out := make([]figure.Recipe, 0, len(c.Recipes))
	for _, entry := range c.Recipes {
		r := entry.Recipe
		if entry.Constant != "" {
			k, err := c.LookupConstant(entry.Constant)
			if err != nil {
				return nil, fmt.Errorf("[[recipe]] %q: %w", r.Name, err)
			}
			r.Growth = k.Value
			if r.Symbol == "" {
				r.Symbol = k.Symbol
			}
		}
		r.Settings = c.Settings()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("[[recipe]] %q: %w", r.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Exists reports whether path names a readable file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
