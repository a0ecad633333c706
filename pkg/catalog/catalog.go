// Package catalog holds the named growth constants and the figure recipes
// drawn from them.
//
// Templates are plain spirals, one per constant and angle, named
// Spiral_<constant>_<angle:03d>. Examples are annotated figures: rectangles
// erected on radius markers, input and output circles, and the golden square
// chain.
//
// Every function takes the sampling settings explicitly so that a config
// file can change the page or the number of radii for the whole catalog.
package catalog

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// Angles are the turn angles every constant is drawn with.
var Angles = []int{90, 180, 270, 360}

// Constant is a named growth factor.
type Constant struct {
	Name   string  `json:"name" toml:"name"`
	Symbol string  `json:"symbol" toml:"symbol"`
	Value  float64 `json:"value" toml:"value"`
	Angles []int   `json:"angles" toml:"angles"`
}

// Validate checks the name, the value and every angle.
func (c Constant) Validate() error {
	if err := errors.ValidateFigureName(c.Name); err != nil {
		return err
	}
	if !(c.Value > 1) || math.IsInf(c.Value, 0) {
		return errors.New(errors.ErrCodePrecondition, "constant %s: value must be greater than 1, got %v", c.Name, c.Value)
	}
	if len(c.Angles) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "constant %s: no angles", c.Name)
	}
	for _, a := range c.Angles {
		if err := errors.ValidateAngle(a); err != nil {
			return err
		}
	}
	return nil
}

var phi = (1 + math.Sqrt(5)) / 2

var constants = []Constant{
	{"2", "2", 2, Angles},
	{"3", "3", 3, Angles},
	{"4", "4", 4, Angles},
	{"5", "5", 5, Angles},
	{"E", "e", math.E, Angles},
	{"Pi", "π", math.Pi, Angles},
	{"Root2", "√2", math.Sqrt2, Angles},
	{"Root3", "√3", math.Sqrt(3), Angles},
	{"Root5", "√5", math.Sqrt(5), Angles},
	{"Phi", "φ", phi, Angles},
}

// Constants returns the built-in constants in catalog order.
func Constants() []Constant {
	return slices.Clone(constants)
}

// LookupConstant finds a built-in constant by name.
func LookupConstant(name string) (Constant, error) {
	for _, c := range constants {
		if c.Name == name {
			return c, nil
		}
	}
	return Constant{}, errors.New(errors.ErrCodeNotFound, "unknown constant %q", name)
}

// TemplateName returns the output name of a template figure.
func TemplateName(constant string, angle int) string {
	return fmt.Sprintf("Spiral_%s_%03d", constant, angle)
}

// Template returns the plain spiral recipe for c at angle, with the logo,
// the caption and a white border.
func Template(c Constant, angle int, set figure.Settings) figure.Recipe {
	return figure.Recipe{
		Name:     TemplateName(c.Name, angle),
		Symbol:   c.Symbol,
		Growth:   c.Value,
		Angle:    angle,
		Fit:      spiral.AutoSearch,
		Settings: set,
		Logo:     true,
		Caption:  true,
		Border:   figure.BorderWhite,
	}
}

// Templates returns one template per constant and angle, in catalog order.
func Templates(cs []Constant, set figure.Settings) []figure.Recipe {
	var recipes []figure.Recipe
	for _, c := range cs {
		for _, a := range c.Angles {
			recipes = append(recipes, Template(c, a, set))
		}
	}
	return recipes
}

// =============================================================================
// Examples
// =============================================================================

// Examples returns every annotated example, sorted by name.
func Examples(set figure.Settings) []figure.Recipe {
	recipes := make([]figure.Recipe, 0, len(examples))
	for _, name := range ExampleNames() {
		recipes = append(recipes, examples[name](set))
	}
	return recipes
}

// ExampleNames returns the example names in sorted order.
func ExampleNames() []string {
	return slices.Sorted(maps.Keys(examples))
}

// Example returns the named example recipe.
func Example(name string, set figure.Settings) (figure.Recipe, error) {
	build, ok := examples[name]
	if !ok {
		return figure.Recipe{}, errors.New(errors.ErrCodeNotFound, "unknown example %q", name)
	}
	return build(set), nil
}
