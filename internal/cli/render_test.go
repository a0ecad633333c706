package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/config"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
)

const testConfig = `
[[constant]]
name = "Silver"
symbol = "δ"
value = 2.414213562373095
angles = [90]

[[recipe]]
name = "Silver_Square"
constant = "Silver"
angle = 90
fit = "snap"
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRenderFlagsApply(t *testing.T) {
	f := renderFlags{formats: "svg,png", dpi: 300, precision: 2}
	var opts pipeline.Options
	if err := f.apply(&opts); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if diff := cmp.Diff([]string{"svg", "png"}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.DPI != 300 || opts.SVGPrecision != 2 {
		t.Errorf("DPI, SVGPrecision = %v, %d, want 300, 2", opts.DPI, opts.SVGPrecision)
	}

	bad := renderFlags{formats: "svg,gif"}
	if err := bad.apply(&opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("apply(gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestResolveRecipe(t *testing.T) {
	cfg, err := config.Parse(testConfig)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name      string
		angle     int
		wantName  string
		wantAngle int
	}{
		{"Example_02", 0, "Example_02", 90},
		{"Silver_Square", 0, "Silver_Square", 90},
		{"Spiral_Phi_180", 0, "Spiral_Phi_180", 180},
		{"Spiral_Silver_090", 0, "Spiral_Silver_090", 90},
		{"E", 270, "Spiral_E_270", 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolveRecipe(cfg, tt.name, tt.angle)
			if err != nil {
				t.Fatalf("resolveRecipe() error = %v", err)
			}
			if r.Name != tt.wantName || r.Angle != tt.wantAngle {
				t.Errorf("resolveRecipe() = %s at %d°, want %s at %d°", r.Name, r.Angle, tt.wantName, tt.wantAngle)
			}
		})
	}

	if _, err := resolveRecipe(cfg, "Nope", 90); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("resolveRecipe(Nope) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if _, err := resolveRecipe(cfg, "Phi", 0); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("resolveRecipe(Phi, 0°) error = %v, want %s", err, errors.ErrCodePrecondition)
	}
}

func TestTemplateRecipes(t *testing.T) {
	cfg := config.Default()

	all, err := templateRecipes(cfg, "", "")
	if err != nil {
		t.Fatalf("templateRecipes() error = %v", err)
	}
	want := len(catalog.Constants()) * len(catalog.Angles)
	if len(all) != want {
		t.Errorf("len(templateRecipes()) = %d, want %d", len(all), want)
	}

	some, err := templateRecipes(cfg, "Phi, E", "90,360")
	if err != nil {
		t.Fatalf("templateRecipes(Phi,E) error = %v", err)
	}
	var names []string
	for _, r := range some {
		names = append(names, r.Name)
	}
	wantNames := []string{"Spiral_Phi_090", "Spiral_Phi_360", "Spiral_E_090", "Spiral_E_360"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	// Selecting angles must not leak into the built-in catalog.
	if got := catalog.Constants()[0].Angles; len(got) != len(catalog.Angles) {
		t.Errorf("catalog angles = %v after selection, want %v", got, catalog.Angles)
	}

	tests := []struct {
		constants, angles string
		code              errors.Code
	}{
		{"Nope", "", errors.ErrCodeNotFound},
		{"", "ninety", errors.ErrCodeInvalidInput},
		{"", "0", errors.ErrCodePrecondition},
	}
	for _, tt := range tests {
		if _, err := templateRecipes(cfg, tt.constants, tt.angles); !errors.Is(err, tt.code) {
			t.Errorf("templateRecipes(%q, %q) error = %v, want %s", tt.constants, tt.angles, err, tt.code)
		}
	}
}

func TestExampleRecipes(t *testing.T) {
	cfg, err := config.Parse(testConfig)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	all, err := exampleRecipes(cfg, nil)
	if err != nil {
		t.Fatalf("exampleRecipes() error = %v", err)
	}
	if want := len(catalog.ExampleNames()) + 1; len(all) != want {
		t.Errorf("len(exampleRecipes()) = %d, want %d", len(all), want)
	}
	if last := all[len(all)-1].Name; last != "Silver_Square" {
		t.Errorf("last example = %q, want the configured recipe", last)
	}

	picked, err := exampleRecipes(cfg, []string{"Silver_Square", "Example_02"})
	if err != nil {
		t.Fatalf("exampleRecipes(names) error = %v", err)
	}
	if picked[0].Name != "Silver_Square" || picked[1].Name != "Example_02" {
		t.Errorf("exampleRecipes(names) = %s, %s, want argument order", picked[0].Name, picked[1].Name)
	}

	if _, err := exampleRecipes(cfg, []string{"Example_99"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("exampleRecipes(Example_99) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestDecorations(t *testing.T) {
	tests := []struct {
		name   string
		recipe figure.Recipe
		want   string
	}{
		{"plain", figure.Recipe{}, "—"},
		{"rectangle", figure.Recipe{
			Rectangle: &figure.RectangleSpec{From: figure.Origin, To: figure.Radius(4), Ratio: 1},
			Markers:   []figure.Marker{figure.Input(figure.Corner('A'))},
		}, "rectangle O→R4, 1 markers"},
		{"triangle and chain", figure.Recipe{
			Rectangle: &figure.RectangleSpec{From: figure.Origin, To: figure.Radius(2), Triangle: true},
			Chain:     &figure.DefaultChain,
		}, "triangle O→R2, chain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decorations(tt.recipe); got != tt.want {
				t.Errorf("decorations() = %q, want %q", got, tt.want)
			}
		})
	}
}
