package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

const sample = `
[page]
width = 297
height = 210

[spiral]
radii = 12

[style.input.color]
c = 0
m = 0.8
y = 0.8
k = 0

[[constant]]
name = "Silver"
symbol = "δ"
value = 2.414213562
angles = [90, 180]

[[recipe]]
name = "Silver_Square"
constant = "Silver"
angle = 90
fit = "snap"
caption = true
border = "black"
rectangle = { from = "O", to = "R4", ratio = 1 }
markers = [{ at = "A", role = "input" }, { at = "C", role = "output" }]
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantPage := spiral.Page{Width: 297, Height: 210, Margin: spiral.A4.Margin}
	if diff := cmp.Diff(wantPage, cfg.Page); diff != "" {
		t.Errorf("Page mismatch (-want +got):\n%s", diff)
	}

	set := cfg.Settings()
	def := figure.DefaultSettings()
	if set.Radii != 12 || set.Turns != def.Turns || set.PointsPerTurn != def.PointsPerTurn {
		t.Errorf("Settings() = %+v, want radii 12 and default sampling", set)
	}

	styles := figure.DefaultStyles()
	if got := cfg.Style.Input.Color; got != (figure.Color{M: 0.8, Y: 0.8}) {
		t.Errorf("input color = %+v, want {M:0.8 Y:0.8}", got)
	}
	if cfg.Style.Input.Width != styles.Input.Width {
		t.Errorf("input width = %v, want default %v", cfg.Style.Input.Width, styles.Input.Width)
	}
	if diff := cmp.Diff(styles.Output, cfg.Style.Output); diff != "" {
		t.Errorf("output style changed (-want +got):\n%s", diff)
	}

	if len(cfg.AllConstants()) != 11 {
		t.Errorf("len(AllConstants()) = %d, want 11", len(cfg.AllConstants()))
	}

	recipes, err := cfg.FigureRecipes()
	if err != nil {
		t.Fatalf("FigureRecipes() error = %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("len(FigureRecipes()) = %d, want 1", len(recipes))
	}
	r := recipes[0]
	if r.Symbol != "δ" || r.Growth != 2.414213562 {
		t.Errorf("recipe constant = %s %v, want δ 2.414213562", r.Symbol, r.Growth)
	}
	if r.Fit != spiral.AnalyticSnap {
		t.Errorf("recipe fit = %v, want snap", r.Fit)
	}
	if r.Settings != set {
		t.Errorf("recipe settings = %+v, want %+v", r.Settings, set)
	}
	wantMarkers := []figure.Marker{figure.Input("A"), figure.Output("C")}
	if diff := cmp.Diff(wantMarkers, r.Markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}

	if _, err := figure.Compose(r, cfg.Style); err != nil {
		t.Errorf("Compose() error = %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax", "[page\nwidth = 1", errors.ErrCodeInvalidConfig},
		{"unknown key", "[page]\ncolour = 1", errors.ErrCodeInvalidConfig},
		{"unknown section", "[fonts]\nsize = 10", errors.ErrCodeInvalidConfig},
		{"margin too large", "[page]\nmargin = 200", errors.ErrCodeInvalidConfig},
		{"bad color", "[style.base.color]\nk = 2", errors.ErrCodeInvalidConfig},
		{"builtin constant", "[[constant]]\nname = \"Phi\"\nvalue = 1.6\nangles = [90]", errors.ErrCodeInvalidConfig},
		{"constant below one", "[[constant]]\nname = \"Half\"\nvalue = 0.5\nangles = [90]", errors.ErrCodeInvalidConfig},
		{"bad fit", "[[recipe]]\nname = \"X\"\nfit = \"sideways\"", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.doc); !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFigureRecipesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"unknown constant", "[[recipe]]\nname = \"X\"\nconstant = \"Tau\"\nangle = 90", errors.ErrCodeNotFound},
		{"bad angle", "[[recipe]]\nname = \"X\"\nconstant = \"Phi\"\nangle = 400", errors.ErrCodePrecondition},
		{"corner anchor", "[[recipe]]\nname = \"X\"\nconstant = \"Phi\"\nangle = 90\nrectangle = { from = \"A\", to = \"O\", ratio = 1 }", errors.ErrCodeInvalidRecipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.doc)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := cfg.FigureRecipes(); !errors.Is(err, tt.code) {
				t.Errorf("FigureRecipes() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", AppName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	// No file at the default location.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Path != "" || cfg.Settings() != figure.DefaultSettings() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	path := filepath.Join(home, AppName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Errorf("Exists(%q) = false", path)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Path != path || cfg.Spiral.Radii != 12 {
		t.Errorf("Load(\"\") path, radii = %q, %d, want %q, 12", cfg.Path, cfg.Spiral.Radii, path)
	}

	if _, err := Load(filepath.Join(home, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
