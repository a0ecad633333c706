package cli

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

func TestFigureSummary(t *testing.T) {
	fig := &figure.Figure{
		Name:   "Example_02",
		Page:   spiral.A4,
		Fit:    spiral.PageFit{Rotation: math.Pi / 12, Scale: 22.053279767},
		Points: 480,
		Elements: []figure.Element{
			{Role: figure.RoleRectangle},
			{Role: figure.RoleRadius},
			{Role: figure.RoleRadius},
			{Role: figure.RoleSpiral},
			{Role: figure.RoleInput},
		},
	}

	want := []field{
		{"page", pageSize(spiral.A4)},
		{"fit", "rotation 15°, scale 22.0533 cm"},
		{"drawn", "480 points, 2 radii, 1 rectangle, 1 inputs"},
	}
	if diff := cmp.Diff(want, figureSummary(fig), cmp.AllowUnexported(field{})); diff != "" {
		t.Errorf("figureSummary() mismatch (-want +got):\n%s", diff)
	}
}

func TestFigureSummaryEmpty(t *testing.T) {
	fig := &figure.Figure{Page: spiral.Page{Width: 100, Height: 100}}

	got := figureSummary(fig)
	if len(got) != 2 {
		t.Fatalf("figureSummary() = %v, want page and fit only", got)
	}
	if got[0].value != "100×100 mm" {
		t.Errorf("page = %q, want %q", got[0].value, "100×100 mm")
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want string
	}{
		{210, 1, "210"},
		{297.5, 1, "297.5"},
		{22.053279767, 4, "22.0533"},
		{15.000000001, 2, "15"},
		{0, 2, "0"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.v, tt.prec); got != tt.want {
			t.Errorf("trimFloat(%v, %d) = %q, want %q", tt.v, tt.prec, got, tt.want)
		}
	}
}
