package spiral

import (
	"math"
	"testing"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

func TestTrimKeepsAtLeastOneTurn(t *testing.T) {
	for _, k := range growthFactors {
		for _, angle := range []int{90, 180, 270, 360} {
			f := FactorPerTurn(k, angle)
			fit, err := FitAuto(f, A4, 360, 24)
			if err != nil {
				t.Fatalf("FitAuto() error = %v", err)
			}
			s, err := Sample(f, 10, 360, fit.Rotation)
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}

			trimmed, err := Trim(s, fit.Scale, 0.5, 360, 24)
			if err != nil {
				t.Fatalf("Trim(k=%v, angle=%d) error = %v", k, angle, err)
			}
			if len(trimmed) < 361 {
				t.Errorf("Trim(k=%v, angle=%d) kept %d points, want at least 361", k, angle, len(trimmed))
			}
			if len(trimmed) > 361 && len(trimmed)%30 != 0 {
				t.Errorf("Trim(k=%v, angle=%d) kept %d points, want a multiple of the 30-point sector", k, angle, len(trimmed))
			}
		}
	}
}

func TestTrimCut(t *testing.T) {
	s, err := Sample(2, 10, 360, 0)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	tests := []struct {
		name    string
		scale   float64
		minR    float64
		markers int
		want    int
	}{
		// Every point is visible: the last index 3600 rounds to 3600.
		{"all visible", 1e6, 0.5, 24, 3600},
		// radius(i) = 2^(-i/360): 2^-5 = 1/32 is reached exactly at i = 1800.
		{"half the turns", 32, 1, 24, 1800},
		// Rounds to the nearest 30-point sector: 1/20 is reached at i = 1555.
		{"sector rounding", 20, 1, 24, 1560},
		// Only the first turn is visible.
		{"forced minimum", 1.2, 1, 24, 361},
		// No markers: cut at the last visible index.
		{"no markers", 20, 1, 0, 1555},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Trim(s, tt.scale, tt.minR, 360, tt.markers)
			if err != nil {
				t.Fatalf("Trim() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Trim()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestTrimShortSpiral(t *testing.T) {
	s, err := Sample(2, 0.5, 360, 0)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	got, err := Trim(s, 10, 1, 360, 24)
	if err != nil {
		t.Fatalf("Trim() error = %v", err)
	}
	if len(got) != len(s) {
		t.Errorf("len(Trim()) = %d, want the whole %d-point spiral", len(got), len(s))
	}
}

func TestTrimDegenerate(t *testing.T) {
	s, err := Sample(math.Pi, 3, 90, 0)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	_, err = Trim(s, 0.01, 0.5, 90, 24)
	if !errors.Is(err, errors.ErrCodeDegenerateVisibility) {
		t.Errorf("Trim() error = %v, want %s", err, errors.ErrCodeDegenerateVisibility)
	}

	_, err = Trim(nil, 1, 0.5, 90, 24)
	if !errors.Is(err, errors.ErrCodeDegenerateVisibility) {
		t.Errorf("Trim(nil) error = %v, want %s", err, errors.ErrCodeDegenerateVisibility)
	}
}

func TestTrimPreconditions(t *testing.T) {
	s, _ := Sample(2, 1, 4, 0)
	if _, err := Trim(s, 1, 0.1, 0, 24); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("Trim(ppt=0) error = %v, want %s", err, errors.ErrCodePrecondition)
	}
	if _, err := Trim(s, 1, 0.1, 4, -1); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("Trim(markers=-1) error = %v, want %s", err, errors.ErrCodePrecondition)
	}
}
