package spiral

import (
	"fmt"
	"math"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
)

// MillimetresPerUnit converts page millimetres into the centimetre drawing unit.
const MillimetresPerUnit = 10

// Page describes the printable sheet in millimetres.
type Page struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Margin float64 `json:"margin" toml:"margin"`
}

// A4 is the portrait page every catalog figure is drawn on.
var A4 = Page{Width: 210, Height: 297, Margin: 15}

// Validate checks that the margins leave a positive drawing area.
func (p Page) Validate() error {
	return errors.ValidatePage(p.Width, p.Height, p.Margin)
}

// budget returns the drawable width and height inside the margins.
func (p Page) budget() (float64, float64) {
	return p.Width - 2*p.Margin, p.Height - 2*p.Margin
}

// PageFit maps a unit spiral onto the page: rotate by Rotation radians, then
// multiply by Scale to obtain centimetres.
type PageFit struct {
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// FitMode selects how the rotation of a figure is chosen.
type FitMode int

const (
	// AutoSearch tries every marker-aligned rotation within a quarter turn and
	// keeps the one that allows the largest one-turn spiral.
	AutoSearch FitMode = iota
	// AnalyticSnap derives the rotation from the growth factor and snaps it to
	// the marker grid, then fits the full multi-turn spiral.
	AnalyticSnap
)

var fitModeNames = map[FitMode]string{
	AutoSearch:   "auto",
	AnalyticSnap: "snap",
}

func (m FitMode) String() string {
	if s, ok := fitModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("FitMode(%d)", int(m))
}

// ParseFitMode accepts "auto" or "snap".
func ParseFitMode(s string) (FitMode, error) {
	for m, name := range fitModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid fit mode: %q (must be 'auto' or 'snap')", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m FitMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FitMode) UnmarshalText(b []byte) error {
	mode, err := ParseFitMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Fit dispatches to FitAuto or FitSnap. turns is only used by AnalyticSnap.
func (m FitMode) Fit(factorPerTurn float64, page Page, pointsPerTurn, markerCount int, turns float64) (PageFit, error) {
	switch m {
	case AutoSearch:
		return FitAuto(factorPerTurn, page, pointsPerTurn, markerCount)
	case AnalyticSnap:
		return FitSnap(factorPerTurn, page, pointsPerTurn, markerCount, turns)
	default:
		return PageFit{}, errors.New(errors.ErrCodeInvalidInput, "unknown fit mode %d", int(m))
	}
}

// FitAuto searches the markerCount/4 rotations i*2*pi/markerCount and returns
// the one whose one-turn bounding box scales up the most inside the margins.
// Ties keep the earliest candidate. With fewer than four markers the only
// candidate is rotation 0.
func FitAuto(factorPerTurn float64, page Page, pointsPerTurn, markerCount int) (PageFit, error) {
	if err := checkFit(factorPerTurn, page, markerCount); err != nil {
		return PageFit{}, err
	}

	fits := make([]PageFit, max(1, markerCount/4))
	for i := range fits {
		if markerCount > 0 {
			fits[i].Rotation = float64(i) * 2 * math.Pi / float64(markerCount)
		}
		s, err := Sample(factorPerTurn, 1, pointsPerTurn, fits[i].Rotation)
		if err != nil {
			return PageFit{}, err
		}
		fits[i].Scale = fitScale(s, page)
	}
	return fits[largestScale(fits)], nil
}

// largestScale returns the index of the fit with the largest scale. Only a
// strictly larger scale replaces the current best.
func largestScale(fits []PageFit) int {
	best := 0
	for i, f := range fits {
		if fits[best].Scale < f.Scale {
			best = i
		}
	}
	return best
}

// FitSnap rotates by atan((1/f)^(3/4)) rounded to the nearest marker angle and
// fits the full turns-turn spiral. Rounding follows round-half-to-even.
func FitSnap(factorPerTurn float64, page Page, pointsPerTurn, markerCount int, turns float64) (PageFit, error) {
	if err := checkFit(factorPerTurn, page, markerCount); err != nil {
		return PageFit{}, err
	}

	rotation := math.Atan(math.Pow(1/factorPerTurn, 3.0/4.0))
	if markerCount > 0 {
		step := 2 * math.Pi / float64(markerCount)
		rotation = step * math.RoundToEven(rotation/step)
	}

	s, err := Sample(factorPerTurn, turns, pointsPerTurn, rotation)
	if err != nil {
		return PageFit{}, err
	}
	return PageFit{Rotation: rotation, Scale: fitScale(s, page)}, nil
}

// fitScale returns the largest scale, in centimetres per unit, that keeps the
// bounding box of s inside the page margins.
func fitScale(s Spiral, page Page) float64 {
	box := s.BoundingBox()
	w, h := page.budget()
	return min(w/box.Width(), h/box.Height()) / MillimetresPerUnit
}

func checkFit(factorPerTurn float64, page Page, markerCount int) error {
	if err := errors.ValidateGrowth(factorPerTurn); err != nil {
		return err
	}
	if markerCount < 0 {
		return errors.New(errors.ErrCodePrecondition, "marker count cannot be negative, got %d", markerCount)
	}
	return page.Validate()
}
