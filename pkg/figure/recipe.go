package figure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// Default sampling settings shared by every catalog figure.
const (
	DefaultRadii         = 24
	DefaultTurns         = 10
	DefaultPointsPerTurn = 360
	DefaultMinRadius     = 5 // mm
)

// Settings controls sampling and trimming. MinRadius is in millimetres.
type Settings struct {
	Page          spiral.Page `json:"page" toml:"page"`
	Radii         int         `json:"radii" toml:"radii"`
	Turns         float64     `json:"turns" toml:"turns"`
	PointsPerTurn int         `json:"points_per_turn" toml:"points_per_turn"`
	MinRadius     float64     `json:"min_radius" toml:"min_radius"`
}

// DefaultSettings returns 24 radii and 10 turns at 360 points per turn on A4.
func DefaultSettings() Settings {
	return Settings{
		Page:          spiral.A4,
		Radii:         DefaultRadii,
		Turns:         DefaultTurns,
		PointsPerTurn: DefaultPointsPerTurn,
		MinRadius:     DefaultMinRadius,
	}
}

// Validate checks the page and the sampling parameters.
func (s Settings) Validate() error {
	if err := s.Page.Validate(); err != nil {
		return err
	}
	if s.Radii < 0 {
		return errors.New(errors.ErrCodePrecondition, "radii cannot be negative, got %d", s.Radii)
	}
	if !(s.Turns > 0) || math.IsInf(s.Turns, 0) {
		return errors.New(errors.ErrCodePrecondition, "turns must be positive, got %v", s.Turns)
	}
	if s.PointsPerTurn <= 0 {
		return errors.New(errors.ErrCodePrecondition, "points per turn must be positive, got %d", s.PointsPerTurn)
	}
	if !(s.MinRadius >= 0) || math.IsInf(s.MinRadius, 0) {
		return errors.New(errors.ErrCodePrecondition, "minimum radius cannot be negative, got %v", s.MinRadius)
	}
	return nil
}

// =============================================================================
// References
// =============================================================================

// Ref names a point of the figure: "O" is the spiral centre, "R<n>" is point n
// of the radius marker spiral, and "A" to "D" are rectangle corners.
type Ref string

// Origin is the centre of the spiral.
const Origin Ref = "O"

// Radius returns the reference to radius marker n.
func Radius(n int) Ref {
	return Ref("R" + strconv.Itoa(n))
}

// Corner returns the reference to rectangle corner letter.
func Corner(letter byte) Ref {
	return Ref([]byte{letter})
}

// parse splits r into its kind ('O', 'R' or a corner letter) and, for radius
// references, the marker index.
func (r Ref) parse() (byte, int, error) {
	s := string(r)
	switch {
	case s == "O":
		return 'O', 0, nil
	case len(s) == 1 && s[0] >= 'A' && s[0] <= 'D':
		return s[0], 0, nil
	case strings.HasPrefix(s, "R") && len(s) > 1:
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			break
		}
		return 'R', n, nil
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidRecipe, "invalid point reference %q (want O, R<n> or A-D)", s)
}

func (r Ref) isCorner() bool {
	kind, _, err := r.parse()
	return err == nil && kind != 'O' && kind != 'R'
}

// =============================================================================
// Annotations
// =============================================================================

// RectangleSpec erects a rectangle on the segment From-To; see
// spiral.BuildRectangle. From and To must be "O" or "R<n>".
type RectangleSpec struct {
	From     Ref     `json:"from" toml:"from"`
	To       Ref     `json:"to" toml:"to"`
	Ratio    float64 `json:"ratio" toml:"ratio"`
	Triangle bool    `json:"triangle,omitempty" toml:"triangle"`
}

// Marker circles a point as an input or an output.
type Marker struct {
	At   Ref  `json:"at" toml:"at"`
	Role Role `json:"role" toml:"role"`
}

// Input returns an input marker at r.
func Input(r Ref) Marker { return Marker{At: r, Role: RoleInput} }

// Output returns an output marker at r.
func Output(r Ref) Marker { return Marker{At: r, Role: RoleOutput} }

// ChainSpec draws the chain of nested golden squares. Lambda is the first
// side in centimetres and Alpha its direction in degrees.
type ChainSpec struct {
	Lambda float64 `json:"lambda" toml:"lambda"`
	Alpha  float64 `json:"alpha" toml:"alpha"`
	Fill   bool    `json:"fill" toml:"fill"`
}

// DefaultChain is the 0.8 cm vertical chain with its core filled.
var DefaultChain = ChainSpec{Lambda: 0.8, Alpha: 90, Fill: true}

// Border selects the colour of the page outline.
type Border string

const (
	BorderNone  Border = "none"
	BorderWhite Border = "white"
	BorderBlack Border = "black"
)

func (b Border) color() (Color, bool) {
	switch b {
	case BorderWhite:
		return White, true
	case BorderBlack:
		return Black, true
	}
	return Color{}, false
}

// =============================================================================
// Recipe
// =============================================================================

// Recipe is the declarative description of one figure. Compose interprets
// every recipe with the same algorithm.
type Recipe struct {
	Name   string         `json:"name" toml:"name"`
	Title  string         `json:"title,omitempty" toml:"title"`
	Symbol string         `json:"symbol" toml:"symbol"`
	Growth float64        `json:"growth" toml:"growth"`
	Angle  int            `json:"angle" toml:"angle"`
	Fit    spiral.FitMode `json:"fit" toml:"fit"`

	Settings Settings `json:"settings" toml:"-"`

	Rectangle *RectangleSpec `json:"rectangle,omitempty" toml:"rectangle"`
	Chain     *ChainSpec     `json:"chain,omitempty" toml:"chain"`
	Markers   []Marker       `json:"markers,omitempty" toml:"markers"`

	Logo    bool   `json:"logo" toml:"logo"`
	Caption bool   `json:"caption" toml:"caption"`
	Border  Border `json:"border" toml:"border"`
}

// FactorPerTurn returns the growth over one full turn.
func (r Recipe) FactorPerTurn() float64 {
	return spiral.FactorPerTurn(r.Growth, r.Angle)
}

// CaptionText returns the "symbol / angle°" label.
func (r Recipe) CaptionText() string {
	return fmt.Sprintf("%s / %d°", r.Symbol, r.Angle)
}

// Validate checks the recipe without sampling anything. Radius references
// are range-checked by Compose once the marker spiral is known.
func (r Recipe) Validate() error {
	if err := errors.ValidateFigureName(r.Name); err != nil {
		return err
	}
	if err := errors.ValidateAngle(r.Angle); err != nil {
		return err
	}
	if !(r.Growth > 0) || math.IsInf(r.Growth, 0) {
		return errors.New(errors.ErrCodePrecondition, "growth constant must be positive, got %v", r.Growth)
	}
	if err := errors.ValidateGrowth(r.FactorPerTurn()); err != nil {
		return err
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}

	if rect := r.Rectangle; rect != nil {
		for _, ref := range []Ref{rect.From, rect.To} {
			if _, _, err := ref.parse(); err != nil {
				return err
			}
			if ref.isCorner() {
				return errors.New(errors.ErrCodeInvalidRecipe, "rectangle anchor %q must be O or R<n>", ref)
			}
		}
		if math.IsNaN(rect.Ratio) || math.IsInf(rect.Ratio, 0) {
			return errors.New(errors.ErrCodeInvalidRecipe, "rectangle ratio must be finite, got %v", rect.Ratio)
		}
	}
	if c := r.Chain; c != nil {
		if !(c.Lambda > 0) || math.IsInf(c.Lambda, 0) || math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) {
			return errors.New(errors.ErrCodeInvalidRecipe, "chain needs a positive side and a finite angle")
		}
	}

	for _, m := range r.Markers {
		if m.Role != RoleInput && m.Role != RoleOutput {
			return errors.New(errors.ErrCodeInvalidRecipe, "marker role must be input or output, got %q", m.Role)
		}
		if _, _, err := m.At.parse(); err != nil {
			return err
		}
		if m.At.isCorner() && r.Rectangle == nil {
			return errors.New(errors.ErrCodeInvalidRecipe, "marker %q refers to a corner but the recipe has no rectangle", m.At)
		}
		if m.At == "D" && r.Rectangle != nil && r.Rectangle.Triangle {
			return errors.New(errors.ErrCodeInvalidRecipe, "marker refers to corner D of a triangle")
		}
	}

	switch r.Border {
	case "", BorderNone, BorderWhite, BorderBlack:
	default:
		return errors.New(errors.ErrCodeInvalidRecipe, "border must be none, white or black, got %q", r.Border)
	}
	return nil
}
