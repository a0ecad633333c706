package figure

import (
	"fmt"
	"math"
)

// =============================================================================
// Line Widths
// =============================================================================

// Line widths in centimetres. The scale steps by a factor of sqrt(2) around
// the 0.02 cm base width.
var (
	WidthBase  = 0.02
	WidthThin  = WidthBase / math.Sqrt(32)
	WidthThick = WidthBase * math.Sqrt(8)
	WidthHeavy = WidthBase * 4
	WidthBold  = WidthBase * math.Sqrt(32)
)

// Dash patterns as multiples of the line width.
var (
	DashDashed = []float64{2, 2}
	DashDotted = []float64{0, 2}
)

// =============================================================================
// Styles
// =============================================================================

// LineStyle describes how a path is stroked. Dash is relative to Width; an
// empty Dash draws a solid line. Caps and joins are always round.
type LineStyle struct {
	Width float64   `json:"width" toml:"width"`
	Dash  []float64 `json:"dash,omitempty" toml:"dash"`
	Color Color     `json:"color" toml:"color"`
}

// Stroke is a resolved LineStyle with the dash pattern in centimetres.
type Stroke struct {
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"`
	Color Color     `json:"color"`
}

// Stroke resolves the relative dash pattern against the line width.
func (s LineStyle) Stroke() *Stroke {
	out := &Stroke{Width: s.Width, Color: s.Color}
	if len(s.Dash) > 0 {
		out.Dash = make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			out.Dash[i] = d * s.Width
		}
	}
	return out
}

// WithColor returns a copy of s drawn in c.
func (s LineStyle) WithColor(c Color) LineStyle {
	s.Color = c
	return s
}

func (s LineStyle) validate(name string) error {
	if !(s.Width > 0) || math.IsInf(s.Width, 0) {
		return fmt.Errorf("%s: line width must be positive, got %v", name, s.Width)
	}
	for _, d := range s.Dash {
		if !(d >= 0) || math.IsInf(d, 0) {
			return fmt.Errorf("%s: dash lengths must be non-negative, got %v", name, d)
		}
	}
	if err := s.Color.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// StyleConfig carries every stroke the composer draws with. It is passed
// explicitly to Compose so that figures never depend on global state.
type StyleConfig struct {
	Base   LineStyle `json:"base" toml:"base"`
	Thick  LineStyle `json:"thick" toml:"thick"`
	Dashed LineStyle `json:"dashed" toml:"dashed"`
	Dotted LineStyle `json:"dotted" toml:"dotted"`

	Input         LineStyle `json:"input" toml:"input"`
	Output        LineStyle `json:"output" toml:"output"`
	Rectangle     LineStyle `json:"rectangle" toml:"rectangle"`
	RectangleFill Color     `json:"rectangle_fill" toml:"rectangle_fill"`
	Chain         LineStyle `json:"chain" toml:"chain"`
	Border        LineStyle `json:"border" toml:"border"`
}

// DefaultStyles returns the classic print styles: red inputs, blue outputs and
// goldenrod rectangles.
func DefaultStyles() StyleConfig {
	return StyleConfig{
		Base:   LineStyle{Width: WidthBase, Color: Black},
		Thick:  LineStyle{Width: WidthThick, Color: Black},
		Dashed: LineStyle{Width: WidthBase, Dash: DashDashed, Color: Black},
		Dotted: LineStyle{Width: WidthBase, Dash: DashDotted, Color: Black},

		Input:         LineStyle{Width: WidthBold, Color: Red},
		Output:        LineStyle{Width: WidthBold, Color: Blue},
		Rectangle:     LineStyle{Width: WidthThin, Color: Goldenrod},
		RectangleFill: Goldenrod,
		Chain:         LineStyle{Width: WidthHeavy, Dash: DashDashed, Color: Blue},
		Border:        LineStyle{Width: WidthThin, Color: Black},
	}
}

// Validate checks every line style and colour.
func (c StyleConfig) Validate() error {
	styles := []struct {
		name  string
		style LineStyle
	}{
		{"base", c.Base},
		{"thick", c.Thick},
		{"dashed", c.Dashed},
		{"dotted", c.Dotted},
		{"input", c.Input},
		{"output", c.Output},
		{"rectangle", c.Rectangle},
		{"chain", c.Chain},
		{"border", c.Border},
	}
	for _, s := range styles {
		if err := s.style.validate(s.name); err != nil {
			return err
		}
	}
	if err := c.RectangleFill.Validate(); err != nil {
		return fmt.Errorf("rectangle_fill: %w", err)
	}
	return nil
}

// radius returns the style of radius line i out of count. Eight or more
// radii in an even count alternate solid and dashed lines.
func (c StyleConfig) radius(i, count int) LineStyle {
	if count >= 8 && count%2 == 0 && i%2 == 1 {
		return c.Dashed
	}
	return c.Base
}
