package figure

import (
	"fmt"
	"image/color"
	"math"
)

// Color is a process colour in CMYK, each channel in [0, 1].
type Color struct {
	C float64 `json:"c" toml:"c"`
	M float64 `json:"m" toml:"m"`
	Y float64 `json:"y" toml:"y"`
	K float64 `json:"k" toml:"k"`
}

var (
	Black     = Color{K: 1}
	White     = Color{}
	Red       = Color{M: 1, Y: 1}
	Blue      = Color{C: 1, M: 1}
	Goldenrod = Color{M: 0.10, Y: 0.84}
)

// Validate checks that every channel lies in [0, 1].
func (c Color) Validate() error {
	for _, v := range [...]float64{c.C, c.M, c.Y, c.K} {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("cmyk channel %v out of range [0, 1]", v)
		}
	}
	return nil
}

// RGBA converts c to opaque 8-bit RGB with the naive device formula.
func (c Color) RGBA() color.RGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(255 * (1 - v) * (1 - c.K)))
	}
	return color.RGBA{R: ch(c.C), G: ch(c.M), B: ch(c.Y), A: 0xff}
}

// Hex returns the "#rrggbb" form used by SVG.
func (c Color) Hex() string {
	rgb := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}
