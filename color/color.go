// Package color implements the Atma color value type and its
// conversions between RGB, HSL, HSV, CMYK and XYZ, plus the blend
// primitives the expression evaluator composes ramps and unary/binary
// operators out of.
package color

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Space names a color space that blend/unary arithmetic can be carried
// out in before being converted back to RGB for storage.
type Space int

const (
	RGB Space = iota
	HSL
	HSV
	CMYK
	XYZ
)

func (s Space) String() string {
	switch s {
	case RGB:
		return "rgb"
	case HSL:
		return "hsl"
	case HSV:
		return "hsv"
	case CMYK:
		return "cmyk"
	case XYZ:
		return "xyz"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// Color is a resolved, storable color value. Internally it is kept as
// linear-independent sRGB components in [0,1]; every other space is a
// view computed on demand, the same way go-colorful treats its
// colorful.Color as the canonical representation.
type Color struct {
	c colorful.Color
}

// RGB255 builds a Color from 8-bit channels, the form literals like
// #RRGGBB resolve to.
func RGB255(r, g, b uint8) Color {
	return Color{c: colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}}
}

// RGB01 builds a Color from channels in [0,1], clamping out-of-range
// inputs as required by spec §4.2 ("values outside are clamped at
// evaluation time").
func RGB01(r, g, b float64) Color {
	return Color{c: colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}}
}

// HSLColor builds a Color from hue in [0,360) and saturation/lightness in
// [0,1].
func HSLColor(h, s, l float64) Color {
	return Color{c: colorful.Hsl(wrapHue(h), clamp01(s), clamp01(l))}
}

// HSVColor builds a Color from hue in [0,360) and saturation/value in
// [0,1].
func HSVColor(h, s, v float64) Color {
	return Color{c: colorful.Hsv(wrapHue(h), clamp01(s), clamp01(v))}
}

// XYZColor builds a Color from CIE XYZ tristimulus values.
func XYZColor(x, y, z float64) Color {
	r, g, b := colorful.XyzToLinearRgb(x, y, z)
	return Color{c: colorful.LinearRgb(r, g, b)}
}

// CMYKColor builds a Color from CMYK components in [0,1]. go-colorful
// has no CMYK support, so the conversion is implemented directly here;
// see DESIGN.md for why that is the one spot this package does not
// lean on the library.
func CMYKColor(c, m, y, k float64) Color {
	c, m, y, k = clamp01(c), clamp01(m), clamp01(y), clamp01(k)
	r := (1 - c) * (1 - k)
	g := (1 - m) * (1 - k)
	b := (1 - y) * (1 - k)
	return RGB01(r, g, b)
}

// FromHex parses "#RRGGBB" or "#RGB" (12-bit, duplicated per nibble).
func FromHex(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, errors.Newf("color: hex literal must start with '#', got %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		expanded := make([]byte, 0, 6)
		for _, ch := range []byte(hex) {
			expanded = append(expanded, ch, ch)
		}
		hex = string(expanded)
	case 6:
	default:
		return Color{}, errors.Newf("color: hex literal %q must have 3 or 6 digits", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, errors.Wrapf(err, "color: invalid hex literal %q", s)
	}
	return Color{c: c}, nil
}

// RGB255Values returns the 8-bit channels, rounded half-to-even per
// spec §9.
func (c Color) RGB255Values() (r, g, b uint8) {
	return roundChannel(c.c.R), roundChannel(c.c.G), roundChannel(c.c.B)
}

// RGB01Values returns the channels in [0,1].
func (c Color) RGB01Values() (r, g, b float64) {
	return c.c.R, c.c.G, c.c.B
}

// HSL returns hue in [0,360) and saturation/lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return c.c.Hsl()
}

// HSV returns hue in [0,360) and saturation/value in [0,1].
func (c Color) HSV() (h, s, v float64) {
	return c.c.Hsv()
}

// XYZ returns CIE XYZ tristimulus values.
func (c Color) XYZ() (x, y, z float64) {
	return c.c.Xyz()
}

// CMYK returns the CMYK components in [0,1].
func (c Color) CMYK() (cy, m, y, k float64) {
	r, g, b := c.c.R, c.c.G, c.c.B
	k = 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return 0, 0, 0, 1
	}
	cy = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return cy, m, y, k
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return c.c.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// Equal compares two colors at 8-bit resolution, the granularity that
// matters for round-trip tests (spec §8 property 8).
func (c Color) Equal(o Color) bool {
	r1, g1, b1 := c.RGB255Values()
	r2, g2, b2 := o.RGB255Values()
	return r1 == r2 && g1 == g2 && b1 == b2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// roundChannel converts a [0,1] channel to an 8-bit value using
// round-half-to-even, per spec §9's recommendation for blend rounding.
func roundChannel(v float64) uint8 {
	scaled := clamp01(v) * 255
	return uint8(math.RoundToEven(scaled))
}
