package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 32-bit color: red in bits 0-7, green in bits 8-15, blue
// in bits 16-23 and alpha in bits 24-31.
type Color uint32

func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 0xFF) }

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// NRGBA returns the color as a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// Colorful returns the RGB part of c as a go-colorful color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
}

// FromColor packs any image/color value, undoing alpha premultiplication.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// FromColorful packs a go-colorful color with the given alpha. Out of gamut
// values are clamped.
func FromColorful(c colorful.Color, alpha uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return RGBA(r, g, b, alpha)
}

// Hex parses "#rgb" or "#rrggbb" and returns an opaque color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	return FromColorful(c, 0xFF), nil
}
