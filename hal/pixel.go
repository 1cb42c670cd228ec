package hal

import (
	"fmt"
	"strings"

	"dazzle/render"
)

// PixelFormat names a packed pixel layout for host framebuffers.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp with red in the top byte and alpha in the
	// bottom one.
	PixelFormatRGBA8888 PixelFormat = iota + 1
	// PixelFormatXRGB8888 is the common Linux fbdev layout: 32bpp, blue in
	// the bottom byte, no alpha.
	PixelFormatXRGB8888
	// PixelFormatABGR8888 stores bytes in R, G, B, A order, like image.RGBA.
	PixelFormatABGR8888
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatRGBA8888: "rgba8888",
	PixelFormatXRGB8888: "xrgb8888",
	PixelFormatABGR8888: "abgr8888",
}

func (f PixelFormat) String() string {
	if s, ok := pixelFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// ParsePixelFormat accepts the names printed by String, in any case.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for f, name := range pixelFormatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q", s)
}

// Apply sets the depth and channel layout of fb. Geometry and memory are
// left alone.
func (f PixelFormat) Apply(fb *render.Framebuffer) {
	fb.BitsPerPixel = 32
	switch f {
	case PixelFormatXRGB8888:
		fb.Red = render.Channel{Mask: 0xFF, Shift: 16}
		fb.Green = render.Channel{Mask: 0xFF, Shift: 8}
		fb.Blue = render.Channel{Mask: 0xFF, Shift: 0}
		fb.Alpha = render.Channel{}
	case PixelFormatABGR8888:
		fb.Red = render.Channel{Mask: 0xFF, Shift: 0}
		fb.Green = render.Channel{Mask: 0xFF, Shift: 8}
		fb.Blue = render.Channel{Mask: 0xFF, Shift: 16}
		fb.Alpha = render.Channel{Mask: 0xFF, Shift: 24}
	default:
		fb.Red = render.Channel{Mask: 0xFF, Shift: 24}
		fb.Green = render.Channel{Mask: 0xFF, Shift: 16}
		fb.Blue = render.Channel{Mask: 0xFF, Shift: 8}
		fb.Alpha = render.Channel{Mask: 0xFF, Shift: 0}
	}
}

// decodeRGBA expands the native pixels of fb into dst as opaque RGBA bytes,
// four per pixel, row after row.
func decodeRGBA(fb *render.Framebuffer, dst []byte) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			j := (y*fb.Width + x) * 4
			if j+3 >= len(dst) {
				return
			}
			c := fb.Decode(fb.Pixel(x, y))
			dst[j+0] = c.R()
			dst[j+1] = c.G()
			dst[j+2] = c.B()
			dst[j+3] = 0xFF
		}
	}
}
