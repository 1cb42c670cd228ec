package render

import "testing"

// newRGBA32 returns the 32bpp layout used by the SDL demo: red in the top
// byte, alpha in the bottom one.
func newRGBA32(w, h int) Framebuffer {
	return Framebuffer{
		Pix:          make([]byte, w*h*4),
		Width:        w,
		Height:       h,
		Pitch:        w * 4,
		BitsPerPixel: 32,
		Red:          Channel{Mask: 0xFF, Shift: 24},
		Green:        Channel{Mask: 0xFF, Shift: 16},
		Blue:         Channel{Mask: 0xFF, Shift: 8},
		Alpha:        Channel{Mask: 0xFF, Shift: 0},
	}
}

func newTestContext(t *testing.T, fb Framebuffer, opts ...Option) *Context {
	t.Helper()
	ctx, err := NewFramebuffer(fb, opts...)
	if err != nil {
		t.Fatalf("NewFramebuffer: %v", err)
	}
	return ctx
}

type point struct{ x, y int }

// painted returns every pixel whose native value is not zero.
func painted(fb *Framebuffer) map[point]bool {
	out := make(map[point]bool)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.Pixel(x, y) != 0 {
				out[point{x, y}] = true
			}
		}
	}
	return out
}
