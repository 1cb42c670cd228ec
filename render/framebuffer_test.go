package render

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertChannelIsolation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		fb := Framebuffer{
			Red:   Channel{Mask: uint8(rng.Intn(256)), Shift: uint8(rng.Intn(25))},
			Green: Channel{Mask: uint8(rng.Intn(256)), Shift: uint8(rng.Intn(25))},
			Blue:  Channel{Mask: uint8(rng.Intn(256)), Shift: uint8(rng.Intn(25))},
			Alpha: Channel{Mask: uint8(rng.Intn(256)), Shift: uint8(rng.Intn(25))},
		}
		c := Color(rng.Uint32())

		want := uint32(c.R()&fb.Red.Mask)<<fb.Red.Shift |
			uint32(c.G()&fb.Green.Mask)<<fb.Green.Shift |
			uint32(c.B()&fb.Blue.Mask)<<fb.Blue.Shift |
			uint32(c.A()&fb.Alpha.Mask)<<fb.Alpha.Shift
		require.Equal(t, want, fb.Convert(c), "color %#08x", uint32(c))

		// A channel only depends on its own byte.
		onlyRed := fb.Convert(c & 0xFF)
		assert.Equal(t, uint32(c.R()&fb.Red.Mask)<<fb.Red.Shift, onlyRed)
	}
}

func TestConvertScenarioLayout(t *testing.T) {
	fb := newRGBA32(1, 1)
	assert.Equal(t, uint32(0), fb.Convert(0))
	assert.Equal(t, uint32(0x0000FF00), fb.Convert(0x00FF0000))
	assert.Equal(t, uint32(0xFF000000), fb.Convert(0xFF))
	assert.Equal(t, uint32(0x11223344), fb.Convert(RGBA(0x11, 0x22, 0x33, 0x44)))
}

func TestDecodeRoundTrip(t *testing.T) {
	fb := newRGBA32(1, 1)
	for _, c := range []Color{0, 0xFF, 0x00FF0000, RGBA(1, 2, 3, 4), RGB(0xAA, 0xBB, 0xCC)} {
		assert.Equal(t, c, fb.Decode(fb.Convert(c)))
	}

	masked := fb
	masked.Alpha.Mask = 0
	assert.Equal(t, RGBA(1, 2, 3, 0), masked.Decode(masked.Convert(RGBA(1, 2, 3, 4))))
}

func TestValidate(t *testing.T) {
	good := newRGBA32(4, 3)
	require.NoError(t, good.Validate())

	cases := map[string]func(fb *Framebuffer){
		"bpp":        func(fb *Framebuffer) { fb.BitsPerPixel = 12 },
		"width":      func(fb *Framebuffer) { fb.Width = 0 },
		"pitch":      func(fb *Framebuffer) { fb.Pitch = 15 },
		"short pix":  func(fb *Framebuffer) { fb.Pix = fb.Pix[:len(fb.Pix)-1] },
		"tall frame": func(fb *Framebuffer) { fb.Height = 4 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			fb := newRGBA32(4, 3)
			mutate(&fb)
			err := fb.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDescriptor))
		})
	}

	// Padding on the last row is optional.
	padded := newRGBA32(4, 3)
	padded.Pitch = 20
	padded.Pix = make([]byte, 20*2+16)
	assert.NoError(t, padded.Validate())
}

func TestDrawSpanBounds(t *testing.T) {
	fb := newRGBA32(8, 4)
	pattern := make([]byte, 8*4)
	fb.FillPattern(pattern, 0xDEADBEEF)

	fb.DrawSpan(8, 0, 1, pattern)
	fb.DrawSpan(0, 4, 1, pattern)
	fb.DrawSpan(-1, 0, 1, pattern)
	fb.DrawSpan(0, -1, 1, pattern)
	fb.DrawSpan(0, 0, 0, pattern)
	fb.DrawSpan(0, 0, 1, nil)
	assert.Empty(t, painted(&fb))

	fb.DrawSpan(2, 1, 3, pattern)
	assert.Equal(t, map[point]bool{{2, 1}: true, {3, 1}: true, {4, 1}: true}, painted(&fb))
}

func TestDrawSpanRunsIntoNextRow(t *testing.T) {
	fb := newRGBA32(4, 3)
	pattern := make([]byte, 4*4)
	fb.FillPattern(pattern, 1)

	fb.DrawSpan(3, 0, 3, pattern)
	assert.Equal(t, map[point]bool{{3, 0}: true, {0, 1}: true, {1, 1}: true}, painted(&fb))
}

func TestDrawSpanStopsAtBufferEnd(t *testing.T) {
	fb := newRGBA32(4, 2)
	pattern := make([]byte, 4*4)
	fb.FillPattern(pattern, 1)

	require.NotPanics(t, func() { fb.DrawSpan(2, 1, 4, pattern) })
	assert.Equal(t, map[point]bool{{2, 1}: true, {3, 1}: true}, painted(&fb))
}

func TestNativeByteOrder(t *testing.T) {
	fb := Framebuffer{
		Pix:          make([]byte, 6),
		Width:        2,
		Height:       1,
		Pitch:        6,
		BitsPerPixel: 24,
	}
	fb.SetPixel(1, 0, 0x00A1B2C3)
	assert.Equal(t, []byte{0, 0, 0, 0xC3, 0xB2, 0xA1}, fb.Pix)
	assert.Equal(t, uint32(0xA1B2C3), fb.Pixel(1, 0))
	assert.Equal(t, uint32(0), fb.Pixel(2, 0))
}
