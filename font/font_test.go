package font

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dazzle/render"
)

var glyphA = []byte{0x18, 0x24, 0x42, 0x7E, 0x42, 0x42, 0x42, 0x00}

func psf1(mode uint8) []byte {
	count := 256
	if mode&psf1Mode512 != 0 {
		count = 512
	}
	data := []byte{0x36, 0x04, mode, 8}
	table := make([]byte, count*8)
	copy(table['A'*8:], glyphA)
	return append(data, table...)
}

func psf2(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := psf2Header{
		Magic:         psf2Magic,
		HeaderSize:    36,
		GlyphCount:    2,
		BytesPerGlyph: 6,
		Height:        3,
		Width:         10,
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
	buf.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	buf.Write(make([]byte, 6))
	buf.Write([]byte{0xC0, 0x40, 0x00, 0x80, 0xFF, 0xC0})
	return buf.Bytes()
}

func lit(pix []render.Color, w int) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for i, c := range pix {
		if c != 0 {
			out[[2]int{i % w, i / w}] = true
		}
	}
	return out
}

func TestParsePSF1(t *testing.T) {
	f, err := Parse(psf1(0))
	require.NoError(t, err)
	assert.Equal(t, FormatPSF1, f.Format)
	assert.Equal(t, 256, f.GlyphCount)
	assert.Equal(t, 8, f.Width)
	assert.Equal(t, 8, f.Height)
	assert.Equal(t, 8, f.BytesPerGlyph)

	f, err = Parse(psf1(psf1Mode512))
	require.NoError(t, err)
	assert.Equal(t, 512, f.GlyphCount)
}

func TestParseCopiesGlyphTable(t *testing.T) {
	data := psf1(0)
	f, err := Parse(data)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0
	}
	pix, _, _, err := f.Glyph('A', 1)
	require.NoError(t, err)
	assert.NotEmpty(t, lit(pix, 8))
}

func TestGlyphPSF1(t *testing.T) {
	f, err := Load(bytes.NewReader(psf1(0)))
	require.NoError(t, err)

	fg := render.RGB(0xFF, 0xFF, 0xFF)
	pix, w, h, err := f.Glyph('A', fg)
	require.NoError(t, err)
	require.Equal(t, 8, w)
	require.Equal(t, 8, h)

	for y, row := range glyphA {
		for x := 0; x < 8; x++ {
			want := render.Color(0)
			if row&(0x80>>x) != 0 {
				want = fg
			}
			assert.Equal(t, want, pix[y*w+x], "pixel %d,%d", x, y)
		}
	}
}

func TestGlyphPSF2SkipsRowPadding(t *testing.T) {
	f, err := Parse(psf2(t))
	require.NoError(t, err)
	assert.Equal(t, FormatPSF2, f.Format)
	assert.Equal(t, 10, f.Width)

	pix, w, h, err := f.Glyph(1, 7)
	require.NoError(t, err)
	require.Equal(t, 10, w)
	require.Equal(t, 3, h)

	want := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {9, 0}: true, {8, 1}: true}
	for x := 0; x < 10; x++ {
		want[[2]int{x, 2}] = true
	}
	assert.Equal(t, want, lit(pix, w))

	pix, _, _, err = f.Glyph(0, 7)
	require.NoError(t, err)
	assert.Empty(t, lit(pix, w))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("hello world"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Parse(nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Parse([]byte{0x36, 0x04, 0, 8, 1, 2, 3})
	assert.True(t, errors.Is(err, ErrTruncated))

	_, err = Parse([]byte{0x72, 0xb5, 0x4a, 0x86})
	assert.True(t, errors.Is(err, ErrTruncated))

	_, err = Parse([]byte{0x36, 0x04, 0, 0})
	assert.True(t, errors.Is(err, ErrUnknownFormat), "zero height")

	f, err := Parse(psf1(0))
	require.NoError(t, err)
	_, _, _, err = f.Glyph(256, 1)
	assert.True(t, errors.Is(err, ErrGlyphRange))
	_, _, _, err = f.Glyph(-1, 1)
	assert.True(t, errors.Is(err, ErrGlyphRange))
}

func TestIndexFallback(t *testing.T) {
	f, err := Parse(psf1(0))
	require.NoError(t, err)
	assert.Equal(t, int('A'), f.Index('A'))
	assert.Equal(t, int('?'), f.Index('Ж'))
	assert.Equal(t, int('?'), f.Index(-5))
}

func TestRenderPSF(t *testing.T) {
	f, err := Parse(psf1(0))
	require.NoError(t, err)

	fg := render.RGB(0x10, 0x20, 0x30)
	c := Render(f, "AA\nA", fg)
	require.Equal(t, 16, c.Width)
	require.Equal(t, 16, c.Height)

	assert.Equal(t, fg, c.At(3, 0))
	assert.Equal(t, fg, c.At(11, 0))
	assert.Equal(t, fg, c.At(3, 8))
	assert.Equal(t, render.Color(0), c.At(11, 8))
	assert.Equal(t, render.Color(0), c.At(0, 0))
	assert.Equal(t, render.Color(0), c.At(-1, 99))
}

func TestRenderDefault(t *testing.T) {
	c := Render(Default, "Hi", render.RGB(0xFF, 0xFF, 0xFF))
	require.Greater(t, c.Width, 1)
	require.Greater(t, c.Height, 1)
	assert.Len(t, c.Pix, c.Width*c.Height)

	n := 0
	for _, p := range c.Pix {
		if p != 0 {
			n++
		}
	}
	assert.NotZero(t, n)
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetPixel(-1, 0, color.RGBA{R: 1, A: 1})
	c.SetPixel(1, 1, color.RGBA{R: 1, A: 1})
	x, y := c.Size()
	assert.Equal(t, int16(2), x)
	assert.Equal(t, int16(2), y)
	assert.NoError(t, c.Display())
	assert.Equal(t, []render.Color{0, 0, 0, render.RGBA(1, 0, 0, 1)}, c.Pix)
}

func TestMetrics(t *testing.T) {
	f, err := Parse(psf1(0))
	require.NoError(t, err)

	ascent, descent, advance := Metrics(f, "AB")
	assert.Equal(t, 7, ascent)
	assert.Equal(t, 1, descent)
	assert.Equal(t, 16, advance)

	ascent, descent, advance = Metrics(f, "")
	assert.Zero(t, ascent+descent+advance)
}
