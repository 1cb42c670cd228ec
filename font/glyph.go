package font

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/32bitkid/bitreader"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"dazzle/render"
)

// Glyph unpacks glyph index into a Width x Height block of colors. Set bits
// become fg, clear bits 0.
func (f *Font) Glyph(index int, fg render.Color) (pix []render.Color, w, h int, err error) {
	pix = make([]render.Color, f.Width*f.Height)
	err = f.walk(index, func(x, y int) {
		pix[y*f.Width+x] = fg
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return pix, f.Width, f.Height, nil
}

// walk calls set for every lit pixel of glyph index.
func (f *Font) walk(index int, set func(x, y int)) error {
	if index < 0 || index >= f.GlyphCount {
		return fmt.Errorf("%w: %d of %d", ErrGlyphRange, index, f.GlyphCount)
	}
	src := f.data[index*f.BytesPerGlyph : (index+1)*f.BytesPerGlyph]
	br := bitreader.NewReader(bytes.NewReader(src))
	pad := uint(f.rowBytes()*8 - f.Width)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			bit, err := br.Read1()
			if err != nil {
				return err
			}
			if bit {
				set(x, y)
			}
		}
		if pad > 0 {
			if _, err := br.Read8(pad); err != nil {
				return err
			}
		}
	}
	return nil
}

// Index maps r to a glyph index. Runes outside the table fall back to '?',
// then to glyph 0.
func (f *Font) Index(r rune) int {
	if r >= 0 && int(r) < f.GlyphCount {
		return int(r)
	}
	if int('?') < f.GlyphCount {
		return '?'
	}
	return 0
}

// GetGlyph implements tinyfont.Fonter. The returned glyph is reused by the
// next call, so a Font must not be shared between goroutines.
func (f *Font) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

// GetYAdvance implements tinyfont.Fonter.
func (f *Font) GetYAdvance() uint8 { return uint8(f.Height) }

type glyph struct {
	f *Font
	r rune
}

// Draw paints the glyph with its top row Height-1 pixels above the baseline y.
func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	top := y - int16(g.f.Height-1)
	_ = g.f.walk(g.f.Index(g.r), func(px, py int) {
		display.SetPixel(x+int16(px), top+int16(py), c)
	})
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    uint8(g.f.Width),
		Height:   uint8(g.f.Height),
		XAdvance: uint8(g.f.Width),
		XOffset:  0,
		YOffset:  -int8(g.f.Height - 1),
	}
}
