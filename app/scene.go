package app

import (
	"errors"
	"fmt"

	"dazzle/font"
	"dazzle/render"
)

const gradientSize = 100

var errNoSheetFont = errors.New("glyph sheet needs a PSF font")

// gradient returns the classic i*j*0xff test pattern.
func gradient(w, h int) []render.Color {
	pix := make([]render.Color, w*h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			pix[i*w+j] = render.Color(i * j * 0xff)
		}
	}
	return pix
}

// buildScene lays the demo elements out relative to the scene size.
func (d *demo) buildScene() error {
	w, h := d.size.X, d.size.Y
	ctx := d.ctx
	add := func(e render.Element, err error) error {
		if err != nil {
			return err
		}
		ctx.Add(e)
		return nil
	}

	g := min(gradientSize, w/3, h/3)
	if err := add(ctx.CreateBlit(8, 8, g, g, gradient(g, g))); err != nil {
		return fmt.Errorf("gradient: %w", err)
	}

	if err := add(ctx.CreateRectangle(w/2-4, 4, w/4+8, h/6+8, false, render.RGB(0xFF, 0xFF, 0xFF))); err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	if err := add(ctx.CreateRectangle(w/2, 8, w/4, h/6, true, render.RGB(0xE0, 0x40, 0x40))); err != nil {
		return fmt.Errorf("box: %w", err)
	}

	if err := add(ctx.CreateTriangle(8, h-8, w/4, h/2, w/2, h-16, true, render.RGB(0x40, 0xC0, 0x60))); err != nil {
		return fmt.Errorf("triangle: %w", err)
	}

	r := max(min(w, h)/8, 1)
	if err := add(ctx.CreateCircle(3*w/4, 3*h/4, r+6, false, render.RGB(0xFF, 0xFF, 0xFF))); err != nil {
		return fmt.Errorf("ring: %w", err)
	}
	c, err := ctx.CreateCircle(3*w/4, 3*h/4, r, true, render.RGB(0x40, 0x80, 0xFF))
	if err := add(c, err); err != nil {
		return fmt.Errorf("disc: %w", err)
	}
	d.circle = c

	if d.cfg.Text != "" {
		text := font.Render(d.cfg.Font, d.cfg.Text, render.RGB(0xFF, 0xFF, 0xFF))
		if err := add(ctx.CreateBlit(w/2, h/3, text.Width, text.Height, text.Pix)); err != nil {
			return fmt.Errorf("caption: %w", err)
		}
	}

	if img := d.cfg.Image; img != nil {
		if err := add(ctx.CreateBlit(8, h/3+8, img.Width, img.Height, img.Pix)); err != nil {
			return fmt.Errorf("image: %w", err)
		}
	}
	return nil
}

// buildSheet lays out every glyph of the configured PSF font left to right,
// wrapping when the next glyph would not fit.
func (d *demo) buildSheet() error {
	f, ok := d.cfg.Font.(*font.Font)
	if !ok {
		return errNoSheetFont
	}
	w, h := d.size.X, d.size.Y
	fg := render.Color(0x000000FF)

	x, y := 0, 0
	for i := 0; i < f.GlyphCount && y < h; i++ {
		pix, gw, gh, err := f.Glyph(i, fg)
		if err != nil {
			return err
		}
		b, err := d.ctx.CreateBlit(x, y, gw, gh, pix)
		if err != nil {
			return fmt.Errorf("glyph %d: %w", i, err)
		}
		d.ctx.Add(b)

		x += gw
		if x >= w-gw {
			x = 0
			y += gh
		}
	}
	return nil
}
