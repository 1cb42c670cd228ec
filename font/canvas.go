package font

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"dazzle/render"
)

// Default is the built-in font used when no PSF file is configured.
var Default = &proggy.TinySZ8pt7b

// Canvas is an in-memory drivers.Displayer whose pixels can be handed to
// render.Context.CreateBlit.
type Canvas struct {
	Width, Height int
	Pix           []render.Color
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pix:    make([]render.Color, width*height),
	}
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.Width), int16(c.Height)
}

// SetPixel stores col at (x, y). Points outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || int(x) >= c.Width || int(y) >= c.Height {
		return
	}
	c.Pix[int(y)*c.Width+int(x)] = render.RGBA(col.R, col.G, col.B, col.A)
}

func (c *Canvas) Display() error { return nil }

// At returns the color at (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) render.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.Pix[y*c.Width+x]
}

// Metrics returns how far the glyphs of s reach above and below the
// baseline, and the summed x advance.
func Metrics(f tinyfont.Fonter, s string) (ascent, descent, advance int) {
	for _, r := range s {
		info := f.GetGlyph(r).Info()
		advance += int(info.XAdvance)
		ascent = max(ascent, -int(info.YOffset))
		descent = max(descent, int(info.YOffset)+int(info.Height))
	}
	return ascent, descent, advance
}

// Render draws s with f onto a canvas just large enough to hold it. Lines
// are split on '\n' and stacked by the font's y advance. Unlit pixels are 0.
func Render(f tinyfont.Fonter, s string, fg render.Color) *Canvas {
	lines := strings.Split(s, "\n")

	var width, ascent, descent int
	for _, line := range lines {
		a, d, w := Metrics(f, line)
		ascent = max(ascent, a)
		descent = max(descent, d)
		width = max(width, w)
	}
	yAdvance := int(f.GetYAdvance())
	height := (len(lines)-1)*yAdvance + ascent + descent

	c := NewCanvas(max(width, 1), max(height, 1))
	col := color.RGBA{R: fg.R(), G: fg.G(), B: fg.B(), A: fg.A()}
	for i, line := range lines {
		tinyfont.WriteLine(c, f, 0, int16(ascent+i*yAdvance), line, col)
	}
	return c
}
