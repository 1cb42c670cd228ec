package hal

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"dazzle/render"
)

// Displayer exposes a rectangular region of a Framebuffer as a TinyGo
// drivers.Displayer. It also implements the FillRectangle, SetScroll,
// SetRotation and ScrollUp methods tinyterm looks for.
//
// Coordinates are relative to the region's top-left corner and everything
// outside the region is clipped. SetScroll emulates a hardware scroll
// register: row line of the drawing surface is shown at the top.
type Displayer struct {
	fb     Framebuffer
	region image.Rectangle
	scroll int
}

// NewDisplayer returns a Displayer over region r of fb. An empty r means
// the whole framebuffer.
func NewDisplayer(fb Framebuffer, r image.Rectangle) *Displayer {
	desc := fb.Descriptor()
	full := image.Rect(0, 0, desc.Width, desc.Height)
	if r.Empty() {
		r = full
	}
	return &Displayer{fb: fb, region: r.Intersect(full)}
}

func (d *Displayer) Size() (x, y int16) {
	return int16(d.region.Dx()), int16(d.region.Dy())
}

// row maps a surface row to a framebuffer row.
func (d *Displayer) row(y int) int {
	h := d.region.Dy()
	return d.region.Min.Y + ((y-d.scroll)%h+h)%h
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= d.region.Dx() || int(y) >= d.region.Dy() {
		return
	}
	desc := d.fb.Descriptor()
	desc.SetPixel(d.region.Min.X+int(x), d.row(int(y)), desc.Convert(render.RGBA(c.R, c.G, c.B, c.A)))
}

func (d *Displayer) Display() error {
	return d.fb.Present()
}

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).
		Intersect(image.Rect(0, 0, d.region.Dx(), d.region.Dy()))
	if r.Empty() {
		return nil
	}
	desc := d.fb.Descriptor()
	pattern := d.pattern(&desc, r.Dx(), c)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		desc.DrawSpan(d.region.Min.X+r.Min.X, d.row(py), r.Dx(), pattern)
	}
	return nil
}

// ScrollUp moves the visible content up by lines rows and fills the
// exposed rows with bg.
func (d *Displayer) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	n = min(n, d.region.Dy())

	desc := d.fb.Descriptor()
	bypp := desc.BytesPerPixel()
	row := d.region.Dx() * bypp
	for y := d.region.Min.Y; y < d.region.Max.Y-n; y++ {
		dst := y*desc.Pitch + d.region.Min.X*bypp
		src := dst + n*desc.Pitch
		if src+row > len(desc.Pix) {
			break
		}
		copy(desc.Pix[dst:dst+row], desc.Pix[src:src+row])
	}

	pattern := d.pattern(&desc, d.region.Dx(), bg)
	for y := d.region.Max.Y - n; y < d.region.Max.Y; y++ {
		desc.DrawSpan(d.region.Min.X, y, d.region.Dx(), pattern)
	}
	return nil
}

func (d *Displayer) pattern(desc *render.Framebuffer, width int, c color.RGBA) []byte {
	buf := make([]byte, width*desc.BytesPerPixel())
	desc.FillPattern(buf, desc.Convert(render.RGBA(c.R, c.G, c.B, c.A)))
	return buf
}

// SetScroll makes surface row line the top visible row. The content already
// on screen moves up with it.
func (d *Displayer) SetScroll(line int16) {
	h := d.region.Dy()
	if h == 0 {
		return
	}
	next := (int(line)%h + h) % h
	if delta := (next - d.scroll + h) % h; delta != 0 {
		_ = d.ScrollUp(int16(delta), color.RGBA{A: 0xFF})
	}
	d.scroll = next
}

func (d *Displayer) SetRotation(rotation drivers.Rotation) error {
	return nil
}
