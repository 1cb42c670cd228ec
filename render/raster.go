package render

import "fmt"

// Q16.16 fixed point.
const (
	fixedShift = 16
	fixedOne   = 1 << fixedShift
)

// drawRectangle paints r. Filled rectangles cover rows top..bottom-1: the
// last row is left alone.
func (b *FramebufferBackend) drawRectangle(r *Rectangle) error {
	fb := b.fb
	pattern, err := b.pattern(fb.Convert(r.Color))
	if err != nil {
		return err
	}
	defer b.alloc.Free(pattern)

	top := r.Y
	bottom := r.Y + r.Height - 1
	left := r.X
	right := r.X + r.Width - 1

	if r.Filled {
		for y := top; y < bottom; y++ {
			fb.DrawSpan(left, y, r.Width, pattern)
		}
		return nil
	}

	fb.DrawSpan(left, top, r.Width, pattern)
	fb.DrawSpan(left, bottom, r.Width, pattern)
	for y := top + 1; y < bottom; y++ {
		fb.DrawSpan(left, y, 1, pattern)
		fb.DrawSpan(right, y, 1, pattern)
	}
	return nil
}

// drawTriangle scan-converts t with Q16.16 edge stepping.
//
// The right accumulator is not reset at the middle vertex: the lower half
// continues from wherever the upper half left it.
func (b *FramebufferBackend) drawTriangle(t *Triangle) error {
	x1, y1 := t.X1, t.Y1
	x2, y2 := t.X2, t.Y2
	x3, y3 := t.X3, t.Y3
	if y1 == y3 {
		return ErrDegenerate
	}

	fb := b.fb
	pattern, err := b.pattern(fb.Convert(t.Color))
	if err != nil {
		return err
	}
	defer b.alloc.Free(pattern)

	if y1 > y2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}
	if y1 > y3 {
		x1, x3 = x3, x1
		y1, y3 = y3, y1
	}
	if y2 > y3 {
		x2, x3 = x3, x2
		y2, y3 = y3, y2
	}

	dx12 := slope(x1, y1, x2, y2)
	dx13 := slope(x1, y1, x3, y3)
	dx23 := slope(x2, y2, x3, y3)

	xl := x1 * fixedOne
	xr := (x1 + 1) * fixedOne
	for y := y1; y < y2; y++ {
		b.edgeSpan(y, xl, xr, pattern)
		xl += dx12
		xr += dx13
	}

	xl = x2 * fixedOne
	for y := y2; y < y3; y++ {
		b.edgeSpan(y, xl, xr, pattern)
		xl += dx23
		xr += dx13
	}
	return nil
}

func slope(xa, ya, xb, yb int) int {
	if yb == ya {
		return 0
	}
	return (xb - xa) * fixedOne / (yb - ya)
}

func (b *FramebufferBackend) edgeSpan(y, xl, xr int, pattern []byte) {
	xs := xl / fixedOne
	xe := xr / fixedOne
	if xs > xe {
		xs, xe = xe, xs
	}
	if xs < 0 {
		xs = 0
	}
	if xe >= b.fb.Width {
		xe = b.fb.Width - 1
	}
	b.fb.DrawSpan(xs, y, xe-xs, pattern)
}

// drawCircle is the midpoint circle algorithm.
func (b *FramebufferBackend) drawCircle(c *Circle) error {
	fb := b.fb
	pattern, err := b.pattern(fb.Convert(c.Color))
	if err != nil {
		return err
	}
	defer b.alloc.Free(pattern)

	cx, cy := c.X, c.Y
	x, y := c.Radius, 0
	p := 1 - c.Radius
	for x >= y {
		if c.Filled {
			fb.DrawSpan(cx-x, cy+y, 2*x+1, pattern)
			fb.DrawSpan(cx-x, cy-y, 2*x+1, pattern)
			fb.DrawSpan(cx-y, cy+x, 2*y+1, pattern)
			fb.DrawSpan(cx-y, cy-x, 2*y+1, pattern)
		} else {
			fb.DrawSpan(cx+x, cy+y, 1, pattern)
			fb.DrawSpan(cx-x, cy+y, 1, pattern)
			fb.DrawSpan(cx+x, cy-y, 1, pattern)
			fb.DrawSpan(cx-x, cy-y, 1, pattern)
			fb.DrawSpan(cx+y, cy+x, 1, pattern)
			fb.DrawSpan(cx-y, cy+x, 1, pattern)
			fb.DrawSpan(cx+y, cy-x, 1, pattern)
			fb.DrawSpan(cx-y, cy-x, 1, pattern)
		}

		y++
		if p <= 0 {
			p += 2*y + 1
		} else {
			x--
			p += 2*(y-x) + 1
		}
	}
	return nil
}

// drawBlit converts bl's pixels on first use, then copies rows straight into
// the framebuffer. Rows past the bottom edge are dropped; rows are not
// clamped to the right edge.
func (b *FramebufferBackend) drawBlit(bl *Blit) error {
	fb := b.fb
	bypp := fb.BytesPerPixel()
	if bl.Width <= 0 || bl.Height <= 0 {
		return nil
	}
	row := bl.Width * bypp

	if !bl.translated {
		n := bl.Width * bl.Height
		if len(bl.Pixels) < n {
			return fmt.Errorf("%w: %dx%d from %d pixels", ErrShortBuffer, bl.Width, bl.Height, len(bl.Pixels))
		}
		native := b.alloc.Alloc(n * bypp)
		if native == nil {
			return fmt.Errorf("blit translation: %w", ErrAllocation)
		}
		for i, c := range bl.Pixels[:n] {
			putNative(native[i*bypp:], fb.Convert(c), bypp)
		}
		bl.native = native
		bl.translated = true
		b.log.Debug("blit translated", "width", bl.Width, "height", bl.Height, "bytes", len(native))
	}
	if len(bl.native) < row*bl.Height {
		return fmt.Errorf("%w: translated %d bytes for %dx%d", ErrShortBuffer, len(bl.native), bl.Width, bl.Height)
	}

	if bl.X < 0 || bl.X >= fb.Width {
		return nil
	}
	for i := 0; i < bl.Height; i++ {
		y := bl.Y + i
		if y < 0 {
			continue
		}
		if y >= fb.Height {
			break
		}
		off := y*fb.Pitch + bl.X*bypp
		if off >= len(fb.Pix) {
			break
		}
		copy(fb.Pix[off:], bl.native[i*row:(i+1)*row])
	}
	return nil
}
