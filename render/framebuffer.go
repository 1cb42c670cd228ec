package render

import "fmt"

// Channel places one 8-bit color channel inside a native pixel: the channel
// byte is ANDed with Mask and shifted left by Shift. Masks are bit filters,
// not widths; no rescaling is done.
type Channel struct {
	Mask  uint8
	Shift uint8
}

// Framebuffer describes a packed-pixel linear framebuffer.
//
// Native pixels are stored little-endian, BitsPerPixel/8 bytes each, rows
// Pitch bytes apart. The renderer never allocates or maps Pix.
type Framebuffer struct {
	Pix          []byte
	Width        int
	Height       int
	Pitch        int // bytes per row, may exceed Width*BitsPerPixel/8
	BitsPerPixel int

	Red   Channel
	Green Channel
	Blue  Channel
	Alpha Channel
}

// BytesPerPixel returns BitsPerPixel/8.
func (fb *Framebuffer) BytesPerPixel() int { return fb.BitsPerPixel / 8 }

// Validate checks the descriptor invariants.
func (fb *Framebuffer) Validate() error {
	switch fb.BitsPerPixel {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: unsupported bits per pixel %d", ErrInvalidDescriptor, fb.BitsPerPixel)
	}
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDescriptor, fb.Width, fb.Height)
	}
	row := fb.Width * fb.BytesPerPixel()
	if fb.Pitch < row {
		return fmt.Errorf("%w: pitch %d < %d", ErrInvalidDescriptor, fb.Pitch, row)
	}
	if need := fb.Pitch*(fb.Height-1) + row; len(fb.Pix) < need {
		return fmt.Errorf("%w: buffer holds %d bytes, need %d", ErrInvalidDescriptor, len(fb.Pix), need)
	}
	return nil
}

// Convert maps a packed color to the native pixel value of fb.
func (fb *Framebuffer) Convert(c Color) uint32 {
	var v uint32
	v |= uint32(c.R()&fb.Red.Mask) << fb.Red.Shift
	v |= uint32(c.G()&fb.Green.Mask) << fb.Green.Shift
	v |= uint32(c.B()&fb.Blue.Mask) << fb.Blue.Shift
	v |= uint32(c.A()&fb.Alpha.Mask) << fb.Alpha.Shift
	return v
}

// Decode is the inverse of Convert for channels whose masked bits survive
// the shift. Bits removed by a mask stay zero.
func (fb *Framebuffer) Decode(native uint32) Color {
	ch := func(c Channel) uint8 { return uint8(native>>c.Shift) & c.Mask }
	return RGBA(ch(fb.Red), ch(fb.Green), ch(fb.Blue), ch(fb.Alpha))
}

// DrawSpan copies width native pixels from pattern into row y starting at
// column x.
//
// Origins outside the framebuffer are dropped. The right edge is not clamped
// to the row: a wide span continues through the pitch gap into the next row.
// The copy stops at the end of Pix or pattern, whichever comes first.
func (fb *Framebuffer) DrawSpan(x, y, width int, pattern []byte) {
	if pattern == nil || width <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	bypp := fb.BytesPerPixel()
	off := y*fb.Pitch + x*bypp
	if off >= len(fb.Pix) {
		return
	}
	n := width * bypp
	if n > len(pattern) {
		n = len(pattern)
	}
	copy(fb.Pix[off:], pattern[:n])
}

// Pixel returns the native pixel at (x, y), or 0 outside the framebuffer.
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0
	}
	bypp := fb.BytesPerPixel()
	off := y*fb.Pitch + x*bypp
	if off+bypp > len(fb.Pix) {
		return 0
	}
	return getNative(fb.Pix[off:], bypp)
}

// SetPixel writes one native pixel with the same bounds policy as DrawSpan.
func (fb *Framebuffer) SetPixel(x, y int, native uint32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	bypp := fb.BytesPerPixel()
	off := y*fb.Pitch + x*bypp
	if off+bypp > len(fb.Pix) {
		return
	}
	putNative(fb.Pix[off:], native, bypp)
}

// FillPattern repeats native across dst, one pixel every BytesPerPixel bytes.
// A trailing partial pixel is left untouched.
func (fb *Framebuffer) FillPattern(dst []byte, native uint32) {
	bypp := fb.BytesPerPixel()
	if bypp <= 0 {
		return
	}
	for i := 0; i+bypp <= len(dst); i += bypp {
		putNative(dst[i:], native, bypp)
	}
}

func putNative(dst []byte, v uint32, bypp int) {
	for i := 0; i < bypp; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func getNative(src []byte, bypp int) uint32 {
	var v uint32
	for i := 0; i < bypp; i++ {
		v |= uint32(src[i]) << (8 * i)
	}
	return v
}
