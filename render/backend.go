package render

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// FramebufferBackend paints into a Framebuffer.
type FramebufferBackend struct {
	fb    *Framebuffer
	state []byte
	alloc Allocator
	log   *slog.Logger
}

// NewFramebufferBackend validates fb and keeps a private copy of the
// descriptor. A nil allocator means HeapAllocator.
func NewFramebufferBackend(fb Framebuffer, a Allocator) (*FramebufferBackend, error) {
	if a == nil {
		a = HeapAllocator
	}
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	state := a.Alloc(int(unsafe.Sizeof(fb)))
	if state == nil {
		return nil, fmt.Errorf("backend state: %w", ErrAllocation)
	}
	desc := fb
	return &FramebufferBackend{
		fb:    &desc,
		state: state,
		alloc: a,
		log:   newNopLogger(),
	}, nil
}

// Descriptor returns a copy of the backend's framebuffer descriptor. ok is
// false once the backend is closed.
func (b *FramebufferBackend) Descriptor() (fb Framebuffer, ok bool) {
	if b == nil || b.fb == nil {
		return Framebuffer{}, false
	}
	return *b.fb, true
}

// Close drops the descriptor and returns the backend state to the allocator.
func (b *FramebufferBackend) Close() error {
	if b == nil || b.fb == nil {
		return ErrInvalidBackend
	}
	b.alloc.Free(b.state)
	b.state = nil
	b.fb = nil
	return nil
}

// Clear fills every row of the framebuffer with c.
func (b *FramebufferBackend) Clear(c Color) error {
	if b == nil || b.fb == nil {
		return ErrInvalidBackend
	}
	fb := b.fb
	pattern, err := b.pattern(fb.Convert(c))
	if err != nil {
		return err
	}
	defer b.alloc.Free(pattern)

	for y := 0; y < fb.Height; y++ {
		fb.DrawSpan(0, y, fb.Width, pattern)
	}
	return nil
}

// Draw paints one element.
func (b *FramebufferBackend) Draw(e Element) error {
	if b == nil || b.fb == nil {
		return ErrInvalidBackend
	}
	switch e := e.(type) {
	case *Rectangle:
		return b.drawRectangle(e)
	case *Triangle:
		return b.drawTriangle(e)
	case *Circle:
		return b.drawCircle(e)
	case *Blit:
		return b.drawBlit(e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownElement, e)
	}
}

// pattern returns a framebuffer-wide row of native pixels from the
// allocator. The caller frees it.
func (b *FramebufferBackend) pattern(native uint32) ([]byte, error) {
	buf := b.alloc.Alloc(b.fb.Width * b.fb.BytesPerPixel())
	if buf == nil {
		return nil, fmt.Errorf("pattern row: %w", ErrAllocation)
	}
	b.fb.FillPattern(buf, native)
	return buf, nil
}
