package hal

import (
	"sync"

	"dazzle/render"
)

// MemoryFramebuffer is a heap-backed Framebuffer. The window runner reads it
// back on every frame; headless runs just count presents.
type MemoryFramebuffer struct {
	mu       sync.Mutex
	desc     render.Framebuffer
	presents uint64
}

// NewMemoryFramebuffer returns a tightly packed width x height framebuffer
// in the given format. A zero format means PixelFormatRGBA8888.
func NewMemoryFramebuffer(width, height int, format PixelFormat) *MemoryFramebuffer {
	desc := render.Framebuffer{
		Width:  width,
		Height: height,
	}
	format.Apply(&desc)
	desc.Pitch = width * desc.BytesPerPixel()
	desc.Pix = make([]byte, desc.Pitch*height)
	return &MemoryFramebuffer{desc: desc}
}

func (f *MemoryFramebuffer) Descriptor() render.Framebuffer { return f.desc }

func (f *MemoryFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	return nil
}

// Presents reports how many frames have been presented.
func (f *MemoryFramebuffer) Presents() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

func (f *MemoryFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	decodeRGBA(&f.desc, dst)
}
