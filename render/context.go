package render

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"
)

// Backend paints elements somewhere. The framebuffer backend is the only
// implementation in this package.
type Backend interface {
	Clear(c Color) error
	Draw(e Element) error
}

// Context binds a Backend, an Allocator and a retained Scene.
type Context struct {
	alloc   Allocator
	backend Backend
	scene   Scene
	log     *slog.Logger
}

// New returns a context driving b.
func New(b Backend, opts ...Option) *Context {
	o := buildOptions(opts)
	return &Context{
		alloc:   o.alloc,
		backend: b,
		log:     o.logger,
	}
}

// NewFramebuffer validates fb, copies it into a new framebuffer backend and
// returns a context bound to it. The caller may reuse its descriptor value
// afterwards; the pixel memory itself is shared.
func NewFramebuffer(fb Framebuffer, opts ...Option) (*Context, error) {
	o := buildOptions(opts)
	b, err := NewFramebufferBackend(fb, o.alloc)
	if err != nil {
		return nil, err
	}
	b.log = o.logger
	o.logger.Debug("framebuffer context",
		"width", fb.Width, "height", fb.Height, "pitch", fb.Pitch, "bpp", fb.BitsPerPixel)
	return &Context{
		alloc:   o.alloc,
		backend: b,
		log:     o.logger,
	}, nil
}

// Allocator returns the context's allocation strategy.
func (c *Context) Allocator() Allocator { return c.alloc }

// Backend returns the active backend, or nil after Close.
func (c *Context) Backend() Backend { return c.backend }

// Scene returns the retained scene.
func (c *Context) Scene() *Scene { return &c.scene }

// Len returns the number of retained elements.
func (c *Context) Len() int { return c.scene.Len() }

// Clear fills the whole target with col. The scene is not touched.
func (c *Context) Clear(col Color) error {
	if c.backend == nil {
		return ErrInvalidBackend
	}
	return c.backend.Clear(col)
}

// Draw paints e once without retaining it.
func (c *Context) Draw(e Element) error {
	if c.backend == nil {
		return ErrInvalidBackend
	}
	return c.backend.Draw(e)
}

// Add appends e to the scene. e must come from one of the context's
// factories and must not be added twice.
func (c *Context) Add(e Element) {
	c.scene.Append(e)
}

// Redraw draws every retained element in the order it was added. A failing
// element does not stop the others; the returned error joins every failure
// and is nil only if all elements were drawn.
func (c *Context) Redraw() error {
	if c.backend == nil {
		return ErrInvalidBackend
	}
	var errs []error
	c.scene.Each(func(i int, e Element) {
		if err := c.backend.Draw(e); err != nil {
			errs = append(errs, fmt.Errorf("element %d (%s): %w", i, e.Kind(), err))
		}
	})
	c.log.Debug("redraw", "elements", c.scene.Len(), "failed", len(errs))
	return errors.Join(errs...)
}

// Close releases the retained elements and the backend state. Any later
// Clear, Draw or Redraw reports ErrInvalidBackend.
func (c *Context) Close() error {
	if c.backend == nil {
		return ErrInvalidBackend
	}
	c.scene.reset(c.alloc)
	var err error
	if cl, ok := c.backend.(interface{ Close() error }); ok {
		err = cl.Close()
	}
	c.backend = nil
	return err
}

// CreateRectangle returns an unattached rectangle element.
func (c *Context) CreateRectangle(x, y, width, height int, filled bool, col Color) (*Rectangle, error) {
	mem, err := c.reserve(unsafe.Sizeof(Rectangle{}))
	if err != nil {
		return nil, err
	}
	return &Rectangle{
		retained: retained{mem: mem},
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Filled:   filled,
		Color:    col,
	}, nil
}

// CreateTriangle returns an unattached triangle element.
func (c *Context) CreateTriangle(x1, y1, x2, y2, x3, y3 int, filled bool, col Color) (*Triangle, error) {
	mem, err := c.reserve(unsafe.Sizeof(Triangle{}))
	if err != nil {
		return nil, err
	}
	return &Triangle{
		retained: retained{mem: mem},
		X1:       x1,
		Y1:       y1,
		X2:       x2,
		Y2:       y2,
		X3:       x3,
		Y3:       y3,
		Filled:   filled,
		Color:    col,
	}, nil
}

// CreateCircle returns an unattached circle element.
func (c *Context) CreateCircle(x, y, radius int, filled bool, col Color) (*Circle, error) {
	mem, err := c.reserve(unsafe.Sizeof(Circle{}))
	if err != nil {
		return nil, err
	}
	return &Circle{
		retained: retained{mem: mem},
		X:        x,
		Y:        y,
		Radius:   radius,
		Filled:   filled,
		Color:    col,
	}, nil
}

// CreateBlit returns an unattached blit element over pixels, which must
// hold at least width*height colors in row-major order. The slice is not
// copied.
func (c *Context) CreateBlit(x, y, width, height int, pixels []Color) (*Blit, error) {
	if width < 0 || height < 0 || len(pixels) < width*height {
		return nil, fmt.Errorf("%w: %dx%d from %d pixels", ErrShortBuffer, width, height, len(pixels))
	}
	mem, err := c.reserve(unsafe.Sizeof(Blit{}))
	if err != nil {
		return nil, err
	}
	return &Blit{
		retained: retained{mem: mem},
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Pixels:   pixels,
	}, nil
}

func (c *Context) reserve(size uintptr) ([]byte, error) {
	mem := c.alloc.Alloc(int(size))
	if mem == nil {
		return nil, fmt.Errorf("element: %w", ErrAllocation)
	}
	return mem, nil
}
