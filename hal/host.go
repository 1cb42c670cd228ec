package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Config selects the host display and the run loop pacing.
type Config struct {
	Width  int
	Height int
	Format PixelFormat

	// FBDev, when set, names a Linux framebuffer device that replaces the
	// in-memory framebuffer. Width, Height and Format are then taken from
	// the device.
	FBDev string

	Hz    int
	Ticks uint64
	Scale int

	// Log receives the HAL's log lines. Defaults to os.Stdout.
	Log io.Writer
}

func (c *Config) setDefaults() {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Format == 0 {
		c.Format = PixelFormatRGBA8888
	}
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Log == nil {
		c.Log = os.Stdout
	}
}

type hostHAL struct {
	logger *hostLogger
	fb     Framebuffer
	mem    *MemoryFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation. Close it with io.Closer when done.
func New(cfg Config) (HAL, error) {
	cfg.setDefaults()
	h := &hostHAL{
		logger: &hostLogger{w: cfg.Log},
		kbd:    newHostKeyboard(),
		t:      newHostTime(nil),
	}
	if cfg.FBDev != "" {
		dev, err := OpenFBDev(cfg.FBDev)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.FBDev, err)
		}
		h.fb = dev
		desc := dev.Descriptor()
		h.logger.WriteLineString(fmt.Sprintf("fbdev: %s %dx%d %dbpp pitch %d",
			cfg.FBDev, desc.Width, desc.Height, desc.BitsPerPixel, desc.Pitch))
	} else {
		h.mem = NewMemoryFramebuffer(cfg.Width, cfg.Height, cfg.Format)
		h.fb = h.mem
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

// Close releases the framebuffer device, if any.
func (h *hostHAL) Close() error {
	if c, ok := h.fb.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type hostDisplay struct {
	fb Framebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
