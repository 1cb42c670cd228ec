// Package app is the dazzle demo: a retained scene redrawn every frame over
// a hue-cycling background, with optional console and glyph sheet modes.
package app

import (
	"errors"
	"image"
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"tinygo.org/x/tinyfont"

	"dazzle/asset"
	"dazzle/font"
	"dazzle/hal"
	"dazzle/render"
)

type Config struct {
	// Font draws the caption and the console. Nil means font.Default.
	Font tinyfont.Fonter
	// Text is the caption rendered into the scene.
	Text string
	// Image, when set, is blitted into the scene.
	Image *asset.Image

	// Console reserves the bottom third of the screen for a terminal that
	// shows the log stream. It uses Font only if that is a *tinyfont.Font.
	Console bool
	// Sheet replaces the demo scene with every glyph of Font, which must
	// then be a *font.Font.
	Sheet bool

	// MemoryLimit caps the renderer's allocations in bytes. Zero means the
	// Go heap without a limit.
	MemoryLimit int

	// Logger overrides the HAL-backed logger.
	Logger *slog.Logger
	// Level filters the HAL-backed logger. Nil means info.
	Level slog.Leveler
}

const (
	hueStep       = 0.5
	moveStep      = 4
	consoleFactor = 3
)

var errConsoleTooSmall = errors.New("screen too small for the console")

type demo struct {
	h   hal.HAL
	fb  hal.Framebuffer
	ctx *render.Context
	log *slog.Logger
	mem *render.Budget

	cfg  Config
	size image.Point

	hue    float64
	paused bool
	circle *render.Circle
	stats  frameStats
}

// New builds the demo on h's framebuffer and returns its per-frame step.
// The step returns hal.ErrQuit when the user asks to leave.
func New(h hal.HAL, cfg Config) (func() error, error) {
	d, err := newDemo(h, cfg)
	if err != nil {
		return nil, err
	}
	return guard(d, d.step), nil
}

func newDemo(h hal.HAL, cfg Config) (*demo, error) {
	if cfg.Font == nil {
		cfg.Font = font.Default
	}
	d := &demo{h: h, fb: h.Display().Framebuffer(), cfg: cfg}

	desc := d.fb.Descriptor()
	sceneDesc := desc
	var term *console
	if cfg.Console {
		cf, ok := cfg.Font.(*tinyfont.Font)
		if !ok {
			cf = font.Default
		}
		lh, off, r, ok := consoleLayout(cf, desc.Width, desc.Height)
		if !ok {
			return nil, errConsoleTooSmall
		}
		sceneDesc.Height = r.Min.Y
		sceneDesc.Pix = desc.Pix[:desc.Pitch*r.Min.Y]
		term = newConsole(hal.NewDisplayer(d.fb, r), cf, lh, off)
	}
	d.size = image.Pt(sceneDesc.Width, sceneDesc.Height)

	d.log = cfg.Logger
	if d.log == nil {
		sink := h.Logger()
		if term != nil {
			sink = hal.Tee(sink, term)
		}
		d.log = slog.New(hal.NewSlogHandler(sink, &slog.HandlerOptions{Level: cfg.Level}))
	}

	opts := []render.Option{render.WithLogger(d.log)}
	if cfg.MemoryLimit > 0 {
		d.mem = render.NewBudget(cfg.MemoryLimit)
		opts = append(opts, render.WithAllocator(d.mem))
	}
	ctx, err := render.NewFramebuffer(sceneDesc, opts...)
	if err != nil {
		return nil, err
	}
	d.ctx = ctx

	if cfg.Sheet {
		err = d.buildSheet()
	} else {
		err = d.buildScene()
	}
	if err != nil {
		ctx.Close()
		return nil, err
	}

	d.log.Info("dazzle ready",
		"width", desc.Width, "height", desc.Height, "bpp", desc.BitsPerPixel,
		"elements", ctx.Len(), "console", cfg.Console, "sheet", cfg.Sheet)
	return d, nil
}

func (d *demo) step() error {
	if err := d.input(); err != nil {
		return err
	}
	if dt := d.elapsed(); dt > 0 {
		if s, ok := d.stats.observe(dt); ok {
			d.log.Info("sample", "n", s.n, "fps", round2(s.fps), "frametime", s.frame)
		}
	}

	if !d.paused {
		d.hue = math.Mod(d.hue+hueStep, 360)
	}
	bg := render.FromColorful(colorful.Hsv(d.hue, 0.6, 0.35), 0xFF)
	if err := d.ctx.Clear(bg); err != nil {
		return err
	}
	if err := d.ctx.Redraw(); err != nil {
		return err
	}
	return d.fb.Present()
}

// input applies pending key events.
func (d *demo) input() error {
	in := d.h.Input()
	if in == nil || in.Keyboard() == nil {
		return nil
	}
	events := in.Keyboard().Events()
	for {
		select {
		case ev := <-events:
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyEscape:
				d.logSummary()
				return hal.ErrQuit
			case hal.KeyEnter:
				d.paused = !d.paused
			case hal.KeyTab:
				if d.circle != nil {
					d.circle.Filled = !d.circle.Filled
				}
			case hal.KeyF1:
				d.logSummary()
			case hal.KeyUp:
				d.move(0, -moveStep)
			case hal.KeyDown:
				d.move(0, moveStep)
			case hal.KeyLeft:
				d.move(-moveStep, 0)
			case hal.KeyRight:
				d.move(moveStep, 0)
			}
		default:
			return nil
		}
	}
}

func (d *demo) move(dx, dy int) {
	if d.circle == nil {
		return
	}
	d.circle.X += dx
	d.circle.Y += dy
}

// elapsed drains the HAL tick stream and returns the time it covers.
func (d *demo) elapsed() (dt float64) {
	t := d.h.Time()
	if t == nil || t.Ticks() == nil {
		return 0
	}
	var n int
	for {
		select {
		case <-t.Ticks():
			n++
		default:
			return float64(n) / 1000
		}
	}
}

func (d *demo) logSummary() {
	sum := d.stats.summary()
	attrs := []any{
		"seconds", sum.seconds,
		"avg_fps", round2(sum.avgFPS),
		"min_fps", round2(sum.minFPS),
		"max_fps", round2(sum.maxFPS),
		"avg_frametime", sum.avgFrame,
		"min_frametime", sum.minFrame,
		"max_frametime", sum.maxFrame,
		"score", round2(sum.score),
	}
	if d.mem != nil {
		attrs = append(attrs, "mem_peak", d.mem.Peak(), "mem_failures", d.mem.Failures())
	}
	d.log.Info("final results", attrs...)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
