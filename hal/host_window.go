//go:build cgo

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"dazzle/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the framebuffer and
// forwards keyboard input. It blocks until the window closes or a step
// returns ErrQuit.
func RunWindow(cfg Config, newApp func(HAL) (func() error, error)) error {
	cfg.FBDev = ""
	cfg.setDefaults()

	hh, err := New(cfg)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()

	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("dazzle (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.Hz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.advance()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	desc := g.h.mem.Descriptor()
	if g.img == nil || g.img.Bounds().Dx() != desc.Width || g.img.Bounds().Dy() != desc.Height {
		g.img = image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(desc.Width, desc.Height)
	}

	g.h.mem.snapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	desc := g.h.mem.Descriptor()
	return desc.Width, desc.Height
}
