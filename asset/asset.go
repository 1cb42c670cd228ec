// Package asset turns image files into pixel blocks for render blits.
package asset

import (
	"fmt"
	"image"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"dazzle/render"
)

// Image is a decoded picture packed row-major as render colors.
type Image struct {
	Width, Height int
	Pix           []render.Color
}

// Decode reads a PNG or BMP image from r. If the picture is larger than
// maxW x maxH it is scaled down to fit, keeping its aspect ratio. A
// non-positive bound is treated as unlimited.
func Decode(r io.Reader, maxW, maxH int) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxW, maxH)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode image: empty %s", format)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return FromNRGBA(dst), nil
}

// FromNRGBA packs m into an Image.
func FromNRGBA(m *image.NRGBA) *Image {
	b := m.Bounds()
	img := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]render.Color, b.Dx()*b.Dy()),
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			p := m.Pix[i : i+4 : i+4]
			img.Pix[y*img.Width+x] = render.RGBA(p[0], p[1], p[2], p[3])
		}
	}
	return img
}

func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW > 0 && w > maxW {
		h = max(h*maxW/w, 1)
		w = maxW
	}
	if maxH > 0 && h > maxH {
		w = max(w*maxH/h, 1)
		h = maxH
	}
	return w, h
}
