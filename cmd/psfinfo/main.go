// Command psfinfo describes a PC Screen Font and can dump glyphs as ASCII
// art or render the whole glyph table to a PNG sheet.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"dazzle/font"
	"dazzle/hal"
	"dazzle/render"
)

func main() {
	var (
		glyph   = flag.Int("glyph", -1, "Dump glyph N as ASCII art.")
		char    = flag.String("char", "", "Dump the glyph for the first rune of this string.")
		sheet   = flag.String("sheet", "", "Write every glyph to this PNG file.")
		columns = flag.Int("columns", 32, "Glyphs per row in the sheet.")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fatalf("usage: psfinfo [-glyph N | -char C] [-sheet out.png [-columns 32]] font.psf")
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	f, err := font.Load(in)
	in.Close()
	if err != nil {
		fatalf("%s: %v", flag.Arg(0), err)
	}

	describe(os.Stdout, flag.Arg(0), f)

	if *char != "" {
		*glyph = f.Index([]rune(*char)[0])
	}
	if *glyph >= 0 {
		if err := dump(os.Stdout, f, *glyph); err != nil {
			fatalf("glyph: %v", err)
		}
	}

	if *sheet != "" {
		if err := writeSheet(*sheet, f, *columns); err != nil {
			fatalf("sheet: %v", err)
		}
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func describe(w io.Writer, name string, f *font.Font) {
	fmt.Fprintf(w, "====== Font %s ======\n", name)
	fmt.Fprintf(w, "Font type: %s\n", strings.ToUpper(f.Format.String()))
	fmt.Fprintf(w, "Glyph count: %d\n", f.GlyphCount)
	fmt.Fprintf(w, "Suggested width: %d\n", f.Width)
	fmt.Fprintf(w, "Suggested height: %d\n", f.Height)
	fmt.Fprintf(w, "Bytes per glyph: %d\n", f.BytesPerGlyph)
}

func dump(w io.Writer, f *font.Font, index int) error {
	pix, gw, gh, err := f.Glyph(index, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "glyph %d (%dx%d):\n", index, gw, gh)
	var b strings.Builder
	for y := 0; y < gh; y++ {
		b.Reset()
		for x := 0; x < gw; x++ {
			if pix[y*gw+x] != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		fmt.Fprintln(w, b.String())
	}
	return nil
}

// renderSheet blits every glyph, white on black, into an RGBA image with
// the given number of glyphs per row.
func renderSheet(f *font.Font, columns int) (*image.RGBA, error) {
	columns = max(min(columns, f.GlyphCount), 1)
	rows := (f.GlyphCount + columns - 1) / columns
	fb := hal.NewMemoryFramebuffer(columns*f.Width, rows*f.Height, hal.PixelFormatABGR8888)

	ctx, err := render.NewFramebuffer(fb.Descriptor())
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	if err := ctx.Clear(render.RGB(0, 0, 0)); err != nil {
		return nil, err
	}
	for i := 0; i < f.GlyphCount; i++ {
		pix, gw, gh, err := f.Glyph(i, render.RGB(0xFF, 0xFF, 0xFF))
		if err != nil {
			return nil, err
		}
		for j, c := range pix {
			if c == 0 {
				pix[j] = render.RGB(0, 0, 0)
			}
		}
		b, err := ctx.CreateBlit((i%columns)*gw, (i/columns)*gh, gw, gh, pix)
		if err != nil {
			return nil, err
		}
		if err := ctx.Draw(b); err != nil {
			return nil, err
		}
	}

	desc := fb.Descriptor()
	return &image.RGBA{
		Pix:    desc.Pix,
		Stride: desc.Pitch,
		Rect:   image.Rect(0, 0, desc.Width, desc.Height),
	}, nil
}

func writeSheet(path string, f *font.Font, columns int) error {
	img, err := renderSheet(f, columns)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
