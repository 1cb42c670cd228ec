package app

import (
	"fmt"
	"image"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"dazzle/font"
	"dazzle/hal"
)

// guard runs step and turns a panic into a white screen listing the panic
// value and stack, followed by an error for the run loop.
func guard(d *demo, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := debug.Stack()
			if l := d.h.Logger(); l != nil {
				l.WriteLineString(fmt.Sprintf("dazzle panic: %v", v))
				for _, line := range strings.Split(string(stack), "\n") {
					if line != "" {
						l.WriteLineString(line)
					}
				}
			}
			drawPanic(d.fb, d.cfg.Font, v, stack)
			err = fmt.Errorf("panic: %v", v)
		}()
		return step()
	}
}

func drawPanic(fb hal.Framebuffer, f tinyfont.Fonter, v any, stack []byte) {
	disp := hal.NewDisplayer(fb, image.Rectangle{})
	maxW, maxH := disp.Size()
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	_ = disp.FillRectangle(0, 0, maxW, maxH, white)

	if f == nil {
		f = font.Default
	}
	ascent, descent, fontWidth := font.Metrics(f, "0")
	fontHeight := int16(max(int(f.GetYAdvance()), ascent+descent))
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = fb.Present()
		return
	}

	lines := []string{"dazzle panic:", fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	black := color.RGBA{A: 0xFF}
	cols := max(int(maxW)/fontWidth, 1)
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(disp, f, 0, y+int16(ascent), chunk, black)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// takeRunes splits s after its first n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
