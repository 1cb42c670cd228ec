package app

import (
	"image"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"

	"dazzle/font"
	"dazzle/hal"
)

// console is a hal.Logger that prints each line on a tinyterm terminal.
type console struct {
	t *tinyterm.Terminal
}

// consoleLayout returns the font height, baseline offset and the bottom
// region of fb that holds whole console lines. ok is false when not even
// one line fits.
func consoleLayout(f *tinyfont.Font, width, height int) (lineHeight, offset int, r image.Rectangle, ok bool) {
	ascent, descent, _ := font.Metrics(f, "Mg|_")
	lineHeight = max(int(f.GetYAdvance()), ascent+descent, 1)
	rows := height / consoleFactor / lineHeight
	if rows == 0 {
		return 0, 0, image.Rectangle{}, false
	}
	return lineHeight, ascent, image.Rect(0, height-rows*lineHeight, width, height), true
}

func newConsole(d *hal.Displayer, f *tinyfont.Font, lineHeight, offset int) *console {
	t := tinyterm.NewTerminal(d)
	t.Configure(&tinyterm.Config{
		Font:       f,
		FontHeight: int16(lineHeight),
		FontOffset: int16(offset),
	})
	return &console{t: t}
}

func (c *console) WriteLineString(s string) {
	c.WriteLineBytes([]byte(s))
}

func (c *console) WriteLineBytes(b []byte) {
	_, _ = c.t.Write(b)
	_, _ = c.t.Write([]byte{'\n'})
}
