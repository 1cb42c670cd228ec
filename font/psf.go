// Package font loads PC Screen Font (PSF1 and PSF2) bitmap fonts and turns
// text into pixel blocks the renderer can blit.
package font

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnknownFormat = errors.New("font: unknown format")
	ErrTruncated     = errors.New("font: truncated data")
	ErrGlyphRange    = errors.New("font: glyph index out of range")
)

// Format is the container a font was loaded from.
type Format uint8

const (
	FormatInvalid Format = iota
	FormatPSF1
	FormatPSF2
)

func (f Format) String() string {
	switch f {
	case FormatPSF1:
		return "psf1"
	case FormatPSF2:
		return "psf2"
	default:
		return "invalid"
	}
}

const (
	psf1Magic      = 0x0436
	psf1Mode512    = 0x01
	psf1HeaderSize = 4

	psf2Magic      = 0x864ab572
	psf2HeaderSize = 32
)

type psf1Header struct {
	Magic    uint16
	Mode     uint8
	CharSize uint8
}

type psf2Header struct {
	Magic         uint32
	Version       uint32
	HeaderSize    uint32
	Flags         uint32
	GlyphCount    uint32
	BytesPerGlyph uint32
	Height        uint32
	Width         uint32
}

// Font is a loaded bitmap font. Glyph rows are stored MSB first and padded to
// whole bytes.
type Font struct {
	Format        Format
	GlyphCount    int
	Width         int
	Height        int
	BytesPerGlyph int

	data []byte
	g    glyph
}

// Load reads a whole PSF file from r.
func Load(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a PSF1 or PSF2 font. The glyph table is copied, so data may
// be reused by the caller.
func Parse(data []byte) (*Font, error) {
	var (
		f      Font
		offset int
	)
	switch {
	case len(data) >= 2 && binary.LittleEndian.Uint16(data) == psf1Magic:
		var h psf1Header
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
			return nil, fmt.Errorf("%w: psf1 header", ErrTruncated)
		}
		f.Format = FormatPSF1
		f.GlyphCount = 256
		if h.Mode&psf1Mode512 != 0 {
			f.GlyphCount = 512
		}
		f.Width = 8
		f.Height = int(h.CharSize)
		f.BytesPerGlyph = int(h.CharSize)
		offset = psf1HeaderSize

	case len(data) >= 4 && binary.LittleEndian.Uint32(data) == psf2Magic:
		var h psf2Header
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
			return nil, fmt.Errorf("%w: psf2 header", ErrTruncated)
		}
		f.Format = FormatPSF2
		f.GlyphCount = int(h.GlyphCount)
		f.Width = int(h.Width)
		f.Height = int(h.Height)
		f.BytesPerGlyph = int(h.BytesPerGlyph)
		offset = psf2HeaderSize
		if int(h.HeaderSize) > offset {
			offset = int(h.HeaderSize)
		}

	default:
		return nil, ErrUnknownFormat
	}

	if f.Width <= 0 || f.Height <= 0 || f.GlyphCount <= 0 || f.BytesPerGlyph < f.rowBytes()*f.Height {
		return nil, fmt.Errorf("%w: %s glyphs %dx%d in %d bytes", ErrUnknownFormat, f.Format, f.Width, f.Height, f.BytesPerGlyph)
	}

	size := f.GlyphCount * f.BytesPerGlyph
	if offset > len(data) || len(data)-offset < size {
		return nil, fmt.Errorf("%w: need %d glyph bytes, have %d", ErrTruncated, size, max(len(data)-offset, 0))
	}
	f.data = bytes.Clone(data[offset : offset+size])
	f.g.f = &f
	return &f, nil
}

func (f *Font) rowBytes() int {
	return (f.Width + 7) / 8
}
