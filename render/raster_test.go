package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearScenario(t *testing.T) {
	fb := newRGBA32(800, 600)
	ctx := newTestContext(t, fb)

	for i := range fb.Pix {
		fb.Pix[i] = 0x5A
	}
	require.NoError(t, ctx.Clear(0x00000000))
	assert.Empty(t, painted(&fb))

	c := Color(0x00FF0000)
	require.NoError(t, ctx.Clear(c))
	want := fb.Convert(c)
	require.Equal(t, uint32(0x0000FF00), want)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if got := fb.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
}

func TestClearOddHeightAndPaddedPitch(t *testing.T) {
	fb := newRGBA32(5, 3)
	fb.Pitch = 5*4 + 8
	fb.Pix = make([]byte, fb.Pitch*fb.Height)
	ctx := newTestContext(t, fb)

	require.NoError(t, ctx.Clear(RGB(1, 2, 3)))
	assert.Len(t, painted(&fb), 15)

	// Row padding is not written.
	for y := 0; y < 3; y++ {
		pad := fb.Pix[y*fb.Pitch+20 : y*fb.Pitch+28]
		assert.Equal(t, make([]byte, 8), pad, "row %d padding", y)
	}
}

func TestFilledRectangleSkipsLastRow(t *testing.T) {
	fb := newRGBA32(32, 32)
	ctx := newTestContext(t, fb)

	r, err := ctx.CreateRectangle(4, 5, 6, 7, true, 0xFF)
	require.NoError(t, err)
	require.NoError(t, ctx.Draw(r))

	got := painted(&fb)
	want := make(map[point]bool)
	for y := 5; y <= 5+7-2; y++ {
		for x := 4; x < 4+6; x++ {
			want[point{x, y}] = true
		}
	}
	assert.Equal(t, want, got)
	for x := 4; x < 10; x++ {
		assert.False(t, got[point{x, 11}], "row y+h-1 must be untouched")
	}
}

func TestOutlineRectangleScenario(t *testing.T) {
	fb := newRGBA32(800, 600)
	ctx := newTestContext(t, fb)

	r, err := ctx.CreateRectangle(10, 10, 5, 5, false, 0xFF)
	require.NoError(t, err)
	ctx.Add(r)
	require.NoError(t, ctx.Redraw())

	got := painted(&fb)
	assert.Len(t, got, 16)
	assert.False(t, got[point{12, 12}])
	for i := 10; i <= 14; i++ {
		assert.True(t, got[point{i, 10}])
		assert.True(t, got[point{i, 14}])
		assert.True(t, got[point{10, i}])
		assert.True(t, got[point{14, i}])
	}
	assert.Equal(t, fb.Convert(0xFF), fb.Pixel(10, 10))
}

func TestTriangleGolden(t *testing.T) {
	fb := newRGBA32(16, 16)
	ctx := newTestContext(t, fb)

	tri, err := ctx.CreateTriangle(0, 0, 4, 4, 0, 8, true, 0xFF)
	require.NoError(t, err)
	require.NoError(t, ctx.Draw(tri))

	want := map[point]bool{
		{0, 0}: true,
		{1, 2}: true,
		{1, 3}: true, {2, 3}: true,
		{1, 4}: true, {2, 4}: true, {3, 4}: true,
		{1, 5}: true, {2, 5}: true,
		{1, 6}: true,
	}
	assert.Equal(t, want, painted(&fb))
}

func TestTriangleVertexOrderDoesNotMatter(t *testing.T) {
	orders := [][6]int{
		{0, 0, 4, 4, 0, 8},
		{4, 4, 0, 0, 0, 8},
		{0, 8, 4, 4, 0, 0},
	}
	var first map[point]bool
	for _, o := range orders {
		fb := newRGBA32(16, 16)
		ctx := newTestContext(t, fb)
		tri, err := ctx.CreateTriangle(o[0], o[1], o[2], o[3], o[4], o[5], true, 0xFF)
		require.NoError(t, err)
		require.NoError(t, ctx.Draw(tri))
		got := painted(&fb)
		if first == nil {
			first = got
			continue
		}
		assert.Equal(t, first, got, "order %v", o)
	}
}

func TestTriangleRowsStayInsideVertexRange(t *testing.T) {
	fb := newRGBA32(16, 16)
	ctx := newTestContext(t, fb)

	tri, err := ctx.CreateTriangle(2, 0, 8, 8, 14, 2, true, 0xFF)
	require.NoError(t, err)
	require.NoError(t, ctx.Draw(tri))

	got := painted(&fb)
	assert.Len(t, got, 39)
	for p := range got {
		assert.Less(t, p.y, 8)
	}
}

func TestDegenerateTriangle(t *testing.T) {
	fb := newRGBA32(16, 16)
	budget := NewBudget(1 << 16)
	ctx := newTestContext(t, fb, WithAllocator(budget))

	tri, err := ctx.CreateTriangle(1, 5, 8, 9, 12, 5, true, 0xFF)
	require.NoError(t, err)
	before := budget.Peak()

	err = ctx.Draw(tri)
	assert.True(t, errors.Is(err, ErrDegenerate))
	assert.Empty(t, painted(&fb))
	assert.Equal(t, before, budget.Peak(), "degenerate path must not allocate")
}

func TestCircleRotationSymmetry(t *testing.T) {
	for _, filled := range []bool{true, false} {
		for r := 0; r <= 12; r++ {
			fb := newRGBA32(64, 64)
			ctx := newTestContext(t, fb)
			c, err := ctx.CreateCircle(32, 32, r, filled, 0xFF)
			require.NoError(t, err)
			require.NoError(t, ctx.Draw(c))

			got := painted(&fb)
			require.NotEmpty(t, got)
			for p := range got {
				dx, dy := p.x-32, p.y-32
				rot := point{32 - dy, 32 + dx}
				if !got[rot] {
					t.Fatalf("r=%d filled=%v: (%d,%d) painted but rotation (%d,%d) is not", r, filled, p.x, p.y, rot.x, rot.y)
				}
			}
		}
	}
}

func TestCircleOutlineRadiusZero(t *testing.T) {
	fb := newRGBA32(8, 8)
	ctx := newTestContext(t, fb)
	c, err := ctx.CreateCircle(3, 3, 0, false, 0xFF)
	require.NoError(t, err)
	require.NoError(t, ctx.Draw(c))
	assert.Equal(t, map[point]bool{{3, 3}: true}, painted(&fb))
}

func gradient(w, h int) []Color {
	px := make([]Color, w*h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			px[i*w+j] = Color(uint32(i*j*0xff) | 0x01000000)
		}
	}
	return px
}

func TestBlitIdempotent(t *testing.T) {
	fb := newRGBA32(32, 32)
	ctx := newTestContext(t, fb)

	b, err := ctx.CreateBlit(3, 4, 10, 10, gradient(10, 10))
	require.NoError(t, err)
	ctx.Add(b)
	assert.False(t, b.Translated())

	require.NoError(t, ctx.Redraw())
	assert.True(t, b.Translated())
	first := bytes.Clone(fb.Pix)

	// Source changes after translation are not picked up.
	for i := range b.Pixels {
		b.Pixels[i] = 0
	}
	require.NoError(t, ctx.Redraw())
	assert.Equal(t, first, fb.Pix)

	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			want := fb.Convert(Color(uint32(i*j*0xff) | 0x01000000))
			assert.Equal(t, want, fb.Pixel(3+j, 4+i))
		}
	}
}

func TestBlitSixteenBit(t *testing.T) {
	fb := Framebuffer{
		Pix:          make([]byte, 4*2*2),
		Width:        4,
		Height:       2,
		Pitch:        8,
		BitsPerPixel: 16,
		Red:          Channel{Mask: 0x1F, Shift: 11},
		Green:        Channel{Mask: 0x3F, Shift: 5},
		Blue:         Channel{Mask: 0x1F, Shift: 0},
	}
	ctx := newTestContext(t, fb)
	b, err := ctx.CreateBlit(1, 0, 2, 2, []Color{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1), RGB(0x1F, 0x3F, 0x1F)})
	require.NoError(t, err)
	require.NoError(t, ctx.Draw(b))

	assert.Equal(t, uint32(1<<11), fb.Pixel(1, 0))
	assert.Equal(t, uint32(1<<5), fb.Pixel(2, 0))
	assert.Equal(t, uint32(1), fb.Pixel(1, 1))
	assert.Equal(t, uint32(0xFFFF), fb.Pixel(2, 1))
	assert.Equal(t, uint32(0), fb.Pixel(0, 0))
}

func TestBlitClipsBottomAndOffscreen(t *testing.T) {
	fb := newRGBA32(8, 4)
	ctx := newTestContext(t, fb)

	b, err := ctx.CreateBlit(2, 2, 2, 4, gradient(2, 4))
	require.NoError(t, err)
	require.NotPanics(t, func() { require.NoError(t, ctx.Draw(b)) })
	for p := range painted(&fb) {
		assert.GreaterOrEqual(t, p.y, 2)
	}

	off, err := ctx.CreateBlit(8, 0, 2, 2, gradient(2, 2))
	require.NoError(t, err)
	before := bytes.Clone(fb.Pix)
	require.NoError(t, ctx.Draw(off))
	assert.Equal(t, before, fb.Pix)
}

func TestDrawReleasesPatterns(t *testing.T) {
	fb := newRGBA32(64, 64)
	budget := NewBudget(1 << 20)
	ctx := newTestContext(t, fb, WithAllocator(budget))

	var elems []Element
	r, err := ctx.CreateRectangle(1, 1, 10, 10, true, 0xFF)
	require.NoError(t, err)
	elems = append(elems, r)
	tri, err := ctx.CreateTriangle(5, 5, 20, 30, 40, 10, true, 0xFF)
	require.NoError(t, err)
	elems = append(elems, tri)
	c, err := ctx.CreateCircle(30, 30, 10, false, 0xFF)
	require.NoError(t, err)
	elems = append(elems, c)
	for _, e := range elems {
		ctx.Add(e)
	}

	baseline := budget.InUse()
	require.NoError(t, ctx.Clear(0))
	require.NoError(t, ctx.Redraw())
	assert.Equal(t, baseline, budget.InUse())
}

func TestDrawAllocationFailure(t *testing.T) {
	fb := newRGBA32(64, 64)
	budget := NewBudget(1 << 20)
	ctx := newTestContext(t, fb, WithAllocator(budget))

	r, err := ctx.CreateRectangle(1, 1, 10, 10, true, 0xFF)
	require.NoError(t, err)
	b, err := ctx.CreateBlit(0, 0, 4, 4, gradient(4, 4))
	require.NoError(t, err)

	// Leave room for nothing.
	hog := budget.Alloc(budget.limit - budget.InUse())
	require.NotNil(t, hog)

	assert.True(t, errors.Is(ctx.Clear(0), ErrAllocation))
	assert.True(t, errors.Is(ctx.Draw(r), ErrAllocation))
	assert.True(t, errors.Is(ctx.Draw(b), ErrAllocation))
	assert.False(t, b.Translated())
	assert.Empty(t, painted(&fb))

	budget.Free(hog)
	assert.NoError(t, ctx.Draw(b))
	assert.True(t, b.Translated())
}
