package render

// Kind identifies an element variant.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindRectangle
	KindCircle
	KindBlit
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindBlit:
		return "blit"
	default:
		return "unknown"
	}
}

// Element is a drawable primitive. The set of variants is closed:
// *Rectangle, *Triangle, *Circle and *Blit.
type Element interface {
	Kind() Kind
	footprint() *retained
}

// retained tracks the allocator-backed storage of an element.
type retained struct {
	mem []byte
}

func (r *retained) footprint() *retained { return r }

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	retained
	X, Y          int
	Width, Height int
	Filled        bool
	Color         Color
}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Triangle is a flat-color triangle. It is always painted filled; Filled is
// kept for callers that inspect the scene.
type Triangle struct {
	retained
	X1, Y1 int
	X2, Y2 int
	X3, Y3 int
	Filled bool
	Color  Color
}

func (*Triangle) Kind() Kind { return KindTriangle }

// Circle is a circle centered on (X, Y).
type Circle struct {
	retained
	X, Y   int
	Radius int
	Filled bool
	Color  Color
}

func (*Circle) Kind() Kind { return KindCircle }

// Blit copies a Width x Height block of packed colors into the framebuffer.
//
// Pixels are converted to the framebuffer's native format on the first draw
// and the result is kept; later changes to Pixels are not picked up.
type Blit struct {
	retained
	X, Y          int
	Width, Height int
	Pixels        []Color

	native     []byte
	translated bool
}

func (*Blit) Kind() Kind { return KindBlit }

// Translated reports whether the native buffer has been built.
func (b *Blit) Translated() bool { return b.translated }

// release returns everything e holds to a.
func release(a Allocator, e Element) {
	r := e.footprint()
	if r.mem != nil {
		a.Free(r.mem)
		r.mem = nil
	}
	if b, ok := e.(*Blit); ok && b.native != nil {
		a.Free(b.native)
		b.native = nil
		b.translated = false
	}
}
