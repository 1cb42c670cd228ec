package render

// Allocator supplies every dynamic buffer the renderer needs: element
// storage, pattern rows, translated blit buffers and backend state.
//
// Alloc returns nil when the request cannot be satisfied. Free receives the
// exact slice returned by Alloc.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

// HeapAllocator allocates from the Go heap and never fails for non-negative
// sizes. Free is a no-op.
var HeapAllocator Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) []byte {
	if size < 0 {
		return nil
	}
	return make([]byte, size)
}

func (heapAllocator) Free([]byte) {}

// Budget is an Allocator with a fixed byte limit, for constrained targets and
// for exercising allocation failures.
type Budget struct {
	limit    int
	inUse    int
	peak     int
	failures int
}

// NewBudget returns a Budget that refuses allocations once limit bytes are in
// use.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Alloc(size int) []byte {
	if size < 0 || b.inUse+size > b.limit {
		b.failures++
		return nil
	}
	b.inUse += size
	if b.inUse > b.peak {
		b.peak = b.inUse
	}
	return make([]byte, size)
}

func (b *Budget) Free(buf []byte) {
	if buf == nil {
		return
	}
	b.inUse -= len(buf)
	if b.inUse < 0 {
		b.inUse = 0
	}
}

// InUse reports the bytes currently allocated.
func (b *Budget) InUse() int { return b.inUse }

// Peak reports the largest InUse value seen.
func (b *Budget) Peak() int { return b.peak }

// Failures reports how many requests were refused.
func (b *Budget) Failures() int { return b.failures }
