package render

// Scene is the ordered list of retained elements. Elements are drawn in the
// order they were appended and are never removed individually.
type Scene struct {
	elems []Element
}

// Append adds e to the end of the scene.
func (s *Scene) Append(e Element) {
	s.elems = append(s.elems, e)
}

// Len returns the number of appended elements.
func (s *Scene) Len() int { return len(s.elems) }

// At returns the i-th element in append order.
func (s *Scene) At(i int) Element { return s.elems[i] }

// Each calls fn for every element in append order.
func (s *Scene) Each(fn func(i int, e Element)) {
	for i, e := range s.elems {
		fn(i, e)
	}
}

// reset drops all elements, returning their storage to a.
func (s *Scene) reset(a Allocator) {
	for i, e := range s.elems {
		release(a, e)
		s.elems[i] = nil
	}
	s.elems = s.elems[:0]
}
