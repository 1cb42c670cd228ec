package render

import "errors"

var (
	// ErrAllocation is returned when the context's Allocator refuses a request.
	ErrAllocation = errors.New("render: allocation failed")

	// ErrInvalidBackend is returned when the backend has no state, for example
	// after Close.
	ErrInvalidBackend = errors.New("render: invalid backend state")

	// ErrDegenerate is returned for triangles whose first and last vertex
	// share a y coordinate.
	ErrDegenerate = errors.New("render: degenerate geometry")

	// ErrUnknownElement is returned by backends handed an element variant
	// they cannot draw.
	ErrUnknownElement = errors.New("render: unknown element")

	// ErrShortBuffer is returned for blits whose pixel slice holds fewer than
	// width*height colors.
	ErrShortBuffer = errors.New("render: blit buffer too short")

	// ErrInvalidDescriptor is returned by Framebuffer.Validate.
	ErrInvalidDescriptor = errors.New("render: invalid framebuffer descriptor")
)
