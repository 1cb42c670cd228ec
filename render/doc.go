// Package render is a retained-mode 2D software renderer for packed-pixel
// linear framebuffers.
//
// A Context owns a Backend, an Allocator and a Scene. Elements (rectangles,
// triangles, circles and blits) are created through the context, appended to
// its scene and painted in insertion order by Redraw. Immediate operations
// (Clear, Draw) bypass the scene.
//
// The only backend is the framebuffer backend: it paints into a caller
// supplied Framebuffer whose pixel layout is described at runtime by
// per-channel mask/shift pairs.
//
//	fb := render.Framebuffer{
//		Pix:          make([]byte, 800*600*4),
//		Width:        800,
//		Height:       600,
//		Pitch:        800 * 4,
//		BitsPerPixel: 32,
//		Red:          render.Channel{Mask: 0xFF, Shift: 24},
//		Green:        render.Channel{Mask: 0xFF, Shift: 16},
//		Blue:         render.Channel{Mask: 0xFF, Shift: 8},
//		Alpha:        render.Channel{Mask: 0xFF, Shift: 0},
//	}
//	ctx, err := render.NewFramebuffer(fb)
//	if err != nil {
//		return err
//	}
//	_ = ctx.Clear(render.RGB(0, 0, 0))
//	r, _ := ctx.CreateRectangle(10, 10, 100, 50, true, render.RGB(0xFF, 0, 0))
//	ctx.Add(r)
//	err = ctx.Redraw()
//
// A Context is not safe for concurrent use.
package render
