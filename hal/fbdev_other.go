//go:build !linux

package hal

import "dazzle/render"

// FBDev is only available on Linux.
type FBDev struct{}

func OpenFBDev(string) (*FBDev, error) { return nil, ErrNotImplemented }

func (*FBDev) Descriptor() render.Framebuffer { return render.Framebuffer{} }
func (*FBDev) Present() error                 { return nil }
func (*FBDev) Close() error                   { return nil }
