//go:build linux

package hal

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"dazzle/render"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// Layouts of struct fb_bitfield, fb_var_screeninfo and fb_fix_screeninfo
// from <linux/fb.h>.
type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

type fbVarScreenInfo struct {
	Xres, Yres               uint32
	XresVirtual, YresVirtual uint32
	Xoffset, Yoffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync, Vmode              uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

type fbFixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	Xpanstep     uint16
	Ypanstep     uint16
	Ywrapstep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// FBDev is a memory-mapped Linux framebuffer device.
type FBDev struct {
	mu   sync.Mutex
	f    *os.File
	mem  []byte
	desc render.Framebuffer
}

// OpenFBDev maps the framebuffer device at path (usually /dev/fb0). Every
// channel mask is 0xFF and the shifts are the device's channel offsets.
func OpenFBDev(path string) (*FBDev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	var fix fbFixScreenInfo
	if err := ioctl(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		f.Close()
		return nil, fmt.Errorf("read fixed screen info: %w", err)
	}
	var v fbVarScreenInfo
	if err := ioctl(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&v)); err != nil {
		f.Close()
		return nil, fmt.Errorf("read variable screen info: %w", err)
	}

	size := int(fix.LineLength) * int(v.Yres)
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap framebuffer: %w", err)
	}

	desc := render.Framebuffer{
		Pix:          mem,
		Width:        int(v.Xres),
		Height:       int(v.Yres),
		Pitch:        int(fix.LineLength),
		BitsPerPixel: int(v.BitsPerPixel),
		Red:          render.Channel{Mask: 0xFF, Shift: uint8(v.Red.Offset)},
		Green:        render.Channel{Mask: 0xFF, Shift: uint8(v.Green.Offset)},
		Blue:         render.Channel{Mask: 0xFF, Shift: uint8(v.Blue.Offset)},
		Alpha:        render.Channel{Mask: 0xFF, Shift: uint8(v.Transp.Offset)},
	}
	return &FBDev{f: f, mem: mem, desc: desc}, nil
}

func (d *FBDev) Descriptor() render.Framebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.desc
}

// Present is a no-op: the mapping is the scanout buffer.
func (d *FBDev) Present() error { return nil }

func (d *FBDev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := unix.Munmap(d.mem)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	d.f = nil
	d.mem = nil
	d.desc.Pix = nil
	return err
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
