package surface

import "errors"

// PixelFormat defines the surface pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// Surface is a resizable pixel buffer the timeline renders into.
//
// It is intentionally minimal: a raw buffer plus dimensions. Hosts decide
// how the buffer reaches a screen (desktop window, image file, nothing).
type Surface interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Resize(width, height int)
}
