// Package camera owns the pan/zoom state of the timeline viewport and the
// exact, invertible mapping between screen pixels and the world plane. It
// has no knowledge of calendar time.
package camera

import "timegrid/surface"

// Camera maps world coordinates to screen pixels. With pan (0,0) the world
// origin sits at the viewport center:
//
//	sx = (wx - PanX)*Zoom + W/2
//	sy = (wy - PanY)*Zoom + H/2
//
// Camera never clamps Zoom; the mutation sites (wheel and pinch handlers)
// clamp before writing it.
type Camera struct {
	PanX float64
	PanY float64
	Zoom float64

	width  int
	height int
}

// New returns a camera at the origin with zoom 1.
func New(width, height int) *Camera {
	return &Camera{Zoom: 1, width: width, height: height}
}

// Resize updates the viewport dimensions without touching pan or zoom.
func (c *Camera) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Size returns the current viewport dimensions in pixels.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// WorldToScreen applies the forward transform.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx-c.PanX)*c.Zoom + float64(c.width)/2
	sy = (wy-c.PanY)*c.Zoom + float64(c.height)/2
	return sx, sy
}

// ScreenToWorld undoes the forward transform.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = (sx-float64(c.width)/2)/c.Zoom + c.PanX
	wy = (sy-float64(c.height)/2)/c.Zoom + c.PanY
	return wx, wy
}

// Pan moves the camera by a screen-space pointer delta, so dragged content
// follows the pointer at any zoom.
func (c *Camera) Pan(dx, dy float64) {
	c.PanX -= dx / c.Zoom
	c.PanY -= dy / c.Zoom
}

// ApplyTransform installs the world transform on the canvas: translate to
// the viewport center, scale by zoom, translate by -pan. Drawing done
// afterwards takes world coordinates.
func (c *Camera) ApplyTransform(cv *surface.Canvas) {
	cv.SetTransform(
		float64(c.width)/2-c.PanX*c.Zoom,
		float64(c.height)/2-c.PanY*c.Zoom,
		c.Zoom,
	)
}

// Viewport is the read-only per-frame snapshot handed to drawing code.
// It is never stored across frames.
type Viewport struct {
	PanX   float64
	PanY   float64
	Zoom   float64
	Width  int
	Height int
}

// Viewport captures the current camera state.
func (c *Camera) Viewport() Viewport {
	return Viewport{
		PanX:   c.PanX,
		PanY:   c.PanY,
		Zoom:   c.Zoom,
		Width:  c.width,
		Height: c.height,
	}
}

// WorldToScreen applies the snapshot's forward transform.
func (v Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx-v.PanX)*v.Zoom + float64(v.Width)/2
	sy = (wy-v.PanY)*v.Zoom + float64(v.Height)/2
	return sx, sy
}

// ScreenToWorld undoes the snapshot's transform.
func (v Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = (sx-float64(v.Width)/2)/v.Zoom + v.PanX
	wy = (sy-float64(v.Height)/2)/v.Zoom + v.PanY
	return wx, wy
}

// WorldToScreenX maps a world x-coordinate alone; the time axis places
// vertical ticks with it.
func (v Viewport) WorldToScreenX(wx float64) float64 {
	return (wx-v.PanX)*v.Zoom + float64(v.Width)/2
}
