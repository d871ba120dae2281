package surface

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Canvas draws onto a Surface through a translate+scale transform, so the
// same primitives serve both screen-space chrome (header, labels) and
// world-space content (grid lines, task bars). The camera installs the
// world transform once per frame; ResetTransform returns to screen space.
type Canvas struct {
	s     Surface
	tx    float64
	ty    float64
	scale float64
}

// NewCanvas wraps a surface with an identity transform.
func NewCanvas(s Surface) *Canvas {
	return &Canvas{s: s, scale: 1}
}

func (c *Canvas) Surface() Surface { return c.s }

// SetTransform installs a translate+scale mapping: px = x*scale + tx.
func (c *Canvas) SetTransform(tx, ty, scale float64) {
	c.tx = tx
	c.ty = ty
	c.scale = scale
}

// ResetTransform returns the canvas to screen space.
func (c *Canvas) ResetTransform() {
	c.tx = 0
	c.ty = 0
	c.scale = 1
}

func (c *Canvas) apply(x, y float64) (float64, float64) {
	return x*c.scale + c.tx, y*c.scale + c.ty
}

// Clear fills the whole surface, ignoring the transform.
func (c *Canvas) Clear(col color.RGBA) {
	buf := c.s.Buffer()
	if buf == nil {
		return
	}
	pixel := rgb565(col.R, col.G, col.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

// FillRect fills an axis-aligned rectangle given in transformed coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	x0, y0 := c.apply(x, y)
	x1, y1 := c.apply(x+w, y+h)
	c.fillPixelRect(x0, y0, x1, y1, col)
}

func (c *Canvas) fillPixelRect(x0, y0, x1, y1 float64, col color.RGBA) {
	buf := c.s.Buffer()
	if buf == nil {
		return
	}
	w := c.s.Width()
	h := c.s.Height()
	ix0 := clampInt(int(math.Floor(x0)), 0, w)
	iy0 := clampInt(int(math.Floor(y0)), 0, h)
	ix1 := clampInt(int(math.Ceil(x1)), 0, w)
	iy1 := clampInt(int(math.Ceil(y1)), 0, h)
	if ix0 >= ix1 || iy0 >= iy1 {
		return
	}

	pixel := rgb565(col.R, col.G, col.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := c.s.StrideBytes()
	for py := iy0; py < iy1; py++ {
		row := py * stride
		for px := ix0; px < ix1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// VLine draws a 1px vertical line from (x, y0) to (x, y1) in transformed
// coordinates.
func (c *Canvas) VLine(x, y0, y1 float64, col color.RGBA) {
	px, py0 := c.apply(x, y0)
	_, py1 := c.apply(x, y1)
	c.fillPixelRect(px, py0, px+1, py1, col)
}

// HLine draws a 1px horizontal line from (x0, y) to (x1, y).
func (c *Canvas) HLine(x0, x1, y float64, col color.RGBA) {
	px0, py := c.apply(x0, y)
	px1, _ := c.apply(x1, y)
	c.fillPixelRect(px0, py, px1, py+1, col)
}

// DashedVLine draws a vertical line as alternating dash/gap segments.
func (c *Canvas) DashedVLine(x, y0, y1, dash, gap float64, col color.RGBA) {
	if dash <= 0 || gap < 0 {
		c.VLine(x, y0, y1, col)
		return
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y < y1; y += dash + gap {
		end := y + dash
		if end > y1 {
			end = y1
		}
		c.VLine(x, y, end, col)
	}
}

// SetPixel writes a single pixel in raw surface coordinates.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	buf := c.s.Buffer()
	if buf == nil {
		return
	}
	if x < 0 || x >= c.s.Width() || y < 0 || y >= c.s.Height() {
		return
	}
	pixel := rgb565(col.R, col.G, col.B)
	off := y*c.s.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// PixelAt reads back a pixel as 8-bit channels. Mostly for tests.
func (c *Canvas) PixelAt(x, y int) (r, g, b uint8) {
	buf := c.s.Buffer()
	if buf == nil || x < 0 || x >= c.s.Width() || y < 0 || y >= c.s.Height() {
		return 0, 0, 0
	}
	off := y*c.s.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return 0, 0, 0
	}
	return RGB888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
}

// Text draws a string with its baseline at (x, y). The transform applies
// to the anchor only; glyphs are never scaled, labels stay readable at any
// zoom.
func (c *Canvas) Text(x, y float64, s string, f tinyfont.Fonter, col color.RGBA) {
	px, py := c.apply(x, y)
	tinyfont.WriteLine(&canvasDisplayer{c: c}, f, int16(px), int16(py), s, col)
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// canvasDisplayer adapts the canvas to the displayer contract tinyfont
// renders through.
type canvasDisplayer struct {
	c *Canvas
}

var _ drivers.Displayer = (*canvasDisplayer)(nil)

func (d *canvasDisplayer) Size() (x, y int16) {
	return int16(d.c.s.Width()), int16(d.c.s.Height())
}

func (d *canvasDisplayer) SetPixel(x, y int16, col color.RGBA) {
	d.c.SetPixel(int(x), int(y), col)
}

func (d *canvasDisplayer) Display() error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
