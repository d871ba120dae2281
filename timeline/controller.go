// Package timeline is the public entry point of the viewport engine. The
// Controller owns the drawing surface, the camera, and the time axis,
// wires pointer/wheel/keyboard/touch input into camera mutations, and
// drives redraws. Task content is drawn by an external callback on top of
// the rendered grid.
package timeline

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/rs/zerolog"

	"timegrid/camera"
	"timegrid/gesture"
	"timegrid/surface"
	"timegrid/timeaxis"
)

// ErrNoSurface is returned when construction is attempted without a usable
// drawing surface.
var ErrNoSurface = errors.New("timeline: no drawing surface")

// Zoom clamp defaults.
const (
	DefaultZoomMin = 0.1
	DefaultZoomMax = 5.0

	// Wheel zoom steps; the fast step applies while a modifier key is held.
	DefaultWheelStep     = 0.05
	DefaultFastWheelStep = 0.2
)

// Options configures construction. Only Surface is required; every other
// zero value falls back to a documented default.
type Options struct {
	// Surface is the drawing surface. Required.
	Surface surface.Surface
	// Background fills the content area each frame. Default white.
	Background color.RGBA
	// StartDate anchors world x = 0. Zero means construction time.
	StartDate time.Time
	// Axis tunes the time axis beyond the start date (scale, thresholds,
	// weekend days, theme). Axis.Start is overridden by StartDate.
	Axis timeaxis.Config
	// ZoomMin and ZoomMax bound the zoom factor. Defaults 0.1 and 5.0.
	ZoomMin float64
	ZoomMax float64
	// WheelStep and FastWheelStep are the per-event zoom fractions.
	WheelStep     float64
	FastWheelStep float64
	// Logger receives gesture/reset/resize debug events. Nil disables.
	Logger *zerolog.Logger
}

// ContentFunc draws task content in world space. The canvas arrives with
// the camera transform applied; the viewport snapshot is read-only.
type ContentFunc func(cv *surface.Canvas, vp camera.Viewport)

// Controller orchestrates the viewport. All methods must be called from
// the single UI thread.
type Controller struct {
	surf   surface.Surface
	canvas *surface.Canvas
	cam    *camera.Camera
	axis   *timeaxis.Axis
	touch  *gesture.Translator
	log    zerolog.Logger

	background    color.RGBA
	zoomMin       float64
	zoomMax       float64
	wheelStep     float64
	fastWheelStep float64

	dragging bool
	lastX    float64
	lastY    float64

	content ContentFunc
}

// New validates the surface and builds the camera and axis. A surface
// without a pixel buffer, or with a pixel format the renderer cannot
// write, is a fatal construction error.
func New(opts Options) (*Controller, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Surface.Buffer() == nil {
		return nil, fmt.Errorf("timeline: surface has no pixel buffer: %w", ErrNoSurface)
	}
	if opts.Surface.Format() != surface.PixelFormatRGB565 {
		return nil, fmt.Errorf("timeline: pixel format %d: %w", opts.Surface.Format(), surface.ErrUnsupportedFormat)
	}

	if opts.Background.A == 0 {
		opts.Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	if opts.ZoomMin <= 0 {
		opts.ZoomMin = DefaultZoomMin
	}
	if opts.ZoomMax <= opts.ZoomMin {
		opts.ZoomMax = DefaultZoomMax
	}
	if opts.WheelStep <= 0 {
		opts.WheelStep = DefaultWheelStep
	}
	if opts.FastWheelStep <= 0 {
		opts.FastWheelStep = DefaultFastWheelStep
	}

	axisCfg := opts.Axis
	if !opts.StartDate.IsZero() {
		axisCfg.Start = opts.StartDate
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	c := &Controller{
		surf:          opts.Surface,
		canvas:        surface.NewCanvas(opts.Surface),
		cam:           camera.New(opts.Surface.Width(), opts.Surface.Height()),
		axis:          timeaxis.New(axisCfg),
		log:           log,
		background:    opts.Background,
		zoomMin:       opts.ZoomMin,
		zoomMax:       opts.ZoomMax,
		wheelStep:     opts.WheelStep,
		fastWheelStep: opts.FastWheelStep,
	}
	return c, nil
}

// SetContentFunc installs the external per-frame drawing callback.
func (c *Controller) SetContentFunc(fn ContentFunc) { c.content = fn }

// Render produces a full redraw from current state. It is idempotent and
// safe to call any number of times.
func (c *Controller) Render() {
	c.canvas.ResetTransform()
	c.canvas.Clear(c.background)

	vp := c.cam.Viewport()
	c.axis.Draw(c.canvas, vp)

	if c.content != nil {
		c.cam.ApplyTransform(c.canvas)
		c.content(c.canvas, vp)
		c.canvas.ResetTransform()
	}
}

// Resize propagates a new surface size to the camera and redraws.
func (c *Controller) Resize(width, height int) {
	c.surf.Resize(width, height)
	c.cam.Resize(width, height)
	c.log.Debug().Int("width", width).Int("height", height).Msg("viewport resized")
	c.Render()
}

// Reset restores pan to the origin and zoom to 1, cancelling any momentum.
func (c *Controller) Reset() {
	if c.touch != nil {
		c.touch.CancelMomentum()
	}
	c.cam.PanX, c.cam.PanY = 0, 0
	c.cam.Zoom = 1
	c.log.Debug().Msg("camera reset")
	c.Render()
}

// --- Pointer drag (Idle <-> Dragging) ---

// PointerDown begins a drag at the given screen position.
func (c *Controller) PointerDown(x, y float64) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
}

// PointerMove pans by the pointer delta while dragging and redraws.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	c.cam.Pan(x-c.lastX, y-c.lastY)
	c.lastX = x
	c.lastY = y
	c.Render()
}

// PointerUp ends the drag.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// Dragging reports whether a pointer drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// --- Wheel zoom ---

// Wheel zooms around the pointer position. dy > 0 zooms in. The world
// point under the pointer stays visually stationary across the change.
func (c *Controller) Wheel(x, y, dy float64, fast bool) {
	if dy == 0 {
		return
	}
	step := c.wheelStep
	if fast {
		step = c.fastWheelStep
	}
	dir := 1.0
	if dy < 0 {
		dir = -1
	}
	c.ZoomAt(x, y, c.cam.Zoom*(1+dir*step))
	c.Render()
}

// --- Mutation API (shared by wheel, pinch, and external callers) ---

// PanBy pans by a screen-space delta.
func (c *Controller) PanBy(dx, dy float64) {
	c.cam.Pan(dx, dy)
}

// ZoomAt sets a clamped zoom while keeping the world point under the given
// screen position fixed: capture it before the change, shift pan by the
// world-space difference after.
func (c *Controller) ZoomAt(sx, sy, zoom float64) {
	zoom = clamp(zoom, c.zoomMin, c.zoomMax)
	bx, by := c.cam.ScreenToWorld(sx, sy)
	c.cam.Zoom = zoom
	ax, ay := c.cam.ScreenToWorld(sx, sy)
	c.cam.PanX += bx - ax
	c.cam.PanY += by - ay
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.cam.Zoom }

// RequestRender redraws synchronously; input is single-threaded, so a
// redraw always observes the most recently applied state.
func (c *Controller) RequestRender() { c.Render() }

// --- Touch ---

// EnableTouchSupport attaches the gesture translator. Idempotent.
func (c *Controller) EnableTouchSupport() {
	if c.touch == nil {
		c.touch = gesture.New(c)
		c.log.Debug().Msg("touch support enabled")
	}
}

// DisableTouchSupport detaches and destroys the translator without tearing
// down the surface.
func (c *Controller) DisableTouchSupport() {
	if c.touch != nil {
		c.touch.Destroy()
		c.touch = nil
		c.log.Debug().Msg("touch support disabled")
	}
}

// TouchBegin forwards a touch start to the translator, if enabled.
func (c *Controller) TouchBegin(id int64, x, y float64) {
	if c.touch != nil {
		c.touch.TouchBegin(id, x, y)
	}
}

// TouchMove forwards a touch move to the translator, if enabled.
func (c *Controller) TouchMove(id int64, x, y float64) {
	if c.touch != nil {
		c.touch.TouchMove(id, x, y)
	}
}

// TouchEnd forwards a touch end to the translator, if enabled.
func (c *Controller) TouchEnd(id int64) {
	if c.touch != nil {
		c.touch.TouchEnd(id)
	}
}

// Step advances momentum by dt ticks; the host calls it once per frame.
func (c *Controller) Step(dt float64) {
	if c.touch != nil {
		c.touch.Step(dt)
	}
}

// GestureMode reports the translator state, ModeIdle when touch is off.
func (c *Controller) GestureMode() gesture.Mode {
	if c.touch == nil {
		return gesture.ModeIdle
	}
	return c.touch.Mode()
}

// --- Coordinate queries for collaborators ---

// WorldToDate maps a world x-coordinate to a calendar date.
func (c *Controller) WorldToDate(worldX float64) time.Time {
	return c.axis.WorldToDate(worldX)
}

// DateToWorld maps a calendar date to its world x-coordinate.
func (c *Controller) DateToWorld(t time.Time) float64 {
	return c.axis.DateToWorld(t)
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Controller) ScreenToWorld(x, y float64) (wx, wy float64) {
	return c.cam.ScreenToWorld(x, y)
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Controller) WorldToScreen(wx, wy float64) (x, y float64) {
	return c.cam.WorldToScreen(wx, wy)
}

// Viewport returns the current camera snapshot.
func (c *Controller) Viewport() camera.Viewport { return c.cam.Viewport() }

// Axis exposes the time axis for hit-testing helpers.
func (c *Controller) Axis() *timeaxis.Axis { return c.axis }

// Surface exposes the drawing surface, primarily for hosts that blit it.
func (c *Controller) Surface() surface.Surface { return c.surf }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
