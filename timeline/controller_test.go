package timeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"timegrid/camera"
	"timegrid/gesture"
	"timegrid/surface"
)

// badSurface satisfies surface.Surface but lies about its buffer/format.
type badSurface struct {
	format surface.PixelFormat
	buf    []byte
}

func (s *badSurface) Width() int                  { return 64 }
func (s *badSurface) Height() int                 { return 64 }
func (s *badSurface) Format() surface.PixelFormat { return s.format }
func (s *badSurface) StrideBytes() int            { return 128 }
func (s *badSurface) Buffer() []byte              { return s.buf }
func (s *badSurface) Resize(width, height int)    {}

func newController(t *testing.T, w, h int) *Controller {
	t.Helper()
	c, err := New(Options{Surface: surface.NewMemory(w, h)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsMissingSurface(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("nil surface error = %v; want ErrNoSurface", err)
	}
	_, err := New(Options{Surface: &badSurface{format: surface.PixelFormatRGB565}})
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("bufferless surface error = %v; want ErrNoSurface", err)
	}
}

func TestNewRejectsUnsupportedFormat(t *testing.T) {
	s := &badSurface{format: surface.PixelFormat(99), buf: make([]byte, 64*128)}
	if _, err := New(Options{Surface: s}); !errors.Is(err, surface.ErrUnsupportedFormat) {
		t.Fatalf("format error = %v; want ErrUnsupportedFormat", err)
	}
}

func TestDragPansByPointerDelta(t *testing.T) {
	for _, zoom := range []float64{0.5, 1, 2} {
		c := newController(t, 800, 600)
		c.cam.Zoom = zoom

		c.PointerDown(100, 100)
		if !c.Dragging() {
			t.Fatalf("zoom %v: not dragging after PointerDown", zoom)
		}
		c.PointerMove(150, 130)
		c.PointerUp()

		wantX := -50.0 / zoom
		wantY := -30.0 / zoom
		if math.Abs(c.cam.PanX-wantX) > 1e-9 || math.Abs(c.cam.PanY-wantY) > 1e-9 {
			t.Fatalf("zoom %v: pan = (%v,%v); want (%v,%v)", zoom, c.cam.PanX, c.cam.PanY, wantX, wantY)
		}
		if c.Dragging() {
			t.Fatalf("zoom %v: still dragging after PointerUp", zoom)
		}
	}
}

func TestMoveWithoutDownIsIgnored(t *testing.T) {
	c := newController(t, 800, 600)
	c.PointerMove(500, 500)
	if c.cam.PanX != 0 || c.cam.PanY != 0 {
		t.Fatalf("pan moved without a drag: (%v,%v)", c.cam.PanX, c.cam.PanY)
	}
}

func TestWheelKeepsPointerAnchored(t *testing.T) {
	points := []struct{ x, y float64 }{
		{400, 300}, // viewport center
		{0, 0},
		{799, 599},
		{123, 456},
	}
	for _, p := range points {
		c := newController(t, 800, 600)
		c.cam.PanX, c.cam.PanY = 37, -12

		bx, by := c.ScreenToWorld(p.x, p.y)
		c.Wheel(p.x, p.y, 1, false)
		ax, ay := c.ScreenToWorld(p.x, p.y)

		if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
			t.Fatalf("anchor at (%v,%v) drifted: (%v,%v) -> (%v,%v)", p.x, p.y, bx, by, ax, ay)
		}
		if c.Zoom() != 1+DefaultWheelStep {
			t.Fatalf("zoom after wheel = %v; want %v", c.Zoom(), 1+DefaultWheelStep)
		}
	}
}

func TestWheelFastStepAndDirection(t *testing.T) {
	c := newController(t, 800, 600)
	c.Wheel(400, 300, 1, true)
	if c.Zoom() != 1+DefaultFastWheelStep {
		t.Fatalf("fast zoom = %v; want %v", c.Zoom(), 1+DefaultFastWheelStep)
	}
	c = newController(t, 800, 600)
	c.Wheel(400, 300, -1, false)
	if c.Zoom() != 1-DefaultWheelStep {
		t.Fatalf("zoom out = %v; want %v", c.Zoom(), 1-DefaultWheelStep)
	}
	c.Wheel(400, 300, 0, false)
	if c.Zoom() != 1-DefaultWheelStep {
		t.Fatalf("zero-delta wheel changed zoom to %v", c.Zoom())
	}
}

func TestZoomClampedAtBounds(t *testing.T) {
	c := newController(t, 800, 600)
	for i := 0; i < 200; i++ {
		c.Wheel(400, 300, 1, true)
	}
	if c.Zoom() != DefaultZoomMax {
		t.Fatalf("zoom after spinning in = %v; want %v", c.Zoom(), DefaultZoomMax)
	}
	for i := 0; i < 400; i++ {
		c.Wheel(400, 300, -1, true)
	}
	if c.Zoom() != DefaultZoomMin {
		t.Fatalf("zoom after spinning out = %v; want %v", c.Zoom(), DefaultZoomMin)
	}
}

func TestCustomZoomBounds(t *testing.T) {
	c, err := New(Options{
		Surface: surface.NewMemory(100, 100),
		ZoomMin: 0.5,
		ZoomMax: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.ZoomAt(50, 50, 100)
	if c.Zoom() != 2 {
		t.Fatalf("zoom = %v; want clamped 2", c.Zoom())
	}
	c.ZoomAt(50, 50, 0.001)
	if c.Zoom() != 0.5 {
		t.Fatalf("zoom = %v; want clamped 0.5", c.Zoom())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := newController(t, 800, 600)
	c.cam.PanX, c.cam.PanY = 500, -200
	c.cam.Zoom = 3
	c.Reset()
	if c.cam.PanX != 0 || c.cam.PanY != 0 || c.Zoom() != 1 {
		t.Fatalf("after reset: pan (%v,%v) zoom %v", c.cam.PanX, c.cam.PanY, c.Zoom())
	}
}

func TestResizePropagatesToCamera(t *testing.T) {
	c := newController(t, 800, 600)
	c.Resize(1024, 768)
	if c.Surface().Width() != 1024 || c.Surface().Height() != 768 {
		t.Fatalf("surface = %dx%d", c.Surface().Width(), c.Surface().Height())
	}
	// The world origin must now project to the new center.
	x, y := c.WorldToScreen(0, 0)
	if x != 512 || y != 384 {
		t.Fatalf("origin after resize = (%v,%v); want (512,384)", x, y)
	}
}

func TestRenderIdempotent(t *testing.T) {
	c := newController(t, 200, 150)
	c.Render()
	first := append([]byte(nil), c.Surface().Buffer()...)
	c.Render()
	second := c.Surface().Buffer()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("byte %d differs across identical renders", i)
		}
	}
}

func TestContentFuncSeesWorldSpace(t *testing.T) {
	c := newController(t, 200, 150)
	c.cam.Zoom = 2
	c.cam.PanX, c.cam.PanY = 10, 5

	var called bool
	c.SetContentFunc(func(cv *surface.Canvas, vp camera.Viewport) {
		called = true
		// World origin drawn through the transformed canvas must land where
		// the camera projects it.
		wantX, wantY := vp.WorldToScreen(0, 0)
		if math.Abs(wantX-(100-10*2)) > 1e-9 || math.Abs(wantY-(75-5*2)) > 1e-9 {
			t.Fatalf("viewport projects origin to (%v,%v)", wantX, wantY)
		}
	})
	c.Render()
	if !called {
		t.Fatalf("content callback not invoked")
	}
}

func TestTouchLifecycle(t *testing.T) {
	c := newController(t, 800, 600)
	if c.GestureMode() != gesture.ModeIdle {
		t.Fatalf("mode before enable = %v", c.GestureMode())
	}
	c.TouchBegin(1, 100, 100) // ignored while disabled
	if c.GestureMode() != gesture.ModeIdle {
		t.Fatalf("touch processed while disabled")
	}

	c.EnableTouchSupport()
	c.EnableTouchSupport() // idempotent
	c.TouchBegin(1, 100, 100)
	if c.GestureMode() != gesture.ModePanning {
		t.Fatalf("mode after begin = %v; want panning", c.GestureMode())
	}
	c.TouchMove(1, 160, 120)
	if math.Abs(c.cam.PanX-(-60)) > 1e-9 || math.Abs(c.cam.PanY-(-20)) > 1e-9 {
		t.Fatalf("touch pan = (%v,%v); want (-60,-20)", c.cam.PanX, c.cam.PanY)
	}
	c.TouchEnd(1)

	c.DisableTouchSupport()
	if c.GestureMode() != gesture.ModeIdle {
		t.Fatalf("mode after disable = %v", c.GestureMode())
	}
	c.TouchBegin(2, 0, 0)
	if c.GestureMode() != gesture.ModeIdle {
		t.Fatalf("touch processed after disable")
	}
}

func TestPinchThroughControllerKeepsMidpointAnchored(t *testing.T) {
	c := newController(t, 800, 600)
	c.EnableTouchSupport()

	c.TouchBegin(1, 300, 300)
	c.TouchBegin(2, 500, 300)
	bx, by := c.ScreenToWorld(400, 300)

	c.TouchMove(1, 200, 300)
	c.TouchMove(2, 600, 300)
	if math.Abs(c.Zoom()-2) > 1e-9 {
		t.Fatalf("pinch zoom = %v; want 2", c.Zoom())
	}
	ax, ay := c.ScreenToWorld(400, 300)
	if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
		t.Fatalf("pinch midpoint drifted: (%v,%v) -> (%v,%v)", bx, by, ax, ay)
	}
}

func TestMomentumStepsMoveCamera(t *testing.T) {
	c := newController(t, 800, 600)
	c.EnableTouchSupport()

	c.TouchBegin(1, 0, 300)
	x := 0.0
	for i := 0; i < 20; i++ {
		x += 20
		c.TouchMove(1, x, 300)
	}
	c.TouchEnd(1)
	if c.GestureMode() != gesture.ModeMomentum {
		t.Fatalf("mode after fast release = %v; want momentum", c.GestureMode())
	}

	before := c.cam.PanX
	c.Step(1)
	if c.cam.PanX >= before {
		t.Fatalf("momentum step did not continue the pan: %v -> %v", before, c.cam.PanX)
	}

	for i := 0; i < 500 && c.GestureMode() == gesture.ModeMomentum; i++ {
		c.Step(1)
	}
	if c.GestureMode() != gesture.ModeIdle {
		t.Fatalf("momentum never settled")
	}
}

func TestDateQueriesRoundTrip(t *testing.T) {
	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)
	c, err := New(Options{Surface: surface.NewMemory(100, 100), StartDate: start})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.DateToWorld(start); got != 0 {
		t.Fatalf("DateToWorld(start) = %v; want 0", got)
	}
	d := start.AddDate(0, 0, 14)
	back := c.WorldToDate(c.DateToWorld(d))
	if !back.Equal(d) {
		t.Fatalf("round trip %v = %v", d, back)
	}
}
