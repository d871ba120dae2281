package surface

import (
	"image/color"
	"testing"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
)

func TestClearAndPixelAt(t *testing.T) {
	cv := NewCanvas(NewMemory(16, 16))
	cv.Clear(white)
	r, g, b := cv.PixelAt(0, 0)
	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Fatalf("cleared pixel = (%d,%d,%d); want white", r, g, b)
	}
}

func TestFillRectClipsToSurface(t *testing.T) {
	cv := NewCanvas(NewMemory(10, 10))
	cv.Clear(black)
	// Partly off every edge; must not panic and must fill the overlap.
	cv.FillRect(-5, -5, 20, 20, red)
	r, _, _ := cv.PixelAt(0, 0)
	if r == 0 {
		t.Fatalf("corner pixel not filled")
	}
	r, _, _ = cv.PixelAt(9, 9)
	if r == 0 {
		t.Fatalf("far corner pixel not filled")
	}
}

func TestTransformAppliesToFillRect(t *testing.T) {
	cv := NewCanvas(NewMemory(20, 20))
	cv.Clear(black)
	cv.SetTransform(10, 10, 2)
	cv.FillRect(0, 0, 2, 2, red) // lands at pixels [10,14)x[10,14)

	if r, _, _ := cv.PixelAt(10, 10); r == 0 {
		t.Fatalf("transformed rect missing at (10,10)")
	}
	if r, _, _ := cv.PixelAt(13, 13); r == 0 {
		t.Fatalf("transformed rect missing at (13,13)")
	}
	if r, _, _ := cv.PixelAt(9, 9); r != 0 {
		t.Fatalf("pixel outside transformed rect filled at (9,9)")
	}
	if r, _, _ := cv.PixelAt(14, 14); r != 0 {
		t.Fatalf("pixel outside transformed rect filled at (14,14)")
	}

	cv.ResetTransform()
	cv.FillRect(0, 0, 1, 1, red)
	if r, _, _ := cv.PixelAt(0, 0); r == 0 {
		t.Fatalf("identity rect missing after ResetTransform")
	}
}

func TestDashedVLineAlternates(t *testing.T) {
	cv := NewCanvas(NewMemory(4, 20))
	cv.Clear(black)
	cv.DashedVLine(1, 0, 20, 3, 2, red)

	// Dash covers [0,3), gap [3,5), dash [5,8) ...
	if r, _, _ := cv.PixelAt(1, 1); r == 0 {
		t.Fatalf("dash pixel missing at y=1")
	}
	if r, _, _ := cv.PixelAt(1, 3); r != 0 {
		t.Fatalf("gap pixel filled at y=3")
	}
	if r, _, _ := cv.PixelAt(1, 5); r == 0 {
		t.Fatalf("second dash missing at y=5")
	}
}

func TestMemoryResize(t *testing.T) {
	m := NewMemory(8, 8)
	if len(m.Buffer()) != 8*8*2 {
		t.Fatalf("buffer = %d bytes; want %d", len(m.Buffer()), 8*8*2)
	}
	m.Resize(16, 4)
	if m.Width() != 16 || m.Height() != 4 || m.StrideBytes() != 32 {
		t.Fatalf("resize: %dx%d stride %d", m.Width(), m.Height(), m.StrideBytes())
	}
	if len(m.Buffer()) != 16*4*2 {
		t.Fatalf("buffer after resize = %d bytes; want %d", len(m.Buffer()), 16*4*2)
	}
	m.Resize(0, -3)
	if m.Width() != 1 || m.Height() != 1 {
		t.Fatalf("degenerate resize = %dx%d; want 1x1", m.Width(), m.Height())
	}
}

func TestRGB565RoundTripTolerance(t *testing.T) {
	cases := []color.RGBA{
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xD4, G: 0x3B, B: 0x2A, A: 0xFF},
	}
	for _, c := range cases {
		r, g, b := RGB888From565(rgb565(c.R, c.G, c.B))
		if diff(r, c.R) > 8 || diff(g, c.G) > 4 || diff(b, c.B) > 8 {
			t.Fatalf("565 round trip of %v = (%d,%d,%d)", c, r, g, b)
		}
	}
}

func diff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}
