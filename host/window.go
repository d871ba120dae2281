// Package host runs the timeline on a desktop window or headless. The
// window host blits the RGB565 surface into the frame and polls input,
// translating it into controller events once per tick.
package host

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"timegrid/internal/buildinfo"
	"timegrid/timeline"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	// Title is the window title; buildinfo is appended. Default "timegrid".
	Title string
	// Scale is the window pixels per surface pixel. Default 1.
	Scale int
	// TPS is the tick rate. Default 60.
	TPS int
}

// Run opens a desktop window displaying the controller's surface and
// forwards mouse, wheel, keyboard, and touch input. It blocks until the
// window closes.
func Run(ctrl *timeline.Controller, cfg WindowConfig) error {
	if cfg.Title == "" {
		cfg.Title = "timegrid"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &game{ctrl: ctrl, touchLast: map[ebiten.TouchID]point{}}
	ctrl.Render()

	surf := ctrl.Surface()
	ebiten.SetWindowTitle(buildinfo.Title(cfg.Title))
	ebiten.SetWindowSize(surf.Width()*cfg.Scale, surf.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type point struct {
	x float64
	y float64
}

type game struct {
	ctrl *timeline.Controller

	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte

	wasDown   bool
	lastX     float64
	lastY     float64
	touchIDs  []ebiten.TouchID
	touchLast map[ebiten.TouchID]point
}

func (g *game) Update() error {
	g.pollPointer()
	g.pollWheel()
	g.pollKeys()
	g.pollTouches()
	g.ctrl.Step(1)
	return nil
}

func (g *game) pollPointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case down && !g.wasDown:
		g.ctrl.PointerDown(x, y)
	case down && g.wasDown:
		if x != g.lastX || y != g.lastY {
			g.ctrl.PointerMove(x, y)
		}
	case !down && g.wasDown:
		g.ctrl.PointerUp()
	}
	g.wasDown = down
	g.lastX = x
	g.lastY = y
}

func (g *game) pollWheel() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	fast := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	g.ctrl.Wheel(float64(mx), float64(my), dy, fast)
}

func (g *game) pollKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.ctrl.Reset()
	}
}

// pollTouches diffs the active touch set against the last frame and
// synthesizes begin/move/end events for the gesture translator.
func (g *game) pollTouches() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])

	seen := make(map[ebiten.TouchID]bool, len(g.touchIDs))
	for _, tid := range g.touchIDs {
		seen[tid] = true
		tx, ty := ebiten.TouchPosition(tid)
		p := point{x: float64(tx), y: float64(ty)}
		last, ok := g.touchLast[tid]
		switch {
		case !ok:
			g.ctrl.TouchBegin(int64(tid), p.x, p.y)
		case p != last:
			g.ctrl.TouchMove(int64(tid), p.x, p.y)
		}
		g.touchLast[tid] = p
	}

	for tid := range g.touchLast {
		if !seen[tid] {
			g.ctrl.TouchEnd(int64(tid))
			delete(g.touchLast, tid)
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	surf := g.ctrl.Surface()
	w := surf.Width()
	h := surf.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, len(surf.Buffer()))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	copy(g.scratch, surf.Buffer())

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	surf := g.ctrl.Surface()
	return surf.Width(), surf.Height()
}
