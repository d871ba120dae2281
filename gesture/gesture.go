// Package gesture translates multi-touch input into the same pan/zoom
// mutations the pointer and wheel handlers perform: one finger pans, two
// fingers pinch-zoom around their midpoint, and releasing a fast pan
// coasts with geometrically decaying momentum.
package gesture

import "math"

// Mutator is the camera mutation surface the translator drives. It is the
// controller's own mutation API, so clamping and zoom anchoring are never
// bypassed.
type Mutator interface {
	PanBy(dx, dy float64)
	ZoomAt(sx, sy, zoom float64)
	Zoom() float64
	RequestRender()
}

// Mode is the gesture state.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePanning
	ModePinching
	ModeMomentum
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModePinching:
		return "pinching"
	case ModeMomentum:
		return "momentum"
	}
	return "unknown"
}

// Momentum tuning. Velocities are in pixels per tick (the host steps the
// translator once per frame).
const (
	// velocitySmoothing is the exponential-smoothing weight of the newest
	// per-tick delta in the velocity estimate.
	velocitySmoothing = 0.3
	// momentumTrigger is the minimum release speed that starts coasting.
	momentumTrigger = 2.0
	// momentumDecay multiplies the remaining velocity each tick.
	momentumDecay = 0.95
	// momentumEpsilon is the speed below which coasting stops.
	momentumEpsilon = 0.01
)

type touchPoint struct {
	x float64
	y float64
}

// Translator is the touch gesture state machine. All methods are called
// from the single UI thread; there is no locking.
type Translator struct {
	mut Mutator

	mode    Mode
	touches map[int64]touchPoint
	order   []int64 // touch ids in begin order; the first two pinch

	baselineDist float64
	baselineZoom float64
	lastDist     float64

	vx float64
	vy float64

	destroyed bool
}

// New returns an idle translator driving the given mutation surface.
func New(mut Mutator) *Translator {
	return &Translator{
		mut:     mut,
		touches: make(map[int64]touchPoint),
	}
}

// Mode returns the current gesture state.
func (g *Translator) Mode() Mode { return g.mode }

// Velocity returns the current velocity estimate in pixels per tick.
func (g *Translator) Velocity() (vx, vy float64) { return g.vx, g.vy }

// TouchBegin starts tracking a touch. The first touch enters panning and
// cancels any running momentum; the second switches to pinching and
// records the distance/zoom baseline.
func (g *Translator) TouchBegin(id int64, x, y float64) {
	if g.destroyed {
		return
	}
	g.CancelMomentum()

	if _, ok := g.touches[id]; !ok {
		g.order = append(g.order, id)
	}
	g.touches[id] = touchPoint{x: x, y: y}

	switch len(g.order) {
	case 1:
		g.mode = ModePanning
		g.vx, g.vy = 0, 0
	case 2:
		g.mode = ModePinching
		g.beginPinch()
	default:
		// Extra fingers are tracked but do not change the gesture.
	}
}

func (g *Translator) beginPinch() {
	p0, p1, ok := g.pinchPair()
	if !ok {
		return
	}
	g.baselineDist = dist(p0, p1)
	g.baselineZoom = g.mut.Zoom()
	g.lastDist = g.baselineDist
}

// TouchMove updates a tracked touch. Moves for untracked ids are ignored;
// hosts occasionally deliver late events.
func (g *Translator) TouchMove(id int64, x, y float64) {
	if g.destroyed {
		return
	}
	last, ok := g.touches[id]
	if !ok {
		return
	}
	g.touches[id] = touchPoint{x: x, y: y}

	switch g.mode {
	case ModePanning:
		if len(g.order) != 1 || g.order[0] != id {
			return
		}
		dx := x - last.x
		dy := y - last.y
		g.mut.PanBy(dx, dy)
		g.vx = g.vx*(1-velocitySmoothing) + dx*velocitySmoothing
		g.vy = g.vy*(1-velocitySmoothing) + dy*velocitySmoothing
		g.mut.RequestRender()

	case ModePinching:
		p0, p1, ok := g.pinchPair()
		if !ok || (g.order[0] != id && g.order[1] != id) {
			return
		}
		d := dist(p0, p1)
		if g.baselineDist <= 0 || d <= 0 {
			return
		}
		zoom := g.baselineZoom * (d / g.baselineDist)
		mx := (p0.x + p1.x) / 2
		my := (p0.y + p1.y) / 2
		g.mut.ZoomAt(mx, my, zoom)
		g.lastDist = d
		g.mut.RequestRender()
	}
}

// TouchEnd stops tracking a touch. Dropping from two touches to one falls
// back to panning re-anchored at the remaining touch; dropping to zero
// enters momentum when the release was fast enough.
func (g *Translator) TouchEnd(id int64) {
	if g.destroyed {
		return
	}
	if _, ok := g.touches[id]; !ok {
		return // untracked or duplicate end
	}
	delete(g.touches, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	switch len(g.order) {
	case 0:
		if g.mode == ModePanning && math.Hypot(g.vx, g.vy) >= momentumTrigger {
			g.mode = ModeMomentum
		} else {
			g.mode = ModeIdle
			g.vx, g.vy = 0, 0
		}
	case 1:
		// Re-anchor: the remaining touch's stored position becomes the
		// pan reference; no jump on the next move.
		g.mode = ModePanning
		g.vx, g.vy = 0, 0
	default:
		if g.mode == ModePinching {
			g.beginPinch()
		}
	}
}

// Step advances momentum by dt ticks and reports whether coasting should
// continue. It is a no-op outside ModeMomentum. Velocity decays
// geometrically, so termination is bounded for any starting speed.
func (g *Translator) Step(dt float64) bool {
	if g.destroyed || g.mode != ModeMomentum || dt <= 0 {
		return false
	}
	g.mut.PanBy(g.vx*dt, g.vy*dt)
	decay := math.Pow(momentumDecay, dt)
	g.vx *= decay
	g.vy *= decay
	if math.Hypot(g.vx, g.vy) < momentumEpsilon {
		g.mode = ModeIdle
		g.vx, g.vy = 0, 0
		g.mut.RequestRender()
		return false
	}
	g.mut.RequestRender()
	return true
}

// CancelMomentum stops coasting immediately. New touch input and camera
// resets call this before mutating, so stale pan deltas never overlap a
// fresh gesture.
func (g *Translator) CancelMomentum() {
	if g.mode == ModeMomentum {
		g.mode = ModeIdle
		g.vx, g.vy = 0, 0
	}
}

// Destroy drops all tracked state. Safe to call from any state and more
// than once; a destroyed translator ignores all further input.
func (g *Translator) Destroy() {
	g.destroyed = true
	g.mode = ModeIdle
	g.touches = map[int64]touchPoint{}
	g.order = nil
	g.vx, g.vy = 0, 0
}

func (g *Translator) pinchPair() (p0, p1 touchPoint, ok bool) {
	if len(g.order) < 2 {
		return touchPoint{}, touchPoint{}, false
	}
	p0, ok0 := g.touches[g.order[0]]
	p1, ok1 := g.touches[g.order[1]]
	return p0, p1, ok0 && ok1
}

func dist(a, b touchPoint) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}
