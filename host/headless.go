package host

import (
	"context"
	"fmt"
	"time"

	"timegrid/surface"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// rgb888 expands a packed RGB565 pixel; the window host blits with it.
func rgb888(p uint16) (r, g, b uint8) {
	return surface.RGB888From565(p)
}

// Stepper is what the headless loop drives: the controller's momentum step
// plus render.
type Stepper interface {
	Step(dt float64)
	Render()
}

// RunHeadless renders the timeline on a ticker without opening a window,
// for soak runs and CI.
func RunHeadless(ctx context.Context, s Stepper, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	s.Render()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Step(1)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
