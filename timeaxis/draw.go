package timeaxis

import (
	"image/color"
	"time"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"timegrid/camera"
	"timegrid/surface"
)

const (
	// HeaderHeight is the fixed, non-scrolling header band in pixels.
	HeaderHeight = 44

	monthBandHeight = 20
	shortTickLen    = 8

	// maxTicks bounds every tick loop. The coarsest unit advances at
	// least 28 days per step, so any sane viewport stays far below this.
	maxTicks = 4096

	// Weekend bands below this pixel width are subpixel noise; skip them.
	minWeekendBandPx = 2.0
)

var (
	labelFont tinyfont.Fonter = &freesans.Regular9pt7b
	boldFont  tinyfont.Fonter = &freesans.Bold9pt7b
)

// Draw renders weekend shading, the fixed header with month context band,
// the detail tick row, and per-unit grid lines into the content area. The
// canvas must be in screen space; Draw maps world positions through the
// viewport snapshot itself.
func (a *Axis) Draw(cv *surface.Canvas, vp camera.Viewport) {
	cv.ResetTransform()

	leftWorld, _ := vp.ScreenToWorld(0, 0)
	rightWorld, _ := vp.ScreenToWorld(float64(vp.Width), 0)
	eff := a.unitsPerDay * vp.Zoom
	sc := a.SelectScale(eff)

	// Shading first so every later stroke sits above it.
	a.drawWeekendBands(cv, vp, leftWorld, rightWorld, eff)

	cv.FillRect(0, 0, float64(vp.Width), HeaderHeight, a.theme.HeaderFill)
	cv.HLine(0, float64(vp.Width), HeaderHeight-1, a.theme.HeaderBorder)

	a.drawMonthBand(cv, vp, leftWorld, rightWorld)
	a.drawDetail(cv, vp, sc, leftWorld, rightWorld)
	a.drawTodayMarker(cv, vp)
}

func (a *Axis) drawWeekendBands(cv *surface.Canvas, vp camera.Viewport, leftWorld, rightWorld, eff float64) {
	if eff < minWeekendBandPx {
		return
	}
	t := RoundToUnit(a.WorldToDate(leftWorld), UnitDay)
	for i := 0; i < maxTicks; i++ {
		wx := a.DateToWorld(t)
		if wx > rightWorld {
			return
		}
		if a.IsWeekend(t) {
			x0 := vp.WorldToScreenX(wx)
			x1 := vp.WorldToScreenX(wx + a.unitsPerDay)
			cv.FillRect(x0, 0, x1-x0, float64(vp.Height), a.theme.WeekendFill)
		}
		t = AdvanceByUnit(t, UnitDay)
	}
}

func (a *Axis) drawMonthBand(cv *surface.Canvas, vp camera.Viewport, leftWorld, rightWorld float64) {
	t := RoundToUnit(a.WorldToDate(leftWorld), UnitMonth)
	for i := 0; i < maxTicks; i++ {
		wx := a.DateToWorld(t)
		if wx > rightWorld {
			return
		}
		next := AdvanceByUnit(t, UnitMonth)
		x := vp.WorldToScreenX(wx)
		nx := vp.WorldToScreenX(a.DateToWorld(next))

		cv.VLine(x, 0, monthBandHeight, a.theme.Tick)

		name := t.Format("January 2006")
		if float64(surface.TextWidth(boldFont, name))+12 > nx-x {
			name = t.Format("Jan 06")
		}
		tw := float64(surface.TextWidth(boldFont, name))
		// Keep the label of the partially visible first month readable.
		lx := x + 6
		if lx < 6 {
			lx = 6
			if lx+tw > nx-6 {
				lx = nx - 6 - tw
			}
		}
		if tw+12 <= nx-x {
			cv.Text(lx, monthBandHeight-5, name, boldFont, a.theme.MonthLabel)
		}
		t = next
	}
}

func (a *Axis) drawDetail(cv *surface.Canvas, vp camera.Viewport, sc Scale, leftWorld, rightWorld float64) {
	t := RoundToUnit(a.WorldToDate(leftWorld), sc.Unit)
	prev := retreatByUnit(t, sc.Unit)
	for i := 0; i < maxTicks; i++ {
		wx := a.DateToWorld(t)
		if wx > rightWorld {
			return
		}
		x := vp.WorldToScreenX(wx)

		monthChange := t.Month() != prev.Month() || t.Year() != prev.Year()
		if monthChange {
			cv.VLine(x, monthBandHeight, HeaderHeight, a.theme.Tick)
		} else {
			cv.VLine(x, HeaderHeight-shortTickLen, HeaderHeight, a.theme.Tick)
		}

		font := labelFont
		col := a.labelColor(t, sc.Unit, &font)
		cv.Text(x+3, HeaderHeight-7, sc.Label(t), font, col)

		cv.VLine(x, HeaderHeight, float64(vp.Height), a.theme.GridLine)

		prev = t
		t = AdvanceByUnit(t, sc.Unit)
	}
}

func (a *Axis) labelColor(t time.Time, u Unit, font *tinyfont.Fonter) color.RGBA {
	if u != UnitDay {
		return a.theme.Label
	}
	if a.IsToday(t) {
		*font = boldFont
		return a.theme.Today
	}
	if a.IsWeekend(t) {
		return a.theme.WeekendLabel
	}
	return a.theme.Label
}

// drawTodayMarker strokes the dashed today line regardless of the detail
// scale, so it stays visible when today is not a tick boundary.
func (a *Axis) drawTodayMarker(cv *surface.Canvas, vp camera.Viewport) {
	x := vp.WorldToScreenX(a.TodayPosition())
	if x < 0 || x > float64(vp.Width) {
		return
	}
	cv.DashedVLine(x, HeaderHeight, float64(vp.Height), 4, 4, a.theme.Today)
}

func retreatByUnit(t time.Time, u Unit) time.Time {
	switch u {
	case UnitHour:
		return t.Add(-time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, -1)
	case UnitWeek:
		return t.AddDate(0, 0, -7)
	case UnitMonth:
		return t.AddDate(0, -1, 0)
	case UnitYear:
		return t.AddDate(-1, 0, 0)
	}
	return t
}
