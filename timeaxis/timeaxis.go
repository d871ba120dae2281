// Package timeaxis maps between world x-coordinates and calendar dates and
// renders the adaptive day/week/month header, weekend shading, and grid.
package timeaxis

import (
	"math"
	"time"
)

// DefaultUnitsPerDay is the world-space width of one calendar day.
const DefaultUnitsPerDay = 30.0

// Config controls axis construction. Zero values fall back to documented
// defaults; nothing here fails.
type Config struct {
	// Start is the anchor date mapping to world x = 0. Zero means "now".
	Start time.Time
	// UnitsPerDay is the spatial scale. Values <= 0 mean DefaultUnitsPerDay.
	UnitsPerDay float64
	// DayThreshold and WeekThreshold override the scale-selection
	// cut-points, in effective pixels per day. Values <= 0 keep defaults.
	DayThreshold  float64
	WeekThreshold float64
	// Weekend overrides which weekdays get shading and label recoloring.
	// Empty means Saturday and Sunday.
	Weekend []time.Weekday
	// Theme overrides the drawing colors. Nil means DefaultTheme.
	Theme *Theme
}

// Axis owns the anchor date and spatial scale. The scale is fixed after
// construction; zoom changes are expressed only through the camera.
type Axis struct {
	anchor      time.Time
	unitsPerDay float64
	today       time.Time

	dayThreshold  float64
	weekThreshold float64
	weekend       [7]bool
	theme         Theme
}

// New builds an axis anchored at the start date's local midnight. "Today"
// is captured once here and stays fixed for the session, keeping the today
// marker frame-stable.
func New(cfg Config) *Axis {
	start := cfg.Start
	if start.IsZero() {
		start = time.Now()
	}
	upd := cfg.UnitsPerDay
	if upd <= 0 {
		upd = DefaultUnitsPerDay
	}
	a := &Axis{
		anchor:        Midnight(start),
		unitsPerDay:   upd,
		today:         Midnight(time.Now()),
		dayThreshold:  cfg.DayThreshold,
		weekThreshold: cfg.WeekThreshold,
	}
	if a.dayThreshold <= 0 {
		a.dayThreshold = DefaultDayThreshold
	}
	if a.weekThreshold <= 0 {
		a.weekThreshold = DefaultWeekThreshold
	}
	if len(cfg.Weekend) == 0 {
		a.weekend[time.Saturday] = true
		a.weekend[time.Sunday] = true
	} else {
		for _, wd := range cfg.Weekend {
			if wd >= 0 && wd < 7 {
				a.weekend[wd] = true
			}
		}
	}
	if cfg.Theme != nil {
		a.theme = *cfg.Theme
	} else {
		a.theme = DefaultTheme()
	}
	return a
}

// Anchor returns the date mapping to world x = 0.
func (a *Axis) Anchor() time.Time { return a.anchor }

// UnitsPerDay returns the spatial scale.
func (a *Axis) UnitsPerDay() float64 { return a.unitsPerDay }

// Midnight truncates a time to its local day boundary.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at local midnight.
// Rounding absorbs DST transitions where a "day" is 23 or 25 hours.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// DateToWorld maps a date to its world x-coordinate at day granularity.
func (a *Axis) DateToWorld(t time.Time) float64 {
	return float64(daysBetween(a.anchor, Midnight(t))) * a.unitsPerDay
}

// WorldToDate maps a world x-coordinate back to a date. Whole days advance
// calendar-aware; the fractional remainder lands inside the day. Values
// within rounding noise of a day boundary snap to it, so DateToWorld and
// WorldToDate stay exact inverses at day granularity.
func (a *Axis) WorldToDate(worldX float64) time.Time {
	days := worldX / a.unitsPerDay
	whole := math.Floor(days)
	frac := days - whole
	const snap = 1e-9
	if frac > 1-snap {
		whole++
		frac = 0
	} else if frac < snap {
		frac = 0
	}
	d := a.anchor.AddDate(0, 0, int(whole))
	if frac == 0 {
		return d
	}
	return d.Add(time.Duration(frac * 24 * float64(time.Hour)))
}

// TodayPosition returns the world x-coordinate of the session's today.
func (a *Axis) TodayPosition() float64 {
	return a.DateToWorld(a.today)
}

// IsToday compares a date against the today captured at construction.
func (a *Axis) IsToday(t time.Time) bool {
	return Midnight(t).Equal(a.today)
}

// IsWeekend reports whether the date falls on a configured weekend day.
func (a *Axis) IsWeekend(t time.Time) bool {
	return a.weekend[t.Weekday()]
}
