package timeaxis

import "time"

// Unit is a calendar tick granularity.
type Unit uint8

const (
	UnitHour Unit = iota
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	}
	return "unknown"
}

// Scale describes the detail tick scale picked for the current zoom. It is
// recomputed per frame and never stored.
type Scale struct {
	Unit Unit
	// SpatialPeriod is the world-space width of one unit (approximate for
	// months, which vary in length).
	SpatialPeriod float64
	// Label formats the tick label for a unit boundary date.
	Label func(time.Time) string
}

// Scale selection thresholds, in effective pixels per day
// (unitsPerDay * zoom). At or above Day -> day ticks; at or above Week ->
// week ticks; below -> month ticks.
const (
	DefaultDayThreshold  = 25.0
	DefaultWeekThreshold = 4.0
)

// RoundToUnit floors a date to the enclosing unit boundary: midnight for
// days, Monday midnight for weeks, the 1st for months, Jan 1 for years.
func RoundToUnit(t time.Time, u Unit) time.Time {
	y, m, d := t.Date()
	switch u {
	case UnitHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
	case UnitDay:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	case UnitWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		back := (int(day.Weekday()) + 6) % 7 // Monday start
		return day.AddDate(0, 0, -back)
	case UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case UnitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// AdvanceByUnit moves a boundary date to the next boundary. Starting from a
// RoundToUnit result, repeated advances visit every boundary exactly once.
func AdvanceByUnit(t time.Time, u Unit) time.Time {
	switch u {
	case UnitHour:
		return t.Add(time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, 1)
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	case UnitYear:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// SelectScale picks the detail scale for an effective pixel density.
// Thresholding is deterministic; the month context band is drawn regardless
// of what this returns.
func (a *Axis) SelectScale(effectiveUnitsPerDay float64) Scale {
	switch {
	case effectiveUnitsPerDay >= a.dayThreshold:
		return Scale{
			Unit:          UnitDay,
			SpatialPeriod: a.unitsPerDay,
			Label:         func(t time.Time) string { return t.Format("2") },
		}
	case effectiveUnitsPerDay >= a.weekThreshold:
		return Scale{
			Unit:          UnitWeek,
			SpatialPeriod: a.unitsPerDay * 7,
			Label:         func(t time.Time) string { return t.Format("Jan 2") },
		}
	default:
		return Scale{
			Unit:          UnitMonth,
			SpatialPeriod: a.unitsPerDay * 30,
			Label:         func(t time.Time) string { return t.Format("Jan 2006") },
		}
	}
}
