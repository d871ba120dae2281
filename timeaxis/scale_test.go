package timeaxis

import (
	"testing"
	"time"
)

func TestSelectScaleThresholds(t *testing.T) {
	a := New(Config{Start: date(2026, time.March, 10)})
	tcs := []struct {
		eff  float64
		unit Unit
	}{
		{100, UnitDay},
		{DefaultDayThreshold, UnitDay},
		{DefaultDayThreshold - 0.01, UnitWeek},
		{DefaultWeekThreshold, UnitWeek},
		{DefaultWeekThreshold - 0.01, UnitMonth},
		{0.1, UnitMonth},
	}
	for _, tc := range tcs {
		if got := a.SelectScale(tc.eff).Unit; got != tc.unit {
			t.Fatalf("SelectScale(%v) = %v; want %v", tc.eff, got, tc.unit)
		}
	}
}

func TestRoundToUnit(t *testing.T) {
	in := time.Date(2026, time.March, 11, 15, 42, 7, 0, time.Local) // a Wednesday
	tcs := []struct {
		unit Unit
		want time.Time
	}{
		{UnitHour, time.Date(2026, time.March, 11, 15, 0, 0, 0, time.Local)},
		{UnitDay, date(2026, time.March, 11)},
		{UnitWeek, date(2026, time.March, 9)}, // Monday
		{UnitMonth, date(2026, time.March, 1)},
		{UnitYear, date(2026, time.January, 1)},
	}
	for _, tc := range tcs {
		if got := RoundToUnit(in, tc.unit); !got.Equal(tc.want) {
			t.Fatalf("RoundToUnit(%v, %v) = %v; want %v", in, tc.unit, got, tc.want)
		}
	}
}

func TestRoundToUnitIdempotent(t *testing.T) {
	in := time.Date(2026, time.March, 11, 15, 42, 7, 0, time.Local)
	for _, u := range []Unit{UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear} {
		once := RoundToUnit(in, u)
		twice := RoundToUnit(once, u)
		if !once.Equal(twice) {
			t.Fatalf("unit %v: round not idempotent: %v vs %v", u, once, twice)
		}
	}
}

// Iterating RoundToUnit then AdvanceByUnit must produce a strictly
// increasing, gap-free sequence of boundaries covering the range.
func TestTickCoverage(t *testing.T) {
	a := New(Config{Start: date(2026, time.January, 15), UnitsPerDay: 30})
	rangeEnd := a.DateToWorld(date(2028, time.February, 20))

	for _, u := range []Unit{UnitDay, UnitWeek, UnitMonth, UnitYear} {
		start := a.WorldToDate(a.DateToWorld(date(2026, time.January, 3)))
		tick := RoundToUnit(start, u)

		if a.DateToWorld(tick) > a.DateToWorld(Midnight(start)) {
			t.Fatalf("unit %v: first tick %v after range start %v", u, tick, start)
		}

		steps := 0
		for a.DateToWorld(tick) <= rangeEnd {
			next := AdvanceByUnit(tick, u)
			if !next.After(tick) {
				t.Fatalf("unit %v: advance from %v not increasing (%v)", u, tick, next)
			}
			if !RoundToUnit(next, u).Equal(next) {
				t.Fatalf("unit %v: advance left the boundary: %v", u, next)
			}
			tick = next
			steps++
			if steps > maxTicks {
				t.Fatalf("unit %v: iteration did not terminate", u)
			}
		}
		if steps == 0 {
			t.Fatalf("unit %v: no ticks in range", u)
		}
	}
}

func TestMonthAdvanceAtLeast28Days(t *testing.T) {
	tick := date(2026, time.January, 1)
	for i := 0; i < 48; i++ {
		next := AdvanceByUnit(tick, UnitMonth)
		days := next.Sub(tick).Hours() / 24
		if days < 28 {
			t.Fatalf("month step %v -> %v is %.1f days", tick, next, days)
		}
		tick = next
	}
}

func TestScaleLabels(t *testing.T) {
	a := New(Config{Start: date(2026, time.March, 10)})
	d := date(2026, time.March, 2)
	tcs := []struct {
		eff  float64
		want string
	}{
		{100, "2"},
		{10, "Mar 2"},
		{1, "Mar 2026"},
	}
	for _, tc := range tcs {
		sc := a.SelectScale(tc.eff)
		if got := sc.Label(d); got != tc.want {
			t.Fatalf("label at eff %v = %q; want %q", tc.eff, got, tc.want)
		}
	}
}
