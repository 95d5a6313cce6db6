/*
unit.go - Unit-generic arithmetic dispatch

PURPOSE:
  Unit is a closed enumeration of addressable calendar and clock units.
  Each unit owns an add strategy and a between strategy, so callers can
  write unit-generic code (shift by N of unit U, count whole Us between
  two values) without switching themselves.

DESIGN:
  The unit set is fixed and exhaustive, so dispatch is a switch over a
  closed enum rather than an interface hierarchy. Sub-day units delegate
  to elapsed-time arithmetic; Days and larger delegate to the calendar
  arithmetic on Date.

BETWEEN SEMANTICS:
  All between results count whole units elapsed, truncate any partial
  unit toward zero, and are anti-symmetric: Between(a,b) == -Between(b,a).
  Months and Years are calendar-correct (end-of-month clamping aware),
  not fixed-length approximations.
*/
package calendar

import "fmt"

// Unit is a closed set of addressable date/time units.
type Unit int

const (
	Nanos Unit = iota
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

var unitNames = map[Unit]string{
	Nanos:   "nanos",
	Seconds: "seconds",
	Minutes: "minutes",
	Hours:   "hours",
	Days:    "days",
	Weeks:   "weeks",
	Months:  "months",
	Years:   "years",
}

func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return "unknown"
}

// ParseUnit converts a unit name ("days", "months", ...) back to a Unit.
func ParseUnit(s string) (Unit, bool) {
	for u, name := range unitNames {
		if name == s {
			return u, true
		}
	}
	return 0, false
}

// IsTimeBased reports whether the unit is a sub-day clock unit.
func (u Unit) IsTimeBased() bool { return u <= Hours }

// IsDateBased reports whether the unit is a calendar unit (Days and larger).
func (u Unit) IsDateBased() bool { return u >= Days }

// =============================================================================
// ADD DISPATCH
// =============================================================================

// AddToDate shifts a date-only value by n of this unit. Time-based units
// have no meaning for a value without a time component and fail with
// *UnsupportedUnitError.
func (u Unit) AddToDate(d Date, n int) (Date, error) {
	switch u {
	case Days:
		return d.AddDays(n), nil
	case Weeks:
		return d.AddWeeks(n), nil
	case Months:
		return d.AddMonths(n), nil
	case Years:
		return d.AddYears(n), nil
	default:
		return Date{}, &UnsupportedUnitError{Unit: u, Target: "Date"}
	}
}

// AddToDateTime shifts a date-time by n of this unit. Every unit is
// supported: sub-day units carry overflow into the date, month/year
// units clamp the day of month.
func (u Unit) AddToDateTime(dt DateTime, n int) DateTime {
	switch u {
	case Nanos:
		return dt.AddNanos(int64(n))
	case Seconds:
		return dt.AddSeconds(int64(n))
	case Minutes:
		return dt.AddMinutes(int64(n))
	case Hours:
		return dt.AddHours(int64(n))
	case Days:
		return dt.AddDays(n)
	case Weeks:
		return dt.AddWeeks(n)
	case Months:
		return dt.AddMonths(n)
	case Years:
		return dt.AddYears(n)
	default:
		// The unit set is closed; reaching this means a Unit value was
		// forged outside the enum.
		panic(fmt.Sprintf("calendar: unknown Unit(%d)", int(u)))
	}
}

// =============================================================================
// BETWEEN DISPATCH
// =============================================================================

// BetweenDates counts whole units elapsed from a to b. Time-based units
// fail with *UnsupportedUnitError on date-only values.
func (u Unit) BetweenDates(a, b Date) (int64, error) {
	switch u {
	case Days:
		return int64(DaysBetween(a, b)), nil
	case Weeks:
		return int64(WeeksBetween(a, b)), nil
	case Months:
		return int64(MonthsBetween(a, b)), nil
	case Years:
		return int64(YearsBetween(a, b)), nil
	default:
		return 0, &UnsupportedUnitError{Unit: u, Target: "Date"}
	}
}

// BetweenDateTimes counts whole units elapsed from a to b.
//
// Sub-day units, Days and Weeks measure the exact nanosecond timeline
// (a day is complete only once the time of day has arrived as well).
// Months and Years count calendar months/years, decremented when the
// later time of day has not yet reached the earlier one.
func (u Unit) BetweenDateTimes(a, b DateTime) int64 {
	switch u {
	case Nanos:
		return a.nanosUntil(b)
	case Seconds:
		return a.nanosUntil(b) / nanosPerSecond
	case Minutes:
		return a.nanosUntil(b) / nanosPerMinute
	case Hours:
		return a.nanosUntil(b) / nanosPerHour
	case Days:
		return a.nanosUntil(b) / nanosPerDay
	case Weeks:
		return a.nanosUntil(b) / (7 * nanosPerDay)
	case Months:
		return monthsBetweenDateTimes(a, b)
	case Years:
		return monthsBetweenDateTimes(a, b) / 12
	default:
		panic(fmt.Sprintf("calendar: unknown Unit(%d)", int(u)))
	}
}

func monthsBetweenDateTimes(a, b DateTime) int64 {
	if b.Before(a) {
		return -monthsBetweenDateTimes(b, a)
	}
	m := MonthsBetween(a.date, b.date)
	// A calendar month is complete only once the time of day has arrived
	// too: shift a forward by m months and back off if we overshot b.
	for m > 0 && a.AddMonths(m).After(b) {
		m--
	}
	return int64(m)
}
