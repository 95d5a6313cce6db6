/*
date.go - Immutable calendar date value type

PURPOSE:
  Date is the foundational value type of the engine: a (year, month, day)
  triple that is guaranteed valid under the proleptic Gregorian calendar.
  Everything else (date-times, units, ranges) is built on top of it.

DESIGN:
  1. Validation happens at construction, never during arithmetic.
     NewDate rejects out-of-range fields with *InvalidDateError; it never
     silently clamps its input.
  2. Arithmetic clamps, construction does not. AddMonths/AddYears reduce
     the day-of-month to the last valid day of the target month when the
     naive target day does not exist (Jan 31 + 1 month = Feb 28/29).
     AddDays/AddWeeks are exact and never clamp.
  3. Dates are immutable. Every operation returns a new Date; values are
     comparable with == and safe to share across goroutines.

CALENDAR ORACLE:
  Day-of-week, month lengths and day counting are delegated to the
  standard library time package rather than reimplemented here. Date
  never exposes time.Time; it only borrows its calendar math.

SEE ALSO:
  - datetime.go: Date combined with a time of day
  - unit.go: Unit-generic arithmetic over Date and DateTime
  - errors.go: InvalidDateError and friends
*/
package calendar

import (
	"fmt"
	"time"
)

// Date is an immutable calendar date (year, month, day), valid by
// construction under the proleptic Gregorian calendar.
//
// The zero value is not a valid date; obtain instances via NewDate,
// MustDate or ParseDate.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate creates a Date, validating every field. The day must exist in
// the given (year, month), including Feb 29 on leap years only. Invalid
// input is reported with *InvalidDateError; it is never clamped.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, &InvalidDateError{Field: "month", Value: int(month), Year: year}
	}
	if last := DaysInMonth(year, month); day < 1 || day > last {
		return Date{}, &InvalidDateError{Field: "day", Value: day, Year: year, Month: month}
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid input. Intended for
// fixtures and literals that are known valid at compile time.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses an ISO-8601 calendar date (yyyy-mm-dd). Parsing is a
// thin pass-through to the time package; the result is re-validated by
// NewDate so the usual error taxonomy applies.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// =============================================================================
// CALENDAR ORACLE
// =============================================================================

// DaysInMonth returns the number of days in the given month of the given
// year (28..31).
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear reports whether the year has a Feb 29.
func IsLeapYear(year int) bool {
	return DaysInMonth(year, time.February) == 29
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// DayOfWeek returns the weekday of the date.
func (d Date) DayOfWeek() time.Weekday { return d.t().Weekday() }

// DayOfYear returns the ordinal day within the year (1..365/366).
func (d Date) DayOfYear() int { return d.t().YearDay() }

// DaysInMonth returns the length of the date's month.
func (d Date) DaysInMonth() int { return DaysInMonth(d.year, d.month) }

// IsLeapYear reports whether the date's year is a leap year.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.year) }

// IsZero reports whether d is the (invalid) zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String returns the ISO-8601 form yyyy-mm-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// t returns the UTC midnight instant of the date. Internal bridge to the
// time package's calendar math; never exposed.
func (d Date) t() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// dateOf rebuilds a Date from a time.Time produced by our own arithmetic.
// Inputs are valid by construction, so no validation round-trip.
func dateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// =============================================================================
// COMPARISON
// =============================================================================

func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// =============================================================================
// ARITHMETIC - exact day/week advancement
// =============================================================================

// AddDays advances the date by n calendar days (n may be negative).
// Exact arithmetic; days are always valid, so no clamping is involved.
func (d Date) AddDays(n int) Date { return dateOf(d.t().AddDate(0, 0, n)) }

// AddWeeks advances the date by n*7 days.
func (d Date) AddWeeks(n int) Date { return d.AddDays(n * 7) }

// SubDays is AddDays(-n).
func (d Date) SubDays(n int) Date { return d.AddDays(-n) }

// SubWeeks is AddWeeks(-n).
func (d Date) SubWeeks(n int) Date { return d.AddWeeks(-n) }

// =============================================================================
// ARITHMETIC - month/year advancement with end-of-month clamping
// =============================================================================

// AddMonths advances the date by n calendar months. The target (year,
// month) is computed by integer offset and the day is clamped to the last
// day of the target month when needed: Jan 31 + 1 month is Feb 29 in a
// leap year and Feb 28 otherwise. Clamping is defined output behavior,
// not an error.
func (d Date) AddMonths(n int) Date {
	total := d.year*12 + int(d.month) - 1 + n
	year := floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	day := min(d.day, DaysInMonth(year, month))
	return Date{year: year, month: month, day: day}
}

// AddYears advances the date by n years, clamping Feb 29 to Feb 28 on
// non-leap target years.
func (d Date) AddYears(n int) Date {
	year := d.year + n
	day := min(d.day, DaysInMonth(year, d.month))
	return Date{year: year, month: d.month, day: day}
}

// SubMonths is AddMonths(-n).
func (d Date) SubMonths(n int) Date { return d.AddMonths(-n) }

// SubYears is AddYears(-n).
func (d Date) SubYears(n int) Date { return d.AddYears(-n) }

// =============================================================================
// ADJUSTERS
// =============================================================================

// WithDay returns the date with the day-of-month replaced. Fails with
// *InvalidDateError if the day does not exist in the date's month.
func (d Date) WithDay(day int) (Date, error) { return NewDate(d.year, d.month, day) }

// WithMonth returns the date with the month replaced. Fails if the
// resulting date would be invalid (e.g. Jan 31 with month Feb).
func (d Date) WithMonth(month time.Month) (Date, error) { return NewDate(d.year, month, d.day) }

// WithYear returns the date with the year replaced. Fails only for
// Feb 29 moved to a non-leap year.
func (d Date) WithYear(year int) (Date, error) { return NewDate(year, d.month, d.day) }

// FirstOfMonth returns the first day of the date's month.
func (d Date) FirstOfMonth() Date { return Date{year: d.year, month: d.month, day: 1} }

// LastOfMonth returns the last day of the date's month.
func (d Date) LastOfMonth() Date {
	return Date{year: d.year, month: d.month, day: d.DaysInMonth()}
}

// =============================================================================
// BETWEEN - whole calendar units elapsed
// =============================================================================

// DaysBetween returns the number of days from a to b (negative when b is
// before a). Exact; anti-symmetric. Computed on an epoch-second basis
// because a time.Duration difference saturates at roughly 292 years.
func DaysBetween(a, b Date) int {
	return int((b.t().Unix() - a.t().Unix()) / 86400)
}

// WeeksBetween returns the number of whole weeks from a to b, truncated
// toward zero.
func WeeksBetween(a, b Date) int { return DaysBetween(a, b) / 7 }

// MonthsBetween returns the number of whole calendar months from a to b,
// truncated toward zero and anti-symmetric.
//
// A month is counted once the day-of-month of the later date has arrived
// relative to the earlier date's day-of-month, where "arrived" accounts
// for end-of-month clamping: Jan 31 to Feb 28 in a non-leap year is one
// full month, because Feb 28 is exactly Jan 31 + 1 month.
func MonthsBetween(a, b Date) int {
	if b.Before(a) {
		return -MonthsBetween(b, a)
	}
	months := (b.year-a.year)*12 + int(b.month) - int(a.month)
	if months == 0 {
		return 0
	}
	// The day a.day lands on in b's month, after clamping.
	arrival := min(a.day, DaysInMonth(b.year, b.month))
	if b.day < arrival {
		months--
	}
	return months
}

// YearsBetween returns the number of whole calendar years from a to b,
// truncated toward zero and anti-symmetric. Consistent with AddYears
// clamping: Feb 29 2020 to Feb 28 2021 is one full year.
func YearsBetween(a, b Date) int { return MonthsBetween(a, b) / 12 }

// =============================================================================
// SMALL HELPERS
// =============================================================================

// floorDiv and floorMod implement floored division so that month offsets
// behave correctly for negative amounts (Go's / and % truncate).
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
