/*
datetime.go - Date combined with a time of day

PURPOSE:
  TimeOfDay is an immutable (hour, minute, second, nano) value; DateTime
  pairs it with a Date. Time-of-day arithmetic is true elapsed-time
  arithmetic: overflow carries into the date component (23:30 + 2 hours
  advances the day), never clamps.

SEE ALSO:
  - date.go: the date component and its clamping month/year arithmetic
  - duration.go: elapsed-time deltas applied to DateTime
*/
package calendar

import (
	"fmt"
	"time"
)

const (
	nanosPerSecond = int64(1_000_000_000)
	nanosPerMinute = 60 * nanosPerSecond
	nanosPerHour   = 60 * nanosPerMinute
	nanosPerDay    = 24 * nanosPerHour
)

// TimeOfDay is an immutable wall-clock time within a day.
// The zero value is midnight, which is valid.
type TimeOfDay struct {
	hour   int
	minute int
	second int
	nano   int
}

// NewTimeOfDay creates a TimeOfDay, validating every field
// (hour 0..23, minute/second 0..59, nano 0..999_999_999).
func NewTimeOfDay(hour, minute, second, nano int) (TimeOfDay, error) {
	switch {
	case hour < 0 || hour > 23:
		return TimeOfDay{}, &InvalidDateError{Field: "hour", Value: hour}
	case minute < 0 || minute > 59:
		return TimeOfDay{}, &InvalidDateError{Field: "minute", Value: minute}
	case second < 0 || second > 59:
		return TimeOfDay{}, &InvalidDateError{Field: "second", Value: second}
	case nano < 0 || nano > 999_999_999:
		return TimeOfDay{}, &InvalidDateError{Field: "nano", Value: nano}
	}
	return TimeOfDay{hour: hour, minute: minute, second: second, nano: nano}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
func MustTimeOfDay(hour, minute, second, nano int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return t
}

// Midnight is the start of day, 00:00:00.0.
func Midnight() TimeOfDay { return TimeOfDay{} }

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }
func (t TimeOfDay) Second() int { return t.second }
func (t TimeOfDay) Nano() int   { return t.nano }

func (t TimeOfDay) String() string {
	if t.nano == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%09d", t.hour, t.minute, t.second, t.nano)
}

// nanoOfDay returns the time as nanoseconds since midnight.
func (t TimeOfDay) nanoOfDay() int64 {
	return int64(t.hour)*nanosPerHour +
		int64(t.minute)*nanosPerMinute +
		int64(t.second)*nanosPerSecond +
		int64(t.nano)
}

func timeOfNanoOfDay(n int64) TimeOfDay {
	return TimeOfDay{
		hour:   int(n / nanosPerHour),
		minute: int(n % nanosPerHour / nanosPerMinute),
		second: int(n % nanosPerMinute / nanosPerSecond),
		nano:   int(n % nanosPerSecond),
	}
}

// =============================================================================
// DATE-TIME
// =============================================================================

// DateTime is an immutable calendar date with a time of day.
type DateTime struct {
	date Date
	time TimeOfDay
}

// NewDateTime combines an already-valid Date and TimeOfDay.
func NewDateTime(date Date, tod TimeOfDay) DateTime {
	return DateTime{date: date, time: tod}
}

// NewDateTimeOf creates a DateTime from raw fields, validating all of them.
func NewDateTimeOf(year int, month time.Month, day, hour, minute, second int) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := NewTimeOfDay(hour, minute, second, 0)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t}, nil
}

func (dt DateTime) Date() Date      { return dt.date }
func (dt DateTime) Time() TimeOfDay { return dt.time }

func (dt DateTime) Year() int        { return dt.date.year }
func (dt DateTime) Month() time.Month { return dt.date.month }
func (dt DateTime) Day() int         { return dt.date.day }
func (dt DateTime) Hour() int        { return dt.time.hour }
func (dt DateTime) Minute() int      { return dt.time.minute }
func (dt DateTime) Second() int      { return dt.time.second }
func (dt DateTime) Nano() int        { return dt.time.nano }

func (dt DateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

func (dt DateTime) Equal(other DateTime) bool  { return dt == other }
func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }
func (dt DateTime) After(other DateTime) bool  { return dt.Compare(other) > 0 }

func (dt DateTime) Compare(other DateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	a, b := dt.time.nanoOfDay(), other.time.nanoOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtTime attaches a time of day to a Date.
func (d Date) AtTime(t TimeOfDay) DateTime { return DateTime{date: d, time: t} }

// AtStartOfDay returns the DateTime at midnight of the date.
func (d Date) AtStartOfDay() DateTime { return DateTime{date: d} }

// =============================================================================
// DATE-PART ARITHMETIC - preserves the time of day
// =============================================================================

func (dt DateTime) AddDays(n int) DateTime {
	return DateTime{date: dt.date.AddDays(n), time: dt.time}
}

func (dt DateTime) AddWeeks(n int) DateTime {
	return DateTime{date: dt.date.AddWeeks(n), time: dt.time}
}

// AddMonths advances the date part with end-of-month clamping, keeping
// the time part untouched.
func (dt DateTime) AddMonths(n int) DateTime {
	return DateTime{date: dt.date.AddMonths(n), time: dt.time}
}

// AddYears advances the date part with Feb 29 clamping, keeping the time
// part untouched.
func (dt DateTime) AddYears(n int) DateTime {
	return DateTime{date: dt.date.AddYears(n), time: dt.time}
}

func (dt DateTime) SubDays(n int) DateTime   { return dt.AddDays(-n) }
func (dt DateTime) SubWeeks(n int) DateTime  { return dt.AddWeeks(-n) }
func (dt DateTime) SubMonths(n int) DateTime { return dt.AddMonths(-n) }
func (dt DateTime) SubYears(n int) DateTime  { return dt.AddYears(-n) }

// =============================================================================
// TIME-PART ARITHMETIC - elapsed time, overflow carries into the date
// =============================================================================

// AddNanos advances the date-time by n nanoseconds of elapsed time.
// Overflow past midnight carries into the date component; adding 2 hours
// to 23:30 lands on 01:30 of the next day. No clamping is ever applied.
func (dt DateTime) AddNanos(n int64) DateTime {
	total := dt.time.nanoOfDay() + n
	carry := floorDiv64(total, nanosPerDay)
	rest := total - carry*nanosPerDay
	return DateTime{date: dt.date.AddDays(int(carry)), time: timeOfNanoOfDay(rest)}
}

func (dt DateTime) AddSeconds(n int64) DateTime { return dt.AddNanos(n * nanosPerSecond) }
func (dt DateTime) AddMinutes(n int64) DateTime { return dt.AddNanos(n * nanosPerMinute) }
func (dt DateTime) AddHours(n int64) DateTime   { return dt.AddNanos(n * nanosPerHour) }

func (dt DateTime) SubNanos(n int64) DateTime   { return dt.AddNanos(-n) }
func (dt DateTime) SubSeconds(n int64) DateTime { return dt.AddSeconds(-n) }
func (dt DateTime) SubMinutes(n int64) DateTime { return dt.AddMinutes(-n) }
func (dt DateTime) SubHours(n int64) DateTime   { return dt.AddHours(-n) }

// nanosUntil returns the exact elapsed nanoseconds from dt to other
// (negative when other is earlier).
func (dt DateTime) nanosUntil(other DateTime) int64 {
	days := int64(DaysBetween(dt.date, other.date))
	return days*nanosPerDay + other.time.nanoOfDay() - dt.time.nanoOfDay()
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
