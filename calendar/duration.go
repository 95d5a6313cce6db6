/*
duration.go - Elapsed-time delta

PURPOSE:
  Duration is a signed elapsed-time delta held as whole seconds plus a
  nanosecond adjustment in 0..999_999_999. Unlike Period it is uniform
  regardless of calendar position: applying it to a DateTime is exact
  nanosecond arithmetic with overflow carried into the date.
*/
package calendar

import "fmt"

// Duration is an immutable elapsed-time delta. Seconds carry the sign;
// Nanos is always in 0..999_999_999 so the total is Seconds*1e9 + Nanos.
type Duration struct {
	seconds int64
	nanos   int32
}

// NewDuration creates a duration from seconds and a nanosecond
// adjustment, normalizing nanos into 0..999_999_999.
func NewDuration(seconds int64, nanos int64) Duration {
	carry := floorDiv64(nanos, nanosPerSecond)
	return Duration{
		seconds: seconds + carry,
		nanos:   int32(nanos - carry*nanosPerSecond),
	}
}

func OfHours(n int64) Duration   { return Duration{seconds: n * 3600} }
func OfMinutes(n int64) Duration { return Duration{seconds: n * 60} }
func OfSeconds(n int64) Duration { return Duration{seconds: n} }
func OfMillis(n int64) Duration  { return NewDuration(0, n*1_000_000) }
func OfNanos(n int64) Duration   { return NewDuration(0, n) }

func (d Duration) Seconds() int64 { return d.seconds }
func (d Duration) Nanos() int32   { return d.nanos }

func (d Duration) IsZero() bool     { return d.seconds == 0 && d.nanos == 0 }
func (d Duration) IsNegative() bool { return d.seconds < 0 || (d.seconds == 0 && d.nanos < 0) }
func (d Duration) IsPositive() bool { return !d.IsZero() && !d.IsNegative() }

func (d Duration) Plus(other Duration) Duration {
	return NewDuration(d.seconds+other.seconds, int64(d.nanos)+int64(other.nanos))
}

func (d Duration) Minus(other Duration) Duration { return d.Plus(other.Negated()) }

func (d Duration) Negated() Duration {
	return NewDuration(-d.seconds, -int64(d.nanos))
}

func (d Duration) Abs() Duration {
	if d.IsNegative() {
		return d.Negated()
	}
	return d
}

// =============================================================================
// CONVERSIONS - whole units, truncated toward zero
// =============================================================================

func (d Duration) ToDays() int64    { return d.totalNanos() / nanosPerDay }
func (d Duration) ToHours() int64   { return d.totalNanos() / nanosPerHour }
func (d Duration) ToMinutes() int64 { return d.totalNanos() / nanosPerMinute }
func (d Duration) ToSeconds() int64 { return d.totalNanos() / nanosPerSecond }
func (d Duration) ToNanos() int64   { return d.totalNanos() }

func (d Duration) totalNanos() int64 {
	return d.seconds*nanosPerSecond + int64(d.nanos)
}

// =============================================================================
// APPLICATION
// =============================================================================

// AddTo applies the duration to a date-time as exact elapsed time.
func (d Duration) AddTo(dt DateTime) DateTime {
	return dt.AddSeconds(d.seconds).AddNanos(int64(d.nanos))
}

// SubFrom applies the negated duration to a date-time.
func (d Duration) SubFrom(dt DateTime) DateTime { return d.Negated().AddTo(dt) }

// Between returns the exact elapsed time from a to b (negative when b is
// earlier).
func Between(a, b DateTime) Duration {
	return NewDuration(0, a.nanosUntil(b))
}

func (d Duration) String() string {
	if d.nanos == 0 {
		return fmt.Sprintf("%ds", d.seconds)
	}
	return fmt.Sprintf("%ds+%dns", d.seconds, d.nanos)
}
