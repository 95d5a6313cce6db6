/*
clock.go - Injected wall-clock access

PURPOSE:
  The only place the engine touches the system clock. Everything else is
  deterministic, so callers and tests inject a Clock and keep arithmetic
  and range logic independent of wall-clock time.
*/
package calendar

import "time"

// Clock supplies the current date and date-time. Implementations must be
// safe for concurrent use.
type Clock interface {
	Today() Date
	Now() DateTime
}

// SystemClock reads the real clock in UTC.
type SystemClock struct{}

func (SystemClock) Today() Date {
	now := time.Now().UTC()
	return dateOf(now)
}

func (SystemClock) Now() DateTime {
	now := time.Now().UTC()
	tod := TimeOfDay{hour: now.Hour(), minute: now.Minute(), second: now.Second(), nano: now.Nanosecond()}
	return DateTime{date: dateOf(now), time: tod}
}

// FixedClock always reports the same instant. For tests.
type FixedClock struct {
	Instant DateTime
}

func (c FixedClock) Today() Date   { return c.Instant.date }
func (c FixedClock) Now() DateTime { return c.Instant }
