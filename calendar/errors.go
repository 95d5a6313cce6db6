/*
errors.go - Centralized error types for the calendar engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Higher layers (ranges, api) reuse these rather than defining their own.

ERROR CATEGORIES:
  1. Construction errors - A field is outside its calendar-valid range
  2. Dispatch errors     - A unit applied to a value type it cannot serve
  3. Consistency faults  - A range rule produced an impossible interval

PROPAGATION POLICY:
  Construction-time validation failures are explicit errors returned to
  the caller; they are never silently clamped. Arithmetic-result clamping
  (end-of-month adjustment) is defined output behavior and never fails.
  Consistency faults indicate a defect in range-rule code and are raised
  as panics, not returned.

USAGE:
  if errors.Is(err, calendar.ErrInvalidDate) { ... }

  var dateErr *calendar.InvalidDateError
  if errors.As(err, &dateErr) { log.Print(dateErr.Field) }
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date or time field is outside its
	// calendar-valid range at construction.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnsupportedUnit is returned when a unit is asked to operate on a
	// value type it cannot serve (e.g. Hours on a date-only value).
	ErrUnsupportedUnit = errors.New("unsupported unit")

	// ErrInvalidRange marks a period rule that produced an interval with
	// end before start. This is an internal-consistency fault, not a user
	// input error; it should be unreachable.
	ErrInvalidRange = errors.New("invalid range: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports which field of a date or time-of-day was out
// of range at construction.
type InvalidDateError struct {
	Field string // "month", "day", "hour", "minute", "second", "nano"
	Value int    // the rejected value
	Year  int    // context for day validation
	Month time.Month
}

func (e *InvalidDateError) Error() string {
	if e.Field == "day" {
		return fmt.Sprintf("invalid date: day %d out of range for %04d-%02d",
			e.Value, e.Year, int(e.Month))
	}
	return fmt.Sprintf("invalid date: %s %d out of range", e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// UnsupportedUnitError reports a unit/value type mismatch.
type UnsupportedUnitError struct {
	Unit   Unit
	Target string // "Date" or "DateTime"
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported unit: %s cannot be applied to %s", e.Unit, e.Target)
}

func (e *UnsupportedUnitError) Unwrap() error { return ErrUnsupportedUnit }
