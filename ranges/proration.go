/*
proration.go - Decimal fractions over a range

PURPOSE:
  Pro-rata calculations over a period: how much of the range has elapsed
  as of a date, and what a per-day rate is for a total amount spread over
  the range. Uses decimal.Decimal to avoid floating-point drift in
  payroll-style math.
*/
package ranges

import (
	"github.com/shopspring/decimal"

	"github.com/warp/calendar-engine/calendar"
)

// Prorate returns the inclusive fraction of the range elapsed as of the
// given date: 0 before the range, 1 at or after its end. On a 31-day
// month, the 1st yields 1/31.
func Prorate(r Range, asOf calendar.Date) decimal.Decimal {
	if asOf.Before(r.StartDate()) {
		return decimal.Zero
	}
	if !asOf.Before(r.EndDate()) {
		return decimal.New(1, 0)
	}
	elapsed := int64(calendar.DaysBetween(r.StartDate(), asOf)) + 1
	return decimal.New(elapsed, 0).Div(decimal.New(int64(r.Days()), 0))
}

// DailyRate spreads a total amount evenly over the range's days.
func DailyRate(total decimal.Decimal, r Range) decimal.Decimal {
	return total.Div(decimal.New(int64(r.Days()), 0))
}
