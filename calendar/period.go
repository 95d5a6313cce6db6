/*
period.go - Calendar-field delta

PURPOSE:
  Period is a signed (years, months, days) delta with calendar-field
  semantics, as opposed to Duration's elapsed-time semantics. Fields are
  independently specified and never normalized into a single scalar:
  "1 month" is a different thing from "30 days" once clamping enters the
  picture.
*/
package calendar

import "fmt"

// Period is an immutable calendar delta of years, months and days.
// The zero value is the zero period.
type Period struct {
	Years  int
	Months int
	Days   int
}

// NewPeriod creates a period from its three fields, verbatim; 12 months
// does not become 1 year.
func NewPeriod(years, months, days int) Period {
	return Period{Years: years, Months: months, Days: days}
}

func OfYears(n int) Period  { return Period{Years: n} }
func OfMonths(n int) Period { return Period{Months: n} }
func OfWeeks(n int) Period  { return Period{Days: n * 7} }
func OfDays(n int) Period   { return Period{Days: n} }

func (p Period) IsZero() bool { return p == Period{} }

func (p Period) Plus(other Period) Period {
	return Period{
		Years:  p.Years + other.Years,
		Months: p.Months + other.Months,
		Days:   p.Days + other.Days,
	}
}

func (p Period) Minus(other Period) Period { return p.Plus(other.Negated()) }

func (p Period) Negated() Period {
	return Period{Years: -p.Years, Months: -p.Months, Days: -p.Days}
}

// AddTo applies the period to a date: months first (years folded into
// months, one clamping step), then days. Adding P1M1D to Jan 31 gives
// Feb 28/29 plus one day, not Mar 3.
func (p Period) AddTo(d Date) Date {
	return d.AddMonths(p.Years*12 + p.Months).AddDays(p.Days)
}

// SubFrom applies the negated period to a date.
func (p Period) SubFrom(d Date) Date { return p.Negated().AddTo(d) }

// String returns an ISO-8601-flavored form such as P1Y2M3D; the zero
// period renders as P0D.
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	out := "P"
	if p.Years != 0 {
		out += fmt.Sprintf("%dY", p.Years)
	}
	if p.Months != 0 {
		out += fmt.Sprintf("%dM", p.Months)
	}
	if p.Days != 0 {
		out += fmt.Sprintf("%dD", p.Days)
	}
	return out
}
