/*
Package ranges provides the inclusive, navigable date range family.

PURPOSE:
  A Range is an immutable inclusive [start, end] interval of calendar
  dates whose length and alignment are dictated by its Kind: weekly,
  bi-weekly, semi-monthly, monthly, quarterly, semi-annual or annual.
  Ranges are walked with Prior()/Next() to produce adjacent
  non-overlapping periods of the same kind - the building block for pay
  schedules, billing cycles and accrual windows.

ALIGNMENT RULES:
  Construction snaps to the canonical period containing the given date:
    Weekly:      Mon..Sun ISO week
    SemiMonthly: 1st..15th or 16th..end of month
    Monthly:     1st..last day of month
    Quarterly:   calendar quarter (Jan-Mar, Apr-Jun, Jul-Sep, Oct-Dec)
    SemiAnnual:  Jan-Jun or Jul-Dec
    Annual:      Jan 1..Dec 31
  BiWeekly is the exception: it is a literal 14-day window. By default it
  floats from whatever date it is given; callers that need fortnights
  counted from a payroll anchor use BiWeeklyAnchored. The anchoring
  choice is the caller's, because a floating WithStartDate and
  WithEndDate can name different fortnights for the same date.

LEAP YEARS:
  Month-aligned kinds recompute their end from the true last day of the
  covered month per target year, so February always comes out right.
  Navigation is exact day/month arithmetic and never drifts.

DISPATCH:
  The kind set is fixed, so behavior is switch-dispatched over a closed
  enum rather than an interface per kind.

SEE ALSO:
  - schedule.go: generating consecutive ranges
  - proration.go: decimal fractions and workday counts over a range
*/
package ranges

import (
	"fmt"
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// Kind identifies a period length and alignment rule.
type Kind int

const (
	Weekly Kind = iota
	BiWeekly
	SemiMonthly
	Monthly
	Quarterly
	SemiAnnual
	Annual
)

var kindNames = map[Kind]string{
	Weekly:      "weekly",
	BiWeekly:    "bi_weekly",
	SemiMonthly: "semi_monthly",
	Monthly:     "monthly",
	Quarterly:   "quarterly",
	SemiAnnual:  "semi_annual",
	Annual:      "annual",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind converts a kind name ("monthly", "bi_weekly", ...) back to a
// Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Anchoring selects how bi-weekly windows are placed.
type Anchoring string

const (
	// AnchorFloating places the 14-day window literally at the given
	// date, with no snapping. The default.
	AnchorFloating Anchoring = "floating"

	// AnchorEpoch snaps the window to whole fortnights counted from a
	// caller-supplied anchor date (e.g. the first day of a pay cycle).
	AnchorEpoch Anchoring = "epoch"
)

// Range is an immutable inclusive [start, end] period of one Kind.
// start <= end always holds; end is exactly one period length minus one
// day after start.
type Range struct {
	kind  Kind
	start calendar.Date
	end   calendar.Date
}

// WithStartDate builds the canonical period of the given kind containing
// d. For BiWeekly this is the floating 14-day window starting at d.
func WithStartDate(kind Kind, d calendar.Date) Range {
	var start, end calendar.Date
	switch kind {
	case Weekly:
		start = startOfWeek(d)
		end = start.AddDays(6)
	case BiWeekly:
		start = d
		end = d.AddDays(13)
	case SemiMonthly:
		start, end = semiMonthOf(d)
	case Monthly:
		start = d.FirstOfMonth()
		end = d.LastOfMonth()
	case Quarterly:
		start = startOfQuarter(d)
		end = start.AddMonths(2).LastOfMonth()
	case SemiAnnual:
		start = startOfHalf(d)
		end = start.AddMonths(5).LastOfMonth()
	case Annual:
		start = calendar.MustDate(d.Year(), time.January, 1)
		end = calendar.MustDate(d.Year(), time.December, 31)
	}
	return newRange(kind, start, end)
}

// WithEndDate builds the canonical period of the given kind containing
// d, anchored from the end. For BiWeekly this is the floating 14-day
// window ending at d.
func WithEndDate(kind Kind, d calendar.Date) Range {
	if kind == BiWeekly {
		return newRange(BiWeekly, d.SubDays(13), d)
	}
	// Every other kind snaps, so the period containing d is the period
	// ending at or after d.
	return WithStartDate(kind, d)
}

// BiWeeklyAnchored builds the 14-day window containing d when fortnights
// are counted from anchor. The anchor itself starts a window; dates
// before the anchor fall into windows counted backwards from it.
func BiWeeklyAnchored(d, anchor calendar.Date) Range {
	offset := calendar.DaysBetween(anchor, d)
	start := anchor.AddDays(14 * floorDiv(offset, 14))
	return newRange(BiWeekly, start, start.AddDays(13))
}

// newRange asserts the family invariant. A violation means a period rule
// above is defective, not that the caller passed bad input, so it panics
// with ErrInvalidRange rather than returning an error.
func newRange(kind Kind, start, end calendar.Date) Range {
	if end.Before(start) {
		panic(fmt.Errorf("%w: %s [%s, %s]", calendar.ErrInvalidRange, kind, start, end))
	}
	return Range{kind: kind, start: start, end: end}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (r Range) Kind() Kind               { return r.kind }
func (r Range) StartDate() calendar.Date { return r.start }
func (r Range) EndDate() calendar.Date   { return r.end }

// Contains reports whether d lies within the inclusive range.
func (r Range) Contains(d calendar.Date) bool {
	return !d.Before(r.start) && !d.After(r.end)
}

// Days returns the inclusive day count of the range.
func (r Range) Days() int {
	return calendar.DaysBetween(r.start, r.end) + 1
}

// Dates returns every day in the range, in order.
func (r Range) Dates() []calendar.Date {
	out := make([]calendar.Date, 0, r.Days())
	for d := r.start; !d.After(r.end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("%s[%s, %s]", r.kind, r.start, r.end)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// Next returns the immediately adjacent following period of the same
// kind: Next().StartDate() is always EndDate().AddDays(1).
func (r Range) Next() Range { return r.step(1) }

// Prior returns the immediately adjacent preceding period of the same
// kind: Prior().EndDate() is always StartDate().SubDays(1).
func (r Range) Prior() Range { return r.step(-1) }

func (r Range) step(dir int) Range {
	switch r.kind {
	case Weekly:
		start := r.start.AddDays(7 * dir)
		return newRange(Weekly, start, start.AddDays(6))
	case BiWeekly:
		start := r.start.AddDays(14 * dir)
		return newRange(BiWeekly, start, start.AddDays(13))
	case SemiMonthly:
		return r.stepSemiMonthly(dir)
	case Monthly:
		start := r.start.AddMonths(dir)
		return newRange(Monthly, start, start.LastOfMonth())
	case Quarterly:
		start := r.start.AddMonths(3 * dir)
		return newRange(Quarterly, start, start.AddMonths(2).LastOfMonth())
	case SemiAnnual:
		start := r.start.AddMonths(6 * dir)
		return newRange(SemiAnnual, start, start.AddMonths(5).LastOfMonth())
	case Annual:
		year := r.start.Year() + dir
		return newRange(Annual,
			calendar.MustDate(year, time.January, 1),
			calendar.MustDate(year, time.December, 31))
	default:
		return r
	}
}

// stepSemiMonthly alternates between the two halves of a month. The
// first half's next is the second half of the same month; the second
// half's next is the first half of the following month.
func (r Range) stepSemiMonthly(dir int) Range {
	firstHalf := r.start.Day() == 1
	var start calendar.Date
	switch {
	case dir > 0 && firstHalf:
		start = calendar.MustDate(r.start.Year(), r.start.Month(), 16)
	case dir > 0 && !firstHalf:
		start = r.start.FirstOfMonth().AddMonths(1)
	case dir < 0 && firstHalf:
		prev := r.start.SubDays(1) // last day of previous month
		start = calendar.MustDate(prev.Year(), prev.Month(), 16)
	default: // dir < 0, second half
		start = r.start.FirstOfMonth()
	}
	return semiMonthRange(start)
}

// =============================================================================
// ALIGNMENT HELPERS
// =============================================================================

// startOfWeek returns the Monday of the ISO week containing d.
func startOfWeek(d calendar.Date) calendar.Date {
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (int(d.DayOfWeek()) + 6) % 7
	return d.SubDays(offset)
}

func startOfQuarter(d calendar.Date) calendar.Date {
	month := time.Month((int(d.Month())-1)/3*3 + 1)
	return calendar.MustDate(d.Year(), month, 1)
}

func startOfHalf(d calendar.Date) calendar.Date {
	if d.Month() <= time.June {
		return calendar.MustDate(d.Year(), time.January, 1)
	}
	return calendar.MustDate(d.Year(), time.July, 1)
}

// semiMonthOf returns the half-month [1st, 15th] or [16th, EOM]
// containing d.
func semiMonthOf(d calendar.Date) (calendar.Date, calendar.Date) {
	if d.Day() <= 15 {
		return d.FirstOfMonth(), calendar.MustDate(d.Year(), d.Month(), 15)
	}
	return calendar.MustDate(d.Year(), d.Month(), 16), d.LastOfMonth()
}

func semiMonthRange(start calendar.Date) Range {
	s, e := semiMonthOf(start)
	return newRange(SemiMonthly, s, e)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
