/*
holidays.go - Holiday calendar and workday counting

PURPOSE:
  Ranges are often consumed by payroll-style callers that care about
  working days, not raw days. HolidayCalendar abstracts where holidays
  come from (the sqlite store implements it); Workdays counts Mon-Fri
  days in a range excluding them.
*/
package ranges

import (
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// Holiday is a single non-working day.
type Holiday struct {
	ID        string
	Date      calendar.Date
	Name      string // e.g. "Christmas Day"
	Recurring bool   // true = same month/day every year
}

// HolidayCalendar provides holiday lookup.
type HolidayCalendar interface {
	// IsHoliday reports whether the date is a holiday, honoring
	// recurring holidays by month/day.
	IsHoliday(d calendar.Date) (bool, error)

	// Holidays returns all holidays that fall in the given year.
	Holidays(year int) ([]Holiday, error)
}

// NoHolidays is a no-op calendar for when holidays are disabled.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(calendar.Date) (bool, error) { return false, nil }
func (NoHolidays) Holidays(int) ([]Holiday, error)       { return nil, nil }

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d calendar.Date) bool {
	wd := d.DayOfWeek()
	return wd == time.Saturday || wd == time.Sunday
}

// Workdays counts the Mon-Fri, non-holiday days in the range. A nil
// calendar counts all weekdays.
func Workdays(r Range, cal HolidayCalendar) (int, error) {
	if cal == nil {
		cal = NoHolidays{}
	}
	count := 0
	for d := r.StartDate(); !d.After(r.EndDate()); d = d.AddDays(1) {
		if IsWeekend(d) {
			continue
		}
		holiday, err := cal.IsHoliday(d)
		if err != nil {
			return 0, err
		}
		if !holiday {
			count++
		}
	}
	return count, nil
}
