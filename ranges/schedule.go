/*
schedule.go - Generating consecutive periods

PURPOSE:
  A schedule is a series of adjacent ranges of one kind, the shape of a
  pay calendar. Generate walks Next() from the period containing a date;
  Covering walks until a target date is reached.
*/
package ranges

import "github.com/warp/calendar-engine/calendar"

// Generate returns n consecutive ranges of the given kind, starting with
// the canonical period containing from. n <= 0 yields nil.
func Generate(kind Kind, from calendar.Date, n int) []Range {
	if n <= 0 {
		return nil
	}
	out := make([]Range, 0, n)
	r := WithStartDate(kind, from)
	for i := 0; i < n; i++ {
		out = append(out, r)
		r = r.Next()
	}
	return out
}

// GenerateAnchored is Generate for epoch-anchored bi-weekly schedules.
func GenerateAnchored(from, anchor calendar.Date, n int) []Range {
	if n <= 0 {
		return nil
	}
	out := make([]Range, 0, n)
	r := BiWeeklyAnchored(from, anchor)
	for i := 0; i < n; i++ {
		out = append(out, r)
		r = r.Next()
	}
	return out
}

// Covering returns the consecutive ranges of the given kind from the
// period containing from through the period containing to, inclusive.
// If to is before from, the single period containing from is returned.
func Covering(kind Kind, from, to calendar.Date) []Range {
	r := WithStartDate(kind, from)
	out := []Range{r}
	for r.EndDate().Before(to) {
		r = r.Next()
		out = append(out, r)
	}
	return out
}
