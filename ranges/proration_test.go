package ranges_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/ranges"
)

// fixedHolidays is a test calendar backed by an in-memory set.
type fixedHolidays struct {
	days map[calendar.Date]bool
	err  error
}

func (f fixedHolidays) IsHoliday(d calendar.Date) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.days[d], nil
}

func (f fixedHolidays) Holidays(year int) ([]ranges.Holiday, error) {
	var out []ranges.Holiday
	for d := range f.days {
		if d.Year() == year {
			out = append(out, ranges.Holiday{Date: d})
		}
	}
	return out, nil
}

// =============================================================================
// PRORATION
// =============================================================================

func TestProrate(t *testing.T) {
	july := ranges.WithStartDate(ranges.Monthly, d(2023, time.July, 1))
	require.Equal(t, 31, july.Days())

	cases := []struct {
		name string
		asOf calendar.Date
		want string
	}{
		{"before the range", d(2023, time.June, 30), "0"},
		{"first day", d(2023, time.July, 1), "0.0322580645161290"},
		{"midpoint-ish", d(2023, time.July, 16), "0.5161290322580645"},
		{"last day", d(2023, time.July, 31), "1"},
		{"after the range", d(2023, time.August, 15), "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ranges.Prorate(july, tc.asOf)
			want, err := decimal.NewFromString(tc.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestProrate_ElapsedDaysAreInclusive(t *testing.T) {
	// Day k of an n-day range yields k/n.
	week := ranges.WithStartDate(ranges.Weekly, d(2023, time.June, 12))
	got := ranges.Prorate(week, d(2023, time.June, 14))
	want := decimal.New(3, 0).Div(decimal.New(7, 0))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func TestDailyRate(t *testing.T) {
	feb := ranges.WithStartDate(ranges.Monthly, d(2023, time.February, 1))
	total := decimal.New(2800, 0)
	rate := ranges.DailyRate(total, feb)
	assert.True(t, rate.Equal(decimal.New(100, 0)), "got %s", rate)

	// Leap February spreads the same total over 29 days.
	febLeap := ranges.WithStartDate(ranges.Monthly, d(2024, time.February, 1))
	rate = ranges.DailyRate(decimal.New(290, 0), febLeap)
	assert.True(t, rate.Equal(decimal.New(10, 0)), "got %s", rate)
}

// =============================================================================
// WORKDAYS
// =============================================================================

func TestWorkdays(t *testing.T) {
	// June 2023: 30 days, 22 weekdays.
	june := ranges.WithStartDate(ranges.Monthly, d(2023, time.June, 1))

	got, err := ranges.Workdays(june, nil)
	require.NoError(t, err)
	assert.Equal(t, 22, got)

	// One weekday holiday drops the count by one; a weekend holiday is
	// already excluded and changes nothing.
	cal := fixedHolidays{days: map[calendar.Date]bool{
		d(2023, time.June, 19): true, // Monday
		d(2023, time.June, 25): true, // Sunday
	}}
	got, err = ranges.Workdays(june, cal)
	require.NoError(t, err)
	assert.Equal(t, 21, got)
}

func TestWorkdays_PropagatesCalendarError(t *testing.T) {
	boom := errors.New("store unavailable")
	week := ranges.WithStartDate(ranges.Weekly, d(2023, time.June, 12))

	_, err := ranges.Workdays(week, fixedHolidays{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, ranges.IsWeekend(d(2023, time.June, 17)))  // Saturday
	assert.True(t, ranges.IsWeekend(d(2023, time.June, 18)))  // Sunday
	assert.False(t, ranges.IsWeekend(d(2023, time.June, 19))) // Monday
}

// =============================================================================
// SCHEDULE GENERATION
// =============================================================================

func TestGenerate(t *testing.T) {
	got := ranges.Generate(ranges.Monthly, d(2023, time.November, 15), 4)
	require.Len(t, got, 4)

	assert.Equal(t, d(2023, time.November, 1), got[0].StartDate())
	assert.Equal(t, d(2023, time.December, 1), got[1].StartDate())
	assert.Equal(t, d(2024, time.January, 1), got[2].StartDate())
	assert.Equal(t, d(2024, time.February, 29), got[3].EndDate())

	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].EndDate().AddDays(1), got[i].StartDate())
	}

	assert.Nil(t, ranges.Generate(ranges.Monthly, d(2023, time.November, 15), 0))
}

func TestGenerateAnchored(t *testing.T) {
	anchor := d(2025, time.January, 6)
	got := ranges.GenerateAnchored(d(2025, time.February, 10), anchor, 3)
	require.Len(t, got, 3)

	assert.Equal(t, d(2025, time.February, 3), got[0].StartDate())
	assert.Equal(t, d(2025, time.February, 17), got[1].StartDate())
	assert.Equal(t, d(2025, time.March, 3), got[2].StartDate())
}

func TestCovering(t *testing.T) {
	got := ranges.Covering(ranges.Quarterly, d(2023, time.February, 1), d(2023, time.November, 1))
	require.Len(t, got, 4)
	assert.Equal(t, d(2023, time.January, 1), got[0].StartDate())
	assert.Equal(t, d(2023, time.December, 31), got[3].EndDate())

	// to before from yields just the period containing from.
	got = ranges.Covering(ranges.Monthly, d(2023, time.June, 10), d(2023, time.January, 1))
	require.Len(t, got, 1)
	assert.Equal(t, d(2023, time.June, 1), got[0].StartDate())
}
