package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/ranges"
	"github.com/warp/calendar-engine/store"
)

// newTestStore uses a temp file rather than :memory: because each pooled
// connection would otherwise see its own empty in-memory database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func d(y int, m time.Month, day int) calendar.Date {
	return calendar.MustDate(y, m, day)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidays_ExactDate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.SaveHoliday(ctx, ranges.Holiday{
		ID:   "juneteenth-2023",
		Date: d(2023, time.June, 19),
		Name: "Juneteenth",
	})
	require.NoError(t, err)

	got, err := st.IsHoliday(d(2023, time.June, 19))
	require.NoError(t, err)
	assert.True(t, got)

	// A non-recurring holiday matches only its own year.
	got, err = st.IsHoliday(d(2024, time.June, 19))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHolidays_RecurringMatchesEveryYear(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.SaveHoliday(ctx, ranges.Holiday{
		ID:        "christmas",
		Date:      d(2020, time.December, 25),
		Name:      "Christmas Day",
		Recurring: true,
	})
	require.NoError(t, err)

	for _, year := range []int{2020, 2023, 2031} {
		got, err := st.IsHoliday(d(year, time.December, 25))
		require.NoError(t, err)
		assert.True(t, got, "year %d", year)
	}

	got, err := st.IsHoliday(d(2023, time.December, 24))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSaveHoliday_UpsertsOnDateAndName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	h := ranges.Holiday{ID: "ny", Date: d(2023, time.January, 1), Name: "New Year"}
	require.NoError(t, st.SaveHoliday(ctx, h))

	// Saving the same (date, name) again flips the recurring flag in
	// place instead of inserting a duplicate.
	h.Recurring = true
	require.NoError(t, st.SaveHoliday(ctx, h))

	all, err := st.Holidays(2023)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Recurring)
}

func TestHolidays_ProjectsRecurringOntoYear(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "christmas", Date: d(2020, time.December, 25), Name: "Christmas Day", Recurring: true,
	}))
	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "election-2024", Date: d(2024, time.November, 5), Name: "Election Day",
	}))

	got, err := st.Holidays(2026)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d(2026, time.December, 25), got[0].Date)

	got, err = st.Holidays(2024)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHolidays_SkipsLeapDayRecurrenceOnNonLeapYears(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "leap-party", Date: d(2024, time.February, 29), Name: "Leap Party", Recurring: true,
	}))

	got, err := st.Holidays(2025)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = st.Holidays(2028)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d(2028, time.February, 29), got[0].Date)
}

func TestDeleteHoliday(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "temp", Date: d(2023, time.June, 19), Name: "Temp",
	}))
	require.NoError(t, st.DeleteHoliday(ctx, "temp"))

	got, err := st.IsHoliday(d(2023, time.June, 19))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestStore_BacksWorkdayCounting(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// June 2023 has 22 weekdays; Juneteenth (Mon the 19th) removes one.
	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "juneteenth", Date: d(2023, time.June, 19), Name: "Juneteenth",
	}))

	june := ranges.WithStartDate(ranges.Monthly, d(2023, time.June, 1))
	got, err := ranges.Workdays(june, st)
	require.NoError(t, err)
	assert.Equal(t, 21, got)
}

// =============================================================================
// SCHEDULES
// =============================================================================

func TestSchedules_CRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := store.ScheduleRecord{
		ID:         "payroll-biweekly",
		Name:       "Bi-weekly payroll",
		Kind:       "bi_weekly",
		Anchor:     "2025-01-06",
		Anchoring:  "epoch",
		ConfigJSON: `{"id":"payroll-biweekly","kind":"bi_weekly","anchoring":"epoch","anchor":"2025-01-06"}`,
	}
	require.NoError(t, st.SaveSchedule(ctx, rec))

	got, err := st.GetSchedule(ctx, "payroll-biweekly")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Kind, got.Kind)
	assert.Equal(t, rec.Anchor, got.Anchor)
	assert.Equal(t, rec.ConfigJSON, got.ConfigJSON)

	// Upsert by ID.
	rec.Name = "Renamed"
	require.NoError(t, st.SaveSchedule(ctx, rec))
	got, err = st.GetSchedule(ctx, "payroll-biweekly")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	all, err := st.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, st.DeleteSchedule(ctx, "payroll-biweekly"))
	got, err = st.GetSchedule(ctx, "payroll-biweekly")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetSchedule_AbsentReturnsNil(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetSchedule(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveHoliday(ctx, ranges.Holiday{
		ID: "h", Date: d(2023, time.June, 19), Name: "H",
	}))
	require.NoError(t, st.SaveSchedule(ctx, store.ScheduleRecord{
		ID: "s", Name: "S", Kind: "monthly", Anchoring: "floating", ConfigJSON: "{}",
	}))

	require.NoError(t, st.Reset(ctx))

	holidays, err := st.Holidays(2023)
	require.NoError(t, err)
	assert.Empty(t, holidays)

	schedules, err := st.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}
