/*
handlers_test.go - HTTP API tests

APPROACH:
  Each test spins up the real router over the in-memory store and a
  fixed clock, then exercises the endpoint with httptest. Responses are
  decoded into the DTO types and compared field-wise.
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := NewHandler(memory.New())
	h.Clock = calendar.FixedClock{
		Instant: calendar.MustDate(2025, time.June, 16).AtStartOfDay(),
	}

	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// =============================================================================
// DATES
// =============================================================================

func TestToday_UsesInjectedClock(t *testing.T) {
	srv := newTestServer(t)

	var got DateDTO
	status := doJSON(t, srv, http.MethodGet, "/api/dates/today", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-06-16", got.Date)
	assert.Equal(t, "Monday", got.DayOfWeek)
}

func TestShiftDate(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		req  ShiftRequest
		want string
	}{
		{"add days", ShiftRequest{Date: "2023-06-15", Unit: "days", Amount: 20}, "2023-07-05"},
		{"add months clamps", ShiftRequest{Date: "2023-01-31", Unit: "months", Amount: 1}, "2023-02-28"},
		{"add years clamps leap day", ShiftRequest{Date: "2024-02-29", Unit: "years", Amount: 1}, "2025-02-28"},
		{"negative amount", ShiftRequest{Date: "2023-03-01", Unit: "days", Amount: -1}, "2023-02-28"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got DateDTO
			status := doJSON(t, srv, http.MethodPost, "/api/dates/shift", tc.req, &got)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tc.want, got.Date)
		})
	}
}

func TestShiftDate_Rejections(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		req  ShiftRequest
	}{
		{"invalid date", ShiftRequest{Date: "2023-02-30", Unit: "days", Amount: 1}},
		{"unknown unit", ShiftRequest{Date: "2023-06-15", Unit: "fortnights", Amount: 1}},
		{"time unit on a date", ShiftRequest{Date: "2023-06-15", Unit: "hours", Amount: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ErrorResponse
			status := doJSON(t, srv, http.MethodPost, "/api/dates/shift", tc.req, &got)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestBetween(t *testing.T) {
	srv := newTestServer(t)

	var got BetweenDTO
	status := doJSON(t, srv, http.MethodGet,
		"/api/dates/between?start=2023-01-31&end=2023-02-28&unit=months", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), got.Amount)

	status = doJSON(t, srv, http.MethodGet,
		"/api/dates/between?start=2023-06-01&end=2023-06-15&unit=days", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(14), got.Amount)
}

// =============================================================================
// RANGES
// =============================================================================

func TestBuildRange(t *testing.T) {
	srv := newTestServer(t)

	var got RangeDTO
	status := doJSON(t, srv, http.MethodPost, "/api/ranges",
		RangeRequest{Kind: "monthly", StartDate: "2024-02-10"}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, RangeDTO{Kind: "monthly", StartDate: "2024-02-01", EndDate: "2024-02-29", Days: 29}, got)

	// Epoch-anchored bi-weekly window.
	status = doJSON(t, srv, http.MethodPost, "/api/ranges",
		RangeRequest{Kind: "bi_weekly", StartDate: "2025-02-10", Anchoring: "epoch", Anchor: "2025-01-06"}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-02-03", got.StartDate)
	assert.Equal(t, "2025-02-16", got.EndDate)

	// From an end date.
	status = doJSON(t, srv, http.MethodPost, "/api/ranges",
		RangeRequest{Kind: "bi_weekly", EndDate: "2025-02-16"}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-02-03", got.StartDate)

	// Epoch anchoring applies on the end-date path too: the window is the
	// anchored fortnight containing the date.
	status = doJSON(t, srv, http.MethodPost, "/api/ranges",
		RangeRequest{Kind: "bi_weekly", EndDate: "2025-02-10", Anchoring: "epoch", Anchor: "2025-01-06"}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-02-03", got.StartDate)
	assert.Equal(t, "2025-02-16", got.EndDate)
}

func TestBuildRange_Rejections(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		req  RangeRequest
	}{
		{"unknown kind", RangeRequest{Kind: "decennial", StartDate: "2024-02-10"}},
		{"no date", RangeRequest{Kind: "monthly"}},
		{"epoch on non-biweekly", RangeRequest{Kind: "monthly", StartDate: "2024-02-10", Anchoring: "epoch", Anchor: "2025-01-06"}},
		{"epoch anchoring on end date of non-biweekly", RangeRequest{Kind: "quarterly", EndDate: "2024-03-31", Anchoring: "epoch", Anchor: "2025-01-06"}},
		{"unknown anchoring", RangeRequest{Kind: "bi_weekly", StartDate: "2024-02-10", Anchoring: "lunar"}},
		{"epoch without anchor", RangeRequest{Kind: "bi_weekly", StartDate: "2024-02-10", Anchoring: "epoch"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ErrorResponse
			status := doJSON(t, srv, http.MethodPost, "/api/ranges", tc.req, &got)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestNavigateRange(t *testing.T) {
	srv := newTestServer(t)

	var got RangeDTO
	status := doJSON(t, srv, http.MethodPost, "/api/ranges/navigate",
		NavigateRequest{Kind: "semi_monthly", StartDate: "2023-06-05", Steps: 2}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2023-07-01", got.StartDate)
	assert.Equal(t, "2023-07-15", got.EndDate)

	status = doJSON(t, srv, http.MethodPost, "/api/ranges/navigate",
		NavigateRequest{Kind: "quarterly", StartDate: "2024-02-14", Steps: -1}, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2023-10-01", got.StartDate)
	assert.Equal(t, "2023-12-31", got.EndDate)
}

func TestSchedule(t *testing.T) {
	srv := newTestServer(t)

	var got []RangeDTO
	status := doJSON(t, srv, http.MethodGet,
		"/api/ranges/schedule?kind=monthly&from=2024-01-15&count=3", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-01", got[0].StartDate)
	assert.Equal(t, "2024-02-29", got[1].EndDate)
	assert.Equal(t, "2024-03-31", got[2].EndDate)

	var errResp ErrorResponse
	status = doJSON(t, srv, http.MethodGet,
		"/api/ranges/schedule?kind=monthly&from=2024-01-15&count=501", nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWorkdays_HolidayAware(t *testing.T) {
	srv := newTestServer(t)

	// Seed Juneteenth through the API, then count June 2023 workdays.
	var created HolidayDTO
	status := doJSON(t, srv, http.MethodPost, "/api/holidays",
		HolidayDTO{Date: "2023-06-19", Name: "Juneteenth"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, created.ID)

	var got WorkdaysDTO
	status = doJSON(t, srv, http.MethodGet,
		"/api/ranges/workdays?kind=monthly&date=2023-06-10", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 21, got.Workdays)
	assert.Equal(t, "2023-06-01", got.Range.StartDate)
}

func TestProration(t *testing.T) {
	srv := newTestServer(t)

	var got ProrationDTO
	status := doJSON(t, srv, http.MethodGet,
		"/api/ranges/proration?kind=monthly&date=2023-07-10&as_of=2023-07-31", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1", got.Fraction)

	// as_of defaults to the injected clock (2025-06-16, day 16 of 30).
	status = doJSON(t, srv, http.MethodGet,
		"/api/ranges/proration?kind=monthly&date=2025-06-01", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-06-16", got.AsOf)
	assert.Equal(t, "0.5333333333333333", got.Fraction)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidays_ListByYear(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, srv, http.MethodPost, "/api/holidays",
		HolidayDTO{Date: "2020-12-25", Name: "Christmas Day", Recurring: true}, nil)
	require.Equal(t, http.StatusCreated, status)
	status = doJSON(t, srv, http.MethodPost, "/api/holidays",
		HolidayDTO{Date: "2024-11-05", Name: "Election Day"}, nil)
	require.Equal(t, http.StatusCreated, status)

	var got []HolidayDTO
	status = doJSON(t, srv, http.MethodGet, "/api/holidays?year=2024", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, got, 2)

	// Recurring holidays project onto the requested year.
	status = doJSON(t, srv, http.MethodGet, "/api/holidays?year=2030", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got, 1)
	assert.Equal(t, "2030-12-25", got[0].Date)
}

// =============================================================================
// SCHEDULE DEFINITIONS
// =============================================================================

func TestSchedules_CreateAndResolvePeriod(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, srv, http.MethodPost, "/api/schedules", factory.ScheduleJSON{
		ID:        "payroll-biweekly",
		Name:      "Bi-weekly payroll",
		Kind:      "bi_weekly",
		Anchoring: "epoch",
		Anchor:    "2025-01-06",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var list []factory.ScheduleJSON
	status = doJSON(t, srv, http.MethodGet, "/api/schedules", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "epoch", list[0].Anchoring)

	var period RangeDTO
	status = doJSON(t, srv, http.MethodGet,
		"/api/schedules/payroll-biweekly/period?date=2025-02-10", nil, &period)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-02-03", period.StartDate)
	assert.Equal(t, "2025-02-16", period.EndDate)

	// The date defaults to the injected clock (2025-06-16 falls in the
	// fortnight starting 2025-06-09).
	status = doJSON(t, srv, http.MethodGet,
		"/api/schedules/payroll-biweekly/period", nil, &period)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-06-09", period.StartDate)
}

func TestSchedules_Rejections(t *testing.T) {
	srv := newTestServer(t)

	var errResp ErrorResponse
	status := doJSON(t, srv, http.MethodPost, "/api/schedules",
		factory.ScheduleJSON{ID: "bad", Kind: "decennial"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, srv, http.MethodGet, "/api/schedules/nope/period", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Schedule not found", errResp.Error)
}
