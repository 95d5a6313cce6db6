/*
handlers.go - HTTP API handlers for the calendar engine

PURPOSE:
  Exposes the calendar arithmetic and range engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the
  calendar and ranges packages.

ENDPOINTS:
  Dates:
    POST /api/dates/shift        Shift a date by an amount of a unit
    GET  /api/dates/between      Whole units between two dates
    GET  /api/dates/today        Today per the injected clock

  Ranges:
    POST /api/ranges             Build a range from a start or end date
    POST /api/ranges/navigate    Walk a range by n steps
    GET  /api/ranges/schedule    Consecutive periods from a date
    GET  /api/ranges/workdays    Workday count (holiday-aware)
    GET  /api/ranges/proration   Elapsed fraction of a period

  Holidays:
    GET  /api/holidays           List holidays for a year
    POST /api/holidays           Create a holiday
  Schedules:
    GET  /api/schedules          List schedule definitions
    POST /api/schedules          Create a schedule definition from JSON

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid date, unit or kind
  - 404: Schedule not found
  - 500: Storage or internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/ranges"
	"github.com/warp/calendar-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store           store.Store
	ScheduleFactory *factory.ScheduleFactory
	Clock           calendar.Clock
}

// NewHandler creates a new handler with the given store and a system
// clock. Tests swap the clock for a fixed one.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:           st,
		ScheduleFactory: factory.NewScheduleFactory(),
		Clock:           calendar.SystemClock{},
	}
}

// =============================================================================
// DATE HANDLERS
// =============================================================================

// Today returns the current date per the injected clock.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	d := h.Clock.Today()
	writeJSON(w, http.StatusOK, DateDTO{Date: d.String(), DayOfWeek: d.DayOfWeek().String()})
}

// ShiftDate shifts a date by an amount of a unit.
func (h *Handler) ShiftDate(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	unit, ok := calendar.ParseUnit(req.Unit)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown unit", nil)
		return
	}

	shifted, err := unit.AddToDate(d, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unit not applicable to dates", err)
		return
	}
	writeJSON(w, http.StatusOK, DateDTO{Date: shifted.String(), DayOfWeek: shifted.DayOfWeek().String()})
}

// Between returns the whole units elapsed between two dates.
func (h *Handler) Between(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := calendar.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := calendar.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}
	unit, ok := calendar.ParseUnit(q.Get("unit"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown unit", nil)
		return
	}

	amount, err := unit.BetweenDates(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unit not applicable to dates", err)
		return
	}
	writeJSON(w, http.StatusOK, BetweenDTO{
		Start:  start.String(),
		End:    end.String(),
		Unit:   unit.String(),
		Amount: amount,
	})
}

// =============================================================================
// RANGE HANDLERS
// =============================================================================

// BuildRange constructs the canonical range of a kind containing the
// given start or end date.
func (h *Handler) BuildRange(w http.ResponseWriter, r *http.Request) {
	var req RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	kind, ok := ranges.ParseKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown range kind", nil)
		return
	}

	// Same anchoring rules as the schedule factory: epoch is bi_weekly
	// only and needs an anchor date.
	anchoring := ranges.Anchoring(req.Anchoring)
	var anchor calendar.Date
	switch anchoring {
	case "", ranges.AnchorFloating:
		anchoring = ranges.AnchorFloating
	case ranges.AnchorEpoch:
		if kind != ranges.BiWeekly {
			writeError(w, http.StatusBadRequest, "Epoch anchoring is only valid for bi_weekly ranges", nil)
			return
		}
		var err error
		anchor, err = calendar.ParseDate(req.Anchor)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid anchor date", err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "Unknown anchoring", nil)
		return
	}

	var rng ranges.Range
	switch {
	case req.StartDate != "":
		d, err := calendar.ParseDate(req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date", err)
			return
		}
		if anchoring == ranges.AnchorEpoch {
			rng = ranges.BiWeeklyAnchored(d, anchor)
		} else {
			rng = ranges.WithStartDate(kind, d)
		}
	case req.EndDate != "":
		d, err := calendar.ParseDate(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date", err)
			return
		}
		if anchoring == ranges.AnchorEpoch {
			rng = ranges.BiWeeklyAnchored(d, anchor)
		} else {
			rng = ranges.WithEndDate(kind, d)
		}
	default:
		writeError(w, http.StatusBadRequest, "start_date or end_date is required", nil)
		return
	}

	writeJSON(w, http.StatusOK, toRangeDTO(rng))
}

// NavigateRange walks the range containing start_date by steps periods
// (negative steps walk backward).
func (h *Handler) NavigateRange(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	kind, ok := ranges.ParseKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown range kind", nil)
		return
	}
	d, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}

	rng := ranges.WithStartDate(kind, d)
	for i := 0; i < req.Steps; i++ {
		rng = rng.Next()
	}
	for i := 0; i > req.Steps; i-- {
		rng = rng.Prior()
	}
	writeJSON(w, http.StatusOK, toRangeDTO(rng))
}

// Schedule generates consecutive periods of a kind from a date.
// GET /api/ranges/schedule?kind=monthly&from=2025-01-15&count=12
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, ok := ranges.ParseKind(q.Get("kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown range kind", nil)
		return
	}
	from, err := calendar.ParseDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date", err)
		return
	}
	count, err := strconv.Atoi(q.Get("count"))
	if err != nil || count < 1 || count > 500 {
		writeError(w, http.StatusBadRequest, "count must be 1..500", nil)
		return
	}

	series := ranges.Generate(kind, from, count)
	dtos := make([]RangeDTO, len(series))
	for i, rng := range series {
		dtos[i] = toRangeDTO(rng)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Workdays counts Mon-Fri non-holiday days in the period of a kind
// containing a date.
func (h *Handler) Workdays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, ok := ranges.ParseKind(q.Get("kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown range kind", nil)
		return
	}
	d, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	rng := ranges.WithStartDate(kind, d)
	workdays, err := ranges.Workdays(rng, h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count workdays", err)
		return
	}
	writeJSON(w, http.StatusOK, WorkdaysDTO{Range: toRangeDTO(rng), Workdays: workdays})
}

// Proration returns the elapsed fraction of the period of a kind
// containing date, as of as_of (default today).
func (h *Handler) Proration(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, ok := ranges.ParseKind(q.Get("kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown range kind", nil)
		return
	}
	d, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	asOf := h.Clock.Today()
	if s := q.Get("as_of"); s != "" {
		asOf, err = calendar.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
	}

	rng := ranges.WithStartDate(kind, d)
	fraction := ranges.Prorate(rng, asOf)
	writeJSON(w, http.StatusOK, ProrationDTO{
		Range:    toRangeDTO(rng),
		AsOf:     asOf.String(),
		Fraction: fraction.String(),
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holidays for a year (default: current year).
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.Clock.Today().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	holidays, err := h.Store.Holidays(year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			ID:        hol.ID,
			Date:      hol.Date.String(),
			Name:      hol.Name,
			Recurring: hol.Recurring,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday stores a holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = "holiday-" + req.Date + "-" + req.Name
	}

	holiday := ranges.Holiday{ID: req.ID, Date: d, Name: req.Name, Recurring: req.Recurring}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	req.Date = d.String()
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// SCHEDULE DEFINITION HANDLERS
// =============================================================================

// ListSchedules returns all stored schedule definitions.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}

	dtos := make([]factory.ScheduleJSON, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, factory.ScheduleJSON{
			ID:        rec.ID,
			Name:      rec.Name,
			Kind:      rec.Kind,
			Anchoring: rec.Anchoring,
			Anchor:    rec.Anchor,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSchedule validates and stores a schedule definition.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var raw factory.ScheduleJSON
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	spec, err := h.ScheduleFactory.FromJSON(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule", err)
		return
	}

	rec := store.ScheduleRecord{
		ID:         spec.ID,
		Name:       spec.Name,
		Kind:       spec.Kind.String(),
		Anchoring:  string(spec.Anchoring),
		ConfigJSON: spec.JSON(),
	}
	if spec.Anchoring == ranges.AnchorEpoch {
		rec.Anchor = spec.Anchor.String()
	}
	if err := h.Store.SaveSchedule(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, raw)
}

// GetSchedulePeriod returns the stored schedule's period containing a
// date (default today).
// GET /api/schedules/{id}/period?date=2025-03-10
func (h *Handler) GetSchedulePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetSchedule(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}

	spec, err := h.ScheduleFactory.Parse(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt schedule config", err)
		return
	}

	d := h.Clock.Today()
	if s := r.URL.Query().Get("date"); s != "" {
		d, err = calendar.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toRangeDTO(spec.RangeFor(d)))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
