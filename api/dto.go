/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal value types from the external API contract; dates cross
  the wire as ISO-8601 strings and are re-validated on the way in.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: ScheduleJSON, the one shared wire type
*/
package api

import (
	"github.com/warp/calendar-engine/ranges"
)

// =============================================================================
// DATE ARITHMETIC
// =============================================================================

// ShiftRequest asks for a date to be moved by an amount of a unit.
type ShiftRequest struct {
	Date   string `json:"date"`   // ISO yyyy-mm-dd
	Unit   string `json:"unit"`   // days | weeks | months | years
	Amount int    `json:"amount"` // may be negative
}

// DateDTO is a single date response.
type DateDTO struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
}

// BetweenDTO is the whole-unit count between two dates.
type BetweenDTO struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Unit   string `json:"unit"`
	Amount int64  `json:"amount"`
}

// =============================================================================
// RANGES
// =============================================================================

// RangeRequest builds a range of a kind from a start or end date.
type RangeRequest struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Anchoring string `json:"anchoring,omitempty"` // bi_weekly only
	Anchor    string `json:"anchor,omitempty"`    // bi_weekly + epoch only
}

// NavigateRequest walks a range forward or backward by steps.
type NavigateRequest struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date"`
	Steps     int    `json:"steps"` // negative for prior
}

// RangeDTO is an inclusive period in API responses.
type RangeDTO struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

func toRangeDTO(r ranges.Range) RangeDTO {
	return RangeDTO{
		Kind:      r.Kind().String(),
		StartDate: r.StartDate().String(),
		EndDate:   r.EndDate().String(),
		Days:      r.Days(),
	}
}

// WorkdaysDTO is a holiday-aware workday count for a period.
type WorkdaysDTO struct {
	Range    RangeDTO `json:"range"`
	Workdays int      `json:"workdays"`
}

// ProrationDTO is the elapsed fraction of a period as of a date.
type ProrationDTO struct {
	Range    RangeDTO `json:"range"`
	AsOf     string   `json:"as_of"`
	Fraction string   `json:"fraction"` // decimal string
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday in requests and responses.
type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
