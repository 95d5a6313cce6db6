/*
Package store defines the persistence interface for the calendar engine.

PURPOSE:
  Defines the interface between the HTTP layer and the database. A Store
  remembers the two things the engine cannot derive: holidays (backing
  ranges.HolidayCalendar for workday counting) and named schedule
  definitions (a kind plus its anchoring, as parsed by the factory
  package).

KEY TYPES:
  Store:          Holiday and schedule persistence
  ScheduleRecord: A persisted schedule definition

UPSERT CONTRACT:
  SaveHoliday upserts on the (date, name) natural key; saving the same
  pair twice updates the recurring flag in place. SaveSchedule upserts
  on ID.

IMPLEMENTATIONS:
  - store/sqlite:  Production SQLite (WAL mode)
  - store/memory:  In-memory for testing and dev servers

SEE ALSO:
  - ranges/holidays.go: HolidayCalendar interface a Store satisfies
  - factory/schedule.go: schedule config JSON a Store persists
*/
package store

import (
	"context"

	"github.com/warp/calendar-engine/ranges"
)

// ScheduleRecord is a persisted schedule definition. ConfigJSON holds
// the raw factory.ScheduleJSON the record was created from.
type ScheduleRecord struct {
	ID         string
	Name       string
	Kind       string
	Anchor     string // ISO date, empty unless epoch-anchored
	Anchoring  string
	ConfigJSON string
}

// Store handles holiday and schedule persistence. Implementations must
// be safe for concurrent use. Every Store is also a HolidayCalendar, so
// it plugs straight into ranges.Workdays.
type Store interface {
	ranges.HolidayCalendar

	// SaveHoliday inserts or updates a holiday, keyed by (date, name).
	SaveHoliday(ctx context.Context, h ranges.Holiday) error

	// DeleteHoliday removes a holiday by ID.
	DeleteHoliday(ctx context.Context, id string) error

	// SaveSchedule inserts or replaces a schedule definition by ID.
	SaveSchedule(ctx context.Context, rec ScheduleRecord) error

	// GetSchedule returns a schedule definition by ID, or nil when
	// absent.
	GetSchedule(ctx context.Context, id string) (*ScheduleRecord, error)

	// ListSchedules returns all schedule definitions, ordered by name.
	ListSchedules(ctx context.Context) ([]ScheduleRecord, error)

	// DeleteSchedule removes a schedule definition by ID.
	DeleteSchedule(ctx context.Context, id string) error

	// Reset clears all data. Dev/test only.
	Reset(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
