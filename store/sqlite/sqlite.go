/*
Package sqlite provides SQLite-backed persistence for the calendar engine.

PURPOSE:
  Stores the two things the engine needs to remember between runs:
  holidays (backing ranges.HolidayCalendar for workday counting) and
  named schedule definitions (a kind plus its anchoring, as parsed by the
  factory package).

KEY TABLES:
  holidays:   one row per non-working day; recurring rows match by
              month/day across years
  schedules:  named recurring period definitions with their config JSON

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers do not block
  each other. A sync.RWMutex guards the single-writer discipline.

USAGE:
  store, err := sqlite.New("./data/calendar.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  workdays, err := ranges.Workdays(r, store)

SEE ALSO:
  - ranges/holidays.go: HolidayCalendar interface this store implements
  - factory/schedule.go: schedule config JSON this store persists
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/ranges"
	"github.com/warp/calendar-engine/store"
)

// Store implements holiday and schedule persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Holidays
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(date, name);

	-- Named schedule definitions
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		anchor TEXT,
		anchoring TEXT NOT NULL DEFAULT 'floating',
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_kind
		ON schedules(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts or updates a holiday. The (date, name) pair is the
// natural key; saving the same pair twice updates the recurring flag.
func (s *Store) SaveHoliday(ctx context.Context, h ranges.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, name) DO UPDATE SET
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday removes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	return err
}

// IsHoliday implements ranges.HolidayCalendar. Recurring holidays match
// by month/day across years.
func (s *Store) IsHoliday(d calendar.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	monthDay := fmt.Sprintf("%02d-%02d", int(d.Month()), d.Day())

	query := `
		SELECT COUNT(*) FROM holidays
		WHERE (recurring = FALSE AND date = ?)
		   OR (recurring = TRUE AND strftime('%m-%d', date) = ?)
	`

	var count int
	if err := s.db.QueryRow(query, d.String(), monthDay).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Holidays implements ranges.HolidayCalendar, returning every holiday
// that falls in the given year. Recurring holidays are projected onto
// the year; Feb 29 recurrences are skipped on non-leap years.
func (s *Store) Holidays(year int) ([]ranges.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, date, name, recurring FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ranges.Holiday
	for rows.Next() {
		var h ranges.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		d, err := calendar.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt holiday row %s: %w", h.ID, err)
		}
		switch {
		case h.Recurring:
			projected, err := calendar.NewDate(year, d.Month(), d.Day())
			if err != nil {
				continue // Feb 29 recurrence on a non-leap year
			}
			h.Date = projected
			out = append(out, h)
		case d.Year() == year:
			h.Date = d
			out = append(out, h)
		}
	}
	return out, rows.Err()
}

// =============================================================================
// SCHEDULES
// =============================================================================

// SaveSchedule inserts or replaces a schedule definition.
func (s *Store) SaveSchedule(ctx context.Context, rec store.ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO schedules (id, name, kind, anchor, anchoring, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			anchor = excluded.anchor,
			anchoring = excluded.anchoring,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Kind, rec.Anchor, rec.Anchoring, rec.ConfigJSON, now, now)
	return err
}

// GetSchedule returns a schedule definition by ID, or nil when absent.
func (s *Store) GetSchedule(ctx context.Context, id string) (*store.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, kind, anchor, anchoring, config_json FROM schedules WHERE id = ?`

	var rec store.ScheduleRecord
	var anchor sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Name, &rec.Kind, &anchor, &rec.Anchoring, &rec.ConfigJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Anchor = anchor.String
	return &rec, nil
}

// ListSchedules returns all schedule definitions.
func (s *Store) ListSchedules(ctx context.Context) ([]store.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, anchor, anchoring, config_json FROM schedules ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.ScheduleRecord
	for rows.Next() {
		var rec store.ScheduleRecord
		var anchor sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Kind, &anchor, &rec.Anchoring, &rec.ConfigJSON); err != nil {
			return nil, err
		}
		rec.Anchor = anchor.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteSchedule removes a schedule definition by ID.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	return err
}

// Reset clears all data. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays; DELETE FROM schedules;`)
	return err
}
