// Package memory provides an in-memory Store (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/ranges"
	"github.com/warp/calendar-engine/store"
)

// Store keeps holidays and schedule definitions in process memory.
// Holidays are held sorted by date so listings come out in date order
// without re-sorting on every read.
type Store struct {
	mu        sync.RWMutex
	holidays  []ranges.Holiday
	schedules map[string]store.ScheduleRecord
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		schedules: make(map[string]store.ScheduleRecord),
	}
}

func (m *Store) Close() error { return nil }

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts or updates a holiday, keyed by (date, name).
func (m *Store) SaveHoliday(_ context.Context, h ranges.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.holidays {
		if existing.Date == h.Date && existing.Name == h.Name {
			h.ID = existing.ID
			m.holidays[i] = h
			return nil
		}
	}

	// Binary search for the insertion point keeps the slice sorted.
	i := sort.Search(len(m.holidays), func(i int) bool {
		return m.holidays[i].Date.After(h.Date)
	})
	m.holidays = append(m.holidays, ranges.Holiday{})
	copy(m.holidays[i+1:], m.holidays[i:])
	m.holidays[i] = h
	return nil
}

// DeleteHoliday removes a holiday by ID.
func (m *Store) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, h := range m.holidays {
		if h.ID == id {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return nil
}

// IsHoliday implements ranges.HolidayCalendar. Recurring holidays match
// by month/day across years.
func (m *Store) IsHoliday(d calendar.Date) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, h := range m.holidays {
		if h.Date == d {
			return true, nil
		}
		if h.Recurring && h.Date.Month() == d.Month() && h.Date.Day() == d.Day() {
			return true, nil
		}
	}
	return false, nil
}

// Holidays implements ranges.HolidayCalendar, returning every holiday
// that falls in the given year. Recurring holidays are projected onto
// the year; Feb 29 recurrences are skipped on non-leap years.
func (m *Store) Holidays(year int) ([]ranges.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ranges.Holiday
	for _, h := range m.holidays {
		switch {
		case h.Recurring:
			projected, err := calendar.NewDate(year, h.Date.Month(), h.Date.Day())
			if err != nil {
				continue // Feb 29 recurrence on a non-leap year
			}
			h.Date = projected
			out = append(out, h)
		case h.Date.Year() == year:
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// SCHEDULES
// =============================================================================

// SaveSchedule inserts or replaces a schedule definition by ID.
func (m *Store) SaveSchedule(_ context.Context, rec store.ScheduleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.schedules[rec.ID] = rec
	return nil
}

// GetSchedule returns a schedule definition by ID, or nil when absent.
func (m *Store) GetSchedule(_ context.Context, id string) (*store.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.schedules[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ListSchedules returns all schedule definitions, ordered by name.
func (m *Store) ListSchedules(_ context.Context) ([]store.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.ScheduleRecord, 0, len(m.schedules))
	for _, rec := range m.schedules {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteSchedule removes a schedule definition by ID.
func (m *Store) DeleteSchedule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.schedules, id)
	return nil
}

// Reset clears all data.
func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.holidays = nil
	m.schedules = make(map[string]store.ScheduleRecord)
	return nil
}
