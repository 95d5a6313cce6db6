/*
Package factory provides JSON to Go schedule conversion.

PURPOSE:
  Converts JSON schedule definitions into ranges configuration. This
  enables pay-calendar setup without code changes - an admin can define
  "semi-monthly payroll" or "bi-weekly anchored on 2025-01-06" in JSON,
  and the factory produces the proper Go values.

JSON SCHEMA:
  {
    "id": "payroll-biweekly",
    "name": "Bi-weekly payroll",
    "kind": "bi_weekly",
    "anchoring": "epoch",
    "anchor": "2025-01-06"
  }

  kind:      weekly | bi_weekly | semi_monthly | monthly | quarterly |
             semi_annual | annual
  anchoring: only meaningful for bi_weekly; "floating" (default) or
             "epoch" (requires anchor)
  anchor:    ISO date starting a fortnight, required when anchoring=epoch

USAGE:
  f := factory.NewScheduleFactory()
  spec, err := f.Parse(jsonString)
  r := spec.RangeFor(date)

SEE ALSO:
  - ranges/range.go: Kind and Anchoring definitions
  - store/sqlite/sqlite.go: persistence of the raw JSON
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/ranges"
)

// ScheduleJSON is the JSON representation of a schedule definition.
type ScheduleJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Anchoring string `json:"anchoring,omitempty"`
	Anchor    string `json:"anchor,omitempty"`
}

// ScheduleSpec is a validated schedule definition ready for use.
type ScheduleSpec struct {
	ID        string
	Name      string
	Kind      ranges.Kind
	Anchoring ranges.Anchoring
	Anchor    calendar.Date // zero unless Anchoring == AnchorEpoch
}

// ScheduleFactory converts JSON schedule definitions into ScheduleSpecs.
type ScheduleFactory struct{}

func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// Parse validates a JSON schedule definition.
func (f *ScheduleFactory) Parse(jsonStr string) (*ScheduleSpec, error) {
	var raw ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid schedule JSON: %w", err)
	}
	return f.FromJSON(raw)
}

// FromJSON validates an already-decoded schedule definition.
func (f *ScheduleFactory) FromJSON(raw ScheduleJSON) (*ScheduleSpec, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("schedule id is required")
	}

	kind, ok := ranges.ParseKind(raw.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown schedule kind %q", raw.Kind)
	}

	spec := &ScheduleSpec{
		ID:        raw.ID,
		Name:      raw.Name,
		Kind:      kind,
		Anchoring: ranges.AnchorFloating,
	}
	if spec.Name == "" {
		spec.Name = raw.ID
	}

	switch ranges.Anchoring(raw.Anchoring) {
	case "", ranges.AnchorFloating:
		// default
	case ranges.AnchorEpoch:
		if kind != ranges.BiWeekly {
			return nil, fmt.Errorf("anchoring %q is only valid for bi_weekly schedules", raw.Anchoring)
		}
		if raw.Anchor == "" {
			return nil, fmt.Errorf("epoch anchoring requires an anchor date")
		}
		anchor, err := calendar.ParseDate(raw.Anchor)
		if err != nil {
			return nil, fmt.Errorf("invalid anchor: %w", err)
		}
		spec.Anchoring = ranges.AnchorEpoch
		spec.Anchor = anchor
	default:
		return nil, fmt.Errorf("unknown anchoring %q", raw.Anchoring)
	}

	return spec, nil
}

// RangeFor returns the schedule's period containing the given date.
func (s *ScheduleSpec) RangeFor(d calendar.Date) ranges.Range {
	if s.Kind == ranges.BiWeekly && s.Anchoring == ranges.AnchorEpoch {
		return ranges.BiWeeklyAnchored(d, s.Anchor)
	}
	return ranges.WithStartDate(s.Kind, d)
}

// JSON re-encodes the spec into its canonical JSON form.
func (s *ScheduleSpec) JSON() string {
	raw := ScheduleJSON{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      s.Kind.String(),
		Anchoring: string(s.Anchoring),
	}
	if s.Anchoring == ranges.AnchorEpoch {
		raw.Anchor = s.Anchor.String()
	}
	b, _ := json.Marshal(raw)
	return string(b)
}
