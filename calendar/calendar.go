/*
Package calendar provides day-granularity date arithmetic for release planning.

PURPOSE:
  All capacity math in this system works on whole calendar days: working-day
  counts between milestones, the annual hackathon window, and period spans.
  This package is the single place where weekday iteration happens; everything
  above it (holidays, leave, availability) consumes integer day counts.

KEY CONCEPTS:
  - TimePoint: A calendar date, normalized to midnight UTC. Time-of-day is
    never significant in this system.
  - Period: An inclusive [Start, End] date range.
  - Working day: Monday through Friday. Holidays are NOT subtracted here;
    the holidays package layers on top.

DESIGN PRINCIPLES:
  1. Integer day counts everywhere - no floating timestamps, no drift.
  2. Pure functions - no clocks, no I/O, deterministic for a given input.
  3. Inclusive ranges - [start, end] counts both endpoints, matching how
     release milestones are read by planners.

SEE ALSO:
  - holidays/: Per-year, per-region holiday tables
  - availability/: Orchestrates calendar + holidays + leave
*/
package calendar

import (
	"encoding/json"
	"time"
)

// =============================================================================
// TIME POINT - Day-granularity calendar date
// =============================================================================

// TimePoint is a calendar date. The embedded time is always midnight UTC.
type TimePoint struct {
	Time time.Time
}

// NewTimePoint constructs a date from year/month/day.
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates an arbitrary time.Time to a calendar date.
// Callers holding timestamps (store rows, parsed JSON) go through here so
// time-of-day never leaks into day arithmetic.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// Today returns the current date in UTC.
func Today() TimePoint {
	now := time.Now().UTC()
	return NewTimePoint(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint  { return FromTime(tp.Time.AddDate(0, 0, n)) }
func (tp TimePoint) AddWeeks(n int) TimePoint { return tp.AddDays(7 * n) }

// Properties
func (tp TimePoint) Year() int              { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month      { return tp.Time.Month() }
func (tp TimePoint) Day() int               { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday  { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool           { return tp.Time.IsZero() }

func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (tp TimePoint) IsWorkday() bool { return !tp.IsWeekend() }

func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (tp TimePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (tp *TimePoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*tp = parsed
	return nil
}

// DaysBetween returns the signed number of calendar days from one date to
// the other. Same date yields 0.
func DaysBetween(from, to TimePoint) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive [Start, End] date range.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains reports whether the date falls within [Start, End].
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// IsValid reports whether the period has a non-negative span.
func (p Period) IsValid() bool { return p.Start.BeforeOrEqual(p.End) }

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// WORKING DAYS
// =============================================================================

// CountWorkingDays counts Monday-Friday days in [start, end] inclusive.
// Returns 0 when end precedes start; never negative.
func CountWorkingDays(start, end TimePoint) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkday() {
			count++
		}
	}
	return count
}

// =============================================================================
// WEEKDAY-OFFSET HELPERS
// =============================================================================

// NthWeekdayOfMonth returns the nth occurrence (1-based) of a weekday in a
// month, e.g. the third Monday of January.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) TimePoint {
	first := NewTimePoint(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + 7*(n-1))
}

// LastWeekdayOfMonth returns the final occurrence of a weekday in a month,
// e.g. the last Monday of May.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) TimePoint {
	last := NewTimePoint(year, month+1, 1).AddDays(-1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDays(-offset)
}
