/*
Package holidays provides deterministic per-year, per-region holiday tables.

PURPOSE:
  The availability analyzer subtracts holidays from working-day counts. This
  package produces the holiday list for a (year, region) pair from three rule
  families, with no I/O and no external calendar service:

  1. Fixed-date holidays:   same month/day every year (e.g. Independence Day)
  2. Floating holidays:     weekday-offset rules (e.g. third Monday of January)
  3. Movable feasts:        approximate dates from a finite per-year lookup
                            table, with an explicit fallback for years outside
                            the table. These are approximations by design, not
                            astronomical computations.

  Company observances (wellness days, the year-end slowdown) are appended for
  every region, including unknown ones. An observance that collides with a
  regional holiday on the same date is dropped so no date counts twice.

FAILURE MODES:
  - Unknown region: returns company observances only. No error.
  - Year outside a movable-feast table: the feast's fallback rule is used
    silently. The tables cover 2020-2030.

KNOWN LIMITATION:
  CountInRange resolves holidays from the START year of the range only. A
  range that crosses into a new year undercounts holidays in the second year.
  Release sub-periods are a few months long in practice, so this has been
  accepted; callers with multi-year ranges must split them per year.

SEE ALSO:
  - calendar/: NthWeekdayOfMonth, LastWeekdayOfMonth helpers used here
  - availability/: the only in-repo consumer of CountInRange
*/
package holidays

import (
	"time"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

// =============================================================================
// TYPES
// =============================================================================

// Kind classifies how a holiday date is derived.
type Kind string

const (
	KindFixedNational     Kind = "fixed-national"
	KindMovableReligious  Kind = "movable-religious"
	KindCompanyObservance Kind = "company-observance"
)

// Entry is a single named holiday on a concrete date.
type Entry struct {
	Name string
	Date calendar.TimePoint
	Kind Kind
}

// Supported regions. The region parameter is kept open for extensibility;
// only RegionUS is exercised by current callers.
const (
	RegionUS = "US"
	RegionIN = "IN"
)

// =============================================================================
// PUBLIC API
// =============================================================================

// ForYear returns every holiday observed in the given year and region,
// company observances included. Unknown regions get observances only.
// When an observance lands on a regional holiday (IN Independence Day and
// the summer wellness day share Aug 15), the regional entry wins; a date
// never appears twice.
func ForYear(year int, region string) []Entry {
	var entries []Entry
	switch region {
	case RegionUS:
		entries = usHolidays(year)
	case RegionIN:
		entries = inHolidays(year)
	}

	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.Date.String()] = true
	}
	for _, o := range companyObservances(year) {
		if !taken[o.Date.String()] {
			entries = append(entries, o)
		}
	}
	return entries
}

// CountInRange counts holidays falling within [start, end] inclusive.
// Holidays are resolved for the start date's year only (see package doc).
func CountInRange(start, end calendar.TimePoint, region string) int {
	if end.Before(start) {
		return 0
	}
	period := calendar.Period{Start: start, End: end}
	count := 0
	for _, h := range ForYear(start.Year(), region) {
		if period.Contains(h.Date) {
			count++
		}
	}
	return count
}

// InRange returns the holidays themselves rather than a count, for callers
// that render names (CLI, holiday listing endpoint).
func InRange(start, end calendar.TimePoint, region string) []Entry {
	if end.Before(start) {
		return nil
	}
	period := calendar.Period{Start: start, End: end}
	var out []Entry
	for _, h := range ForYear(start.Year(), region) {
		if period.Contains(h.Date) {
			out = append(out, h)
		}
	}
	return out
}

// =============================================================================
// US REGION
// =============================================================================

func usHolidays(year int) []Entry {
	return []Entry{
		{Name: "New Year's Day", Date: calendar.NewTimePoint(year, time.January, 1), Kind: KindFixedNational},
		{Name: "Martin Luther King Jr. Day", Date: calendar.NthWeekdayOfMonth(year, time.January, time.Monday, 3), Kind: KindFixedNational},
		{Name: "Presidents' Day", Date: calendar.NthWeekdayOfMonth(year, time.February, time.Monday, 3), Kind: KindFixedNational},
		{Name: "Good Friday", Date: goodFriday(year), Kind: KindMovableReligious},
		{Name: "Memorial Day", Date: calendar.LastWeekdayOfMonth(year, time.May, time.Monday), Kind: KindFixedNational},
		{Name: "Independence Day", Date: calendar.NewTimePoint(year, time.July, 4), Kind: KindFixedNational},
		{Name: "Labor Day", Date: calendar.NthWeekdayOfMonth(year, time.September, time.Monday, 1), Kind: KindFixedNational},
		{Name: "Thanksgiving", Date: calendar.NthWeekdayOfMonth(year, time.November, time.Thursday, 4), Kind: KindFixedNational},
		{Name: "Christmas Day", Date: calendar.NewTimePoint(year, time.December, 25), Kind: KindFixedNational},
	}
}

// =============================================================================
// IN REGION
// =============================================================================

func inHolidays(year int) []Entry {
	return []Entry{
		{Name: "Republic Day", Date: calendar.NewTimePoint(year, time.January, 26), Kind: KindFixedNational},
		{Name: "Holi", Date: holi(year), Kind: KindMovableReligious},
		{Name: "Independence Day", Date: calendar.NewTimePoint(year, time.August, 15), Kind: KindFixedNational},
		{Name: "Gandhi Jayanti", Date: calendar.NewTimePoint(year, time.October, 2), Kind: KindFixedNational},
		{Name: "Diwali", Date: diwali(year), Kind: KindMovableReligious},
		{Name: "Christmas Day", Date: calendar.NewTimePoint(year, time.December, 25), Kind: KindFixedNational},
	}
}

// =============================================================================
// COMPANY OBSERVANCES
// =============================================================================

// Observances apply regardless of region: three mid-month wellness days and
// the year-end slowdown between Christmas and New Year's Eve.
func companyObservances(year int) []Entry {
	entries := []Entry{
		{Name: "Wellness Day (Spring)", Date: calendar.NewTimePoint(year, time.May, 15), Kind: KindCompanyObservance},
		{Name: "Wellness Day (Summer)", Date: calendar.NewTimePoint(year, time.August, 15), Kind: KindCompanyObservance},
		{Name: "Wellness Day (Fall)", Date: calendar.NewTimePoint(year, time.November, 15), Kind: KindCompanyObservance},
	}
	for day := 26; day <= 31; day++ {
		entries = append(entries, Entry{
			Name: "Year-End Slowdown",
			Date: calendar.NewTimePoint(year, time.December, day),
			Kind: KindCompanyObservance,
		})
	}
	return entries
}
