package holidays

import (
	"time"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

// =============================================================================
// MOVABLE FEAST TABLES
// =============================================================================
//
// Movable feasts are shipped as finite per-year lookup tables rather than
// computed astronomically. The tables cover 2020-2030; years outside a table
// use the feast's fallback rule. The fallback is a coarse approximation and
// that is acceptable: these dates feed advisory capacity estimates, not
// payroll.

type monthDay struct {
	Month time.Month
	Day   int
}

var goodFridayByYear = map[int]monthDay{
	2020: {time.April, 10},
	2021: {time.April, 2},
	2022: {time.April, 15},
	2023: {time.April, 7},
	2024: {time.March, 29},
	2025: {time.April, 18},
	2026: {time.April, 3},
	2027: {time.March, 26},
	2028: {time.April, 14},
	2029: {time.March, 30},
	2030: {time.April, 19},
}

// goodFriday falls back to the first Friday of April for years outside the
// table.
func goodFriday(year int) calendar.TimePoint {
	if md, ok := goodFridayByYear[year]; ok {
		return calendar.NewTimePoint(year, md.Month, md.Day)
	}
	return calendar.NthWeekdayOfMonth(year, time.April, time.Friday, 1)
}

var diwaliByYear = map[int]monthDay{
	2020: {time.November, 14},
	2021: {time.November, 4},
	2022: {time.October, 24},
	2023: {time.November, 12},
	2024: {time.November, 1},
	2025: {time.October, 20},
	2026: {time.November, 8},
	2027: {time.October, 29},
	2028: {time.October, 17},
	2029: {time.November, 5},
	2030: {time.October, 26},
}

// diwali falls back to November 1 for years outside the table.
func diwali(year int) calendar.TimePoint {
	if md, ok := diwaliByYear[year]; ok {
		return calendar.NewTimePoint(year, md.Month, md.Day)
	}
	return calendar.NewTimePoint(year, time.November, 1)
}

var holiByYear = map[int]monthDay{
	2020: {time.March, 10},
	2021: {time.March, 29},
	2022: {time.March, 18},
	2023: {time.March, 8},
	2024: {time.March, 25},
	2025: {time.March, 14},
	2026: {time.March, 4},
	2027: {time.March, 22},
	2028: {time.March, 11},
	2029: {time.March, 1},
	2030: {time.March, 20},
}

// holi falls back to March 15 for years outside the table.
func holi(year int) calendar.TimePoint {
	if md, ok := holiByYear[year]; ok {
		return calendar.NewTimePoint(year, md.Month, md.Day)
	}
	return calendar.NewTimePoint(year, time.March, 15)
}
