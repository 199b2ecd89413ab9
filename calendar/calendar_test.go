package calendar_test

import (
	"testing"
	"time"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

func date(y int, m time.Month, d int) calendar.TimePoint {
	return calendar.NewTimePoint(y, m, d)
}

// =============================================================================
// WORKING DAYS
// =============================================================================

func TestCountWorkingDays_SingleWeek(t *testing.T) {
	// GIVEN: Monday through Sunday of one week
	// WHEN: Counting working days
	// THEN: Exactly 5

	start := date(2024, time.January, 8) // Monday
	end := date(2024, time.January, 14)  // Sunday

	if got := calendar.CountWorkingDays(start, end); got != 5 {
		t.Errorf("expected 5 working days, got %d", got)
	}
}

func TestCountWorkingDays_Cases(t *testing.T) {
	cases := []struct {
		name       string
		start, end calendar.TimePoint
		want       int
	}{
		{"single workday", date(2024, time.January, 2), date(2024, time.January, 2), 1},
		{"single saturday", date(2024, time.June, 1), date(2024, time.June, 1), 0},
		{"weekend only", date(2024, time.January, 6), date(2024, time.January, 7), 0},
		{"inverted range", date(2024, time.March, 1), date(2024, time.January, 2), 0},
		{"full january 2024", date(2024, time.January, 1), date(2024, time.January, 31), 23},
		{"release span jan-mar 2024", date(2024, time.January, 2), date(2024, time.March, 1), 44},
		{"release span to code-complete", date(2024, time.January, 2), date(2024, time.February, 1), 23},
		{"release span after code-complete", date(2024, time.February, 1), date(2024, time.March, 1), 22},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := calendar.CountWorkingDays(tc.start, tc.end); got != tc.want {
				t.Errorf("CountWorkingDays(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestCountWorkingDays_Monotonic(t *testing.T) {
	// GIVEN: a <= b <= c
	// THEN: The count over [a, c] dominates both sub-ranges

	a := date(2024, time.January, 2)
	c := date(2024, time.June, 28)

	for offset := 0; ; offset += 11 {
		b := a.AddDays(offset)
		if b.After(c) {
			break
		}
		whole := calendar.CountWorkingDays(a, c)
		left := calendar.CountWorkingDays(a, b)
		right := calendar.CountWorkingDays(b, c)
		if whole < left || whole < right {
			t.Fatalf("monotonicity violated at b=%s: whole=%d left=%d right=%d", b, whole, left, right)
		}
	}
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

func TestDaysBetween(t *testing.T) {
	if got := calendar.DaysBetween(date(2024, time.January, 2), date(2024, time.March, 1)); got != 59 {
		t.Errorf("expected 59 days, got %d", got)
	}
	if got := calendar.DaysBetween(date(2024, time.March, 1), date(2024, time.January, 2)); got != -59 {
		t.Errorf("expected -59 days, got %d", got)
	}
	if got := calendar.DaysBetween(date(2024, time.June, 1), date(2024, time.June, 1)); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
}

func TestParseDate(t *testing.T) {
	tp, err := calendar.ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.Year() != 2024 || tp.Month() != time.February || tp.Day() != 29 {
		t.Errorf("parsed wrong date: %s", tp)
	}

	if _, err := calendar.ParseDate("02/29/2024"); err == nil {
		t.Error("expected error for non-ISO format")
	}
}

// =============================================================================
// WEEKDAY-OFFSET HELPERS
// =============================================================================

func TestNthWeekdayOfMonth(t *testing.T) {
	cases := []struct {
		name    string
		year    int
		month   time.Month
		weekday time.Weekday
		n       int
		want    calendar.TimePoint
	}{
		{"3rd Monday Jan 2024", 2024, time.January, time.Monday, 3, date(2024, time.January, 15)},
		{"3rd Monday Feb 2024", 2024, time.February, time.Monday, 3, date(2024, time.February, 19)},
		{"4th Thursday Nov 2024", 2024, time.November, time.Thursday, 4, date(2024, time.November, 28)},
		{"1st Monday Sep 2025", 2025, time.September, time.Monday, 1, date(2025, time.September, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calendar.NthWeekdayOfMonth(tc.year, tc.month, tc.weekday, tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLastWeekdayOfMonth(t *testing.T) {
	// Memorial Day 2024: last Monday of May
	got := calendar.LastWeekdayOfMonth(2024, time.May, time.Monday)
	if !got.Equal(date(2024, time.May, 27)) {
		t.Errorf("got %s, want 2024-05-27", got)
	}

	// December rolls the month+1 lookup into the next year
	got = calendar.LastWeekdayOfMonth(2024, time.December, time.Tuesday)
	if !got.Equal(date(2024, time.December, 31)) {
		t.Errorf("got %s, want 2024-12-31", got)
	}
}
