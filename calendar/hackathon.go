package calendar

import "time"

// =============================================================================
// HACKATHON WINDOW - Fixed three-day annual event
// =============================================================================
//
// The company hackathon runs every year on the first Tuesday of February plus
// the following Wednesday and Thursday. Those three days are deducted from
// available engineering time the same way holidays are.

// HackathonDays is the length of the annual event window.
const HackathonDays = 3

// HackathonDates returns the three event dates for a year: the first Tuesday
// of February and the two days after it.
func HackathonDates(year int) [HackathonDays]TimePoint {
	feb1 := NewTimePoint(year, time.February, 1)

	// Shift Feb 1 forward to the first Tuesday. When Feb 1 is Sunday, Monday
	// or Tuesday the Tuesday is in the same week; otherwise it is next week.
	wd := int(feb1.Weekday())
	var tuesday TimePoint
	if wd <= int(time.Tuesday) {
		tuesday = feb1.AddDays(int(time.Tuesday) - wd)
	} else {
		tuesday = feb1.AddDays(7 + int(time.Tuesday) - wd)
	}

	return [HackathonDays]TimePoint{tuesday, tuesday.AddDays(1), tuesday.AddDays(2)}
}

// HackathonDaysInRange counts how many hackathon days fall inside
// [start, end] inclusive, across every year the range touches.
func HackathonDaysInRange(start, end TimePoint) int {
	if end.Before(start) {
		return 0
	}
	period := Period{Start: start, End: end}
	count := 0
	for year := start.Year(); year <= end.Year(); year++ {
		for _, d := range HackathonDates(year) {
			if period.Contains(d) {
				count++
			}
		}
	}
	return count
}
