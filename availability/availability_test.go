package availability_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ntnxnam/ndb-capacity-planner/availability"
	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

func date(y int, m time.Month, d int) calendar.TimePoint {
	return calendar.NewTimePoint(y, m, d)
}

// =============================================================================
// END-TO-END SCENARIOS
// =============================================================================

func TestAnalyze_ReleaseWindow2024(t *testing.T) {
	// GIVEN: Execute-commit Jan 2 (Tue), soft-code-complete Feb 1 (Thu),
	// GA Mar 1 (Fri), all 2024. The hackathon (Feb 6-8) lands in the
	// after-code-complete period.

	r := availability.Analyze(
		date(2024, time.January, 2),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	)

	if r.TotalWorkingDays != 44 {
		t.Errorf("total working days: got %d, want 44", r.TotalWorkingDays)
	}
	// Feb 1 (Thu) closes the code-complete period and opens the next one, so
	// it is counted in both: 22 January weekdays + Feb 1, then 21 February
	// weekdays + Mar 1.
	if r.WorkingDays.CodeComplete != 23 {
		t.Errorf("code-complete working days: got %d, want 23", r.WorkingDays.CodeComplete)
	}
	if r.WorkingDays.AfterCodeComplete != 22 {
		t.Errorf("after working days: got %d, want 22", r.WorkingDays.AfterCodeComplete)
	}

	// MLK Day (Jan 15) in the code-complete period, Presidents' Day (Feb 19)
	// after it.
	if r.Holidays.CodeComplete != 1 || r.Holidays.AfterCodeComplete != 1 || r.Holidays.Total != 2 {
		t.Errorf("holidays: got %+v, want 1/1/2", r.Holidays)
	}

	// All three hackathon days fall between Feb 1 and Mar 1.
	if r.HackathonDays.CodeComplete != 0 || r.HackathonDays.AfterCodeComplete != 3 {
		t.Errorf("hackathon days: got %+v, want 0/3", r.HackathonDays)
	}

	// 59-day span: entitlement 3, split 2/1 by two-stage rounding.
	if r.VacationDays.Total != 3 || r.VacationDays.CodeComplete != 2 || r.VacationDays.AfterCodeComplete != 1 {
		t.Errorf("vacation days: got %+v, want total 3, split 2/1", r.VacationDays)
	}

	if r.AvailableToCodeComplete != 20 { // 23 - 1 - 0 - 2
		t.Errorf("available to code-complete: got %d, want 20", r.AvailableToCodeComplete)
	}
	if r.AvailableAfterCodeComplete != 17 { // 22 - 1 - 3 - 1
		t.Errorf("available after code-complete: got %d, want 17", r.AvailableAfterCodeComplete)
	}
	if r.TotalAvailableDays != 37 {
		t.Errorf("total available: got %d, want 37", r.TotalAvailableDays)
	}

	// 37 / 44 = 84.09% after rounding to two decimals.
	if r.EfficiencyPercent != 84.09 {
		t.Errorf("efficiency: got %.2f, want 84.09", r.EfficiencyPercent)
	}

	// Above the risk threshold: no efficiency insight, but the hackathon
	// overlap must be called out.
	if containsSubstring(r.Insights, "Efficiency is") {
		t.Errorf("unexpected efficiency insight at %.2f%%: %v", r.EfficiencyPercent, r.Insights)
	}
	if !containsSubstring(r.Insights, "hackathon") {
		t.Errorf("expected hackathon overlap insight, got %v", r.Insights)
	}
}

func TestAnalyze_ZeroLengthRangeOnSaturday(t *testing.T) {
	// GIVEN: All three milestones on Saturday 2024-06-01
	// THEN: Every count is zero and efficiency is guarded to 0

	d := date(2024, time.June, 1)
	r := availability.Analyze(d, d, d)

	if r.TotalWorkingDays != 0 {
		t.Errorf("total working days: got %d, want 0", r.TotalWorkingDays)
	}
	if r.TotalAvailableDays != 0 {
		t.Errorf("total available: got %d, want 0", r.TotalAvailableDays)
	}
	if r.EfficiencyPercent != 0 {
		t.Errorf("efficiency: got %.2f, want 0", r.EfficiencyPercent)
	}
	if len(r.Insights) == 0 {
		t.Error("expected an insight about the empty window")
	}
}

func TestAnalyze_OutOfOrderMilestonesFloorToZero(t *testing.T) {
	// GIVEN: GA before execute-commit
	// THEN: No panic, no negative availability; best-effort zeros

	r := availability.Analyze(
		date(2024, time.June, 3),
		date(2024, time.May, 1),
		date(2024, time.April, 1),
	)

	if r.TotalWorkingDays != 0 {
		t.Errorf("total working days: got %d, want 0", r.TotalWorkingDays)
	}
	if r.AvailableToCodeComplete < 0 || r.AvailableAfterCodeComplete < 0 || r.TotalAvailableDays < 0 {
		t.Errorf("negative availability: %+v", r)
	}
}

func TestAnalyze_LowEfficiencyInsight(t *testing.T) {
	// GIVEN: A window packed with deductions (late December)
	// THEN: Efficiency falls below 70% and the timeline-risk insight fires

	r := availability.Analyze(
		date(2024, time.December, 16),
		date(2024, time.December, 24),
		date(2025, time.January, 3),
	)

	if r.EfficiencyPercent >= 70 {
		t.Fatalf("scenario expected <70%% efficiency, got %.2f", r.EfficiencyPercent)
	}
	if !containsSubstring(r.Insights, "Efficiency is") {
		t.Errorf("expected efficiency insight, got %v", r.Insights)
	}
	if !containsSubstring(r.Recommendations, "extending the timeline") {
		t.Errorf("expected timeline recommendation, got %v", r.Recommendations)
	}
}

func TestAnalyze_HolidayDensityInsight(t *testing.T) {
	// GIVEN: A window with more than three holidays (Nov-Dec 2024: wellness
	// day, Thanksgiving, Christmas, slowdown week)
	// THEN: The holiday-density insight fires

	r := availability.Analyze(
		date(2024, time.November, 1),
		date(2024, time.December, 2),
		date(2024, time.December, 31),
	)

	if r.Holidays.Total <= 3 {
		t.Fatalf("scenario expected >3 holidays, got %d", r.Holidays.Total)
	}
	if !containsSubstring(r.Insights, "holiday-heavy") {
		t.Errorf("expected holiday density insight, got %v", r.Insights)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	ec := date(2024, time.January, 2)
	scc := date(2024, time.February, 1)
	ga := date(2024, time.March, 1)

	a := availability.Analyze(ec, scc, ga)
	b := availability.Analyze(ec, scc, ga)

	if a.TotalAvailableDays != b.TotalAvailableDays || a.EfficiencyPercent != b.EfficiencyPercent {
		t.Errorf("analysis not deterministic: %+v vs %+v", a, b)
	}
	if len(a.Insights) != len(b.Insights) {
		t.Errorf("insights not deterministic: %v vs %v", a.Insights, b.Insights)
	}
}

// =============================================================================
// FORMATTER
// =============================================================================

func TestFormatText_Sections(t *testing.T) {
	r := availability.Analyze(
		date(2024, time.January, 2),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	)

	text := availability.FormatText(r)
	for _, section := range []string{"Timeline", "Working Days", "Deductions", "Final Availability", "Insights", "Recommendations"} {
		if !strings.Contains(text, section) {
			t.Errorf("formatted output missing %q section:\n%s", section, text)
		}
	}
	if !strings.Contains(text, "2024-01-02") {
		t.Errorf("formatted output missing execute-commit date:\n%s", text)
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
