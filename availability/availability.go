/*
Package availability derives engineer-availability estimates for a release
window.

PURPOSE:
  Given three milestones (execute-commit, soft-code-complete, GA), the
  analyzer splits the release span into the code-complete period and the
  after-code-complete period, counts raw working days in each, deducts
  holidays, the three-day hackathon window and pro-rated leave, and reports
  per-period availability plus an efficiency figure and narrative insights.

PIPELINE (per period):
  working days (calendar)
    - holidays        (holidays, start-year table, region "US")
    - hackathon days  (calendar)
    - leave share     (leave, apportioned against the FULL span)
  = available days, floored at 0

PERMISSIVENESS:
  Out-of-order milestones are accepted. Inverted ranges simply produce zero
  counts; the analyzer prefers returning a best-effort number over refusing
  the whole analysis. Input quality is the caller's concern.

DETERMINISM:
  Pure computation, no I/O, no clock reads. The full-span day count is
  computed once and shared by both sub-period leave apportionments so the
  two shares always use the same denominator.
*/
package availability

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/holidays"
	"github.com/ntnxnam/ndb-capacity-planner/leave"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// PeriodCounts holds one deduction category split across the two sub-periods.
type PeriodCounts struct {
	CodeComplete      int `json:"code_complete_period"`
	AfterCodeComplete int `json:"after_code_complete_period"`
	Total             int `json:"total"`
}

// Result is the full availability breakdown for one release window. It is
// derived on demand and never mutated; collaborators may snapshot it.
type Result struct {
	ExecuteCommit    calendar.TimePoint `json:"execute_commit"`
	SoftCodeComplete calendar.TimePoint `json:"soft_code_complete"`
	GA               calendar.TimePoint `json:"ga"`

	// Raw Mon-Fri counts. TotalWorkingDays covers the whole
	// [ExecuteCommit, GA] span and is NOT the sum of the two sub-periods:
	// soft-code-complete day belongs to both.
	TotalWorkingDays int          `json:"total_working_days"`
	WorkingDays      PeriodCounts `json:"working_days"`

	Holidays      PeriodCounts `json:"holidays"`
	HackathonDays PeriodCounts `json:"hackathon_days"`
	VacationDays  PeriodCounts `json:"vacation_days"`

	AvailableToCodeComplete    int `json:"available_to_code_complete"`
	AvailableAfterCodeComplete int `json:"available_after_code_complete"`
	TotalAvailableDays         int `json:"total_available_days"`

	// EfficiencyPercent is available days over raw working days, as a
	// percentage rounded to two decimals. 0 when there are no working days.
	EfficiencyPercent float64 `json:"efficiency_percent"`

	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// =============================================================================
// ANALYZER
// =============================================================================

// Insight thresholds.
const (
	// efficiencyRiskPercent marks a window where deductions eat too much of
	// the raw schedule.
	efficiencyRiskPercent = 70

	// holidayDensityThreshold is the holiday count above which the window is
	// flagged as holiday-heavy.
	holidayDensityThreshold = 3
)

// Analyzer computes availability with a fixed region and leave policy. It has
// no mutable state; a single value can serve concurrent callers.
type Analyzer struct {
	Region string
	Policy leave.Policy
}

// NewAnalyzer returns an analyzer with the default region and leave policy.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Region: holidays.RegionUS, Policy: leave.DefaultPolicy()}
}

// Analyze is a convenience wrapper over NewAnalyzer().Analyze.
func Analyze(executeCommit, softCodeComplete, ga calendar.TimePoint) Result {
	return NewAnalyzer().Analyze(executeCommit, softCodeComplete, ga)
}

// Analyze computes the availability breakdown for one release window.
func (a *Analyzer) Analyze(executeCommit, softCodeComplete, ga calendar.TimePoint) Result {
	r := Result{
		ExecuteCommit:    executeCommit,
		SoftCodeComplete: softCodeComplete,
		GA:               ga,
	}

	r.TotalWorkingDays = calendar.CountWorkingDays(executeCommit, ga)
	r.WorkingDays = PeriodCounts{
		CodeComplete:      calendar.CountWorkingDays(executeCommit, softCodeComplete),
		AfterCodeComplete: calendar.CountWorkingDays(softCodeComplete, ga),
	}
	r.WorkingDays.Total = r.WorkingDays.CodeComplete + r.WorkingDays.AfterCodeComplete

	r.Holidays = PeriodCounts{
		CodeComplete:      holidays.CountInRange(executeCommit, softCodeComplete, a.Region),
		AfterCodeComplete: holidays.CountInRange(softCodeComplete, ga, a.Region),
	}
	r.Holidays.Total = r.Holidays.CodeComplete + r.Holidays.AfterCodeComplete

	r.HackathonDays = PeriodCounts{
		CodeComplete:      calendar.HackathonDaysInRange(executeCommit, softCodeComplete),
		AfterCodeComplete: calendar.HackathonDaysInRange(softCodeComplete, ga),
	}
	r.HackathonDays.Total = r.HackathonDays.CodeComplete + r.HackathonDays.AfterCodeComplete

	// Leave is apportioned against the full span: the whole-span call sizes
	// the entitlement, and each sub-period takes its share of that same
	// denominator rather than being treated as an independent full policy
	// evaluation.
	r.VacationDays = PeriodCounts{
		Total:             leave.Apportion(executeCommit, ga, executeCommit, ga, a.Policy),
		CodeComplete:      leave.Apportion(executeCommit, softCodeComplete, executeCommit, ga, a.Policy),
		AfterCodeComplete: leave.Apportion(softCodeComplete, ga, executeCommit, ga, a.Policy),
	}

	r.AvailableToCodeComplete = floorZero(
		r.WorkingDays.CodeComplete - r.Holidays.CodeComplete -
			r.HackathonDays.CodeComplete - r.VacationDays.CodeComplete)
	r.AvailableAfterCodeComplete = floorZero(
		r.WorkingDays.AfterCodeComplete - r.Holidays.AfterCodeComplete -
			r.HackathonDays.AfterCodeComplete - r.VacationDays.AfterCodeComplete)
	r.TotalAvailableDays = r.AvailableToCodeComplete + r.AvailableAfterCodeComplete

	if r.TotalWorkingDays > 0 {
		pct := decimal.NewFromInt(int64(r.TotalAvailableDays)).
			Div(decimal.NewFromInt(int64(r.TotalWorkingDays))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		r.EfficiencyPercent, _ = pct.Float64()
	}

	r.Insights, r.Recommendations = a.narrate(r)
	return r
}

// narrate generates the free-text insights and recommendations. Phrasing is
// advisory and not machine-parsed; the triggering thresholds are the contract.
func (a *Analyzer) narrate(r Result) (insights, recommendations []string) {
	insights = []string{}
	recommendations = []string{}

	if r.TotalWorkingDays == 0 {
		insights = append(insights, "The window between execute-commit and GA contains no working days.")
		recommendations = append(recommendations, "Check milestone ordering: GA may precede execute-commit.")
		return insights, recommendations
	}

	if r.EfficiencyPercent < efficiencyRiskPercent {
		insights = append(insights, fmt.Sprintf(
			"Efficiency is %.2f%%, below the %d%% planning threshold; deductions consume a large share of the schedule.",
			r.EfficiencyPercent, efficiencyRiskPercent))
		recommendations = append(recommendations,
			"Consider extending the timeline or trimming scope to offset holiday and leave deductions.")
	}

	if r.HackathonDays.CodeComplete > 0 {
		insights = append(insights, fmt.Sprintf(
			"The hackathon overlaps the code-complete period (%d day(s)).", r.HackathonDays.CodeComplete))
	}
	if r.HackathonDays.AfterCodeComplete > 0 {
		insights = append(insights, fmt.Sprintf(
			"The hackathon overlaps the stabilization period after code-complete (%d day(s)).",
			r.HackathonDays.AfterCodeComplete))
	}
	if r.HackathonDays.Total > 0 {
		recommendations = append(recommendations,
			"Plan no critical deliverables on hackathon days in the first week of February.")
	}

	if r.Holidays.Total > holidayDensityThreshold {
		insights = append(insights, fmt.Sprintf(
			"The window is holiday-heavy for region %s: %d holidays fall inside it.",
			a.Region, r.Holidays.Total))
		recommendations = append(recommendations,
			"Account for reduced review and on-call coverage around regional holidays.")
	}

	return insights, recommendations
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
