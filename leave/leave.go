/*
Package leave apportions a fixed annual leave allowance across sub-periods.

PURPOSE:
  Engineers accrue a fixed pool of paid leave per cycle. When estimating
  availability for a release window, the planner assumes leave is taken
  evenly over time and deducts the slice of the pool proportional to the
  window's share of the full release span.

ROUNDING:
  Apportionment rounds twice: once when sizing the full-span entitlement
  from the cycle pool, and again when slicing the sub-period share. Both
  stages round half away from zero and clamp independently. The two-stage
  rounding means shares are not perfectly proportional; downstream consumers
  expect these exact numbers, so the stages must not be collapsed into a
  single division.

  decimal.Decimal carries the intermediate ratios so the same inputs always
  round the same way.
*/
package leave

import (
	"github.com/shopspring/decimal"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

// Policy is the fixed leave configuration applied to every engineer.
type Policy struct {
	AnnualPaidLeaveDays int
	WellnessDays        int
	PerCycleDays        int
	CycleDurationMonths int
}

// DefaultPolicy returns the standard company policy: 18 paid leave days per
// year accrued as 9 days per 6-month cycle, plus 3 wellness days.
func DefaultPolicy() Policy {
	return Policy{
		AnnualPaidLeaveDays: 18,
		WellnessDays:        3,
		PerCycleDays:        9,
		CycleDurationMonths: 6,
	}
}

// assumed days per month when converting a cycle length to days
const daysPerMonth = 30

// Apportion returns the leave days attributable to [periodStart, periodEnd]
// out of the total span [totalStart, totalEnd].
//
// The full-span entitlement is sized first: totalDays / (cycle months * 30)
// cycles worth of PerCycleDays, rounded, clamped to the annual cap. The
// sub-period then receives its calendar-day share of that entitlement,
// rounded and clamped again.
//
// A zero-length total span returns 0. Negative day spans are treated as 0.
func Apportion(periodStart, periodEnd, totalStart, totalEnd calendar.TimePoint, policy Policy) int {
	totalDays := spanDays(totalStart, totalEnd)
	if totalDays == 0 {
		return 0
	}
	periodDays := spanDays(periodStart, periodEnd)

	cycleDays := decimal.NewFromInt(int64(policy.CycleDurationMonths * daysPerMonth))
	if cycleDays.IsZero() {
		return 0
	}

	entitlement := decimal.NewFromInt(int64(totalDays)).
		Div(cycleDays).
		Mul(decimal.NewFromInt(int64(policy.PerCycleDays))).
		Round(0)
	entitlement = clamp(entitlement, int64(policy.AnnualPaidLeaveDays))

	share := decimal.NewFromInt(int64(periodDays)).
		Div(decimal.NewFromInt(int64(totalDays))).
		Mul(entitlement).
		Round(0)
	share = clamp(share, entitlement.IntPart())

	return int(share.IntPart())
}

func spanDays(start, end calendar.TimePoint) int {
	d := calendar.DaysBetween(start, end)
	if d < 0 {
		return 0
	}
	return d
}

func clamp(v decimal.Decimal, max int64) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if limit := decimal.NewFromInt(max); v.GreaterThan(limit) {
		return limit
	}
	return v
}
