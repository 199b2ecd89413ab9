/*
Package plan defines release-plan milestones and milestone-spacing validation.

PURPOSE:
  A release plan is an ordered set of named milestone dates, from early
  concept gates through GA. This package holds the milestone vocabulary,
  the expected-spacing configuration (loadable from YAML), and the advisory
  gap validator that compares actual milestone spacing against it.

MILESTONE ORDER (earliest to latest, by intent):
  pre_cc_complete -> concept_commit -> execute_commit -> soft_code_complete
  -> commit_gate_met -> promotion_gate_met -> ga

  Chronological order is intended but NOT enforced: partially-filled and
  out-of-order plans are accepted everywhere, and validation only ever emits
  warnings. Blocking writes on spacing is explicitly not this system's job.

SEE ALSO:
  - availability/: consumes execute_commit / soft_code_complete / ga
  - store/sqlite/: persists plans and their date-change history
*/
package plan

import (
	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

// =============================================================================
// MILESTONES
// =============================================================================

// Milestone field names, used as map keys, JSON fields and audit-log field
// identifiers.
const (
	FieldPreCCComplete    = "pre_cc_complete"
	FieldConceptCommit    = "concept_commit"
	FieldExecuteCommit    = "execute_commit"
	FieldSoftCodeComplete = "soft_code_complete"
	FieldCommitGateMet    = "commit_gate_met"
	FieldPromotionGateMet = "promotion_gate_met"
	FieldGA               = "ga"
)

// MilestoneFields lists every milestone in intended chronological order.
var MilestoneFields = []string{
	FieldPreCCComplete,
	FieldConceptCommit,
	FieldExecuteCommit,
	FieldSoftCodeComplete,
	FieldCommitGateMet,
	FieldPromotionGateMet,
	FieldGA,
}

// Milestones maps milestone field names to dates. A missing key or nil value
// means the milestone is not set yet.
type Milestones map[string]*calendar.TimePoint

// Get returns the date for a field and whether it is set.
func (m Milestones) Get(field string) (calendar.TimePoint, bool) {
	tp, ok := m[field]
	if !ok || tp == nil {
		return calendar.TimePoint{}, false
	}
	return *tp, true
}
