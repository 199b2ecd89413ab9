/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the wire as YYYY-MM-DD strings. A null value in an update
  request clears the milestone; an absent key leaves it untouched.

SEE ALSO:
  - handlers.go: Uses these types
  - availability/: Result is serialized as-is inside AnalysisDTO
*/
package api

import (
	"github.com/ntnxnam/ndb-capacity-planner/availability"
)

// =============================================================================
// PLANS
// =============================================================================

// PlanDTO represents a release plan in API responses. Dates maps milestone
// field names to YYYY-MM-DD strings; unset milestones are omitted.
type PlanDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Dates     map[string]string `json:"dates"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// CreatePlanRequest creates a plan with an optional initial date set.
type CreatePlanRequest struct {
	Name  string            `json:"name"`
	Dates map[string]string `json:"dates,omitempty"`
}

// UpdateDatesRequest changes milestone dates. Keys are milestone field
// names; a null value clears the milestone.
type UpdateDatesRequest struct {
	Dates map[string]*string `json:"dates"`
}

// UpdateDatesResponse reports how many fields actually changed.
type UpdateDatesResponse struct {
	PlanID        string `json:"plan_id"`
	ChangedFields int    `json:"changed_fields"`
}

// =============================================================================
// ANALYSIS
// =============================================================================

// AnalysisDTO wraps an availability result with its snapshot identity.
type AnalysisDTO struct {
	PlanID     string              `json:"plan_id"`
	SnapshotID string              `json:"snapshot_id,omitempty"`
	ComputedAt string              `json:"computed_at"`
	Result     availability.Result `json:"result"`
}

// SnapshotDTO is a frozen baseline in list responses.
type SnapshotDTO struct {
	ID         string              `json:"id"`
	PlanID     string              `json:"plan_id"`
	ComputedAt string              `json:"computed_at"`
	Result     availability.Result `json:"result"`
}

// =============================================================================
// HISTORY
// =============================================================================

// HistoryEntryDTO is one audit row of the date-change log.
type HistoryEntryDTO struct {
	ID        string  `json:"id"`
	PlanID    string  `json:"plan_id"`
	Field     string  `json:"field"`
	OldValue  *string `json:"old_value"`
	NewValue  *string `json:"new_value"`
	ChangedBy string  `json:"changed_by"`
	ChangedAt string  `json:"changed_at"`
}

// =============================================================================
// GAP VALIDATION
// =============================================================================

// ValidateGapsRequest carries expected spacing per adjacency, in whole weeks.
type ValidateGapsRequest struct {
	ExpectedGapsWeeks map[string]int `json:"expected_gaps_weeks"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents one holiday entry.
type HolidayDTO struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Kind string `json:"kind"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
