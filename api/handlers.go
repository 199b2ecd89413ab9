/*
handlers.go - HTTP API handlers for the capacity planner

PURPOSE:
  Exposes release plans, the availability analyzer, the date-gap validator,
  the holiday tables and the audit trail over REST. Handlers own HTTP
  request/response and JSON shape; all date arithmetic lives in the domain
  packages.

ENDPOINTS:
  Plans:
    GET    /api/plans                     List plans
    POST   /api/plans                     Create plan (editor)
    GET    /api/plans/{id}                Get one plan
    PUT    /api/plans/{id}/dates          Change milestone dates (editor)
    DELETE /api/plans/{id}                Delete plan (admin)

  Analysis:
    POST   /api/plans/{id}/analyze        Run analyzer, freeze a snapshot (editor)
    GET    /api/plans/{id}/snapshots      List frozen baselines
    POST   /api/plans/{id}/validate-gaps  Advisory milestone spacing check

  Audit:
    GET    /api/plans/{id}/history        Date-change audit trail

  Holidays:
    GET    /api/holidays?year=&region=    Holiday table passthrough

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Role gate rejection
  - 404: Plan not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - roles.go: Role gate middleware
  - server.go: Router setup
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ntnxnam/ndb-capacity-planner/availability"
	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/holidays"
	"github.com/ntnxnam/ndb-capacity-planner/plan"
	"github.com/ntnxnam/ndb-capacity-planner/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Analyzer *availability.Analyzer

	// DefaultGaps is used by validate-gaps when the request does not carry
	// its own expected spacing.
	DefaultGaps plan.GapConfig
}

// NewHandler creates a handler with the default analyzer configuration.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Analyzer: availability.NewAnalyzer(),
		DefaultGaps: plan.GapConfig{
			"ga_to_promotion_gate":          4,
			"promotion_gate_to_commit_gate": 2,
		},
	}
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns all release plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanDTO, len(plans))
	for i, p := range plans {
		dtos[i] = toPlanDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPlan returns a single plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(*p))
}

// CreatePlan creates a release plan with an optional initial date set.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Plan name is required", nil)
		return
	}

	dates, err := parseDateMap(req.Dates)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	p := sqlite.ReleasePlan{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Dates: dates,
	}
	if err := h.Store.SavePlan(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create plan", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlanDTO(p))
}

// DeletePlan removes a plan. History and snapshots are retained.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeletePlan(r.Context(), p.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": p.ID})
}

// UpdatePlanDates changes milestone dates and records each change in the
// audit log. Out-of-order dates are accepted; spacing problems surface as
// advisory warnings from validate-gaps, never as write failures.
func (h *Handler) UpdatePlanDates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Dates) == 0 {
		writeError(w, http.StatusBadRequest, "At least one date field is required", nil)
		return
	}

	updates := plan.Milestones{}
	for field, value := range req.Dates {
		if !isMilestoneField(field) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown milestone field: %s", field), nil)
			return
		}
		if value == nil {
			updates[field] = nil
			continue
		}
		tp, err := calendar.ParseDate(*value)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date for %s (use YYYY-MM-DD)", field), err)
			return
		}
		updates[field] = &tp
	}

	changed, err := h.Store.UpdatePlanDates(r.Context(), id, updates, callerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update dates", err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateDatesResponse{PlanID: id, ChangedFields: changed})
}

// =============================================================================
// ANALYSIS HANDLERS
// =============================================================================

// AnalyzePlan runs the availability analyzer over a plan's execute-commit,
// soft-code-complete and GA dates, freezes the result as a snapshot and
// returns it.
func (h *Handler) AnalyzePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	ec, okEC := p.Dates.Get(plan.FieldExecuteCommit)
	scc, okSCC := p.Dates.Get(plan.FieldSoftCodeComplete)
	ga, okGA := p.Dates.Get(plan.FieldGA)
	if !okEC || !okSCC || !okGA {
		writeError(w, http.StatusBadRequest,
			"Analysis requires execute_commit, soft_code_complete and ga dates", nil)
		return
	}

	result := h.Analyzer.Analyze(ec, scc, ga)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode result", err)
		return
	}

	snap := sqlite.SnapshotRecord{
		ID:         uuid.NewString(),
		PlanID:     p.ID,
		ComputedAt: time.Now().UTC(),
		ResultJSON: string(resultJSON),
	}
	if err := h.Store.SaveSnapshot(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to freeze snapshot", err)
		return
	}

	writeJSON(w, http.StatusOK, AnalysisDTO{
		PlanID:     p.ID,
		SnapshotID: snap.ID,
		ComputedAt: snap.ComputedAt.Format(time.RFC3339),
		Result:     result,
	})
}

// ListSnapshots returns a plan's frozen baselines, newest first.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snaps, err := h.Store.ListSnapshots(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots", err)
		return
	}

	dtos := make([]SnapshotDTO, 0, len(snaps))
	for _, snap := range snaps {
		var result availability.Result
		if err := json.Unmarshal([]byte(snap.ResultJSON), &result); err != nil {
			continue // Skip unreadable snapshots
		}
		dtos = append(dtos, SnapshotDTO{
			ID:         snap.ID,
			PlanID:     snap.PlanID,
			ComputedAt: snap.ComputedAt.Format(time.RFC3339),
			Result:     result,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ValidateGaps compares the plan's milestone spacing against expected gaps.
// The response is always advisory: warnings only, empty errors.
func (h *Handler) ValidateGaps(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	expected := h.DefaultGaps
	if r.ContentLength > 0 {
		var req ValidateGapsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if len(req.ExpectedGapsWeeks) > 0 {
			cfg := plan.GapConfig(req.ExpectedGapsWeeks)
			if err := cfg.Validate(); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid gap configuration", err)
				return
			}
			expected = cfg
		}
	}

	report := plan.ValidateDateGaps(p.Dates, expected)
	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// AUDIT HANDLERS
// =============================================================================

// ListHistory returns the date-change audit trail for a plan.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.Store.ListDateHistory(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}

	dtos := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = HistoryEntryDTO{
			ID:        e.ID,
			PlanID:    e.PlanID,
			Field:     e.Field,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holiday table for a year and region.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}
	region := r.URL.Query().Get("region")
	if region == "" {
		region = holidays.RegionUS
	}

	entries := holidays.ForYear(year, region)
	dtos := make([]HolidayDTO, len(entries))
	for i, e := range entries {
		dtos[i] = HolidayDTO{Name: e.Name, Date: e.Date.String(), Kind: string(e.Kind)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// loadPlan fetches the plan in the URL, writing the error response itself
// when the plan is missing or the store fails.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request) (*sqlite.ReleasePlan, bool) {
	id := chi.URLParam(r, "id")
	p, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return nil, false
	}
	return p, true
}

func toPlanDTO(p sqlite.ReleasePlan) PlanDTO {
	dates := make(map[string]string)
	for _, field := range plan.MilestoneFields {
		if tp, ok := p.Dates.Get(field); ok {
			dates[field] = tp.String()
		}
	}
	dto := PlanDTO{ID: p.ID, Name: p.Name, Dates: dates}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		dto.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func parseDateMap(raw map[string]string) (plan.Milestones, error) {
	dates := plan.Milestones{}
	for field, value := range raw {
		if !isMilestoneField(field) {
			return nil, fmt.Errorf("unknown milestone field: %s", field)
		}
		tp, err := calendar.ParseDate(value)
		if err != nil {
			return nil, fmt.Errorf("invalid date for %s (use YYYY-MM-DD)", field)
		}
		dates[field] = &tp
	}
	return dates, nil
}

func isMilestoneField(field string) bool {
	for _, f := range plan.MilestoneFields {
		if f == field {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
