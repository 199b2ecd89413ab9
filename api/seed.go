package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/plan"
	"github.com/ntnxnam/ndb-capacity-planner/store/sqlite"
)

// =============================================================================
// DEMO SEED DATA
// =============================================================================

// SeedDemo loads two sample release plans so a fresh database has something
// to explore. Dates are fixed, not relative to today, so the resulting
// analyses are reproducible.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plans := []sqlite.ReleasePlan{
		{
			ID:   uuid.NewString(),
			Name: "NDB 2.8",
			Dates: demoDates(map[string]calendar.TimePoint{
				plan.FieldConceptCommit:    calendar.NewTimePoint(2024, time.November, 5),
				plan.FieldExecuteCommit:    calendar.NewTimePoint(2025, time.January, 7),
				plan.FieldSoftCodeComplete: calendar.NewTimePoint(2025, time.March, 4),
				plan.FieldCommitGateMet:    calendar.NewTimePoint(2025, time.March, 18),
				plan.FieldPromotionGateMet: calendar.NewTimePoint(2025, time.April, 8),
				plan.FieldGA:               calendar.NewTimePoint(2025, time.May, 6),
			}),
		},
		{
			ID:   uuid.NewString(),
			Name: "NDB 2.9 (early planning)",
			Dates: demoDates(map[string]calendar.TimePoint{
				plan.FieldConceptCommit: calendar.NewTimePoint(2025, time.June, 3),
				plan.FieldExecuteCommit: calendar.NewTimePoint(2025, time.August, 5),
			}),
		},
	}

	created := make([]string, 0, len(plans))
	for _, p := range plans {
		if err := h.Store.SavePlan(ctx, p); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed plans", err)
			return
		}
		created = append(created, p.Name)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"created": created})
}

func demoDates(dates map[string]calendar.TimePoint) plan.Milestones {
	m := plan.Milestones{}
	for field, tp := range dates {
		m[field] = &tp
	}
	return m
}
