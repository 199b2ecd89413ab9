/*
sqlite_test.go - Store tests against an in-memory database

Tests for:
- Plan round trips with partially-set milestone dates
- Date updates appending audit history
- Snapshot freezing and ordering
- User records for the role gate
*/
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func datePtr(y int, m time.Month, d int) *calendar.TimePoint {
	tp := calendar.NewTimePoint(y, m, d)
	return &tp
}

func TestPlanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := ReleasePlan{
		ID:   "plan-1",
		Name: "NDB 2.8",
		Dates: plan.Milestones{
			plan.FieldExecuteCommit: datePtr(2025, time.January, 7),
			plan.FieldGA:            datePtr(2025, time.May, 6),
		},
	}
	require.NoError(t, store.SavePlan(ctx, p))

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "NDB 2.8", got.Name)
	ec, ok := got.Dates.Get(plan.FieldExecuteCommit)
	require.True(t, ok)
	assert.Equal(t, "2025-01-07", ec.String())

	// Unset milestones stay unset
	_, ok = got.Dates.Get(plan.FieldConceptCommit)
	assert.False(t, ok)
}

func TestGetPlan_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPlan(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdatePlanDates_AppendsHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, ReleasePlan{
		ID:   "plan-1",
		Name: "NDB 2.8",
		Dates: plan.Milestones{
			plan.FieldGA: datePtr(2025, time.May, 6),
		},
	}))

	// Move GA and set a new milestone in one call
	changed, err := store.UpdatePlanDates(ctx, "plan-1", plan.Milestones{
		plan.FieldGA:            datePtr(2025, time.May, 20),
		plan.FieldExecuteCommit: datePtr(2025, time.January, 7),
	}, "user-42")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	ga, _ := got.Dates.Get(plan.FieldGA)
	assert.Equal(t, "2025-05-20", ga.String())

	history, err := store.ListDateHistory(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	for _, e := range history {
		assert.Equal(t, "user-42", e.ChangedBy)
	}

	// The GA row must carry both old and new values
	var gaEntry *DateHistoryEntry
	for i := range history {
		if history[i].Field == plan.FieldGA {
			gaEntry = &history[i]
		}
	}
	require.NotNil(t, gaEntry)
	require.NotNil(t, gaEntry.OldValue)
	require.NotNil(t, gaEntry.NewValue)
	assert.Equal(t, "2025-05-06", *gaEntry.OldValue)
	assert.Equal(t, "2025-05-20", *gaEntry.NewValue)

	// The execute-commit row was a set-from-empty: old value is null
	var ecEntry *DateHistoryEntry
	for i := range history {
		if history[i].Field == plan.FieldExecuteCommit {
			ecEntry = &history[i]
		}
	}
	require.NotNil(t, ecEntry)
	assert.Nil(t, ecEntry.OldValue)
}

func TestUpdatePlanDates_NoOpChangeSkipsHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, ReleasePlan{
		ID:    "plan-1",
		Name:  "NDB 2.8",
		Dates: plan.Milestones{plan.FieldGA: datePtr(2025, time.May, 6)},
	}))

	changed, err := store.UpdatePlanDates(ctx, "plan-1", plan.Milestones{
		plan.FieldGA: datePtr(2025, time.May, 6),
	}, "user-42")
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	history, err := store.ListDateHistory(ctx, "plan-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestUpdatePlanDates_ClearMilestone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, ReleasePlan{
		ID:    "plan-1",
		Name:  "NDB 2.8",
		Dates: plan.Milestones{plan.FieldGA: datePtr(2025, time.May, 6)},
	}))

	changed, err := store.UpdatePlanDates(ctx, "plan-1",
		plan.Milestones{plan.FieldGA: nil}, "user-42")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	_, ok := got.Dates.Get(plan.FieldGA)
	assert.False(t, ok)
}

func TestUpdatePlanDates_UnknownPlan(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdatePlanDates(context.Background(), "nope",
		plan.Milestones{plan.FieldGA: datePtr(2025, time.May, 6)}, "user-42")
	assert.Error(t, err)
}

func TestSnapshots_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := SnapshotRecord{
		ID: "snap-1", PlanID: "plan-1",
		ComputedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		ResultJSON: `{"total_available_days":30}`,
	}
	newer := SnapshotRecord{
		ID: "snap-2", PlanID: "plan-1",
		ComputedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		ResultJSON: `{"total_available_days":25}`,
	}
	require.NoError(t, store.SaveSnapshot(ctx, older))
	require.NoError(t, store.SaveSnapshot(ctx, newer))

	snaps, err := store.ListSnapshots(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "snap-2", snaps[0].ID)
	assert.Equal(t, "snap-1", snaps[1].ID)
}

func TestDeletePlan_KeepsHistoryAndSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, ReleasePlan{
		ID:    "plan-1",
		Name:  "NDB 2.8",
		Dates: plan.Milestones{plan.FieldGA: datePtr(2025, time.May, 6)},
	}))
	_, err := store.UpdatePlanDates(ctx, "plan-1",
		plan.Milestones{plan.FieldGA: datePtr(2025, time.May, 20)}, "user-42")
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(ctx, SnapshotRecord{
		ID: "snap-1", PlanID: "plan-1", ComputedAt: time.Now().UTC(), ResultJSON: "{}",
	}))

	require.NoError(t, store.DeletePlan(ctx, "plan-1"))

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	history, err := store.ListDateHistory(ctx, "plan-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	snaps, err := store.ListSnapshots(ctx, "plan-1")
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, User{ID: "u-1", Email: "pm@example.com", Role: "editor"}))

	got, err := store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "editor", got.Role)

	// Upsert changes the role
	require.NoError(t, store.SaveUser(ctx, User{ID: "u-1", Email: "pm@example.com", Role: "admin"}))
	got, err = store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)

	missing, err := store.GetUser(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
