/*
Package sqlite provides the SQLite-backed persistence collaborator.

PURPOSE:
  The availability core is pure computation; this package stores what the
  surrounding application needs to remember: release plans, the append-only
  date-change history used for compliance review, frozen availability
  snapshots, and the user records consumed by the role gate.

KEY TABLES:
  release_plans:          One row per release, one column per milestone date
  date_history:           Append-only audit log of every milestone change
  availability_snapshots: Frozen analysis results keyed by (plan, computed_at)
  users:                  Identities with a viewer/editor/admin role

APPEND-ONLY ENFORCEMENT:
  date_history rows are never updated or deleted; a correction to a
  milestone date is itself a new history row. The same applies to
  availability_snapshots: a baseline, once frozen, stays frozen.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety alongside WAL mode. A PostgreSQL port
  would rely on database-level concurrency control instead.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - api/: HTTP handlers over this store
  - plan/: milestone field vocabulary used for history rows
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/plan"
)

// Store implements all persistence used by the API layer.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS release_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		pre_cc_complete TEXT,
		concept_commit TEXT,
		execute_commit TEXT,
		soft_code_complete TEXT,
		commit_gate_met TEXT,
		promotion_gate_met TEXT,
		ga TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Append-only audit log: one row per milestone date change.
	-- No UPDATE or DELETE ever touches this table.
	CREATE TABLE IF NOT EXISTS date_history (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL,
		field TEXT NOT NULL,
		old_value TEXT,
		new_value TEXT,
		changed_by TEXT NOT NULL,
		changed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_date_history_plan
		ON date_history(plan_id, changed_at);

	-- Frozen baselines: full analysis results as JSON, keyed by plan and
	-- computation time.
	CREATE TABLE IF NOT EXISTS availability_snapshots (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL,
		computed_at TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_plan
		ON availability_snapshots(plan_id, computed_at DESC);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RELEASE PLANS
// =============================================================================

// ReleasePlan is a stored release with its milestone dates.
type ReleasePlan struct {
	ID        string
	Name      string
	Dates     plan.Milestones
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavePlan inserts a new release plan. Milestone dates may be partially set.
func (s *Store) SavePlan(ctx context.Context, p ReleasePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	args := []any{p.ID, p.Name}
	for _, field := range plan.MilestoneFields {
		args = append(args, dateToNullString(p.Dates[field]))
	}
	args = append(args, now, now)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO release_plans
			(id, name, pre_cc_complete, concept_commit, execute_commit,
			 soft_code_complete, commit_gate_met, promotion_gate_met, ga,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetPlan returns a plan by ID, or nil if it does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*ReleasePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getPlanLocked(ctx, id)
}

func (s *Store) getPlanLocked(ctx context.Context, id string) (*ReleasePlan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, pre_cc_complete, concept_commit, execute_commit,
		       soft_code_complete, commit_gate_met, promotion_gate_met, ga,
		       created_at, updated_at
		FROM release_plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// ListPlans returns all plans ordered by creation time.
func (s *Store) ListPlans(ctx context.Context) ([]ReleasePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, pre_cc_complete, concept_commit, execute_commit,
		       soft_code_complete, commit_gate_met, promotion_gate_met, ga,
		       created_at, updated_at
		FROM release_plans ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []ReleasePlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan. Its history and snapshots are kept for
// compliance review.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM release_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}

// UpdatePlanDates applies milestone changes to a plan and appends one
// date_history row per changed field. Fields absent from updates are left
// untouched; a nil value clears the milestone. Returns the number of fields
// that actually changed.
func (s *Store) UpdatePlanDates(ctx context.Context, planID string, updates plan.Milestones, changedBy string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getPlanLocked(ctx, planID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, fmt.Errorf("plan %s not found", planID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	changed := 0
	for _, field := range plan.MilestoneFields {
		newVal, present := updates[field]
		if !present {
			continue
		}
		oldStr := dateToNullString(existing.Dates[field])
		newStr := dateToNullString(newVal)
		if equalNullStrings(oldStr, newStr) {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE release_plans SET `+field+` = ?, updated_at = ? WHERE id = ?`,
			newStr, now.Format(time.RFC3339), planID); err != nil {
			return 0, fmt.Errorf("failed to update %s: %w", field, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO date_history (id, plan_id, field, old_value, new_value, changed_by, changed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), planID, field, oldStr, newStr, changedBy,
			now.Format(time.RFC3339)); err != nil {
			return 0, fmt.Errorf("failed to record history for %s: %w", field, err)
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit update: %w", err)
	}
	return changed, nil
}

// =============================================================================
// DATE HISTORY
// =============================================================================

// DateHistoryEntry is one audit row: a milestone date transition.
type DateHistoryEntry struct {
	ID        string
	PlanID    string
	Field     string
	OldValue  *string
	NewValue  *string
	ChangedBy string
	ChangedAt time.Time
}

// ListDateHistory returns the audit trail for a plan, oldest first.
func (s *Store) ListDateHistory(ctx context.Context, planID string) ([]DateHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plan_id, field, old_value, new_value, changed_by, changed_at
		FROM date_history WHERE plan_id = ? ORDER BY changed_at, id`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []DateHistoryEntry
	for rows.Next() {
		var e DateHistoryEntry
		var oldVal, newVal sql.NullString
		var changedAt string
		if err := rows.Scan(&e.ID, &e.PlanID, &e.Field, &oldVal, &newVal, &e.ChangedBy, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if oldVal.Valid {
			e.OldValue = &oldVal.String
		}
		if newVal.Valid {
			e.NewValue = &newVal.String
		}
		e.ChangedAt, _ = time.Parse(time.RFC3339, changedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// AVAILABILITY SNAPSHOTS
// =============================================================================

// SnapshotRecord is a frozen analysis result for later baseline comparison.
type SnapshotRecord struct {
	ID         string
	PlanID     string
	ComputedAt time.Time
	ResultJSON string
}

// SaveSnapshot freezes an analysis result.
func (s *Store) SaveSnapshot(ctx context.Context, snap SnapshotRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability_snapshots (id, plan_id, computed_at, result_json)
		VALUES (?, ?, ?, ?)`,
		snap.ID, snap.PlanID, snap.ComputedAt.UTC().Format(time.RFC3339), snap.ResultJSON)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns a plan's frozen baselines, newest first.
func (s *Store) ListSnapshots(ctx context.Context, planID string) ([]SnapshotRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plan_id, computed_at, result_json
		FROM availability_snapshots WHERE plan_id = ?
		ORDER BY computed_at DESC`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []SnapshotRecord
	for rows.Next() {
		var snap SnapshotRecord
		var computedAt string
		if err := rows.Scan(&snap.ID, &snap.PlanID, &computedAt, &snap.ResultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// =============================================================================
// USERS
// =============================================================================

// User is an identity with a role. Authentication happens upstream; this
// table only backs the role gate.
type User struct {
	ID        string
	Email     string
	Role      string
	CreatedAt time.Time
}

// SaveUser inserts or updates a user record.
func (s *Store) SaveUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, role, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, role = excluded.role`,
		u.ID, u.Email, u.Role, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser returns a user by ID, or nil if absent.
func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u User
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.Role, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*ReleasePlan, error) {
	var p ReleasePlan
	var dates [7]sql.NullString
	var createdAt, updatedAt string

	dest := []any{&p.ID, &p.Name}
	for i := range dates {
		dest = append(dest, &dates[i])
	}
	dest = append(dest, &createdAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	p.Dates = plan.Milestones{}
	for i, field := range plan.MilestoneFields {
		if !dates[i].Valid {
			continue
		}
		tp, err := calendar.ParseDate(dates[i].String)
		if err != nil {
			return nil, fmt.Errorf("invalid date for %s: %w", field, err)
		}
		p.Dates[field] = &tp
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func dateToNullString(tp *calendar.TimePoint) sql.NullString {
	if tp == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: tp.String(), Valid: true}
}

func equalNullStrings(a, b sql.NullString) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.String == b.String
}
