package plan

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ntnxnam/ndb-capacity-planner/calendar"
)

// =============================================================================
// DATE-GAP VALIDATION
// =============================================================================
//
// Each configured adjacency names a pair of milestones and how many whole
// weeks are expected between them. Validation is advisory: a mismatch
// produces a warning string, never an error, and never blocks a write.

// Adjacency bounds on expected spacing.
const (
	MinGapWeeks = 1
	MaxGapWeeks = 52
)

// adjacency ties a config key to the two milestone fields it spans and the
// label used in warning text.
type adjacency struct {
	Key   string
	From  string
	To    string
	Label string
}

// adjacencies lists every configurable milestone pairing, later milestone
// first to match how planners read the schedule backwards from GA.
var adjacencies = []adjacency{
	{Key: "ga_to_promotion_gate", From: FieldGA, To: FieldPromotionGateMet, Label: "GA to Promotion Gate"},
	{Key: "promotion_gate_to_commit_gate", From: FieldPromotionGateMet, To: FieldCommitGateMet, Label: "Promotion Gate to Commit Gate"},
	{Key: "commit_gate_to_soft_code_complete", From: FieldCommitGateMet, To: FieldSoftCodeComplete, Label: "Commit Gate to Soft Code Complete"},
	{Key: "soft_code_complete_to_execute_commit", From: FieldSoftCodeComplete, To: FieldExecuteCommit, Label: "Soft Code Complete to Execute Commit"},
	{Key: "execute_commit_to_concept_commit", From: FieldExecuteCommit, To: FieldConceptCommit, Label: "Execute Commit to Concept Commit"},
	{Key: "concept_commit_to_pre_cc_complete", From: FieldConceptCommit, To: FieldPreCCComplete, Label: "Concept Commit to Pre-CC Complete"},
}

// GapConfig maps adjacency keys to expected spacing in whole weeks.
type GapConfig map[string]int

// Validate checks that every configured adjacency is known and its spacing
// is within [MinGapWeeks, MaxGapWeeks].
func (c GapConfig) Validate() error {
	known := make(map[string]bool, len(adjacencies))
	for _, a := range adjacencies {
		known[a.Key] = true
	}
	for key, weeks := range c {
		if !known[key] {
			return fmt.Errorf("unknown adjacency %q", key)
		}
		if weeks < MinGapWeeks || weeks > MaxGapWeeks {
			return fmt.Errorf("adjacency %q: expected weeks %d out of range [%d, %d]",
				key, weeks, MinGapWeeks, MaxGapWeeks)
		}
	}
	return nil
}

// LoadGapConfig reads a GapConfig from a YAML file of the form:
//
//	ga_to_promotion_gate: 4
//	promotion_gate_to_commit_gate: 2
func LoadGapConfig(path string) (GapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gap config: %w", err)
	}
	var cfg GapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse gap config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gap config: %w", err)
	}
	return cfg, nil
}

// GapReport is the outcome of a gap validation pass. Errors is reserved for
// future hard-fail rules and is always empty today.
type GapReport struct {
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// ValidateDateGaps compares actual milestone spacing against expected
// spacing. An adjacency is checked only when it appears in expected and both
// of its milestones are set; anything else is silently skipped, so a
// partially-filled plan yields a partial report.
func ValidateDateGaps(actual Milestones, expected GapConfig) GapReport {
	report := GapReport{Warnings: []string{}, Errors: []string{}}

	for _, adj := range adjacencies {
		expectedWeeks, ok := expected[adj.Key]
		if !ok {
			continue
		}
		from, okFrom := actual.Get(adj.From)
		to, okTo := actual.Get(adj.To)
		if !okFrom || !okTo {
			continue
		}

		days := calendar.DaysBetween(to, from)
		actualWeeks := int(math.Round(math.Abs(float64(days)) / 7))
		if actualWeeks != expectedWeeks {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s: expected %d week(s), actual %d week(s)",
				adj.Label, expectedWeeks, actualWeeks))
		}
	}
	return report
}
