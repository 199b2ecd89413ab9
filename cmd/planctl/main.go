/*
main.go - planctl, the capacity planner command-line tool

PURPOSE:
  Runs the availability analyzer, holiday tables and gap validator from the
  terminal without a running server. Useful for quick what-if checks on
  candidate milestone dates.

COMMANDS:
  planctl analyze --execute-commit 2025-01-07 --soft-code-complete 2025-03-04 --ga 2025-05-06
  planctl holidays --year 2025 --region US
  planctl gaps --config gaps.yaml --ga 2025-05-06 --promotion-gate 2025-04-08

SEE ALSO:
  - availability/: analyzer and text formatter
  - plan/: gap configuration and validator
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntnxnam/ndb-capacity-planner/availability"
	"github.com/ntnxnam/ndb-capacity-planner/calendar"
	"github.com/ntnxnam/ndb-capacity-planner/holidays"
	"github.com/ntnxnam/ndb-capacity-planner/plan"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Release capacity planning from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newHolidaysCmd(), newGapsCmd())
	return root
}

// =============================================================================
// analyze
// =============================================================================

func newAnalyzeCmd() *cobra.Command {
	var executeCommit, softCodeComplete, ga, region string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute available engineering days for a release window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireDate("execute-commit", executeCommit)
			if err != nil {
				return err
			}
			scc, err := requireDate("soft-code-complete", softCodeComplete)
			if err != nil {
				return err
			}
			gaDate, err := requireDate("ga", ga)
			if err != nil {
				return err
			}

			analyzer := availability.NewAnalyzer()
			if region != "" {
				analyzer.Region = region
			}
			result := analyzer.Analyze(ec, scc, gaDate)
			fmt.Fprint(cmd.OutOrStdout(), availability.FormatText(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&executeCommit, "execute-commit", "", "Execute-commit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&softCodeComplete, "soft-code-complete", "", "Soft code-complete date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ga, "ga", "", "GA date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&region, "region", holidays.RegionUS, "Holiday region")
	return cmd
}

// =============================================================================
// holidays
// =============================================================================

func newHolidaysCmd() *cobra.Command {
	var year int
	var region string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the holiday table for a year and region",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = calendar.Today().Year()
			}
			for _, h := range holidays.ForYear(year, region) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %s\n", h.Date, h.Kind, h.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to current year)")
	cmd.Flags().StringVar(&region, "region", holidays.RegionUS, "Holiday region")
	return cmd
}

// =============================================================================
// gaps
// =============================================================================

func newGapsCmd() *cobra.Command {
	var configPath string
	dateFlags := map[string]*string{}

	// flag name -> milestone field
	flagFields := []struct{ Flag, Field string }{
		{"pre-cc-complete", plan.FieldPreCCComplete},
		{"concept-commit", plan.FieldConceptCommit},
		{"execute-commit", plan.FieldExecuteCommit},
		{"soft-code-complete", plan.FieldSoftCodeComplete},
		{"commit-gate", plan.FieldCommitGateMet},
		{"promotion-gate", plan.FieldPromotionGateMet},
		{"ga", plan.FieldGA},
	}

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Check milestone spacing against expected gaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := plan.LoadGapConfig(configPath)
			if err != nil {
				return err
			}

			actual := plan.Milestones{}
			for _, ff := range flagFields {
				raw := *dateFlags[ff.Flag]
				if raw == "" {
					continue
				}
				tp, err := calendar.ParseDate(raw)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", ff.Flag, err)
				}
				actual[ff.Field] = &tp
			}

			report := plan.ValidateDateGaps(actual, expected)
			if len(report.Warnings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All configured gaps match.")
				return nil
			}
			for _, warning := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "gaps.yaml", "YAML file with expected gaps in weeks")
	for _, ff := range flagFields {
		s := new(string)
		dateFlags[ff.Flag] = s
		cmd.Flags().StringVar(s, ff.Flag, "", ff.Field+" date (YYYY-MM-DD)")
	}
	return cmd
}

func requireDate(flag, value string) (calendar.TimePoint, error) {
	if value == "" {
		return calendar.TimePoint{}, fmt.Errorf("--%s is required", flag)
	}
	tp, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.TimePoint{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return tp, nil
}
