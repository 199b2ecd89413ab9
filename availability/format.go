package availability

import (
	"fmt"
	"strings"
)

// FormatText renders a Result as human-readable sections for CLI and
// tool-style callers. This is a presentation adapter over the structured
// result; nothing parses its output.
func FormatText(r Result) string {
	var b strings.Builder

	section(&b, "Timeline")
	fmt.Fprintf(&b, "  Execute Commit:     %s\n", r.ExecuteCommit)
	fmt.Fprintf(&b, "  Soft Code Complete: %s\n", r.SoftCodeComplete)
	fmt.Fprintf(&b, "  GA:                 %s\n", r.GA)

	section(&b, "Working Days")
	fmt.Fprintf(&b, "  Full span:           %d\n", r.TotalWorkingDays)
	fmt.Fprintf(&b, "  To code-complete:    %d\n", r.WorkingDays.CodeComplete)
	fmt.Fprintf(&b, "  After code-complete: %d\n", r.WorkingDays.AfterCodeComplete)

	section(&b, "Deductions")
	fmt.Fprintf(&b, "  Holidays:       %d (%d / %d)\n",
		r.Holidays.Total, r.Holidays.CodeComplete, r.Holidays.AfterCodeComplete)
	fmt.Fprintf(&b, "  Hackathon days: %d (%d / %d)\n",
		r.HackathonDays.Total, r.HackathonDays.CodeComplete, r.HackathonDays.AfterCodeComplete)
	fmt.Fprintf(&b, "  Vacation days:  %d (%d / %d)\n",
		r.VacationDays.Total, r.VacationDays.CodeComplete, r.VacationDays.AfterCodeComplete)

	section(&b, "Final Availability")
	fmt.Fprintf(&b, "  To code-complete:    %d\n", r.AvailableToCodeComplete)
	fmt.Fprintf(&b, "  After code-complete: %d\n", r.AvailableAfterCodeComplete)
	fmt.Fprintf(&b, "  Total:               %d\n", r.TotalAvailableDays)
	fmt.Fprintf(&b, "  Efficiency:          %.2f%%\n", r.EfficiencyPercent)

	if len(r.Insights) > 0 {
		section(&b, "Insights")
		for _, s := range r.Insights {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if len(r.Recommendations) > 0 {
		section(&b, "Recommendations")
		for _, s := range r.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
}
