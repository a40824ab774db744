package continuity

import (
	"fmt"
	"strings"

	"slate/internal/textutil"
)

// NoIssuesMessage is the report text for a clean timeline.
const NoIssuesMessage = "No continuity issues detected. Timeline looks good!"

// SeverityCounts tallies issues per severity.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Total returns the number of counted issues.
func (c SeverityCounts) Total() int {
	return c.Critical + c.Warning + c.Info
}

// CountBySeverity tallies issues per severity.
func CountBySeverity(issues []Issue) SeverityCounts {
	var counts SeverityCounts
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			counts.Critical++
		case SeverityWarning:
			counts.Warning++
		case SeverityInfo:
			counts.Info++
		}
	}
	return counts
}

// GenerateReport renders issues as a plain-text report, preserving order.
func GenerateReport(issues []Issue) string {
	if len(issues) == 0 {
		return NoIssuesMessage
	}

	counts := CountBySeverity(issues)

	var b strings.Builder
	b.WriteString("Continuity Analysis Report\n")
	b.WriteString("==========================\n\n")
	fmt.Fprintf(&b, "Summary: %d continuity %s detected\n", len(issues), textutil.Plural(len(issues), "issue"))
	fmt.Fprintf(&b, "  - %d critical\n", counts.Critical)
	fmt.Fprintf(&b, "  - %d %s\n", counts.Warning, textutil.Plural(counts.Warning, "warning"))
	fmt.Fprintf(&b, "  - %d info\n\n", counts.Info)
	b.WriteString("Detailed Issues:\n")
	b.WriteString("================\n\n")

	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, strings.ToUpper(string(issue.Severity)), strings.ToUpper(string(issue.Kind)), issue.ID)
		fmt.Fprintf(&b, "   %s\n", issue.Description)
		fmt.Fprintf(&b, "   Suggested Fix: %s\n\n", issue.SuggestedFix)
	}
	return b.String()
}
