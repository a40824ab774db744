package continuity

import (
	"context"
	"strings"
	"testing"

	"slate/internal/logging"
	"slate/internal/testsupport"
)

func TestGenerateReportEmpty(t *testing.T) {
	if got := GenerateReport(nil); got != NoIssuesMessage {
		t.Fatalf("unexpected report %q", got)
	}
}

func TestGenerateReportListsIssuesInOrder(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())
	issues, err := analyzer.Analyze(context.Background(), timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	report := GenerateReport(issues)
	for _, want := range []string{
		"Summary: 3 continuity issues detected",
		"  - 1 critical",
		"  - 1 warning\n",
		"  - 1 info",
		"1. [CRITICAL] LIGHTING-JUMP (lighting:s1:s2)",
		"2. [WARNING] COSTUME-CHANGE (costume:s1:s2)",
		"3. [INFO] SPATIAL-MISMATCH (spatial:s3:s4)",
		"Suggested Fix: Consider regenerating Shot 2",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Index(report, "LIGHTING-JUMP") > strings.Index(report, "SPATIAL-MISMATCH") {
		t.Fatalf("report reordered issues:\n%s", report)
	}
}

func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity([]Issue{
		{Severity: SeverityCritical},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
	})
	if counts.Critical != 1 || counts.Warning != 2 || counts.Info != 0 || counts.Total() != 3 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}
