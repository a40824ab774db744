package continuity

import (
	"strings"
	"testing"

	"slate/internal/shot"
)

func numbered(id string, scene, number int, description string) shot.Record {
	return shot.Record{ID: id, SceneNumber: shot.Int(scene), ShotNumber: shot.Int(number), Description: description}
}

func TestDetectLightingJump(t *testing.T) {
	a := numbered("a", 1, 1, "Dark night scene")
	b := numbered("b", 1, 2, "Bright sunny day")

	issue := DetectLightingJump(a, b)
	if issue == nil {
		t.Fatal("expected lighting issue")
	}
	if issue.Severity != SeverityCritical || issue.Kind != KindLightingJump {
		t.Fatalf("unexpected classification: %s %s", issue.Kind, issue.Severity)
	}
	if !strings.Contains(issue.Description, "dark to bright") {
		t.Fatalf("description missing direction: %q", issue.Description)
	}
	if issue.ID != "lighting:a:b" {
		t.Fatalf("unexpected id %q", issue.ID)
	}
	if issue.AutoFixHint != "regenerate:b:lighting-from:a" {
		t.Fatalf("unexpected auto-fix hint %q", issue.AutoFixHint)
	}
	if issue.SceneLabel == nil || *issue.SceneLabel != "Scene 1" {
		t.Fatalf("unexpected scene label %v", issue.SceneLabel)
	}

	reverse := DetectLightingJump(b, a)
	if reverse == nil || !strings.Contains(reverse.Description, "bright to dark") {
		t.Fatalf("expected bright to dark issue, got %+v", reverse)
	}
}

func TestDetectLightingJumpIgnoresConsistentLighting(t *testing.T) {
	if issue := DetectLightingJump(numbered("a", 1, 1, "Night exterior"), numbered("b", 1, 2, "Dark alley")); issue != nil {
		t.Fatalf("expected no issue, got %+v", issue)
	}
	if issue := DetectLightingJump(numbered("a", 1, 1, "Dark room"), numbered("b", 1, 2, "")); issue != nil {
		t.Fatalf("expected no issue for empty description, got %+v", issue)
	}
}

func TestDetectCostumeChange(t *testing.T) {
	a := numbered("a", 1, 1, "Character wearing red shirt")
	b := numbered("b", 1, 2, "Character wearing blue jacket")

	issue := DetectCostumeChange(a, b)
	if issue == nil {
		t.Fatal("expected costume issue")
	}
	if issue.Severity != SeverityWarning || issue.Kind != KindCostumeChange {
		t.Fatalf("unexpected classification: %s %s", issue.Kind, issue.Severity)
	}
	if !strings.Contains(issue.Description, "(red vs blue)") {
		t.Fatalf("description missing colors: %q", issue.Description)
	}
	if issue.AutoFixHint != "" {
		t.Fatalf("costume issues carry no auto-fix hint, got %q", issue.AutoFixHint)
	}
}

func TestDetectCostumeChangeMatchingColors(t *testing.T) {
	a := numbered("a", 1, 1, "Wearing a red coat")
	b := numbered("b", 1, 2, "Red coat, close up")
	if issue := DetectCostumeChange(a, b); issue != nil {
		t.Fatalf("expected no issue, got %+v", issue)
	}
}

func TestDetectCostumeChangeSupersetIsFlagged(t *testing.T) {
	a := numbered("a", 1, 1, "Wearing red shirt and blue pants")
	b := numbered("b", 1, 2, "Wearing red shirt")
	if issue := DetectCostumeChange(a, b); issue == nil {
		t.Fatal("expected differing color sets to be flagged")
	}
}

func TestDetectCostumeChangeNeedsColorsOnBothSides(t *testing.T) {
	a := numbered("a", 1, 1, "Wearing a coat")
	b := numbered("b", 1, 2, "Wearing a green coat")
	if issue := DetectCostumeChange(a, b); issue != nil {
		t.Fatalf("expected no issue, got %+v", issue)
	}
}

func TestDetectSpatialMismatch(t *testing.T) {
	a := numbered("a", 1, 1, "Character exits left")
	b := numbered("b", 1, 2, "Character enters from left")

	issue := DetectSpatialMismatch(a, b)
	if issue == nil {
		t.Fatal("expected spatial issue")
	}
	if issue.Severity != SeverityInfo || issue.Kind != KindSpatialMismatch {
		t.Fatalf("unexpected classification: %s %s", issue.Kind, issue.Severity)
	}
	if !strings.Contains(issue.SuggestedFix, "entering from right") {
		t.Fatalf("fix should name the opposite side: %q", issue.SuggestedFix)
	}

	if issue := DetectSpatialMismatch(a, numbered("b", 1, 2, "Character enters from right")); issue != nil {
		t.Fatalf("expected no issue for opposite side, got %+v", issue)
	}
}

func TestDetectWithoutNumbersUsesPlaceholders(t *testing.T) {
	a := shot.Record{ID: "x", Description: "night"}
	b := shot.Record{ID: "y", Description: "day"}
	issue := DetectLightingJump(a, b)
	if issue == nil {
		t.Fatal("expected lighting issue")
	}
	if issue.SceneLabel != nil {
		t.Fatalf("expected nil scene label, got %q", *issue.SceneLabel)
	}
	if !strings.Contains(issue.Description, "Shot ? and Shot ?") {
		t.Fatalf("expected placeholder shot numbers: %q", issue.Description)
	}
}

func TestIssueIDEscapesSeparators(t *testing.T) {
	pairs := [][2]string{{"a:b", "c"}, {"a", "b:c"}, {"a%3Ab", "c"}}
	seen := make(map[string]bool)
	for _, p := range pairs {
		id := IssueID(KindLightingJump, shot.Record{ID: p[0]}, shot.Record{ID: p[1]})
		if seen[id] {
			t.Fatalf("distinct pairs share issue id %q", id)
		}
		seen[id] = true
	}
	if got := IssueID(KindSpatialMismatch, shot.Record{ID: "3"}, shot.Record{ID: "4"}); got != "spatial:3:4" {
		t.Fatalf("plain ids should be unchanged, got %q", got)
	}
	if got := IssueID(KindCostumeChange, shot.Record{ID: "a:b"}, shot.Record{ID: "c"}); got != "costume:a%3Ab:c" {
		t.Fatalf("unexpected escaped id %q", got)
	}
}
