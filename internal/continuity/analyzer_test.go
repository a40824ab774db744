package continuity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slate/internal/logging"
	"slate/internal/shot"
	"slate/internal/testsupport"
)

func timeline() []shot.Record {
	return []shot.Record{
		numbered("s1", 1, 1, "Dark night scene, character wearing red shirt"),
		numbered("s2", 1, 2, "Bright sunny day, character wearing blue shirt"),
		numbered("s3", 1, 3, "Character exits left"),
		numbered("s4", 1, 4, "Character enters from left"),
	}
}

func issueIDs(issues []Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.ID)
	}
	return ids
}

func TestAnalyzeFewerThanTwoShots(t *testing.T) {
	store := testsupport.NewRecordingStore()
	analyzer := NewAnalyzer(store, logging.NewNop())

	for _, shots := range [][]shot.Record{nil, {numbered("only", 1, 1, "dark")}} {
		issues, err := analyzer.Analyze(context.Background(), shots, nil)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if issues == nil || len(issues) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", issues)
		}
	}
}

func TestAnalyzeOrdersByPairThenRule(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())

	issues, err := analyzer.Analyze(context.Background(), timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	want := []string{"lighting:s1:s2", "costume:s1:s2", "spatial:s3:s4"}
	if diff := cmp.Diff(want, issueIDs(issues)); diff != "" {
		t.Fatalf("issue ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeSkipsSceneBoundaries(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())
	shots := []shot.Record{
		numbered("a", 1, 1, "Dark night scene"),
		numbered("b", 2, 1, "Bright sunny day"),
	}
	issues, err := analyzer.Analyze(context.Background(), shots, nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues across scenes, got %v", issueIDs(issues))
	}

	shots[1].SceneNumber = nil
	issues, err = analyzer.Analyze(context.Background(), shots, nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected unknown scene to be compared, got %v", issueIDs(issues))
	}
}

func TestAnalyzeIsDeterministicAndReadOnly(t *testing.T) {
	store := testsupport.NewRecordingStore()
	analyzer := NewAnalyzer(store, logging.NewNop())

	first, err := analyzer.Analyze(context.Background(), timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated scans differ (-first +second):\n%s", diff)
	}
	if store.Writes() != 0 {
		t.Fatalf("Analyze must not write storage, saw %d writes", store.Writes())
	}
}

func TestDismissSuppressesExactlyOneIssue(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())

	if err := analyzer.Dismiss(ctx, "costume:s1:s2", "intentional wardrobe change"); err != nil {
		t.Fatalf("Dismiss returned error: %v", err)
	}
	issues, err := analyzer.Analyze(ctx, timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	want := []string{"lighting:s1:s2", "spatial:s3:s4"}
	if diff := cmp.Diff(want, issueIDs(issues)); diff != "" {
		t.Fatalf("issue ids mismatch (-want +got):\n%s", diff)
	}

	if err := analyzer.ClearDismissed(ctx); err != nil {
		t.Fatalf("ClearDismissed returned error: %v", err)
	}
	issues, err = analyzer.Analyze(ctx, timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected all issues after clear, got %v", issueIDs(issues))
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewRecordingStore()
	analyzer := NewAnalyzer(store, logging.NewNop())

	for range 2 {
		if err := analyzer.Dismiss(ctx, "lighting:a:b", ""); err != nil {
			t.Fatalf("Dismiss returned error: %v", err)
		}
	}
	if err := analyzer.Dismiss(ctx, "spatial:c:d", ""); err != nil {
		t.Fatalf("Dismiss returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"lighting:a:b", "spatial:c:d"}, analyzer.ListDismissed(ctx)); diff != "" {
		t.Fatalf("dismissed ids mismatch (-want +got):\n%s", diff)
	}
	if store.Writes() != 2 {
		t.Fatalf("expected 2 writes, got %d", store.Writes())
	}
	if err := analyzer.Dismiss(ctx, "  ", ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestListDismissedToleratesCorruptState(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewRecordingStore()
	if err := store.Set(ctx, DismissedKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	analyzer := NewAnalyzer(store, logging.NewNop())

	if got := analyzer.ListDismissed(ctx); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if err := analyzer.Dismiss(ctx, "lighting:a:b", ""); err != nil {
		t.Fatalf("Dismiss returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"lighting:a:b"}, analyzer.ListDismissed(ctx)); diff != "" {
		t.Fatalf("dismissed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDismissKeepsExistingIDsWhenReadFails(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewFailingStore()
	store.FailGet, store.FailSet, store.FailRemove = false, false, false
	analyzer := NewAnalyzer(store, logging.NewNop())

	for _, id := range []string{"lighting:1:2", "costume:2:3"} {
		if err := analyzer.Dismiss(ctx, id, ""); err != nil {
			t.Fatalf("Dismiss(%s): %v", id, err)
		}
	}

	store.FailGet = true
	if err := analyzer.Dismiss(ctx, "spatial:3:4", ""); !errors.Is(err, testsupport.ErrInjected) {
		t.Fatalf("expected read failure from Dismiss, got %v", err)
	}
	store.FailGet = false

	if diff := cmp.Diff([]string{"lighting:1:2", "costume:2:3"}, analyzer.ListDismissed(ctx)); diff != "" {
		t.Fatalf("dismissed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeFailsOpenOnStorageErrors(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewFailingStore(), logging.NewNop())

	issues, err := analyzer.Analyze(context.Background(), timeline(), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected unfiltered issues, got %v", issueIDs(issues))
	}

	if err := analyzer.Dismiss(context.Background(), "lighting:s1:s2", ""); !errors.Is(err, testsupport.ErrInjected) {
		t.Fatalf("expected injected error from Dismiss, got %v", err)
	}
	if err := analyzer.ClearDismissed(context.Background()); !errors.Is(err, testsupport.ErrInjected) {
		t.Fatalf("expected injected error from ClearDismissed, got %v", err)
	}
}

func TestAnalyzeReportsMonotonicProgress(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())

	var seen []float64
	_, err := analyzer.Analyze(context.Background(), timeline(), func(p float64) {
		seen = append(seen, p)
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(seen) == 0 || seen[0] != 0 || seen[len(seen)-1] != 100 {
		t.Fatalf("progress should run from 0 to 100, got %v", seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Fatalf("progress decreased: %v", seen)
		}
	}
}

func TestAnalyzeStopsOnCancellation(t *testing.T) {
	analyzer := NewAnalyzer(testsupport.NewRecordingStore(), logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	_, err := analyzer.Analyze(ctx, timeline(), func(p float64) {
		if p > 0 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
