package continuity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"slate/internal/logging"
)

// DismissedKey is the storage key holding the JSON array of dismissed issue ids.
const DismissedKey = "continuity.dismissed"

// Dismiss records issueID as acknowledged so future scans omit it. Dismissing
// an id twice is a no-op. reason is logged but not stored. When the stored set
// cannot be read, nothing is written and the error is returned.
func (a *Analyzer) Dismiss(ctx context.Context, issueID, reason string) error {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return errors.New("dismiss: issue id cannot be empty")
	}

	ids, err := a.readDismissed(ctx)
	if err != nil {
		return fmt.Errorf("dismiss: %w", err)
	}
	if slices.Contains(ids, issueID) {
		return nil
	}
	ids = append(ids, issueID)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("dismiss: encode dismissals: %w", err)
	}
	if err := a.store.Set(ctx, DismissedKey, string(data)); err != nil {
		return fmt.Errorf("dismiss: persist dismissals: %w", err)
	}

	attrs := []logging.Attr{logging.String(logging.FieldIssueID, issueID)}
	if reason = strings.TrimSpace(reason); reason != "" {
		attrs = append(attrs, logging.String("reason", reason))
	}
	a.logger.Info("continuity issue dismissed", logging.Args(attrs...)...)
	return nil
}

// ListDismissed returns dismissed issue ids in the order they were dismissed.
// Unreadable state yields an empty list.
func (a *Analyzer) ListDismissed(ctx context.Context) []string {
	ids, err := a.readDismissed(ctx)
	if err != nil {
		logging.WarnWithContext(a.logger, "failed to read dismissed issues",
			"dismissals_load_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, DismissedKey),
			logging.String(logging.FieldImpact, "previously dismissed issues will be reported again"))
		return []string{}
	}
	return ids
}

// readDismissed returns the stored ids. Invalid JSON is logged and read as an
// empty set; backend errors are returned.
func (a *Analyzer) readDismissed(ctx context.Context) ([]string, error) {
	raw, ok, err := a.store.Get(ctx, DismissedKey)
	if err != nil {
		return nil, fmt.Errorf("read dismissed issues: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logging.WarnWithContext(a.logger, "dismissed issues are not valid json",
			"dismissals_parse_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, DismissedKey),
			logging.String(logging.FieldErrorHint, "run 'slate dismissed clear' to reset"),
			logging.String(logging.FieldImpact, "previously dismissed issues will be reported again"))
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ClearDismissed forgets every dismissal.
func (a *Analyzer) ClearDismissed(ctx context.Context) error {
	if err := a.store.Remove(ctx, DismissedKey); err != nil {
		return fmt.Errorf("clear dismissals: %w", err)
	}
	a.logger.Info("continuity dismissals cleared")
	return nil
}

func (a *Analyzer) loadDismissed(ctx context.Context) map[string]struct{} {
	ids := a.ListDismissed(ctx)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
