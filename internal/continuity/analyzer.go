package continuity

import (
	"context"
	"log/slog"

	"slate/internal/kvstore"
	"slate/internal/logging"
	"slate/internal/shot"
)

// ProgressFunc receives scan progress as a percentage in [0, 100]. Calls are
// synchronous, in order, and never decrease.
type ProgressFunc func(percent float64)

// Analyzer scans shot sequences for continuity issues and manages the set
// of dismissed issue ids.
type Analyzer struct {
	store  kvstore.Store
	logger *slog.Logger
}

// NewAnalyzer constructs an analyzer persisting dismissals in store.
func NewAnalyzer(store kvstore.Store, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		store:  store,
		logger: logging.NewComponentLogger(logger, "continuity"),
	}
}

// Analyze checks every adjacent pair of shots and returns the issues that
// have not been dismissed, ordered by pair and then by rule (lighting,
// costume, spatial). progress may be nil.
//
// ctx is checked between pairs. When it is cancelled the issues found so far
// are returned together with ctx.Err().
func (a *Analyzer) Analyze(ctx context.Context, shots []shot.Record, progress ProgressFunc) ([]Issue, error) {
	issues := make([]Issue, 0)
	if len(shots) < 2 {
		return issues, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if progress == nil {
		progress = func(float64) {}
	}

	dismissed := a.loadDismissed(ctx)
	pairs := len(shots) - 1
	skipped, suppressed := 0, 0

	progress(0)
	for i := 0; i < pairs; i++ {
		if err := ctx.Err(); err != nil {
			return issues, err
		}

		first, second := shots[i], shots[i+1]
		if first.SameSceneAs(second) {
			p := newPair(first, second)
			for _, r := range rules {
				issue := r.apply(p)
				if issue == nil {
					continue
				}
				if _, ok := dismissed[issue.ID]; ok {
					suppressed++
					continue
				}
				a.logger.Debug("continuity issue detected",
					logging.String(logging.FieldIssueID, issue.ID),
					logging.String("severity", string(issue.Severity)))
				issues = append(issues, *issue)
			}
		} else {
			skipped++
		}

		progress(float64(i+1) / float64(pairs) * 100)
	}
	progress(100)

	a.logger.Debug("continuity scan complete",
		logging.Int("shots", len(shots)),
		logging.Int("issues", len(issues)),
		logging.Int("scene_boundaries", skipped),
		logging.Int("dismissed", suppressed))
	return issues, nil
}
