package preflight

import (
	"context"
	"log/slog"
	"path/filepath"

	"slate/internal/config"
	"slate/internal/logging"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every preflight check applicable to cfg.
func RunAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Storage.SQLitePath); dir != cfg.Paths.DataDir {
			results = append(results, CheckDirectoryAccess("Database directory", dir))
		}
	case config.BackendFile:
		if dir := filepath.Dir(cfg.Storage.FilePath); dir != cfg.Paths.DataDir {
			results = append(results, CheckDirectoryAccess("State file directory", dir))
		}
	}

	results = append(results, CheckStorage(ctx, cfg, logger))
	for _, r := range Failed(results) {
		logging.ErrorWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", r.Name),
			logging.String("detail", r.Detail))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
