package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"slate/internal/config"
	"slate/internal/kvstore"
)

// ProbeKey is written and removed by CheckStorage.
const ProbeKey = "preflight.probe"

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStorage opens the configured backend and round-trips a probe value
// through it. The probe key is removed afterwards.
func CheckStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) Result {
	name := fmt.Sprintf("Storage (%s)", cfg.Storage.Backend)

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := kvstore.Open(cfg, logger)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("open failed (%v)", err)}
	}
	defer store.Close()

	want := uuid.NewString()
	if err := store.Set(checkCtx, ProbeKey, want); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("write failed (%v)", err)}
	}
	got, ok, err := store.Get(checkCtx, ProbeKey)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("read failed (%v)", err)}
	}
	if !ok || got != want {
		return Result{Name: name, Detail: "read back a different value than written"}
	}
	if err := store.Remove(checkCtx, ProbeKey); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cleanup failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: storageLocation(cfg)}
}

func storageLocation(cfg *config.Config) string {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return cfg.Storage.SQLitePath + " (namespace " + cfg.Storage.Namespace + ")"
	case config.BackendFile:
		return cfg.Storage.FilePath + " (namespace " + cfg.Storage.Namespace + ")"
	default:
		return "in-memory (not persisted)"
	}
}
