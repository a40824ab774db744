package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"slate/internal/fileutil"
	"slate/internal/logging"
)

const fileLockRetryDelay = 20 * time.Millisecond

// ErrCorruptState reports a state file that exists but is not a JSON object.
var ErrCorruptState = errors.New("state file is not valid json")

// File persists all keys as one JSON object. A sibling "<path>.lock" file
// serializes access across processes; writes go through a temp file and rename.
type File struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFile creates a file-backed store. The file is created lazily on the first Set.
func NewFile(path string, logger *slog.Logger) *File {
	return &File{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "kvstore"),
	}
}

// Path returns the JSON file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.acquire(ctx, false); err != nil {
		return "", false, err
	}
	defer f.release()

	entries, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	return f.update(ctx, func(entries map[string]string) {
		entries[key] = value
	})
}

func (f *File) Remove(ctx context.Context, key string) error {
	return f.update(ctx, func(entries map[string]string) {
		delete(entries, key)
	})
}

func (f *File) Close() error {
	return nil
}

func (f *File) update(ctx context.Context, mutate func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.acquire(ctx, true); err != nil {
		return err
	}
	defer f.release()

	entries, err := f.load()
	if err != nil && !errors.Is(err, ErrCorruptState) {
		return err
	}
	if err != nil {
		logging.WarnWithContext(f.logger, "state file corrupt; rewriting from empty",
			"kvstore_file_corrupt",
			logging.String("path", f.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect or delete the state file"),
			logging.String(logging.FieldImpact, "previously stored keys are discarded"))
		entries = make(map[string]string)
	}
	mutate(entries)
	return f.save(entries)
}

func (f *File) acquire(ctx context.Context, exclusive bool) error {
	ctx = ensureContext(ctx)
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = f.lock.TryLockContext(ctx, fileLockRetryDelay)
	} else {
		ok, err = f.lock.TryRLockContext(ctx, fileLockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("lock state file: %w", err)
	}
	if !ok {
		return errors.New("lock state file: not acquired")
	}
	return nil
}

func (f *File) release() {
	if err := f.lock.Unlock(); err != nil {
		f.logger.Debug("release state file lock failed", logging.Error(err))
	}
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	entries := make(map[string]string)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return entries, nil
}

func (f *File) save(entries map[string]string) error {
	// encoding/json sorts map keys, so the file is stable between writes.
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := fileutil.WriteFileAtomic(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
