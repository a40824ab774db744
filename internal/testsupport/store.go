package testsupport

import (
	"context"
	"errors"
	"slices"
	"sync"

	"slate/internal/kvstore"
)

// ErrInjected is returned by FailingStore operations.
var ErrInjected = errors.New("injected storage failure")

// RecordingStore wraps an in-memory store and counts mutating calls.
type RecordingStore struct {
	*kvstore.Memory

	mu      sync.Mutex
	sets    int
	removes int
	keys    []string
}

// NewRecordingStore returns an empty recording store.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{Memory: kvstore.NewMemory()}
}

func (r *RecordingStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	r.sets++
	r.keys = append(r.keys, key)
	r.mu.Unlock()
	return r.Memory.Set(ctx, key, value)
}

func (r *RecordingStore) Remove(ctx context.Context, key string) error {
	r.mu.Lock()
	r.removes++
	r.mu.Unlock()
	return r.Memory.Remove(ctx, key)
}

// Writes returns the number of Set and Remove calls observed.
func (r *RecordingStore) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets + r.removes
}

// SetKeys returns the keys passed to Set, in call order.
func (r *RecordingStore) SetKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

// FailingStore fails selected operations while delegating the rest to memory.
// When Keys is non-empty only operations on those keys fail.
type FailingStore struct {
	*kvstore.Memory

	FailGet    bool
	FailSet    bool
	FailRemove bool
	Keys       []string
}

// NewFailingStore returns a store that fails every operation until toggled.
func NewFailingStore() *FailingStore {
	return &FailingStore{Memory: kvstore.NewMemory(), FailGet: true, FailSet: true, FailRemove: true}
}

func (f *FailingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.fails(f.FailGet, key) {
		return "", false, ErrInjected
	}
	return f.Memory.Get(ctx, key)
}

func (f *FailingStore) Set(ctx context.Context, key, value string) error {
	if f.fails(f.FailSet, key) {
		return ErrInjected
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *FailingStore) Remove(ctx context.Context, key string) error {
	if f.fails(f.FailRemove, key) {
		return ErrInjected
	}
	return f.Memory.Remove(ctx, key)
}

func (f *FailingStore) fails(enabled bool, key string) bool {
	return enabled && (len(f.Keys) == 0 || slices.Contains(f.Keys, key))
}
