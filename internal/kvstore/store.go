package kvstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"slate/internal/config"
)

// Store is the storage collaborator consumed by the analysis engines.
type Store interface {
	// Get returns the stored value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend is a Store that holds resources until closed.
type Backend interface {
	Store
	io.Closer
}

// Open constructs the backend selected by cfg.Storage and scopes it to the
// configured namespace.
func Open(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("open storage: config is required")
	}
	var (
		backend Backend
		err     error
	)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		backend, err = OpenSQLite(cfg.Storage.SQLitePath)
	case config.BackendFile:
		backend = NewFile(cfg.Storage.FilePath, logger)
	case config.BackendMemory:
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("open storage: unsupported backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}
	return WithNamespace(backend, cfg.Storage.Namespace), nil
}

// WithNamespace prefixes every key with "<namespace>/". An empty namespace
// returns backend unchanged.
func WithNamespace(backend Backend, namespace string) Backend {
	if namespace == "" {
		return backend
	}
	return &namespaced{inner: backend, prefix: namespace + "/"}
}

type namespaced struct {
	inner  Backend
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}

func (n *namespaced) Close() error {
	return n.inner.Close()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
