package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"slate/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "slate")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLitePath != filepath.Join(wantData, "slate.db") {
		t.Fatalf("unexpected sqlite path: %q", cfg.Storage.SQLitePath)
	}
	if cfg.Storage.FilePath != filepath.Join(wantData, "state.json") {
		t.Fatalf("unexpected file path: %q", cfg.Storage.FilePath)
	}
	if cfg.Storage.Namespace != "default" {
		t.Fatalf("unexpected namespace: %q", cfg.Storage.Namespace)
	}
	if cfg.Style.MinSamples != 10 {
		t.Fatalf("expected min samples 10, got %d", cfg.Style.MinSamples)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "config.toml")
	payload := map[string]any{
		"paths": map[string]any{
			"data_dir": "~/projects/slate",
		},
		"storage": map[string]any{
			"backend":   "FILE",
			"namespace": "feature-film",
		},
		"style": map[string]any{
			"owner_id":    " director-1 ",
			"min_samples": 5,
		},
		"logging": map[string]any{
			"format": "JSON",
			"level":  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}

	wantData := filepath.Join(tempHome, "projects", "slate")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Storage.Backend != config.BackendFile {
		t.Fatalf("expected backend normalized to file, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.FilePath != filepath.Join(wantData, "state.json") {
		t.Fatalf("expected file path derived from data dir, got %q", cfg.Storage.FilePath)
	}
	if cfg.Storage.Namespace != "feature-film" {
		t.Fatalf("unexpected namespace: %q", cfg.Storage.Namespace)
	}
	if cfg.Style.OwnerID != "director-1" {
		t.Fatalf("expected trimmed owner id, got %q", cfg.Style.OwnerID)
	}
	if cfg.Style.MinSamples != 5 {
		t.Fatalf("unexpected min samples: %d", cfg.Style.MinSamples)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging normalized to lowercase, got %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.Storage.Backend = "redis" },
			wantErr: "storage.backend",
		},
		{
			name:    "namespace with slash",
			mutate:  func(c *config.Config) { c.Storage.Namespace = "a/b" },
			wantErr: "storage.namespace",
		},
		{
			name:    "negative min samples",
			mutate:  func(c *config.Config) { c.Style.MinSamples = -1 },
			wantErr: "style.min_samples",
		},
		{
			name:    "progress bucket too large",
			mutate:  func(c *config.Config) { c.Continuity.ProgressBucket = 150 },
			wantErr: "continuity.progress_bucket",
		},
		{
			name:    "log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.SQLitePath = "/tmp/slate.db"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesStorageParent(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.FilePath = filepath.Join(base, "nested", "state.json")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, filepath.Join(base, "nested")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist (err=%v)", dir, err)
		}
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	path := filepath.Join(tempHome, "sample", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Fatalf("unexpected sample backend: %q", cfg.Storage.Backend)
	}
}
