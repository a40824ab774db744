package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateContinuity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path must be set when storage.backend is sqlite")
		}
	case BackendFile:
		if strings.TrimSpace(c.Storage.FilePath) == "" {
			return errors.New("storage.file_path must be set when storage.backend is file")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (expected sqlite, file, or memory)", c.Storage.Backend)
	}
	if strings.ContainsAny(c.Storage.Namespace, "/ \t") {
		return fmt.Errorf("storage.namespace must not contain slashes or whitespace, got %q", c.Storage.Namespace)
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.MinSamples < 1 {
		return errors.New("style.min_samples must be positive")
	}
	return nil
}

func (c *Config) validateContinuity() error {
	if c.Continuity.ProgressBucket <= 0 || c.Continuity.ProgressBucket > 100 {
		return errors.New("continuity.progress_bucket must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
