// Package config loads, normalizes, and validates Slate configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Storage file locations are derived from
// the data directory when not set explicitly, so a config containing only
// [storage] backend = "file" still resolves to a usable path.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
