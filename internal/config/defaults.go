package config

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

const (
	defaultDataDir               = "~/.local/share/slate"
	defaultLogDir                = "~/.local/share/slate/logs"
	defaultStorageBackend        = BackendSQLite
	defaultSQLiteFile            = "slate.db"
	defaultStateFile             = "state.json"
	defaultNamespace             = "default"
	defaultStyleMinSamples       = 10
	defaultContinuityProgressPct = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults. Storage paths
// are left empty and derived from the data directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend:   defaultStorageBackend,
			Namespace: defaultNamespace,
		},
		Style: Style{
			MinSamples: defaultStyleMinSamples,
		},
		Continuity: Continuity{
			ProgressBucket: defaultContinuityProgressPct,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
