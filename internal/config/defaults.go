package config

const (
	defaultConfigPath         = "~/.config/watchlog/config.toml"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage       = "en-US"
	defaultTMDBTimeoutSeconds = 10
	defaultTMDBRetryAttempts  = 1
	defaultStorageBackend     = BackendSQLite
	defaultDataDir            = "~/.local/share/watchlog"
	defaultDebounceMillis     = 500
	defaultEnrichConcurrency  = 4
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 3
	defaultLogMaxAgeDays      = 28
)

// Storage backends understood by kvstore.Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			Language:       defaultTMDBLanguage,
			TimeoutSeconds: defaultTMDBTimeoutSeconds,
			RetryAttempts:  defaultTMDBRetryAttempts,
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
			DataDir: defaultDataDir,
		},
		Search: Search{
			DebounceMillis: defaultDebounceMillis,
		},
		Enrich: Enrich{
			Concurrency: defaultEnrichConcurrency,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
