// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CachePath is where the local snapshot copy lives.
	CachePath string `koanf:"cache_path"`

	// CacheIndent pretty-prints the local snapshot copy.
	CacheIndent bool `koanf:"cache_indent"`

	// RemoteBaseURL points at the shared snapshot endpoint. Empty
	// disables remote sync.
	RemoteBaseURL string `koanf:"remote_base_url"`

	// RemoteSecret is sent with every remote request.
	RemoteSecret string `koanf:"remote_secret"`

	// PushIntervalMS spaces remote snapshot uploads.
	PushIntervalMS int `koanf:"push_interval_ms"`

	// CalendarPath locates the race calendar JSON file.
	CalendarPath string `koanf:"calendar_path"`

	// DriversPath locates the driver list JSON file.
	DriversPath string `koanf:"drivers_path"`

	// StatsTopLimit caps each statistics leaderboard.
	StatsTopLimit int `koanf:"stats_top_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		CachePath:      "data/porra.json",
		PushIntervalMS: 2000,
		CalendarPath:   "data/calendar.json",
		DriversPath:    "data/drivers.json",
		StatsTopLimit:  5,
	}
}
