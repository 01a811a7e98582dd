package config

// Config holds the application configuration.
type Config struct {
	LibraryPath string   `yaml:"libraryPath" validate:"required"`
	Telegram    Telegram `yaml:"telegram"`
	Logger      Logger   `yaml:"logger"`
	Server      Server   `yaml:"server"`
	Scan        Scan     `yaml:"scan"`
	Analysis    Analysis `yaml:"analysis"`
	Snapshot    Snapshot `yaml:"snapshot"`
	Watcher     Watcher  `yaml:"watcher"`
	Jobs        Jobs     `yaml:"jobs"`
}

// Scan holds the configuration for library scanning.
type Scan struct {
	// Extensions lists the audio file extensions picked up by the walker,
	// lowercase with the leading dot.
	Extensions []string `yaml:"extensions"`
	// FollowSymlinks includes symlinked files in the scan.
	FollowSymlinks bool `yaml:"follow_symlinks"`
	// ReadDurations probes each file for its playing time. Slower scans.
	ReadDurations bool `yaml:"read_durations"`
}

// Analysis holds the default options for pattern analysis.
type Analysis struct {
	Explain              bool `yaml:"explain"`
	IncludeLowConfidence bool `yaml:"include_low_confidence"`
}

// Snapshot holds the configuration for the scan catalog snapshot.
type Snapshot struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Watcher holds the configuration for the filesystem watcher.
type Watcher struct {
	Enabled bool `yaml:"enabled"`
	// DebounceSeconds is how long the watcher waits after the last event
	// before triggering a rescan.
	DebounceSeconds int `yaml:"debounce_seconds"`
}

// Jobs holds the configuration for background jobs.
type Jobs struct {
	Log     bool   `yaml:"log"`
	LogPath string `yaml:"log_path"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowedUsers"`
	BotHandle    string   `yaml:"bot_handle"`
}
