package config

var defaultConfig = Config{
	LibraryPath: "./music",
	Telegram: Telegram{
		Enabled:      false,
		Token:        "",                                   // Can be obtained with https://t.me/BotFather
		AllowedUsers: []string{"<your_telegram_username>"}, // No @
		BotHandle:    "@<YourTelegramUserBot>",             // With @
	},
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Server: Server{
		PrintRoutes: false,
		Port:        3535,
	},
	Scan: Scan{
		Extensions:     []string{".mp3", ".flac", ".wav", ".m4a", ".ogg"},
		FollowSymlinks: false,
		ReadDurations:  true,
	},
	Analysis: Analysis{
		Explain:              true,
		IncludeLowConfidence: false,
	},
	Snapshot: Snapshot{
		Enabled: true,
		Path:    "./catalog.db",
	},
	Watcher: Watcher{
		Enabled:         false,
		DebounceSeconds: 5,
	},
	Jobs: Jobs{
		Log:     true,
		LogPath: "./logs/jobs",
	},
}
