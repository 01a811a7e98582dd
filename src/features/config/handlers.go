package config

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager) *Handler {
	return &Handler{
		configManager: configManager,
	}
}

// GetConfig returns the redacted configuration as YAML or JSON.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	slog.Debug("GetConfig handler called")
	if strings.Contains(c.Get("Accept"), "application/json") {
		c.Set("Content-Type", "application/json")
		return c.SendString(h.configManager.GetJSON())
	}
	c.Set("Content-Type", "text/yaml")
	return c.SendString(h.configManager.GetYAML())
}

// UpdateSettings handles the form submission to update configuration.
// Server settings are preserved, they make no sense to change at runtime.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	slog.Info("Configuration update requested")

	currentConfig := h.configManager.Get()
	newConfig := &Config{
		LibraryPath: c.FormValue("libraryPath", currentConfig.LibraryPath),
		Telegram: Telegram{
			Enabled:      c.FormValue("telegram.enabled") == "true",
			Token:        c.FormValue("telegram.token", currentConfig.Telegram.Token),
			AllowedUsers: parseStringSlice(c.FormValue("telegram.allowedUsers")),
			BotHandle:    c.FormValue("telegram.bot_handle", currentConfig.Telegram.BotHandle),
		},
		Logger: Logger{
			Enabled: c.FormValue("logger.enabled") == "true",
			Level:   c.FormValue("logger.level", currentConfig.Logger.Level),
			Format:  c.FormValue("logger.format", currentConfig.Logger.Format),
		},
		Server: Server{
			Port:        currentConfig.Server.Port,
			PrintRoutes: currentConfig.Server.PrintRoutes,
		},
		Scan: Scan{
			Extensions:     currentConfig.Scan.Extensions,
			FollowSymlinks: c.FormValue("scan.follow_symlinks") == "true",
			ReadDurations:  c.FormValue("scan.read_durations") == "true",
		},
		Analysis: Analysis{
			Explain:              c.FormValue("analysis.explain") == "true",
			IncludeLowConfidence: c.FormValue("analysis.include_low_confidence") == "true",
		},
		Snapshot: Snapshot{
			Enabled: c.FormValue("snapshot.enabled") == "true",
			Path:    c.FormValue("snapshot.path", currentConfig.Snapshot.Path),
		},
		Watcher: Watcher{
			Enabled:         c.FormValue("watcher.enabled") == "true",
			DebounceSeconds: currentConfig.Watcher.DebounceSeconds,
		},
		Jobs: Jobs{
			Log:     c.FormValue("jobs.log") == "true",
			LogPath: c.FormValue("jobs.log_path", currentConfig.Jobs.LogPath),
		},
	}

	h.configManager.Update(newConfig)
	slog.Info("Configuration updated in memory")

	// Saving may fail in containerized environments with a read-only config
	if err := h.configManager.Save("config.yaml"); err != nil {
		slog.Warn("Could not persist configuration to file", "error", err)
	}

	if c.Get("HX-Request") == "true" {
		return c.SendString("Settings updated")
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

func parseStringSlice(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
