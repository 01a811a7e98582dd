package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"tunesleuth/src/features/analysis"
	"tunesleuth/src/features/config"
	"tunesleuth/src/features/jobs"
	"tunesleuth/src/features/metrics"
	"tunesleuth/src/features/scanning"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, scanningService *scanning.Service, analysisService *analysis.Service, jobService *jobs.Service) *Server {
	engine := html.New("./views", ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	// Add custom template functions
	engine.AddFunc("duration", func(seconds int) string {
		if seconds == 0 {
			return "0:00"
		}
		minutes := seconds / 60
		remainingSeconds := seconds % 60
		return fmt.Sprintf("%d:%02d", minutes, remainingSeconds)
	})
	engine.AddFunc("formatDuration", func(seconds int) string {
		if seconds == 0 {
			return "0 min"
		}
		hours := seconds / 3600
		minutes := (seconds % 3600) / 60
		if hours > 0 {
			return fmt.Sprintf("%d hr %d min", hours, minutes)
		}
		return fmt.Sprintf("%d min", minutes)
	})
	engine.AddFunc("percent", func(score float64) string {
		return fmt.Sprintf("%.0f%%", score*100)
	})

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
		AppName:               "TuneSleuth",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	// Add middleware
	app.Use(LogAllRequestsMiddleware())

	app.Static("/", "./public")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	scanning.RegisterRoutes(app, scanningService, jobService)
	analysis.RegisterRoutes(app, analysisService)
	config.RegisterRoutes(app, cfg)
	jobs.RegisterRoutes(app, jobService)
	metrics.RegisterRoutes(app)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
