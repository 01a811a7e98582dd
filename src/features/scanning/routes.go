package scanning

import (
	"github.com/gofiber/fiber/v2"

	"tunesleuth/src/features/jobs"
)

// RegisterRoutes registers the routes for the scanning feature.
func RegisterRoutes(app *fiber.App, service *Service, jobService jobs.JobService) {
	handler := NewHandler(service, jobService)

	app.Get("/", handler.Home)
	app.Post("/scan", handler.StartScan)
	app.Get("/scan/report", handler.GetReport)

	library := app.Group("/library")
	library.Get("/stats", handler.GetStats)
	library.Get("/tracks", handler.GetTracks)
}
