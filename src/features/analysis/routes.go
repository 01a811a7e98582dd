package analysis

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the analysis feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	analysis := app.Group("/analysis")
	analysis.Get("/", handler.GetAnalysis)
	analysis.Get("/summary", handler.GetSummary)
}
