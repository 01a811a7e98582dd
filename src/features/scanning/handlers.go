package scanning

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tunesleuth/src/features/jobs"
)

// Handler is the handler for the scanning feature.
type Handler struct {
	service    *Service
	jobService jobs.JobService
}

// NewHandler creates a new handler for the scanning feature.
func NewHandler(service *Service, jobService jobs.JobService) *Handler {
	return &Handler{service: service, jobService: jobService}
}

// Home renders the landing page. Unlike GetStats it always answers, a
// library that has not been scanned yet shows zeroed statistics.
func (h *Handler) Home(c *fiber.Ctx) error {
	slog.Debug("Home handler called")

	stats, _ := h.service.Stats()

	acceptHeader := c.Get("Accept")
	hxRequest := c.Get("HX-Request")
	if strings.Contains(acceptHeader, "text/html") || hxRequest == "true" {
		return c.Render("index", fiber.Map{"Stats": stats})
	}
	return c.JSON(stats)
}

// StartScan queues a scan job and returns its id.
func (h *Handler) StartScan(c *fiber.Ctx) error {
	slog.Debug("StartScan handler called")

	jobID, err := h.jobService.StartJob(JobTypeScan, "Library scan", nil)
	if err != nil {
		slog.Error("Error starting scan job", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}

// GetReport returns the report of the most recent scan.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	slog.Debug("GetReport handler called")

	report, ok := h.service.LastReport()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no scan has run yet",
		})
	}
	return c.JSON(report)
}

// GetStats returns aggregate statistics over the current catalog.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	slog.Debug("GetStats handler called")

	stats, ok := h.service.Stats()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no library scanned yet, run a scan first",
		})
	}

	acceptHeader := c.Get("Accept")
	hxRequest := c.Get("HX-Request")
	if strings.Contains(acceptHeader, "text/html") || hxRequest == "true" {
		return c.Render("index", fiber.Map{"Stats": stats})
	}
	return c.JSON(stats)
}

// GetTracks returns the cataloged tracks, paginated.
func (h *Handler) GetTracks(c *fiber.Ctx) error {
	slog.Debug("GetTracks handler called")

	lib, ok := h.service.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no library scanned yet, run a scan first",
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	offset := (page - 1) * limit
	if offset > len(lib.Tracks) {
		offset = len(lib.Tracks)
	}
	end := offset + limit
	if end > len(lib.Tracks) {
		end = len(lib.Tracks)
	}

	return c.JSON(fiber.Map{
		"tracks": lib.Tracks[offset:end],
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"totalCount": len(lib.Tracks),
			"totalPages": (len(lib.Tracks) + limit - 1) / limit,
		},
	})
}
