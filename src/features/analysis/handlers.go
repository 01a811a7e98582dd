package analysis

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the analysis feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the analysis feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetAnalysis is the handler for running a pattern analysis over the current
// library. Query params override the configured defaults per request.
func (h *Handler) GetAnalysis(c *fiber.Ctx) error {
	slog.Debug("GetAnalysis handler called")

	opts := h.service.DefaultOptions()
	opts.Explain = c.QueryBool("explain", opts.Explain)
	opts.IncludeLowConfidence = c.QueryBool("low", opts.IncludeLowConfidence)

	report, err := h.service.Report(c.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrNoLibrary) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no library scanned yet, run a scan first",
			})
		}
		slog.Error("Error running analysis", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	acceptHeader := c.Get("Accept")
	hxRequest := c.Get("HX-Request")
	if strings.Contains(acceptHeader, "text/html") || hxRequest == "true" {
		return c.Render("analysis", fiber.Map{
			"FilenamePatterns": report.FilenamePatterns,
			"FolderPatterns":   report.FolderPatterns,
			"PrimaryFilename":  SummaryLine(report.Summary.PrimaryFilename),
			"PrimaryFolder":    SummaryLine(report.Summary.PrimaryFolder),
		})
	}

	return c.JSON(fiber.Map{
		"filenamePatterns": report.FilenamePatterns,
		"folderPatterns":   report.FolderPatterns,
		"summary": fiber.Map{
			"primaryFilename": SummaryLine(report.Summary.PrimaryFilename),
			"primaryFolder":   SummaryLine(report.Summary.PrimaryFolder),
		},
	})
}

// GetSummary returns just the two summary lines, for dashboards.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	slog.Debug("GetSummary handler called")

	report, err := h.service.Report(c.Context(), Options{})
	if err != nil {
		if errors.Is(err, ErrNoLibrary) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no library scanned yet, run a scan first",
			})
		}
		slog.Error("Error running analysis", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"primaryFilename": SummaryLine(report.Summary.PrimaryFilename),
		"primaryFolder":   SummaryLine(report.Summary.PrimaryFolder),
	})
}
