package jobs

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

// JobResponse is a wrapper for the Job struct to include API links
type JobResponse struct {
	*Job
	Links map[string]string `json:"_links"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func jobResponse(baseURL string, job *Job) *JobResponse {
	return &JobResponse{
		Job: job,
		Links: map[string]string{
			"self":   fmt.Sprintf("%s/jobs/%s", baseURL, job.ID),
			"logs":   fmt.Sprintf("%s/jobs/%s/logs", baseURL, job.ID),
			"cancel": fmt.Sprintf("%s/jobs/%s/cancel", baseURL, job.ID),
		},
	}
}

func (h *Handler) HandleStartJob(c *fiber.Ctx) error {
	jobType := c.Params("type")
	name := c.Query("name", jobType)

	jobID, err := h.service.StartJob(jobType, name, nil)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"job_id": jobID})
}

func (h *Handler) HandleJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("id")
	job, exists := h.service.GetJob(jobID)
	if !exists {
		return c.Status(404).SendString("Job not found")
	}

	return c.JSON(jobResponse(c.BaseURL(), job))
}

func (h *Handler) HandleJobLogs(c *fiber.Ctx) error {
	jobID := c.Params("id")
	job, exists := h.service.GetJob(jobID)
	if !exists {
		return c.Status(404).SendString("Job not found")
	}

	if job.LogPath == "" {
		return c.SendString("No logs for this job.")
	}

	logContent, err := os.ReadFile(job.LogPath)
	if err != nil {
		return c.Status(500).SendString("Failed to read log file.")
	}

	c.Set("Content-Type", "text/plain")
	return c.SendString(string(logContent))
}

func (h *Handler) HandleJobList(c *fiber.Ctx) error {
	jobs := h.service.GetJobs()
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	baseURL := c.BaseURL()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = jobResponse(baseURL, job)
	}
	return c.JSON(responses)
}

func (h *Handler) HandleCancelJob(c *fiber.Ctx) error {
	jobID := c.Params("id")

	if err := h.service.CancelJob(jobID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	job, exists := h.service.GetJob(jobID)
	if !exists {
		return c.Status(404).SendString("Job not found")
	}
	return c.JSON(jobResponse(c.BaseURL(), job))
}

func (h *Handler) HandleCleanupJobs(c *fiber.Ctx) error {
	h.service.CleanupOldJobs(24 * time.Hour)
	return c.JSON(fiber.Map{"status": "cleanup completed"})
}
