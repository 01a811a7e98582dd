package jobs

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the jobs feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the jobs feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes job-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "jobs":
		return h.handleJobs(bot, chatID)
	case "cancel":
		return h.handleCancel(bot, chatID, args)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown jobs command. Use /jobs or /cancel <id>"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"jobs":   "List recent background jobs",
		"cancel": "Cancel a running job (/cancel <id>)",
	}
}

// HandleCallback handles callback queries for this feature (jobs has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func statusEmoji(status JobStatus) string {
	switch status {
	case JobStatusRunning:
		return "🏃"
	case JobStatusCompleted:
		return "✅"
	case JobStatusFailed:
		return "❌"
	case JobStatusCancelled:
		return "🚫"
	default:
		return "⏳"
	}
}

func (h *TelegramHandler) handleJobs(bot *tgbotapi.BotAPI, chatID int64) error {
	jobs := h.service.GetJobs()
	if len(jobs) == 0 {
		bot.Send(tgbotapi.NewMessage(chatID, "No jobs yet."))
		return nil
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}

	var b strings.Builder
	b.WriteString("🗂 *Recent Jobs*\n\n")
	for _, job := range jobs {
		b.WriteString(fmt.Sprintf("%s *%s* (%d%%)\n`%s`\n%s\n\n",
			statusEmoji(job.Status), job.Name, job.Progress, job.ID, job.Message))
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}

func (h *TelegramHandler) handleCancel(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	jobID := strings.TrimSpace(args)
	if jobID == "" {
		bot.Send(tgbotapi.NewMessage(chatID, "Usage: /cancel <job id>"))
		return nil
	}
	if err := h.service.CancelJob(jobID); err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Failed to cancel job: %s", err.Error())))
		return err
	}
	bot.Send(tgbotapi.NewMessage(chatID, "🚫 Job cancelled"))
	return nil
}
