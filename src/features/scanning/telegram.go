package scanning

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tunesleuth/src/features/jobs"
)

// TelegramHandler handles Telegram commands for the scanning feature
type TelegramHandler struct {
	service    *Service
	jobService jobs.JobService
}

// NewTelegramHandler creates a new Telegram handler for the scanning feature
func NewTelegramHandler(service *Service, jobService jobs.JobService) *TelegramHandler {
	return &TelegramHandler{service: service, jobService: jobService}
}

// HandleCommand processes scanning-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "scan":
		return h.handleScan(bot, chatID)
	case "stats":
		return h.handleStats(bot, chatID)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown scanning command. Use /scan or /stats"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"scan":  "Scan the library in the background",
		"stats": "Show library statistics",
	}
}

// HandleCallback handles callback queries for this feature (scanning has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// handleScan queues a scan job
func (h *TelegramHandler) handleScan(bot *tgbotapi.BotAPI, chatID int64) error {
	jobID, err := h.jobService.StartJob(JobTypeScan, "Library scan", nil)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Failed to start scan: %s", err.Error())))
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔍 Scan started\nJob: `%s`\nCheck progress with /jobs", jobID))
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}

// handleStats shows library statistics
func (h *TelegramHandler) handleStats(bot *tgbotapi.BotAPI, chatID int64) error {
	stats, ok := h.service.Stats()
	if !ok {
		bot.Send(tgbotapi.NewMessage(chatID, "No library scanned yet. Use /scan first."))
		return nil
	}

	message := fmt.Sprintf("📊 *Library Statistics*\n\n"+
		"🎵 Tracks: `%d`\n---\n"+
		"👤 Artists: `%d`\n---\n"+
		"💿 Albums: `%d`\n---\n"+
		"🏷 Tagged: `%d` (%.0f%% completeness)\n---\n"+
		"📁 Folders: `%d` (max depth %d)",
		stats.TotalTracks, stats.UniqueArtists, stats.UniqueAlbums,
		stats.TracksWithTags, stats.TagCompleteness*100,
		stats.FolderCount, stats.MaxFolderDepth)

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}
