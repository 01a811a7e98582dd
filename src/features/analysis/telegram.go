package analysis

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tunesleuth/src/music"
)

// TelegramHandler handles Telegram commands for the analysis feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the analysis feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes analysis-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "analyze":
		return h.handleAnalyze(bot, chatID, args)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown analysis command. Use /analyze [low]"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"analyze": "Analyze naming and folder conventions (/analyze or /analyze low)",
	}
}

// HandleCallback handles callback queries for this feature (analysis has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// handleAnalyze runs the detector and formats the report for chat
func (h *TelegramHandler) handleAnalyze(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	opts := h.service.DefaultOptions()
	opts.Explain = true
	if strings.TrimSpace(args) == "low" {
		opts.IncludeLowConfidence = true
	}

	report, err := h.service.Report(context.Background(), opts)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Analysis failed: %s", err.Error()))
		bot.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("🔍 *Library Analysis*\n\n")
	b.WriteString(fmt.Sprintf("📄 Filename: `%s`\n", SummaryLine(report.Summary.PrimaryFilename)))
	b.WriteString(fmt.Sprintf("📁 Folders: `%s`\n", SummaryLine(report.Summary.PrimaryFolder)))

	writePatterns(&b, "Filename patterns", report.FilenamePatterns)
	writePatterns(&b, "Folder patterns", report.FolderPatterns)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}

func writePatterns(b *strings.Builder, title string, matches []music.PatternMatch) {
	if len(matches) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n*%s*\n", title))
	for _, m := range matches {
		b.WriteString(fmt.Sprintf("• %s (%s confidence)\n  _%s_\n", m.Description, m.Band, m.Explanation))
	}
}
