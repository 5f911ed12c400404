// Package notify posts application updates to a Telegram chat. Delivery is
// best-effort: send failures are logged and never surface to the
// application flow.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/types"
)

// Notifier sends chat messages about application events. A nil Notifier is
// a no-op, so callers don't need to guard for the unconfigured case.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// ApplicationSubmitted reports a single successful application.
func (n *Notifier) ApplicationSubmitted(posting *types.JobPosting) {
	n.send(FormatApplication(posting))
}

// BatchCompleted reports the outcome of an auto-apply run.
func (n *Notifier) BatchCompleted(result *apply.BatchResult) {
	n.send(FormatBatchSummary(result))
}

func (n *Notifier) send(text string) {
	if n == nil || n.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "HTML"
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("Warning: Failed to send notification: %v", err)
	}
}
