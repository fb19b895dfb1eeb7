// Package notify delivers review reminders. Telegram is the only delivery
// channel; users opt in by registering their chat id.
package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends review reminders through a Telegram bot.
// User ids must map to numeric chat ids via the supplied lookup.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	// ChatID resolves a user id to the user's Telegram chat id
	ChatID func(userID string) (int64, bool)
}

// NewTelegramNotifier creates a notifier for the given bot token
func NewTelegramNotifier(token string, chatID func(userID string) (int64, bool)) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{bot: bot, ChatID: chatID}, nil
}

// SendReminder tells a user how many vocabulary terms are due for review.
// Users without a registered chat id are skipped silently.
func (n *TelegramNotifier) SendReminder(userID string, dueCount int) error {
	chatID, ok := n.ChatID(userID)
	if !ok {
		return nil
	}

	text := fmt.Sprintf("You have %d vocabulary word(s) due for review. Open a story to practice them!", dueCount)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// EnvChatID builds a chat id lookup that maps every user to a single chat id
// string, for single-user deployments.
func EnvChatID(raw string) func(string) (int64, bool) {
	chatID, err := strconv.ParseInt(raw, 10, 64)
	return func(string) (int64, bool) {
		if err != nil || chatID == 0 {
			return 0, false
		}
		return chatID, true
	}
}
