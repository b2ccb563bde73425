// Package notify delivers user-facing messages. Delivery is best-effort:
// failures are logged and reported as a bool, never raised to callers.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ardalabs/olympiad-engine/config"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

type Notifier interface {
	Send(userID uint, message string) bool
}

// NewNotifier returns the Telegram-backed notifier when a bot token is
// configured, otherwise a log-only fallback.
func NewNotifier(cfg *config.Config, accounts repository.AccountRepository) Notifier {
	if cfg.Telegram.BotToken == "" {
		log.Warn().Msg("No Telegram bot token configured, notifications are log-only")
		return &logNotifier{}
	}
	return &telegramNotifier{
		token:    cfg.Telegram.BotToken,
		accounts: accounts,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramNotifier struct {
	token    string
	accounts repository.AccountRepository
	client   *http.Client
}

func (n *telegramNotifier) Send(userID uint, message string) bool {
	account, err := n.accounts.FindByID(userID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("Notify: account lookup failed")
		return false
	}
	if account.TelegramID == nil {
		return false
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"chat_id":    *account.TelegramID,
		"text":       message,
		"parse_mode": "HTML",
	})
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.token)

	resp, err := n.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("Notify: telegram request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Uint("userID", userID).Msg("Notify: telegram rejected message")
		return false
	}
	return true
}

type logNotifier struct{}

func (n *logNotifier) Send(userID uint, message string) bool {
	log.Info().Uint("userID", userID).Str("message", message).Msg("Notification (log-only)")
	return true
}
