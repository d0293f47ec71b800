// Package telegram adapts github.com/go-telegram/bot to the avatar update
// pipeline: it turns polled updates and polling errors into channels and
// sends text and photo replies.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
// pollTimeout bounds each long-poll request; zero keeps the library default.
func NewTelegramBot(token string, pollTimeout time.Duration, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	if pollTimeout > 0 {
		// The HTTP client must outlive one long-poll round trip.
		client := &http.Client{Timeout: pollTimeout + 10*time.Second}
		opts = append([]bot.Option{bot.WithHTTPClient(pollTimeout, client)}, opts...)
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

// Identify fetches the bot's own account. The username feeds command parsing.
func Identify(ctx context.Context, b *bot.Bot) (*models.User, error) {
	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	return me, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
