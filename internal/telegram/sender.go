package telegram

import (
	"context"
	"fmt"
	"io"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender replies through the Bot API. It implements handlers.Replier.
type Sender struct {
	b *bot.Bot
}

// NewSender wraps an initialized bot.
func NewSender(b *bot.Bot) *Sender {
	return &Sender{b: b}
}

// SendText sends a plain text message.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto uploads photo as a multipart file with the given caption. The
// reader is consumed but not closed.
func (s *Sender) SendPhoto(ctx context.Context, chatID int64, photo io.Reader, filename, caption string) error {
	_, err := s.b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: filename, Data: photo},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send photo to chat %d: %w", chatID, err)
	}
	return nil
}
