package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
)

// Inbox converts go-telegram/bot callbacks into two channels: text messages
// and polling errors. Nothing closes the channels; consumers stop on their
// own context.
type Inbox struct {
	updates chan handlers.InboundMessage
	errs    chan error
	logger  *slog.Logger
}

// NewInbox creates an inbox with the given channel buffer sizes.
func NewInbox(updateBuffer, errorBuffer int, logger *slog.Logger) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	if updateBuffer < 0 {
		updateBuffer = 0
	}
	if errorBuffer < 1 {
		errorBuffer = 1
	}
	return &Inbox{
		updates: make(chan handlers.InboundMessage, updateBuffer),
		errs:    make(chan error, errorBuffer),
		logger:  logger.With("component", "telegram_inbox"),
	}
}

// Options registers the inbox as the bot's default handler and error handler.
// Handlers run on the polling goroutine, so a full inbox stalls polling
// instead of parking one goroutine per update.
func (in *Inbox) Options() []bot.Option {
	return []bot.Option{
		bot.WithDefaultHandler(in.HandleUpdate),
		bot.WithErrorsHandler(in.HandleError),
		bot.WithNotAsyncHandlers(),
	}
}

// Updates is the stream of inbound text messages.
func (in *Inbox) Updates() <-chan handlers.InboundMessage { return in.updates }

// Errors is the stream of transport errors.
func (in *Inbox) Errors() <-chan error { return in.errs }

// HandleUpdate forwards non-empty text messages. It blocks until the message
// is queued or ctx is done.
func (in *Inbox) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	inbound := handlers.InboundMessage{
		UpdateID: update.ID,
		ChatID:   msg.Chat.ID,
		Text:     msg.Text,
	}
	if msg.From != nil {
		inbound.SenderID = msg.From.ID
	}

	select {
	case in.updates <- inbound:
	case <-ctx.Done():
		in.logger.WarnContext(ctx, "Dropping update on shutdown", "update_id", update.ID, "chat_id", inbound.ChatID)
	}
}

// HandleError queues a polling error without blocking the poller. When the
// buffer is full the error is logged here instead.
func (in *Inbox) HandleError(err error) {
	if err == nil {
		return
	}
	select {
	case in.errs <- err:
	default:
		in.logger.Warn("Transport error sink saturated, logging inline", "error", err)
	}
}
