// Package bot implements the update pipeline lifecycle: the listener, the
// event loop, the transport error sink and the task scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
)

// Listener delivers updates until its context is cancelled.
// *github.com/go-telegram/bot.Bot satisfies it.
type Listener interface {
	Start(ctx context.Context)
}

// Inbox exposes the update and transport-error streams fed by the listener.
type Inbox interface {
	Updates() <-chan handlers.InboundMessage
	Errors() <-chan error
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	listener  Listener
	inbox     Inbox
	loop      *EventLoop
	scheduler *Scheduler
}

// NewBot creates a new instance of the bot. scheduler may be nil.
func NewBot(logger *slog.Logger, listener Listener, inbox Inbox, loop *EventLoop, scheduler *Scheduler) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		listener:  listener,
		inbox:     inbox,
		loop:      loop,
		scheduler: scheduler,
	}
}

// Run starts all components and blocks until ctx is cancelled or a component
// fails. Cancellation is a clean stop and yields nil.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.listener.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")

			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		return b.loop.Serve(gCtx, b.inbox.Updates())
	})

	g.Go(func() error {
		b.loop.SinkErrors(gCtx, b.inbox.Errors())
		return nil
	})

	if b.scheduler != nil {
		g.Go(func() error {
			b.logger.Info("Starting scheduler...")
			if err := b.scheduler.Start(); err != nil {
				b.logger.Error("Failed to start scheduler", "error", err)
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping scheduler...")

			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}

			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
