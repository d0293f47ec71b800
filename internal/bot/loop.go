package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
	"github.com/Khurshid0109/Dicebear/internal/logger"
)

// UpdateHandler processes a single inbound message.
type UpdateHandler interface {
	Dispatch(ctx context.Context, msg handlers.InboundMessage) handlers.Outcome
}

// EventLoop consumes the update and transport-error streams.
type EventLoop struct {
	handler    UpdateHandler
	logger     *slog.Logger
	maxWorkers int
}

// NewEventLoop creates a loop running at most maxWorkers handlers at once.
func NewEventLoop(handler UpdateHandler, logger *slog.Logger, maxWorkers int) *EventLoop {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &EventLoop{
		handler:    handler,
		logger:     logger.With("component", "event_loop"),
		maxWorkers: maxWorkers,
	}
}

// Serve hands every update to its own worker until ctx is done or updates
// is closed, then waits for in-flight workers before returning.
func (l *EventLoop) Serve(ctx context.Context, updates <-chan handlers.InboundMessage) error {
	var g errgroup.Group
	g.SetLimit(l.maxWorkers)

	l.logger.InfoContext(ctx, "Event loop started", "max_workers", l.maxWorkers)
	defer l.logger.InfoContext(ctx, "Event loop stopped")

	for {
		select {
		case <-ctx.Done():
			return g.Wait()
		case msg, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				l.handle(ctx, msg)
				return nil
			})
		}
	}
}

func (l *EventLoop) handle(ctx context.Context, msg handlers.InboundMessage) {
	log := l.logger.With("trace_id", uuid.NewString(), "update_id", msg.UpdateID, "chat_id", msg.ChatID)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Update handler panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	outcome := l.handler.Dispatch(ctx, msg)
	log.InfoContext(ctx, "Update handled",
		"user_id", msg.SenderID,
		"text_preview", logger.TruncateString(msg.Text, 50),
		"outcome", outcome.String(),
		"duration", time.Since(start))
}

// SinkErrors records transport errors that have no chat to reply to. It runs
// until ctx is done or errs is closed. Errors still buffered when ctx is done
// are logged before it returns.
func (l *EventLoop) SinkErrors(ctx context.Context, errs <-chan error) {
	log := l.logger.With("sink", "transport_errors")
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case err, ok := <-errs:
					if !ok {
						return
					}
					log.ErrorContext(ctx, "Telegram polling failed", "error", err)
				default:
					return
				}
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			log.ErrorContext(ctx, "Telegram polling failed", "error", err)
		}
	}
}
