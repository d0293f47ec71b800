package handlers

import (
	"context"
	"fmt"

	"github.com/Khurshid0109/Dicebear/internal/command"
	"github.com/Khurshid0109/Dicebear/internal/logger"
)

// Dispatcher classifies one inbound message and issues at most one reply.
type Dispatcher struct {
	deps HandlerDeps
}

// NewDispatcher returns a dispatcher bound to deps.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	deps.Logger = deps.Logger.With("handler", "dispatcher")
	return &Dispatcher{deps: deps}
}

// Dispatch handles msg. Errors never escape: each failure becomes a reply,
// and the returned Outcome says which branch ran.
func (d *Dispatcher) Dispatch(ctx context.Context, msg InboundMessage) Outcome {
	log := d.deps.Logger.With("chat_id", msg.ChatID, "user_id", msg.SenderID, "update_id", msg.UpdateID)

	parsed := command.Parse(msg.Text, d.deps.BotUsername)
	switch parsed.Kind {
	case command.Empty:
		log.DebugContext(ctx, "Ignoring empty message")
		return OutcomeIgnored

	case command.HelpRequested:
		log.InfoContext(ctx, "Handling /help command")
		return d.reply(ctx, msg.ChatID, d.deps.Messages.Help, OutcomeHelp)

	case command.PlainText:
		log.InfoContext(ctx, "Plain text received, sending command guidance")
		return d.reply(ctx, msg.ChatID, d.deps.Messages.UseCommand, OutcomeGuidance)
	}

	styleID, ok := d.deps.Registry.Resolve(parsed.Name)
	if !ok {
		log.InfoContext(ctx, "Unknown command", "command", parsed.Name)
		return d.reply(ctx, msg.ChatID, d.deps.Messages.UnknownCommand, OutcomeUnknownCommand)
	}

	if !parsed.HasSeed() {
		log.InfoContext(ctx, "Command without seed", "command", parsed.Name)
		text := fmt.Sprintf(d.deps.Messages.SeedRequiredFmt, parsed.Name)
		return d.reply(ctx, msg.ChatID, text, OutcomeSeedRequired)
	}

	return d.sendAvatar(ctx, msg.ChatID, styleID, parsed.Seed)
}

// reply sends a text reply. A send failure is logged and does not change the outcome.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string, outcome Outcome) Outcome {
	if err := d.deps.Replier.SendText(ctx, chatID, text); err != nil {
		d.deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID, "outcome", outcome)
	}
	return outcome
}
