package handlers

import (
	"log/slog"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
	"github.com/Khurshid0109/Dicebear/internal/config"
)

// HandlerDeps provides dependencies for the update dispatcher.
// Everything in it is read-only after startup and shared by all updates.
type HandlerDeps struct {
	Logger      *slog.Logger
	Messages    config.MessagesConfig
	Registry    *avatar.Registry
	Fetcher     Fetcher
	Replier     Replier
	BotUsername string
}
