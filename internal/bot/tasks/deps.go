// Package tasks implements scheduled background tasks for the avatar bot.
package tasks

import (
	"context"
	"log/slog"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
	"github.com/Khurshid0109/Dicebear/internal/config"
)

// Fetcher is the avatar source probed by the health task.
type Fetcher interface {
	Fetch(ctx context.Context, styleID, seed string) (*avatar.Image, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Fetcher Fetcher
	Config  *config.Config
}
