// Package handlers turns inbound chat messages into avatar replies.
package handlers

import (
	"context"
	"io"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
)

// InboundMessage is one text message delivered by the transport.
type InboundMessage struct {
	UpdateID int64
	ChatID   int64
	SenderID int64
	Text     string
}

// Replier sends replies back to the chat that produced an update.
type Replier interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo io.Reader, filename, caption string) error
}

// Fetcher retrieves a generated avatar. Implementations return *avatar.FetchError
// on failure; the caller closes the returned image.
type Fetcher interface {
	Fetch(ctx context.Context, styleID, seed string) (*avatar.Image, error)
}

// Outcome records which terminal branch handled an update.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeHelp
	OutcomeGuidance
	OutcomeUnknownCommand
	OutcomeSeedRequired
	OutcomeSent
	OutcomeFetchFailed
	OutcomeSendFailed
	OutcomeCanceled
)

var outcomeNames = [...]string{
	OutcomeIgnored:        "ignored",
	OutcomeHelp:           "help",
	OutcomeGuidance:       "guidance",
	OutcomeUnknownCommand: "unknown_command",
	OutcomeSeedRequired:   "seed_required",
	OutcomeSent:           "sent",
	OutcomeFetchFailed:    "fetch_failed",
	OutcomeSendFailed:     "send_failed",
	OutcomeCanceled:       "canceled",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "invalid"
}
