package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
)

// sendAvatar fetches the image and relays it as a photo. The image stream is
// closed on every path.
func (d *Dispatcher) sendAvatar(ctx context.Context, chatID int64, styleID, seed string) Outcome {
	log := d.deps.Logger.With("chat_id", chatID, "style", styleID, "seed", seed)

	img, err := d.deps.Fetcher.Fetch(ctx, styleID, seed)
	if err != nil {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Avatar fetch abandoned on shutdown", "error", err)
			return OutcomeCanceled
		}

		var fe *avatar.FetchError
		if errors.As(err, &fe) && fe.Kind == avatar.NetworkFailure {
			log.ErrorContext(ctx, "Avatar request failed", "error", err, "status", fe.StatusCode)
			return d.reply(ctx, chatID, d.deps.Messages.FetchFailed, OutcomeFetchFailed)
		}

		log.ErrorContext(ctx, "Avatar fetch failed with unexpected error", "error", err)
		return d.reply(ctx, chatID, d.deps.Messages.SendFailed, OutcomeSendFailed)
	}
	defer func() {
		if cerr := img.Close(); cerr != nil {
			log.WarnContext(ctx, "Failed to close avatar stream", "error", cerr)
		}
	}()

	caption := fmt.Sprintf(d.deps.Messages.CaptionFmt, seed)
	if err := d.deps.Replier.SendPhoto(ctx, chatID, img, img.Filename, caption); err != nil {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Avatar send abandoned on shutdown", "error", err)
			return OutcomeCanceled
		}

		kind := "send_failure"
		if rerr := img.ReadErr(); rerr != nil {
			kind = avatar.Unknown.String()
			err = fmt.Errorf("%w (upload: %w)", rerr, err)
		}
		log.ErrorContext(ctx, "Failed to send avatar", "error", err, "kind", kind)
		return d.reply(ctx, chatID, d.deps.Messages.SendFailed, OutcomeSendFailed)
	}

	log.InfoContext(ctx, "Avatar sent")
	return OutcomeSent
}
