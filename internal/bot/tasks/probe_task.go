package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Khurshid0109/Dicebear/internal/config"
)

const (
	probeStyle = "bottts"
	probeSeed  = "healthcheck"
)

// newProbeTask checks that DiceBear still renders avatars. It downloads one
// fixed image, discards it, and reports the outcome in the logs only.
func newProbeTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", config.ProbeTaskName)

	timeout := config.DefaultProbeTimeout
	if deps.Config != nil {
		if tc, ok := deps.Config.Scheduler.Tasks[config.ProbeTaskName]; ok && tc.Timeout > 0 {
			timeout = tc.Timeout
		}
	}

	return func(ctx context.Context) error {
		startTime := time.Now()
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		img, err := deps.Fetcher.Fetch(probeCtx, probeStyle, probeSeed)
		if err != nil {
			log.WarnContext(ctx, "DiceBear probe failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("dicebear probe: %w", err)
		}
		defer img.Close()

		n, err := io.Copy(io.Discard, img)
		if err != nil {
			log.WarnContext(ctx, "DiceBear probe stream failed", "error", err, "bytes", n)
			return fmt.Errorf("dicebear probe read: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("dicebear probe: empty image")
		}

		log.InfoContext(ctx, "DiceBear probe succeeded", "bytes", n, "duration", time.Since(startTime))
		return nil
	}
}
