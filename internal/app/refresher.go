package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/atlas/internal/state"
)

// maxBackoff caps the wait between refreshes after repeated failures.
const maxBackoff = 30 * time.Minute

// refresher is the part of state.Store the background loop drives.
type refresher interface {
	Refresh(ctx context.Context)
	Snapshot() state.Snapshot
}

// StartRefresher launches a background goroutine that reloads the collection
// every interval, backing off while refreshes keep failing. A non-positive
// interval disables it. It returns immediately.
func StartRefresher(ctx context.Context, store refresher, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			store.Refresh(ctx)
			failures := store.Snapshot().ConsecutiveFailures
			wait := calculateBackoff(failures, interval)
			if failures > 0 {
				logger.Warn("background refresh failed",
					slog.Int("failures", failures),
					slog.Duration("next", wait),
				)
			}
			timer.Reset(wait)
		}
	}()
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
