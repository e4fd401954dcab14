package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/mwalther/sheetsync/internal/logging"
)

// Defaults applied when a Config field is zero.
const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

// Config controls one retried operation. The delay is constant across
// attempts; the external conversion backend does not reward exponential
// backoff, it just needs time to settle.
type Config struct {
	MaxAttempts uint
	Delay       time.Duration
	Logger      *slog.Logger

	// OnRetry is invoked once per failed attempt, e.g. to record a metric.
	OnRetry func()
}

// Do calls op up to MaxAttempts times with a constant delay between attempts,
// logging a warning per failure. After exhausting all attempts it returns a
// composite error naming the label and the attempt count. Cancellation of ctx
// stops the loop between attempts.
func Do[T any](ctx context.Context, label string, cfg Config, op func() (T, error)) (T, error) {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Delay == 0 {
		cfg.Delay = DefaultDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attempt := 0
	notify := func(err error, _ time.Duration) {
		attempt++
		logger.Warn("operation failed, retrying",
			logging.Operation(label),
			logging.Attempt(attempt),
			slog.Uint64("max_attempts", uint64(cfg.MaxAttempts)),
			logging.Err(err),
		)
		if cfg.OnRetry != nil {
			cfg.OnRetry()
		}
	}

	result, err := backoff.Retry(ctx, backoff.Operation[T](op),
		backoff.WithBackOff(backoff.NewConstantBackOff(cfg.Delay)),
		backoff.WithMaxTries(cfg.MaxAttempts),
		backoff.WithNotify(notify),
	)
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("%s canceled: %w", label, err)
		}
		return result, fmt.Errorf("%s failed after %d attempts: %w", label, cfg.MaxAttempts, err)
	}

	return result, nil
}
