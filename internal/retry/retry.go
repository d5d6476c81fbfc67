package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Config tunes one retried operation. With InfiniteRetry set, MaxRetries
// is ignored and the operation is retried until it succeeds or the context
// ends.
type Config struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	Timeout       time.Duration
	InfiniteRetry bool
}

// WithRetry runs operation with exponential backoff and per-attempt
// timeout until it succeeds, the retry budget is spent, or ctx is done.
func WithRetry[T any](ctx context.Context, config Config, operation func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; config.InfiniteRetry || attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		opCtx, cancel := context.WithTimeout(ctx, config.Timeout)
		result, err := operation(opCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		log.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Msg("Operation failed")

		if !config.InfiniteRetry && attempt >= config.MaxRetries {
			break
		}

		delay := backoffDelay(attempt, config.BaseDelay, config.MaxDelay)
		log.Debug().
			Dur("delay", delay).
			Int("next_attempt", attempt+2).
			Msg("Retrying after delay")

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, lastErr)
}

func backoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	// Cap the exponent so the shift cannot overflow.
	safeAttempt := min(attempt, 30)
	delay := time.Duration(1<<safeAttempt) * baseDelay
	if delay > maxDelay {
		delay = maxDelay
	}

	// Jitter between 0.5x and 1.5x to avoid synchronized retries.
	jitter := 0.5 + rand.Float64()
	delay = time.Duration(float64(delay) * jitter)
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
