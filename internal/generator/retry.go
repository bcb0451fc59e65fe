package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"

	"github.com/samdwyer/delve/internal/world"
)

// retryLevel runs attempt until it yields a level, up to maxAttempts times.
// Attempts failing with anything other than ErrExhausted stop the loop.
func retryLevel(ctx context.Context, maxAttempts int, logger logr.Logger, attempt func(n int) (*world.Level, error)) (*world.Level, int, error) {
	tries := 0
	level, err := backoff.Retry(ctx, func() (*world.Level, error) {
		tries++
		level, err := attempt(tries)
		if err != nil && !errors.Is(err, ErrExhausted) {
			return nil, backoff.Permanent(err)
		}
		return level, err
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithNotify(func(err error, _ time.Duration) {
			logger.V(1).Info("level attempt failed", "attempt", tries, "reason", err.Error())
		}),
	)
	if err != nil && errors.Is(err, ErrExhausted) {
		return nil, tries, fmt.Errorf("gave up after %d attempts: %w", tries, err)
	}
	return level, tries, err
}
