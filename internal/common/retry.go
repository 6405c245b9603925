package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/cashflow/internal/service"
)

// ErrMaxRetries is returned once every attempt has failed with a retryable error.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryableError marks an error as worth retrying (or not) regardless of its text.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// DefaultRetryOptions suits a local SQLite file: a few quick attempts while
// another writer holds the lock.
func DefaultRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2,
	}
}

func withDefaults(opts service.RetryOptions) service.RetryOptions {
	def := DefaultRetryOptions()
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = def.InitialDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = def.MaxDelay
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = def.Multiplier
	}
	return opts
}

// WithRetry runs operation until it succeeds, fails with an error IsRetryable
// rejects, or runs out of attempts. The delay between attempts grows by
// Multiplier up to MaxDelay.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = withDefaults(opts)
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		switch {
		case err == nil:
			return nil
		case !IsRetryable(err):
			return err
		case attempt >= opts.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		slog.Debug("retrying storage operation", "attempt", attempt, "delay", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(time.Duration(float64(delay)*opts.Multiplier), opts.MaxDelay)
	}
}
