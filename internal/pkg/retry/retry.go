package retry

import (
	"context"
	"time"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func FromConfig(cfg *config.RetryConfig) Policy {
	return Policy{
		MaxRetries:   cfg.MaxRetries,
		InitialDelay: cfg.InitialDelay,
		MaxDelay:     cfg.MaxDelay,
	}
}

// Backoff returns the deterministic delay sequence of p:
// min(InitialDelay * 2^n, MaxDelay), stopping after MaxRetries delays.
func (p Policy) Backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.MaxInterval = p.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	// WithMaxRetries treats 0 as unlimited.
	if p.MaxRetries <= 0 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(b, uint64(p.MaxRetries))
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// policy runs out of retries. Only errors classified as timeout, rate-limit
// or server errors are retried. A cancelled ctx ends the wait with ctx.Err().
func Do[T any](ctx context.Context, p Policy, log *otelzap.Logger, name string, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		attempt++
		result, err := op(ctx)
		if err != nil && !errors.IsRetryable(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, delay time.Duration) {
		if log == nil {
			return
		}
		log.Ctx(ctx).Warn("retrying remote operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", p.MaxRetries),
			zap.Duration("delay", delay),
			zap.String("error_kind", errors.KindOf(err).String()),
			zap.Error(err),
		)
	}

	return backoff.RetryNotifyWithData(operation, backoff.WithContext(p.Backoff(), ctx), notify)
}

// Exec is Do for operations without a result.
func Exec(ctx context.Context, p Policy, log *otelzap.Logger, name string, op func(ctx context.Context) error) error {
	_, err := Do(ctx, p, log, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
