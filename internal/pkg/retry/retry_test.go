package retry_test

import (
	"context"
	"testing"
	"time"

	"booking-portal/internal/pkg/errors"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/retry"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

var policy = retry.Policy{
	MaxRetries:   3,
	InitialDelay: time.Millisecond,
	MaxDelay:     4 * time.Millisecond,
}

func TestDo(t *testing.T) {
	logMock := log_internal.Setup()
	ctx := context.Background()

	t.Run("succeeds after two retryable failures", func(t *testing.T) {
		calls := 0
		result, err := retry.Do(ctx, policy, logMock, "test", func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.GatewayTimeout("timeout")
			}
			return "ok", nil
		})

		assert.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("non retryable error is returned immediately", func(t *testing.T) {
		calls := 0
		_, err := retry.Do(ctx, policy, logMock, "test", func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.Forbidden("denied")
		})

		assert.Equal(t, 1, calls)
		assert.Equal(t, errors.KindForbidden, errors.KindOf(err))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := retry.Exec(ctx, policy, logMock, "test", func(ctx context.Context) error {
			calls++
			return errors.InternalServerError("boom")
		})

		assert.Equal(t, policy.MaxRetries+1, calls)
		assert.Equal(t, errors.KindServerError, errors.KindOf(err))
	})

	t.Run("zero retries means a single attempt", func(t *testing.T) {
		calls := 0
		err := retry.Exec(ctx, retry.Policy{}, logMock, "test", func(ctx context.Context) error {
			calls++
			return errors.TooManyRequests("slow down")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		err := retry.Exec(cctx, retry.Policy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: time.Second}, logMock, "test", func(ctx context.Context) error {
			calls++
			cancel()
			return errors.GatewayTimeout("timeout")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestBackoffSequence(t *testing.T) {
	b := retry.Policy{
		MaxRetries:   6,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
	}.Backoff()

	var delays []time.Duration
	for d := b.NextBackOff(); d != backoff.Stop; d = b.NextBackOff() {
		delays = append(delays, d)
	}

	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}, delays)
}
