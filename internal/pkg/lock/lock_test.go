package lock_test

import (
	"context"
	"testing"
	"time"

	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, tries int) lock.Locker {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return lock.NewRedsync(client, lock.Options{
		Expiry:     time.Second,
		Tries:      tries,
		RetryDelay: 10 * time.Millisecond,
	})
}

func TestLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second holder waits for release", func(t *testing.T) {
		locker := newLocker(t, 1)

		unlock, err := locker.Lock(ctx, "booking:lock:room1:2025-03-01")
		require.NoError(t, err)

		_, err = locker.Lock(ctx, "booking:lock:room1:2025-03-01")
		require.Error(t, err)
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))

		require.NoError(t, unlock(ctx))

		unlock, err = locker.Lock(ctx, "booking:lock:room1:2025-03-01")
		require.NoError(t, err)
		assert.NoError(t, unlock(ctx))
	})

	t.Run("different keys do not contend", func(t *testing.T) {
		locker := newLocker(t, 1)

		unlockA, err := locker.Lock(ctx, "booking:lock:room1:2025-03-01")
		require.NoError(t, err)
		unlockB, err := locker.Lock(ctx, "booking:lock:room2:2025-03-01")
		require.NoError(t, err)

		assert.NoError(t, unlockA(ctx))
		assert.NoError(t, unlockB(ctx))
	})
}
