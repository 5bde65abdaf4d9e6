package lock

import (
	"context"
	stderrors "errors"
	"time"

	"booking-portal/internal/pkg/errors"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

type Unlock func(ctx context.Context) error

type Locker interface {
	// Lock blocks until key is held or the tries run out.
	Lock(ctx context.Context, key string) (Unlock, error)
}

type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

var DefaultOptions = Options{
	Expiry:     15 * time.Second,
	Tries:      20,
	RetryDelay: 100 * time.Millisecond,
}

type redsyncLocker struct {
	rs   *redsync.Redsync
	opts Options
}

func NewRedsync(client redis.UniversalClient, opts Options) Locker {
	pool := goredis.NewPool(client)
	return &redsyncLocker{
		rs:   redsync.New(pool),
		opts: opts,
	}
}

func (l *redsyncLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if stderrors.Is(err, redsync.ErrFailed) || stderrors.As(err, &taken) {
			return nil, errors.Wrap(errors.KindConflict, err, "resource is locked").
				WithDetails("another request is writing the same slot, try again")
		}
		return nil, errors.Wrap(errors.KindServerError, err, "error acquire lock")
	}

	return func(ctx context.Context) error {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			return errors.Wrap(errors.KindServerError, err, "error release lock")
		}
		return nil
	}, nil
}
