// Package lock provides cross-instance locks for cash register mutations.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/cash-register/backend/internal/application/adapter"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

const (
	keyPrefix = "lock:"

	retryInterval = 50 * time.Millisecond
	retryLimit    = 20
)

// NewRedisClient connects to the Redis instance at url and verifies it answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", opts.Addr)
	return client, nil
}

// redisLocker implements the adapter.RegisterLocker interface on redislock.
type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker whose locks expire after ttl if never released.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration) adapter.RegisterLocker {
	return &redisLocker{
		client: redislock.New(client),
		ttl:    ttl,
	}
}

// Lock obtains the lock, retrying briefly while another request holds it.
func (l *redisLocker) Lock(ctx context.Context, key string) (adapter.UnlockFunc, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), retryLimit),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		slog.Warn("Register lock not obtained", "key", key)
		return nil, domainerror.ErrRegisterBusy
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

type nopLocker struct{}

// NewNopLocker returns a locker that never blocks. Used when Redis is not configured;
// the database transaction remains the only guard.
func NewNopLocker() adapter.RegisterLocker {
	return nopLocker{}
}

func (nopLocker) Lock(context.Context, string) (adapter.UnlockFunc, error) {
	return func(context.Context) error { return nil }, nil
}
