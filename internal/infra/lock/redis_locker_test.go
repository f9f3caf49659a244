package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/cash-register/backend/internal/domain/error"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	ctx := context.Background()
	locker := NewRedisLocker(newTestRedis(t), time.Minute)

	unlock, err := locker.Lock(ctx, "cash-register:user-1")
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "cash-register:user-2")
	require.NoError(t, err, "different keys do not contend")

	require.NoError(t, unlock(ctx))

	unlock, err = locker.Lock(ctx, "cash-register:user-1")
	require.NoError(t, err, "released lock can be obtained again")
	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "double release is harmless")
}

func TestRedisLocker_Busy(t *testing.T) {
	ctx := context.Background()
	locker := NewRedisLocker(newTestRedis(t), time.Minute)

	_, err := locker.Lock(ctx, "cash-register:user-1")
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "cash-register:user-1")
	assert.ErrorIs(t, err, domainerror.ErrRegisterBusy)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestNopLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewNopLocker()

	first, err := locker.Lock(ctx, "k")
	require.NoError(t, err)
	second, err := locker.Lock(ctx, "k")
	require.NoError(t, err)
	assert.NoError(t, first(ctx))
	assert.NoError(t, second(ctx))
}
