package adapter

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a RegisterLocker.
type UnlockFunc func(ctx context.Context) error

// RegisterLocker serializes mutating register operations for one key across instances.
type RegisterLocker interface {
	// Lock obtains the lock for key or returns ErrRegisterBusy.
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
