package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_WithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("runs fn and releases", func(t *testing.T) {
		mr, client := newTestRedis(t)
		locker := NewRedisLocker(client, nil)

		ran := false
		err := locker.WithLock(ctx, "period:ISSUED:2025-07", time.Second, func(ctx context.Context) error {
			ran = true
			assert.True(t, mr.Exists(lockKeyPrefix+"period:ISSUED:2025-07"))
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.False(t, mr.Exists(lockKeyPrefix+"period:ISSUED:2025-07"))
	})

	t.Run("held key is not obtained", func(t *testing.T) {
		_, client := newTestRedis(t)
		locker := NewRedisLocker(client, nil)

		err := locker.WithLock(ctx, "k", 5*time.Second, func(ctx context.Context) error {
			return locker.WithLock(ctx, "k", 150*time.Millisecond, func(context.Context) error {
				t.Fatal("nested lock must not be obtained")
				return nil
			})
		})
		assert.ErrorIs(t, err, shared.ErrLockNotObtained)
	})

	t.Run("fn error is returned and the lease freed", func(t *testing.T) {
		mr, client := newTestRedis(t)
		locker := NewRedisLocker(client, nil)
		boom := errors.New("boom")

		err := locker.WithLock(ctx, "k", time.Second, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.False(t, mr.Exists(lockKeyPrefix+"k"))
	})
}

func TestLocalLocker_WithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("serializes the same key", func(t *testing.T) {
		locker := NewLocalLocker()
		var wg sync.WaitGroup
		var mu sync.Mutex
		inside, maxInside := 0, 0

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := locker.WithLock(ctx, "k", 5*time.Second, func(context.Context) error {
					mu.Lock()
					inside++
					if inside > maxInside {
						maxInside = inside
					}
					mu.Unlock()
					time.Sleep(time.Millisecond)
					mu.Lock()
					inside--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxInside)
	})

	t.Run("held key times out", func(t *testing.T) {
		locker := NewLocalLocker()
		err := locker.WithLock(ctx, "k", time.Second, func(ctx context.Context) error {
			return locker.WithLock(ctx, "k", 20*time.Millisecond, func(context.Context) error { return nil })
		})
		assert.ErrorIs(t, err, shared.ErrLockNotObtained)
	})

	t.Run("distinct keys do not block", func(t *testing.T) {
		locker := NewLocalLocker()
		err := locker.WithLock(ctx, "a", time.Second, func(ctx context.Context) error {
			return locker.WithLock(ctx, "b", 20*time.Millisecond, func(context.Context) error { return nil })
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		locker := NewLocalLocker()
		cctx, cancel := context.WithCancel(ctx)
		err := locker.WithLock(ctx, "k", time.Second, func(context.Context) error {
			cancel()
			return locker.WithLock(cctx, "k", time.Second, func(context.Context) error { return nil })
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
