package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockKeyPrefix = "lock:"

// RedisLocker implements shared.Locker with Redis leases, so the
// one-record-per-month check holds across instances
type RedisLocker struct {
	client  *redislock.Client
	retry   redislock.RetryStrategy
	logger  *zap.Logger
	release time.Duration
}

// NewRedisLocker creates a locker that retries every 50ms until the lease TTL elapses
func NewRedisLocker(client *redis.Client, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client:  redislock.New(client),
		retry:   redislock.LinearBackoff(50 * time.Millisecond),
		logger:  logger,
		release: 2 * time.Second,
	}
}

// WithLock obtains key, runs fn and releases the lease. The wait for the lease
// is bounded by ttl.
func (l *RedisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	waitCtx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()

	lock, err := l.client.Obtain(waitCtx, lockKeyPrefix+key, ttl, &redislock.Options{RetryStrategy: l.retry})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
			l.logger.Warn("lock not obtained", zap.String("key", key), zap.Duration("ttl", ttl))
			return shared.ErrLockNotObtained
		}
		return fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	defer func() {
		// Released on a fresh context so a cancelled request still frees the lease.
		releaseCtx, cancel := context.WithTimeout(context.Background(), l.release)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}()

	return fn(ctx)
}

// LocalLocker implements shared.Locker for a single process
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalLocker creates a new in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

// WithLock waits up to ttl for key, then runs fn while holding it
func (l *LocalLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	slot := l.slot(key)

	timer := time.NewTimer(ttl)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
	case <-timer.C:
		return shared.ErrLockNotObtained
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-slot }()

	return fn(ctx)
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

var (
	_ shared.Locker = (*RedisLocker)(nil)
	_ shared.Locker = (*LocalLocker)(nil)
)
