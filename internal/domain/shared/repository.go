package shared

import (
	"context"
	"time"
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "record_date",
		OrderDir: "asc",
	}
}

// Locker serializes read-decide-write sequences that span several storage calls.
// Implementations return ErrLockNotObtained when the key is held elsewhere.
type Locker interface {
	// WithLock runs fn while holding the lock identified by key
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}
