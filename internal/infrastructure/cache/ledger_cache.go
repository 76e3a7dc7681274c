package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/redis/go-redis/v9"
)

const (
	ledgerKeyPrefix           = "fiscal:ledger:"
	ledgerGenerationKeyPrefix = "fiscal:ledger-gen:"
)

// storeIfCurrentScript writes the ledger only while the year's generation is
// still the one read before the ledger was built
var storeIfCurrentScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
  redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// RedisLedgerCache stores generated VAT books as JSON, keyed by year so a
// record change can drop every book of its year at once. Each year also
// carries a generation counter bumped on invalidation; a book built from
// data read before a bump is never stored.
type RedisLedgerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLedgerCache creates a new RedisLedgerCache
func NewRedisLedgerCache(client *redis.Client, ttl time.Duration) *RedisLedgerCache {
	return &RedisLedgerCache{client: client, ttl: ttl}
}

// LedgerKey returns e.g. fiscal:ledger:2025:CHARGED:2025-Q3
func LedgerKey(book fiscal.BookType, period fiscal.PeriodFilter) string {
	return fmt.Sprintf("%s%d:%s:%s", ledgerKeyPrefix, period.Year, book, period.Label())
}

func generationKey(year int) string {
	return ledgerGenerationKeyPrefix + strconv.Itoa(year)
}

// Generation returns the current invalidation generation of year
func (c *RedisLedgerCache) Generation(ctx context.Context, year int) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(year)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger generation of %d: %w", year, err)
	}
	return gen, nil
}

// Get returns the cached book, or false when absent
func (c *RedisLedgerCache) Get(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, bool, error) {
	raw, err := c.client.Get(ctx, LedgerKey(book, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached ledger: %w", err)
	}

	var ledger fiscal.Ledger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached ledger: %w", err)
	}
	return &ledger, true, nil
}

// Set stores the book unless its year was invalidated after generation was
// read. It reports whether the book was stored.
func (c *RedisLedgerCache) Set(ctx context.Context, ledger *fiscal.Ledger, generation int64) (bool, error) {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return false, fmt.Errorf("failed to encode ledger: %w", err)
	}
	keys := []string{generationKey(ledger.Period.Year), LedgerKey(ledger.Book, ledger.Period)}
	stored, err := storeIfCurrentScript.Run(ctx, c.client, keys, generation, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to cache ledger: %w", err)
	}
	return stored == 1, nil
}

// InvalidateYears bumps the generation of the given years and drops their cached books
func (c *RedisLedgerCache) InvalidateYears(ctx context.Context, years ...int) error {
	for _, year := range years {
		if err := c.client.Incr(ctx, generationKey(year)).Err(); err != nil {
			return fmt.Errorf("failed to bump ledger generation of %d: %w", year, err)
		}
		pattern := ledgerKeyPrefix + strconv.Itoa(year) + ":*"
		var cursor uint64
		for {
			keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("failed to scan cached ledgers of %d: %w", year, err)
			}
			if len(keys) > 0 {
				if err := c.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("failed to drop cached ledgers of %d: %w", year, err)
				}
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	return nil
}
