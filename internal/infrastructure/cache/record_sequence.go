package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/redis/go-redis/v9"
)

const sequenceKeyPrefix = "fiscal:sequence:"

// advanceScript increments the counter, never handing out a value at or below the seed
var advanceScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local seed = tonumber(ARGV[1])
if current < seed then
	current = seed
end
current = current + 1
redis.call('SET', KEYS[1], current)
return current
`)

// RedisRecordSequence implements fiscal.SequenceGenerator on Redis counters.
// Each call is seeded from the last persisted number so a flushed or
// restored Redis never reissues a number already in the database.
type RedisRecordSequence struct {
	client  *redis.Client
	records fiscal.RecordRepository
	scheme  fiscal.NumberingScheme
}

// NewRedisRecordSequence creates a new RedisRecordSequence
func NewRedisRecordSequence(client *redis.Client, records fiscal.RecordRepository, scheme fiscal.NumberingScheme) *RedisRecordSequence {
	return &RedisRecordSequence{client: client, records: records, scheme: scheme}
}

// Next returns the next formatted number in space
func (s *RedisRecordSequence) Next(ctx context.Context, space fiscal.NumberingSpace) (string, error) {
	var seed int64
	if s.records != nil {
		last, err := s.records.FindLastRecordNumber(ctx, space)
		if err != nil {
			return "", fmt.Errorf("failed to read last record number: %w", err)
		}
		seed = fiscal.SequenceOf(last)
	}

	next, err := advanceScript.Run(ctx, s.client, []string{sequenceKeyPrefix + space.Key()}, seed).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("sequence %s returned no value", space.Key())
		}
		return "", fmt.Errorf("failed to advance sequence %s: %w", space.Key(), err)
	}
	return s.scheme.Format(space, next), nil
}

var _ fiscal.SequenceGenerator = (*RedisRecordSequence)(nil)
