package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/redis/go-redis/v9"
)

// newTestRedis starts an in-process Redis and returns a client bound to it
func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// lastNumbers stubs the one repository call the sequences make
type lastNumbers struct {
	fiscal.RecordRepository
	bySpace map[string]string
}

func (l lastNumbers) FindLastRecordNumber(_ context.Context, space fiscal.NumberingSpace) (string, error) {
	return l.bySpace[space.Key()], nil
}
