package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// nextScript raises the counter to ARGV[1] when it lags behind, then
// increments it. Redis runs scripts atomically, so no two callers can
// observe the same value.
var nextScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if current < floor then
  redis.call("SET", KEYS[1], floor)
end
return redis.call("INCR", KEYS[1])
`)

// SequenceStore hands out per-scope counters from Redis.
// Key format: seq:<scope>
type SequenceStore struct {
	client redis.Scripter
}

func NewSequenceStore(client redis.Scripter) *SequenceStore {
	return &SequenceStore{client: client}
}

// Next implements ports.SequenceStore.
func (s *SequenceStore) Next(ctx context.Context, scope string, floor int64) (int64, error) {
	v, err := nextScript.Run(ctx, s.client, []string{sequenceKey(scope)}, floor).Int64()
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", scope, err)
	}
	return v, nil
}

func sequenceKey(scope string) string {
	return "seq:" + scope
}
