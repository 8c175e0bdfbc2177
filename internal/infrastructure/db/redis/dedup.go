package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks for transition events.
// Key format: dedup:<document_id>:<status>:<unix_timestamp>
type DedupChecker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client redis.Cmdable) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// IsDuplicate reports whether this exact event has already been applied.
func (d *DedupChecker) IsDuplicate(ctx context.Context, documentID, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(documentID, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been applied (expires after the TTL).
func (d *DedupChecker) Mark(ctx context.Context, documentID, status string, ts time.Time) error {
	if err := d.client.Set(ctx, dedupKey(documentID, status, ts), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}

func dedupKey(documentID, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", documentID, status, ts.Unix())
}
