package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides publish-fanout idempotency checks backed by Redis.
// Key format: notify:<article_id>. Re-publishing an article within dedupTTL
// does not notify subscribers again.
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this article's publish fanout already ran.
func (d *DedupChecker) IsDuplicate(ctx context.Context, articleID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(articleID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the fanout for this article ran (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, articleID string) error {
	return d.client.Set(ctx, d.key(articleID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(articleID string) string {
	return "notify:" + articleID
}
