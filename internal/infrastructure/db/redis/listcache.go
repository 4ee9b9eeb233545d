package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const listTTL = 30 * time.Second

// ListCache is a short-lived JSON read cache placed in front of the list
// endpoints. Key format: cache:<collection>
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a ListCache wrapping the given Redis client.
func NewListCache(client *redis.Client) *ListCache {
	return &ListCache{client: client, ttl: listTTL}
}

// Get unmarshals the cached collection into dest. A missing key is reported
// as a miss, not an error.
func (l *ListCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := l.client.Get(ctx, l.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores the collection as JSON with a short TTL.
func (l *ListCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return l.client.Set(ctx, l.key(key), raw, l.ttl).Err()
}

// Invalidate drops the cached collection after a write.
func (l *ListCache) Invalidate(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *ListCache) key(k string) string {
	return "cache:" + k
}
