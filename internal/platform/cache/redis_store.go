package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// RedisStore is a Store shared across processes. Expiry is delegated to the Redis key TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. If ttl is 0, it defaults to 5 minutes.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Get reads key. A corrupted entry is deleted and reported as a miss.
func (r *RedisStore) Get(ctx context.Context, key string) (entity.RawPayload, bool, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.RawPayload{}, false, nil
	}
	if err != nil {
		return entity.RawPayload{}, false, err
	}

	var p entity.RawPayload
	if err := json.Unmarshal(b, &p); err != nil {
		// Delete corrupted cache entry
		_ = r.rdb.Del(ctx, key).Err()
		return entity.RawPayload{}, false, nil
	}
	return p, true, nil
}

// Set writes payload with the store TTL.
func (r *RedisStore) Set(ctx context.Context, key string, payload entity.RawPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return r.rdb.Set(ctx, key, b, r.ttl).Err()
}
