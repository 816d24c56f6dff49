package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares login-attempt state across instances. Entries expire via
// Redis TTLs, so Sweep and the capacity threshold are no-ops here.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "loginrl:",
	}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, k string) (*Entry, error) {
	val, err := r.client.Get(ctx, r.key(k)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, fmt.Errorf("ratelimit: failed to unmarshal entry: %w", err)
	}
	return &e, nil
}

func (r *RedisStore) Put(ctx context.Context, k string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("ratelimit: failed to marshal entry: %w", err)
	}

	// Keep the key alive until both the window and any lockout end, so an
	// active lockout can never be evicted prematurely.
	deadline := e.ResetAt
	if e.BlockedUntil.After(deadline) {
		deadline = e.BlockedUntil
	}
	ttl := time.Until(deadline)
	if ttl <= 0 {
		return r.client.Del(ctx, r.key(k)).Err()
	}

	return r.client.Set(ctx, r.key(k), data, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, k string) error {
	return r.client.Del(ctx, r.key(k)).Err()
}

func (r *RedisStore) Len(context.Context) int { return 0 }

func (r *RedisStore) Sweep(context.Context, time.Time) {}
