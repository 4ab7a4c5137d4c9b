package session

import (
	"context" // Context for Redis operations
	"time"    // Time durations

	"pizza_pos/internal/utils" // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
)

// RedisStore keeps sessions in Redis so they survive a server restart
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a store whose sessions expire after ttl of inactivity
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return "session:" + id // Session cache key
}

// Save stores s and refreshes its expiry
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	return utils.SetCache(ctx, r.rdb, key(s.ID), s, r.ttl)
}

// Load fetches the session
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	var s Session
	found, err := utils.GetCache(ctx, r.rdb, key(id), &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete closes the session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return utils.DeleteCache(ctx, r.rdb, key(id))
}
