package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes
const (
	entryPrefix = "cache:"
	tagPrefix   = "cache:tag:"
)

// RedisStore is a Store backed by Redis, for headless consumers that share
// one session across processes. Tag membership is kept in Redis sets so an
// invalidation in one process is visible to all of them.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, entryPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...Tag) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, entryPrefix+key, data, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagPrefix+string(tag), key)
		// Tag sets outlive their members slightly; members that already
		// expired are harmless to invalidate again.
		pipe.Expire(ctx, tagPrefix+string(tag), ttl+time.Minute)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = entryPrefix + key
	}
	return s.client.Del(ctx, prefixed...).Err()
}

func (s *RedisStore) InvalidateTag(ctx context.Context, tags ...Tag) error {
	for _, tag := range tags {
		members, err := s.client.SMembers(ctx, tagPrefix+string(tag)).Result()
		if err != nil {
			return err
		}
		if err := s.Invalidate(ctx, members...); err != nil {
			return err
		}
		if err := s.client.Del(ctx, tagPrefix+string(tag)).Err(); err != nil {
			return err
		}
	}
	return nil
}
