package checklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const registryKeyPrefix = "webstories:checks:"

// RedisRegistry stores a session's check outcomes in a Redis hash so several
// API replicas can share one editing session.
type RedisRegistry struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisRegistry returns the registry of sessionID. Every write extends the
// key's TTL, so an idle session expires ttl after its last evaluation.
func NewRedisRegistry(client redis.Cmdable, sessionID string, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, key: registryKeyPrefix + sessionID, ttl: ttl}
}

// Key returns the Redis key of the session hash.
func (r *RedisRegistry) Key() string { return r.key }

func (r *RedisRegistry) Register(ctx context.Context, name string, violated bool) error {
	value := "0"
	if violated {
		value = "1"
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.key, name, value)
		if r.ttl > 0 {
			p.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

func (r *RedisRegistry) Unregister(ctx context.Context, name string) error {
	if err := r.client.HDel(ctx, r.key, name).Err(); err != nil {
		return fmt.Errorf("unregister %s: %w", name, err)
	}
	return nil
}

func (r *RedisRegistry) Count(ctx context.Context) (int, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range snap {
		if v {
			n++
		}
	}
	return n, nil
}

func (r *RedisRegistry) Snapshot(ctx context.Context) (map[string]bool, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", r.key, err)
	}
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		out[k] = v == "1"
	}
	return out, nil
}

func (r *RedisRegistry) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear registry %s: %w", r.key, err)
	}
	return nil
}
