package migrations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	termsKeyPrefix = "webstories:terms:"
	versionKey     = "webstories:db_version"
)

// RedisTermStore keeps each taxonomy as a Redis set.
type RedisTermStore struct {
	client redis.Cmdable
}

func NewRedisTermStore(client redis.Cmdable) *RedisTermStore {
	return &RedisTermStore{client: client}
}

// AddTerm adds term and reports whether it was new.
func (s *RedisTermStore) AddTerm(ctx context.Context, taxonomy, term string) (bool, error) {
	n, err := s.client.SAdd(ctx, termsKeyPrefix+taxonomy, term).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add term: %w", err)
	}
	return n == 1, nil
}

func (s *RedisTermStore) HasTerm(ctx context.Context, taxonomy, term string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, termsKeyPrefix+taxonomy, term).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check term: %w", err)
	}
	return ok, nil
}

// Terms returns the terms of taxonomy sorted by name.
func (s *RedisTermStore) Terms(ctx context.Context, taxonomy string) ([]string, error) {
	terms, err := s.client.SMembers(ctx, termsKeyPrefix+taxonomy).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	sort.Strings(terms)
	return terms, nil
}

// Version returns the applied version, 0 when nothing was applied.
func (s *RedisTermStore) Version(ctx context.Context) (int, error) {
	v, err := s.client.Get(ctx, versionKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read version: %w", err)
	}
	return v, nil
}

func (s *RedisTermStore) SetVersion(ctx context.Context, version int) error {
	if err := s.client.Set(ctx, versionKey, version, 0).Err(); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	return nil
}
