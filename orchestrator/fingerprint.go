package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"webstories/types"
)

const fingerprintPrefix = "webstories:scan:"

// Fingerprints remembers the snapshot hash of each story at its last scan.
type Fingerprints interface {
	Unchanged(ctx context.Context, storyID, hash string) (bool, error)
	Remember(ctx context.Context, storyID, hash string) error
}

// RedisFingerprints keeps one key per story. Each Remember resets the
// expiry, so a story stays skipped for ttl after its last scan.
type RedisFingerprints struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisFingerprints(client redis.Cmdable, ttl time.Duration) *RedisFingerprints {
	return &RedisFingerprints{client: client, ttl: ttl}
}

func (f *RedisFingerprints) key(storyID string) string {
	return fingerprintPrefix + storyID
}

// Unchanged reports whether hash matches the story's remembered hash.
func (f *RedisFingerprints) Unchanged(ctx context.Context, storyID, hash string) (bool, error) {
	prev, err := f.client.Get(ctx, f.key(storyID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read fingerprint of %s: %w", storyID, err)
	}
	return prev == hash, nil
}

func (f *RedisFingerprints) Remember(ctx context.Context, storyID, hash string) error {
	if err := f.client.Set(ctx, f.key(storyID), hash, f.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store fingerprint of %s: %w", storyID, err)
	}
	return nil
}

// StoryHash returns the SHA-256 hex digest of the story's JSON encoding.
func StoryHash(story *types.Story) (string, error) {
	if story == nil {
		return "", fmt.Errorf("nil story")
	}
	data, err := json.Marshal(story)
	if err != nil {
		return "", fmt.Errorf("failed to encode story %s: %w", story.ID, err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
