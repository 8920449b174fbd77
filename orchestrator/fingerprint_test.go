package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/config"
	"webstories/types"
)

func newFingerprints(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisFingerprints) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisFingerprints(client, ttl)
}

func TestStoryHash(t *testing.T) {
	a, err := StoryHash(&types.Story{ID: "1", Title: "One"})
	require.NoError(t, err)
	b, err := StoryHash(&types.Story{ID: "1", Title: "One"})
	require.NoError(t, err)
	c, err := StoryHash(&types.Story{ID: "1", Title: "Two"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	_, err = StoryHash(nil)
	assert.Error(t, err)
}

func TestRedisFingerprints(t *testing.T) {
	ctx := context.Background()
	mr, f := newFingerprints(t, time.Hour)

	same, err := f.Unchanged(ctx, "1", "h1")
	require.NoError(t, err)
	assert.False(t, same)

	require.NoError(t, f.Remember(ctx, "1", "h1"))
	same, err = f.Unchanged(ctx, "1", "h1")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = f.Unchanged(ctx, "1", "h2")
	require.NoError(t, err)
	assert.False(t, same)

	assert.Equal(t, time.Hour, mr.TTL(fingerprintPrefix+"1"))
	mr.FastForward(2 * time.Hour)
	same, err = f.Unchanged(ctx, "1", "h1")
	require.NoError(t, err)
	assert.False(t, same, "expired fingerprints are forgotten")
}

func TestRunOnceSkipsUnchangedStories(t *testing.T) {
	ctx := context.Background()
	_, f := newFingerprints(t, time.Hour)
	store := &fakeStore{stories: map[string]*types.Story{
		"a": {ID: "a", Title: "Fine", Excerpt: excerpt("ok")},
		"b": {ID: "b", Title: "No excerpt"},
	}}
	pub := &recordingPublisher{}
	r := NewRunner(store, checklist.New(config.Default().Checks), pub, nil, zap.NewNop()).WithFingerprints(f)

	first, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Skipped)

	second, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.Flagged)

	store.stories["b"].Excerpt = excerpt("now set")
	third, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Skipped)
	assert.Equal(t, []string{"a", "b", "b"}, pub.ids)
}
