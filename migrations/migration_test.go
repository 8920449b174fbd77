package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webstories/config"
)

func newTestStore(t *testing.T) *RedisTermStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTermStore(client)
}

func TestRunAppliesInOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := NewRunner(store, zap.NewNop(), MediaSourceMigrations()...)

	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, 6)
	assert.Equal(t, "add_media_source_editor", applied[0])
	assert.Equal(t, "add_media_source_gif-conversion", applied[5])

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	ok, err := store.HasTerm(ctx, config.MediaSourceTaxonomy, MediaSourceVideoOptimization)
	require.NoError(t, err)
	assert.True(t, ok)

	terms, err := store.Terms(ctx, config.MediaSourceTaxonomy)
	require.NoError(t, err)
	assert.Len(t, terms, 6)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := NewRunner(store, nil, MediaSourceMigrations()...)

	_, err := r.Run(ctx)
	require.NoError(t, err)
	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRunSortsByVersion(t *testing.T) {
	r := NewRunner(newTestStore(t), nil,
		AddMediaSource{Term: "b", Ver: 2},
		AddMediaSource{Term: "a", Ver: 1},
	)
	assert.Equal(t, 1, r.Migrations()[0].Version())
}

type failingMigration struct{ ver int }

func (f failingMigration) Name() string                             { return "broken" }
func (f failingMigration) Version() int                             { return f.ver }
func (f failingMigration) Migrate(context.Context, TermStore) error { return errors.New("nope") }

func TestRunStopsAtFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := NewRunner(store, nil, AddMediaSource{Term: "editor", Ver: 1}, failingMigration{ver: 2}, AddMediaSource{Term: "x", Ver: 3})

	applied, err := r.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"add_media_source_editor"}, applied)

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "version is recorded after each step")
}

func TestRunOne(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := NewRunner(store, nil, MediaSourceMigrations()...)

	require.NoError(t, r.RunOne(ctx, "add_media_source_video-optimization"))
	assert.ErrorIs(t, r.RunOne(ctx, "nope"), ErrUnknownMigration)

	created, err := store.AddTerm(ctx, config.MediaSourceTaxonomy, MediaSourceVideoOptimization)
	require.NoError(t, err)
	assert.False(t, created)
}
