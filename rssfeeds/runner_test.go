package rssfeeds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstories/block"
	"webstories/types"
)

func fixedFeed(stories ...types.StorySummary) FetchFunc {
	return func(context.Context, string, int) ([]types.StorySummary, error) {
		out := make([]types.StorySummary, len(stories))
		copy(out, stories)
		return out, nil
	}
}

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func feedIDs(stories []types.StorySummary) []string {
	ids := make([]string, 0, len(stories))
	for _, s := range stories {
		ids = append(ids, s.ID)
	}
	return ids
}

var feedFixture = []types.StorySummary{
	{ID: "1", Title: "banana", AuthorID: 1, PublishedAt: day(1)},
	{ID: "2", Title: "Apple", AuthorID: 2, PublishedAt: day(3)},
	{ID: "3", Title: "cherry", AuthorID: 1, PublishedAt: day(2)},
}

func TestFeedQueryRunnerPostIn(t *testing.T) {
	r := &FeedQueryRunner{Fetch: fixedFeed(feedFixture...)}

	got, err := r.RunQuery(context.Background(), block.QueryArgs{PostIn: []int{3, 9, 1}, OrderBy: block.OrderByPostIn})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, feedIDs(got))
}

func TestFeedQueryRunnerOrdering(t *testing.T) {
	r := &FeedQueryRunner{Fetch: fixedFeed(feedFixture...)}
	ctx := context.Background()

	got, err := r.RunQuery(ctx, block.QueryArgs{OrderBy: block.OrderByPostDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, feedIDs(got), "newest first by default")

	got, err = r.RunQuery(ctx, block.QueryArgs{OrderBy: block.OrderByPostTitle, Order: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, feedIDs(got))

	got, err = r.RunQuery(ctx, block.QueryArgs{OrderBy: block.OrderByPostDate, Order: "ASC", PostsPerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, feedIDs(got))
}

func TestFeedQueryRunnerAuthors(t *testing.T) {
	r := &FeedQueryRunner{Fetch: fixedFeed(feedFixture...)}

	got, err := r.RunQuery(context.Background(), block.QueryArgs{AuthorIn: []int{1}, OrderBy: block.OrderByPostDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, feedIDs(got))
}

func TestFeedQueryRunnerFetchError(t *testing.T) {
	r := &FeedQueryRunner{Fetch: func(context.Context, string, int) ([]types.StorySummary, error) {
		return nil, errors.New("offline")
	}}

	_, err := r.RunQuery(context.Background(), block.QueryArgs{})
	assert.Error(t, err)
}
