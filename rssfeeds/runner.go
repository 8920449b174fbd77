package rssfeeds

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"webstories/block"
	"webstories/types"
)

// feedWindow is how many feed items a query considers.
const feedWindow = 100

// FetchFunc loads the stories of a feed.
type FetchFunc func(ctx context.Context, feedURL string, maxCount int) ([]types.StorySummary, error)

// FeedQueryRunner answers block queries from a published story feed.
type FeedQueryRunner struct {
	FeedURL string
	Fetch   FetchFunc
}

func NewFeedQueryRunner(feedURL string) *FeedQueryRunner {
	return &FeedQueryRunner{FeedURL: feedURL, Fetch: FetchStories}
}

// RunQuery filters and orders the feed the way the block query asks.
func (r *FeedQueryRunner) RunQuery(ctx context.Context, args block.QueryArgs) ([]types.StorySummary, error) {
	stories, err := r.Fetch(ctx, r.FeedURL, feedWindow)
	if err != nil {
		return nil, err
	}

	if len(args.PostIn) > 0 {
		byID := make(map[string]types.StorySummary, len(stories))
		for _, s := range stories {
			byID[s.ID] = s
		}
		out := make([]types.StorySummary, 0, len(args.PostIn))
		for _, id := range args.PostIn {
			if s, ok := byID[strconv.Itoa(id)]; ok {
				out = append(out, s)
			}
		}
		return out, nil
	}

	if len(args.AuthorIn) > 0 {
		authors := make(map[int]bool, len(args.AuthorIn))
		for _, a := range args.AuthorIn {
			authors[a] = true
		}
		filtered := stories[:0:0]
		for _, s := range stories {
			if authors[s.AuthorID] {
				filtered = append(filtered, s)
			}
		}
		stories = filtered
	}

	asc := args.Order == "ASC"
	switch args.OrderBy {
	case block.OrderByPostTitle:
		sort.SliceStable(stories, func(i, j int) bool {
			a, b := strings.ToLower(stories[i].Title), strings.ToLower(stories[j].Title)
			if asc {
				return a < b
			}
			return a > b
		})
	default:
		sort.SliceStable(stories, func(i, j int) bool {
			if asc {
				return stories[i].PublishedAt.Before(stories[j].PublishedAt)
			}
			return stories[i].PublishedAt.After(stories[j].PublishedAt)
		})
	}

	if args.PostsPerPage > 0 && len(stories) > args.PostsPerPage {
		stories = stories[:args.PostsPerPage]
	}
	return stories, nil
}
