package block

import (
	"context"
	"strings"

	"webstories/config"
	"webstories/types"
)

// Query orderings understood by a QueryRunner.
const (
	OrderByPostIn    = "post__in"
	OrderByPostTitle = "post_title"
	OrderByPostDate  = "post_date"
)

// QueryArgs describes which published stories a listing block shows.
type QueryArgs struct {
	PostType        string `json:"post_type"`
	PostStatus      string `json:"post_status"`
	SuppressFilters bool   `json:"suppress_filters"`
	NoFoundRows     bool   `json:"no_found_rows"`
	PostIn          []int  `json:"post__in,omitempty"`
	PostsPerPage    int    `json:"posts_per_page,omitempty"`
	Order           string `json:"order,omitempty"`
	OrderBy         string `json:"orderby,omitempty"`
	AuthorIn        []int  `json:"author__in,omitempty"`
}

// QueryRunner runs a story query and returns the matching stories in order.
type QueryRunner interface {
	RunQuery(ctx context.Context, args QueryArgs) ([]types.StorySummary, error)
}

// QueryRunnerFunc adapts a function to QueryRunner.
type QueryRunnerFunc func(ctx context.Context, args QueryArgs) ([]types.StorySummary, error)

func (f QueryRunnerFunc) RunQuery(ctx context.Context, args QueryArgs) ([]types.StorySummary, error) {
	return f(ctx, args)
}

// BuildQueryArgs turns block attributes into query arguments. Selected
// stories keep the order they were picked in; otherwise the query is dynamic.
func BuildQueryArgs(a Attributes) QueryArgs {
	args := QueryArgs{
		PostType:        config.StoryPostType,
		PostStatus:      "publish",
		SuppressFilters: false,
		NoFoundRows:     true,
	}

	if a.BlockType == TypeSelectedStories && len(a.Stories) > 0 {
		args.PostIn = a.Stories
		args.OrderBy = OrderByPostIn
		return args
	}

	if a.NumOfStories > 0 {
		args.PostsPerPage = min(a.NumOfStories, config.MaxNumOfStories)
	}
	args.Order = strings.ToUpper(a.Order)
	if a.OrderBy == "title" {
		args.OrderBy = OrderByPostTitle
	} else {
		args.OrderBy = OrderByPostDate
	}
	if len(a.Authors) > 0 {
		args.AuthorIn = a.Authors
	}
	return args
}
