package rssfeeds

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"webstories/checklist"
	"webstories/types"
)

// FetchStories retrieves a web story feed and returns up to maxCount stories
// in feed order.
func FetchStories(ctx context.Context, feedURL string, maxCount int) ([]types.StorySummary, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return summarize(feed, maxCount), nil
}

// ParseStories parses a feed document already in hand.
func ParseStories(r io.Reader, maxCount int) ([]types.StorySummary, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return summarize(feed, maxCount), nil
}

func summarize(feed *gofeed.Feed, maxCount int) []types.StorySummary {
	count := len(feed.Items)
	if maxCount > 0 {
		count = min(count, maxCount)
	}
	stories := make([]types.StorySummary, 0, count)

	for _, item := range feed.Items[:count] {
		story := types.StorySummary{
			ID:      storyID(item),
			Title:   item.Title,
			URL:     item.Link,
			Excerpt: strings.TrimSpace(checklist.StripHTML(item.Description)),
		}

		if item.PublishedParsed != nil {
			story.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			story.PublishedAt = *item.UpdatedParsed
		}

		if item.Author != nil {
			story.Author = item.Author.Name
		}
		if v, ok := item.Custom["author_id"]; ok {
			story.AuthorID, _ = strconv.Atoi(strings.TrimSpace(v))
		}

		story.PosterURL = posterURL(item)
		stories = append(stories, story)
	}
	return stories
}

// storyID prefers the WordPress post id carried in the GUID (?p=123), then
// the raw GUID, then a hash of the link.
func storyID(item *gofeed.Item) string {
	if item.GUID != "" {
		if u, err := url.Parse(item.GUID); err == nil {
			if p := u.Query().Get("p"); p != "" {
				return p
			}
		}
		return item.GUID
	}
	if item.Link != "" {
		return types.GenerateID(item.Link)
	}
	return ""
}

func posterURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// StoryFeed wraps fetched stories for JSON output.
func StoryFeed(feedURL string, stories []types.StorySummary) types.StoryFeed {
	out := types.StoryFeed{FeedURL: feedURL, FetchedAt: time.Now(), StoryCount: len(stories)}
	for i := range stories {
		out.Stories = append(out.Stories, &stories[i])
	}
	return out
}
